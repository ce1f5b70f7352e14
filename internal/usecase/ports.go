package usecase

import (
	"context"
	"errors"
	"time"

	"hireflow/internal/notification"

	"github.com/google/uuid"
)

// Shared sentinels. Handlers map these onto HTTP statuses; anything not
// listed surfaces as ErrInternal.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")
)

// Notifier dispatches workflow mail. Satisfied by notification.Dispatcher.
type Notifier interface {
	Dispatch(ctx context.Context, msg notification.Message, idemKey string) error
}

// OTPStore holds one-time passcodes with a TTL. Satisfied by the redis
// cache client; the TTL enforcement is what gives OTPs their expiry.
type OTPStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
}

// EventPublisher fans screening events out to connected dashboards.
type EventPublisher interface {
	ScreeningCompleted(applicationID uuid.UUID, status string, matchScore float64)
}

// ItemResult is one entry of a per-item batch report. Batch operations
// continue on error and report each item instead of aborting midway.
type ItemResult struct {
	ApplicationID uuid.UUID `json:"application_id"`
	Name          string    `json:"name"`
	Status        string    `json:"status,omitempty"`
	MatchScore    float64   `json:"match_score,omitempty"`
	Error         string    `json:"error,omitempty"`
}
