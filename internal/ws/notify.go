package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type ScreeningEvent struct {
	Type          string  `json:"type"`
	ApplicationID string  `json:"application_id"`
	Status        string  `json:"status"`
	MatchScore    float64 `json:"match_score"`
	Timestamp     string  `json:"timestamp"`
}

// Publisher pushes screening outcomes onto the hub as they happen.
type Publisher struct {
	hub *Hub
}

func NewPublisher(hub *Hub) *Publisher {
	return &Publisher{hub: hub}
}

func (p *Publisher) ScreeningCompleted(applicationID uuid.UUID, status string, matchScore float64) {
	if p == nil || p.hub == nil {
		return
	}

	evt := ScreeningEvent{
		Type:          "screening_completed",
		ApplicationID: applicationID.String(),
		Status:        status,
		MatchScore:    matchScore,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	p.hub.Broadcast(b)
}
