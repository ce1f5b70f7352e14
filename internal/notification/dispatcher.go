package notification

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

const (
	// RetryQueueKey is the redis list holding failed sends.
	RetryQueueKey = "notify:retry"

	idempotencyTTL = 24 * time.Hour
)

// Store is the idempotency and retry-queue backend, satisfied by the
// redis cache client.
type Store interface {
	SetIfNotExists(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	PushQueue(ctx context.Context, key string, payload []byte) error
	PopQueue(ctx context.Context, key string) ([]byte, bool, error)
}

// Dispatcher decouples notification delivery from state transitions:
// the caller persists its transition first, then dispatches. A failed
// send lands on the retry queue instead of being swallowed per item.
type Dispatcher struct {
	sink   Sink
	store  Store
	logger *zap.Logger
}

func NewDispatcher(sink Sink, store Store, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{sink: sink, store: store, logger: logger}
}

// Dispatch sends a message once per idempotency key. An empty key skips
// the idempotency check. The store being unavailable degrades to a
// plain send; losing dedup is preferable to losing the notification.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message, idemKey string) error {
	if d == nil || d.sink == nil {
		return ErrNotConfigured
	}

	if idemKey != "" && d.store != nil {
		claimed, err := d.store.SetIfNotExists(ctx, idemKey, "1", idempotencyTTL)
		if err == nil && !claimed {
			d.logger.Debug("notification already sent, skipping",
				zap.String("kind", string(msg.Kind)), zap.String("idem_key", idemKey))
			return nil
		}
	}

	if err := d.sink.Send(ctx, msg); err != nil {
		d.logger.Warn("notification send failed, queueing for retry",
			zap.String("kind", string(msg.Kind)), zap.String("to", msg.To), zap.Error(err))
		d.enqueueRetry(ctx, msg)
		return err
	}

	d.logger.Info("notification sent",
		zap.String("kind", string(msg.Kind)), zap.String("to", msg.To))
	return nil
}

func (d *Dispatcher) enqueueRetry(ctx context.Context, msg Message) {
	if d.store == nil {
		return
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := d.store.PushQueue(ctx, RetryQueueKey, b); err != nil {
		d.logger.Warn("retry enqueue failed", zap.Error(err))
	}
}

// DrainRetries attempts every queued message once. A message that fails
// again goes back to the queue and draining stops, so a dead transport
// does not spin. Returns the number of successful sends.
func (d *Dispatcher) DrainRetries(ctx context.Context) (int, error) {
	if d == nil || d.sink == nil || d.store == nil {
		return 0, nil
	}

	sent := 0
	for {
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		b, ok, err := d.store.PopQueue(ctx, RetryQueueKey)
		if err != nil {
			return sent, err
		}
		if !ok {
			return sent, nil
		}

		var msg Message
		if err := json.Unmarshal(b, &msg); err != nil {
			d.logger.Warn("dropping malformed retry entry", zap.Error(err))
			continue
		}

		if err := d.sink.Send(ctx, msg); err != nil {
			if pushErr := d.store.PushQueue(ctx, RetryQueueKey, b); pushErr != nil {
				d.logger.Error("retry re-enqueue failed, notification lost",
					zap.String("to", msg.To), zap.Error(pushErr))
			}
			return sent, err
		}
		sent++
		d.logger.Info("queued notification sent", zap.String("to", msg.To))
	}
}

// RunRetryLoop drains the retry queue on a fixed interval until the
// context is cancelled.
func (d *Dispatcher) RunRetryLoop(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := d.DrainRetries(ctx); err != nil && ctx.Err() == nil {
				d.logger.Debug("retry drain stopped", zap.Error(err))
			}
		}
	}
}
