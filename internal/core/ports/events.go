package ports

import (
	"context"

	"dispatch/internal/core/domain/events"
)

// EventPublisher delivers an envelope to its subscribers or downstream systems.
type EventPublisher interface {
	Publish(ctx context.Context, e events.Envelope) error
}

// OutboxRelay drains committed outbox rows. Drain locks up to limit undelivered rows,
// hands them to publish in commit order and marks the ones publish accepted as dispatched.
// Rows whose publish failed stay in the outbox and are retried by a later drain.
type OutboxRelay interface {
	Drain(ctx context.Context, limit int, publish func(context.Context, events.Envelope) error) (int, error)
}
