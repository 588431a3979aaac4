package realtime

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/ports"
)

// Fanout hands every envelope to all publishers. The envelope counts as published only
// when every publisher accepted it; the relay then retries the whole set and the
// receivers drop the duplicates by envelope ID.
type Fanout struct {
	publishers []ports.EventPublisher
}

func NewFanout(publishers ...ports.EventPublisher) Fanout {
	nonNil := make([]ports.EventPublisher, 0, len(publishers))
	for _, p := range publishers {
		if p != nil {
			nonNil = append(nonNil, p)
		}
	}
	return Fanout{publishers: nonNil}
}

func (f Fanout) Publish(ctx context.Context, e events.Envelope) error {
	var errList []error
	for _, p := range f.publishers {
		if err := p.Publish(ctx, e); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}
