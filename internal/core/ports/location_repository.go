package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tracking"
)

// LocationRepository persists courier positions.
type LocationRepository interface {
	// Record applies the gate atomically: the courier position is updated and the sample
	// appended only while the courier is available and its last update is at or before
	// gate.Cutoff(now). A refused write reports the reason; a missing courier returns
	// ObjectNotFoundError.
	Record(ctx context.Context, sample tracking.Sample, gate tracking.Gate, now time.Time) (tracking.Outcome, error)

	// Recent returns up to limit samples of the courier, newest first.
	Recent(ctx context.Context, courierID kernel.UUID, limit int) ([]tracking.Sample, error)
}
