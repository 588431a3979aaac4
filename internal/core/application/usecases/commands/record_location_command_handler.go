package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/metrics"
)

// RecordLocationCommandHandler is the server side of location tracking. The gate runs in
// storage as one compare-and-set, so concurrent fixes of one courier persist at most one
// position per debounce window.
//
// Accepted positions are published straight to the realtime notifier after commit, not
// through the outbox: a lost position is superseded by the next one.
type RecordLocationCommandHandler struct {
	uowFactory LocationUoWFactory
	gate       tracking.Gate
	clock      kernel.Clock
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewRecordLocationCommandHandler creates the handler. publisher may be nil when nothing
// listens to courier positions.
func NewRecordLocationCommandHandler(
	uowFactory LocationUoWFactory,
	gate tracking.Gate,
	clock kernel.Clock,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) RecordLocationCommandHandler {
	return RecordLocationCommandHandler{
		uowFactory: uowFactory,
		gate:       gate,
		clock:      clock,
		publisher:  publisher,
		logger:     logger.With("component", "RecordLocationCommandHandler"),
	}
}

// Handle returns Ack or Skipped with a reason. Errors are reserved for an unknown courier
// and storage failures.
func (h RecordLocationCommandHandler) Handle(ctx context.Context, cmd RecordLocationCommand) (tracking.Outcome, error) {
	if err := cmd.Validate(); err != nil {
		return tracking.Outcome{}, err
	}

	now := h.clock.Now()
	sample, err := tracking.NewSample(kernel.NewUUID(), cmd.CourierID(),
		cmd.Latitude(), cmd.Longitude(), cmd.Accuracy(), now)
	if err != nil {
		return h.done(tracking.Skipped(tracking.ReasonInvalidCoords)), nil
	}

	outcome, err := h.record(ctx, sample, now)
	if err != nil {
		return tracking.Outcome{}, err
	}
	if !outcome.Recorded {
		return h.done(outcome), nil
	}

	if h.publisher != nil {
		if err = h.publisher.Publish(ctx, events.NewLocationEvent(sample)); err != nil {
			h.logger.WarnContext(ctx, "failed to publish courier location",
				"courier_id", sample.CourierID().String(), "error", err)
		}
	}
	return h.done(outcome), nil
}

func (h RecordLocationCommandHandler) record(
	ctx context.Context,
	sample tracking.Sample,
	now time.Time,
) (tracking.Outcome, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return tracking.Outcome{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outcome, err := uow.LocationRepository().Record(ctx, sample, h.gate, now)
	if err != nil || !outcome.Recorded {
		return outcome, err
	}

	if err = uow.Commit(ctx); err != nil {
		return tracking.Outcome{}, err
	}
	return outcome, nil
}

func (h RecordLocationCommandHandler) done(outcome tracking.Outcome) tracking.Outcome {
	result := "ack"
	if !outcome.Recorded {
		result = string(outcome.Reason)
	}
	metrics.LocationSamples.WithLabelValues(result).Inc()
	return outcome
}
