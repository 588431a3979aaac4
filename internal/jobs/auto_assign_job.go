package jobs

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

const DefaultAutoAssignSchedule = "@every 5s"

// AutoAssigner creates one assignment for the oldest order waiting for a courier.
type AutoAssigner interface {
	Handle(ctx context.Context, cmd commands.AutoAssignCommand) (*assignment.Assignment, error)
}

// AutoAssignJob periodically pairs the oldest order waiting for a courier with the
// nearest available courier.
type AutoAssignJob struct {
	handler  AutoAssigner
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewAutoAssignJob creates the job. An empty schedule uses DefaultAutoAssignSchedule.
func NewAutoAssignJob(handler AutoAssigner, schedule string, logger *slog.Logger) *AutoAssignJob {
	if schedule == "" {
		schedule = DefaultAutoAssignSchedule
	}
	return &AutoAssignJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "auto_assign_job"),
	}
}

func (j *AutoAssignJob) Name() string { return "auto assign job" }

// Start registers the job on its schedule.
func (j *AutoAssignJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto assign job started", "schedule", j.schedule)
	return nil
}

// RunOnce makes one assignment attempt. Nothing to assign and losing a race to another
// dispatcher are expected outcomes and only logged at debug level.
func (j *AutoAssignJob) RunOnce(ctx context.Context) {
	a, err := j.handler.Handle(ctx, commands.NewAutoAssignCommand())
	switch {
	case err == nil:
		j.logger.InfoContext(ctx, "Order assigned",
			"assignment_id", a.ID().String(),
			"order_id", a.OrderID().String(),
			"courier_id", a.CourierID().String())
	case errors.Is(err, commands.ErrNoOrderFound),
		errors.Is(err, commands.ErrNoFreeCouriersFound),
		errors.Is(err, errs.ErrAlreadyAssigned),
		errors.Is(err, errs.ErrCourierUnavailable):
		j.logger.DebugContext(ctx, "Nothing assigned", "reason", err.Error())
	default:
		j.logger.ErrorContext(ctx, "Auto assign job failed", "error", err)
	}
}

// Stop stops the schedule and waits for a running attempt.
func (j *AutoAssignJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Auto assign job stopped")
}
