package commands

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/metrics"
)

// TransitionAssignmentCommandHandler applies an assignment transition together with its
// order and courier effects.
//
// The transition is validated against the status read under the row lock, never against
// what the caller believes. Repeating a transition that is already applied succeeds
// without writing anything, so clients may retry freely.
//
// Example:
//
//	cmd, _ := NewTransitionAssignmentCommand(id, assignment.StatusAccepted, assignment.ActorCourier)
//	a, err := handler.Handle(ctx, cmd)
//	var invalid *errs.InvalidTransitionError
//	if errors.As(err, &invalid) {
//	    log.Printf("allowed from %s: %v", invalid.From, invalid.Allowed)
//	}
type TransitionAssignmentCommandHandler struct {
	uowFactory   UoWFactory
	synchronizer services.DeliverySynchronizer
	clock        kernel.Clock
	retry        RetryPolicy
}

func NewTransitionAssignmentCommandHandler(
	uowFactory UoWFactory,
	clock kernel.Clock,
	retry RetryPolicy,
) TransitionAssignmentCommandHandler {
	return TransitionAssignmentCommandHandler{
		uowFactory:   uowFactory,
		synchronizer: services.NewDeliverySynchronizer(),
		clock:        clock,
		retry:        retry,
	}
}

// Handle returns the assignment as persisted after the call.
func (h TransitionAssignmentCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionAssignmentCommand,
) (*assignment.Assignment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var (
		result  *assignment.Assignment
		changed bool
	)
	err := h.retry.inTransaction(ctx, func(ctx context.Context) error {
		a, ok, err := h.transition(ctx, cmd)
		result, changed = a, ok
		return err
	})
	if err != nil {
		return nil, err
	}

	if changed {
		metrics.AssignmentTransitions.WithLabelValues(cmd.Target().String()).Inc()
	}
	return result, nil
}

func (h TransitionAssignmentCommandHandler) transition(
	ctx context.Context,
	cmd TransitionAssignmentCommand,
) (*assignment.Assignment, bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	assignmentRepo := uow.AssignmentRepository()
	orderRepo := uow.OrderRepository()
	courierRepo := uow.CourierRepository()

	a, err := assignmentRepo.GetForUpdate(ctx, cmd.AssignmentID())
	if err != nil {
		return nil, false, err
	}

	if a.Status() == cmd.Target() {
		return a, false, nil
	}

	o, err := orderRepo.GetForUpdate(ctx, a.OrderID())
	if err != nil {
		return nil, false, err
	}

	c, err := courierRepo.GetForUpdate(ctx, a.CourierID())
	if err != nil {
		return nil, false, err
	}

	changed, err := h.synchronizer.Transition(a, o, c, cmd.Target(), cmd.Actor(), h.clock.Now())
	if err != nil {
		return nil, false, err
	}
	if !changed {
		return a, false, nil
	}

	if err = assignmentRepo.Update(ctx, a); err != nil {
		return nil, false, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, false, err
	}
	if err = courierRepo.Update(ctx, c); err != nil {
		return nil, false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, false, err
	}

	return a, true, nil
}
