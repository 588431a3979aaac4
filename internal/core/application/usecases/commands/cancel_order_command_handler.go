package commands

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/metrics"
)

// CancelOrderCommandHandler cancels an order in one transaction. With a live assignment
// the cancellation goes through the assignment transition so the courier is released in
// the same write; without one the order is cancelled directly. A delivered order fails
// with InvalidTransitionError; a cancelled one is returned unchanged.
type CancelOrderCommandHandler struct {
	uowFactory   UoWFactory
	synchronizer services.DeliverySynchronizer
	clock        kernel.Clock
	retry        RetryPolicy
}

func NewCancelOrderCommandHandler(uowFactory UoWFactory, clock kernel.Clock, retry RetryPolicy) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory:   uowFactory,
		synchronizer: services.NewDeliverySynchronizer(),
		clock:        clock,
		retry:        retry,
	}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var (
		result              *order.Order
		cancelledAssignment bool
	)
	err := h.retry.inTransaction(ctx, func(ctx context.Context) error {
		o, viaAssignment, err := h.cancel(ctx, cmd)
		result, cancelledAssignment = o, viaAssignment
		return err
	})
	if err != nil {
		return nil, err
	}

	if cancelledAssignment {
		metrics.AssignmentTransitions.WithLabelValues(assignment.StatusCancelled.String()).Inc()
	}
	return result, nil
}

func (h CancelOrderCommandHandler) cancel(ctx context.Context, cmd CancelOrderCommand) (*order.Order, bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	assignmentRepo := uow.AssignmentRepository()
	orderRepo := uow.OrderRepository()

	live, found, err := assignmentRepo.FindLiveByOrder(ctx, cmd.OrderID())
	if err != nil {
		return nil, false, err
	}

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, false, err
	}

	if !found {
		// An assignment created while we waited for the order lock is committed by now.
		if live, found, err = assignmentRepo.FindLiveByOrder(ctx, cmd.OrderID()); err != nil {
			return nil, false, err
		}
	}

	now := h.clock.Now()
	if found {
		courierRepo := uow.CourierRepository()
		c, err := courierRepo.GetForUpdate(ctx, live.CourierID())
		if err != nil {
			return nil, false, err
		}
		if _, err = h.synchronizer.Transition(live, o, c, assignment.StatusCancelled, cmd.Actor(), now); err != nil {
			return nil, false, err
		}
		if err = assignmentRepo.Update(ctx, live); err != nil {
			return nil, false, err
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return nil, false, err
		}
		if err = courierRepo.Update(ctx, c); err != nil {
			return nil, false, err
		}
	} else {
		changed, err := o.Cancel(now)
		if err != nil {
			return nil, false, err
		}
		if !changed {
			return o, false, nil
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return nil, false, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, false, err
	}

	return o, found, nil
}
