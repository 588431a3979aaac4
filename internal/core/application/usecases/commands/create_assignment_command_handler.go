package commands

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/metrics"
)

// CreateAssignmentCommandHandler creates an assignment, counts it on the courier and
// confirms a pending order in one transaction. The outbox event is written by the unit of
// work on commit.
//
// Exclusivity is checked twice: the live assignment lookup under lock reports the
// conflicting assignment, and the partial unique index rejects a racing insert that
// slipped past the lookup.
type CreateAssignmentCommandHandler struct {
	uowFactory   UoWFactory
	synchronizer services.DeliverySynchronizer
	clock        kernel.Clock
	retry        RetryPolicy
}

func NewCreateAssignmentCommandHandler(
	uowFactory UoWFactory,
	clock kernel.Clock,
	retry RetryPolicy,
) CreateAssignmentCommandHandler {
	return CreateAssignmentCommandHandler{
		uowFactory:   uowFactory,
		synchronizer: services.NewDeliverySynchronizer(),
		clock:        clock,
		retry:        retry,
	}
}

// Handle returns the created assignment. Errors: AlreadyAssignedError,
// CourierUnavailableError, ObjectNotFoundError, ValueIsInvalidError.
func (h CreateAssignmentCommandHandler) Handle(
	ctx context.Context,
	cmd CreateAssignmentCommand,
) (*assignment.Assignment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var created *assignment.Assignment
	err := h.retry.inTransaction(ctx, func(ctx context.Context) error {
		a, err := h.create(ctx, cmd)
		created = a
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.AssignmentsCreated.Inc()
	return created, nil
}

func (h CreateAssignmentCommandHandler) create(
	ctx context.Context,
	cmd CreateAssignmentCommand,
) (*assignment.Assignment, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	assignmentRepo := uow.AssignmentRepository()
	orderRepo := uow.OrderRepository()
	courierRepo := uow.CourierRepository()

	live, found, err := assignmentRepo.FindLiveByOrder(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if found {
		return nil, errs.NewAlreadyAssignedError(cmd.OrderID().String(), live.ID().String())
	}

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	c, err := courierRepo.GetForUpdate(ctx, cmd.CourierID())
	if err != nil {
		return nil, err
	}

	a, err := h.synchronizer.Assign(cmd.AssignmentID(), o, c, cmd.DeliveryFee(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = assignmentRepo.Add(ctx, a); err != nil {
		return nil, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	if err = courierRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return a, nil
}
