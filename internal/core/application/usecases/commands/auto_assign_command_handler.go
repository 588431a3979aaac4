package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

var (
	ErrNoFreeCouriersFound = errors.New("no free couriers found")
	ErrNoOrderFound        = errors.New("no order found")
)

// AutoAssignCommandHandler picks a candidate pair in a read transaction and hands it to
// CreateAssignmentCommandHandler, which re-checks everything under row locks. Losing a race
// to a manual dispatcher surfaces as AlreadyAssignedError.
//
// Example:
//
//	handler := NewAutoAssignCommandHandler(uowFactory, create, services.NewOrderDispatcher(5))
//	_, err := handler.Handle(ctx, NewAutoAssignCommand())
//	switch {
//	case errors.Is(err, ErrNoOrderFound):
//	    log.Println("No orders waiting")
//	case errors.Is(err, ErrNoFreeCouriersFound):
//	    log.Println("All couriers are busy")
//	case err != nil:
//	    log.Printf("Assignment failed: %v", err)
//	}
type AutoAssignCommandHandler struct {
	uowFactory UoWFactory
	create     CreateAssignmentCommandHandler
	dispatcher services.OrderDispatcher
}

func NewAutoAssignCommandHandler(
	uowFactory UoWFactory,
	create CreateAssignmentCommandHandler,
	dispatcher services.OrderDispatcher,
) AutoAssignCommandHandler {
	return AutoAssignCommandHandler{
		uowFactory: uowFactory,
		create:     create,
		dispatcher: dispatcher,
	}
}

// Handle returns the created assignment, ErrNoOrderFound when nothing waits for a courier
// or ErrNoFreeCouriersFound when no courier qualifies.
func (h AutoAssignCommandHandler) Handle(ctx context.Context, command AutoAssignCommand) (*assignment.Assignment, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	cmd, err := h.pick(ctx)
	if err != nil {
		return nil, err
	}

	return h.create.Handle(ctx, cmd)
}

func (h AutoAssignCommandHandler) pick(ctx context.Context) (CreateAssignmentCommand, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateAssignmentCommand{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetOldestAwaitingCourier(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return CreateAssignmentCommand{}, ErrNoOrderFound
	}
	if err != nil {
		return CreateAssignmentCommand{}, err
	}

	r, err := uow.RestaurantRepository().Get(ctx, o.RestaurantID())
	if err != nil {
		return CreateAssignmentCommand{}, err
	}

	couriers, err := uow.CourierRepository().GetAllAvailable(ctx)
	if err != nil {
		return CreateAssignmentCommand{}, err
	}
	if len(couriers) == 0 {
		return CreateAssignmentCommand{}, ErrNoFreeCouriersFound
	}

	best, err := h.dispatcher.FindNearest(r.Position(), couriers)
	if errors.Is(err, services.ErrCourierNotFound) {
		return CreateAssignmentCommand{}, ErrNoFreeCouriersFound
	}
	if err != nil {
		return CreateAssignmentCommand{}, err
	}

	return NewCreateAssignmentCommand(kernel.NewUUID(), o.ID(), best.ID(), o.DeliveryFee())
}
