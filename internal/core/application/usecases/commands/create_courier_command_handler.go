package commands

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CreateCourierCommandHandler handles courier registration.
type CreateCourierCommandHandler struct {
	uowFactory CourierUoWFactory
	clock      kernel.Clock
}

// NewCreateCourierCommandHandler creates a new handler instance.
func NewCreateCourierCommandHandler(uowFactory CourierUoWFactory, clock kernel.Clock) CreateCourierCommandHandler {
	return CreateCourierCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the command and persists the new courier. The courier.created event
// is written to the outbox by the commit.
func (h CreateCourierCommandHandler) Handle(ctx context.Context, cmd CreateCourierCommand) (*courier.Courier, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := courier.NewCourier(cmd.CourierID(), cmd.Name(), cmd.Phone(), cmd.Vehicle(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.CourierRepository().Add(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}
