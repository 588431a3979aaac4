package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrSetCourierAvailabilityCommandIsNotConstructed = errors.New(
	"SetCourierAvailabilityCommand must be created via NewSetCourierAvailabilityCommand constructor",
)

// SetCourierAvailabilityCommand toggles whether a courier accepts new work. Going offline
// keeps in-flight assignments; it only stops new ones and location writes.
type SetCourierAvailabilityCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	available bool

	guard guard.ConstructorGuard
}

func NewSetCourierAvailabilityCommand(courierID kernel.UUID, available bool) (SetCourierAvailabilityCommand, error) {
	if err := courierID.Validate(); err != nil {
		return SetCourierAvailabilityCommand{}, err
	}

	return SetCourierAvailabilityCommand{
		courierID: courierID,
		available: available,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SetCourierAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierAvailabilityCommandIsNotConstructed)
}

func (c SetCourierAvailabilityCommand) CourierID() kernel.UUID { return c.courierID }
func (c SetCourierAvailabilityCommand) Available() bool        { return c.available }

type SetCourierAvailabilityCommandHandler struct {
	uowFactory CourierUoWFactory
	clock      kernel.Clock
	retry      RetryPolicy
}

func NewSetCourierAvailabilityCommandHandler(
	uowFactory CourierUoWFactory,
	clock kernel.Clock,
	retry RetryPolicy,
) SetCourierAvailabilityCommandHandler {
	return SetCourierAvailabilityCommandHandler{uowFactory: uowFactory, clock: clock, retry: retry}
}

// Handle returns the courier after the change. Setting the current value writes nothing.
func (h SetCourierAvailabilityCommandHandler) Handle(
	ctx context.Context,
	cmd SetCourierAvailabilityCommand,
) (*courier.Courier, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var result *courier.Courier
	err := h.retry.inTransaction(ctx, func(ctx context.Context) error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		courierRepo := uow.CourierRepository()
		c, err := courierRepo.GetForUpdate(ctx, cmd.CourierID())
		if err != nil {
			return err
		}

		result = c
		if !c.SetAvailability(cmd.Available(), h.clock.Now()) {
			return nil
		}

		if err = courierRepo.Update(ctx, c); err != nil {
			return err
		}
		return uow.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
