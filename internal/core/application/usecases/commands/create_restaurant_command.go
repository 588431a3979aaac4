package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/restaurant"
	"dispatch/internal/pkg/guard"
)

var ErrCreateRestaurantCommandIsNotConstructed = errors.New(
	"CreateRestaurantCommand must be created via NewCreateRestaurantCommand constructor",
)

// CreateRestaurantCommand registers a pickup point. Its position is the origin for auto dispatch.
type CreateRestaurantCommand struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID
	name         string
	position     kernel.GeoPoint

	guard guard.ConstructorGuard
}

func NewCreateRestaurantCommand(
	restaurantID kernel.UUID,
	name string,
	position kernel.GeoPoint,
) (CreateRestaurantCommand, error) {
	if err := errors.Join(restaurantID.Validate(), position.Validate()); err != nil {
		return CreateRestaurantCommand{}, err
	}
	if name == "" {
		return CreateRestaurantCommand{}, ErrNameIsRequired
	}

	return CreateRestaurantCommand{
		restaurantID: restaurantID,
		name:         name,
		position:     position,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c CreateRestaurantCommand) Validate() error {
	return c.guard.Validate(ErrCreateRestaurantCommandIsNotConstructed)
}

func (c CreateRestaurantCommand) RestaurantID() kernel.UUID { return c.restaurantID }
func (c CreateRestaurantCommand) Name() string              { return c.name }
func (c CreateRestaurantCommand) Position() kernel.GeoPoint { return c.position }

type CreateRestaurantCommandHandler struct {
	uowFactory RestaurantUoWFactory
}

func NewCreateRestaurantCommandHandler(uowFactory RestaurantUoWFactory) CreateRestaurantCommandHandler {
	return CreateRestaurantCommandHandler{uowFactory: uowFactory}
}

func (h CreateRestaurantCommandHandler) Handle(
	ctx context.Context,
	cmd CreateRestaurantCommand,
) (*restaurant.Restaurant, error) {
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

	r, err := restaurant.NewRestaurant(cmd.RestaurantID(), cmd.Name(), cmd.Position())
	if err != nil {
		return nil, err
	}

	if err = uow.RestaurantRepository().Add(ctx, r); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return r, nil
}
