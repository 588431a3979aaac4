// Package restaurant holds the read model of a restaurant: the dispatch core only needs
// its identity and position to route subscriptions and pick nearby couriers.
package restaurant

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrNameIsRequired             = errs.NewValueIsRequiredError("restaurant name")
	ErrRestaurantIsNotConstructed = errors.New("Restaurant must be created via NewRestaurant constructor")
)

type Restaurant struct {
	id       kernel.UUID
	name     string
	position kernel.GeoPoint

	guard guard.ConstructorGuard
}

func NewRestaurant(id kernel.UUID, name string, position kernel.GeoPoint) (*Restaurant, error) {
	name = strings.TrimSpace(name)

	var nameErr error
	if name == "" {
		nameErr = ErrNameIsRequired
	}
	if err := errors.Join(id.Validate(), nameErr, position.Validate()); err != nil {
		return nil, err
	}

	return &Restaurant{id: id, name: name, position: position, guard: guard.NewConstructorGuard()}, nil
}

func (r *Restaurant) Validate() error {
	if r == nil {
		return ErrRestaurantIsNotConstructed
	}
	return r.guard.Validate(ErrRestaurantIsNotConstructed)
}

func (r *Restaurant) ID() kernel.UUID           { return r.id }
func (r *Restaurant) Name() string              { return r.name }
func (r *Restaurant) Position() kernel.GeoPoint { return r.position }
