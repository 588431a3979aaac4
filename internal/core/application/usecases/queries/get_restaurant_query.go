package queries

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrGetRestaurantQueryIsNotConstructed = errors.New(
	"GetRestaurantQuery must be created via NewGetRestaurantQuery constructor",
)

type GetRestaurantQuery struct {
	restaurantID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetRestaurantQuery(restaurantID kernel.UUID) (GetRestaurantQuery, error) {
	if err := restaurantID.Validate(); err != nil {
		return GetRestaurantQuery{}, err
	}
	return GetRestaurantQuery{restaurantID: restaurantID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRestaurantQuery) Validate() error {
	return q.guard.Validate(ErrGetRestaurantQueryIsNotConstructed)
}

func (q GetRestaurantQuery) RestaurantID() kernel.UUID { return q.restaurantID }

// GetRestaurantQueryHandler resolves a restaurant, used to center the nearby couriers stream.
type GetRestaurantQueryHandler struct {
	db *gorm.DB
}

func NewGetRestaurantQueryHandler(db *gorm.DB) GetRestaurantQueryHandler {
	return GetRestaurantQueryHandler{db: db}
}

func (h GetRestaurantQueryHandler) Handle(ctx context.Context, query GetRestaurantQuery) (events.RestaurantRecord, error) {
	if err := query.Validate(); err != nil {
		return events.RestaurantRecord{}, err
	}

	var rows []restaurantRow
	err := h.db.WithContext(ctx).Table("restaurants").
		Select("id, name, latitude, longitude").
		Where("id = ?", query.RestaurantID().Bytes()).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return events.RestaurantRecord{}, err
	}
	if len(rows) == 0 {
		return events.RestaurantRecord{}, errs.NewObjectNotFoundError("restaurant", query.RestaurantID().String())
	}
	return rows[0].record(), nil
}
