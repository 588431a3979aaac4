package queries

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrListRestaurantOrdersQueryIsNotConstructed = errors.New(
	"ListRestaurantOrdersQuery must be created via NewListRestaurantOrdersQuery constructor",
)

// ListRestaurantOrdersQuery is the restaurant dashboard's reconciliation read. With
// activeOnly set delivered and cancelled orders are left out.
type ListRestaurantOrdersQuery struct {
	restaurantID kernel.UUID
	activeOnly   bool

	guard guard.ConstructorGuard
}

func NewListRestaurantOrdersQuery(restaurantID kernel.UUID, activeOnly bool) (ListRestaurantOrdersQuery, error) {
	if err := restaurantID.Validate(); err != nil {
		return ListRestaurantOrdersQuery{}, err
	}
	return ListRestaurantOrdersQuery{
		restaurantID: restaurantID,
		activeOnly:   activeOnly,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q ListRestaurantOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListRestaurantOrdersQueryIsNotConstructed)
}

func (q ListRestaurantOrdersQuery) RestaurantID() kernel.UUID { return q.restaurantID }
func (q ListRestaurantOrdersQuery) ActiveOnly() bool          { return q.activeOnly }

type ListRestaurantOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListRestaurantOrdersQueryHandler(db *gorm.DB) ListRestaurantOrdersQueryHandler {
	return ListRestaurantOrdersQueryHandler{db: db}
}

// Handle returns the orders newest first. An unknown restaurant yields an empty list.
func (h ListRestaurantOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListRestaurantOrdersQuery,
) ([]events.OrderRecord, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Table("orders").Select(`
		id, restaurant_id, customer_name, customer_phone, street, latitude, longitude,
		subtotal, delivery_fee, total, status, created_at, updated_at`).
		Where("restaurant_id = ?", query.RestaurantID().Bytes())
	if query.ActiveOnly() {
		tx = tx.Where("status NOT IN ?", []string{order.Delivered.String(), order.Cancelled.String()})
	}

	var rows []orderRow
	if err := tx.Order("created_at DESC, id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	orders := make([]events.OrderRecord, 0, len(rows))
	for _, r := range rows {
		orders = append(orders, r.record())
	}
	return orders, nil
}
