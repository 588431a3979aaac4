package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status changes of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id. Returns ObjectNotFoundError when missing.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListByRestaurant returns the restaurant's orders, newest first.
	ListByRestaurant(ctx context.Context, restaurantID kernel.UUID) ([]*order.Order, error)

	// GetOldestAwaitingCourier returns the oldest confirmed, preparing or ready order without
	// a live assignment. Returns ObjectNotFoundError when there is none.
	GetOldestAwaitingCourier(ctx context.Context) (*order.Order, error)
}
