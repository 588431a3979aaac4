// Package ports defines the contracts between the dispatch core and its infrastructure:
// repositories, the unit of work, the outbox and event publishers.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists availability, status and counter changes. Position columns are
	// owned by LocationRepository and are never written here.
	Update(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier by id. Returns ObjectNotFoundError when missing.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetForUpdate retrieves a courier and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAll returns every courier ordered by name.
	GetAll(ctx context.Context) ([]*courier.Courier, error)

	// GetAllAvailable returns active couriers accepting work.
	GetAllAvailable(ctx context.Context) ([]*courier.Courier, error)
}
