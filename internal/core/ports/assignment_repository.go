package ports

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for delivery assignments.
type AssignmentRepository interface {
	// Add persists a new assignment. A second live assignment for the same order fails
	// with AlreadyAssignedError.
	Add(ctx context.Context, aggregate *assignment.Assignment) error

	// Update persists the status and timestamps of an existing assignment.
	Update(ctx context.Context, aggregate *assignment.Assignment) error

	// Get retrieves an assignment by id. Returns ObjectNotFoundError when missing.
	Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)

	// GetForUpdate retrieves an assignment and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)

	// FindLiveByOrder returns the order's live assignment, locked, and false when there is none.
	FindLiveByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, bool, error)

	// ListByCourier returns the courier's assignments, newest first. With liveOnly set only
	// assigned, accepted, picked_up and on_the_way ones are returned.
	ListByCourier(ctx context.Context, courierID kernel.UUID, liveOnly bool) ([]*assignment.Assignment, error)
}
