package http

import (
	"context"

	"dispatch/internal/adapters/out/realtime"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/restaurant"
	"dispatch/internal/core/domain/model/tracking"
)

// Use case ports, satisfied by the command and query handlers.
type (
	CreateAssignmentHandler interface {
		Handle(ctx context.Context, cmd commands.CreateAssignmentCommand) (*assignment.Assignment, error)
	}

	TransitionAssignmentHandler interface {
		Handle(ctx context.Context, cmd commands.TransitionAssignmentCommand) (*assignment.Assignment, error)
	}

	RejectAssignmentHandler interface {
		Handle(ctx context.Context, cmd commands.RejectAssignmentCommand) (*assignment.Assignment, error)
	}

	PickUpHandler interface {
		Handle(ctx context.Context, cmd commands.PickUpCommand) (*assignment.Assignment, error)
	}

	CancelOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CancelOrderCommand) (*order.Order, error)
	}

	AdvanceOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.AdvanceOrderStatusCommand) (*order.Order, error)
	}

	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}

	CreateCourierHandler interface {
		Handle(ctx context.Context, cmd commands.CreateCourierCommand) (*courier.Courier, error)
	}

	CreateRestaurantHandler interface {
		Handle(ctx context.Context, cmd commands.CreateRestaurantCommand) (*restaurant.Restaurant, error)
	}

	SetCourierAvailabilityHandler interface {
		Handle(ctx context.Context, cmd commands.SetCourierAvailabilityCommand) (*courier.Courier, error)
	}

	RecordLocationHandler interface {
		Handle(ctx context.Context, cmd commands.RecordLocationCommand) (tracking.Outcome, error)
	}

	GetAllCouriersHandler interface {
		Handle(ctx context.Context, query queries.GetAllCouriersQuery) ([]events.CourierRecord, error)
	}

	GetAssignmentHandler interface {
		Handle(ctx context.Context, query queries.GetAssignmentQuery) (events.AssignmentRecord, error)
	}

	GetRestaurantHandler interface {
		Handle(ctx context.Context, query queries.GetRestaurantQuery) (events.RestaurantRecord, error)
	}

	GetRecentLocationsHandler interface {
		Handle(ctx context.Context, query queries.GetRecentLocationsQuery) ([]events.LocationSampleRecord, error)
	}

	ListCourierAssignmentsHandler interface {
		Handle(ctx context.Context, query queries.ListCourierAssignmentsQuery) ([]events.AssignmentRecord, error)
	}

	ListRestaurantOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListRestaurantOrdersQuery) ([]events.OrderRecord, error)
	}

	// StreamHub hands out realtime subscriptions.
	StreamHub interface {
		Subscribe(scope realtime.Scope, lastEventID string) *realtime.Subscription
	}
)

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	CreateAssignment       CreateAssignmentHandler
	TransitionAssignment   TransitionAssignmentHandler
	RejectAssignment       RejectAssignmentHandler
	PickUp                 PickUpHandler
	CancelOrder            CancelOrderHandler
	AdvanceOrderStatus     AdvanceOrderStatusHandler
	CreateOrder            CreateOrderHandler
	CreateCourier          CreateCourierHandler
	CreateRestaurant       CreateRestaurantHandler
	SetCourierAvailability SetCourierAvailabilityHandler
	RecordLocation         RecordLocationHandler

	GetAllCouriers         GetAllCouriersHandler
	GetAssignment          GetAssignmentHandler
	GetRestaurant          GetRestaurantHandler
	GetRecentLocations     GetRecentLocationsHandler
	ListCourierAssignments ListCourierAssignmentsHandler
	ListRestaurantOrders   ListRestaurantOrdersHandler
}
