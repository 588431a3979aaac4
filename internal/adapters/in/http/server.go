package http

import (
	"context"
	"log/slog"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/generated/servers"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const defaultLocationLimit = 50

var _ servers.ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	streams  StreamHub
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, streams StreamHub, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		streams:  streams,
		logger:   logger.With("component", "HTTPServer"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Browser clients of the courier app are served from another origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// CreateAssignment handles POST /api/v1/assignments.
func (s *Server) CreateAssignment(ctx echo.Context) error {
	if _, err := s.staff(ctx); err != nil {
		return s.fail(ctx, err)
	}

	var body servers.CreateAssignmentJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, ErrInvalidBody)
	}
	orderID, err := kernelID(body.OrderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	courierID, err := kernelID(body.CourierId)
	if err != nil {
		return s.fail(ctx, err)
	}
	fee, err := kernel.NewMoneyFromFloat(body.DeliveryFee)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateAssignmentCommand(kernel.NewUUID(), orderID, courierID, fee)
	if err != nil {
		return s.fail(ctx, err)
	}
	created, err := s.handlers.CreateAssignment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toAssignment(events.NewAssignmentRecord(created)))
}

// GetAssignment handles GET /api/v1/assignments/{assignmentId}.
func (s *Server) GetAssignment(ctx echo.Context, assignmentId servers.AssignmentId) error {
	p, ok := principalFrom(ctx)
	if !ok {
		return s.fail(ctx, errUnauthorized)
	}
	id, err := kernelID(assignmentId)
	if err != nil {
		return s.fail(ctx, err)
	}
	record, err := s.assignment(ctx.Request().Context(), p, id)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toAssignment(record))
}

// TransitionAssignment handles POST /api/v1/assignments/{assignmentId}/transitions.
func (s *Server) TransitionAssignment(ctx echo.Context, assignmentId servers.AssignmentId) error {
	p, ok := principalFrom(ctx)
	if !ok {
		return s.fail(ctx, errUnauthorized)
	}

	var body servers.TransitionAssignmentJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, ErrInvalidBody)
	}
	target, err := assignment.ParseStatus(string(body.Status))
	if err != nil {
		return s.fail(ctx, err)
	}
	id, err := kernelID(assignmentId)
	if err != nil {
		return s.fail(ctx, err)
	}
	if _, err = s.assignment(ctx.Request().Context(), p, id); err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewTransitionAssignmentCommand(id, target, p.Actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	updated, err := s.handlers.TransitionAssignment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toAssignment(events.NewAssignmentRecord(updated)))
}

// RejectAssignment handles POST /api/v1/assignments/{assignmentId}/reject.
func (s *Server) RejectAssignment(ctx echo.Context, assignmentId servers.AssignmentId) error {
	p, ok := principalFrom(ctx)
	if !ok {
		return s.fail(ctx, errUnauthorized)
	}
	id, err := kernelID(assignmentId)
	if err != nil {
		return s.fail(ctx, err)
	}
	if _, err = s.assignment(ctx.Request().Context(), p, id); err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRejectAssignmentCommand(id, p.Actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	updated, err := s.handlers.RejectAssignment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toAssignment(events.NewAssignmentRecord(updated)))
}

// PickUpAssignment handles POST /api/v1/assignments/{assignmentId}/pickup.
func (s *Server) PickUpAssignment(ctx echo.Context, assignmentId servers.AssignmentId) error {
	p, ok := principalFrom(ctx)
	if !ok {
		return s.fail(ctx, errUnauthorized)
	}
	id, err := kernelID(assignmentId)
	if err != nil {
		return s.fail(ctx, err)
	}
	if _, err = s.assignment(ctx.Request().Context(), p, id); err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewPickUpCommand(id, p.Actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	updated, err := s.handlers.PickUp.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toAssignment(events.NewAssignmentRecord(updated)))
}

// assignment loads the assignment and hides it from couriers it does not belong to.
func (s *Server) assignment(ctx context.Context, p Principal, id kernel.UUID) (events.AssignmentRecord, error) {
	query, err := queries.NewGetAssignmentQuery(id)
	if err != nil {
		return events.AssignmentRecord{}, err
	}
	record, err := s.handlers.GetAssignment.Handle(ctx, query)
	if err != nil {
		return events.AssignmentRecord{}, err
	}
	if p.IsCourier() && record.CourierID != p.CourierID.String() {
		return events.AssignmentRecord{}, ErrForbidden
	}
	return record, nil
}

// GetCouriers handles GET /api/v1/couriers.
func (s *Server) GetCouriers(ctx echo.Context, params servers.GetCouriersParams) error {
	if _, err := s.staff(ctx); err != nil {
		return s.fail(ctx, err)
	}

	availableOnly := params.AvailableOnly != nil && *params.AvailableOnly
	couriers, err := s.handlers.GetAllCouriers.Handle(ctx.Request().Context(),
		queries.NewGetAllCouriersQuery(availableOnly))
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toCouriers(couriers))
}

// CreateCourier handles POST /api/v1/couriers.
func (s *Server) CreateCourier(ctx echo.Context) error {
	if _, err := s.staff(ctx); err != nil {
		return s.fail(ctx, err)
	}

	var body servers.CreateCourierJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, ErrInvalidBody)
	}
	plate := ""
	if body.VehiclePlate != nil {
		plate = *body.VehiclePlate
	}
	vehicle, err := courier.NewVehicle(courier.VehicleType(body.VehicleType), plate)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateCourierCommand(body.Name, body.Phone, vehicle)
	if err != nil {
		return s.fail(ctx, err)
	}
	created, err := s.handlers.CreateCourier.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toCourier(events.NewCourierRecord(created)))
}

// SetCourierAvailability handles PUT /api/v1/couriers/{courierId}/availability.
func (s *Server) SetCourierAvailability(ctx echo.Context, courierId servers.CourierId) error {
	id, err := kernelID(courierId)
	if err != nil {
		return s.fail(ctx, err)
	}
	if _, err = s.courierOrStaff(ctx, id); err != nil {
		return s.fail(ctx, err)
	}

	var body servers.SetCourierAvailabilityJSONRequestBody
	if err = ctx.Bind(&body); err != nil {
		return s.fail(ctx, ErrInvalidBody)
	}
	cmd, err := commands.NewSetCourierAvailabilityCommand(id, body.Available)
	if err != nil {
		return s.fail(ctx, err)
	}
	updated, err := s.handlers.SetCourierAvailability.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toCourier(events.NewCourierRecord(updated)))
}

// ListCourierAssignments handles GET /api/v1/couriers/{courierId}/assignments.
func (s *Server) ListCourierAssignments(
	ctx echo.Context,
	courierId servers.CourierId,
	params servers.ListCourierAssignmentsParams,
) error {
	id, err := kernelID(courierId)
	if err != nil {
		return s.fail(ctx, err)
	}
	if _, err = s.courierOrStaff(ctx, id); err != nil {
		return s.fail(ctx, err)
	}

	liveOnly := params.LiveOnly != nil && *params.LiveOnly
	query, err := queries.NewListCourierAssignmentsQuery(id, liveOnly)
	if err != nil {
		return s.fail(ctx, err)
	}
	records, err := s.handlers.ListCourierAssignments.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toAssignments(records))
}

// GetCourierLocations handles GET /api/v1/couriers/{courierId}/locations.
func (s *Server) GetCourierLocations(
	ctx echo.Context,
	courierId servers.CourierId,
	params servers.GetCourierLocationsParams,
) error {
	id, err := kernelID(courierId)
	if err != nil {
		return s.fail(ctx, err)
	}
	if _, err = s.courierOrStaff(ctx, id); err != nil {
		return s.fail(ctx, err)
	}

	limit := defaultLocationLimit
	if params.Limit != nil {
		limit = *params.Limit
	}
	query, err := queries.NewGetRecentLocationsQuery(id, limit)
	if err != nil {
		return s.fail(ctx, err)
	}
	samples, err := s.handlers.GetRecentLocations.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toLocationSamples(samples))
}

// RecordLocation handles POST /api/v1/couriers/{courierId}/locations. Skipped writes
// are a 200 with the reason; only unknown couriers and storage failures are errors.
func (s *Server) RecordLocation(ctx echo.Context, courierId servers.CourierId) error {
	id, err := kernelID(courierId)
	if err != nil {
		return s.fail(ctx, err)
	}
	if _, err = s.courierOrStaff(ctx, id); err != nil {
		return s.fail(ctx, err)
	}

	var body servers.RecordLocationJSONRequestBody
	if err = ctx.Bind(&body); err != nil {
		return s.fail(ctx, ErrInvalidBody)
	}
	accuracy := 0.0
	if body.Accuracy != nil {
		accuracy = *body.Accuracy
	}

	cmd, err := commands.NewRecordLocationCommand(id, body.Latitude, body.Longitude, accuracy)
	if err != nil {
		return s.fail(ctx, err)
	}
	outcome, err := s.handlers.RecordLocation.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	if outcome.Recorded {
		return ctx.JSON(http.StatusOK, servers.LocationResult{Result: servers.Ack})
	}
	reason := servers.LocationResultReason(outcome.Reason)
	return ctx.JSON(http.StatusOK, servers.LocationResult{Result: servers.Skipped, Reason: &reason})
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	if _, err := s.staff(ctx); err != nil {
		return s.fail(ctx, err)
	}

	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, ErrInvalidBody)
	}
	restaurantID, err := kernelID(body.RestaurantId)
	if err != nil {
		return s.fail(ctx, err)
	}
	customer, err := order.NewCustomer(body.CustomerName, body.CustomerPhone)
	if err != nil {
		return s.fail(ctx, err)
	}
	var position *kernel.GeoPoint
	if body.Latitude != nil && body.Longitude != nil {
		p, pointErr := kernel.NewGeoPoint(*body.Latitude, *body.Longitude)
		if pointErr != nil {
			return s.fail(ctx, pointErr)
		}
		position = &p
	}
	address, err := order.NewAddress(body.Street, position)
	if err != nil {
		return s.fail(ctx, err)
	}
	subtotal, err := kernel.NewMoneyFromFloat(body.Subtotal)
	if err != nil {
		return s.fail(ctx, err)
	}
	fee, err := kernel.NewMoneyFromFloat(body.DeliveryFee)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), restaurantID, customer, address, subtotal, fee)
	if err != nil {
		return s.fail(ctx, err)
	}
	created, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrder(events.NewOrderRecord(created)))
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderId servers.OrderId) error {
	p, err := s.staff(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	id, err := kernelID(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(id, p.Actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	cancelled, err := s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(events.NewOrderRecord(cancelled)))
}

// AdvanceOrderStatus handles PUT /api/v1/orders/{orderId}/status.
func (s *Server) AdvanceOrderStatus(ctx echo.Context, orderId servers.OrderId) error {
	if _, err := s.staff(ctx); err != nil {
		return s.fail(ctx, err)
	}
	id, err := kernelID(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.AdvanceOrderStatusJSONRequestBody
	if err = ctx.Bind(&body); err != nil {
		return s.fail(ctx, ErrInvalidBody)
	}
	target, err := order.ParseStatus(string(body.Status))
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAdvanceOrderStatusCommand(id, target)
	if err != nil {
		return s.fail(ctx, err)
	}
	updated, err := s.handlers.AdvanceOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(events.NewOrderRecord(updated)))
}

// CreateRestaurant handles POST /api/v1/restaurants.
func (s *Server) CreateRestaurant(ctx echo.Context) error {
	if _, err := s.staff(ctx); err != nil {
		return s.fail(ctx, err)
	}

	var body servers.CreateRestaurantJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, ErrInvalidBody)
	}
	position, err := kernel.NewGeoPoint(body.Latitude, body.Longitude)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateRestaurantCommand(kernel.NewUUID(), body.Name, position)
	if err != nil {
		return s.fail(ctx, err)
	}
	created, err := s.handlers.CreateRestaurant.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toRestaurant(events.NewRestaurantRecord(created)))
}

// ListRestaurantOrders handles GET /api/v1/restaurants/{restaurantId}/orders.
func (s *Server) ListRestaurantOrders(
	ctx echo.Context,
	restaurantId servers.RestaurantId,
	params servers.ListRestaurantOrdersParams,
) error {
	if _, err := s.staff(ctx); err != nil {
		return s.fail(ctx, err)
	}
	id, err := kernelID(restaurantId)
	if err != nil {
		return s.fail(ctx, err)
	}

	activeOnly := params.ActiveOnly != nil && *params.ActiveOnly
	query, err := queries.NewListRestaurantOrdersQuery(id, activeOnly)
	if err != nil {
		return s.fail(ctx, err)
	}
	records, err := s.handlers.ListRestaurantOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrders(records))
}
