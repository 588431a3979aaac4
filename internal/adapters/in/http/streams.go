package http

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/adapters/out/realtime"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/generated/servers"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// DefaultNearbyRadiusKm is used when the nearby couriers stream is opened without a radius.
const DefaultNearbyRadiusKm = 5.0

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = pongWait * 9 / 10
	maxReadBytes = 512
)

// StreamCourierAssignments handles GET /api/v1/couriers/{courierId}/assignments/stream.
func (s *Server) StreamCourierAssignments(
	ctx echo.Context,
	courierId servers.CourierId,
	params servers.StreamCourierAssignmentsParams,
) error {
	id, err := kernelID(courierId)
	if err != nil {
		return s.fail(ctx, err)
	}
	if _, err = s.courierOrStaff(ctx, id); err != nil {
		return s.fail(ctx, err)
	}
	scope, err := realtime.CourierAssignments(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	return s.stream(ctx, scope, params.LastEventId)
}

// StreamRestaurantOrders handles GET /api/v1/restaurants/{restaurantId}/orders/stream.
func (s *Server) StreamRestaurantOrders(
	ctx echo.Context,
	restaurantId servers.RestaurantId,
	params servers.StreamRestaurantOrdersParams,
) error {
	if _, err := s.staff(ctx); err != nil {
		return s.fail(ctx, err)
	}
	id, err := kernelID(restaurantId)
	if err != nil {
		return s.fail(ctx, err)
	}
	scope, err := realtime.RestaurantOrders(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	return s.stream(ctx, scope, params.LastEventId)
}

// StreamNearbyCouriers handles GET /api/v1/restaurants/{restaurantId}/couriers/stream.
// The stream is centred on the restaurant's position.
func (s *Server) StreamNearbyCouriers(
	ctx echo.Context,
	restaurantId servers.RestaurantId,
	params servers.StreamNearbyCouriersParams,
) error {
	if _, err := s.staff(ctx); err != nil {
		return s.fail(ctx, err)
	}
	id, err := kernelID(restaurantId)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetRestaurantQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	restaurant, err := s.handlers.GetRestaurant.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	center, err := kernel.NewGeoPoint(restaurant.Latitude, restaurant.Longitude)
	if err != nil {
		return s.fail(ctx, err)
	}

	radius := DefaultNearbyRadiusKm
	if params.RadiusKm != nil {
		radius = *params.RadiusKm
	}
	scope, err := realtime.NearbyCouriers(id, center, radius)
	if err != nil {
		return s.fail(ctx, err)
	}

	return s.stream(ctx, scope, params.LastEventId)
}

// stream upgrades the request and writes frames of the subscription until the client
// goes away or the hub shuts down. Clients only send pongs and close frames.
func (s *Server) stream(ctx echo.Context, scope realtime.Scope, lastEventID *string) error {
	conn, err := s.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		// The upgrader has already answered with an HTTP error.
		s.logger.DebugContext(ctx.Request().Context(), "websocket upgrade failed",
			"scope", scope.String(), "error", err)
		return nil
	}
	defer conn.Close()

	last := ""
	if lastEventID != nil {
		last = *lastEventID
	}
	sub := s.streams.Subscribe(scope, last)
	defer sub.Close()

	streamCtx, cancel := context.WithCancel(context.WithoutCancel(ctx.Request().Context()))
	defer cancel()
	go readPump(conn, cancel)
	go pingPump(streamCtx, conn)

	s.logger.DebugContext(streamCtx, "stream opened", "scope", scope.String(), "last_event_id", last)
	for {
		frame, err := sub.Next(streamCtx)
		if err != nil {
			if errors.Is(err, realtime.ErrSubscriptionClosed) {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
					time.Now().Add(writeWait))
			}
			s.logger.DebugContext(streamCtx, "stream closed", "scope", scope.String(), "reason", err)
			return nil
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err = conn.WriteJSON(frame); err != nil {
			s.logger.DebugContext(streamCtx, "stream write failed", "scope", scope.String(), "error", err)
			return nil
		}
	}
}

// readPump drains client frames so pongs and close frames are processed, and cancels the
// stream once the connection is gone.
func readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(maxReadBytes)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

func pingPump(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// WriteControl may run concurrently with WriteJSON.
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
