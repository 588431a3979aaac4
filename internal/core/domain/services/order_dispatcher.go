package services

import (
	"errors"
	"math"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// ErrCourierNotFound is returned when no courier qualifies for an order.
var ErrCourierNotFound = errors.New("courier not found")

// OrderDispatcher picks the courier the automated trigger assigns to an order.
//
// Selection rules:
//   - only active, available couriers with a known position qualify
//   - the courier must be within radiusKm of the pickup point (haversine)
//   - the nearest courier wins; ties go to the courier with fewer live assignments
//
// Example:
//
//	dispatcher := services.NewOrderDispatcher(3)
//	best, err := dispatcher.FindNearest(restaurant.Position(), couriers)
//	if errors.Is(err, services.ErrCourierNotFound) {
//	    // nobody close enough, try again on the next tick
//	}
type OrderDispatcher struct {
	radiusKm float64
}

// NewOrderDispatcher creates a dispatcher with a search radius. A non-positive radius
// means unlimited.
func NewOrderDispatcher(radiusKm float64) OrderDispatcher {
	if radiusKm <= 0 {
		radiusKm = math.Inf(1)
	}
	return OrderDispatcher{radiusKm: radiusKm}
}

// FindNearest returns the best courier for a pickup at origin.
func (d OrderDispatcher) FindNearest(origin kernel.GeoPoint, couriers []*courier.Courier) (*courier.Courier, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}

	var (
		best     *courier.Courier
		bestDist = math.MaxFloat64
	)

	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if c.ValidateCanTakeAssignment() != nil {
			continue
		}

		position, ok := c.Position()
		if !ok {
			continue
		}

		dist, err := origin.DistanceKm(position)
		if err != nil {
			return nil, err
		}
		if dist > d.radiusKm {
			continue
		}

		if best == nil || dist < bestDist ||
			(dist == bestDist && c.ActiveAssignments() < best.ActiveAssignments()) {
			best = c
			bestDist = dist
		}
	}

	if best == nil {
		return nil, ErrCourierNotFound
	}
	return best, nil
}
