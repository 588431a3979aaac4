package realtime

import (
	"fmt"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ScopeKind names what a subscription listens to.
type ScopeKind string

const (
	ScopeCourierAssignments ScopeKind = "courier_assignments"
	ScopeRestaurantOrders   ScopeKind = "restaurant_orders"
	ScopeNearbyCouriers     ScopeKind = "nearby_couriers"
)

// Scope selects the envelopes one subscriber receives.
type Scope struct {
	kind         ScopeKind
	courierID    string
	restaurantID string
	center       kernel.GeoPoint
	radiusKm     float64
}

// CourierAssignments receives every assignment of the courier.
func CourierAssignments(courierID kernel.UUID) (Scope, error) {
	if err := courierID.Validate(); err != nil {
		return Scope{}, errs.NewValueIsRequiredErrorWithCause("courierID", err)
	}
	return Scope{kind: ScopeCourierAssignments, courierID: courierID.String()}, nil
}

// RestaurantOrders receives every order of the restaurant.
func RestaurantOrders(restaurantID kernel.UUID) (Scope, error) {
	if err := restaurantID.Validate(); err != nil {
		return Scope{}, errs.NewValueIsRequiredErrorWithCause("restaurantID", err)
	}
	return Scope{kind: ScopeRestaurantOrders, restaurantID: restaurantID.String()}, nil
}

// NearbyCouriers receives courier snapshots and positions within radiusKm of center.
func NearbyCouriers(restaurantID kernel.UUID, center kernel.GeoPoint, radiusKm float64) (Scope, error) {
	if err := restaurantID.Validate(); err != nil {
		return Scope{}, errs.NewValueIsRequiredErrorWithCause("restaurantID", err)
	}
	if err := center.Validate(); err != nil {
		return Scope{}, err
	}
	if radiusKm <= 0 || radiusKm > MaxRadiusKm {
		return Scope{}, errs.NewValueIsOutOfRangeError("radiusKm", radiusKm, 0, MaxRadiusKm)
	}
	return Scope{
		kind:         ScopeNearbyCouriers,
		restaurantID: restaurantID.String(),
		center:       center,
		radiusKm:     radiusKm,
	}, nil
}

// MaxRadiusKm bounds the nearby couriers scope.
const MaxRadiusKm = 50.0

func (s Scope) Kind() ScopeKind { return s.kind }

func (s Scope) String() string {
	switch s.kind {
	case ScopeCourierAssignments:
		return fmt.Sprintf("%s:%s", s.kind, s.courierID)
	case ScopeNearbyCouriers:
		return fmt.Sprintf("%s:%s:%.1fkm", s.kind, s.restaurantID, s.radiusKm)
	default:
		return fmt.Sprintf("%s:%s", s.kind, s.restaurantID)
	}
}

// Matches reports whether the envelope belongs to the scope.
func (s Scope) Matches(e events.Envelope) bool {
	switch s.kind {
	case ScopeCourierAssignments:
		return e.IsAssignmentEvent() && e.CourierID == s.courierID
	case ScopeRestaurantOrders:
		return e.IsOrderEvent() && e.RestaurantID == s.restaurantID
	case ScopeNearbyCouriers:
		lat, lng, ok := courierPosition(e)
		if !ok {
			return false
		}
		p, err := kernel.NewGeoPoint(lat, lng)
		if err != nil {
			return false
		}
		d, err := s.center.DistanceKm(p)
		return err == nil && d <= s.radiusKm
	default:
		return false
	}
}

func courierPosition(e events.Envelope) (float64, float64, bool) {
	switch {
	case e.Location != nil:
		return e.Location.Latitude, e.Location.Longitude, true
	case e.Courier != nil && e.Courier.CurrentLatitude != nil && e.Courier.CurrentLongitude != nil:
		return *e.Courier.CurrentLatitude, *e.Courier.CurrentLongitude, true
	default:
		return 0, 0, false
	}
}
