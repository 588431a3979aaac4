package events

import (
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/restaurant"
	"dispatch/internal/core/domain/model/tracking"
)

// OrderRecord is the full snapshot of an order.
type OrderRecord struct {
	ID            string    `json:"id"`
	RestaurantID  string    `json:"restaurant_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	Street        string    `json:"street"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	Subtotal      string    `json:"subtotal"`
	DeliveryFee   string    `json:"delivery_fee"`
	Total         string    `json:"total"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CourierRecord is the full snapshot of a courier.
type CourierRecord struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Phone              string     `json:"phone"`
	VehicleType        string     `json:"vehicle_type"`
	VehiclePlate       string     `json:"vehicle_plate,omitempty"`
	IsActive           bool       `json:"is_active"`
	IsAvailable        bool       `json:"is_available"`
	CourierStatus      string     `json:"courier_status"`
	ActiveAssignments  int        `json:"active_assignments"`
	CurrentLatitude    *float64   `json:"current_latitude,omitempty"`
	CurrentLongitude   *float64   `json:"current_longitude,omitempty"`
	LastLocationUpdate *time.Time `json:"last_location_update,omitempty"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// AssignmentRecord is the full snapshot of a delivery assignment.
type AssignmentRecord struct {
	ID           string     `json:"id"`
	OrderID      string     `json:"order_id"`
	CourierID    string     `json:"courier_id"`
	RestaurantID string     `json:"restaurant_id"`
	Status       string     `json:"status"`
	DeliveryFee  string     `json:"delivery_fee"`
	AssignedAt   time.Time  `json:"assigned_at"`
	AcceptedAt   *time.Time `json:"accepted_at,omitempty"`
	PickedUpAt   *time.Time `json:"picked_up_at,omitempty"`
	OnTheWayAt   *time.Time `json:"on_the_way_at,omitempty"`
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`
	RejectedAt   *time.Time `json:"rejected_at,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// LocationSampleRecord is one accepted courier position.
type LocationSampleRecord struct {
	ID         string    `json:"id"`
	CourierID  string    `json:"courier_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Accuracy   float64   `json:"accuracy"`
	RecordedAt time.Time `json:"recorded_at"`
}

// RestaurantRecord is the restaurant read model.
type RestaurantRecord struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func NewOrderRecord(o *order.Order) OrderRecord {
	r := OrderRecord{
		ID:            o.ID().String(),
		RestaurantID:  o.RestaurantID().String(),
		CustomerName:  o.Customer().Name(),
		CustomerPhone: o.Customer().Phone(),
		Street:        o.Address().Street(),
		Subtotal:      o.Subtotal().String(),
		DeliveryFee:   o.DeliveryFee().String(),
		Total:         o.Total().String(),
		Status:        o.Status().String(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}
	if p, ok := o.Address().Position(); ok {
		lat, lng := p.Latitude(), p.Longitude()
		r.Latitude, r.Longitude = &lat, &lng
	}
	return r
}

func NewCourierRecord(c *courier.Courier) CourierRecord {
	r := CourierRecord{
		ID:                c.ID().String(),
		Name:              c.Name(),
		Phone:             c.Phone(),
		VehicleType:       string(c.Vehicle().Type()),
		VehiclePlate:      c.Vehicle().Plate(),
		IsActive:          c.IsActive(),
		IsAvailable:       c.IsAvailable(),
		CourierStatus:     c.Status().String(),
		ActiveAssignments: c.ActiveAssignments(),
		UpdatedAt:         c.UpdatedAt(),
	}
	if p, ok := c.Position(); ok {
		lat, lng := p.Latitude(), p.Longitude()
		r.CurrentLatitude, r.CurrentLongitude = &lat, &lng
	}
	if last, ok := c.LastLocationUpdate(); ok {
		r.LastLocationUpdate = &last
	}
	return r
}

func NewAssignmentRecord(a *assignment.Assignment) AssignmentRecord {
	ts := a.Timestamps()
	return AssignmentRecord{
		ID:           a.ID().String(),
		OrderID:      a.OrderID().String(),
		CourierID:    a.CourierID().String(),
		RestaurantID: a.RestaurantID().String(),
		Status:       a.Status().String(),
		DeliveryFee:  a.DeliveryFee().String(),
		AssignedAt:   ts.AssignedAt,
		AcceptedAt:   ts.AcceptedAt,
		PickedUpAt:   ts.PickedUpAt,
		OnTheWayAt:   ts.OnTheWayAt,
		DeliveredAt:  ts.DeliveredAt,
		RejectedAt:   ts.RejectedAt,
		CancelledAt:  ts.CancelledAt,
		UpdatedAt:    a.UpdatedAt(),
	}
}

func NewLocationSampleRecord(s tracking.Sample) LocationSampleRecord {
	return LocationSampleRecord{
		ID:         s.ID().String(),
		CourierID:  s.CourierID().String(),
		Latitude:   s.Position().Latitude(),
		Longitude:  s.Position().Longitude(),
		Accuracy:   s.Accuracy(),
		RecordedAt: s.RecordedAt(),
	}
}

func NewRestaurantRecord(r *restaurant.Restaurant) RestaurantRecord {
	return RestaurantRecord{
		ID:        r.ID().String(),
		Name:      r.Name(),
		Latitude:  r.Position().Latitude(),
		Longitude: r.Position().Longitude(),
	}
}
