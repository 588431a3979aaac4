// Package queries contains read operations of the CQRS split. Handlers read straight from
// the database and return the same records the realtime notifier sends, so a
// reconciliation fetch can replace any state a subscriber built from events.
package queries

import (
	"time"

	"dispatch/internal/core/domain/events"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const moneyPlaces = 2

type orderRow struct {
	ID            uuid.UUID
	RestaurantID  uuid.UUID
	CustomerName  string
	CustomerPhone string
	Street        string
	Latitude      *float64
	Longitude     *float64
	Subtotal      decimal.Decimal
	DeliveryFee   decimal.Decimal
	Total         decimal.Decimal
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r orderRow) record() events.OrderRecord {
	return events.OrderRecord{
		ID:            r.ID.String(),
		RestaurantID:  r.RestaurantID.String(),
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Street:        r.Street,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		Subtotal:      r.Subtotal.StringFixed(moneyPlaces),
		DeliveryFee:   r.DeliveryFee.StringFixed(moneyPlaces),
		Total:         r.Total.StringFixed(moneyPlaces),
		Status:        r.Status,
		CreatedAt:     r.CreatedAt.UTC(),
		UpdatedAt:     r.UpdatedAt.UTC(),
	}
}

type courierRow struct {
	ID                 uuid.UUID
	Name               string
	Phone              string
	VehicleType        string
	VehiclePlate       string
	IsActive           bool
	IsAvailable        bool
	CourierStatus      string
	ActiveAssignments  int
	CurrentLatitude    *float64
	CurrentLongitude   *float64
	LastLocationUpdate *time.Time
	UpdatedAt          time.Time
}

func (r courierRow) record() events.CourierRecord {
	return events.CourierRecord{
		ID:                 r.ID.String(),
		Name:               r.Name,
		Phone:              r.Phone,
		VehicleType:        r.VehicleType,
		VehiclePlate:       r.VehiclePlate,
		IsActive:           r.IsActive,
		IsAvailable:        r.IsAvailable,
		CourierStatus:      r.CourierStatus,
		ActiveAssignments:  r.ActiveAssignments,
		CurrentLatitude:    r.CurrentLatitude,
		CurrentLongitude:   r.CurrentLongitude,
		LastLocationUpdate: utcPtr(r.LastLocationUpdate),
		UpdatedAt:          r.UpdatedAt.UTC(),
	}
}

type assignmentRow struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	CourierID    uuid.UUID
	RestaurantID uuid.UUID
	Status       string
	DeliveryFee  decimal.Decimal
	AssignedAt   time.Time
	AcceptedAt   *time.Time
	PickedUpAt   *time.Time
	OnTheWayAt   *time.Time
	DeliveredAt  *time.Time
	RejectedAt   *time.Time
	CancelledAt  *time.Time
	UpdatedAt    time.Time
}

func (r assignmentRow) record() events.AssignmentRecord {
	return events.AssignmentRecord{
		ID:           r.ID.String(),
		OrderID:      r.OrderID.String(),
		CourierID:    r.CourierID.String(),
		RestaurantID: r.RestaurantID.String(),
		Status:       r.Status,
		DeliveryFee:  r.DeliveryFee.StringFixed(moneyPlaces),
		AssignedAt:   r.AssignedAt.UTC(),
		AcceptedAt:   utcPtr(r.AcceptedAt),
		PickedUpAt:   utcPtr(r.PickedUpAt),
		OnTheWayAt:   utcPtr(r.OnTheWayAt),
		DeliveredAt:  utcPtr(r.DeliveredAt),
		RejectedAt:   utcPtr(r.RejectedAt),
		CancelledAt:  utcPtr(r.CancelledAt),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
}

type restaurantRow struct {
	ID        uuid.UUID
	Name      string
	Latitude  float64
	Longitude float64
}

func (r restaurantRow) record() events.RestaurantRecord {
	return events.RestaurantRecord{
		ID:        r.ID.String(),
		Name:      r.Name,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
	}
}

const assignmentColumns = `
	id, order_id, courier_id, restaurant_id, status, delivery_fee,
	assigned_at, accepted_at, picked_up_at, on_the_way_at, delivered_at, rejected_at, cancelled_at,
	updated_at`

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
