package events

import (
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/tracking"
)

// Type names the change an envelope carries.
type Type string

const (
	AssignmentCreated       Type = Type(assignment.ChangeCreated)
	AssignmentStatusChanged Type = Type(assignment.ChangeStatusChanged)
	OrderCreated            Type = Type(order.ChangeCreated)
	OrderStatusChanged      Type = Type(order.ChangeStatusChanged)
	CourierCreated          Type = Type(courier.ChangeCreated)
	CourierStatusChanged    Type = Type(courier.ChangeStatusChanged)
	CourierLocationRecorded Type = "courier.location_recorded"
)

// Envelope is the unit the realtime notifier delivers. Exactly one of the record fields
// is set and holds a full snapshot of the mutated record, so consumers never need to
// merge partial updates. Delivery is at least once: consumers deduplicate on ID.
type Envelope struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`

	// Routing keys.
	CourierID    string `json:"courier_id,omitempty"`
	RestaurantID string `json:"restaurant_id,omitempty"`
	OrderID      string `json:"order_id,omitempty"`

	Assignment *AssignmentRecord     `json:"assignment,omitempty"`
	Order      *OrderRecord          `json:"order,omitempty"`
	Courier    *CourierRecord        `json:"courier,omitempty"`
	Location   *LocationSampleRecord `json:"location,omitempty"`
}

// AssignmentEvent, OrderEvent and CourierEvent are the envelopes of one subscription
// scope each; they share the Envelope layout.
type (
	AssignmentEvent = Envelope
	OrderEvent      = Envelope
	CourierEvent    = Envelope
)

// IsAssignmentEvent reports whether the envelope carries an assignment.
func (e Envelope) IsAssignmentEvent() bool { return e.Assignment != nil }

// IsOrderEvent reports whether the envelope carries an order.
func (e Envelope) IsOrderEvent() bool { return e.Order != nil }

// IsCourierEvent reports whether the envelope carries a courier or a courier position.
func (e Envelope) IsCourierEvent() bool { return e.Courier != nil || e.Location != nil }

func NewAssignmentEvent(t Type, a *assignment.Assignment, at time.Time) AssignmentEvent {
	record := NewAssignmentRecord(a)
	return Envelope{
		ID:           kernel.NewUUID().String(),
		Type:         t,
		OccurredAt:   at,
		CourierID:    record.CourierID,
		RestaurantID: record.RestaurantID,
		OrderID:      record.OrderID,
		Assignment:   &record,
	}
}

func NewOrderEvent(t Type, o *order.Order, at time.Time) OrderEvent {
	record := NewOrderRecord(o)
	return Envelope{
		ID:           kernel.NewUUID().String(),
		Type:         t,
		OccurredAt:   at,
		RestaurantID: record.RestaurantID,
		OrderID:      record.ID,
		Order:        &record,
	}
}

func NewCourierEvent(t Type, c *courier.Courier, at time.Time) CourierEvent {
	record := NewCourierRecord(c)
	return Envelope{
		ID:         kernel.NewUUID().String(),
		Type:       t,
		OccurredAt: at,
		CourierID:  record.ID,
		Courier:    &record,
	}
}

// NewLocationEvent wraps an accepted position. Location events skip the outbox.
func NewLocationEvent(s tracking.Sample) CourierEvent {
	record := NewLocationSampleRecord(s)
	return Envelope{
		ID:         kernel.NewUUID().String(),
		Type:       CourierLocationRecorded,
		OccurredAt: s.RecordedAt(),
		CourierID:  record.CourierID,
		Location:   &record,
	}
}

// Source is an aggregate that records its changes.
type Source interface {
	Changes() []string
	ClearChanges()
}

// Collect turns the changes recorded by a tracked aggregate into envelopes, snapshotting
// the aggregate as it is now, and clears them. Unknown aggregates yield nothing.
func Collect(aggregate any, at time.Time) []Envelope {
	src, ok := aggregate.(Source)
	if !ok {
		return nil
	}
	changes := src.Changes()
	if len(changes) == 0 {
		return nil
	}

	out := make([]Envelope, 0, len(changes))
	for _, change := range changes {
		t := Type(change)
		switch agg := aggregate.(type) {
		case *assignment.Assignment:
			out = append(out, NewAssignmentEvent(t, agg, at))
		case *order.Order:
			out = append(out, NewOrderEvent(t, agg, at))
		case *courier.Courier:
			out = append(out, NewCourierEvent(t, agg, at))
		}
	}
	src.ClearChanges()
	return out
}
