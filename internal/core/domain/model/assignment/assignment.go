package assignment

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// Change kinds recorded by Assignment for the outbox.
const (
	ChangeCreated       = "assignment.created"
	ChangeStatusChanged = "assignment.status_changed"
)

var ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")

// Assignment binds one order to one courier. It is the aggregate root the dispatch
// coordinator transitions; order and courier follow it.
//
// Every status carries the time it was entered. The restaurant id is copied from the
// order so subscribers of a restaurant can be routed without a join.
type Assignment struct {
	kernel.ChangeLog

	id           kernel.UUID
	orderID      kernel.UUID
	courierID    kernel.UUID
	restaurantID kernel.UUID
	status       Status
	deliveryFee  kernel.Money
	timestamps   Timestamps
	updatedAt    time.Time

	guard guard.ConstructorGuard
}

// Timestamps records when each status was entered. Nil means never.
type Timestamps struct {
	AssignedAt  time.Time
	AcceptedAt  *time.Time
	PickedUpAt  *time.Time
	OnTheWayAt  *time.Time
	DeliveredAt *time.Time
	RejectedAt  *time.Time
	CancelledAt *time.Time
}

// NewAssignment creates an assignment in status assigned.
func NewAssignment(
	id, orderID, courierID, restaurantID kernel.UUID,
	deliveryFee kernel.Money,
	now time.Time,
) (*Assignment, error) {
	a := &Assignment{
		status:     StatusAssigned,
		timestamps: Timestamps{AssignedAt: now},
		updatedAt:  now,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setIDs(id, orderID, courierID, restaurantID),
		deliveryFee.Validate(),
	); err != nil {
		return nil, err
	}

	a.deliveryFee = deliveryFee
	a.RecordChange(ChangeCreated)
	return a, nil
}

// RestoreParams carries a persisted assignment back into the domain.
type RestoreParams struct {
	ID           kernel.UUID
	OrderID      kernel.UUID
	CourierID    kernel.UUID
	RestaurantID kernel.UUID
	Status       Status
	DeliveryFee  kernel.Money
	Timestamps   Timestamps
	UpdatedAt    time.Time
}

// RestoreAssignment rebuilds an assignment loaded from storage. No change is recorded.
func RestoreAssignment(p RestoreParams) (*Assignment, error) {
	a := &Assignment{
		timestamps: p.Timestamps,
		updatedAt:  p.UpdatedAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setIDs(p.ID, p.OrderID, p.CourierID, p.RestaurantID),
		p.DeliveryFee.Validate(),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}

	a.status = p.Status
	a.deliveryFee = p.DeliveryFee
	return a, nil
}

func (a *Assignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

func (a *Assignment) IsEqual(other *Assignment) bool {
	return other != nil && a.id.IsEqual(other.id)
}

func (a *Assignment) ID() kernel.UUID           { return a.id }
func (a *Assignment) OrderID() kernel.UUID      { return a.orderID }
func (a *Assignment) CourierID() kernel.UUID    { return a.courierID }
func (a *Assignment) RestaurantID() kernel.UUID { return a.restaurantID }
func (a *Assignment) Status() Status            { return a.status }
func (a *Assignment) DeliveryFee() kernel.Money { return a.deliveryFee }
func (a *Assignment) Timestamps() Timestamps    { return a.timestamps }
func (a *Assignment) UpdatedAt() time.Time      { return a.updatedAt }

// Transition moves the assignment to target on behalf of actor.
//
// Asking for the status the assignment is already in is a no-op success: it reports false
// and changes nothing, so retried requests are harmless. Any other edge must be allowed by
// the transition table, otherwise an InvalidTransitionError is returned.
func (a *Assignment) Transition(target Status, actor Actor, now time.Time) (bool, error) {
	if err := errors.Join(target.Validate(), actor.Validate()); err != nil {
		return false, err
	}
	if target == a.status {
		return false, nil
	}
	if err := CanTransition(a.status, target, actor); err != nil {
		return false, err
	}

	a.status = target
	a.stamp(target, now)
	a.updatedAt = now
	a.RecordChange(ChangeStatusChanged)
	return true, nil
}

func (a *Assignment) stamp(s Status, now time.Time) {
	at := now
	switch s {
	case StatusAccepted:
		a.timestamps.AcceptedAt = &at
	case StatusPickedUp:
		a.timestamps.PickedUpAt = &at
	case StatusOnTheWay:
		a.timestamps.OnTheWayAt = &at
	case StatusDelivered:
		a.timestamps.DeliveredAt = &at
	case StatusRejected:
		a.timestamps.RejectedAt = &at
	case StatusCancelled:
		a.timestamps.CancelledAt = &at
	case StatusAssigned, StatusUnknown:
	}
}

func (a *Assignment) setIDs(id, orderID, courierID, restaurantID kernel.UUID) error {
	if err := errors.Join(id.Validate(), orderID.Validate(), courierID.Validate(), restaurantID.Validate()); err != nil {
		return err
	}
	a.id = id
	a.orderID = orderID
	a.courierID = courierID
	a.restaurantID = restaurantID
	return nil
}
