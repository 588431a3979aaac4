package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Change kinds recorded by Order for the outbox.
const (
	ChangeCreated       = "order.created"
	ChangeStatusChanged = "order.status_changed"
)

// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is a customer order placed with a restaurant. It is the aggregate root for the
// order lifecycle; the courier side of the lifecycle is driven by the dispatch coordinator
// through Promote and Cancel, the kitchen side through Advance.
//
// Order follows these invariants:
//   - id and restaurant id are valid
//   - total equals subtotal plus delivery fee
//   - status only moves forward (see Status)
type Order struct {
	kernel.ChangeLog

	id           kernel.UUID
	restaurantID kernel.UUID
	customer     Customer
	address      Address
	subtotal     kernel.Money
	deliveryFee  kernel.Money
	total        kernel.Money
	status       Status
	createdAt    time.Time
	updatedAt    time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a pending order and records ChangeCreated.
//
// Example:
//
//	customer, _ := order.NewCustomer("Ayşe", "+90 555 000 00 00")
//	address, _ := order.NewAddress("Istiklal Cd. 10", nil)
//	o, err := order.NewOrder(kernel.NewUUID(), restaurantID, customer, address, subtotal, fee, clock.Now())
func NewOrder(
	id kernel.UUID,
	restaurantID kernel.UUID,
	customer Customer,
	address Address,
	subtotal kernel.Money,
	deliveryFee kernel.Money,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:    Pending,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setRestaurantID(restaurantID),
		o.setCustomer(customer),
		o.setAddress(address),
		o.setAmounts(subtotal, deliveryFee),
	); err != nil {
		return nil, err
	}

	o.RecordChange(ChangeCreated)
	return o, nil
}

// RestoreParams carries a persisted order back into the domain.
type RestoreParams struct {
	ID           kernel.UUID
	RestaurantID kernel.UUID
	Customer     Customer
	Address      Address
	Subtotal     kernel.Money
	DeliveryFee  kernel.Money
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RestoreOrder rebuilds an order loaded from storage. No change is recorded.
func RestoreOrder(p RestoreParams) (*Order, error) {
	o := &Order{
		createdAt: p.CreatedAt,
		updatedAt: p.UpdatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setRestaurantID(p.RestaurantID),
		o.setCustomer(p.Customer),
		o.setAddress(p.Address),
		o.setAmounts(p.Subtotal, p.DeliveryFee),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = p.Status
	return o, nil
}

// Validate ensures the order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by id.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID           { return o.id }
func (o *Order) RestaurantID() kernel.UUID { return o.restaurantID }
func (o *Order) Customer() Customer        { return o.customer }
func (o *Order) Address() Address          { return o.address }
func (o *Order) Subtotal() kernel.Money    { return o.subtotal }
func (o *Order) DeliveryFee() kernel.Money { return o.deliveryFee }
func (o *Order) Total() kernel.Money       { return o.total }
func (o *Order) Status() Status            { return o.status }
func (o *Order) CreatedAt() time.Time      { return o.createdAt }
func (o *Order) UpdatedAt() time.Time      { return o.updatedAt }

// ValidateAssignable checks that a courier can still be assigned: the order is neither
// terminal nor already handed over.
func (o *Order) ValidateAssignable() error {
	if o.status.IsTerminal() || o.status == OutForDelivery {
		return errs.NewValueIsInvalidErrorWithCause(
			"order status",
			fmt.Errorf("order %s is %s and cannot be assigned", o.id, o.status),
		)
	}
	return nil
}

// Promote moves the order towards target on behalf of the dispatch coordinator.
//
// Rules:
//   - target equal to the current status is a no-op
//   - a target behind the current status is a no-op (accepting an assignment while the
//     kitchen is preparing keeps preparing)
//   - a terminal order cannot move
//
// It reports whether the status changed.
func (o *Order) Promote(target Status, now time.Time) (bool, error) {
	if err := target.Validate(); err != nil {
		return false, err
	}
	if target == o.status {
		return false, nil
	}
	if o.status.IsTerminal() {
		return false, o.transitionError(target, "dispatcher", nil)
	}
	if target == Cancelled {
		o.setStatus(Cancelled, now)
		return true, nil
	}
	if !o.status.precedes(target) {
		return false, nil
	}
	o.setStatus(target, now)
	return true, nil
}

// Cancel cancels a non-delivered order. Cancelling a cancelled order is a no-op.
func (o *Order) Cancel(now time.Time) (bool, error) {
	if o.status == Cancelled {
		return false, nil
	}
	if o.status == Delivered {
		return false, o.transitionError(Cancelled, "dispatcher", nil)
	}
	o.setStatus(Cancelled, now)
	return true, nil
}

// Advance applies a restaurant-side progression (pending → confirmed → preparing →
// ready_for_pickup). Steps may be skipped, never reversed. Statuses owned by the
// dispatch coordinator are rejected with an InvalidTransitionError.
func (o *Order) Advance(target Status, now time.Time) (bool, error) {
	if err := target.Validate(); err != nil {
		return false, err
	}
	if target == o.status && target.IsKitchenStatus() {
		return false, nil
	}

	allowed := o.kitchenTargets()
	if !target.IsKitchenStatus() || target == Pending || !o.status.IsKitchenStatus() || !o.status.precedes(target) {
		return false, o.transitionError(target, "restaurant", allowed)
	}

	o.setStatus(target, now)
	return true, nil
}

func (o *Order) kitchenTargets() []string {
	var allowed []string
	if !o.status.IsKitchenStatus() {
		return allowed
	}
	for _, s := range []Status{Confirmed, Preparing, ReadyForPickup} {
		if o.status.precedes(s) {
			allowed = append(allowed, s.String())
		}
	}
	return allowed
}

func (o *Order) transitionError(target Status, actor string, allowed []string) error {
	return errs.NewInvalidTransitionError("order", o.status.String(), target.String(), actor, allowed)
}

func (o *Order) setStatus(status Status, now time.Time) {
	o.status = status
	o.updatedAt = now
	o.RecordChange(ChangeStatusChanged)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurant id", err)
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setCustomer(c Customer) error {
	if c.name == "" || c.phone == "" {
		return errs.NewValueIsRequiredError("customer")
	}
	o.customer = c
	return nil
}

func (o *Order) setAddress(a Address) error {
	if a.street == "" {
		return ErrStreetIsRequired
	}
	o.address = a
	return nil
}

func (o *Order) setAmounts(subtotal, deliveryFee kernel.Money) error {
	if err := errors.Join(subtotal.Validate(), deliveryFee.Validate()); err != nil {
		return err
	}
	o.subtotal = subtotal
	o.deliveryFee = deliveryFee
	o.total = subtotal.Add(deliveryFee)
	return nil
}
