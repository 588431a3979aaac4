package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// The restaurant moves an order forward through the kitchen states, the dispatch
// coordinator owns the rest:
//
//	pending ─> confirmed ─> preparing ─> ready_for_pickup ─> out_for_delivery ─> delivered
//	   │            │            │               │                   │
//	   └────────────┴────────────┴───────────────┴───────────────────┴──> cancelled
//
// A status never moves backwards. Delivered and cancelled are terminal.
type Status int

const (
	// Unknown marks an uninitialized or unparseable status.
	Unknown Status = iota
	// Pending is the initial status of a placed order.
	Pending
	// Confirmed means the restaurant or the dispatcher acknowledged the order.
	Confirmed
	// Preparing means the kitchen is working on the order.
	Preparing
	// ReadyForPickup means the order waits at the counter for its courier.
	ReadyForPickup
	// OutForDelivery means a courier picked the order up.
	OutForDelivery
	// Delivered is terminal.
	Delivered
	// Cancelled is terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Pending:        "pending",
		Confirmed:      "confirmed",
		Preparing:      "preparing",
		ReadyForPickup: "ready_for_pickup",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
	}
}

// progress orders the non-cancelled statuses along the happy path.
func getStatusProgress() map[Status]int {
	//nolint:exhaustive // Unknown and Cancelled are off the happy path
	return map[Status]int{
		Pending:        0,
		Confirmed:      1,
		Preparing:      2,
		ReadyForPickup: 3,
		OutForDelivery: 4,
		Delivered:      5,
	}
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Confirmed, Preparing, ReadyForPickup, OutForDelivery, Delivered, Cancelled}
}

// ParseStatus converts the wire/persistence form ("ready_for_pickup") into a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"order status", fmt.Errorf("%q is not a valid order status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause(
			"order status", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsKitchenStatus reports whether the restaurant may still move the order itself.
func (s Status) IsKitchenStatus() bool {
	return s == Pending || s == Confirmed || s == Preparing || s == ReadyForPickup
}

// IsAwaitingCourier reports whether an order in this status can be handed to a courier.
func (s Status) IsAwaitingCourier() bool {
	return s == Confirmed || s == Preparing || s == ReadyForPickup
}

// precedes reports whether s comes strictly before other on the happy path.
func (s Status) precedes(other Status) bool {
	progress := getStatusProgress()
	from, okFrom := progress[s]
	to, okTo := progress[other]
	return okFrom && okTo && from < to
}
