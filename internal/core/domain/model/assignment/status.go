package assignment

import (
	"fmt"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// Status is the lifecycle state of a delivery assignment.
//
//	assigned ─> accepted ─> picked_up ─> on_the_way ─> delivered
//	   │  │         │            │            │
//	   │  └─────────┴────────────┴────────────┴──> cancelled
//	   └──> rejected
//
// Delivered, rejected and cancelled are terminal.
type Status int

const (
	StatusUnknown Status = iota
	StatusAssigned
	StatusAccepted
	StatusRejected
	StatusPickedUp
	StatusOnTheWay
	StatusDelivered
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusAssigned:  "assigned",
		StatusAccepted:  "accepted",
		StatusRejected:  "rejected",
		StatusPickedUp:  "picked_up",
		StatusOnTheWay:  "on_the_way",
		StatusDelivered: "delivered",
		StatusCancelled: "cancelled",
	}
}

// AllStatuses lists every valid status.
func AllStatuses() []Status {
	return []Status{
		StatusAssigned, StatusAccepted, StatusRejected, StatusPickedUp,
		StatusOnTheWay, StatusDelivered, StatusCancelled,
	}
}

// LiveStatuses lists the statuses counted by a courier's active assignments and guarded
// by the one-live-assignment-per-order rule.
func LiveStatuses() []Status {
	return []Status{StatusAssigned, StatusAccepted, StatusPickedUp, StatusOnTheWay}
}

// ParseStatus converts the wire/persistence form into a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != StatusUnknown && str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"assignment status", fmt.Errorf("%q is not a valid assignment status", s))
}

func (s Status) Validate() error {
	if s <= StatusUnknown || s > StatusCancelled {
		return errs.NewValueIsInvalidErrorWithCause(
			"assignment status", fmt.Errorf("%d is not a valid assignment status", s))
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
	return s == StatusDelivered || s == StatusRejected || s == StatusCancelled
}

// IsLive reports whether the assignment still binds its order and courier.
func (s Status) IsLive() bool {
	return s.Validate() == nil && !s.IsTerminal()
}

// PairedOrderStatuses lists the order statuses that may coexist with an assignment in
// status s. A rejected assignment no longer constrains its order.
func (s Status) PairedOrderStatuses() []order.Status {
	switch s {
	case StatusAssigned, StatusAccepted:
		return []order.Status{order.Confirmed, order.Preparing, order.ReadyForPickup}
	case StatusPickedUp, StatusOnTheWay:
		return []order.Status{order.OutForDelivery}
	case StatusDelivered:
		return []order.Status{order.Delivered}
	case StatusCancelled:
		return []order.Status{order.Cancelled}
	case StatusRejected:
		return order.AllStatuses()
	case StatusUnknown:
		return nil
	}
	return nil
}

// PairsWith reports whether an order in status o may coexist with an assignment in status s.
func (s Status) PairsWith(o order.Status) bool {
	for _, paired := range s.PairedOrderStatuses() {
		if paired == o {
			return true
		}
	}
	return false
}
