package courier

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the operational state shown to dispatchers. It is derived from the account
// flag, the availability toggle and the courier's live assignments; see Courier.
type Status int

const (
	// StatusUnknown marks an uninitialized or unparseable status.
	StatusUnknown Status = iota
	// StatusOffline means the courier is not accepting work and carries none.
	StatusOffline
	// StatusAvailable means the courier accepts work and carries none.
	StatusAvailable
	// StatusBusy means the courier holds assignments that are not picked up yet.
	StatusBusy
	// StatusOnDelivery means the courier carries at least one order.
	StatusOnDelivery
	// StatusInactive means the account is disabled.
	StatusInactive
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "unknown",
		StatusOffline:    "offline",
		StatusAvailable:  "available",
		StatusBusy:       "busy",
		StatusOnDelivery: "on_delivery",
		StatusInactive:   "inactive",
	}
}

// ParseStatus converts the persisted form into a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != StatusUnknown && str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"courier status", fmt.Errorf("%q is not a valid courier status", s))
}

// Validate rejects StatusUnknown and out-of-range values.
func (s Status) Validate() error {
	if s <= StatusUnknown || s > StatusInactive {
		return errs.NewValueIsInvalidErrorWithCause(
			"courier status", fmt.Errorf("%d is not a valid courier status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsWorking reports whether the status reflects live assignments.
func (s Status) IsWorking() bool {
	return s == StatusBusy || s == StatusOnDelivery
}
