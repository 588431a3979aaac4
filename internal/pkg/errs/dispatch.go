package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAlreadyAssigned is the sentinel for a second live assignment on one order.
	ErrAlreadyAssigned = errors.New("order is already assigned")
	// ErrCourierUnavailable is the sentinel for assignments to couriers that cannot take work.
	ErrCourierUnavailable = errors.New("courier is unavailable")
	// ErrInvalidTransition is the sentinel for status changes outside the state machine.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrTransientStorage is the sentinel for retryable storage failures.
	ErrTransientStorage = errors.New("transient storage error")
)

// AlreadyAssignedError reports that OrderID already has a non-terminal assignment.
// AssignmentID is empty when the conflicting assignment is not known (for example when the
// conflict was detected by the unique index).
type AlreadyAssignedError struct {
	OrderID      string
	AssignmentID string
	Cause        error
}

// NewAlreadyAssignedError creates an AlreadyAssignedError.
func NewAlreadyAssignedError(orderID, assignmentID string) *AlreadyAssignedError {
	return &AlreadyAssignedError{OrderID: orderID, AssignmentID: assignmentID}
}

// NewAlreadyAssignedErrorWithCause creates an AlreadyAssignedError wrapping cause.
func NewAlreadyAssignedErrorWithCause(orderID string, cause error) *AlreadyAssignedError {
	return &AlreadyAssignedError{OrderID: orderID, Cause: cause}
}

func (e *AlreadyAssignedError) Error() string {
	msg := fmt.Sprintf("%s: order %s", ErrAlreadyAssigned, e.OrderID)
	if e.AssignmentID != "" {
		msg += " has live assignment " + e.AssignmentID
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *AlreadyAssignedError) Unwrap() error {
	return ErrAlreadyAssigned
}

// CourierUnavailableError reports that CourierID cannot receive an assignment.
type CourierUnavailableError struct {
	CourierID string
	Reason    string
}

// NewCourierUnavailableError creates a CourierUnavailableError.
func NewCourierUnavailableError(courierID, reason string) *CourierUnavailableError {
	return &CourierUnavailableError{CourierID: courierID, Reason: reason}
}

func (e *CourierUnavailableError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", ErrCourierUnavailable, e.CourierID, sanitize(e.Reason))
}

func (e *CourierUnavailableError) Unwrap() error {
	return ErrCourierUnavailable
}

// InvalidTransitionError reports a requested status change that has no edge in the state
// machine from the persisted status, or that the actor may not perform.
type InvalidTransitionError struct {
	Entity  string
	From    string
	To      string
	Actor   string
	Allowed []string
}

// NewInvalidTransitionError creates an InvalidTransitionError. allowed lists the statuses
// reachable from "from" and is only used for the message.
func NewInvalidTransitionError(entity, from, to, actor string, allowed []string) *InvalidTransitionError {
	return &InvalidTransitionError{
		Entity:  entity,
		From:    from,
		To:      to,
		Actor:   actor,
		Allowed: allowed,
	}
}

func (e *InvalidTransitionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s %s -> %s", ErrInvalidTransition, e.Entity, e.From, e.To)
	if e.Actor != "" {
		fmt.Fprintf(&b, " by %s", e.Actor)
	}
	if len(e.Allowed) == 0 {
		b.WriteString(" (no transitions allowed)")
	} else {
		fmt.Fprintf(&b, " (allowed: %s)", strings.Join(e.Allowed, ", "))
	}
	return b.String()
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// TransientStorageError wraps a storage failure that is safe to retry.
type TransientStorageError struct {
	Op    string
	Cause error
}

// NewTransientStorageError creates a TransientStorageError for operation op.
func NewTransientStorageError(op string, cause error) *TransientStorageError {
	return &TransientStorageError{Op: op, Cause: cause}
}

func (e *TransientStorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrTransientStorage, e.Op, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrTransientStorage, e.Op)
}

// Unwrap exposes both the sentinel and the cause so callers can inspect driver errors.
func (e *TransientStorageError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrTransientStorage}
	}
	return []error{ErrTransientStorage, e.Cause}
}
