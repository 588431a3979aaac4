// Package errs provides the error types shared by the dispatch service.
//
// Every error type follows the same shape:
//   - a sentinel variable (for example ErrObjectNotFound) usable with errors.Is
//   - a struct carrying the details of the failure
//   - constructors with and without an underlying cause
//   - Error() for the message and Unwrap() returning the sentinel
//
// Validation errors (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError)
// are raised by constructors of domain objects. The dispatch errors
// (AlreadyAssignedError, CourierUnavailableError, InvalidTransitionError) report a
// stale caller view and are never retried. TransientStorageError marks failures of the
// storage layer that are safe to retry because every coordinator operation is idempotent
// for a given target status.
package errs
