// Package assignment provides the DeliveryAssignment aggregate: the binding of one order
// to one courier and the state machine that drives it.
//
// The package includes:
//   - Assignment: the aggregate root with per-status timestamps
//   - Status: assigned, accepted, rejected, picked_up, on_the_way, delivered, cancelled
//   - Actor: courier, dispatcher or system
//   - the (from, to, actor) transition table behind CanTransition and AllowedTargets
//
// Key business rules:
//   - only the courier accepts, picks up, starts and completes a delivery
//   - courier, dispatcher and system may reject a fresh assignment
//   - only dispatcher and system cancel
//   - repeating the current status is a no-op
//   - PairedOrderStatuses states which order statuses may coexist with each assignment status
package assignment
