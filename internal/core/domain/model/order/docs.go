// Package order provides the Order aggregate of the dispatch domain.
//
// The package includes:
//   - Order: the aggregate root carrying customer, address, amounts and status
//   - Status: the forward-only order lifecycle
//   - Customer and Address: value objects for the delivery contact and destination
//
// Key business rules:
//   - the restaurant advances an order through the kitchen states with Advance
//   - the dispatch coordinator moves it to out_for_delivery, delivered or cancelled with
//     Promote and Cancel
//   - a status never regresses; delivered and cancelled are terminal
package order
