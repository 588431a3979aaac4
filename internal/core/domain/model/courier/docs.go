// Package courier provides the Courier aggregate of the dispatch domain.
//
// The package includes:
//   - Courier: identity, contact, vehicle, availability and live assignment counter
//   - Status: the derived operational state shown to dispatchers
//   - Vehicle: the courier's means of transport
//
// Key business rules:
//   - only active and available couriers take new assignments
//   - the live assignment counter never goes negative
//   - going offline never cancels work in flight
package courier
