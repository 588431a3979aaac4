// Package services provides domain services that span the order, courier and assignment
// aggregates.
//
// The package includes:
//   - DeliverySynchronizer: applies the cross-entity effects of assignment creation and
//     transitions so the three status fields stay consistent
//   - OrderDispatcher: chooses the nearest available courier for automated assignment
package services
