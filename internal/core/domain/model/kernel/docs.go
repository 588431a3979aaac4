// Package kernel provides the value objects shared by the dispatch domain model.
//
// The package includes:
//   - UUID: identifier of every record
//   - GeoPoint: a validated WGS84 position with haversine distance
//   - Money: a non-negative decimal amount for fees and order totals
//   - Clock: the time source used to stamp transitions and gate location writes
//
// Values are immutable; their zero values are invalid and fail Validate.
package kernel
