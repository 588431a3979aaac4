// Package events defines the records and envelopes the dispatch core publishes.
//
// Records are full snapshots of Order, Courier, DeliveryAssignment, CourierLocationSample
// and Restaurant; the HTTP API returns the same records. Envelopes wrap one record with a
// type, an id for deduplication and the routing keys used by the realtime notifier.
package events
