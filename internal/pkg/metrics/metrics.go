// Package metrics holds the Prometheus collectors of the dispatch service. Collectors are
// registered on the default registry and served by the HTTP adapter at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AssignmentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_assignments_created_total",
		Help: "Delivery assignments created.",
	})

	AssignmentTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_assignment_transitions_total",
		Help: "Applied assignment status transitions by target status.",
	}, []string{"to"})

	LocationSamples = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_location_samples_total",
		Help: "Location writes by outcome: ack, offline, too_soon or invalid_coords.",
	}, []string{"result"})

	OutboxRelayed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_outbox_relayed_total",
		Help: "Outbox events handed to publishers.",
	})

	OutboxBacklog = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dispatch_outbox_backlog",
		Help: "Outbox events not yet dispatched.",
	})

	OutboxLagSeconds = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dispatch_outbox_lag_seconds",
		Help: "Age of the oldest undispatched outbox event.",
	})

	RealtimeSubscribers = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dispatch_realtime_subscribers",
		Help: "Open realtime subscriptions by scope.",
	}, []string{"scope"})

	RealtimeDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_realtime_dropped_total",
		Help: "Events dropped for slow subscribers by scope.",
	}, []string{"scope"})
)
