// Package realtime delivers committed changes to stream subscribers.
//
// A Hub lives in every instance. It is fed by the outbox relay, directly or through the
// Redis bus when several instances run, and by the location handler. Delivery is at
// least once and best effort: subscribers reconcile by polling the list endpoints,
// and every resync frame carries the recommended interval.
package realtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/pkg/metrics"
)

const (
	DefaultBufferSize   = 64
	DefaultReplaySize   = 256
	DefaultPollInterval = 5 * time.Second
)

type Options struct {
	// BufferSize is the number of frames queued per subscriber before it is resynced.
	BufferSize int
	// ReplaySize is the number of recent envelopes kept for reconnect catch-up.
	ReplaySize int
	// PollInterval is the reconciliation interval recommended in resync frames.
	PollInterval time.Duration
}

func (o Options) withDefaults() Options {
	if o.BufferSize <= 0 {
		o.BufferSize = DefaultBufferSize
	}
	if o.ReplaySize <= 0 {
		o.ReplaySize = DefaultReplaySize
	}
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	return o
}

// Hub fans envelopes out to the subscriptions whose scope matches. It implements
// ports.EventPublisher.
type Hub struct {
	opts   Options
	logger *slog.Logger

	mu     sync.RWMutex
	subs   map[uint64]*Subscription
	nextID uint64
	recent *ring
}

func NewHub(opts Options, logger *slog.Logger) *Hub {
	opts = opts.withDefaults()
	return &Hub{
		opts:   opts,
		logger: logger.With("component", "RealtimeHub"),
		subs:   make(map[uint64]*Subscription),
		recent: newRing(opts.ReplaySize),
	}
}

func (h *Hub) PollInterval() time.Duration {
	return h.opts.PollInterval
}

// Publish delivers the envelope to matching subscribers. An envelope already seen in the
// replay window is a redelivery and is dropped. Publish never blocks on a subscriber.
func (h *Hub) Publish(ctx context.Context, e events.Envelope) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.recent.contains(e.ID) {
		h.logger.DebugContext(ctx, "duplicate envelope dropped", "event_id", e.ID, "type", e.Type)
		return nil
	}
	h.recent.push(e)

	for _, sub := range h.subs {
		if sub.scope.Matches(e) {
			sub.deliver(eventFrame(e))
		}
	}
	return nil
}

// Subscribe opens a subscription. Without lastEventID the first frame is a resync.
// With it, the matching envelopes published after lastEventID are queued first; when that
// envelope has left the replay window, or the backlog exceeds the buffer, the
// subscriber gets a resync frame instead.
func (h *Hub) Subscribe(scope Scope, lastEventID string) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	sub := newSubscription(h.nextID, scope, h.opts.BufferSize, h.opts.PollInterval, h.release)
	h.subs[sub.id] = sub
	metrics.RealtimeSubscribers.WithLabelValues(string(scope.kind)).Inc()

	if lastEventID == "" {
		sub.resync(ResyncConnect)
		return sub
	}

	missed, ok := h.recent.after(lastEventID)
	if !ok {
		sub.resync(ResyncReplayMiss)
		return sub
	}

	var backlog []events.Envelope
	for _, e := range missed {
		if scope.Matches(e) {
			backlog = append(backlog, e)
		}
	}
	if len(backlog) > h.opts.BufferSize {
		sub.resync(ResyncCatchUpOverflow)
		return sub
	}
	for _, e := range backlog {
		sub.deliver(eventFrame(e))
	}
	return sub
}

// Subscribers returns the number of open subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close ends every subscription.
func (h *Hub) Close() {
	h.mu.RLock()
	subs := make([]*Subscription, 0, len(h.subs))
	for _, sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	for _, sub := range subs {
		sub.Close()
	}
}

func (h *Hub) release(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub.id]; ok {
		delete(h.subs, sub.id)
		metrics.RealtimeSubscribers.WithLabelValues(string(sub.scope.kind)).Dec()
	}
}
