package realtime

import (
	"context"
	"errors"
	"sync"
	"time"

	"dispatch/internal/pkg/metrics"
)

var ErrSubscriptionClosed = errors.New("subscription is closed")

// Subscription is the queue of one stream. The hub never blocks on it: when the queue is
// full it is replaced by a single resync frame and events are dropped until the consumer
// has read that frame.
type Subscription struct {
	id       uint64
	scope    Scope
	capacity int
	poll     time.Duration
	release  func(*Subscription)

	mu        sync.Mutex
	queue     []Frame
	resyncing bool
	ready     chan struct{}
	done      chan struct{}
	once      sync.Once
}

func newSubscription(id uint64, scope Scope, capacity int, poll time.Duration, release func(*Subscription)) *Subscription {
	return &Subscription{
		id:       id,
		scope:    scope,
		capacity: capacity,
		poll:     poll,
		release:  release,
		queue:    make([]Frame, 0, capacity),
		ready:    make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

func (s *Subscription) Scope() Scope { return s.scope }

// Next returns the next frame, waiting until one is queued, ctx is done or the
// subscription is closed.
func (s *Subscription) Next(ctx context.Context) (Frame, error) {
	for {
		s.mu.Lock()
		if len(s.queue) > 0 {
			f := s.queue[0]
			s.queue = s.queue[1:]
			if f.Type == FrameResync {
				s.resyncing = false
			}
			s.mu.Unlock()
			return f, nil
		}
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return Frame{}, ctx.Err()
		case <-s.done:
			return Frame{}, ErrSubscriptionClosed
		case <-s.ready:
		}
	}
}

// Close detaches the subscription from the hub. It is safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		close(s.done)
		if s.release != nil {
			s.release(s)
		}
	})
}

func (s *Subscription) deliver(f Frame) {
	s.mu.Lock()
	switch {
	case s.resyncing:
		metrics.RealtimeDropped.WithLabelValues(string(s.scope.kind)).Inc()
	case len(s.queue) >= s.capacity:
		metrics.RealtimeDropped.WithLabelValues(string(s.scope.kind)).Add(float64(len(s.queue)) + 1)
		s.queue = append(s.queue[:0], resyncFrame(ResyncSlowConsumer, s.poll))
		s.resyncing = true
	default:
		s.queue = append(s.queue, f)
	}
	s.mu.Unlock()

	select {
	case s.ready <- struct{}{}:
	default:
	}
}

func (s *Subscription) resync(reason ResyncReason) {
	s.mu.Lock()
	s.queue = append(s.queue[:0], resyncFrame(reason, s.poll))
	s.resyncing = true
	s.mu.Unlock()

	select {
	case s.ready <- struct{}{}:
	default:
	}
}
