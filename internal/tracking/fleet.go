package tracking

import (
	"context"
	"sync"
)

// Fleet runs a set of sessions as one background job, for simulated couriers.
type Fleet struct {
	sessions []*Session

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewFleet(sessions ...*Session) *Fleet {
	return &Fleet{sessions: sessions}
}

func (f *Fleet) Name() string { return "tracking fleet job" }

// Start starts every session. Starting a running fleet is a no-op.
func (f *Fleet) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel
	for _, s := range f.sessions {
		s.Start(ctx)
	}
	return nil
}

// Stop stops every session and waits for their loops to exit.
func (f *Fleet) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel == nil {
		return
	}

	f.cancel()
	for _, s := range f.sessions {
		s.Stop()
	}
	f.cancel = nil
}

func (f *Fleet) Size() int { return len(f.sessions) }
