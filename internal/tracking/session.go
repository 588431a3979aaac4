// Package tracking drives the courier side of location tracking: one cooperative timer per
// courier session that asks the device for a position and forwards it to a recorder.
//
// A session keeps sampling while the courier is offline; the server gate drops those
// writes. No call blocks longer than its configured timeout.
package tracking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	domain "dispatch/internal/core/domain/model/tracking"
)

const (
	MinInterval     = 10 * time.Second
	MaxInterval     = 20 * time.Second
	DefaultInterval = 15 * time.Second

	DefaultPositionTimeout = 5 * time.Second
	DefaultRecordTimeout   = 5 * time.Second
)

// Accuracy is a position request mode, from the most to the least precise.
type Accuracy string

const (
	AccuracyHigh     Accuracy = "high"
	AccuracyBalanced Accuracy = "balanced"
	AccuracyLow      Accuracy = "low"
)

// ladder is tried in order; a timeout moves to the next step.
var ladder = []Accuracy{AccuracyHigh, AccuracyBalanced, AccuracyLow}

// Fix is one device position.
type Fix struct {
	Latitude  float64
	Longitude float64
	// Accuracy is the radius of uncertainty in meters.
	Accuracy float64
}

var ErrNoFix = errors.New("no position fix at any accuracy")

// PositionSource is the device positioning API.
type PositionSource interface {
	CurrentPosition(ctx context.Context, accuracy Accuracy) (Fix, error)
}

// LocationRecorder sends a fix to the server side.
type LocationRecorder interface {
	RecordLocation(ctx context.Context, courierID kernel.UUID, fix Fix) (domain.Outcome, error)
}

type Config struct {
	Interval        time.Duration
	PositionTimeout time.Duration
	RecordTimeout   time.Duration
}

// ClampInterval returns DefaultInterval for zero and otherwise bounds d to
// [MinInterval, MaxInterval].
func ClampInterval(d time.Duration) time.Duration {
	switch {
	case d == 0:
		return DefaultInterval
	case d < MinInterval:
		return MinInterval
	case d > MaxInterval:
		return MaxInterval
	default:
		return d
	}
}

func (c Config) withDefaults() Config {
	c.Interval = ClampInterval(c.Interval)
	if c.PositionTimeout <= 0 {
		c.PositionTimeout = DefaultPositionTimeout
	}
	if c.RecordTimeout <= 0 {
		c.RecordTimeout = DefaultRecordTimeout
	}
	return c
}

type Session struct {
	courierID kernel.UUID
	source    PositionSource
	recorder  LocationRecorder
	cfg       Config
	logger    *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewSession(
	courierID kernel.UUID,
	source PositionSource,
	recorder LocationRecorder,
	cfg Config,
	logger *slog.Logger,
) *Session {
	return &Session{
		courierID: courierID,
		source:    source,
		recorder:  recorder,
		cfg:       cfg.withDefaults(),
		logger:    logger.With("component", "TrackingSession", "courier_id", courierID.String()),
	}
}

func (s *Session) Interval() time.Duration { return s.cfg.Interval }

// Start samples right away and then once per interval until Stop or ctx is done.
// Starting a running session does nothing.
func (s *Session) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.loop(ctx, s.done)
}

// Stop ends the timer and waits for an in-flight sample to finish.
func (s *Session) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *Session) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		if _, err := s.Tick(ctx); err != nil && ctx.Err() == nil {
			s.logger.WarnContext(ctx, "location sample failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Tick takes one position and records it.
func (s *Session) Tick(ctx context.Context) (domain.Outcome, error) {
	fix, err := s.position(ctx)
	if err != nil {
		return domain.Outcome{}, err
	}

	recordCtx, cancel := context.WithTimeout(ctx, s.cfg.RecordTimeout)
	defer cancel()

	outcome, err := s.recorder.RecordLocation(recordCtx, s.courierID, fix)
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("record location: %w", err)
	}
	s.logger.DebugContext(ctx, "location sample", "outcome", outcome.String())
	return outcome, nil
}

func (s *Session) position(ctx context.Context) (Fix, error) {
	for _, accuracy := range ladder {
		attemptCtx, cancel := context.WithTimeout(ctx, s.cfg.PositionTimeout)
		fix, err := s.source.CurrentPosition(attemptCtx, accuracy)
		cancel()

		switch {
		case err == nil:
			return fix, nil
		case ctx.Err() != nil:
			return Fix{}, ctx.Err()
		case errors.Is(err, context.DeadlineExceeded):
			s.logger.DebugContext(ctx, "position request timed out", "accuracy", accuracy)
		default:
			return Fix{}, fmt.Errorf("position at %s accuracy: %w", accuracy, err)
		}
	}
	return Fix{}, ErrNoFix
}
