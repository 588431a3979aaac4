package realtime

import (
	"time"

	"dispatch/internal/core/domain/events"
)

type FrameType string

const (
	FrameEvent  FrameType = "event"
	FrameResync FrameType = "resync"
)

// ResyncReason says why a subscriber must re-fetch its state.
type ResyncReason string

const (
	ResyncConnect         ResyncReason = "connect"
	ResyncReplayMiss      ResyncReason = "replay_miss"
	ResyncCatchUpOverflow ResyncReason = "catch_up_overflow"
	ResyncSlowConsumer    ResyncReason = "slow_consumer"
)

// Frame is one message written to a stream. A resync frame tells the client that events
// may have been missed and carries the recommended reconciliation poll interval.
type Frame struct {
	Type           FrameType        `json:"type"`
	Event          *events.Envelope `json:"event,omitempty"`
	Reason         ResyncReason     `json:"reason,omitempty"`
	PollIntervalMs int64            `json:"poll_interval_ms,omitempty"`
}

func eventFrame(e events.Envelope) Frame {
	return Frame{Type: FrameEvent, Event: &e}
}

func resyncFrame(reason ResyncReason, pollInterval time.Duration) Frame {
	return Frame{Type: FrameResync, Reason: reason, PollIntervalMs: pollInterval.Milliseconds()}
}
