package tracking

import "time"

// DefaultDebounce is the minimum spacing between two persisted positions of one courier.
const DefaultDebounce = 5 * time.Second

// SkipReason says why a position was not persisted.
type SkipReason string

const (
	ReasonOffline       SkipReason = "offline"
	ReasonTooSoon       SkipReason = "too_soon"
	ReasonInvalidCoords SkipReason = "invalid_coords"
)

// Outcome is the result of a location write: Ack, or Skipped with a reason.
type Outcome struct {
	Recorded bool
	Reason   SkipReason
}

// Ack is the outcome of a persisted sample.
func Ack() Outcome {
	return Outcome{Recorded: true}
}

// Skipped is the outcome of a dropped sample.
func Skipped(reason SkipReason) Outcome {
	return Outcome{Reason: reason}
}

func (o Outcome) String() string {
	if o.Recorded {
		return "ack"
	}
	return "skipped:" + string(o.Reason)
}

// Gate decides whether a courier's position may be written. Storage enforces the same
// rule atomically; Evaluate explains a refused write from the row it re-reads.
type Gate struct {
	debounce time.Duration
}

// NewGate returns a gate with the given debounce; non-positive values fall back to DefaultDebounce.
func NewGate(debounce time.Duration) Gate {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return Gate{debounce: debounce}
}

func (g Gate) Debounce() time.Duration {
	return g.debounce
}

// Cutoff is the newest last-update time that still lets a write at now through.
func (g Gate) Cutoff(now time.Time) time.Time {
	return now.Add(-g.debounce)
}

// Evaluate applies the gate to a courier row.
func (g Gate) Evaluate(isAvailable bool, lastUpdate *time.Time, now time.Time) Outcome {
	if !isAvailable {
		return Skipped(ReasonOffline)
	}
	if lastUpdate != nil && lastUpdate.After(g.Cutoff(now)) {
		return Skipped(ReasonTooSoon)
	}
	return Ack()
}
