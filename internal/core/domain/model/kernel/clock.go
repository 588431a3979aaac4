package kernel

import "time"

// Clock supplies the current time to code that stamps transitions and gates location writes.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock in UTC, truncated to microseconds to match timestamptz precision.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time {
	return f()
}
