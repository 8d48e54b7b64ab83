package clock

import "time"

// Precision is the resolution of every stored timestamp. Postgres keeps
// microseconds, so values at this precision round-trip through every
// backend unchanged.
const Precision = time.Microsecond

// Clock supplies creation timestamps
type Clock interface {
	Now() time.Time
}

// Stamp normalizes t to a storable timestamp: UTC at Precision
func Stamp(t time.Time) time.Time {
	return t.UTC().Truncate(Precision)
}

// System reads the wall clock
type System struct{}

// New returns the wall clock
func New() System {
	return System{}
}

// Now returns the current time as a storable timestamp
func (System) Now() time.Time {
	return Stamp(time.Now())
}
