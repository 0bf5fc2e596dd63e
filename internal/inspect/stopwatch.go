package inspect

import "time"

// Stopwatch measures the wall-clock cost of a detection routine.
// Implemented by WallClock (production) and testutil.FixedStopwatch
// (tests), mirroring the token-generator split used elsewhere.
type Stopwatch interface {
	// Start returns a function that reports the elapsed duration.
	Start() func() time.Duration
}

// WallClock measures real elapsed time.
//
// Thread-safety: stateless, safe for concurrent use.
type WallClock struct{}

// Start begins a measurement.
func (WallClock) Start() func() time.Duration {
	t0 := time.Now()
	return func() time.Duration { return time.Since(t0) }
}
