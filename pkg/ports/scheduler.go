package ports

import "time"

// TimerHandle is an owned pending timer. Stop reports whether the callback
// was prevented from running.
type TimerHandle interface {
	Stop() bool
}

// Scheduler provides the engine's only suspension points: paint-frame
// callbacks and timers. All callbacks must run serialized on a single
// logical thread; the engine never blocks inside them.
type Scheduler interface {
	// NextFrame schedules fn for the next paint-frame boundary, after the
	// host had a chance to render the previous step.
	NextFrame(fn func())

	// AfterFunc schedules fn to run once after d.
	AfterFunc(d time.Duration, fn func()) TimerHandle

	// Now returns the scheduler's monotonic clock reading.
	Now() time.Time
}
