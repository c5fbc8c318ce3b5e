// Package wallclock implements ports.Scheduler on real timers.
package wallclock

import (
	"time"

	"github.com/makebuild-code/slidenav/pkg/ports"
)

// DefaultFrameInterval approximates one paint frame at 60Hz.
const DefaultFrameInterval = 16 * time.Millisecond

// Scheduler schedules frames and timers on the process clock.
type Scheduler struct {
	frame time.Duration
}

// Option configures the Scheduler.
type Option func(*Scheduler)

// WithFrameInterval overrides the paint-frame approximation.
func WithFrameInterval(d time.Duration) Option {
	return func(s *Scheduler) { s.frame = d }
}

// New creates a wall-clock scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{frame: DefaultFrameInterval}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NextFrame runs fn after one frame interval.
func (s *Scheduler) NextFrame(fn func()) {
	time.AfterFunc(s.frame, fn)
}

// AfterFunc runs fn once after d.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) ports.TimerHandle {
	return timerHandle{timer: time.AfterFunc(d, fn)}
}

// Now returns the process clock reading.
func (s *Scheduler) Now() time.Time {
	return time.Now()
}

type timerHandle struct {
	timer *time.Timer
}

func (h timerHandle) Stop() bool {
	return h.timer.Stop()
}
