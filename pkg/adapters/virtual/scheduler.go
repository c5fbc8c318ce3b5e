// Package virtual implements ports.Scheduler on a manually-driven clock.
//
// Nothing runs until the owner advances time, which makes it the scheduler
// of choice for tests (deterministic interleaving, no sleeps) and for
// request-scoped headless navigation, where a whole transition pipeline is
// settled synchronously before the response is written.
package virtual

import (
	"sort"
	"sync"
	"time"

	"github.com/makebuild-code/slidenav/pkg/ports"
)

// FrameInterval is the virtual duration of one paint frame.
const FrameInterval = 16 * time.Millisecond

// maxSettleTasks caps RunUntilIdle against runaway re-scheduling.
const maxSettleTasks = 10000

type task struct {
	// mu is the owning scheduler's mutex; stopped is read by popDue and
	// Pending under the same lock.
	mu      *sync.Mutex
	due     time.Time
	seq     uint64
	fn      func()
	stopped bool
}

func (t *task) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Scheduler is a deterministic scheduler over virtual time.
// Callbacks run only inside Advance or RunUntilIdle, on the caller's
// goroutine, preserving the engine's single-threaded cooperative model.
type Scheduler struct {
	mu    sync.Mutex
	now   time.Time
	seq   uint64
	tasks []*task
}

// New creates a scheduler with its clock at a fixed epoch.
func New() *Scheduler {
	return &Scheduler{now: time.Unix(0, 0)}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// NextFrame schedules fn one virtual frame from now.
func (s *Scheduler) NextFrame(fn func()) {
	s.AfterFunc(FrameInterval, fn)
}

// AfterFunc schedules fn at now+d.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) ports.TimerHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &task{mu: &s.mu, due: s.now.Add(d), seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Pending reports the number of live scheduled tasks.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.stopped {
			n++
		}
	}
	return n
}

// popDue removes and returns the earliest live task due at or before the
// deadline, or nil.
func (s *Scheduler) popDue(deadline time.Time) *task {
	s.mu.Lock()
	defer s.mu.Unlock()

	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].due.Equal(s.tasks[j].due) {
			return s.tasks[i].seq < s.tasks[j].seq
		}
		return s.tasks[i].due.Before(s.tasks[j].due)
	})

	for i, t := range s.tasks {
		if t.stopped {
			continue
		}
		if t.due.After(deadline) {
			break
		}
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
		// The clock follows task execution so callbacks observe their own
		// due time, like a real timer would.
		if t.due.After(s.now) {
			s.now = t.due
		}
		return t
	}
	return nil
}

// Advance moves virtual time forward by d, running every task that comes due
// in order. Tasks scheduled by callbacks also run when they fall inside the
// window.
func (s *Scheduler) Advance(d time.Duration) {
	s.mu.Lock()
	deadline := s.now.Add(d)
	s.mu.Unlock()

	for {
		t := s.popDue(deadline)
		if t == nil {
			break
		}
		t.fn()
	}

	s.mu.Lock()
	if deadline.After(s.now) {
		s.now = deadline
	}
	s.mu.Unlock()
}

// RunUntilIdle keeps jumping to the next due task until none remain.
func (s *Scheduler) RunUntilIdle() {
	for i := 0; i < maxSettleTasks; i++ {
		t := s.popDue(maxTime)
		if t == nil {
			return
		}
		t.fn()
	}
}

var maxTime = time.Unix(1<<60, 0)
