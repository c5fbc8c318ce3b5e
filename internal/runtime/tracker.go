package runtime

import "github.com/makebuild-code/slidenav/pkg/domain"

// Tracker is the authoritative record of the committed slide position.
// It is a pure bookkeeping ledger: no validation, no timers, no side effects
// beyond its own fields. Callers are responsible for bounds checks before
// Commit.
type Tracker struct {
	pos *domain.Position
}

// NewTracker starts a tracker at the given index.
func NewTracker(start int) *Tracker {
	return &Tracker{pos: domain.NewPosition(start)}
}

// RestoreTracker resumes a tracker from a persisted position.
func RestoreTracker(pos *domain.Position) *Tracker {
	return &Tracker{pos: pos.Clone()}
}

// Commit records index as the new current position, appends it to the
// history, and raises the furthest-visited watermark if exceeded. It never
// rejects.
func (t *Tracker) Commit(index int) {
	t.pos.CurrentIndex = index
	t.pos.History = append(t.pos.History, index)
	if index > t.pos.MaxVisitedIndex {
		t.pos.MaxVisitedIndex = index
	}
}

// Current returns the committed index.
func (t *Tracker) Current() int {
	return t.pos.CurrentIndex
}

// MaxVisited returns the furthest committed index.
func (t *Tracker) MaxVisited() int {
	return t.pos.MaxVisitedIndex
}

// History returns a copy of the committed index sequence.
func (t *Tracker) History() []int {
	out := make([]int, len(t.pos.History))
	copy(out, t.pos.History)
	return out
}

// Snapshot returns a detached copy of the position for persistence.
func (t *Tracker) Snapshot() *domain.Position {
	return t.pos.Clone()
}
