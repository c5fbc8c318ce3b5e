package domain

// Position is the committed navigation position for one form instance.
// It records the intended position, not the rendered one: the machine
// commits it the moment a transition is admitted, before any animation
// finishes.
type Position struct {
	// CurrentIndex is the committed slide index. Invariant: within
	// [0, totalSlides) at all times.
	CurrentIndex int `json:"current_index"`

	// MaxVisitedIndex is the furthest index ever committed. Monotonically
	// non-decreasing.
	MaxVisitedIndex int `json:"max_visited_index"`

	// History is the append-only sequence of committed indices. It always
	// holds at least one element: the initial index.
	History []int `json:"history"`
}

// NewPosition creates a clean position starting at the given index.
func NewPosition(start int) *Position {
	return &Position{
		CurrentIndex:    start,
		MaxVisitedIndex: start,
		History:         []int{start},
	}
}

// Clone returns a deep copy so stores and callers cannot alias History.
func (p *Position) Clone() *Position {
	if p == nil {
		return nil
	}
	next := *p
	next.History = make([]int, len(p.History))
	copy(next.History, p.History)
	return &next
}
