// Package memory provides in-memory adapters: a simulated Surface for tests
// and headless navigation, and a PositionStore.
package memory

import (
	"sync"

	"github.com/makebuild-code/slidenav/pkg/domain"
	"github.com/makebuild-code/slidenav/pkg/ports"
)

// SlideSpec declares one slide of a simulated surface.
type SlideSpec struct {
	ID       string
	Align    domain.Alignment
	Height   int
	Elements []domain.Element
}

// ScrollRecord captures one ScrollTo call for assertions.
type ScrollRecord struct {
	Index   int
	Align   domain.Alignment
	Animate bool
}

// Surface implements ports.Surface in memory. It records every visual
// mutation the engine performs (active marker, tab stops, focus, scrolls) so
// tests and the terminal wizard can observe them. Safe for concurrent use.
type Surface struct {
	mu       sync.Mutex
	slides   []SlideSpec
	viewport int

	active   int
	tabStops map[string]bool
	focused  string
	scrolls  []ScrollRecord
}

var _ ports.Surface = (*Surface)(nil)

// NewSurface builds a surface with the given viewport height and slides.
func NewSurface(viewport int, slides ...SlideSpec) *Surface {
	return &Surface{
		slides:   slides,
		viewport: viewport,
		active:   -1,
		tabStops: make(map[string]bool),
	}
}

// SetViewportHeight simulates a window resize.
func (s *Surface) SetViewportHeight(h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport = h
}

// SetSlideHeight simulates content growing or shrinking.
func (s *Surface) SetSlideHeight(index, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index >= 0 && index < len(s.slides) {
		s.slides[index].Height = h
	}
}

func (s *Surface) SlideCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slides)
}

func (s *Surface) SlideID(index int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.slides) {
		return ""
	}
	return s.slides[index].ID
}

func (s *Surface) AlignmentOverride(index int) (domain.Alignment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.slides) || s.slides[index].Align == "" {
		return "", false
	}
	return s.slides[index].Align, true
}

func (s *Surface) SlideHeight(index int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.slides) {
		return 0
	}
	return s.slides[index].Height
}

func (s *Surface) ViewportHeight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewport
}

func (s *Surface) SetActive(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = index
}

func (s *Surface) Focusables(index int) []domain.Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.slides) {
		return nil
	}
	out := make([]domain.Element, len(s.slides[index].Elements))
	copy(out, s.slides[index].Elements)
	return out
}

func (s *Surface) SetTabStop(elementID string, reachable bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tabStops[elementID] = reachable
}

func (s *Surface) FocusElement(elementID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focused = elementID
}

func (s *Surface) ScrollTo(index int, align domain.Alignment, animate bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrolls = append(s.scrolls, ScrollRecord{Index: index, Align: align, Animate: animate})
}

// Active returns the slide currently carrying the active marker.
func (s *Surface) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Focused returns the element last given programmatic focus.
func (s *Surface) Focused() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focused
}

// Reachable reports whether an element's tab stop is currently 0 (true) or
// -1 (false). ok is false when the engine never touched the element.
func (s *Surface) Reachable(elementID string) (reachable, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reachable, ok = s.tabStops[elementID]
	return
}

// Scrolls returns every recorded scroll, oldest first.
func (s *Surface) Scrolls() []ScrollRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ScrollRecord, len(s.scrolls))
	copy(out, s.scrolls)
	return out
}

// LastScroll returns the most recent scroll. ok is false when none happened.
func (s *Surface) LastScroll() (ScrollRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.scrolls) == 0 {
		return ScrollRecord{}, false
	}
	return s.scrolls[len(s.scrolls)-1], true
}
