// Package focus keeps keyboard focus trapped and tab-ordered inside the
// active slide.
package focus

import (
	"log/slog"

	"github.com/makebuild-code/slidenav/pkg/domain"
	"github.com/makebuild-code/slidenav/pkg/ports"
)

// binding marks the roles an element plays in the current trap generation.
type binding uint8

const (
	bindFirst binding = 1 << iota
	bindLast
	bindLastInput
)

// generation is one activation's worth of handler bookkeeping, keyed by
// element identity. Replaced wholesale on every activation so at most one
// generation of handlers is ever live.
type generation struct {
	slide      int
	order      []domain.Element
	bindings   map[string]binding
	firstID    string
	lastID     string
	shortcutID string
}

// Coordinator computes the ordered focusable set for a slide, flips tab
// stops as slides change, and owns the cyclic trap plus the "last input →
// next button" shortcut.
type Coordinator struct {
	surface ports.Surface
	logger  *slog.Logger
	gen     *generation
}

// New creates a coordinator over a surface.
func New(surface ports.Surface, logger *slog.Logger) *Coordinator {
	return &Coordinator{surface: surface, logger: logger}
}

// BuildFocusSet orders a slide's focusable elements for tabbing:
// form inputs first, then links and explicitly tab-stopped elements not
// already classified, then buttons. Elements marked unreachable (-1) that
// fall in no class are excluded.
func BuildFocusSet(elements []domain.Element) []domain.Element {
	var inputs, other, buttons []domain.Element
	for _, el := range elements {
		switch {
		case el.Kind == domain.ElementInput:
			inputs = append(inputs, el)
		case el.Kind == domain.ElementButton || el.Role != "":
			buttons = append(buttons, el)
		case el.Kind == domain.ElementLink || el.TabIndex >= 0:
			other = append(other, el)
		}
	}
	set := make([]domain.Element, 0, len(inputs)+len(other)+len(buttons))
	set = append(set, inputs...)
	set = append(set, other...)
	set = append(set, buttons...)
	return set
}

// Activate installs the focus generation for slide, replacing whatever the
// prior activation installed. Every member of the new FocusSet becomes
// reachable; every element of prev becomes unreachable, except elements the
// host already marked unreachable. Passing the same slide twice leaves
// exactly one generation live.
func (c *Coordinator) Activate(slide domain.Slide, prev *domain.Slide) {
	c.gen = nil

	if prev != nil && prev.Index != slide.Index {
		for _, el := range c.surface.Focusables(prev.Index) {
			if el.TabIndex == -1 {
				continue
			}
			c.surface.SetTabStop(el.ID, false)
		}
	}

	set := BuildFocusSet(c.surface.Focusables(slide.Index))
	g := &generation{
		slide:    slide.Index,
		order:    set,
		bindings: make(map[string]binding),
	}
	for _, el := range set {
		c.surface.SetTabStop(el.ID, true)
	}

	if len(set) == 0 {
		// Nothing to trap.
		c.gen = g
		c.logger.Debug("focus activation with no focusable elements", "slide", slide.ID)
		return
	}

	g.firstID = set[0].ID
	g.lastID = set[len(set)-1].ID
	g.bindings[g.firstID] |= bindFirst
	g.bindings[g.lastID] |= bindLast

	var inputs, buttons []domain.Element
	for _, el := range set {
		switch el.Kind {
		case domain.ElementInput:
			inputs = append(inputs, el)
		default:
			if el.Kind == domain.ElementButton || el.Role != "" {
				buttons = append(buttons, el)
			}
		}
	}

	// Shortcut: forward tab on the last input jumps to the first
	// non-"prev" button, so users don't tab through the back button on
	// every slide. Falls back to the first button when all are "prev".
	if len(inputs) > 0 && len(buttons) > 0 {
		lastInput := inputs[len(inputs)-1]
		g.bindings[lastInput.ID] |= bindLastInput
		g.shortcutID = buttons[0].ID
		for _, b := range buttons {
			if b.Role != domain.RolePrev {
				g.shortcutID = b.ID
				break
			}
		}
	}

	c.gen = g
	c.logger.Debug("focus generation installed",
		"slide", slide.ID, "focusables", len(set), "handlers", len(g.bindings))
}

// HandleKey processes a tab keypress from the host: elementID is the element
// holding focus, forward is false for shift-tab. Reports whether focus was
// redirected.
func (c *Coordinator) HandleKey(elementID string, forward bool) bool {
	g := c.gen
	if g == nil {
		return false
	}
	b, ok := g.bindings[elementID]
	if !ok {
		return false
	}

	switch {
	case forward && b&bindLastInput != 0 && g.shortcutID != "":
		c.surface.FocusElement(g.shortcutID)
		return true
	case forward && b&bindLast != 0:
		c.surface.FocusElement(g.firstID)
		return true
	case !forward && b&bindFirst != 0:
		c.surface.FocusElement(g.lastID)
		return true
	}
	return false
}

// HandlerCount reports how many elements carry live handlers. Used to verify
// that re-activation never leaks a generation.
func (c *Coordinator) HandlerCount() int {
	if c.gen == nil {
		return 0
	}
	return len(c.gen.bindings)
}

// ActiveSlide returns the slide index of the live generation, or -1.
func (c *Coordinator) ActiveSlide() int {
	if c.gen == nil {
		return -1
	}
	return c.gen.slide
}

// Teardown removes all tracked handlers unconditionally.
func (c *Coordinator) Teardown() {
	c.gen = nil
}
