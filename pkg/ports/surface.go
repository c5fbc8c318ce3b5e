package ports

import "github.com/makebuild-code/slidenav/pkg/domain"

// Surface is the host page boundary. The engine drives exactly one surface
// per form instance; everything visual (the active-slide marker, scrolling,
// tab stops, programmatic focus) happens behind this interface.
//
// Geometry is queried at transition time, never cached by the engine, so a
// resized host is always observed fresh.
type Surface interface {
	// SlideCount returns the immutable number of slides.
	SlideCount() int

	// SlideID returns the host-declared identifier for a slide, or "" when
	// the markup carries none. The engine generates a stable fallback.
	SlideID(index int) string

	// AlignmentOverride reports a per-slide alignment attribute, if any.
	AlignmentOverride(index int) (domain.Alignment, bool)

	// SlideHeight returns the rendered height of a slide in pixels.
	SlideHeight(index int) int

	// ViewportHeight returns the visible container height in pixels.
	ViewportHeight() int

	// SetActive toggles the active-slide marker onto exactly one slide and
	// clears it from all others.
	SetActive(index int)

	// Focusables enumerates the focusable elements of a slide in visual
	// order. The engine classifies and reorders them into the FocusSet.
	Focusables(index int) []domain.Element

	// SetTabStop makes an element keyboard-reachable (tab stop 0) or
	// unreachable (-1).
	SetTabStop(elementID string, reachable bool)

	// FocusElement moves keyboard focus to an element.
	FocusElement(elementID string)

	// ScrollTo scrolls a slide into view, smoothly when animate is true and
	// instantly otherwise. Completion is not observable; the engine infers
	// it from the configured duration.
	ScrollTo(index int, align domain.Alignment, animate bool)
}
