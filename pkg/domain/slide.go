package domain

import "fmt"

// Alignment controls where a slide is positioned in the viewport after a scroll.
type Alignment string

const (
	AlignStart   Alignment = "start"
	AlignCenter  Alignment = "center"
	AlignEnd     Alignment = "end"
	AlignNearest Alignment = "nearest"
)

// ParseAlignment validates a raw alignment string.
// An empty string resolves to the zero Alignment with ok=false, letting
// callers fall back to the form-wide default.
func ParseAlignment(raw string) (Alignment, bool) {
	switch Alignment(raw) {
	case AlignStart, AlignCenter, AlignEnd, AlignNearest:
		return Alignment(raw), true
	}
	return "", false
}

// Slide is an opaque handle to one step of the form.
// Slides are created once at initialization and never destroyed during the
// session; Index and ID are stable thereafter. Height is deliberately NOT a
// field: it is read from the Surface at transition time so resizes are
// always observed.
type Slide struct {
	// Index is the 0-based position of the slide, stable for the session.
	Index int `json:"index"`

	// ID is a stable string identifier. Generated as "slide-<1-based>" at
	// init when the markup carries none, and never regenerated afterwards.
	ID string `json:"id"`

	// Align is an optional per-slide alignment override. Empty means
	// "use the form-wide default".
	Align Alignment `json:"align,omitempty"`
}

// GenerateSlideID returns the deterministic fallback identifier for a slide
// without an explicit one.
func GenerateSlideID(index int) string {
	return fmt.Sprintf("slide-%d", index+1)
}

// ElementKind classifies a focusable control for FocusSet ordering.
type ElementKind string

const (
	// ElementInput is a form control (text, radio, toggle, file, date, textarea).
	ElementInput ElementKind = "input"
	// ElementButton is an actionable control, including elements carrying a
	// button-role marker.
	ElementButton ElementKind = "button"
	// ElementLink is an anchor-like control.
	ElementLink ElementKind = "link"
	// ElementOther is anything else the host marked focusable.
	ElementOther ElementKind = "other"
)

// Button roles recognized by the focus shortcut. The "prev" role is skipped
// when redirecting a forward tab from the last input.
const (
	RolePrev   = "prev"
	RoleNext   = "next"
	RoleSubmit = "submit"
)

// Element is an opaque handle to a focusable control inside a slide.
// Identity is carried by ID; the engine never touches the underlying host
// object directly.
type Element struct {
	ID   string      `json:"id"`
	Kind ElementKind `json:"kind"`

	// Role distinguishes buttons ("prev", "next", "submit"). Empty for
	// non-buttons.
	Role string `json:"role,omitempty"`

	// TabIndex mirrors the host's explicit tab stop. Elements already at -1
	// are considered permanently unreachable and are left alone.
	TabIndex int `json:"tab_index"`
}
