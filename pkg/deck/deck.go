// Package deck loads slide-deck definitions from YAML and turns them into
// navigable surfaces. A deck is the headless equivalent of the host page's
// markup: slides in order, each with optional id, alignment override,
// markdown content, form fields, and buttons.
package deck

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/makebuild-code/slidenav/pkg/adapters/memory"
	"github.com/makebuild-code/slidenav/pkg/domain"
)

// Field declares one form control on a slide.
type Field struct {
	Name     string   `yaml:"name"`
	Label    string   `yaml:"label,omitempty"`
	Kind     string   `yaml:"kind,omitempty"` // text, radio, toggle, file, date, textarea
	Required bool     `yaml:"required,omitempty"`
	Options  []string `yaml:"options,omitempty"`
}

// Button declares one actionable control on a slide.
type Button struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label,omitempty"`
	Role  string `yaml:"role,omitempty"` // prev, next, submit
}

// Link declares one anchor-like control on a slide.
type Link struct {
	Name string `yaml:"name"`
	Href string `yaml:"href,omitempty"`
}

// SlideDef is one slide of the deck.
type SlideDef struct {
	ID      string   `yaml:"id,omitempty"`
	Align   string   `yaml:"align,omitempty"`
	Title   string   `yaml:"title,omitempty"`
	Content string   `yaml:"content,omitempty"`
	Height  int      `yaml:"height,omitempty"` // simulated pixel height, estimated when absent
	Fields  []Field  `yaml:"fields,omitempty"`
	Links   []Link   `yaml:"links,omitempty"`
	Buttons []Button `yaml:"buttons,omitempty"`
}

// Deck is a parsed slide-deck definition.
type Deck struct {
	Title    string         `yaml:"title,omitempty"`
	Viewport int            `yaml:"viewport,omitempty"`
	Settings map[string]any `yaml:"settings,omitempty"`
	Slides   []SlideDef     `yaml:"slides"`
}

// DefaultViewport is the simulated container height when the deck declares
// none.
const DefaultViewport = 900

// Parse reads a YAML deck and normalizes it: missing slide ids get the
// stable "slide-<n>" fallback (never regenerated afterwards), alignments are
// validated, and heights are estimated from content where absent.
func Parse(data []byte) (*Deck, error) {
	var d Deck
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse deck: %w", err)
	}
	if len(d.Slides) == 0 {
		return nil, domain.ErrEmptyDeck
	}
	if d.Viewport <= 0 {
		d.Viewport = DefaultViewport
	}

	seen := make(map[string]struct{}, len(d.Slides))
	for i := range d.Slides {
		s := &d.Slides[i]
		if s.ID == "" {
			s.ID = domain.GenerateSlideID(i)
		}
		if _, dup := seen[s.ID]; dup {
			return nil, fmt.Errorf("duplicate slide id %q", s.ID)
		}
		seen[s.ID] = struct{}{}

		if s.Align != "" {
			if _, ok := domain.ParseAlignment(s.Align); !ok {
				return nil, fmt.Errorf("slide %q: invalid alignment %q", s.ID, s.Align)
			}
		}
		if s.Height <= 0 {
			s.Height = estimateHeight(s)
		}
	}
	return &d, nil
}

// Load reads a deck from a YAML file.
func Load(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck file: %w", err)
	}
	return Parse(data)
}

// estimateHeight gives headless surfaces a plausible rendered height so the
// tall-slide alignment policy stays exercised without a real layout engine.
func estimateHeight(s *SlideDef) int {
	h := 160
	h += 24 * len(strings.Split(strings.TrimSpace(s.Content), "\n"))
	h += 72 * len(s.Fields)
	h += 48 * len(s.Buttons)
	return h
}

// Config resolves the deck's form-wide settings over the design defaults.
func (d *Deck) Config() (domain.Config, error) {
	return domain.ConfigFromAttributes(d.Settings)
}

// FieldElementID returns the element id for a field of a slide.
func FieldElementID(slideID, fieldName string) string {
	return slideID + "." + fieldName
}

// Elements maps a slide definition to its focusable elements in visual
// order: fields, then links, then buttons.
func (s *SlideDef) Elements() []domain.Element {
	out := make([]domain.Element, 0, len(s.Fields)+len(s.Links)+len(s.Buttons))
	for _, f := range s.Fields {
		out = append(out, domain.Element{
			ID:   FieldElementID(s.ID, f.Name),
			Kind: domain.ElementInput,
		})
	}
	for _, l := range s.Links {
		out = append(out, domain.Element{
			ID:   FieldElementID(s.ID, l.Name),
			Kind: domain.ElementLink,
		})
	}
	for _, b := range s.Buttons {
		out = append(out, domain.Element{
			ID:   FieldElementID(s.ID, b.Name),
			Kind: domain.ElementButton,
			Role: b.Role,
		})
	}
	return out
}

// Surface builds an in-memory surface mirroring the deck.
func (d *Deck) Surface() *memory.Surface {
	specs := make([]memory.SlideSpec, len(d.Slides))
	for i, s := range d.Slides {
		specs[i] = memory.SlideSpec{
			ID:       s.ID,
			Align:    domain.Alignment(s.Align),
			Height:   s.Height,
			Elements: s.Elements(),
		}
	}
	return memory.NewSurface(d.Viewport, specs...)
}

// SlideByID finds a slide definition. ok is false when absent.
func (d *Deck) SlideByID(id string) (*SlideDef, bool) {
	for i := range d.Slides {
		if d.Slides[i].ID == id {
			return &d.Slides[i], true
		}
	}
	return nil, false
}
