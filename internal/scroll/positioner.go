// Package scroll resolves scroll alignment against slide geometry and
// performs the scroll through the surface.
package scroll

import (
	"log/slog"

	"github.com/makebuild-code/slidenav/pkg/domain"
	"github.com/makebuild-code/slidenav/pkg/ports"
)

// Positioner chooses the effective alignment for a slide and delegates the
// actual scroll to the surface. Geometry is read per call, never cached, so
// resizes are always observed.
type Positioner struct {
	surface      ports.Surface
	defaultAlign domain.Alignment
	tallRatio    float64
	logger       *slog.Logger
}

// New creates a positioner with the form-wide default alignment.
func New(surface ports.Surface, defaultAlign domain.Alignment, tallRatio float64, logger *slog.Logger) *Positioner {
	return &Positioner{
		surface:      surface,
		defaultAlign: defaultAlign,
		tallRatio:    tallRatio,
		logger:       logger,
	}
}

// Effective applies the tall-slide policy to a requested alignment: center
// and end degrade to start when the slide fills more than ratio of the
// viewport, so tall content is never scrolled partly off-screen. A
// non-positive viewport disables the check.
func Effective(requested domain.Alignment, slideHeight, viewportHeight int, ratio float64) domain.Alignment {
	if requested != domain.AlignCenter && requested != domain.AlignEnd {
		return requested
	}
	if viewportHeight <= 0 {
		return requested
	}
	if float64(slideHeight) > ratio*float64(viewportHeight) {
		return domain.AlignStart
	}
	return requested
}

// Resolve returns the effective alignment for a slide: the per-slide
// override wins over the form-wide default, then the tall-slide policy is
// applied against the slide's current rendered height.
func (p *Positioner) Resolve(slide domain.Slide) domain.Alignment {
	requested := p.defaultAlign
	if slide.Align != "" {
		requested = slide.Align
	}

	height := p.surface.SlideHeight(slide.Index)
	viewport := p.surface.ViewportHeight()
	effective := Effective(requested, height, viewport, p.tallRatio)
	if effective != requested {
		p.logger.Debug("alignment downgraded for tall slide",
			"slide", slide.ID, "requested", string(requested),
			"height", height, "viewport", viewport)
	}
	return effective
}

// Perform scrolls the slide into view. Completion is not observable here;
// the caller infers it from the configured animation duration.
func (p *Positioner) Perform(index int, align domain.Alignment, animate bool) {
	p.surface.ScrollTo(index, align, animate)
}
