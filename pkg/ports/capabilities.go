package ports

import "github.com/makebuild-code/slidenav/pkg/domain"

// Validator is the pluggable per-slide validation capability. Forward
// navigation calls it unless validation is disabled for the form instance;
// backward navigation never does. Implementations must be side-effect-safe
// to call repeatedly.
type Validator interface {
	ValidateSlide(slide domain.Slide) bool
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(slide domain.Slide) bool

func (f ValidatorFunc) ValidateSlide(slide domain.Slide) bool { return f(slide) }

// ProgressReporter receives the committed index during the visual pipeline
// and again after transition completion. Implementations render progress
// bars, step counters, and button enablement; they must never block.
type ProgressReporter interface {
	UpdateProgress(index int)
	UpdateCounter(index int)
	UpdateButtonStates(index int)
}

// NopReporter is the default ProgressReporter.
type NopReporter struct{}

func (NopReporter) UpdateProgress(int)     {}
func (NopReporter) UpdateCounter(int)      {}
func (NopReporter) UpdateButtonStates(int) {}
