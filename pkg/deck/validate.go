package deck

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/makebuild-code/slidenav/internal/logging"
	"github.com/makebuild-code/slidenav/pkg/domain"
	"github.com/makebuild-code/slidenav/pkg/ports"
)

// Answers is a concurrency-safe record of field answers, keyed by
// "<slide-id>.<field-name>". It lives in memory only; answers are never
// persisted.
type Answers struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewAnswers creates an empty answer set.
func NewAnswers() *Answers {
	return &Answers{values: make(map[string]string)}
}

// Set records an answer.
func (a *Answers) Set(slideID, field, value string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.values[FieldElementID(slideID, field)] = value
}

// Get returns the recorded answer for a field.
func (a *Answers) Get(slideID, field string) (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	v, ok := a.values[FieldElementID(slideID, field)]
	return v, ok
}

// Validator implements ports.Validator against a deck's field declarations:
// every required field of the slide must carry a non-blank answer, and radio
// answers must be one of the declared options. Safe to call repeatedly.
type Validator struct {
	deck    *Deck
	answers *Answers
	logger  *slog.Logger
}

var _ ports.Validator = (*Validator)(nil)

// NewValidator builds a validator over a deck and its answers.
func NewValidator(d *Deck, answers *Answers, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Validator{deck: d, answers: answers, logger: logger}
}

// ValidateSlide reports whether the slide's required fields are satisfied.
func (v *Validator) ValidateSlide(slide domain.Slide) bool {
	def, ok := v.deck.SlideByID(slide.ID)
	if !ok {
		// Unknown slide: nothing to require.
		return true
	}

	for _, f := range def.Fields {
		answer, has := v.answers.Get(def.ID, f.Name)
		answer = strings.TrimSpace(answer)

		if f.Required && (!has || answer == "") {
			v.logger.Debug("required field missing", "slide", def.ID, "field", f.Name)
			return false
		}
		if f.Kind == "radio" && answer != "" && len(f.Options) > 0 {
			if !contains(f.Options, answer) {
				v.logger.Debug("radio answer not among options", "slide", def.ID, "field", f.Name)
				return false
			}
		}
	}
	return true
}

func contains(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}
