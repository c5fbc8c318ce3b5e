package slidenav

import (
	"log/slog"

	"github.com/makebuild-code/slidenav/internal/logging"
	"github.com/makebuild-code/slidenav/internal/runtime"
	"github.com/makebuild-code/slidenav/pkg/adapters/wallclock"
	"github.com/makebuild-code/slidenav/pkg/domain"
	"github.com/makebuild-code/slidenav/pkg/ports"
)

// Version of the slidenav library.
const Version = "0.1.0"

// Wizard is the high-level entry point for the slidenav library.
// It wraps the internal navigation machine and provides a simplified API for
// consumers.
type Wizard struct {
	machine *runtime.Machine
	surface ports.Surface
	logger  *slog.Logger
}

// options collects construction settings before the machine exists.
type options struct {
	cfg        domain.Config
	cfgSet     bool
	attrs      map[string]any
	sched      ports.Scheduler
	logger     *slog.Logger
	validator  ports.Validator
	reporter   ports.ProgressReporter
	hooks      []domain.LifecycleHooks
	startIndex int
}

// Option defines a functional option for configuring the Wizard.
type Option func(*options)

// WithConfig sets the full navigation configuration. Overrides any
// WithAttributes settings.
func WithConfig(cfg domain.Config) Option {
	return func(o *options) {
		o.cfg = cfg
		o.cfgSet = true
	}
}

// WithAttributes resolves the configuration from host markup attributes over
// the design defaults.
func WithAttributes(attrs map[string]any) Option {
	return func(o *options) { o.attrs = attrs }
}

// WithScheduler injects the frame/timer scheduler. Defaults to wall-clock
// timers with 60Hz frames.
func WithScheduler(s ports.Scheduler) Option {
	return func(o *options) { o.sched = s }
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithValidator sets the per-slide validation capability gating forward
// navigation.
func WithValidator(v ports.Validator) Option {
	return func(o *options) { o.validator = v }
}

// WithProgressReporter sets the progress/counter/button-state collaborator.
func WithProgressReporter(r ports.ProgressReporter) Option {
	return func(o *options) { o.reporter = r }
}

// WithLifecycleHooks registers observability hooks. May be given multiple
// times; all observers fire.
func WithLifecycleHooks(h domain.LifecycleHooks) Option {
	return func(o *options) { o.hooks = append(o.hooks, h) }
}

// WithStartIndex sets the initial slide, e.g. when resuming a persisted
// session. Out-of-range values fall back to 0.
func WithStartIndex(index int) Option {
	return func(o *options) { o.startIndex = index }
}

// New creates a Wizard over a surface. The start slide is activated
// immediately; no events fire for the initial activation.
func New(surface ports.Surface, opts ...Option) (*Wizard, error) {
	o := &options{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(o)
	}

	cfg := o.cfg
	if !o.cfgSet {
		var err error
		cfg, err = domain.ConfigFromAttributes(o.attrs)
		if err != nil {
			return nil, err
		}
	}
	if o.sched == nil {
		o.sched = wallclock.New()
	}

	machineOpts := []runtime.Option{
		runtime.WithLogger(o.logger),
		runtime.WithStartIndex(o.startIndex),
	}
	if o.validator != nil {
		machineOpts = append(machineOpts, runtime.WithValidator(o.validator))
	}
	if o.reporter != nil {
		machineOpts = append(machineOpts, runtime.WithReporter(o.reporter))
	}
	for _, h := range o.hooks {
		machineOpts = append(machineOpts, runtime.WithHooks(h))
	}

	m, err := runtime.New(surface, o.sched, cfg, machineOpts...)
	if err != nil {
		return nil, err
	}

	return &Wizard{machine: m, surface: surface, logger: o.logger}, nil
}

// Next navigates forward one slide, gated by the validator unless validation
// is disabled. A no-op at the last slide.
func (w *Wizard) Next() { w.machine.Next() }

// Prev navigates backward one slide. Never validated. A no-op at the first
// slide.
func (w *Wizard) Prev() { w.machine.Prev() }

// GoToSlide requests navigation to an absolute 0-based index. The request is
// executed, queued, or dropped; it never fails loudly.
func (w *Wizard) GoToSlide(index int) { w.machine.Request(index) }

// Refresh re-navigates to the committed slide after a host resize.
func (w *Wizard) Refresh() { w.machine.Refresh() }

// Reset returns the wizard to its initial slide and clears pending work.
func (w *Wizard) Reset() { w.machine.Reset() }

// Destroy cancels all pending timers and handlers. The wizard accepts no
// further requests.
func (w *Wizard) Destroy() { w.machine.Destroy() }

// CurrentIndex returns the committed slide index.
func (w *Wizard) CurrentIndex() int { return w.machine.CurrentIndex() }

// CurrentSlide returns the committed slide handle.
func (w *Wizard) CurrentSlide() domain.Slide {
	s, _ := w.machine.Slide(w.machine.CurrentIndex())
	return s
}

// TotalSlides returns the immutable slide count.
func (w *Wizard) TotalSlides() int { return w.machine.TotalSlides() }

// Position returns a detached snapshot of the committed position, suitable
// for persistence.
func (w *Wizard) Position() *domain.Position { return w.machine.Position() }

// QueueDepth returns the number of queued navigation requests.
func (w *Wizard) QueueDepth() int { return w.machine.QueueDepth() }

// Busy reports whether a transition is in flight.
func (w *Wizard) Busy() bool { return w.machine.State() != runtime.StateIdle }

// HandleKey forwards a tab keypress from the host: elementID is the focused
// element, forward is false for shift-tab. Reports whether the focus trap
// consumed the key.
func (w *Wizard) HandleKey(elementID string, forward bool) bool {
	return w.machine.HandleKey(elementID, forward)
}
