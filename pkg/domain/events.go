package domain

import (
	"log/slog"
	"time"
)

// Decision classifies the admission outcome for a navigation request.
type Decision string

const (
	DecisionAdmitted   Decision = "admitted"
	DecisionQueued     Decision = "queued"
	DecisionDropped    Decision = "dropped"
	DecisionRedundant  Decision = "redundant"
	DecisionOutOfRange Decision = "out_of_range"
	DecisionBlocked    Decision = "blocked"
)

// SlideChangeEvent is fired synchronously during the visual pipeline, as soon
// as the new index is committed and the active marker moved.
type SlideChangeEvent struct {
	// CurrentSlideNumber is 1-based, matching what progress UIs display.
	CurrentSlideNumber int    `json:"current_slide_number"`
	TotalSlides        int    `json:"total_slides"`
	SlideID            string `json:"slide_id"`
}

// TransitionEvent is fired once per admitted transition, when the animation
// settle delay elapses.
type TransitionEvent struct {
	FromIndex int       `json:"from_index"`
	ToIndex   int       `json:"to_index"`
	SlideID   string    `json:"slide_id"`
	Timestamp time.Time `json:"timestamp"`
}

// DecisionEvent reports every admission decision, queue event included.
type DecisionEvent struct {
	Index      int       `json:"index"`
	Decision   Decision  `json:"decision"`
	QueueDepth int       `json:"queue_depth"`
	Forced     bool      `json:"forced,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// LifecycleHooks defines callbacks for engine observability. All fields are
// optional. Hooks run synchronously on the engine's scheduling thread and
// must be fast; a panicking hook is recovered and logged, and never aborts
// the remaining hooks or the pipeline. Multiple sets may be registered on a
// Dispatcher; each set is isolated from the others.
type LifecycleHooks struct {
	OnSlideChange func(SlideChangeEvent)
	OnComplete    func(TransitionEvent)
	OnDecision    func(DecisionEvent)
	OnReset       func()
	OnDestroy     func()
}

// Dispatcher fans lifecycle events out to every registered hook set, in
// registration order. Each callback runs under its own panic guard, so a
// panicking hook is logged and the remaining hooks still fire.
type Dispatcher struct {
	Logger *slog.Logger

	hooks []LifecycleHooks
}

// Register appends a hook set. Sets fire in registration order.
func (d *Dispatcher) Register(h LifecycleHooks) {
	d.hooks = append(d.hooks, h)
}

func (d *Dispatcher) safely(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil && d.Logger != nil {
			d.Logger.Error("lifecycle hook panicked", "hook", name, "err", r)
		}
	}()
	fn()
}

// SlideChange fires the slide-change hooks.
func (d *Dispatcher) SlideChange(ev SlideChangeEvent) {
	for _, h := range d.hooks {
		if fn := h.OnSlideChange; fn != nil {
			d.safely("slide_change", func() { fn(ev) })
		}
	}
}

// Complete fires the navigation-completion hooks.
func (d *Dispatcher) Complete(ev TransitionEvent) {
	for _, h := range d.hooks {
		if fn := h.OnComplete; fn != nil {
			d.safely("complete", func() { fn(ev) })
		}
	}
}

// Decision fires the admission-decision hooks.
func (d *Dispatcher) Decision(ev DecisionEvent) {
	for _, h := range d.hooks {
		if fn := h.OnDecision; fn != nil {
			d.safely("decision", func() { fn(ev) })
		}
	}
}

// Reset fires the reset hooks. Carries no payload.
func (d *Dispatcher) Reset() {
	for _, h := range d.hooks {
		if fn := h.OnReset; fn != nil {
			d.safely("reset", fn)
		}
	}
}

// Destroy fires the destroy hooks. Carries no payload.
func (d *Dispatcher) Destroy() {
	for _, h := range d.hooks {
		if fn := h.OnDestroy; fn != nil {
			d.safely("destroy", fn)
		}
	}
}
