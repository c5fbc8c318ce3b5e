package runtime

import (
	"log/slog"
	"sync"
	"time"

	"github.com/makebuild-code/slidenav/internal/focus"
	"github.com/makebuild-code/slidenav/internal/logging"
	"github.com/makebuild-code/slidenav/internal/scroll"
	"github.com/makebuild-code/slidenav/pkg/domain"
	"github.com/makebuild-code/slidenav/pkg/ports"
)

// State is the machine's transition-admission state.
type State string

const (
	// StateIdle means no transition is in flight.
	StateIdle State = "idle"
	// StateAnimating means a transition's visual/scroll phase is in progress.
	StateAnimating State = "animating"
	// StateDraining means queued requests are being replayed after an
	// animating phase completed.
	StateDraining State = "draining"
)

// timerSlot is the single-slot owned pending timer. Arming it always cancels
// the previous timer first, so at most one is ever live.
type timerSlot struct {
	handle ports.TimerHandle
}

func (s *timerSlot) arm(sched ports.Scheduler, d time.Duration, fn func()) {
	s.cancel()
	s.handle = sched.AfterFunc(d, fn)
}

func (s *timerSlot) cancel() {
	if s.handle != nil {
		s.handle.Stop()
		s.handle = nil
	}
}

// Machine owns transition admission control for one form instance: the
// debounce guard, the single-flight animation lock, the bounded overflow
// queue, and the orchestration of tracker, focus, scroll, and progress
// collaborators on each transition.
//
// All host callbacks (timers, frames) re-enter through the mutex, which
// stands in for the host's single UI thread. Once a transition is admitted
// it runs to completion; there is no mid-flight abort.
type Machine struct {
	mu sync.Mutex

	cfg        domain.Config
	surface    ports.Surface
	sched      ports.Scheduler
	validator  ports.Validator
	reporter   ports.ProgressReporter
	dispatcher *domain.Dispatcher
	logger     *slog.Logger

	focus  *focus.Coordinator
	scroll *scroll.Positioner

	slides  []domain.Slide
	tracker *Tracker

	state          State
	lastTransition time.Time
	pending        timerSlot
	queue          *pendingQueue
	prevActive     int
	startIndex     int

	// generation invalidates scheduled callbacks after reset or destroy.
	generation uint64
	destroyed  bool
}

// Option configures a Machine.
type Option func(*Machine)

// WithValidator sets the forward-navigation validation capability.
func WithValidator(v ports.Validator) Option {
	return func(m *Machine) { m.validator = v }
}

// WithReporter sets the progress/counter/button-state collaborator.
func WithReporter(r ports.ProgressReporter) Option {
	return func(m *Machine) { m.reporter = r }
}

// WithHooks registers lifecycle observers.
func WithHooks(h domain.LifecycleHooks) Option {
	return func(m *Machine) { m.dispatcher.Register(h) }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) { m.logger = l }
}

// WithStartIndex sets the initial committed index (default 0). Out-of-range
// values are clamped at construction.
func WithStartIndex(index int) Option {
	return func(m *Machine) { m.startIndex = index }
}

// New builds a machine over a surface. Slides are enumerated once here:
// their count is immutable afterwards and ids missing from the markup get
// the stable "slide-<n>" fallback. The start slide is activated immediately,
// without events or animation.
func New(surface ports.Surface, sched ports.Scheduler, cfg domain.Config, opts ...Option) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	total := surface.SlideCount()
	if total == 0 {
		return nil, domain.ErrEmptyDeck
	}

	m := &Machine{
		cfg:        cfg,
		surface:    surface,
		sched:      sched,
		reporter:   ports.NopReporter{},
		dispatcher: &domain.Dispatcher{},
		logger:     logging.NewNop(),
		queue:      newPendingQueue(cfg.QueueCapacity),
		state:      StateIdle,
		prevActive: -1,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.dispatcher.Logger = m.logger

	m.slides = make([]domain.Slide, total)
	for i := 0; i < total; i++ {
		id := surface.SlideID(i)
		if id == "" {
			id = domain.GenerateSlideID(i)
		}
		s := domain.Slide{Index: i, ID: id}
		if align, ok := surface.AlignmentOverride(i); ok {
			s.Align = align
		}
		m.slides[i] = s
	}

	if m.startIndex < 0 || m.startIndex >= total {
		m.startIndex = 0
	}
	m.tracker = NewTracker(m.startIndex)

	m.focus = focus.New(surface, m.logger)
	m.scroll = scroll.New(surface, cfg.Alignment, cfg.TallSlideRatio, m.logger)

	m.surface.SetActive(m.startIndex)
	m.focus.Activate(m.slides[m.startIndex], nil)
	m.prevActive = m.startIndex
	m.reportLocked(m.startIndex)

	return m, nil
}

// TotalSlides returns the immutable slide count.
func (m *Machine) TotalSlides() int {
	return len(m.slides)
}

// Slide returns the handle for an index. ok is false when out of range.
func (m *Machine) Slide(index int) (domain.Slide, bool) {
	if index < 0 || index >= len(m.slides) {
		return domain.Slide{}, false
	}
	return m.slides[index], true
}

// CurrentIndex returns the committed index. During an animation this already
// reflects the target: the tracker records intended position, not rendered
// position.
func (m *Machine) CurrentIndex() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tracker.Current()
}

// State returns the admission state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Position returns a detached snapshot of the committed position.
func (m *Machine) Position() *domain.Position {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tracker.Snapshot()
}

// QueueDepth returns the number of pending queued requests.
func (m *Machine) QueueDepth() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue.len()
}

// HandleKey forwards a tab keypress from the host. elementID is the focused
// element, forward is false for shift-tab. Reports whether the coordinator
// consumed the key.
func (m *Machine) HandleKey(elementID string, forward bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.destroyed {
		return false
	}
	return m.focus.HandleKey(elementID, forward)
}

type requestOptions struct {
	forced  bool
	refresh bool
}

// Request asks for navigation to an absolute index. The machine either
// executes it, queues it, or drops it; it never returns an error to the
// caller.
func (m *Machine) Request(index int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestLocked(index, requestOptions{})
}

// Next navigates forward one slide, gated by the validator unless validation
// is disabled. A no-op at the last slide.
func (m *Machine) Next() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.destroyed {
		return
	}
	cur := m.tracker.Current()
	if cur+1 >= len(m.slides) {
		m.logger.Debug("next ignored at last slide", "index", cur)
		return
	}
	if m.cfg.ValidationEnabled && m.validator != nil {
		if !m.validator.ValidateSlide(m.slides[cur]) {
			m.logger.Info("forward navigation blocked by validation", "slide", m.slides[cur].ID)
			m.decideLocked(cur+1, domain.DecisionBlocked, false)
			return
		}
	}
	m.requestLocked(cur+1, requestOptions{})
}

// Prev navigates backward one slide. Never validated. A no-op at index 0.
func (m *Machine) Prev() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.destroyed {
		return
	}
	cur := m.tracker.Current()
	if cur == 0 {
		m.logger.Debug("prev ignored at first slide")
		return
	}
	m.requestLocked(cur-1, requestOptions{})
}

// Refresh re-navigates to the committed index after a host resize, so the
// scroll alignment is recomputed against the new geometry. Non-animated by
// default; dropped when a transition is in flight.
func (m *Machine) Refresh() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestLocked(m.tracker.Current(), requestOptions{refresh: true})
}

func (m *Machine) requestLocked(index int, opt requestOptions) {
	if m.destroyed {
		return
	}

	if index < 0 || index >= len(m.slides) {
		m.logger.Warn("navigation request out of range", "index", index, "total", len(m.slides))
		m.decideLocked(index, domain.DecisionOutOfRange, opt.forced)
		return
	}

	if m.state == StateIdle && index == m.tracker.Current() && !opt.refresh {
		m.logger.Debug("redundant navigation request", "index", index)
		m.decideLocked(index, domain.DecisionRedundant, opt.forced)
		return
	}

	if opt.refresh && m.state != StateIdle {
		m.logger.Debug("refresh dropped, transition in flight", "state", string(m.state))
		m.decideLocked(index, domain.DecisionDropped, false)
		return
	}

	if m.state != StateIdle && !opt.forced &&
		m.sched.Now().Sub(m.lastTransition) < m.cfg.DebounceWindow {
		if m.queue.push(index) {
			m.logger.Debug("navigation request queued", "index", index, "depth", m.queue.len())
			m.decideLocked(index, domain.DecisionQueued, false)
		} else {
			m.logger.Debug("navigation request dropped", "index", index, "depth", m.queue.len())
			m.decideLocked(index, domain.DecisionDropped, false)
		}
		return
	}

	m.admitLocked(index, opt)
}

// admitLocked begins the transition: the tracker commits immediately (state
// queries made mid-animation already reflect the new target), then the
// visual pipeline runs step by step on frame boundaries.
func (m *Machine) admitLocked(index int, opt requestOptions) {
	from := m.tracker.Current()
	animate := m.cfg.Animate
	if opt.refresh {
		animate = m.cfg.AnimateResize
	}

	// A debounce-expiry admission supersedes the in-flight transition; its
	// completion timer must not fire mid-pipeline and flip the machine idle.
	m.pending.cancel()

	m.state = StateAnimating
	m.tracker.Commit(index)
	m.lastTransition = m.sched.Now()
	m.logger.Info("transition admitted", "from", from, "to", index, "forced", opt.forced)
	m.decideLocked(index, domain.DecisionAdmitted, opt.forced)

	gen := m.generation
	m.sched.NextFrame(func() { m.stepActivate(gen, from, index, animate) })
}

// Pipeline step 1+2+3: move the active marker, notify progress collaborators
// and the slide-change observers, then rebuild focus for the target slide.
func (m *Machine) stepActivate(gen uint64, from, index int, animate bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.staleLocked(gen) {
		return
	}

	m.surface.SetActive(index)

	m.reportLocked(index)
	m.dispatcher.SlideChange(domain.SlideChangeEvent{
		CurrentSlideNumber: index + 1,
		TotalSlides:        len(m.slides),
		SlideID:            m.slides[index].ID,
	})

	var prev *domain.Slide
	if m.prevActive >= 0 && m.prevActive != index {
		prev = &m.slides[m.prevActive]
	}
	m.focus.Activate(m.slides[index], prev)
	m.prevActive = index

	m.sched.NextFrame(func() { m.stepScroll(gen, from, index, animate) })
}

// Pipeline step 4: resolve the effective alignment against live geometry and
// scroll. Step 5 is armed here: completion is inferred from the configured
// duration, the platform offers no scroll-completion callback.
func (m *Machine) stepScroll(gen uint64, from, index int, animate bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.staleLocked(gen) {
		return
	}

	align := m.scroll.Resolve(m.slides[index])
	m.scroll.Perform(index, align, animate)

	delay := m.cfg.InstantDelay
	if animate {
		delay = m.cfg.AnimationDuration + m.cfg.SettleMargin
	}
	m.pending.arm(m.sched, delay, func() { m.stepComplete(gen, from, index) })
}

// Pipeline step 5: release the animation lock, re-notify collaborators, emit
// the completion event, and start draining the queue.
func (m *Machine) stepComplete(gen uint64, from, index int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.staleLocked(gen) {
		return
	}

	m.state = StateIdle
	m.pending.handle = nil

	m.reportLocked(index)
	m.dispatcher.Complete(domain.TransitionEvent{
		FromIndex: from,
		ToIndex:   index,
		SlideID:   m.slides[index].ID,
		Timestamp: m.sched.Now(),
	})
	m.logger.Debug("transition complete", "from", from, "to", index)

	m.drainLocked(gen)
}

// drainLocked replays at most one queued request after a grace delay, so the
// host can settle between transitions. Draining is iterative: each drained
// request completes like any other and triggers the next drain from its own
// completion, never by recursion.
func (m *Machine) drainLocked(gen uint64) {
	if m.queue.len() == 0 {
		return
	}
	m.state = StateDraining
	m.pending.arm(m.sched, m.cfg.DrainGrace, func() { m.stepDrain(gen) })
}

func (m *Machine) stepDrain(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.staleLocked(gen) {
		return
	}

	m.state = StateIdle
	m.pending.handle = nil

	next, ok := m.queue.popDistinct(m.tracker.Current())
	if !ok {
		m.logger.Debug("drain finished, queue empty")
		return
	}
	m.logger.Debug("draining queued request", "index", next, "remaining", m.queue.len())
	m.requestLocked(next, requestOptions{forced: true})
}

// Reset returns the machine to its initial slide: pending work is cancelled,
// the queue cleared, the tracker restarted with a fresh history, and the
// start slide re-activated without animation.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.destroyed {
		return
	}

	m.generation++
	m.pending.cancel()
	m.queue.clear()
	m.state = StateIdle
	m.lastTransition = time.Time{}
	m.tracker = NewTracker(m.startIndex)

	m.surface.SetActive(m.startIndex)
	var prev *domain.Slide
	if m.prevActive >= 0 && m.prevActive != m.startIndex {
		prev = &m.slides[m.prevActive]
	}
	m.focus.Activate(m.slides[m.startIndex], prev)
	m.prevActive = m.startIndex
	m.scroll.Perform(m.startIndex, m.scroll.Resolve(m.slides[m.startIndex]), false)
	m.reportLocked(m.startIndex)

	m.logger.Info("navigation reset", "index", m.startIndex)
	m.dispatcher.Reset()
}

// Destroy cancels all pending timers, clears the queue, and removes all
// focus handlers. The machine accepts no further requests.
func (m *Machine) Destroy() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.destroyed {
		return
	}

	m.generation++
	m.pending.cancel()
	m.queue.clear()
	m.state = StateIdle
	m.destroyed = true
	m.focus.Teardown()

	m.logger.Info("navigation destroyed")
	m.dispatcher.Destroy()
}

func (m *Machine) staleLocked(gen uint64) bool {
	return m.destroyed || gen != m.generation
}

func (m *Machine) reportLocked(index int) {
	m.reporter.UpdateProgress(index)
	m.reporter.UpdateCounter(index)
	m.reporter.UpdateButtonStates(index)
}

func (m *Machine) decideLocked(index int, d domain.Decision, forced bool) {
	m.dispatcher.Decision(domain.DecisionEvent{
		Index:      index,
		Decision:   d,
		QueueDepth: m.queue.len(),
		Forced:     forced,
		Timestamp:  m.sched.Now(),
	})
}
