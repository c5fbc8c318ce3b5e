package runtime_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makebuild-code/slidenav/internal/runtime"
	"github.com/makebuild-code/slidenav/pkg/adapters/memory"
	"github.com/makebuild-code/slidenav/pkg/adapters/virtual"
	"github.com/makebuild-code/slidenav/pkg/domain"
	"github.com/makebuild-code/slidenav/pkg/ports"
)

// fiveSlides builds the canonical test surface: five short slides in a
// 900px viewport.
func fiveSlides() *memory.Surface {
	specs := make([]memory.SlideSpec, 5)
	for i := range specs {
		specs[i] = memory.SlideSpec{Height: 400}
	}
	return memory.NewSurface(900, specs...)
}

// recorder collects admission decisions for assertions.
type recorder struct {
	mu        sync.Mutex
	decisions []domain.DecisionEvent
	completes []domain.TransitionEvent
}

func (r *recorder) hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDecision: func(ev domain.DecisionEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.decisions = append(r.decisions, ev)
		},
		OnComplete: func(ev domain.TransitionEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.completes = append(r.completes, ev)
		},
	}
}

func (r *recorder) decisionsOf(d domain.Decision) []domain.DecisionEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.DecisionEvent
	for _, ev := range r.decisions {
		if ev.Decision == d {
			out = append(out, ev)
		}
	}
	return out
}

func newMachine(t *testing.T, surface ports.Surface, opts ...runtime.Option) (*runtime.Machine, *virtual.Scheduler) {
	t.Helper()
	sched := virtual.New()
	m, err := runtime.New(surface, sched, domain.DefaultConfig(), opts...)
	require.NoError(t, err)
	return m, sched
}

func TestMachine_New(t *testing.T) {
	t.Run("Empty Deck", func(t *testing.T) {
		sched := virtual.New()
		_, err := runtime.New(memory.NewSurface(900), sched, domain.DefaultConfig())
		assert.ErrorIs(t, err, domain.ErrEmptyDeck)
	})

	t.Run("Invalid Config", func(t *testing.T) {
		cfg := domain.DefaultConfig()
		cfg.TallSlideRatio = 0
		_, err := runtime.New(fiveSlides(), virtual.New(), cfg)
		assert.Error(t, err)
	})

	t.Run("Generated Slide IDs", func(t *testing.T) {
		m, _ := newMachine(t, fiveSlides())
		s, ok := m.Slide(0)
		require.True(t, ok)
		assert.Equal(t, "slide-1", s.ID)
		s, ok = m.Slide(4)
		require.True(t, ok)
		assert.Equal(t, "slide-5", s.ID)
	})

	t.Run("Start Slide Activated Without Events", func(t *testing.T) {
		surface := fiveSlides()
		rec := &recorder{}
		m, _ := newMachine(t, surface, runtime.WithHooks(rec.hooks()))
		assert.Equal(t, 0, m.CurrentIndex())
		assert.Equal(t, 0, surface.Active())
		assert.Empty(t, rec.decisions)
		assert.Empty(t, rec.completes)
	})

	t.Run("Start Index Clamped", func(t *testing.T) {
		m, _ := newMachine(t, fiveSlides(), runtime.WithStartIndex(42))
		assert.Equal(t, 0, m.CurrentIndex())
	})
}

func TestMachine_SingleTransition(t *testing.T) {
	surface := fiveSlides()
	rec := &recorder{}
	m, sched := newMachine(t, surface, runtime.WithHooks(rec.hooks()))

	m.Request(2)

	// Committed immediately, rendering lags.
	assert.Equal(t, 2, m.CurrentIndex())
	assert.Equal(t, runtime.StateAnimating, m.State())
	assert.Equal(t, 0, surface.Active())

	sched.RunUntilIdle()

	assert.Equal(t, runtime.StateIdle, m.State())
	assert.Equal(t, 2, surface.Active())

	scroll, ok := surface.LastScroll()
	require.True(t, ok)
	assert.Equal(t, 2, scroll.Index)
	assert.True(t, scroll.Animate)

	require.Len(t, rec.completes, 1)
	assert.Equal(t, 0, rec.completes[0].FromIndex)
	assert.Equal(t, 2, rec.completes[0].ToIndex)
	assert.Equal(t, "slide-3", rec.completes[0].SlideID)

	pos := m.Position()
	assert.Equal(t, 2, pos.CurrentIndex)
	assert.Equal(t, 2, pos.MaxVisitedIndex)
	assert.Equal(t, []int{0, 2}, pos.History)
}

func TestMachine_RapidRequestsQueueAndDrain(t *testing.T) {
	surface := fiveSlides()
	rec := &recorder{}
	m, sched := newMachine(t, surface, runtime.WithHooks(rec.hooks()))

	// Three requests in quick succession: the first animates, the rest
	// land in the queue.
	m.Request(1)
	m.Request(2)
	m.Request(3)

	assert.Equal(t, 1, m.CurrentIndex())
	assert.Equal(t, 2, m.QueueDepth())
	assert.Len(t, rec.decisionsOf(domain.DecisionAdmitted), 1)
	assert.Len(t, rec.decisionsOf(domain.DecisionQueued), 2)

	sched.RunUntilIdle()

	// All three transitions completed, in order, each fully animated.
	assert.Equal(t, runtime.StateIdle, m.State())
	assert.Equal(t, 3, m.CurrentIndex())
	assert.Equal(t, 0, m.QueueDepth())
	require.Len(t, rec.completes, 3)
	assert.Equal(t, 1, rec.completes[0].ToIndex)
	assert.Equal(t, 2, rec.completes[1].ToIndex)
	assert.Equal(t, 3, rec.completes[2].ToIndex)
	assert.Equal(t, []int{0, 1, 2, 3}, m.Position().History)
}

func TestMachine_QueueCapacityAndDedup(t *testing.T) {
	rec := &recorder{}
	m, sched := newMachine(t, fiveSlides(), runtime.WithHooks(rec.hooks()))

	m.Request(1) // admitted
	m.Request(2) // queued
	m.Request(2) // duplicate, dropped
	m.Request(3) // queued
	m.Request(4) // queued, queue now full
	m.Request(0) // dropped, over capacity

	assert.Equal(t, 3, m.QueueDepth())
	assert.Len(t, rec.decisionsOf(domain.DecisionDropped), 2)

	sched.RunUntilIdle()
	assert.Equal(t, 4, m.CurrentIndex())
}

func TestMachine_DrainSkipsRedundantEntries(t *testing.T) {
	rec := &recorder{}
	m, sched := newMachine(t, fiveSlides(), runtime.WithHooks(rec.hooks()))

	m.Request(3)
	// Queued entry equal to the committed index is discarded at drain time.
	m.Request(3)
	m.Request(2)

	sched.RunUntilIdle()

	assert.Equal(t, 2, m.CurrentIndex())
	// The transition to 3 plus the drained transition to 2.
	assert.Len(t, rec.completes, 2)
}

func TestMachine_RedundantRequestIsNoOp(t *testing.T) {
	surface := fiveSlides()
	rec := &recorder{}
	m, sched := newMachine(t, surface, runtime.WithHooks(rec.hooks()))

	before := len(surface.Scrolls())
	m.Request(0)
	sched.RunUntilIdle()

	assert.Len(t, rec.decisionsOf(domain.DecisionRedundant), 1)
	assert.Empty(t, rec.completes)
	assert.Len(t, surface.Scrolls(), before)
}

func TestMachine_OutOfRange(t *testing.T) {
	rec := &recorder{}
	m, sched := newMachine(t, fiveSlides(), runtime.WithHooks(rec.hooks()))

	m.Request(-1)
	m.Request(5)
	sched.RunUntilIdle()

	assert.Equal(t, 0, m.CurrentIndex())
	assert.Len(t, rec.decisionsOf(domain.DecisionOutOfRange), 2)
	assert.Empty(t, rec.completes)
}

func TestMachine_DebounceExpiryAdmitsMidFlight(t *testing.T) {
	cfg := domain.DefaultConfig()
	// Make the debounce window shorter than the animation, so a request
	// arriving late in the animation executes instead of queueing.
	cfg.DebounceWindow = 100 * time.Millisecond

	surface := fiveSlides()
	rec := &recorder{}
	sched := virtual.New()
	m, err := runtime.New(surface, sched, cfg, runtime.WithHooks(rec.hooks()))
	require.NoError(t, err)

	m.Request(1)
	sched.Advance(200 * time.Millisecond)
	require.Equal(t, runtime.StateAnimating, m.State())

	m.Request(3)
	assert.Equal(t, 3, m.CurrentIndex(), "request past the debounce window commits immediately")
	assert.Len(t, rec.decisionsOf(domain.DecisionAdmitted), 2)

	sched.RunUntilIdle()
	assert.Equal(t, 3, m.CurrentIndex())
	assert.Equal(t, runtime.StateIdle, m.State())
}

func TestMachine_MidFlightAdmissionCancelsSupersededCompletion(t *testing.T) {
	surface := fiveSlides()
	rec := &recorder{}
	m, sched := newMachine(t, surface, runtime.WithHooks(rec.hooks()))

	// First transition settles at t=932ms (two frames plus the 900ms
	// animation-and-settle delay).
	m.Request(1)
	sched.Advance(910 * time.Millisecond)
	require.Equal(t, runtime.StateAnimating, m.State())

	// Past the debounce window, so this admits mid-flight and supersedes
	// the first transition before its completion timer fires.
	m.Request(3)
	require.Equal(t, 3, m.CurrentIndex())

	// Step past t=932ms. The superseded completion must stay cancelled:
	// no {0 -> 1} event, and the machine keeps animating toward 3.
	sched.Advance(26 * time.Millisecond)
	assert.Equal(t, runtime.StateAnimating, m.State(),
		"a superseded completion timer must not flip the machine idle mid-pipeline")
	assert.Empty(t, rec.completes)

	sched.RunUntilIdle()
	assert.Equal(t, 3, m.CurrentIndex())
	assert.Equal(t, runtime.StateIdle, m.State())
	require.Len(t, rec.completes, 1)
	assert.Equal(t, 1, rec.completes[0].FromIndex)
	assert.Equal(t, 3, rec.completes[0].ToIndex)
}

func TestMachine_NextPrev(t *testing.T) {
	t.Run("Prev At First Slide", func(t *testing.T) {
		rec := &recorder{}
		m, sched := newMachine(t, fiveSlides(), runtime.WithHooks(rec.hooks()))
		m.Prev()
		sched.RunUntilIdle()
		assert.Equal(t, 0, m.CurrentIndex())
		assert.Empty(t, rec.decisions)
	})

	t.Run("Next At Last Slide", func(t *testing.T) {
		rec := &recorder{}
		m, sched := newMachine(t, fiveSlides(), runtime.WithStartIndex(4), runtime.WithHooks(rec.hooks()))
		m.Next()
		sched.RunUntilIdle()
		assert.Equal(t, 4, m.CurrentIndex())
		assert.Empty(t, rec.decisions)
	})

	t.Run("Walk Forward And Back", func(t *testing.T) {
		m, sched := newMachine(t, fiveSlides())
		m.Next()
		sched.RunUntilIdle()
		m.Next()
		sched.RunUntilIdle()
		m.Prev()
		sched.RunUntilIdle()

		pos := m.Position()
		assert.Equal(t, 1, pos.CurrentIndex)
		assert.Equal(t, 2, pos.MaxVisitedIndex, "going back never lowers the watermark")
		assert.Equal(t, []int{0, 1, 2, 1}, pos.History)
	})
}

// rejectValidator blocks every forward step.
type rejectValidator struct{}

func (rejectValidator) ValidateSlide(domain.Slide) bool { return false }

func TestMachine_Validation(t *testing.T) {
	t.Run("Forward Blocked", func(t *testing.T) {
		rec := &recorder{}
		m, sched := newMachine(t, fiveSlides(),
			runtime.WithValidator(rejectValidator{}), runtime.WithHooks(rec.hooks()))
		m.Next()
		sched.RunUntilIdle()
		assert.Equal(t, 0, m.CurrentIndex())
		assert.Len(t, rec.decisionsOf(domain.DecisionBlocked), 1)
	})

	t.Run("Backward Never Validated", func(t *testing.T) {
		m, sched := newMachine(t, fiveSlides(),
			runtime.WithStartIndex(2), runtime.WithValidator(rejectValidator{}))
		m.Prev()
		sched.RunUntilIdle()
		assert.Equal(t, 1, m.CurrentIndex())
	})

	t.Run("Disabled Validation Skips Validator", func(t *testing.T) {
		cfg := domain.DefaultConfig()
		cfg.ValidationEnabled = false
		sched := virtual.New()
		m, err := runtime.New(fiveSlides(), sched, cfg, runtime.WithValidator(rejectValidator{}))
		require.NoError(t, err)
		m.Next()
		sched.RunUntilIdle()
		assert.Equal(t, 1, m.CurrentIndex())
	})

	t.Run("Absolute Request Bypasses Validation", func(t *testing.T) {
		m, sched := newMachine(t, fiveSlides(), runtime.WithValidator(rejectValidator{}))
		m.Request(3)
		sched.RunUntilIdle()
		assert.Equal(t, 3, m.CurrentIndex())
	})
}

func TestMachine_Refresh(t *testing.T) {
	t.Run("Re-Scrolls Without Animation", func(t *testing.T) {
		surface := fiveSlides()
		m, sched := newMachine(t, surface)
		m.Request(1)
		sched.RunUntilIdle()
		before := len(surface.Scrolls())

		surface.SetViewportHeight(450)
		m.Refresh()
		sched.RunUntilIdle()

		scrolls := surface.Scrolls()
		require.Len(t, scrolls, before+1)
		last := scrolls[len(scrolls)-1]
		assert.Equal(t, 1, last.Index)
		assert.False(t, last.Animate)
		// A 400px slide in a 450px viewport exceeds the tall ratio now.
		assert.Equal(t, domain.AlignStart, last.Align)
		assert.Equal(t, 1, m.CurrentIndex())
	})

	t.Run("Dropped While Animating", func(t *testing.T) {
		rec := &recorder{}
		m, sched := newMachine(t, fiveSlides(), runtime.WithHooks(rec.hooks()))
		m.Request(1)
		m.Refresh()
		sched.RunUntilIdle()
		assert.Len(t, rec.decisionsOf(domain.DecisionDropped), 1)
		assert.Len(t, rec.completes, 1)
	})
}

func TestMachine_Reset(t *testing.T) {
	surface := fiveSlides()
	var resets int
	m, sched := newMachine(t, surface, runtime.WithHooks(domain.LifecycleHooks{
		OnReset: func() { resets++ },
	}))

	m.Request(3)
	m.Request(4)
	m.Reset()

	assert.Equal(t, 0, m.CurrentIndex())
	assert.Equal(t, runtime.StateIdle, m.State())
	assert.Equal(t, 0, m.QueueDepth())
	assert.Equal(t, 1, resets)
	assert.Equal(t, []int{0}, m.Position().History)

	// Callbacks scheduled before the reset are stale and must not fire.
	sched.RunUntilIdle()
	assert.Equal(t, 0, m.CurrentIndex())
	assert.Equal(t, 0, surface.Active())
}

func TestMachine_Destroy(t *testing.T) {
	surface := fiveSlides()
	var destroyed int
	m, sched := newMachine(t, surface, runtime.WithHooks(domain.LifecycleHooks{
		OnDestroy: func() { destroyed++ },
	}))

	m.Request(2)
	m.Destroy()

	sched.RunUntilIdle()
	assert.Equal(t, 0, surface.Active(), "in-flight pipeline must not touch the surface after destroy")
	assert.Equal(t, 1, destroyed)

	// All entry points are inert now.
	m.Request(1)
	m.Next()
	m.Prev()
	m.Reset()
	m.Destroy()
	sched.RunUntilIdle()
	assert.Equal(t, 1, destroyed)
	assert.False(t, m.HandleKey("anything", true))
}

func TestMachine_PanickingHookDoesNotAbortPipeline(t *testing.T) {
	var laterChange, laterComplete bool
	m, sched := newMachine(t, fiveSlides(),
		runtime.WithHooks(domain.LifecycleHooks{
			OnSlideChange: func(domain.SlideChangeEvent) { panic("observer bug") },
			OnComplete:    func(domain.TransitionEvent) { panic("observer bug") },
		}),
		runtime.WithHooks(domain.LifecycleHooks{
			OnSlideChange: func(domain.SlideChangeEvent) { laterChange = true },
			OnComplete:    func(domain.TransitionEvent) { laterComplete = true },
		}))

	m.Request(2)
	sched.RunUntilIdle()
	assert.Equal(t, 2, m.CurrentIndex())
	assert.Equal(t, runtime.StateIdle, m.State())
	assert.True(t, laterChange, "hooks registered after a panicking set must still fire")
	assert.True(t, laterComplete)
}

// countingReporter tracks progress notifications.
type countingReporter struct {
	mu       sync.Mutex
	progress []int
}

func (r *countingReporter) UpdateProgress(index int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = append(r.progress, index)
}
func (r *countingReporter) UpdateCounter(int)      {}
func (r *countingReporter) UpdateButtonStates(int) {}

func TestMachine_ReporterNotifiedPerTransition(t *testing.T) {
	rep := &countingReporter{}
	m, sched := newMachine(t, fiveSlides(), runtime.WithReporter(rep))

	m.Request(1)
	sched.RunUntilIdle()

	// Initial activation, the activate step, and the completion step.
	assert.Equal(t, []int{0, 1, 1}, rep.progress)
	assert.Equal(t, 1, m.CurrentIndex())
}
