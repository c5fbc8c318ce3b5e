package wallclock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/makebuild-code/slidenav/pkg/adapters/wallclock"
)

func TestScheduler_AfterFunc(t *testing.T) {
	s := wallclock.New()
	done := make(chan struct{})
	s.AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}
}

func TestScheduler_StopPreventsFiring(t *testing.T) {
	s := wallclock.New()
	fired := make(chan struct{}, 1)
	h := s.AfterFunc(50*time.Millisecond, func() { fired <- struct{}{} })

	assert.True(t, h.Stop())

	select {
	case <-fired:
		t.Fatal("stopped timer fired")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestScheduler_NextFrameUsesConfiguredInterval(t *testing.T) {
	s := wallclock.New(wallclock.WithFrameInterval(time.Millisecond))
	done := make(chan struct{})
	start := time.Now()
	s.NextFrame(func() { close(done) })

	select {
	case <-done:
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	case <-time.After(time.Second):
		t.Fatal("frame callback never ran")
	}
}

func TestScheduler_NowTracksProcessClock(t *testing.T) {
	s := wallclock.New()
	before := time.Now()
	now := s.Now()
	assert.False(t, now.Before(before))
}
