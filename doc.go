/*
Package slidenav is a controlled, step-by-step slide navigation engine for
single-page, vertically-stacked form wizards.

At any time exactly one slide is active. Navigation between slides is
mediated by a small state machine that prevents overlapping transitions
("jitter"), tracks a source-of-truth position independent of visual
animation timing, keeps keyboard focus trapped and tab-ordered within the
active slide, and chooses a scroll alignment appropriate to slide geometry.

# Concept

The engine never touches the host page directly. Everything visual happens
behind the Surface port, every delay behind the Scheduler port, so the same
core drives a browser-like host, a terminal wizard, or a fully simulated
surface in tests. This Hexagonal Architecture also keeps per-instance state
explicit: multiple independent wizards can coexist in one process.

# Key Features

  - Admission control: rapid repeated requests are debounced, queued in a
    bounded dedup FIFO, or dropped; at most one transition animates at a time.
  - Committed position: the tracker reflects the intended slide the moment a
    transition is admitted, not when the animation settles.
  - Focus discipline: tab order follows inputs, links, then buttons; a cyclic
    trap and a last-input shortcut keep keyboard users inside the active slide.
  - Geometry-aware scrolling: tall slides degrade center/end alignment to
    start so content never lands half off-screen.
  - Resume support: the committed position can be persisted per session
    (memory or Redis) and restored on the next visit.

# Usage

	package main

	import (
		"log"

		"github.com/makebuild-code/slidenav"
		"github.com/makebuild-code/slidenav/pkg/deck"
		"github.com/makebuild-code/slidenav/pkg/adapters/wallclock"
	)

	func main() {
		d, err := deck.Load("onboarding.yaml")
		if err != nil {
			log.Fatal(err)
		}

		wiz, err := slidenav.New(d.Surface(),
			slidenav.WithScheduler(wallclock.New()),
		)
		if err != nil {
			log.Fatal(err)
		}
		defer wiz.Destroy()

		wiz.Next() // validate, admit, animate, settle
	}

See the cmd/slidenav command for an interactive terminal wizard and an HTTP
server over the same engine.
*/
package slidenav
