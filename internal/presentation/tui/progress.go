package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/muesli/termenv"

	"github.com/makebuild-code/slidenav/pkg/ports"
)

const barWidth = 24

// Reporter renders a progress bar and step counter to the terminal.
// It implements ports.ProgressReporter.
type Reporter struct {
	mu    sync.Mutex
	out   io.Writer
	total int
}

var _ ports.ProgressReporter = (*Reporter)(nil)

// NewReporter creates a terminal progress reporter for a wizard of total
// slides.
func NewReporter(out io.Writer, total int) *Reporter {
	return &Reporter{out: out, total: total}
}

// UpdateProgress renders the bar for the committed index.
func (r *Reporter) UpdateProgress(index int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	filled := 0
	if r.total > 1 {
		filled = barWidth * index / (r.total - 1)
	}
	p := termenv.ColorProfile()
	bar := termenv.String(strings.Repeat("█", filled)).Foreground(p.Color("#818cf8")).String() +
		termenv.String(strings.Repeat("░", barWidth-filled)).Foreground(p.Color("#334155")).String()
	fmt.Fprintf(r.out, "\r%s", bar)
}

// UpdateCounter renders the 1-based step counter.
func (r *Reporter) UpdateCounter(index int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "  step %d/%d\n", index+1, r.total)
}

// UpdateButtonStates prints navigation availability at the edges.
func (r *Reporter) UpdateButtonStates(index int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case index == 0 && r.total > 1:
		fmt.Fprintln(r.out, "  (first step: back disabled)")
	case index == r.total-1:
		fmt.Fprintln(r.out, "  (last step: forward disabled)")
	}
}
