package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders slide markdown using glamour.
// The style auto-detects light/dark terminal backgrounds.
func NewRenderer(width int) func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		// Fall back to raw markdown when the terminal profile is unusable.
		return func(markdown string) (string, error) { return markdown, nil }
	}
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}
