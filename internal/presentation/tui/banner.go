package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner writes the wizard header with the deck title.
func PrintBanner(title string, total int) {
	p := termenv.ColorProfile()

	name := termenv.String(" slidenav ").
		Foreground(p.Color("#0f172a")).
		Background(p.Color("#818cf8")).
		Bold()
	sub := termenv.String(fmt.Sprintf(" %s (%d steps)", title, total)).
		Foreground(p.Color("#94a3b8"))

	fmt.Println()
	fmt.Printf("%s%s\n", name, sub)
	fmt.Println()
}
