package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/makebuild-code/slidenav"
	"github.com/makebuild-code/slidenav/internal/logging"
	"github.com/makebuild-code/slidenav/internal/presentation/tui"
	"github.com/makebuild-code/slidenav/pkg/adapters/wallclock"
	"github.com/makebuild-code/slidenav/pkg/deck"
	"github.com/makebuild-code/slidenav/pkg/domain"
)

// terminal rows map to pseudo-pixels so the tall-slide scroll policy stays
// meaningful in a character grid.
const rowPixels = 24

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the wizard interactively in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		deckPath, _ := cmd.Flags().GetString("deck")
		levelRaw, _ := cmd.Flags().GetString("log-level")
		logger := logging.New(logging.ParseLevel(levelRaw))

		d, err := deck.Load(deckPath)
		if err != nil {
			return err
		}

		surface := d.Surface()
		width := 80
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
			surface.SetViewportHeight(h * rowPixels)
		}
		render := tui.NewRenderer(width)

		answers := deck.NewAnswers()
		reporter := tui.NewReporter(os.Stdout, len(d.Slides))

		hooks := domain.LifecycleHooks{
			OnSlideChange: func(ev domain.SlideChangeEvent) {
				def, ok := d.SlideByID(ev.SlideID)
				if !ok {
					return
				}
				if out, err := render(def.Content); err == nil {
					fmt.Println(out)
				} else {
					fmt.Println(def.Content)
				}
			},
		}

		wiz, err := slidenav.New(surface,
			slidenav.WithAttributes(d.Settings),
			slidenav.WithScheduler(wallclock.New()),
			slidenav.WithLogger(logger),
			slidenav.WithValidator(deck.NewValidator(d, answers, logger)),
			slidenav.WithProgressReporter(reporter),
			slidenav.WithLifecycleHooks(hooks),
		)
		if err != nil {
			return err
		}
		defer wiz.Destroy()

		tui.PrintBanner(d.Title, len(d.Slides))
		printSlide(d, render, wiz.CurrentSlide().ID)

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())

			switch {
			case line == "quit" || line == "exit":
				return nil
			case line == "next" || line == "":
				promptFields(d, answers, wiz.CurrentSlide().ID, scanner)
				wiz.Next()
			case line == "prev" || line == "back":
				wiz.Prev()
			case strings.HasPrefix(line, "goto "):
				n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "goto ")))
				if err != nil {
					fmt.Println("usage: goto <1-based step>")
					continue
				}
				wiz.GoToSlide(n - 1)
			case line == "where":
				fmt.Printf("step %d/%d (%s)\n",
					wiz.CurrentIndex()+1, wiz.TotalSlides(), wiz.CurrentSlide().ID)
			default:
				fmt.Println("commands: next, prev, goto <n>, where, quit")
			}
		}
	},
}

// promptFields collects the active slide's answers before forward
// navigation, so required-field validation has something to check.
func promptFields(d *deck.Deck, answers *deck.Answers, slideID string, scanner *bufio.Scanner) {
	def, ok := d.SlideByID(slideID)
	if !ok {
		return
	}
	for _, f := range def.Fields {
		label := f.Label
		if label == "" {
			label = f.Name
		}
		if len(f.Options) > 0 {
			fmt.Printf("  %s (%s): ", label, strings.Join(f.Options, "/"))
		} else {
			fmt.Printf("  %s: ", label)
		}
		if !scanner.Scan() {
			return
		}
		answers.Set(slideID, f.Name, strings.TrimSpace(scanner.Text()))
	}
}

func printSlide(d *deck.Deck, render func(string) (string, error), slideID string) {
	def, ok := d.SlideByID(slideID)
	if !ok {
		return
	}
	if out, err := render(def.Content); err == nil {
		fmt.Println(out)
	} else {
		fmt.Println(def.Content)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
}
