package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/makebuild-code/slidenav/pkg/deck"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a deck file without running it",
	RunE: func(cmd *cobra.Command, args []string) error {
		deckPath, _ := cmd.Flags().GetString("deck")

		d, err := deck.Load(deckPath)
		if err != nil {
			return err
		}
		cfg, err := d.Config()
		if err != nil {
			return fmt.Errorf("deck settings: %w", err)
		}

		fmt.Printf("%s: %d slides, alignment %s, animation %s\n",
			deckPath, len(d.Slides), cfg.Alignment, cfg.AnimationDuration)
		for i, s := range d.Slides {
			required := 0
			for _, f := range s.Fields {
				if f.Required {
					required++
				}
			}
			fmt.Printf("  %2d. %-24s fields=%d required=%d buttons=%d\n",
				i+1, s.ID, len(s.Fields), required, len(s.Buttons))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
