package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "slidenav",
	Short: "slidenav drives step-by-step form wizards",
	Long:  `slidenav runs YAML-defined slide decks as interactive terminal wizards or serves them over HTTP, with the same navigation engine behind both.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("deck", "deck.yaml", "Path to the deck definition")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug|info|warn|error)")
}
