package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/makebuild-code/slidenav"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of slidenav",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("slidenav version %s\n", strings.TrimSpace(slidenav.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
