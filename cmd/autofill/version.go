package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	// No config needed
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(*cobra.Command, []string) {
		fmt.Printf("autofill %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
