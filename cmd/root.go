// Package cmd is the CLI surface: a spf13/cobra command tree exposing a
// single "run" subcommand, matching spec.md §6's flag surface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "asrov",
	Short: "Valley-free inter-domain routing simulator",
	Long: `asrov simulates BGP-style inter-domain routing under the
Gao-Rexford valley-free model, augmented with Route Origin Validation,
over a static AS topology.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command and maps any returned error to exit code 1,
// per spec.md §6's exit-code contract.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
