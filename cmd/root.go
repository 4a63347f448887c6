// Package cmd wires the trustgraph command line.
package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "trustgraph",
	Short: "Interactive trust graph visualization",
	Long: `trustgraph renders small node-link trust diagrams and animates them
toward a settled layout with a force-directed simulation.

Serve mode hosts an interactive browser widget; render mode writes a
one-shot SVG or JSON snapshot of the settled layout.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}
