// Package cmd provides Cobra CLI commands for lruviz.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/lruviz/internal/cli"
)

// BuildInfo carries version metadata set at link time.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
}

var (
	app       *cli.App
	buildInfo BuildInfo

	rootCmd = &cobra.Command{
		Use:   "lruviz",
		Short: "An interactive least-recently-used cache visualizer",
		Long: `lruviz - watch a fixed-capacity LRU cache evict in real time.

The cache holds at most N entries. Reading a key promotes it to
most-recently-used; inserting into a full cache evicts whatever was
touched least recently. lruviz renders the recency order after every
operation, newest at the top.

Use 'lruviz viz' for the terminal UI, or 'lruviz serve' to expose the
same cache over HTTP with Prometheus metrics for a browser frontend.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Commands that never touch the cache skip app setup.
			switch cmd.Name() {
			case "help", "completion", "version":
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetBuildInfo sets the build information (called from main before Execute).
func SetBuildInfo(info BuildInfo) {
	buildInfo = info
}
