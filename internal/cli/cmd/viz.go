package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/lruviz/internal/cli/model"
)

var vizCmd = &cobra.Command{
	Use:   "viz",
	Short: "Launch the interactive cache visualization",
	Long: `Launch the terminal visualization.

The cache starts seeded with the configured initial entries. Commands:

  get <key>          look a key up (hit promotes it, miss leaves order alone)
  set <key> <value>  insert or overwrite; a full cache evicts the LRU entry
  del <key>          remove a key (no-op when absent)
  clear              drop every entry
  reset              discard the cache and reseed from the initial entries
  quit               leave (esc and ctrl+c work too)

Hits and misses are counted by the UI from get outcomes.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		m, err := model.NewViz(app.Config, app.Theme)
		if err != nil {
			return fmt.Errorf("build visualization: %w", err)
		}

		app.Logger.Debug().
			Int("capacity", app.Config.Cache.Capacity).
			Int("initial", len(app.Config.Cache.Initial)).
			Msg("starting viz")

		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run visualization: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(vizCmd)
}
