package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/lruviz/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the effective configuration as JSON, after defaults, the
config file, and LRUVIZ_* environment variables have been merged.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		out, err := json.MarshalIndent(app.Config, "", "  ")
		if err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		fmt.Println(string(out))

		if dir, err := config.GetConfigDir(); err == nil {
			fmt.Printf("\nconfig dir: %s\n", dir)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
