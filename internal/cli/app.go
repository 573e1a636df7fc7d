// Package cli provides CLI commands using Bubble Tea TUI.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bnema/lruviz/internal/cli/styles"
	"github.com/bnema/lruviz/internal/config"
	"github.com/bnema/lruviz/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config  *config.Config
	Manager *config.Manager
	Theme   *styles.Theme
	Logger  zerolog.Logger
}

// NewApp loads configuration and wires up the theme and logger.
//
// A malformed configuration is a startup error, not something to limp past:
// in particular a capacity below 1 is rejected here, before any command runs.
func NewApp() (*App, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg := mgr.Get()
	logger := logging.NewFromConfig(cfg.Logging.Level, cfg.Logging.Format)

	return &App{
		Config:  cfg,
		Manager: mgr,
		Theme:   styles.NewTheme(cfg),
		Logger:  logger,
	}, nil
}
