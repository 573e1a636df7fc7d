package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/lruviz/internal/cache"
	"github.com/bnema/lruviz/internal/config"
	"github.com/bnema/lruviz/internal/logging"
	"github.com/bnema/lruviz/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the cache over HTTP with Prometheus metrics",
	Long: `Serve the cache over HTTP for a browser-based visualization.

Endpoints:
  GET    /api/v1/entries       full snapshot, newest entry first
  GET    /api/v1/cache/{key}   lookup (404 on miss; counts hit/miss)
  PUT    /api/v1/cache/{key}   set {"value": ...}; reports any eviction
  DELETE /api/v1/cache/{key}   delete (idempotent)
  POST   /api/v1/clear         drop every entry
  POST   /api/v1/reset         rebuild the cache from the initial entries
  GET    /metrics              Prometheus metrics
  GET    /healthz              liveness probe

The config file is watched while serving: logging changes apply
immediately, cache capacity changes on the next start.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := app.Config

		initial := make([]cache.Entry[string, string], 0, len(cfg.Cache.Initial))
		for _, e := range cfg.Cache.Initial {
			initial = append(initial, cache.Entry[string, string]{Key: e.Key, Value: e.Value})
		}

		srv, err := server.New(cfg.Server, app.Logger, cfg.Cache.Capacity, initial)
		if err != nil {
			return fmt.Errorf("build server: %w", err)
		}

		// Hot-reload what can change at runtime. Capacity is fixed per
		// cache instance, so a capacity edit only logs a reminder.
		startCapacity := cfg.Cache.Capacity
		app.Manager.OnConfigChange(func(next *config.Config) {
			app.Logger = logging.NewFromConfig(next.Logging.Level, next.Logging.Format)
			app.Logger.Info().Msg("configuration reloaded")
			if next.Cache.Capacity != startCapacity {
				app.Logger.Warn().
					Int("current", startCapacity).
					Int("configured", next.Cache.Capacity).
					Msg("cache capacity changes take effect on restart")
			}
		})
		if err := app.Manager.Watch(); err != nil {
			app.Logger.Warn().Err(err).Msg("config watching unavailable")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
