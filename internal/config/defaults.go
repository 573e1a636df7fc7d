// Package config provides default configuration values for lruviz.
package config

import "time"

const (
	// Cache defaults: small enough that eviction is visible within a few
	// commands, matching the classic walkthrough (capacity 3, keys 1..3).
	defaultCapacity = 3

	// Server defaults
	defaultListenAddr      = "127.0.0.1:8372"
	defaultShutdownTimeout = 5 * time.Second
)

// DefaultConfig returns the default configuration values for lruviz.
func DefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Capacity: defaultCapacity,
			Initial: []InitialEntry{
				{Key: "1", Value: "a"},
				{Key: "2", Value: "b"},
				{Key: "3", Value: "c"},
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Server: ServerConfig{
			ListenAddr:      defaultListenAddr,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Appearance: AppearanceConfig{
			DarkPalette: DefaultDarkPalette(),
		},
	}
}

// DefaultDarkPalette returns the built-in dark theme colors.
func DefaultDarkPalette() ColorPalette {
	return ColorPalette{
		Background:     "#0a0a0b",
		Surface:        "#1a1a1b",
		SurfaceVariant: "#2d2d2d",
		Text:           "#ffffff",
		Muted:          "#909090",
		Accent:         "#4ade80",
		Border:         "#333333",
	}
}

// setDefaults seeds viper so env vars and partial config files merge onto a
// complete configuration.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("cache.capacity", defaults.Cache.Capacity)
	m.viper.SetDefault("cache.initial", defaults.Cache.Initial)

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)

	m.viper.SetDefault("server.listen_addr", defaults.Server.ListenAddr)
	m.viper.SetDefault("server.shutdown_timeout", defaults.Server.ShutdownTimeout)

	p := defaults.Appearance.DarkPalette
	m.viper.SetDefault("appearance.dark_palette.background", p.Background)
	m.viper.SetDefault("appearance.dark_palette.surface", p.Surface)
	m.viper.SetDefault("appearance.dark_palette.surface_variant", p.SurfaceVariant)
	m.viper.SetDefault("appearance.dark_palette.text", p.Text)
	m.viper.SetDefault("appearance.dark_palette.muted", p.Muted)
	m.viper.SetDefault("appearance.dark_palette.accent", p.Accent)
	m.viper.SetDefault("appearance.dark_palette.border", p.Border)
}
