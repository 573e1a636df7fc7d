// Package config provides configuration management for lruviz with Viper integration.
package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config represents the complete configuration for lruviz.
type Config struct {
	Cache      CacheConfig      `mapstructure:"cache" yaml:"cache" json:"cache"`
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging" json:"logging"`
	Server     ServerConfig     `mapstructure:"server" yaml:"server" json:"server"`
	Appearance AppearanceConfig `mapstructure:"appearance" yaml:"appearance" json:"appearance"`
}

// InitialEntry is one seed key/value pair. Seed entries are applied in file
// order as ordinary set calls, so seeding more entries than capacity evicts
// the earliest ones.
type InitialEntry struct {
	Key   string `mapstructure:"key" yaml:"key" json:"key"`
	Value string `mapstructure:"value" yaml:"value" json:"value"`
}

// CacheConfig holds the cache parameters.
//
// Capacity is fixed for the lifetime of a cache instance; editing it in the
// config file takes effect on the next start, not on reload.
type CacheConfig struct {
	Capacity int            `mapstructure:"capacity" yaml:"capacity" json:"capacity"`
	Initial  []InitialEntry `mapstructure:"initial" yaml:"initial" json:"initial"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// ServerConfig holds the serve-mode HTTP configuration.
type ServerConfig struct {
	ListenAddr      string        `mapstructure:"listen_addr" yaml:"listen_addr" json:"listen_addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// AppearanceConfig holds TUI rendering preferences.
type AppearanceConfig struct {
	DarkPalette ColorPalette `mapstructure:"dark_palette" yaml:"dark_palette" json:"dark_palette"`
}

// ColorPalette holds the hex colors the TUI theme is derived from.
type ColorPalette struct {
	Background     string `mapstructure:"background" yaml:"background" json:"background"`
	Surface        string `mapstructure:"surface" yaml:"surface" json:"surface"`
	SurfaceVariant string `mapstructure:"surface_variant" yaml:"surface_variant" json:"surface_variant"`
	Text           string `mapstructure:"text" yaml:"text" json:"text"`
	Muted          string `mapstructure:"muted" yaml:"muted" json:"muted"`
	Accent         string `mapstructure:"accent" yaml:"accent" json:"accent"`
	Border         string `mapstructure:"border" yaml:"border" json:"border"`
}

// Validate rejects configurations the cache constructor would refuse anyway,
// so bad files fail at startup rather than mid-command.
func (c *Config) Validate() error {
	if c.Cache.Capacity < 1 {
		return fmt.Errorf("cache.capacity must be at least 1, got %d", c.Cache.Capacity)
	}
	if c.Server.ListenAddr == "" {
		return errors.New("server.listen_addr must not be empty")
	}
	return nil
}

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	// Supports config.yaml, config.json, config.toml automatically.
	v.SetConfigName("config")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory for development

	// Environment variable support
	v.SetEnvPrefix("LRUVIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"cache.capacity":          "CACHE_CAPACITY",
		"logging.level":           "LOG_LEVEL",
		"logging.format":          "LOG_FORMAT",
		"server.listen_addr":      "LISTEN_ADDR",
		"server.shutdown_timeout": "SHUTDOWN_TIMEOUT",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, "LRUVIZ_"+env); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", env, err)
		}
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
//
// A missing config file is not an error: lruviz runs fine on defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	m.config = config
	return nil
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to prevent external modification
	configCopy := *m.config
	return &configCopy
}

// Watch starts watching the config file for changes and reloads automatically.
// Registered callbacks receive the freshly loaded configuration; deciding
// which changes can apply at runtime is up to the callback.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil
	}

	m.viper.WatchConfig()
	m.viper.OnConfigChange(func(_ fsnotify.Event) {
		m.mu.Lock()
		err := m.reload()
		config := m.config
		callbacks := make([]func(*Config), len(m.callbacks))
		copy(callbacks, m.callbacks)
		m.mu.Unlock()

		if err != nil {
			// A broken edit keeps the previous configuration in effect.
			return
		}
		for _, callback := range callbacks {
			callback(config)
		}
	})

	m.watching = true
	return nil
}

// OnConfigChange registers a callback to be called when the config reloads.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
}

// reload re-reads and re-validates the config. Caller must hold m.mu.
func (m *Manager) reload() error {
	if err := m.viper.ReadInConfig(); err != nil {
		return err
	}

	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return err
	}

	m.config = config
	return nil
}
