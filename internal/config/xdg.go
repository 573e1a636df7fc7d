// XDG Base Directory helpers for lruviz.
package config

import (
	"os"
	"path/filepath"
)

const appName = "lruviz"

// GetConfigDir returns the configuration directory following the XDG Base
// Directory specification: $XDG_CONFIG_HOME/lruviz (default ~/.config/lruviz).
func GetConfigDir() (string, error) {
	// Development mode: use .dev directory in current working directory
	if os.Getenv("ENV") == "dev" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return filepath.Join(cwd, ".dev", appName), nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configHome, appName), nil
}
