// Package config handles XDG configuration directory and file paths.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	// AppName is the application directory name.
	AppName = "habitctl"

	// TokenFile is the stored session token filename.
	TokenFile = "token"

	// SettingsFile is the settings filename.
	SettingsFile = "settings.json"

	// DefaultServerURL is the backend base URL when nothing is configured.
	// Matches the backend's development address.
	DefaultServerURL = "http://localhost:5000"
)

// Settings is the persisted part of the configuration.
type Settings struct {
	// ServerURL is the backend base URL.
	ServerURL string `json:"server_url"`
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// ServerURL is the resolved backend base URL
	// (flag > settings.json > default).
	ServerURL string

	// Debug enables diagnostic logging to stderr.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a Config for the default or specified config directory and
// loads settings.json if present. serverFlag, when non-empty, overrides the
// configured server URL.
func New(configDir, serverFlag string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir, ServerURL: DefaultServerURL}

	settings, err := loadSettings(filepath.Join(dir, SettingsFile))
	if err != nil {
		return nil, err
	}
	if settings.ServerURL != "" {
		cfg.ServerURL = settings.ServerURL
	}
	if serverFlag != "" {
		cfg.ServerURL = serverFlag
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// TokenPath returns the path to the stored session token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// loadSettings reads settings.json. A missing file yields zero settings;
// a malformed file is an error so typos don't silently fall back.
func loadSettings(path string) (Settings, error) {
	var s Settings
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, err
	}
	return s, nil
}
