// Package config loads tabdeck configuration from TOML files and the
// environment via viper, with optional hot-reload through fsnotify.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config is the root configuration tree.
type Config struct {
	Storage   StorageConfig   `mapstructure:"storage"`
	Messaging MessagingConfig `mapstructure:"messaging"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// StorageConfig selects and locates the persistence backend.
type StorageConfig struct {
	// Backend is "sqlite" or "memory".
	Backend string `mapstructure:"backend"`
	// Path is the SQLite database file. Empty means the default under
	// the user data directory.
	Path string `mapstructure:"path"`
}

// MessagingConfig tunes the message bus.
type MessagingConfig struct {
	// HistoryLimit caps the retained message history.
	HistoryLimit int `mapstructure:"history_limit"`
}

// LoggingConfig tunes the logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Storage: StorageConfig{
			Backend: "sqlite",
		},
		Messaging: MessagingConfig{
			HistoryLimit: 100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DatabasePath resolves the SQLite file location, falling back to the
// XDG data directory.
func (c Config) DatabasePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dataDir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "tabdeck.db"), nil
}

// ConfigDir returns the tabdeck configuration directory.
func ConfigDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "tabdeck"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "tabdeck"), nil
}

func dataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "tabdeck"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "tabdeck"), nil
}
