package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading and reload callbacks.
type Manager struct {
	mu        sync.RWMutex
	config    Config
	viper     *viper.Viper
	callbacks []func(Config)
}

// NewManager creates a configuration manager wired to the tabdeck
// config file and environment.
func NewManager() (*Manager, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := ConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory for development

	v.SetEnvPrefix("TABDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := Defaults()
	v.SetDefault("storage.backend", defaults.Storage.Backend)
	v.SetDefault("storage.path", defaults.Storage.Path)
	v.SetDefault("messaging.history_limit", defaults.Messaging.HistoryLimit)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)

	return &Manager{viper: v}, nil
}

// Load reads the config file if present and unmarshals the result. A
// missing file is not an error; defaults and environment apply.
func (m *Manager) Load() (Config, error) {
	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := m.viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	m.mu.Lock()
	m.config = cfg
	m.mu.Unlock()
	return cfg, nil
}

// Current returns the last loaded configuration.
func (m *Manager) Current() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// OnChange registers a callback invoked after each successful reload.
func (m *Manager) OnChange(fn func(Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

func (m *Manager) reload() error {
	cfg, err := m.Load()
	if err != nil {
		return err
	}
	m.mu.RLock()
	callbacks := make([]func(Config), len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.RUnlock()
	for _, fn := range callbacks {
		fn(cfg)
	}
	return nil
}
