package config

import (
	"github.com/fsnotify/fsnotify"
	"github.com/tabdeck/tabdeck/internal/logging"
)

// Watch starts watching the config file for external changes and
// reloads automatically, notifying OnChange callbacks.
func (m *Manager) Watch() {
	m.viper.WatchConfig()
	m.viper.OnConfigChange(func(e fsnotify.Event) {
		log := logging.NewFromEnv()
		log.Debug().Str("op", e.Op.String()).Str("file", e.Name).Msg("config change detected")

		if err := m.reload(); err != nil {
			log.Warn().Err(err).Msg("failed to reload config")
		}
	})
}
