// Package config loads recdash settings from viper.
package config

import (
	"fmt"

	"github.com/Veraticus/recdash/internal/analytics"
	"github.com/Veraticus/recdash/internal/common"
	"github.com/spf13/viper"
)

// Default locations for files written by recdash.
const (
	DefaultJournalPath = "$HOME/.local/share/recdash/recdash.db"
	DefaultLogFile     = "$HOME/.local/share/recdash/recdash.log"
)

// Settings holds everything the commands read from configuration.
type Settings struct {
	API            analytics.Config
	JournalPath    string
	Theme          string
	LogFile        string
	JournalEnabled bool
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.url", analytics.DefaultBaseURL)
	v.SetDefault("api.timeout", "0s")
	v.SetDefault("api.token", "")
	v.SetDefault("journal.path", DefaultJournalPath)
	v.SetDefault("journal.enabled", true)
	v.SetDefault("ui.theme", "default")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", DefaultLogFile)
}

// Load reads and validates the settings.
func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		API: analytics.Config{
			BaseURL: v.GetString("api.url"),
			Token:   v.GetString("api.token"),
			Timeout: v.GetDuration("api.timeout"),
		},
		JournalPath:    ExpandPath(v.GetString("journal.path")),
		JournalEnabled: v.GetBool("journal.enabled"),
		Theme:          v.GetString("ui.theme"),
		LogFile:        ExpandPath(v.GetString("logging.file")),
	}

	if err := s.API.Validate(); err != nil {
		return Settings{}, err
	}
	if s.JournalEnabled && s.JournalPath == "" {
		return Settings{}, fmt.Errorf("%w: journal.path", common.ErrMissingConfig)
	}

	return s, nil
}
