package tui

import (
	"github.com/Veraticus/recdash/internal/dashboard"
	"github.com/Veraticus/recdash/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme   themes.Theme
	Source  dashboard.Source
	Journal dashboard.Journal
	// APIURL is shown in the header only.
	APIURL string
	Route  string
	Width  int
	Height int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:  themes.Default,
		Route:  PathDashboard,
		Width:  80,
		Height: 24,
	}
}

// WithSource sets the analytics data source.
func WithSource(source dashboard.Source) Option {
	return func(c *Config) {
		c.Source = source
	}
}

// WithJournal records completed dashboard loads.
func WithJournal(journal dashboard.Journal) Option {
	return func(c *Config) {
		c.Journal = journal
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithRoute selects the page shown on start.
func WithRoute(path string) Option {
	return func(c *Config) {
		c.Route = path
	}
}

// WithAPIURL sets the API address shown in the header.
func WithAPIURL(url string) Option {
	return func(c *Config) {
		c.APIURL = url
	}
}
