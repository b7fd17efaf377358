package themes

import (
	"github.com/Veraticus/recdash/internal/dashboard"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Normal      lipgloss.Style
	Bold        lipgloss.Style
	Muted       lipgloss.Style
	Panel       lipgloss.Style
	Card        lipgloss.Style
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	StatusBar   lipgloss.Style
	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
	Selected    lipgloss.Style
	Primary     lipgloss.Color
	Secondary   lipgloss.Color
	Border      lipgloss.Color
	Foreground  lipgloss.Color
	Background  lipgloss.Color
	Subtle      lipgloss.Color
}

// PaletteColor returns the chart color for a palette index.
func PaletteColor(index int) lipgloss.Color {
	return lipgloss.Color(dashboard.Palette[dashboard.PaletteIndex(index)])
}

// Default is the default theme.
var Default = newTheme(themeColors{
	primary:    "#7c3aed",
	secondary:  "#a78bfa",
	border:     "#404040",
	foreground: "#fafafa",
	background: "#1a1a1a",
	subtle:     "#737373",
	dim:        "#a3a3a3",
	highlight:  "#262626",
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(themeColors{
	primary:    "#cba6f7",
	secondary:  "#f5c2e7",
	border:     "#45475a",
	foreground: "#cdd6f4",
	background: "#1e1e2e",
	subtle:     "#6c7086",
	dim:        "#a6adc8",
	highlight:  "#313244",
})

type themeColors struct {
	primary    string
	secondary  string
	border     string
	foreground string
	background string
	subtle     string
	dim        string
	highlight  string
}

func newTheme(c themeColors) Theme {
	fg := lipgloss.Color(c.foreground)

	return Theme{
		Primary:    lipgloss.Color(c.primary),
		Secondary:  lipgloss.Color(c.secondary),
		Border:     lipgloss.Color(c.border),
		Foreground: fg,
		Background: lipgloss.Color(c.background),
		Subtle:     lipgloss.Color(c.subtle),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.dim)),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.subtle)),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(c.border)).
			Padding(0, 1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1),
		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.subtle)).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg).
			Background(lipgloss.Color(c.primary)).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.subtle)),
		TableHeader: lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color(c.border)),
		TableCell: lipgloss.NewStyle().
			Foreground(fg),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(c.highlight)).
			Foreground(fg).
			Bold(false),
	}
}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
