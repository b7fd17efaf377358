package components

import (
	"strings"

	"github.com/Veraticus/recdash/internal/dashboard"
	"github.com/Veraticus/recdash/internal/model"
	"github.com/Veraticus/recdash/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// BarChartTitle heads the weekly engagement panel.
const BarChartTitle = "Weekly Engagement"

const barRune = "█"

// BarChart draws the grouped engagement bars horizontally, one row per series.
type BarChart struct {
	theme  themes.Theme
	groups []dashboard.BarGroup
	width  int
}

// NewBarChart builds a chart for points, keeping their order.
func NewBarChart(theme themes.Theme, points []model.EngagementPoint, width int) BarChart {
	return BarChart{
		theme:  theme,
		groups: dashboard.BarGroups(points),
		width:  width,
	}
}

// View renders the chart. An empty series renders the frame and legend only.
func (c BarChart) View() string {
	lines := []string{
		c.theme.Subtitle.Render(BarChartTitle),
		c.legend(),
	}

	if len(c.groups) == 0 {
		lines = append(lines, c.theme.Muted.Render("No engagement data"))
		return strings.Join(lines, "\n")
	}

	labelWidth, valueWidth := c.columnWidths()
	barWidth := max(c.width-labelWidth-valueWidth-2, 1)

	for _, g := range c.groups {
		for i, b := range g.Bars {
			label := ""
			if i == 0 {
				label = g.Label
			}

			length := int(b.Ratio*float64(barWidth) + 0.5)
			bar := lipgloss.NewStyle().
				Foreground(themes.PaletteColor(b.ColorIndex)).
				Render(strings.Repeat(barRune, length))

			lines = append(lines,
				c.theme.Normal.Width(labelWidth).Render(label)+" "+
					bar+strings.Repeat(" ", barWidth-length)+" "+
					c.theme.Muted.Render(model.FormatNumber(b.Value)))
		}
	}

	return strings.Join(lines, "\n")
}

func (c BarChart) legend() string {
	series := []string{dashboard.SeriesViews, dashboard.SeriesPurchases, dashboard.SeriesRecommendations}

	items := make([]string, 0, len(series))
	for i, name := range series {
		swatch := lipgloss.NewStyle().Foreground(themes.PaletteColor(i)).Render("■")
		items = append(items, swatch+" "+c.theme.Normal.Render(name))
	}
	return strings.Join(items, "  ")
}

func (c BarChart) columnWidths() (int, int) {
	labelWidth, valueWidth := 3, 1
	for _, g := range c.groups {
		labelWidth = max(labelWidth, lipgloss.Width(g.Label))
		for _, b := range g.Bars {
			valueWidth = max(valueWidth, len(model.FormatNumber(b.Value)))
		}
	}
	return labelWidth, valueWidth
}
