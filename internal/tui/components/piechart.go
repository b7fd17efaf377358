package components

import (
	"strings"

	"github.com/Veraticus/recdash/internal/dashboard"
	"github.com/Veraticus/recdash/internal/model"
	"github.com/Veraticus/recdash/internal/tui/themes"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// PieChartTitle heads the category distribution panel.
const PieChartTitle = "Category Distribution"

// PieChart shows each category's share as a stacked strip followed by one
// labelled bar per segment.
type PieChart struct {
	theme    themes.Theme
	segments []dashboard.PieSegment
	width    int
}

// NewPieChart builds a chart for slices. Colors follow list position.
func NewPieChart(theme themes.Theme, slices []model.CategorySlice, width int) PieChart {
	return PieChart{
		theme:    theme,
		segments: dashboard.PieSegments(slices),
		width:    width,
	}
}

// Segments returns the computed segments.
func (c PieChart) Segments() []dashboard.PieSegment {
	return c.segments
}

// View renders the chart.
func (c PieChart) View() string {
	lines := []string{c.theme.Subtitle.Render(PieChartTitle)}

	if len(c.segments) == 0 {
		lines = append(lines, c.theme.Muted.Render("No category data"))
		return strings.Join(lines, "\n")
	}

	lines = append(lines, c.strip())

	labelWidth := 0
	for _, s := range c.segments {
		labelWidth = max(labelWidth, lipgloss.Width(s.Label))
	}
	barWidth := max(c.width-labelWidth-3, 4)

	for _, s := range c.segments {
		color := themes.PaletteColor(s.ColorIndex)
		bar := progress.New(
			progress.WithSolidFill(string(color)),
			progress.WithoutPercentage(),
			progress.WithWidth(barWidth),
		)

		swatch := lipgloss.NewStyle().Foreground(color).Render("●")
		label := c.theme.Normal.Width(labelWidth).Render(s.Label)
		lines = append(lines, swatch+" "+label+" "+bar.ViewAs(s.Percent))
	}

	return strings.Join(lines, "\n")
}

// strip draws the whole distribution on one line, each segment taking a
// width proportional to its share.
func (c PieChart) strip() string {
	width := max(c.width, len(c.segments))

	var b strings.Builder
	used := 0
	for i, s := range c.segments {
		n := int(s.Percent*float64(width) + 0.5)
		if i == len(c.segments)-1 && s.Percent > 0 {
			n = width - used
		}
		n = max(0, min(n, width-used))
		used += n

		b.WriteString(lipgloss.NewStyle().
			Foreground(themes.PaletteColor(s.ColorIndex)).
			Render(strings.Repeat(barRune, n)))
	}
	if used < width {
		b.WriteString(c.theme.Muted.Render(strings.Repeat("░", width-used)))
	}
	return b.String()
}
