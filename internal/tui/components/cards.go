// Package components holds the presentational pieces of the dashboard page.
package components

import (
	"github.com/Veraticus/recdash/internal/model"
	"github.com/Veraticus/recdash/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// Card titles, in display order.
const (
	CardTotalUsers      = "Total Users"
	CardTotalProducts   = "Total Products"
	CardRecommendations = "Recommendations"
	CardConversionRate  = "Conversion Rate"
)

const (
	minCardWidth = 18
	cardGap      = 1
)

// MetricCard is one headline number.
type MetricCard struct {
	Title      string
	Value      string
	ColorIndex int
}

// SummaryCards maps the summary onto the four cards shown above the charts.
func SummaryCards(s model.SummaryMetrics) []MetricCard {
	return []MetricCard{
		{Title: CardTotalUsers, Value: model.FormatNumber(s.TotalUsers), ColorIndex: 0},
		{Title: CardTotalProducts, Value: model.FormatNumber(s.TotalProducts), ColorIndex: 1},
		{Title: CardRecommendations, Value: model.FormatNumber(s.TotalRecommendations), ColorIndex: 2},
		{Title: CardConversionRate, Value: s.FormatConversionRate(), ColorIndex: 3},
	}
}

// RenderMetricCards lays the cards out in one row, or two rows of two when
// the terminal is too narrow.
func RenderMetricCards(theme themes.Theme, cards []MetricCard, width int) string {
	if len(cards) == 0 {
		return ""
	}

	perRow := len(cards)
	if cardWidth(width, perRow) < minCardWidth {
		perRow = 2
	}
	w := max(cardWidth(width, perRow), minCardWidth)

	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := min(start+perRow, len(cards))

		rendered := make([]string, 0, end-start)
		for i, c := range cards[start:end] {
			if i > 0 {
				rendered = append(rendered, lipgloss.NewStyle().Width(cardGap).Render(""))
			}
			rendered = append(rendered, renderCard(theme, c, w))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func cardWidth(total, perRow int) int {
	if perRow <= 0 {
		return total
	}
	return (total - cardGap*(perRow-1)) / perRow
}

func renderCard(theme themes.Theme, c MetricCard, width int) string {
	color := themes.PaletteColor(c.ColorIndex)

	title := theme.Muted.Render(c.Title)
	value := lipgloss.NewStyle().
		Bold(true).
		Foreground(color).
		Render(c.Value)

	// Width excludes the border, which lipgloss adds outside it.
	return theme.Card.
		BorderForeground(color).
		Width(width - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, value))
}
