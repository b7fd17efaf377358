package tui

import (
	"strings"

	"github.com/Veraticus/recdash/internal/dashboard"
	"github.com/Veraticus/recdash/internal/tui/components"
	"github.com/Veraticus/recdash/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// AppTitle is shown in the header.
const AppTitle = "Recommendation Engine"

// sideBySideWidth is the narrowest terminal that fits both charts in one row.
const sideBySideWidth = 100

// RenderDashboard renders a loaded dashboard: metric cards, the engagement
// and category charts, and the recommendations table. It is shared by the
// interactive view and headless snapshots.
func RenderDashboard(theme themes.Theme, state dashboard.State, width int) string {
	width = max(width, 40)

	cards := components.RenderMetricCards(theme, components.SummaryCards(state.Summary), width)

	var charts string
	if width >= sideBySideWidth {
		// Two thirds for engagement, one third for categories.
		barOuter := width * 2 / 3
		pieOuter := width - barOuter - 1
		bar := panel(theme, components.NewBarChart(theme, state.Engagement, barOuter-4).View(), barOuter)
		pie := panel(theme, components.NewPieChart(theme, state.Categories, pieOuter-4).View(), pieOuter)

		height := max(lipgloss.Height(bar), lipgloss.Height(pie))
		charts = lipgloss.JoinHorizontal(lipgloss.Top,
			stretch(bar, height), " ", stretch(pie, height))
	} else {
		charts = lipgloss.JoinVertical(lipgloss.Left,
			panel(theme, components.NewBarChart(theme, state.Engagement, width-4).View(), width),
			panel(theme, components.NewPieChart(theme, state.Categories, width-4).View(), width),
		)
	}

	table := components.NewRecommendationsTable(theme)
	table.SetWidth(width - 4)
	table.SetRecords(state.Recommendations)

	return lipgloss.JoinVertical(lipgloss.Left,
		cards,
		charts,
		panel(theme, table.View(), width),
	)
}

// panel wraps content in a bordered box whose outer width is width.
func panel(theme themes.Theme, content string, width int) string {
	return theme.Panel.Width(width - 2).Render(content)
}

// stretch pads a rendered block to height lines.
func stretch(block string, height int) string {
	return lipgloss.PlaceVertical(height, lipgloss.Top, block)
}

// renderLayout renders the header, tab bar, active page and status line.
func (m Model) renderLayout() string {
	bodyHeight := max(m.height-chromeHeight, 1)

	var body string
	switch {
	case m.showHelp:
		body = m.renderHelp(bodyHeight)
	case m.route.Path == PathDashboard:
		body = m.renderDashboardPage(bodyHeight)
	default:
		body = m.renderPlaceholder(bodyHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderTabs(),
		"",
		body,
		m.renderStatusBar(),
	)
}

// renderDashboardPage shows only the spinner until every request settled.
func (m Model) renderDashboardPage(height int) string {
	if m.state.Loading {
		return m.renderLoading(height)
	}
	return m.viewport.View()
}

// renderLoading renders the loading screen.
func (m Model) renderLoading(height int) string {
	return lipgloss.Place(
		m.width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		m.spinner.View(),
	)
}

func (m Model) renderHeader() string {
	title := m.theme.Bold.Foreground(m.theme.Primary).Render(AppTitle)
	if m.config.APIURL == "" {
		return title
	}
	return title + "  " + m.theme.Muted.Render(m.config.APIURL)
}

func (m Model) renderTabs() string {
	tabs := TabRoutes()
	rendered := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t.Path == m.route.Path {
			rendered = append(rendered, m.theme.ActiveTab.Render(t.Title))
		} else {
			rendered = append(rendered, m.theme.Tab.Render(t.Title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderStatusBar() string {
	left := m.theme.StatusBar.Render(m.route.Path)
	right := m.help.ShortHelpView(m.keymap.ShortHelp())

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the full key reference.
func (m Model) renderHelp(height int) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render("Keyboard shortcuts"),
		m.help.FullHelpView(m.keymap.FullHelp()),
	)
	return lipgloss.PlaceVertical(height, lipgloss.Top, content)
}

// renderPlaceholder renders pages whose content is provided elsewhere.
func (m Model) renderPlaceholder(height int) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render(m.route.Title),
		m.theme.Muted.Render("Nothing to show here yet."),
	)
	return lipgloss.PlaceVertical(height, lipgloss.Top, panel(m.theme, content, max(m.width, 20)))
}

// renderLogin renders the sign-in page outside the main layout.
func (m Model) renderLogin() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		m.theme.Title.Render(AppTitle),
		m.theme.Normal.Render("Sign in is handled by your identity provider."),
		m.theme.Muted.Render("Press Enter to continue to the dashboard."),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		m.theme.Panel.Render(content))
}
