package tui

import (
	"context"

	"github.com/Veraticus/recdash/internal/common"
	"github.com/Veraticus/recdash/internal/dashboard"
	"github.com/Veraticus/recdash/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// chromeHeight is the number of lines taken by the header, tab bar,
// spacing and status line around the page body.
const chromeHeight = 4

// Model holds the main TUI state.
type Model struct {
	parent   context.Context
	mountCtx context.Context
	cancel   context.CancelFunc
	theme    themes.Theme
	loader   *dashboard.Loader
	keymap   KeyMap
	help     help.Model
	spinner  spinner.Model
	viewport viewport.Model
	state    dashboard.State
	config   Config
	route    Route
	// generation increases on every mount and unmount of the dashboard.
	generation int
	width      int
	height     int
	mounted    bool
	showHelp   bool
	quitting   bool
}

// newModel creates a new model with the given configuration. The dashboard
// is mounted immediately when it is the starting page.
func newModel(ctx context.Context, cfg Config) Model {
	route, _ := FindRoute(cfg.Route)

	var journalOpt []dashboard.LoaderOption
	if cfg.Journal != nil {
		journalOpt = append(journalOpt, dashboard.WithJournal(cfg.Journal))
	}

	m := Model{
		parent: ctx,
		theme:  cfg.Theme,
		loader: dashboard.NewLoader(cfg.Source, append(journalOpt, dashboard.WithName("tui"))...),
		keymap: DefaultKeyMap(),
		help:   help.New(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(cfg.Theme.Primary)),
		),
		viewport: viewport.New(cfg.Width, max(cfg.Height-chromeHeight, 1)),
		state:    dashboard.NewState(),
		config:   cfg,
		route:    route,
		width:    cfg.Width,
		height:   cfg.Height,
	}

	if route.Path == PathDashboard {
		m.mount()
	}
	return m
}

// Init starts the spinner and, if the dashboard is mounted, its requests.
func (m Model) Init() tea.Cmd {
	if !m.mounted {
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.loadDashboard())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKeys(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case spinner.TickMsg:
		// Stop ticking once nothing is loading.
		if !m.mounted || !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fetchResultMsg:
		return m, m.handleFetchResult(msg)

	case cycleRecordedMsg:
		return m, nil
	}

	if m.route.Path == PathDashboard && !m.state.Loading {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.route.Layout {
		return m.renderLogin()
	}
	return m.renderLayout()
}

// handleGlobalKeys handles keys that work on every page.
func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.unmount()
		m.quitting = true
		return tea.Quit, true

	case !m.route.Layout:
		if key.Matches(msg, m.keymap.Enter) {
			return m.navigate(PathDashboard), true
		}
		return nil, true

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return nil, true

	case key.Matches(msg, m.keymap.NextTab):
		return m.navigate(m.adjacentTab(1)), true

	case key.Matches(msg, m.keymap.PrevTab):
		return m.navigate(m.adjacentTab(-1)), true

	case key.Matches(msg, m.keymap.JumpTab):
		tabs := TabRoutes()
		index := int(msg.Runes[0] - '1')
		if index < 0 || index >= len(tabs) {
			return nil, true
		}
		return m.navigate(tabs[index].Path), true

	case key.Matches(msg, m.keymap.Reload):
		if m.route.Path != PathDashboard {
			return nil, true
		}
		m.unmount()
		return m.mount(), true
	}

	return nil, false
}

// navigate switches pages. Leaving the dashboard unmounts it and entering
// it mounts it again, which repeats every request.
func (m *Model) navigate(path string) tea.Cmd {
	if path == m.route.Path {
		return nil
	}

	route, _ := FindRoute(path)
	if m.route.Path == PathDashboard {
		m.unmount()
	}
	m.route = route
	m.showHelp = false
	m.help.ShowAll = false

	if route.Path == PathDashboard {
		return m.mount()
	}
	return nil
}

func (m Model) adjacentTab(step int) string {
	tabs := TabRoutes()
	current := 0
	for i, t := range tabs {
		if t.Path == m.route.Path {
			current = i
			break
		}
	}
	next := (current + step + len(tabs)) % len(tabs)
	return tabs[next].Path
}

// mount starts a fresh dashboard load with its own context and generation.
func (m *Model) mount() tea.Cmd {
	m.generation++
	m.mountCtx, m.cancel = context.WithCancel(m.parent)
	m.state = dashboard.NewState()
	m.mounted = true
	m.viewport.SetContent("")
	m.viewport.GotoTop()

	return tea.Batch(m.spinner.Tick, m.loadDashboard())
}

// unmount abandons any requests still in flight. Their results arrive with
// a stale generation and are dropped.
func (m *Model) unmount() {
	if !m.mounted {
		return
	}
	m.cancel()
	m.generation++
	m.mounted = false
}

func (m *Model) handleFetchResult(msg fetchResultMsg) tea.Cmd {
	if !m.mounted || msg.generation != m.generation {
		common.LogDebug("Dropping stale dashboard result", common.Fields{
			"endpoint":   string(msg.result.Endpoint),
			"generation": msg.generation,
			"current":    m.generation,
		})
		return nil
	}

	if !m.state.Apply(msg.result) {
		return nil
	}

	m.refreshContent()
	return recordCycle(m.mountCtx, m.loader, m.generation, m.state)
}

// handleResize adjusts the viewport when the terminal resizes.
func (m *Model) handleResize() {
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-chromeHeight, 1)
	m.help.Width = m.width
	if m.mounted && !m.state.Loading {
		m.refreshContent()
	}
}

// refreshContent re-renders the loaded dashboard into the viewport.
func (m *Model) refreshContent() {
	m.viewport.SetContent(RenderDashboard(m.theme, m.state, m.width))
}
