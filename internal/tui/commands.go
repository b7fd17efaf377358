package tui

import (
	"context"

	"github.com/Veraticus/recdash/internal/analytics"
	"github.com/Veraticus/recdash/internal/dashboard"
	tea "github.com/charmbracelet/bubbletea"
)

// loadDashboard issues one command per endpoint. They run in parallel and
// report back in whatever order they finish.
func (m Model) loadDashboard() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(analytics.Endpoints))
	for _, endpoint := range analytics.Endpoints {
		cmds = append(cmds, fetchEndpoint(m.mountCtx, m.loader, m.generation, endpoint))
	}
	return tea.Batch(cmds...)
}

// fetchEndpoint requests a single endpoint.
func fetchEndpoint(ctx context.Context, loader *dashboard.Loader, generation int, endpoint analytics.Endpoint) tea.Cmd {
	return func() tea.Msg {
		return fetchResultMsg{
			generation: generation,
			result:     loader.Fetch(ctx, endpoint),
		}
	}
}

// recordCycle writes the settled mount to the journal.
func recordCycle(ctx context.Context, loader *dashboard.Loader, generation int, state dashboard.State) tea.Cmd {
	return func() tea.Msg {
		loader.Record(ctx, state)
		return cycleRecordedMsg{generation: generation}
	}
}
