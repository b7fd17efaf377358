// Package testing provides test utilities for TUI components.
package testing

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// maxDrainSteps bounds Drain so a command loop fails fast instead of hanging.
const maxDrainSteps = 1000

// TestRenderer drives a Bubble Tea model without a real terminal.
type TestRenderer struct {
	// Output contains the last rendered view
	Output string

	// Messages contains all messages sent to the model
	Messages []tea.Msg

	// UpdateCount tracks how many times Update was called
	UpdateCount int

	// Quit is set once a command produced tea.QuitMsg
	Quit bool
}

// NewTestRenderer creates a new test renderer.
func NewTestRenderer() *TestRenderer {
	return &TestRenderer{
		Messages: make([]tea.Msg, 0),
	}
}

// Render renders a model and captures its output.
func (r *TestRenderer) Render(model tea.Model) string {
	r.Output = model.View()
	return r.Output
}

// Update sends a message to the model and captures the result.
func (r *TestRenderer) Update(model tea.Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	r.Messages = append(r.Messages, msg)
	r.UpdateCount++

	newModel, cmd := model.Update(msg)
	r.Output = newModel.View()

	return newModel, cmd
}

// Drain runs cmd and every command that follows from it, feeding each
// message back into the model until nothing is left. Batches are expanded.
// Spinner ticks are dropped since their follow-up commands sleep.
func (r *TestRenderer) Drain(model tea.Model, cmd tea.Cmd) tea.Model {
	queue := []tea.Cmd{cmd}

	for steps := 0; len(queue) > 0 && steps < maxDrainSteps; steps++ {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case spinner.TickMsg:
		case tea.QuitMsg:
			r.Quit = true
		default:
			var follow tea.Cmd
			model, follow = r.Update(model, msg)
			queue = append(queue, follow)
		}
	}

	r.Output = model.View()
	return model
}

// StripANSI removes ANSI escape codes from the output for content-only testing.
func (r *TestRenderer) StripANSI() string {
	return StripANSI(r.Output)
}

// Lines returns the output split by newlines.
func (r *TestRenderer) Lines() []string {
	return strings.Split(r.Output, "\n")
}

// Reset clears all captured data.
func (r *TestRenderer) Reset() {
	r.Output = ""
	r.Messages = nil
	r.UpdateCount = 0
	r.Quit = false
}
