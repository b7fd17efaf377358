package tui

import "github.com/Veraticus/recdash/internal/dashboard"

// fetchResultMsg carries one settled dashboard request. generation ties it
// to the mount that issued it.
type fetchResultMsg struct {
	result     dashboard.Result
	generation int
}

// cycleRecordedMsg reports that the journal write for a mount finished.
type cycleRecordedMsg struct {
	generation int
}
