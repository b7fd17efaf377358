package model

import "time"

// EndpointOutcome records how one analytics request settled.
type EndpointOutcome struct {
	Endpoint string
	Error    string
	Duration time.Duration
	OK       bool
}

// LoadCycle is one dashboard mount: four requests fired, all settled.
type LoadCycle struct {
	StartedAt  time.Time
	FinishedAt time.Time
	ID         string
	Source     string
	Outcomes   []EndpointOutcome
}

// Failures counts the requests that did not succeed.
func (c LoadCycle) Failures() int {
	n := 0
	for _, o := range c.Outcomes {
		if !o.OK {
			n++
		}
	}
	return n
}

// Elapsed returns the wall time between mount and the last settlement.
func (c LoadCycle) Elapsed() time.Duration {
	if c.FinishedAt.IsZero() {
		return 0
	}
	return c.FinishedAt.Sub(c.StartedAt)
}
