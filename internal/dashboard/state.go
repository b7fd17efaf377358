// Package dashboard loads the four analytics slices and derives chart geometry.
package dashboard

import (
	"time"

	"github.com/Veraticus/recdash/internal/analytics"
	"github.com/Veraticus/recdash/internal/model"
)

// Result is the outcome of fetching one endpoint.
type Result struct {
	Err             error
	Endpoint        analytics.Endpoint
	Recommendations []model.RecommendationRecord
	Categories      []model.CategorySlice
	Engagement      []model.EngagementPoint
	Summary         model.SummaryMetrics
	Duration        time.Duration
}

// State is the transient view state of one dashboard mount.
type State struct {
	StartedAt       time.Time                    `json:"-" yaml:"-"`
	Summary         model.SummaryMetrics         `json:"summary" yaml:"summary"`
	Recommendations []model.RecommendationRecord `json:"recentRecommendations" yaml:"recentRecommendations"`
	Categories      []model.CategorySlice        `json:"categoryDistribution" yaml:"categoryDistribution"`
	Engagement      []model.EngagementPoint      `json:"weeklyEngagement" yaml:"weeklyEngagement"`
	Loading         bool                         `json:"loading" yaml:"loading"`

	settled  map[analytics.Endpoint]bool
	outcomes []model.EndpointOutcome
}

// NewState returns the initial state: loading, zero metrics, empty lists.
func NewState() State {
	return State{
		StartedAt:       time.Now(),
		Loading:         true,
		Recommendations: []model.RecommendationRecord{},
		Categories:      []model.CategorySlice{},
		Engagement:      []model.EngagementPoint{},
		settled:         make(map[analytics.Endpoint]bool, len(analytics.Endpoints)),
	}
}

// Apply stores a result into its slice. A failed result leaves the slice at
// its initial value. It returns true on the call that clears Loading, which
// happens once, after every endpoint has settled.
func (s *State) Apply(r Result) bool {
	if s.settled == nil {
		s.settled = make(map[analytics.Endpoint]bool, len(analytics.Endpoints))
	}
	if s.settled[r.Endpoint] || !isKnown(r.Endpoint) {
		return false
	}
	s.settled[r.Endpoint] = true

	outcome := model.EndpointOutcome{
		Endpoint: string(r.Endpoint),
		Duration: r.Duration,
		OK:       r.Err == nil,
	}
	if r.Err != nil {
		outcome.Error = r.Err.Error()
	}
	s.outcomes = append(s.outcomes, outcome)

	if r.Err == nil {
		switch r.Endpoint {
		case analytics.EndpointSummary:
			s.Summary = r.Summary
		case analytics.EndpointRecentRecommendations:
			s.Recommendations = r.Recommendations
		case analytics.EndpointCategoryDistribution:
			s.Categories = r.Categories
		case analytics.EndpointWeeklyEngagement:
			s.Engagement = r.Engagement
		}
	}

	if s.Loading && len(s.settled) == len(analytics.Endpoints) {
		s.Loading = false
		return true
	}
	return false
}

// Settled reports how many endpoints have settled so far.
func (s State) Settled() int {
	return len(s.settled)
}

// Cycle summarizes the mount for the load journal.
func (s State) Cycle(id, source string, finishedAt time.Time) model.LoadCycle {
	outcomes := make([]model.EndpointOutcome, len(s.outcomes))
	copy(outcomes, s.outcomes)

	return model.LoadCycle{
		ID:         id,
		Source:     source,
		StartedAt:  s.StartedAt,
		FinishedAt: finishedAt,
		Outcomes:   outcomes,
	}
}

func isKnown(e analytics.Endpoint) bool {
	for _, known := range analytics.Endpoints {
		if e == known {
			return true
		}
	}
	return false
}
