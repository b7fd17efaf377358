package dashboard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/Veraticus/recdash/internal/analytics"
	"github.com/Veraticus/recdash/internal/model"
)

var errAPIDown = errors.New("connection refused")

// mockSource serves canned data and can fail selected endpoints.
type mockSource struct {
	fail    map[analytics.Endpoint]error
	calls   map[analytics.Endpoint]*atomic.Int32
	summary model.SummaryMetrics
	records []model.RecommendationRecord
	slices  []model.CategorySlice
	points  []model.EngagementPoint
}

func newMockSource() *mockSource {
	calls := make(map[analytics.Endpoint]*atomic.Int32)
	for _, e := range analytics.Endpoints {
		calls[e] = &atomic.Int32{}
	}
	return &mockSource{
		fail:  make(map[analytics.Endpoint]error),
		calls: calls,
		summary: model.SummaryMetrics{
			TotalUsers:           1200,
			TotalProducts:        340,
			TotalRecommendations: 9800,
			ConversionRate:       3.5,
		},
		records: []model.RecommendationRecord{
			{"id": float64(1), "product_id": float64(42), "algorithm": "collaborative"},
		},
		slices: []model.CategorySlice{{Name: "Books", Value: 30}, {Name: "Toys", Value: 70}},
		points: []model.EngagementPoint{{Day: "Mon", Views: 100, Purchases: 10, Recommendations: 50}},
	}
}

func (m *mockSource) hit(e analytics.Endpoint) error {
	m.calls[e].Add(1)
	return m.fail[e]
}

func (m *mockSource) Summary(_ context.Context) (model.SummaryMetrics, error) {
	if err := m.hit(analytics.EndpointSummary); err != nil {
		return model.SummaryMetrics{}, err
	}
	return m.summary, nil
}

func (m *mockSource) RecentRecommendations(_ context.Context) ([]model.RecommendationRecord, error) {
	if err := m.hit(analytics.EndpointRecentRecommendations); err != nil {
		return nil, err
	}
	return m.records, nil
}

func (m *mockSource) CategoryDistribution(_ context.Context) ([]model.CategorySlice, error) {
	if err := m.hit(analytics.EndpointCategoryDistribution); err != nil {
		return nil, err
	}
	return m.slices, nil
}

func (m *mockSource) WeeklyEngagement(_ context.Context) ([]model.EngagementPoint, error) {
	if err := m.hit(analytics.EndpointWeeklyEngagement); err != nil {
		return nil, err
	}
	return m.points, nil
}

// memoryJournal keeps recorded cycles in memory.
type memoryJournal struct {
	err    error
	cycles []model.LoadCycle
	mu     sync.Mutex
}

func (j *memoryJournal) RecordCycle(_ context.Context, cycle model.LoadCycle) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.err != nil {
		return j.err
	}
	j.cycles = append(j.cycles, cycle)
	return nil
}
