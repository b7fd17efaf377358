package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Veraticus/recdash/internal/analytics"
	"github.com/Veraticus/recdash/internal/common"
	"github.com/Veraticus/recdash/internal/model"
	"github.com/google/uuid"
	"github.com/sourcegraph/conc"
)

// Source is the read side of the analytics API.
type Source interface {
	Summary(ctx context.Context) (model.SummaryMetrics, error)
	RecentRecommendations(ctx context.Context) ([]model.RecommendationRecord, error)
	CategoryDistribution(ctx context.Context) ([]model.CategorySlice, error)
	WeeklyEngagement(ctx context.Context) ([]model.EngagementPoint, error)
}

// Journal records completed load cycles for diagnostics.
type Journal interface {
	RecordCycle(ctx context.Context, cycle model.LoadCycle) error
}

// Loader issues the dashboard requests. It never retries and never caches.
type Loader struct {
	source    Source
	journal   Journal
	onSettled func(Result)
	name      string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithJournal records every settled cycle in j.
func WithJournal(j Journal) LoaderOption {
	return func(l *Loader) {
		l.journal = j
	}
}

// WithName tags journal entries with the caller, e.g. "tui" or "snapshot".
func WithName(name string) LoaderOption {
	return func(l *Loader) {
		l.name = name
	}
}

// WithSettledHook calls fn from Load each time a request settles. Calls are
// serialized.
func WithSettledHook(fn func(Result)) LoaderOption {
	return func(l *Loader) {
		l.onSettled = fn
	}
}

// NewLoader creates a loader reading from source.
func NewLoader(source Source, opts ...LoaderOption) *Loader {
	l := &Loader{
		source: source,
		name:   "dashboard",
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Fetch requests a single endpoint. Failures are logged and returned in the
// result rather than as an error; callers apply the result either way.
func (l *Loader) Fetch(ctx context.Context, endpoint analytics.Endpoint) Result {
	start := time.Now()
	r := Result{Endpoint: endpoint}

	switch endpoint {
	case analytics.EndpointSummary:
		r.Summary, r.Err = l.source.Summary(ctx)
	case analytics.EndpointRecentRecommendations:
		r.Recommendations, r.Err = l.source.RecentRecommendations(ctx)
	case analytics.EndpointCategoryDistribution:
		r.Categories, r.Err = l.source.CategoryDistribution(ctx)
	case analytics.EndpointWeeklyEngagement:
		r.Engagement, r.Err = l.source.WeeklyEngagement(ctx)
	default:
		r.Err = common.ErrUnknownEndpoint
	}
	r.Duration = time.Since(start)

	if r.Err != nil {
		if errors.Is(r.Err, context.Canceled) {
			slog.Debug("Dashboard request abandoned", "endpoint", string(endpoint))
		} else {
			slog.Error("Error fetching dashboard data", "endpoint", string(endpoint), "error", r.Err)
		}
	}

	return r
}

// Load fires all four requests in parallel, applies each as it resolves and
// returns once every one has settled.
func (l *Loader) Load(ctx context.Context) State {
	state := NewState()

	var (
		mu sync.Mutex
		wg conc.WaitGroup
	)
	for _, endpoint := range analytics.Endpoints {
		wg.Go(func() {
			r := l.Fetch(ctx, endpoint)

			mu.Lock()
			defer mu.Unlock()
			state.Apply(r)
			if l.onSettled != nil {
				l.onSettled(r)
			}
		})
	}
	wg.Wait()

	l.Record(ctx, state)
	return state
}

// Record writes the cycle to the journal, if one is configured. Journal
// failures are logged and otherwise ignored.
func (l *Loader) Record(ctx context.Context, state State) {
	if l.journal == nil {
		return
	}

	cycle := state.Cycle(uuid.NewString(), l.name, time.Now())
	if err := l.journal.RecordCycle(context.WithoutCancel(ctx), cycle); err != nil {
		common.LogError(err, "Failed to record load cycle", common.Fields{
			"cycle_id": cycle.ID,
		})
	}
}
