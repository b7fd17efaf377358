package analytics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Veraticus/recdash/internal/common"
	"github.com/Veraticus/recdash/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		config  Config
	}{
		{name: "default config", config: DefaultConfig()},
		{name: "https with path", config: Config{BaseURL: "https://api.example.com/v2"}},
		{name: "missing url", config: Config{}, wantErr: common.ErrMissingConfig},
		{name: "bad scheme", config: Config{BaseURL: "ftp://example.com"}, wantErr: common.ErrInvalidConfig},
		{name: "no host", config: Config{BaseURL: "http://"}, wantErr: common.ErrInvalidConfig},
		{name: "negative timeout", config: Config{BaseURL: DefaultBaseURL, Timeout: -time.Second}, wantErr: common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	client, err := NewClient(Config{BaseURL: "http://localhost:8000///"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", client.BaseURL())
}

func TestClient_FetchesAllEndpoints(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/api/analytics/summary":                `{"totalUsers":1200,"totalProducts":340,"totalRecommendations":9800,"conversionRate":3.5}`,
		"/api/analytics/recent-recommendations": `[{"id":1,"user_id":7,"product_id":42,"score":0.93,"algorithm":"collaborative"}]`,
		"/api/analytics/category-distribution":  `[{"name":"Books","value":30},{"name":"Toys","value":70}]`,
		"/api/analytics/weekly-engagement":      `[{"day":"Mon","views":120,"purchases":12,"recommendations":40}]`,
	})

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	ctx := context.Background()

	summary, err := client.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.SummaryMetrics{
		TotalUsers:           1200,
		TotalProducts:        340,
		TotalRecommendations: 9800,
		ConversionRate:       3.5,
	}, summary)

	records, err := client.RecentRecommendations(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "collaborative", records[0]["algorithm"])
	assert.Equal(t, "42", records[0].Cell("product_id"))

	slices, err := client.CategoryDistribution(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.CategorySlice{{Name: "Books", Value: 30}, {Name: "Toys", Value: 70}}, slices)

	points, err := client.WeeklyEngagement(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.EngagementPoint{{Day: "Mon", Views: 120, Purchases: 12, Recommendations: 40}}, points)
}

func TestClient_SummaryFractionalCounters(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/api/analytics/summary": `{"totalUsers":1200.0,"totalProducts":340.5,"totalRecommendations":9800,"conversionRate":3}`,
	})

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	summary, err := client.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.SummaryMetrics{
		TotalUsers:           1200,
		TotalProducts:        340.5,
		TotalRecommendations: 9800,
		ConversionRate:       3,
	}, summary)
}

func TestClient_EmptyArray(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/api/analytics/weekly-engagement": `[]`,
	})

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	points, err := client.WeeklyEngagement(context.Background())
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestClient_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/analytics/summary":
			http.Error(w, "boom", http.StatusInternalServerError)
		case "/api/analytics/category-distribution":
			_, _ = w.Write([]byte(`{not json`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.Summary(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnexpectedStatus))
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "boom")

	_, err = client.CategoryDistribution(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode")
}

func TestClient_SendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL, Token: "secret-token"})
	require.NoError(t, err)

	_, err = client.CategoryDistribution(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", gotAuth)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	gotAuth := "unset"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.RecentRecommendations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_ContextCancelled(t *testing.T) {
	srv := newTestServer(t, map[string]string{"/api/analytics/summary": `{}`})

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.Summary(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseEndpoint(t *testing.T) {
	e, err := ParseEndpoint("weekly-engagement")
	require.NoError(t, err)
	assert.Equal(t, EndpointWeeklyEngagement, e)
	assert.Equal(t, "/api/analytics/weekly-engagement", e.Path())

	_, err = ParseEndpoint("nope")
	assert.ErrorIs(t, err, common.ErrUnknownEndpoint)
}
