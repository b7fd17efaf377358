package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/recdash/internal/analytics"
	"github.com/Veraticus/recdash/internal/common"
	"github.com/Veraticus/recdash/internal/config"
	"github.com/Veraticus/recdash/internal/demoapi"
	"github.com/Veraticus/recdash/internal/model"
	"github.com/Veraticus/recdash/internal/storage"
	tuitesting "github.com/Veraticus/recdash/internal/tui/testing"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// setupDemo starts a demo API and points the global configuration at it.
func setupDemo(t *testing.T, fail ...analytics.Endpoint) (demoapi.Dataset, string) {
	t.Helper()

	failing := make(map[analytics.Endpoint]bool)
	for _, e := range fail {
		failing[e] = true
	}

	data := demoapi.SampleDataset(time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC))
	srv := httptest.NewServer(demoapi.NewServer(data, demoapi.Options{Fail: failing}).Handler())
	t.Cleanup(srv.Close)

	journalPath := filepath.Join(t.TempDir(), "journal.db")

	viper.Reset()
	t.Cleanup(viper.Reset)
	config.SetDefaults(viper.GetViper())
	viper.Set("api.url", srv.URL)
	viper.Set("journal.path", journalPath)

	return data, journalPath
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()

	if args == nil {
		// A nil slice makes cobra fall back to os.Args.
		args = []string{}
	}

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestSnapshot_JSON(t *testing.T) {
	data, journalPath := setupDemo(t)

	out := execute(t, snapshotCmd(), "--format", "json", "--quiet")

	var got struct {
		Summary               model.SummaryMetrics         `json:"summary"`
		RecentRecommendations []model.RecommendationRecord `json:"recentRecommendations"`
		CategoryDistribution  []model.CategorySlice        `json:"categoryDistribution"`
		WeeklyEngagement      []model.EngagementPoint      `json:"weeklyEngagement"`
		Loading               bool                         `json:"loading"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.False(t, got.Loading)
	assert.Equal(t, data.Summary, got.Summary)
	assert.Equal(t, data.Categories, got.CategoryDistribution)
	assert.Equal(t, data.Engagement, got.WeeklyEngagement)
	assert.Len(t, got.RecentRecommendations, len(data.Recommendations))

	store, err := storage.Open(context.Background(), journalPath)
	require.NoError(t, err)
	defer store.Close()

	cycles, err := store.ListCycles(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, cycles, 1)
	assert.Equal(t, "snapshot", cycles[0].Source)
	assert.Equal(t, 0, cycles[0].Failures())
}

func TestSnapshot_FailureStillSucceeds(t *testing.T) {
	data, _ := setupDemo(t, analytics.EndpointSummary)

	out := execute(t, snapshotCmd(), "--format", "yaml", "--quiet")

	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))

	assert.Equal(t, false, got["loading"])
	summary, ok := got["summary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 0, summary["totalUsers"])
	assert.Len(t, got["categoryDistribution"], len(data.Categories))
}

func TestSnapshot_Text(t *testing.T) {
	setupDemo(t)
	viper.Set("journal.enabled", false)

	out := tuitesting.StripANSI(execute(t, snapshotCmd(), "--quiet", "--width", "100"))

	assert.True(t, tuitesting.ContainsInOrder(out,
		"Total Users", "Weekly Engagement", "Recent Recommendations"))
	assert.Contains(t, out, "Category Distribution")
}

func TestSnapshot_UnknownFormat(t *testing.T) {
	setupDemo(t)

	cmd := snapshotCmd()
	cmd.SetArgs([]string{"--format", "xml"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestLoads(t *testing.T) {
	setupDemo(t, analytics.EndpointWeeklyEngagement)

	out := execute(t, loadsCmd())
	assert.Contains(t, out, "No load cycles recorded yet.")

	execute(t, snapshotCmd(), "--format", "json", "--quiet")
	execute(t, snapshotCmd(), "--format", "json", "--quiet")

	out = tuitesting.StripANSI(execute(t, loadsCmd(), "--limit", "5"))
	assert.Equal(t, 2, strings.Count(out, "snapshot"))
	assert.Contains(t, out, "1/4")

	out = tuitesting.StripANSI(execute(t, loadsCmd(), "prune", "--older-than", "1h"))
	assert.Contains(t, out, "Removed 0 load cycle(s)")
}

func TestLoadsShow_ListedID(t *testing.T) {
	_, journalPath := setupDemo(t, analytics.EndpointSummary)

	execute(t, snapshotCmd(), "--format", "json", "--quiet")

	listing := tuitesting.StripANSI(execute(t, loadsCmd()))
	var listedID string
	for _, line := range strings.Split(listing, "\n") {
		if strings.Contains(line, "snapshot") {
			listedID = strings.Fields(line)[0]
			break
		}
	}
	require.NotEmpty(t, listedID)

	store, err := storage.Open(context.Background(), journalPath)
	require.NoError(t, err)
	cycles, err := store.ListCycles(context.Background(), 1)
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.Len(t, cycles, 1)
	fullID := cycles[0].ID
	assert.True(t, strings.HasPrefix(fullID, listedID))

	out := tuitesting.StripANSI(execute(t, loadsCmd(), "show", listedID))
	assert.Contains(t, out, "Load cycle "+fullID)
	assert.Contains(t, out, "Source:   snapshot")
	assert.True(t, tuitesting.ContainsInOrder(out, "Endpoint", "Duration", "Result"))
	for _, e := range analytics.Endpoints {
		assert.Contains(t, out, string(e))
	}
	assert.Contains(t, out, "unexpected status")

	cmd := loadsCmd()
	cmd.SetArgs([]string{"show", "does-not-exist"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err = cmd.ExecuteContext(context.Background())
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestLoads_Disabled(t *testing.T) {
	setupDemo(t)
	viper.Set("journal.enabled", false)

	cmd := loadsCmd()
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disabled")
}

func TestRoutes(t *testing.T) {
	out := tuitesting.StripANSI(execute(t, routesCmd()))

	assert.True(t, tuitesting.ContainsInOrder(out,
		"/login", "/", "/products", "/recommendations", "/analytics", "/settings"))
	assert.Contains(t, out, "Dashboard")
}

func TestServeUntilDone_Shutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	srv := &http.Server{
		Addr:              "127.0.0.1:0",
		Handler:           http.NotFoundHandler(),
		ReadHeaderTimeout: time.Second,
	}

	done := make(chan error, 1)
	go func() {
		done <- serveUntilDone(ctx, srv)
	}()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestVersion(t *testing.T) {
	out := execute(t, versionCmd())
	assert.Equal(t, "recdash dev\n", out)
}
