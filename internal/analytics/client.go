// Package analytics is the HTTP client for the recommendation engine's analytics API.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Veraticus/recdash/internal/common"
	"github.com/Veraticus/recdash/internal/model"
	"golang.org/x/oauth2"
)

// maxErrorBody caps how much of a failed response ends up in the error text.
const maxErrorBody = 512

// Client fetches pre-aggregated dashboard data from the analytics API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates an analytics client for the given configuration.
func NewClient(cfg Config, opts ...ClientOption) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:    cfg.normalizedBaseURL(),
		httpClient: newHTTPClient(cfg),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// newHTTPClient builds the transport. When a token is configured the
// oauth2 transport attaches it as a bearer credential.
func newHTTPClient(cfg Config) *http.Client {
	base := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 4,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	if cfg.Token == "" {
		return base
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	hc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cfg.Token,
		TokenType:   "Bearer",
	}))
	hc.Timeout = cfg.Timeout
	return hc
}

// BaseURL returns the API root requests are issued against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Summary fetches the aggregate counters.
func (c *Client) Summary(ctx context.Context) (model.SummaryMetrics, error) {
	var metrics model.SummaryMetrics
	if err := c.getJSON(ctx, EndpointSummary, &metrics); err != nil {
		return model.SummaryMetrics{}, err
	}
	return metrics, nil
}

// RecentRecommendations fetches the rows of the recommendations table.
func (c *Client) RecentRecommendations(ctx context.Context) ([]model.RecommendationRecord, error) {
	var records []model.RecommendationRecord
	if err := c.getJSON(ctx, EndpointRecentRecommendations, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CategoryDistribution fetches the pie chart slices.
func (c *Client) CategoryDistribution(ctx context.Context) ([]model.CategorySlice, error) {
	var slices []model.CategorySlice
	if err := c.getJSON(ctx, EndpointCategoryDistribution, &slices); err != nil {
		return nil, err
	}
	return slices, nil
}

// WeeklyEngagement fetches the bar chart points.
func (c *Client) WeeklyEngagement(ctx context.Context) ([]model.EngagementPoint, error) {
	var points []model.EngagementPoint
	if err := c.getJSON(ctx, EndpointWeeklyEngagement, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// getJSON issues a GET against the endpoint and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, endpoint Endpoint, out any) error {
	url := c.baseURL + endpoint.Path()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	slog.Debug("Requesting analytics", "endpoint", string(endpoint), "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s failed: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: %s returned %d: %s", common.ErrUnexpectedStatus, endpoint, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}

	return nil
}
