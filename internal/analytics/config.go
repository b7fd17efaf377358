package analytics

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Veraticus/recdash/internal/common"
)

// DefaultBaseURL is where the recommendation engine API listens by default.
const DefaultBaseURL = "http://localhost:8000"

// Config holds analytics API client configuration.
type Config struct {
	// BaseURL is the API root, e.g. http://localhost:8000.
	BaseURL string
	// Token is an optional bearer token supplied by the auth collaborator.
	Token string
	// Timeout bounds each request. Zero leaves requests unbounded.
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: api.url", common.ErrMissingConfig)
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: api.url: %v", common.ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: api.url must be http or https, got %q", common.ErrInvalidConfig, c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: api.url has no host", common.ErrInvalidConfig)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("%w: api.timeout must not be negative", common.ErrInvalidConfig)
	}

	return nil
}

// normalizedBaseURL strips trailing slashes so endpoint paths join cleanly.
func (c Config) normalizedBaseURL() string {
	return strings.TrimRight(c.BaseURL, "/")
}
