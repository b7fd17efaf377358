package analytics

import (
	"fmt"

	"github.com/Veraticus/recdash/internal/common"
)

// Endpoint identifies one of the four analytics resources.
type Endpoint string

const (
	EndpointSummary               Endpoint = "summary"
	EndpointRecentRecommendations Endpoint = "recent-recommendations"
	EndpointCategoryDistribution  Endpoint = "category-distribution"
	EndpointWeeklyEngagement      Endpoint = "weekly-engagement"
)

// Endpoints lists every analytics resource in dashboard order.
var Endpoints = []Endpoint{
	EndpointSummary,
	EndpointRecentRecommendations,
	EndpointCategoryDistribution,
	EndpointWeeklyEngagement,
}

// Path returns the request path of the endpoint.
func (e Endpoint) Path() string {
	return "/api/analytics/" + string(e)
}

// ParseEndpoint resolves an endpoint by name.
func ParseEndpoint(name string) (Endpoint, error) {
	for _, e := range Endpoints {
		if string(e) == name {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: %q", common.ErrUnknownEndpoint, name)
}
