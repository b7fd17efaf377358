package model

import (
	"fmt"
	"sort"
	"strconv"
)

// SummaryMetrics holds the aggregate counters shown in the top metric cards.
// Counters are plain JSON numbers, so 1200 and 1200.0 both decode.
type SummaryMetrics struct {
	TotalUsers           float64 `json:"totalUsers" yaml:"totalUsers"`
	TotalProducts        float64 `json:"totalProducts" yaml:"totalProducts"`
	TotalRecommendations float64 `json:"totalRecommendations" yaml:"totalRecommendations"`
	ConversionRate       float64 `json:"conversionRate" yaml:"conversionRate"`
}

// FormatConversionRate renders the rate the way the dashboard card shows it.
func (s SummaryMetrics) FormatConversionRate() string {
	return FormatNumber(s.ConversionRate) + "%"
}

// CategorySlice is one named value feeding a pie segment.
type CategorySlice struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

// EngagementPoint is one time bucket of the weekly engagement chart.
type EngagementPoint struct {
	Day             string  `json:"day" yaml:"day"`
	Views           float64 `json:"views" yaml:"views"`
	Purchases       float64 `json:"purchases" yaml:"purchases"`
	Recommendations float64 `json:"recommendations" yaml:"recommendations"`
}

// RecommendationRecord is one row of the recent recommendations table.
// Its shape belongs to the analytics API and is not validated here.
type RecommendationRecord map[string]any

// knownRecommendationFields orders the columns the recommendation API usually sends.
var knownRecommendationFields = []string{
	"id",
	"user_id",
	"product_id",
	"product_name",
	"score",
	"algorithm",
	"created_at",
}

// RecommendationColumns returns the union of record keys. Well-known fields
// come first in a fixed order, anything else follows alphabetically.
func RecommendationColumns(records []RecommendationRecord) []string {
	seen := make(map[string]bool)
	for _, rec := range records {
		for k := range rec {
			seen[k] = true
		}
	}

	columns := make([]string, 0, len(seen))
	for _, k := range knownRecommendationFields {
		if seen[k] {
			columns = append(columns, k)
			delete(seen, k)
		}
	}

	rest := make([]string, 0, len(seen))
	for k := range seen {
		rest = append(rest, k)
	}
	sort.Strings(rest)

	return append(columns, rest...)
}

// Cell formats a single field for display. Missing fields render empty.
func (r RecommendationRecord) Cell(column string) string {
	v, ok := r[column]
	if !ok || v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case float64:
		return FormatNumber(val)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

// FormatNumber prints a number with the shortest exact representation,
// so 42 stays "42" and 3.5 stays "3.5".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
