package demoapi

import (
	"fmt"
	"time"

	"github.com/Veraticus/recdash/internal/model"
	"github.com/google/uuid"
)

// Dataset is the canned analytics payload the demo server returns.
type Dataset struct {
	Summary         model.SummaryMetrics
	Recommendations []model.RecommendationRecord
	Categories      []model.CategorySlice
	Engagement      []model.EngagementPoint
}

// recommendationNamespace keeps demo recommendation ids stable between runs.
var recommendationNamespace = uuid.MustParse("6f1c2a0e-5d4b-4c1e-9a53-1f0b7a3c2d10")

// SampleDataset returns deterministic demo data anchored at now.
func SampleDataset(now time.Time) Dataset {
	products := []struct {
		name string
		id   int
	}{
		{"Wireless Earbuds", 101},
		{"Espresso Machine", 214},
		{"Trail Running Shoes", 337},
		{"Mechanical Keyboard", 412},
		{"Cast Iron Skillet", 518},
		{"Yoga Mat", 623},
		{"Graphic Novel Box Set", 731},
		{"Building Blocks Kit", 845},
	}
	algorithms := []string{"collaborative", "content_based", "hybrid", "popularity"}

	records := make([]model.RecommendationRecord, 0, len(products))
	for i, p := range products {
		id := uuid.NewSHA1(recommendationNamespace, []byte(fmt.Sprintf("rec-%d", i)))
		records = append(records, model.RecommendationRecord{
			"id":           id.String(),
			"user_id":      float64(1000 + i*37),
			"product_id":   float64(p.id),
			"product_name": p.name,
			"score":        float64(95-i*4) / 100,
			"algorithm":    algorithms[i%len(algorithms)],
			"created_at":   now.Add(-time.Duration(i*17) * time.Minute).UTC().Format(time.RFC3339),
		})
	}

	return Dataset{
		Summary: model.SummaryMetrics{
			TotalUsers:           12480,
			TotalProducts:        1830,
			TotalRecommendations: 96214,
			ConversionRate:       4.7,
		},
		Recommendations: records,
		Categories: []model.CategorySlice{
			{Name: "Electronics", Value: 420},
			{Name: "Home & Kitchen", Value: 310},
			{Name: "Sports", Value: 180},
			{Name: "Books", Value: 150},
			{Name: "Toys", Value: 90},
			{Name: "Beauty", Value: 60},
		},
		Engagement: []model.EngagementPoint{
			{Day: "Mon", Views: 4200, Purchases: 310, Recommendations: 1800},
			{Day: "Tue", Views: 3900, Purchases: 280, Recommendations: 1650},
			{Day: "Wed", Views: 4600, Purchases: 350, Recommendations: 2100},
			{Day: "Thu", Views: 4100, Purchases: 300, Recommendations: 1900},
			{Day: "Fri", Views: 5200, Purchases: 420, Recommendations: 2500},
			{Day: "Sat", Views: 6100, Purchases: 530, Recommendations: 2900},
			{Day: "Sun", Views: 5700, Purchases: 480, Recommendations: 2700},
		},
	}
}
