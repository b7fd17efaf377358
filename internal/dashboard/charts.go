package dashboard

import (
	"math"
	"strconv"

	"github.com/Veraticus/recdash/internal/model"
)

// Palette is the fixed chart color cycle.
var Palette = []string{"#0088FE", "#00C49F", "#FFBB28", "#FF8042", "#8884D8"}

// PaletteIndex maps a list position onto the palette.
func PaletteIndex(position int) int {
	return position % len(Palette)
}

// PieSegment is one rendered pie slice.
type PieSegment struct {
	Name       string
	Label      string
	Value      float64
	Percent    float64
	ColorIndex int
}

// PieSegments computes each slice's share of the total. Colors follow list
// position, not category identity. A non-positive total gives every segment 0%.
func PieSegments(slices []model.CategorySlice) []PieSegment {
	var total float64
	for _, s := range slices {
		total += s.Value
	}

	segments := make([]PieSegment, 0, len(slices))
	for i, s := range slices {
		var percent float64
		if total > 0 {
			percent = s.Value / total
		}
		segments = append(segments, PieSegment{
			Name:       s.Name,
			Value:      s.Value,
			Percent:    percent,
			Label:      PieLabel(s.Name, percent),
			ColorIndex: PaletteIndex(i),
		})
	}
	return segments
}

// PieLabel formats "{name} {percent}%" with the percent rounded to a whole number.
func PieLabel(name string, fraction float64) string {
	return name + " " + strconv.FormatFloat(math.Round(fraction*100), 'f', 0, 64) + "%"
}

// Engagement series, in legend order.
const (
	SeriesViews           = "Views"
	SeriesPurchases       = "Purchases"
	SeriesRecommendations = "Recommendations"
)

// Bar is one series value inside a group.
type Bar struct {
	Series     string
	Value      float64
	Ratio      float64
	ColorIndex int
}

// BarGroup is the set of bars drawn for one engagement point.
type BarGroup struct {
	Label string
	Bars  []Bar
}

// BarGroups lays out one group per point in API order. Bar ratios share a
// single scale: the largest value across every series.
func BarGroups(points []model.EngagementPoint) []BarGroup {
	var maxValue float64
	for _, p := range points {
		maxValue = math.Max(maxValue, math.Max(p.Views, math.Max(p.Purchases, p.Recommendations)))
	}

	ratio := func(v float64) float64 {
		if maxValue <= 0 || v <= 0 {
			return 0
		}
		return v / maxValue
	}

	groups := make([]BarGroup, 0, len(points))
	for _, p := range points {
		groups = append(groups, BarGroup{
			Label: p.Day,
			Bars: []Bar{
				{Series: SeriesViews, Value: p.Views, Ratio: ratio(p.Views), ColorIndex: 0},
				{Series: SeriesPurchases, Value: p.Purchases, Ratio: ratio(p.Purchases), ColorIndex: 1},
				{Series: SeriesRecommendations, Value: p.Recommendations, Ratio: ratio(p.Recommendations), ColorIndex: 2},
			},
		})
	}
	return groups
}
