package components

import (
	"strings"
	"testing"

	"github.com/Veraticus/recdash/internal/model"
	tuitesting "github.com/Veraticus/recdash/internal/tui/testing"
	"github.com/Veraticus/recdash/internal/tui/themes"
	"github.com/charmbracelet/bubbles/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryCards(t *testing.T) {
	cards := SummaryCards(model.SummaryMetrics{
		TotalUsers:           1250,
		TotalProducts:        340,
		TotalRecommendations: 8721,
		ConversionRate:       3.4,
	})

	require.Len(t, cards, 4)
	assert.Equal(t, MetricCard{Title: CardTotalUsers, Value: "1250", ColorIndex: 0}, cards[0])
	assert.Equal(t, MetricCard{Title: CardTotalProducts, Value: "340", ColorIndex: 1}, cards[1])
	assert.Equal(t, MetricCard{Title: CardRecommendations, Value: "8721", ColorIndex: 2}, cards[2])
	assert.Equal(t, MetricCard{Title: CardConversionRate, Value: "3.4%", ColorIndex: 3}, cards[3])
}

func TestSummaryCards_FractionalCounters(t *testing.T) {
	cards := SummaryCards(model.SummaryMetrics{TotalUsers: 1200.0, TotalProducts: 340.5})

	assert.Equal(t, "1200", cards[0].Value)
	assert.Equal(t, "340.5", cards[1].Value)
}

func TestSummaryCards_ZeroValue(t *testing.T) {
	cards := SummaryCards(model.SummaryMetrics{})

	for _, c := range cards[:3] {
		assert.Equal(t, "0", c.Value, c.Title)
	}
	assert.Equal(t, "0%", cards[3].Value)
}

func TestRenderMetricCards(t *testing.T) {
	cards := SummaryCards(model.SummaryMetrics{TotalUsers: 42, ConversionRate: 12.5})

	tests := []struct {
		name  string
		width int
		rows  int
	}{
		{name: "wide terminal uses one row", width: 120, rows: 1},
		{name: "narrow terminal wraps into two rows", width: 50, rows: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tuitesting.StripANSI(RenderMetricCards(themes.Default, cards, tt.width))

			assert.True(t, tuitesting.ContainsInOrder(out,
				CardTotalUsers, CardTotalProducts, CardRecommendations, CardConversionRate))
			assert.Contains(t, out, "42")
			assert.Contains(t, out, "12.5%")

			// Each card is a title and a value inside a border.
			assert.Equal(t, tt.rows*4, len(strings.Split(out, "\n")))
		})
	}
}

func TestRenderMetricCards_Empty(t *testing.T) {
	assert.Empty(t, RenderMetricCards(themes.Default, nil, 80))
}

func TestBarChart_View(t *testing.T) {
	points := []model.EngagementPoint{
		{Day: "Mon", Views: 100, Purchases: 10, Recommendations: 50},
		{Day: "Tue", Views: 50, Purchases: 0, Recommendations: 25},
	}

	out := tuitesting.StripANSI(NewBarChart(themes.Default, points, 40).View())
	lines := strings.Split(out, "\n")

	assert.Equal(t, BarChartTitle, strings.TrimSpace(lines[0]))
	assert.True(t, tuitesting.ContainsInOrder(lines[1], "Views", "Purchases", "Recommendations"))

	// Title, legend, then three bars per day.
	require.Len(t, lines, 2+3*len(points))
	assert.True(t, strings.HasPrefix(lines[2], "Mon"))
	assert.True(t, strings.HasPrefix(lines[5], "Tue"))

	// The largest value fills the bar, half of it fills half.
	full := strings.Count(lines[2], barRune)
	half := strings.Count(lines[5], barRune)
	assert.Positive(t, full)
	assert.InDelta(t, float64(full)/2, float64(half), 1)

	// A zero value draws no bar but still shows its value.
	assert.Equal(t, 0, strings.Count(lines[6], barRune))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(lines[6]), "0"))
}

func TestBarChart_PreservesOrder(t *testing.T) {
	points := []model.EngagementPoint{
		{Day: "Sun", Views: 1},
		{Day: "Mon", Views: 2},
		{Day: "Sat", Views: 3},
	}

	out := tuitesting.StripANSI(NewBarChart(themes.Default, points, 40).View())
	assert.True(t, tuitesting.ContainsInOrder(out, "Sun", "Mon", "Sat"))
}

func TestBarChart_Empty(t *testing.T) {
	out := tuitesting.StripANSI(NewBarChart(themes.Default, nil, 40).View())

	assert.Contains(t, out, BarChartTitle)
	assert.Contains(t, out, "Views")
	assert.NotContains(t, out, barRune)
}

func TestPieChart_View(t *testing.T) {
	chart := NewPieChart(themes.Default, []model.CategorySlice{
		{Name: "Books", Value: 30},
		{Name: "Toys", Value: 70},
	}, 40)

	segments := chart.Segments()
	require.Len(t, segments, 2)
	assert.Equal(t, "Books 30%", segments[0].Label)
	assert.Equal(t, 0, segments[0].ColorIndex)
	assert.Equal(t, "Toys 70%", segments[1].Label)
	assert.Equal(t, 1, segments[1].ColorIndex)

	out := tuitesting.StripANSI(chart.View())
	assert.True(t, tuitesting.ContainsInOrder(out, PieChartTitle, "Books 30%", "Toys 70%"))

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, 40, strings.Count(lines[1], barRune))
}

func TestPieChart_ZeroTotal(t *testing.T) {
	chart := NewPieChart(themes.Default, []model.CategorySlice{
		{Name: "A", Value: 0},
		{Name: "B", Value: 0},
	}, 20)

	out := tuitesting.StripANSI(chart.View())
	assert.Contains(t, out, "A 0%")
	assert.Contains(t, out, "B 0%")
	assert.NotContains(t, out, barRune)
}

func TestPieChart_Empty(t *testing.T) {
	out := tuitesting.StripANSI(NewPieChart(themes.Default, nil, 40).View())

	assert.Contains(t, out, PieChartTitle)
	assert.Contains(t, out, "No category data")
}

func TestRecommendationsTable(t *testing.T) {
	tbl := NewRecommendationsTable(themes.Default)
	tbl.SetWidth(100)
	tbl.SetRecords([]model.RecommendationRecord{
		{"id": "r1", "user_id": float64(7), "product_name": "Desk Lamp", "score": 0.92},
		{"id": "r2", "user_id": float64(9), "product_name": "Kettle", "channel": "email"},
	})

	assert.Equal(t, []string{"id", "user_id", "product_name", "score", "channel"}, tbl.Columns())

	rows := tbl.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"r1", "7", "Desk Lamp", "0.92", ""}, []string(rows[0]))
	assert.Equal(t, []string{"r2", "9", "Kettle", "", "email"}, []string(rows[1]))

	out := tuitesting.StripANSI(tbl.View())
	assert.True(t, tuitesting.ContainsInOrder(out, TableTitle, "product_name", "Desk Lamp", "Kettle"))
	assert.NotContains(t, out, "No recommendations yet")
}

func TestRecommendationsTable_Empty(t *testing.T) {
	tbl := NewRecommendationsTable(themes.Default)

	assert.Equal(t, emptyColumns, tbl.Columns())
	assert.Empty(t, tbl.Rows())

	out := tuitesting.StripANSI(tbl.View())
	assert.Contains(t, out, TableTitle)
	assert.Contains(t, out, "No recommendations yet")
}

func TestRecommendationsTable_ReplacesColumns(t *testing.T) {
	tbl := NewRecommendationsTable(themes.Default)
	tbl.SetRecords([]model.RecommendationRecord{{"a": "1", "b": "2", "c": "3"}})
	tbl.SetRecords([]model.RecommendationRecord{{"id": "x"}})

	assert.Equal(t, []string{"id"}, tbl.Columns())
	require.Len(t, tbl.Rows(), 1)
	assert.Equal(t, []string{"x"}, []string(tbl.Rows()[0]))
}

func TestColumnWidths(t *testing.T) {
	columns := []string{"id", "description"}
	rows := []table.Row{{"1", strings.Repeat("x", 40)}}

	tests := []struct {
		name  string
		limit int
		want  []int
	}{
		{name: "unbounded caps long values", limit: 0, want: []int{2, maxColumnWidth}},
		{name: "shrinks to fit", limit: 20, want: []int{2, 14}},
		{name: "never below the minimum", limit: 5, want: []int{2, minColumnWidth}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, columnWidths(columns, rows, tt.limit))
		})
	}
}
