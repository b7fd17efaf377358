package components

import (
	"github.com/Veraticus/recdash/internal/model"
	"github.com/Veraticus/recdash/internal/tui/themes"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// TableTitle heads the recommendations panel.
const TableTitle = "Recent Recommendations"

const (
	maxColumnWidth = 24
	minColumnWidth = 6
	cellPadding    = 2
)

// emptyColumns are shown when the API returned no records.
var emptyColumns = []string{"id", "user_id", "product_name", "score", "algorithm"}

// RecommendationsTable lists recommendation records, one row each. Columns
// are taken from the records themselves.
type RecommendationsTable struct {
	theme   themes.Theme
	table   table.Model
	records []model.RecommendationRecord
	columns []string
	width   int
}

// NewRecommendationsTable creates an empty table.
func NewRecommendationsTable(theme themes.Theme) RecommendationsTable {
	t := RecommendationsTable{
		theme: theme,
		table: table.New(table.WithStyles(table.Styles{
			Header:   theme.TableHeader.Padding(0, 1),
			Cell:     theme.TableCell.Padding(0, 1),
			Selected: lipgloss.NewStyle(),
		})),
	}
	t.SetRecords(nil)
	return t
}

// SetRecords replaces the rows and recomputes the columns.
func (t *RecommendationsTable) SetRecords(records []model.RecommendationRecord) {
	t.records = records
	t.columns = model.RecommendationColumns(records)
	if len(t.columns) == 0 {
		t.columns = emptyColumns
	}
	t.layout()
}

// SetWidth limits the table to width cells.
func (t *RecommendationsTable) SetWidth(width int) {
	t.width = width
	t.layout()
}

// Columns returns the column keys in display order.
func (t RecommendationsTable) Columns() []string {
	return t.columns
}

// Rows returns the formatted cells.
func (t RecommendationsTable) Rows() []table.Row {
	return t.table.Rows()
}

// View renders the title and the table.
func (t RecommendationsTable) View() string {
	title := t.theme.Subtitle.Render(TableTitle)
	if len(t.records) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			t.table.View(),
			t.theme.Muted.Render("No recommendations yet"),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, t.table.View())
}

// layout rebuilds columns and rows. Rows must be cleared before the
// columns change since the table renders each row against the column list.
func (t *RecommendationsTable) layout() {
	rows := make([]table.Row, 0, len(t.records))
	for _, rec := range t.records {
		row := make(table.Row, len(t.columns))
		for i, col := range t.columns {
			row[i] = rec.Cell(col)
		}
		rows = append(rows, row)
	}

	widths := columnWidths(t.columns, rows, t.width)
	cols := make([]table.Column, len(t.columns))
	total := 0
	for i, name := range t.columns {
		cols[i] = table.Column{Title: name, Width: widths[i]}
		total += widths[i] + cellPadding
	}

	t.table.SetRows(nil)
	t.table.SetColumns(cols)
	t.table.SetRows(rows)
	t.table.SetWidth(total)

	headerHeight := lipgloss.Height(t.theme.TableHeader.Render(t.columns[0]))
	t.table.SetHeight(len(rows) + headerHeight)
}

// columnWidths sizes each column to its widest value, capped, then shrinks
// the cap until the table fits in limit. A limit of zero means unbounded.
func columnWidths(columns []string, rows []table.Row, limit int) []int {
	natural := make([]int, len(columns))
	for i, c := range columns {
		natural[i] = lipgloss.Width(c)
		for _, r := range rows {
			natural[i] = max(natural[i], lipgloss.Width(r[i]))
		}
	}

	widthCap := maxColumnWidth
	for {
		widths := make([]int, len(columns))
		total := 0
		for i, n := range natural {
			widths[i] = min(n, widthCap)
			total += widths[i] + cellPadding
		}
		if limit <= 0 || total <= limit || widthCap <= minColumnWidth {
			return widths
		}
		widthCap--
	}
}
