package cli

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// table renders aligned columns. Widths are measured in terminal cells so
// the rupee sign and non-Latin names line up.
type table struct {
	columns []string
	right   map[int]bool
	rows    [][]string
	// style colors a padded cell. It must not change the visible width.
	style func(row, col int, cell string) string
}

func newTable(columns ...string) *table {
	return &table{columns: columns, right: make(map[int]bool)}
}

// alignRight right-aligns the given columns.
func (t *table) alignRight(cols ...int) *table {
	for _, c := range cols {
		t.right[c] = true
	}
	return t
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) widths() []int {
	widths := make([]int, len(t.columns))
	for i, c := range t.columns {
		widths[i] = runewidth.StringWidth(c)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(cell))
			}
		}
	}
	return widths
}

func (t *table) pad(cell string, col, width int) string {
	if t.right[col] {
		return runewidth.FillLeft(cell, width)
	}
	return runewidth.FillRight(cell, width)
}

// render writes the header, a rule and every row to w.
func (t *table) render(w io.Writer) {
	widths := t.widths()

	header := make([]string, len(t.columns))
	rule := make([]string, len(t.columns))
	for i, c := range t.columns {
		header[i] = titleStyle.Render(t.pad(c, i, widths[i]))
		rule[i] = strings.Repeat("─", widths[i])
	}
	writeLine(w, header)
	writeLine(w, rule)

	for r, row := range t.rows {
		cells := make([]string, len(t.columns))
		for i := range t.columns {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = t.pad(cell, i, widths[i])
			if t.style != nil {
				cells[i] = t.style(r, i, cells[i])
			}
		}
		writeLine(w, cells)
	}
}

func writeLine(w io.Writer, cells []string) {
	_, _ = io.WriteString(w, strings.TrimRight(strings.Join(cells, "  "), " ")+"\n")
}
