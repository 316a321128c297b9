// Package render — text-with-tables renderer.
// Same page structure as the plain-text renderer, but each page's tables
// follow its text as fixed-width grids with the deduplicated headers as
// column titles.
package render

import (
	"strings"
	"unicode/utf8"

	"github.com/gaurav-prasanna/tabpipe/core"
)

// TablesRenderer writes page text followed by grid renderings of the
// page's tables, in table order.
type TablesRenderer struct{}

// NewTablesRenderer creates a TablesRenderer.
func NewTablesRenderer() *TablesRenderer {
	return &TablesRenderer{}
}

// Render concatenates pages in document order, appending each table grid
// after the page's text.
func (r *TablesRenderer) Render(doc *core.DocumentResult) ([]byte, error) {
	var b strings.Builder
	for _, page := range doc.Pages {
		writePageHeader(&b, page.Page)
		b.WriteString(page.Text)
		b.WriteString("\n\n")
		for _, t := range page.Tables {
			if len(t.Header) == 0 {
				continue
			}
			b.WriteString(Grid(t.Header, t.Rows))
			b.WriteString("\n")
		}
	}
	return []byte(b.String()), nil
}

// Extension returns the file extension for text-with-tables output.
func (r *TablesRenderer) Extension() string {
	return ".tables.txt"
}

// Grid renders a fixed-width table. Column widths come from the widest
// cell per column; the header is separated from the data rows by a "="
// rule, data rows by "-" rules:
//
//	+------+------+
//	| 2024 | Note |
//	+======+======+
//	| 100  | 1    |
//	+------+------+
func Grid(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := utf8.RuneCountInString(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	dash := gridRule(widths, '-')
	var b strings.Builder
	b.WriteString(dash)
	b.WriteString(gridLine(header, widths))
	b.WriteString(gridRule(widths, '='))
	for _, row := range rows {
		b.WriteString(gridLine(row, widths))
		b.WriteString(dash)
	}
	// A header-only table still gets its closing border.
	if len(rows) == 0 {
		b.WriteString(dash)
	}
	return b.String()
}

// gridRule builds a horizontal separator like "+------+------+".
func gridRule(widths []int, fill byte) string {
	var b strings.Builder
	for _, w := range widths {
		b.WriteByte('+')
		b.WriteString(strings.Repeat(string(fill), w+2))
	}
	b.WriteString("+\n")
	return b.String()
}

// gridLine builds one content row, padding each cell to its column width.
func gridLine(cells []string, widths []int) string {
	var b strings.Builder
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString("| ")
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", w-utf8.RuneCountInString(cell)+1))
	}
	b.WriteString("|\n")
	return b.String()
}
