// Package table implements the Normalizer interface.
// It converts one extracted table fragment into its derived views:
// collision-free display headers, a rectangular cell matrix, and
// schema-normalized records with best-effort numeric coercion.
//
// Nothing here returns an error. Malformed input (empty tables, ragged
// rows, unparseable numbers) degrades to best-effort output so one bad
// table never aborts the rest of the document.
package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/tabpipe/core"
)

// fieldRules map recognized header spellings (lowercased, trimmed) to
// record fields, evaluated top to bottom. Anything unmatched falls
// through to "name". New header aliases are additions to this table,
// not new code branches.
var fieldRules = []struct {
	field   string
	aliases []string
}{
	{field: "year_2024", aliases: []string{"2024", "year_2024"}},
	{field: "year_2023", aliases: []string{"2023", "as restated 2023", "year_2023"}},
	{field: "note", aliases: []string{"note"}},
}

// Normalizer converts table fragments into display and record views.
type Normalizer struct{}

// New creates a Normalizer.
func New() *Normalizer {
	return &Normalizer{}
}

// Normalize builds the full view for one fragment: deduplicated headers,
// data rows sized to the header width, and the normalized record list.
func (n *Normalizer) Normalize(fragment core.TableFragment) core.TableView {
	view := core.TableView{Records: Records(fragment)}
	if len(fragment) == 0 {
		return view
	}
	view.Header = Deduplicate(fragment[0])
	for _, row := range fragment[1:] {
		view.Rows = append(view.Rows, fitRow(row, len(view.Header)))
	}
	return view
}

// Deduplicate makes header names pairwise-unique while preserving length
// and order. A blank or whitespace-only header becomes "col"; the Nth
// occurrence of a base name becomes "name_N". Counters are independent
// per base name and reset per table.
func Deduplicate(headers []string) []string {
	counts := make(map[string]int, len(headers))
	out := make([]string, len(headers))
	for i, h := range headers {
		base := h
		if strings.TrimSpace(base) == "" {
			base = "col"
		}
		counts[base]++
		if counts[base] == 1 {
			out[i] = base
		} else {
			out[i] = fmt.Sprintf("%s_%d", base, counts[base])
		}
	}
	return out
}

// Records pairs each data row with the raw header row (not the
// deduplicated form, which is display-only) and classifies each column.
// Fragments with fewer than two rows yield an empty list, never an error.
// Pairing stops at the shorter of header and row; trailing unmatched
// cells on either side are dropped.
func Records(fragment core.TableFragment) []core.Record {
	records := []core.Record{}
	if len(fragment) < 2 {
		return records
	}
	header := fragment[0]
	for _, row := range fragment[1:] {
		rec := core.Record{}
		n := len(header)
		if len(row) < n {
			n = len(row)
		}
		for i := 0; i < n; i++ {
			classify(rec, header[i], row[i])
		}
		records = append(records, rec)
	}
	return records
}

// classify assigns one header/value pair to its record field. Headers
// match case-insensitively after trimming. Unrecognized headers fold
// into "name"; when a row has several such columns the last one wins.
// That merge is lossy and kept on purpose — downstream consumers of the
// JSON export depend on the single-field shape (see DESIGN.md).
func classify(rec core.Record, header, value string) {
	key := strings.ToLower(strings.TrimSpace(header))
	for _, rule := range fieldRules {
		for _, alias := range rule.aliases {
			if key != alias {
				continue
			}
			if rule.field == "note" && value == "" {
				rec[rule.field] = nil
			} else {
				rec[rule.field] = Coerce(value)
			}
			return
		}
	}
	rec["name"] = value
}

// Coerce strips grouping commas and attempts an integer parse, so
// "4,947,807" becomes 4947807. Values that are not plain integers come
// back unchanged; this is best-effort normalization, not validation.
func Coerce(value string) any {
	n, err := strconv.Atoi(strings.ReplaceAll(value, ",", ""))
	if err != nil {
		return value
	}
	return n
}

// fitRow pads short rows with empty cells and drops cells beyond the
// header width, so every display row has exactly width columns.
func fitRow(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}
