// Package render — JSON renderer.
// Builds the structured tables export: one entry per detected table with
// 1-based page and per-page table numbers and the normalized record rows.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/tabpipe/core"
)

// JSONRenderer produces the structured tables export.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render collects every table in document order under a single "tables"
// key and marshals it with indentation.
func (r *JSONRenderer) Render(doc *core.DocumentResult) ([]byte, error) {
	export := core.TablesExport{Tables: []core.TableEntry{}}
	for _, page := range doc.Pages {
		for i, t := range page.Tables {
			export.Tables = append(export.Tables, core.TableEntry{
				Page:       page.Page,
				TableIndex: i + 1,
				Rows:       t.Records,
			})
		}
	}

	data, err := json.MarshalIndent(export, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshaling tables: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
