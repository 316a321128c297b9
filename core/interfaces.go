// Package core defines the pipeline types and interfaces for TabPipe.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"
	"fmt"
)

// StatusSuccessful is the terminal parse status that allows processing
// to begin. Any other terminal status stops the document cold.
const StatusSuccessful = "successful"

// PageChunk is one page's raw markup as returned by the parsing service:
// HTML tables embedded in otherwise plain text.
type PageChunk struct {
	PageNumber int
	Content    string
}

// ParseResult is the remote service's result for one document.
type ParseResult struct {
	Status string
	Chunks []PageChunk
}

// StatusError reports a parse job that finished in a non-successful state.
type StatusError struct {
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("parsing failed with status %q", e.Status)
}

// TableFragment is one extracted table: rows of trimmed cell strings in
// document order. Rows are not forced to be rectangular; the first row is
// the header row by convention when present.
type TableFragment [][]string

// Record is one normalized table row. Recognized keys are "year_2024",
// "year_2023", "note", and "name"; numeric cells are coerced to int where
// possible and left as strings otherwise.
type Record map[string]any

// TableView holds the derived views of one table: deduplicated display
// headers, data rows sized to the header width, and the record list.
type TableView struct {
	Header  []string
	Rows    [][]string
	Records []Record
}

// PageResult holds one page's plain text and its tables in document order.
// The raw markup is retained for renders that work from the page source.
type PageResult struct {
	Page   int
	Text   string
	Tables []TableView
	Markup string
}

// DocumentResult is the full per-document aggregate. It is built once per
// run and treated as immutable afterwards, so it can be rendered any
// number of times without another round trip to the parsing service.
type DocumentResult struct {
	Pages []PageResult
}

// TableEntry is one table in the structured JSON export.
type TableEntry struct {
	Page       int      `json:"page"`
	TableIndex int      `json:"table_index"`
	Rows       []Record `json:"rows"`
}

// TablesExport is the root object of the structured JSON export.
type TablesExport struct {
	Tables []TableEntry `json:"tables"`
}

// Parser uploads a document to the parsing service and runs a parse job
// to completion.
type Parser interface {
	Upload(ctx context.Context, path string) (string, error)
	Parse(ctx context.Context, fileID string) (*ParseResult, error)
}

// Splitter separates one page's raw markup into plain text and its table
// fragments, in document order.
type Splitter interface {
	Split(markup string) (string, []TableFragment, error)
}

// Normalizer converts one table fragment into its derived views.
type Normalizer interface {
	Normalize(fragment TableFragment) TableView
}

// Renderer converts a document result into a final output format.
type Renderer interface {
	Render(doc *DocumentResult) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".txt").
	Extension() string
}
