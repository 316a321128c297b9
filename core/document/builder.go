// Package document assembles the per-document result from a parse result.
// Pages and tables are processed strictly in document order so page and
// table numbering — and the concatenated text output — stay stable and
// reproducible across runs on the same input.
package document

import (
	"fmt"

	"github.com/gaurav-prasanna/tabpipe/core"
	"github.com/gaurav-prasanna/tabpipe/core/split"
	"github.com/gaurav-prasanna/tabpipe/core/table"
)

// Builder turns parse results into document results.
type Builder struct {
	splitter   core.Splitter
	normalizer core.Normalizer
}

// New creates a Builder with the default splitter and normalizer.
func New() *Builder {
	return &Builder{
		splitter:   split.New(),
		normalizer: table.New(),
	}
}

// Build checks the parse status and processes every page chunk in order.
// A non-successful status returns a StatusError before any page is
// touched. Within a document, a malformed table degrades to an empty or
// partial view; it never aborts the remaining tables or pages.
func (b *Builder) Build(result *core.ParseResult) (*core.DocumentResult, error) {
	if result.Status != core.StatusSuccessful {
		return nil, &core.StatusError{Status: result.Status}
	}

	doc := &core.DocumentResult{Pages: make([]core.PageResult, 0, len(result.Chunks))}
	for i, chunk := range result.Chunks {
		page := core.PageResult{Page: i + 1, Markup: chunk.Content}

		text, fragments, err := b.splitter.Split(chunk.Content)
		if err != nil {
			return nil, fmt.Errorf("splitting page %d: %w", page.Page, err)
		}
		page.Text = text
		for _, fragment := range fragments {
			page.Tables = append(page.Tables, b.normalizer.Normalize(fragment))
		}

		doc.Pages = append(doc.Pages, page)
	}
	return doc, nil
}
