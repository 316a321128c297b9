// Package render — Markdown renderer.
// Converts each page's raw markup to Markdown using html-to-markdown,
// so the export keeps the tables inline rather than separating them.
package render

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/gaurav-prasanna/tabpipe/core"
)

// MarkdownRenderer converts page markup to Markdown, page by page.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render converts every page's retained markup and joins the pages under
// per-page headings.
func (r *MarkdownRenderer) Render(doc *core.DocumentResult) ([]byte, error) {
	var b strings.Builder
	for _, page := range doc.Pages {
		fmt.Fprintf(&b, "# Page %d\n\n", page.Page)
		markdown, err := htmltomarkdown.ConvertString(page.Markup)
		if err != nil {
			return nil, fmt.Errorf("converting page %d to markdown: %w", page.Page, err)
		}
		b.WriteString(strings.TrimSpace(markdown))
		b.WriteString("\n\n")
	}
	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
