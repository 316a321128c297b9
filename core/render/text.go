// Package render provides output renderers for the TabPipe pipeline.
// This file implements the plain-text renderer: page texts joined with
// page-boundary markers, tables omitted entirely.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/tabpipe/core"
)

// writePageHeader writes the page-boundary marker shared by the text
// renderers: "\n\n===== PAGE {n} =====\n\n".
func writePageHeader(b *strings.Builder, page int) {
	fmt.Fprintf(b, "\n\n===== PAGE %d =====\n\n", page)
}

// TextRenderer writes each page's extracted text behind its page marker.
type TextRenderer struct{}

// NewTextRenderer creates a TextRenderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// Render concatenates the pages in document order.
func (r *TextRenderer) Render(doc *core.DocumentResult) ([]byte, error) {
	var b strings.Builder
	for _, page := range doc.Pages {
		writePageHeader(&b, page.Page)
		b.WriteString(page.Text)
		b.WriteString("\n\n")
	}
	return []byte(b.String()), nil
}

// Extension returns the file extension for plain-text output.
func (r *TextRenderer) Extension() string {
	return ".txt"
}
