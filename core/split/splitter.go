// Package split implements the Splitter interface.
// It separates one page's raw markup into two streams:
//  1. The embedded <table> elements, extracted into row/cell fragments
//     in document order
//  2. The remaining narrative text, with the tables (and script noise)
//     removed so cell content never leaks into the prose
package split

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/tabpipe/core"
)

// noiseSelectors are elements removed before text extraction. They carry
// no narrative content.
var noiseSelectors = []string{"script", "style", "noscript"}

// MarkupSplitter partitions page markup into plain text and table fragments.
type MarkupSplitter struct{}

// New creates a MarkupSplitter.
func New() *MarkupSplitter {
	return &MarkupSplitter{}
}

// Split parses the markup, extracts every <table> in document order, then
// removes them from the tree and collects the remaining text. A page with
// zero tables or no text returns empty results, not an error.
func (s *MarkupSplitter) Split(markup string) (string, []core.TableFragment, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", nil, fmt.Errorf("parsing markup: %w", err)
	}

	tables := doc.Find("table")

	fragments := make([]core.TableFragment, 0, tables.Length())
	tables.Each(func(_ int, table *goquery.Selection) {
		fragments = append(fragments, extractFragment(table))
	})

	// Remove tables before reading text so their cells never show up as
	// unstructured noise in the prose stream.
	tables.Remove()
	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	return extractText(doc), fragments, nil
}

// extractFragment walks a table's rows and cells in order, trimming each
// cell's text. Row lengths are passed through as-is; ragged rows are the
// normalizer's concern.
func extractFragment(table *goquery.Selection) core.TableFragment {
	var fragment core.TableFragment
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		var cells []string
		row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		fragment = append(fragment, cells)
	})
	return fragment
}

// extractText walks the remaining tree collecting trimmed text nodes,
// joining the non-empty ones with newlines. This normalizes block
// boundaries to single newline separators.
func extractText(doc *goquery.Document) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, root := range doc.Nodes {
		walk(root)
	}
	return strings.Join(parts, "\n")
}
