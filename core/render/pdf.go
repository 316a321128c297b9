// Package render — PDF renderer.
// Produces a report PDF of the extracted content using gofpdf: one PDF
// page per source page, body text as paragraphs, tables as bordered
// cell grids below the text.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/tabpipe/core"
)

// pageWidth is the usable width in mm on an A4 page with default margins.
const pageWidth = 190.0

// PDFRenderer renders the document result as a PDF report.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render writes one PDF page per source page in document order.
func (r *PDFRenderer) Render(doc *core.DocumentResult) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)

	for _, page := range doc.Pages {
		pdf.AddPage()

		pdf.SetFont("Helvetica", "B", 14)
		pdf.MultiCell(0, 7, fmt.Sprintf("Page %d", page.Page), "", "L", false)
		pdf.Ln(3)

		pdf.SetFont("Helvetica", "", 10)
		for _, line := range strings.Split(page.Text, "\n") {
			if strings.TrimSpace(line) == "" {
				pdf.Ln(3)
				continue
			}
			pdf.MultiCell(0, 5, line, "", "L", false)
		}

		for _, t := range page.Tables {
			pdf.Ln(4)
			renderTable(pdf, t)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// renderTable draws one table as a bordered grid with equal column
// widths. Headerless tables are skipped.
func renderTable(pdf *gofpdf.Fpdf, t core.TableView) {
	if len(t.Header) == 0 {
		return
	}
	colWidth := pageWidth / float64(len(t.Header))

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	for _, h := range t.Header {
		pdf.CellFormat(colWidth, 6, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range t.Rows {
		for _, cell := range row {
			pdf.CellFormat(colWidth, 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}
