// Package render: PDF renderer.
// Lays a guide out as a printable PDF using gofpdf: a title and diagnosis
// summary, then headings, numbered step cards, lists and paragraphs.
package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/selffix-ai/repairguide/core"
	"github.com/selffix-ai/repairguide/core/inline"
)

// pdfMarkers swaps decorative emoji for text the core PDF fonts can draw.
var pdfMarkers = strings.NewReplacer(
	inline.SafetyMarker, "(!)",
	inline.InfoMarker, "(i)",
	inline.ToolsMarker, "(tools)",
)

// PDFRenderer renders a guide as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts the guide into PDF bytes.
func (r *PDFRenderer) Render(guide core.Guide) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	write := func(s string) string { return tr(pdfMarkers.Replace(s)) }

	if title := guideTitle(guide.Meta); title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, write(title), "", "L", false)
		pdf.Ln(2)
	}
	if fields := summaryFields(guide.Meta); len(fields) > 0 {
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(100, 100, 100)
		for _, f := range fields {
			pdf.MultiCell(0, 5, write(f.label+": "+f.value), "", "L", false)
		}
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}

	for _, b := range guide.Blocks {
		switch b := b.(type) {
		case *core.Heading:
			renderHeading(pdf, write(core.PlainText(b.Text)), b.RenderLevel())
		case *core.BoldHeading:
			renderHeading(pdf, write(core.PlainText(b.Text)), 3)
		case *core.Step:
			label := strconv.Itoa(b.Number)
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "B", 10)
			pdf.SetFillColor(220, 252, 231)
			pdf.SetTextColor(21, 128, 61)
			pdf.CellFormat(10, 10, label, "", 0, "C", true, 0, "")
			pdf.SetTextColor(0, 0, 0)
			pdf.SetX(pdf.GetX() + 4)
			pdf.MultiCell(0, 5, write("Step "+label), "", "L", false)
			pdf.SetX(pdf.GetX() + 14)
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, write(core.PlainText(b.Text)), "", "L", false)
			pdf.Ln(3)
		case *core.BulletList:
			pdf.SetFont("Helvetica", "", 10)
			for _, item := range b.Items {
				pdf.MultiCell(0, 5, write("• "+core.PlainText(item)), "", "L", false)
			}
			pdf.Ln(3)
		case *core.NumberedList:
			pdf.SetFont("Helvetica", "", 10)
			for i, item := range b.Items {
				pdf.MultiCell(0, 5, write(fmt.Sprintf("%d. %s", i+1, core.PlainText(item))), "", "L", false)
			}
			pdf.Ln(3)
		case *core.Paragraph:
			pdf.SetFont("Helvetica", "", 10)
			for _, line := range b.Lines {
				pdf.MultiCell(0, 5, write(core.PlainText(line)), "", "L", false)
			}
			pdf.Ln(3)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, text, "", "L", false)
	pdf.Ln(2)
}
