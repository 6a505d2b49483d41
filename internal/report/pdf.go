package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"decision-analysis/internal/model"
)

// pdfColor is a small RGB triple, matching the teacher's PDF export's
// color-constant convention.
type pdfColor struct{ R, G, B int }

var (
	pdfColorDark   = pdfColor{30, 41, 59}
	pdfColorMedium = pdfColor{100, 116, 139}
	pdfColorLight  = pdfColor{148, 163, 184}
	pdfColorBg     = pdfColor{248, 250, 252}
	pdfColorLine   = pdfColor{226, 232, 240}
)

const (
	pdfMargin       = 18.0
	pdfBodyFontSize = 11.0
	pdfLineHeight   = 5.5
)

// pdfBuilder wraps gofpdf with the layout helpers this report needs.
type pdfBuilder struct {
	pdf          *gofpdf.Fpdf
	contentWidth float64
	leftMargin   float64
}

func newPDFBuilder() *pdfBuilder {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, 25)

	pageWidth, _ := pdf.GetPageSize()
	leftMargin, _, rightMargin, _ := pdf.GetMargins()

	return &pdfBuilder{
		pdf:          pdf,
		contentWidth: pageWidth - leftMargin - rightMargin,
		leftMargin:   leftMargin,
	}
}

func (b *pdfBuilder) setColor(c pdfColor)     { b.pdf.SetTextColor(c.R, c.G, c.B) }
func (b *pdfBuilder) setDrawColor(c pdfColor) { b.pdf.SetDrawColor(c.R, c.G, c.B) }
func (b *pdfBuilder) setFillColor(c pdfColor) { b.pdf.SetFillColor(c.R, c.G, c.B) }

func (b *pdfBuilder) drawHeader(url string) {
	headerHeight := 14.0
	b.setFillColor(pdfColorBg)
	b.pdf.Rect(0, 0, b.contentWidth+2*pdfMargin, headerHeight, "F")
	b.setDrawColor(pdfColorLine)
	b.pdf.Line(0, headerHeight, b.contentWidth+2*pdfMargin, headerHeight)

	b.pdf.SetXY(pdfMargin, 4)
	b.setColor(pdfColorMedium)
	b.pdf.SetFont("Arial", "", 9)
	b.pdf.CellFormat(b.contentWidth, 6, url, "", 1, "L", false, 0, "")
	b.pdf.Ln(8)
}

func (b *pdfBuilder) drawTitle() {
	b.setColor(pdfColorDark)
	b.pdf.SetFont("Arial", "B", 20)
	b.pdf.CellFormat(b.contentWidth, 10, "Decision Analysis Report", "", 1, "L", false, 0, "")
	b.pdf.Ln(6)
}

func (b *pdfBuilder) drawSectionTitle(title string) {
	b.pdf.Ln(6)
	b.setColor(pdfColorDark)
	b.pdf.SetFont("Arial", "B", 13)
	b.pdf.CellFormat(b.contentWidth, 7, title, "", 1, "L", false, 0, "")
	y := b.pdf.GetY() + 1
	b.setDrawColor(pdfColorLine)
	b.pdf.SetLineWidth(0.3)
	b.pdf.Line(b.leftMargin, y, b.leftMargin+50, y)
	b.pdf.Ln(4)
}

func (b *pdfBuilder) drawParagraph(text string) {
	if text == "" {
		text = "Not available for this analysis."
	}
	b.setColor(pdfColorDark)
	b.pdf.SetFont("Arial", "", pdfBodyFontSize)
	b.pdf.MultiCell(b.contentWidth, pdfLineHeight, text, "", "L", false)
	b.pdf.Ln(2)
}

func (b *pdfBuilder) drawFooter() {
	b.pdf.SetY(-15)
	b.setColor(pdfColorLight)
	b.pdf.SetFont("Arial", "I", 8)
	b.pdf.CellFormat(b.contentWidth, 5, "Directional diagnostic output. Not a guarantee of outcome.", "", 0, "C", false, 0, "")
}

// GeneratePDF renders a report's human-readable prose and section headers
// into a PDF, grounded on the teacher's section-title/paragraph drawing
// convention (spec.md §3.2 supplemented PDF export feature).
func GeneratePDF(url, humanReport string, sections model.ReportSections) (*bytes.Buffer, error) {
	b := newPDFBuilder()
	b.pdf.AddPage()
	b.drawHeader(url)
	b.drawTitle()

	titles := []string{
		"Executive Decision Summary",
		"Context Snapshot",
		"Decision Failure Breakdown",
		"What to Fix First",
		"Actionable Recommendations",
		"What This Will Improve",
		"Next Diagnostic Step",
	}
	for i, paragraph := range strings.Split(humanReport, "\n\n") {
		if i >= len(titles) {
			break
		}
		b.drawSectionTitle(titles[i])
		body := paragraph
		if idx := strings.Index(paragraph, "\n"); idx >= 0 {
			body = paragraph[idx+1:]
		}
		b.drawParagraph(body)
	}

	b.drawFooter()

	var buf bytes.Buffer
	if err := b.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return &buf, nil
}
