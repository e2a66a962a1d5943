package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/brdtrack/internal/domain"
	"github.com/go-pdf/fpdf"
)

const (
	pdfTitle     = "Projects Export"
	pageMargin   = 12.0 // mm
	cellPadding  = 1.4  // mm
	bodyFontSize = 8.0
	headFontSize = 9.0
	titleSize    = 14.0
	lineHeight   = 3.6 // mm, for the 8pt body font
)

// columnWeight gives the relative PDF width of each column.
func columnWeight(f domain.Field) float64 {
	switch f {
	case domain.FieldName, domain.FieldNotes:
		return 3.5
	case domain.FieldLinkBRD:
		return 2.5
	case domain.FieldBRDNo, domain.FieldPIC, domain.FieldStatus, domain.FieldPriority:
		return 1.2
	case domain.FieldNo:
		return 0.6
	default:
		return 1.0
	}
}

// PDFColumnWidths spreads usable across the canonical columns by weight.
func PDFColumnWidths(usable float64) []float64 {
	total := 0.0
	for _, col := range domain.Columns {
		total += columnWeight(col)
	}
	widths := make([]float64, len(domain.Columns))
	for i, col := range domain.Columns {
		widths[i] = columnWeight(col) / total * usable
	}
	return widths
}

// WritePDF renders records as a landscape A4 table with the header row
// repeated on every page.
func WritePDF(w io.Writer, records []*domain.Project) error {
	pdf := buildPDF(records)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	return nil
}

type pdfTable struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	widths []float64
	bottom float64
}

func buildPDF(records []*domain.Project) *fpdf.Fpdf {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.SetTitle(pdfTitle, true)
	pdf.SetDrawColor(209, 213, 219)
	pdf.SetTextColor(17, 24, 39)

	pageW, pageH := pdf.GetPageSize()
	t := &pdfTable{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		widths: PDFColumnWidths(pageW - 2*pageMargin),
		bottom: pageH - pageMargin,
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.CellFormat(0, 8, pdfTitle, "", 1, "L", false, 0, "")
	pdf.Ln(2)
	t.header()

	rows := Table(records)[1:]
	for _, row := range rows {
		t.row(row[:len(domain.Columns)], false)
	}
	return pdf
}

func (t *pdfTable) header() {
	head := make([]string, len(domain.Columns))
	for i, col := range domain.Columns {
		head[i] = string(col)
	}
	t.row(head, true)
}

// row draws one table row, starting a new page (and repeating the header)
// when it would cross the bottom margin.
func (t *pdfTable) row(cells []string, isHeader bool) {
	pdf := t.pdf
	if isHeader {
		pdf.SetFont("Helvetica", "B", headFontSize)
	} else {
		pdf.SetFont("Helvetica", "", bodyFontSize)
	}

	lines := make([][]string, len(cells))
	height := 0.0
	for i, text := range cells {
		lines[i] = t.split(text, t.widths[i]-2*cellPadding)
		height = max(height, float64(len(lines[i]))*lineHeight+2*cellPadding)
	}

	if !isHeader && pdf.GetY()+height > t.bottom {
		pdf.AddPage()
		t.header()
		pdf.SetFont("Helvetica", "", bodyFontSize)
	}

	x, y := pdf.GetX(), pdf.GetY()
	for i, cellLines := range lines {
		style := "D"
		if isHeader {
			pdf.SetFillColor(243, 244, 246)
			style = "FD"
		}
		pdf.Rect(x, y, t.widths[i], height, style)

		align := "L"
		if i == 0 {
			align = "C"
		}
		for n, line := range cellLines {
			pdf.SetXY(x+cellPadding, y+cellPadding+float64(n)*lineHeight)
			pdf.CellFormat(t.widths[i]-2*cellPadding, lineHeight, line, "", 0, align, false, 0, "")
		}
		x += t.widths[i]
	}
	pdf.SetXY(pageMargin, y+height)
}

// split wraps text to width, honouring embedded newlines.
func (t *pdfTable) split(text string, width float64) []string {
	var out []string
	for _, para := range strings.Split(t.tr(text), "\n") {
		if para == "" {
			out = append(out, "")
			continue
		}
		for _, l := range t.pdf.SplitLines([]byte(para), width) {
			out = append(out, string(l))
		}
	}
	if len(out) == 0 {
		out = []string{""}
	}
	return out
}
