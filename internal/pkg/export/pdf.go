package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

func renderPDF(w io.Writer, d document) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; accented labels need translating
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(d.Title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, tr(d.Title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(d.Subtitle), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	widths := columnWidths(pdf, d.Widths, len(d.Header))

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, title := range d.Header {
		pdf.CellFormat(widths[i], 7, tr(title), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, values := range d.Rows {
		for i, value := range values {
			align := "C"
			if i == 0 || i == len(values)-1 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, tr(value), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	for _, total := range d.Footer {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(50, 6, tr(total[0]), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, tr(total[1]), "", 1, "L", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

// columnWidths spreads the printable width over the columns by weight
func columnWidths(pdf *gofpdf.Fpdf, weights []float64, columns int) []float64 {
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right

	if len(weights) != columns {
		weights = make([]float64, columns)
		for i := range weights {
			weights[i] = 1
		}
	}

	var sum float64
	for _, w := range weights {
		sum += w
	}

	widths := make([]float64, columns)
	for i, w := range weights {
		widths[i] = usable * w / sum
	}
	return widths
}
