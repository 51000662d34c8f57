// Package export renders timesheet and payroll reports as PDF or XLSX
// documents with Brazilian formatting.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrUnsupportedFormat = errors.New("unsupported export format: use pdf or xlsx")

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "pdf" and "xlsx" in any case.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (f Format) Extension() string {
	return "." + string(f)
}

// document is the layout shared by both renderers
type document struct {
	Title    string
	Subtitle string
	Sheet    string
	Header   []string
	Rows     [][]string
	Footer   [][2]string // label, value
	Widths   []float64   // relative column widths
}

func (d document) render(w io.Writer, format Format) error {
	switch format {
	case FormatPDF:
		return renderPDF(w, d)
	case FormatXLSX:
		return renderXLSX(w, d)
	}
	return ErrUnsupportedFormat
}
