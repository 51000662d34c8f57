package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const headerRowXLSX = 4

func renderXLSX(w io.Writer, d document) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := d.Sheet
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return fmt.Errorf("failed to create title style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E6E6E6"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetCellStr(sheet, "A1", d.Title); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", titleStyle); err != nil {
		return err
	}
	if err := f.SetCellStr(sheet, "A2", d.Subtitle); err != nil {
		return err
	}

	row := headerRowXLSX
	if err := setRow(f, sheet, row, d.Header); err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(d.Header), row)
	if err := f.SetCellStyle(sheet, first, last, boldStyle); err != nil {
		return err
	}

	for _, values := range d.Rows {
		row++
		if err := setRow(f, sheet, row, values); err != nil {
			return err
		}
	}

	row++ // blank line before the totals
	for _, total := range d.Footer {
		row++
		if err := setRow(f, sheet, row, total[:]); err != nil {
			return err
		}
		label, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellStyle(sheet, label, label, boldStyle); err != nil {
			return err
		}
	}

	for i, width := range d.Widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, 16*width); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
