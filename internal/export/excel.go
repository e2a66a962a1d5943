// Package export renders the dataset as downloadable workbooks and PDFs.
package export

import (
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/alexanderramin/brdtrack/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	SheetName = "Projects"

	minColWidth = 8
	maxColWidth = 120
	// wrapThreshold is the rune length above which a cell wraps.
	wrapThreshold = 40
	// wideFactor inflates the width of text containing runes beyond Latin-1.
	wideFactor = 1.2
)

// Table renders records as a header row plus one row per record, in the
// persisted column order, with sequence numbers recomputed.
func Table(records []*domain.Project) [][]string {
	rows := make([][]string, 0, len(records)+1)
	header := make([]string, len(domain.SheetColumns))
	for i, col := range domain.SheetColumns {
		header[i] = string(col)
	}
	rows = append(rows, header)

	for i, p := range records {
		row := make([]string, len(domain.SheetColumns))
		for j, col := range domain.SheetColumns {
			if col == domain.FieldNo {
				row[j] = strconv.Itoa(i + 1)
				continue
			}
			row[j] = p.Get(col)
		}
		rows = append(rows, row)
	}
	return rows
}

// TextWidth is the display length of s in character units.
func TextWidth(s string) int {
	n := utf8.RuneCountInString(s)
	for _, r := range s {
		if r > 0xFF {
			return int(float64(n) * wideFactor)
		}
	}
	return n
}

// ColumnWidths returns one width per column: the widest cell plus two,
// clamped to [8, 120].
func ColumnWidths(rows [][]string) []float64 {
	var widest []int
	for _, row := range rows {
		for i, cell := range row {
			for len(widest) <= i {
				widest = append(widest, 0)
			}
			widest[i] = max(widest[i], TextWidth(cell))
		}
	}
	widths := make([]float64, len(widest))
	for i, w := range widest {
		widths[i] = float64(min(max(minColWidth, w+2), maxColWidth))
	}
	return widths
}

// WriteExcel writes records as an .xlsx workbook to w.
func WriteExcel(w io.Writer, records []*domain.Project) error {
	f, err := buildWorkbook(records)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func buildWorkbook(records []*domain.Project) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	top, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{Vertical: "top"}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating cell style: %w", err)
	}
	wrapped, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{Vertical: "top", WrapText: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating wrap style: %w", err)
	}

	rows := Table(records)
	for r, row := range rows {
		for c, text := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				f.Close()
				return nil, err
			}
			var value any = text
			if r > 0 && c == 0 {
				value = r
			}
			if err := f.SetCellValue(SheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("writing %s: %w", cell, err)
			}
			style := top
			if utf8.RuneCountInString(text) > wrapThreshold {
				style = wrapped
			}
			if err := f.SetCellStyle(SheetName, cell, cell, style); err != nil {
				f.Close()
				return nil, fmt.Errorf("styling %s: %w", cell, err)
			}
		}
	}

	for i, width := range ColumnWidths(rows) {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			f.Close()
			return nil, fmt.Errorf("sizing column %s: %w", col, err)
		}
	}
	return f, nil
}
