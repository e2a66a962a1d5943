package repository

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/brdtrack/internal/domain"
	"github.com/alexanderramin/brdtrack/internal/importer"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet every dataset workbook is written to.
const SheetName = "Projects"

// Saver persists a workbook at path. The store routes every write through
// one so tests can inject failures.
type Saver func(f *excelize.File, path string) error

// SaveAs is the default Saver.
func SaveAs(f *excelize.File, path string) error {
	return f.SaveAs(path)
}

// newWorkbook renders records into a fresh workbook using the persisted
// column layout.
func newWorkbook(records []*domain.Project) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]interface{}, len(domain.SheetColumns))
	for i, col := range domain.SheetColumns {
		header[i] = string(col)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing header row: %w", err)
	}

	for i, p := range records {
		row := make([]interface{}, len(domain.SheetColumns))
		for j, col := range domain.SheetColumns {
			if col == domain.FieldNo {
				row[j] = p.No
				continue
			}
			row[j] = p.Get(col)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("addressing row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return f, nil
}

// readWorkbook reads every record from the first sheet of the workbook at
// path. Columns are matched by exact header text; absent columns stay
// empty and unknown columns are ignored. Rows with no values are skipped.
func readWorkbook(path string) ([]*domain.Project, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := importer.ReadRows(f, sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	return recordsFromRows(rows), nil
}

func recordsFromRows(rows [][]string) []*domain.Project {
	records := make([]*domain.Project, 0)
	if len(rows) == 0 {
		return records
	}

	colIndex := make(map[domain.Field]int)
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		for _, col := range domain.SheetColumns {
			if h == string(col) {
				if _, seen := colIndex[col]; !seen {
					colIndex[col] = i
				}
				break
			}
		}
	}

	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		p := &domain.Project{}
		for col, i := range colIndex {
			if i < len(row) {
				p.Set(col, row[i])
			}
		}
		records = append(records, p)
	}
	return records
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
