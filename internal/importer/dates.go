package importer

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/brdtrack/internal/domain"
	"github.com/xuri/excelize/v2"
)

// lastSerial is 9999-12-31.
const lastSerial = 2958465

// ReadRows returns the sheet's rows as display text, except that numeric
// cells under a date column are written as 2006-01-02. excelize renders
// date-styled cells with the sheet's own number format, which drops the
// century for the built-in short date.
func ReadRows(f *excelize.File, sheet string) ([][]string, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return rows, nil
	}

	dateCols := make([]int, 0, 2)
	for i, h := range rows[0] {
		switch domain.HeaderKey(h) {
		case domain.HeaderKey(string(domain.FieldSubmitDate)), domain.HeaderKey(string(domain.FieldCompletedDate)):
			dateCols = append(dateCols, i)
		}
	}
	if len(dateCols) == 0 {
		return rows, nil
	}

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	for r := 1; r < len(rows) && r < len(raw); r++ {
		for _, c := range dateCols {
			if c >= len(rows[r]) || c >= len(raw[r]) {
				continue
			}
			if iso, ok := serialDate(raw[r][c]); ok {
				rows[r][c] = iso
			}
		}
	}
	return rows, nil
}

func serialDate(v string) (string, bool) {
	serial, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || serial <= 0 || serial > lastSerial {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}
