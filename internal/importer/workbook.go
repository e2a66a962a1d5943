// Package importer turns an uploaded spreadsheet into project records.
package importer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alexanderramin/brdtrack/internal/domain"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

var (
	ErrUnreadable  = errors.New("failed to read excel")
	ErrNoRows      = errors.New("no rows found in uploaded file")
	ErrInvalidMode = errors.New("invalid mode")
)

// ParseMode accepts "append" or "replace" in any case. An empty value
// means append.
func ParseMode(raw string) (domain.ImportMode, error) {
	switch m := domain.ImportMode(strings.ToLower(strings.TrimSpace(raw))); m {
	case "":
		return domain.ImportAppend, nil
	case domain.ImportAppend, domain.ImportReplace:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, raw)
	}
}

// Parse reads one sheet of the workbook in r. sheet is a sheet name or a
// zero-based index; empty selects the first sheet. Headers are matched to
// the canonical columns by HeaderKey, the sequence column is ignored and
// every row gets a fresh uid.
func Parse(r io.Reader, sheet string) ([]*domain.Project, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	name, err := selectSheet(f.GetSheetList(), sheet)
	if err != nil {
		return nil, err
	}
	rows, err := ReadRows(f, name)
	if err != nil {
		return nil, fmt.Errorf("%w: reading sheet %q: %v", ErrUnreadable, name, err)
	}

	records := Convert(rows)
	if len(records) == 0 {
		return nil, ErrNoRows
	}
	return records, nil
}

// Convert maps header-first rows to records. Blank rows are skipped.
func Convert(rows [][]string) []*domain.Project {
	records := make([]*domain.Project, 0)
	if len(rows) == 0 {
		return records
	}

	mapped := mapHeaders(rows[0])
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		p := &domain.Project{Status: domain.StatusNew}
		for col, i := range mapped {
			if i < len(row) {
				p.Set(col, strings.TrimSpace(row[i]))
			}
		}
		p.UID = uuid.New().String()
		records = append(records, p)
	}
	domain.Renumber(records)
	return records
}

// mapHeaders returns, for each canonical column present, the index of the
// first uploaded header whose HeaderKey matches it.
func mapHeaders(header []string) map[domain.Field]int {
	want := make(map[string]domain.Field, len(domain.Columns))
	for _, col := range domain.Columns {
		if col == domain.FieldNo {
			continue
		}
		want[domain.HeaderKey(string(col))] = col
	}

	mapped := make(map[domain.Field]int)
	for i, h := range header {
		col, ok := want[domain.HeaderKey(h)]
		if !ok {
			continue
		}
		if _, seen := mapped[col]; !seen {
			mapped[col] = i
		}
	}
	return mapped
}

func selectSheet(sheets []string, want string) (string, error) {
	if len(sheets) == 0 {
		return "", fmt.Errorf("%w: workbook has no sheets", ErrUnreadable)
	}
	want = strings.TrimSpace(want)
	if want == "" {
		return sheets[0], nil
	}
	for _, s := range sheets {
		if s == want {
			return s, nil
		}
	}
	if idx, err := strconv.Atoi(want); err == nil && idx >= 0 && idx < len(sheets) {
		return sheets[idx], nil
	}
	return "", fmt.Errorf("%w: worksheet %q not found", ErrUnreadable, want)
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
