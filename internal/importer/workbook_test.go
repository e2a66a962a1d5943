package importer

import (
	"bytes"
	"testing"
	"time"

	"github.com/alexanderramin/brdtrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildUpload(t *testing.T, sheets map[string][][]any, order ...string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName(f.GetSheetName(0), name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			vals := row
			require.NoError(t, f.SetSheetRow(name, cell, &vals))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		raw     string
		want    domain.ImportMode
		wantErr bool
	}{
		{"", domain.ImportAppend, false},
		{"append", domain.ImportAppend, false},
		{" REPLACE ", domain.ImportReplace, false},
		{"merge", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.raw)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidMode, tt.raw)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestParse_MapsLooseHeaders(t *testing.T) {
	upload := buildUpload(t, map[string][][]any{
		"Sheet1": {
			{"no", "brd_no", "project / fitur", "LINK BRD", "pic", "contact_person", "status", "Priority", "tanggal_submit", "Tanggal Completed", "catatan", "Extra"},
			{99, "BRD-7", "Portal", "https://x", "Ana", "Budi", "on-progress", " High ", "2024-01-10", "", "first", "ignored"},
			{nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil},
			{3, "BRD-8", "Mobile", "", "", "", "done", "Whenever", "", "2024-02-01", "", ""},
		},
	}, "Sheet1")

	records, err := Parse(upload, "")
	require.NoError(t, err)
	require.Len(t, records, 2)

	a := records[0]
	assert.Equal(t, 1, a.No, "uploaded sequence numbers are ignored")
	assert.Equal(t, "BRD-7", a.BRDNo)
	assert.Equal(t, "https://x", a.LinkBRD)
	assert.Equal(t, "Ana", a.PIC)
	assert.Equal(t, "Budi", a.ContactPerson)
	assert.Equal(t, domain.StatusInProgress, a.Status)
	assert.Equal(t, "High", a.Priority)
	assert.Equal(t, "2024-01-10", a.SubmitDate)
	assert.Equal(t, "first", a.Notes)

	b := records[1]
	assert.Equal(t, 2, b.No)
	assert.Equal(t, domain.StatusCompleted, b.Status)
	assert.Equal(t, "Whenever", b.Priority)

	assert.NotEmpty(t, a.UID)
	assert.NotEqual(t, a.UID, b.UID)
}

func TestParse_DateCellsBecomeISO(t *testing.T) {
	upload := buildUpload(t, map[string][][]any{
		"S": {
			{"BRD No", "Project/Fitur", "Tanggal Submit", "Tanggal Completed", "Catatan"},
			{"B1", "Dated", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), "2024-02-01", 45306},
			{"B2", "Serial", 45337, nil, "keep"},
		},
	}, "S")

	records, err := Parse(upload, "")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2024-01-15", records[0].SubmitDate)
	assert.Equal(t, "2024-02-01", records[0].CompletedDate, "text dates are kept as typed")
	assert.Equal(t, "45306", records[0].Notes, "only date columns are converted")
	assert.Equal(t, "2024-02-15", records[1].SubmitDate)
	assert.Empty(t, records[1].CompletedDate)
}

func TestParse_ExactHeaders(t *testing.T) {
	upload := buildUpload(t, map[string][][]any{
		"S": {{"BRD No", "Project/Fitur"}, {"B1", "Name"}},
	}, "S")
	records, err := Parse(upload, "")
	require.NoError(t, err)
	assert.Equal(t, "Name", records[0].Name)
}

func TestParse_SelectsSheet(t *testing.T) {
	sheets := map[string][][]any{
		"Cover": {{"nothing here"}},
		"Data":  {{"BRD No", "Project/Fitur"}, {"B1", "One"}, {"B2", "Two"}},
	}

	byName, err := Parse(buildUpload(t, sheets, "Cover", "Data"), "Data")
	require.NoError(t, err)
	assert.Len(t, byName, 2)

	byIndex, err := Parse(buildUpload(t, sheets, "Cover", "Data"), "1")
	require.NoError(t, err)
	assert.Len(t, byIndex, 2)

	_, err = Parse(buildUpload(t, sheets, "Cover", "Data"), "Missing")
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestParse_NoRows(t *testing.T) {
	upload := buildUpload(t, map[string][][]any{
		"S": {{"BRD No", "Project/Fitur"}, {"", ""}},
	}, "S")

	_, err := Parse(upload, "")
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestParse_NotAWorkbook(t *testing.T) {
	_, err := Parse(bytes.NewBufferString("plain text"), "")
	assert.ErrorIs(t, err, ErrUnreadable)
}
