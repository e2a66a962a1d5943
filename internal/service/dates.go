package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"
	"github.com/xuri/excelize/v2"
)

const dayLayout = "2006-01-02"

// maxExcelSerial is 9999-12-31, the last date a workbook can hold.
const maxExcelSerial = 2958465

var dateParser = now.Config{
	TimeLocation: time.UTC,
	TimeFormats: []string{
		dayLayout,
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006/01/02",
		"2006/1/2",
		"2006-1-2",
		"01-02-06", // excelize renders built-in date format 14 this way
		"1/2/2006",
		"1/2/06",
		"2 January 2006",
		"2 Jan 2006",
		"Jan 2, 2006",
		"January 2, 2006",
	},
}

// ParseDate reads a date cell. Plain numbers are taken as workbook serial
// dates; everything else must match one of the accepted layouts.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial <= 0 || serial > maxExcelSerial {
			return time.Time{}, false
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return t.UTC(), true
	}
	t, err := dateParser.Parse(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
