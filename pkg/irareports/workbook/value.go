package workbook

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tulumbas/irareports/pkg/irareports/table"
)

// dateLayouts are the text forms accepted for date cells, day-first as exported by
// Russian-locale tools, plus excelize's default rendering of number format 14.
var dateLayouts = []string{
	"02.01.2006",
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"02.01.06",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"01-02-06",
	"02/01/2006",
	time.RFC3339,
}

// value is a cell with its display text and raw stored value.
type value struct {
	text     string
	raw      string
	date1904 bool
}

func (v value) IsEmpty() bool {
	return strings.TrimSpace(v.text) == ""
}

func (v value) String() string {
	return strings.TrimSpace(v.text)
}

func (v value) Time() (time.Time, error) {
	return ParseTime(v.text, v.raw, v.date1904)
}

// ParseTime interprets a cell as a date/time.
// A numeric raw value is an Excel serial date; otherwise the text is matched
// against common layouts.
func ParseTime(text, raw string, date1904 bool) (time.Time, error) {
	s := strings.TrimSpace(text)
	r := strings.TrimSpace(raw)
	if s == "" && r == "" {
		return time.Time{}, table.ErrEmptyCell
	}

	if r != "" {
		if serial, err := strconv.ParseFloat(r, 64); err == nil && serial > 0 {
			return excelize.ExcelDateToTime(serial, date1904)
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		return excelize.ExcelDateToTime(serial, date1904)
	}

	return time.Time{}, fmt.Errorf("cannot parse date: %q", text)
}

var _ table.Cell = value{}
