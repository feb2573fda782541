package report

import (
	"fmt"
	"path/filepath"
	"regexp"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/tulumbas/irareports/pkg/irareports/models"
)

var (
	unsafeFileChars  = regexp.MustCompile(`[\\/:. ;'"]`)
	unsafeSheetChars = regexp.MustCompile(`[?*\[\]]`)
)

// Layout of the monthly certificate.
const (
	titleCell      = "B2"
	monthsCell     = "F2"
	titleRow       = 2
	lastColumn     = 6
	firstSection   = 4
	tableColumn    = 2
	totalColumn    = 5
	dateNumFmt     = 14
	columnWidth    = 17
	maxSheetName   = 31
	titlePrefix    = "Эфирная справка рекламной компании "
	channelPrefix  = "Телеканал "
	totalLabel     = "ИТОГО"
	sectionGapRows = 2
)

var tableHeaders = []string{"Дата", "Время", "Ролик", "Хронометраж"}

// SanitizeFileName replaces characters unsafe in file and sheet names with '_'.
func SanitizeFileName(name string) string {
	return unsafeFileChars.ReplaceAllString(name, "_")
}

// OutputPath returns the report path for client inside dir.
func OutputPath(dir, client string) string {
	return filepath.Join(dir, SanitizeFileName(client)+".xlsx")
}

// sheetTitle makes a valid worksheet name from a client name.
func sheetTitle(client string) string {
	name := unsafeSheetChars.ReplaceAllString(SanitizeFileName(client), "_")
	if utf8.RuneCountInString(name) > maxSheetName {
		name = string([]rune(name)[:maxSheetName])
	}
	if name == "" {
		name = "Sheet1"
	}
	return name
}

// Writer renders client reports as xlsx workbooks.
type Writer struct {
	Format Format
}

// NewWriter creates a Writer using f.
func NewWriter(f Format) *Writer {
	return &Writer{Format: f}
}

// Write renders r into a new workbook saved at path.
func (w *Writer) Write(r *models.ClientReport, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetTitle(r.Client)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet %q: %w", sheet, err)
	}

	st, err := newStyles(f)
	if err != nil {
		return err
	}
	if err := w.layoutColumns(f, sheet, st); err != nil {
		return err
	}

	if err := setStyled(f, sheet, titleCell, titlePrefix+r.Client, st.title); err != nil {
		return err
	}

	row, lastRow := firstSection, titleRow
	for _, section := range r.Sections {
		row, err = w.writeSection(f, sheet, st, row, section)
		if err != nil {
			return fmt.Errorf("channel %q: %w", section.Channel, err)
		}
		lastRow = row - sectionGapRows
	}

	if len(r.Sections) > 0 {
		months := w.Format.MonthRange(r.MinDate, r.MaxDate)
		if err := setStyled(f, sheet, monthsCell, months, st.title); err != nil {
			return err
		}
	}

	if err := setPrintArea(f, sheet, models.Region{R1: 1, C1: 1, R2: lastRow, C2: lastColumn}); err != nil {
		return fmt.Errorf("set print area: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report %s: %w", path, err)
	}
	return nil
}

func (w *Writer) layoutColumns(f *excelize.File, sheet string, st *styles) error {
	if err := f.SetColWidth(sheet, "B", "E", columnWidth); err != nil {
		return err
	}
	if err := f.SetColStyle(sheet, "B:E", st.centered); err != nil {
		return err
	}
	return f.SetColStyle(sheet, "B", st.dateColumn)
}

// writeSection writes one channel block starting at row and returns the first row of the next block.
func (w *Writer) writeSection(f *excelize.File, sheet string, st *styles, row int, s models.ChannelSection) (int, error) {
	if err := setStyled(f, sheet, axis(tableColumn, row), channelPrefix+s.Channel, st.channel); err != nil {
		return 0, err
	}
	row++

	for i, h := range tableHeaders {
		if err := setStyled(f, sheet, axis(tableColumn+i, row), h, st.header); err != nil {
			return 0, err
		}
	}
	row++

	for _, rec := range s.Records {
		if !rec.Date.IsZero() {
			if err := f.SetCellValue(sheet, axis(tableColumn, row), rec.Date); err != nil {
				return 0, err
			}
		}
		values := []string{rec.Time, rec.Code, rec.DurationString}
		for i, v := range values {
			if err := f.SetCellStr(sheet, axis(tableColumn+1+i, row), v); err != nil {
				return 0, err
			}
		}
		if err := f.SetCellStyle(sheet, axis(tableColumn, row), axis(tableColumn, row), st.dateCell); err != nil {
			return 0, err
		}
		if err := f.SetCellStyle(sheet, axis(tableColumn+1, row), axis(totalColumn, row), st.cell); err != nil {
			return 0, err
		}
		row++
	}

	if err := f.SetCellStr(sheet, axis(1, row), totalLabel); err != nil {
		return 0, err
	}
	if err := f.SetCellStr(sheet, axis(totalColumn, row), w.Format.Seconds(s.TotalSeconds)); err != nil {
		return 0, err
	}
	if err := f.SetCellStyle(sheet, axis(1, row), axis(totalColumn, row), st.total); err != nil {
		return 0, err
	}

	return row + sectionGapRows, nil
}

func setStyled(f *excelize.File, sheet, cell, value string, style int) error {
	if err := f.SetCellStr(sheet, cell, value); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell, cell, style)
}

func axis(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

type styles struct {
	title      int
	channel    int
	header     int
	total      int
	cell       int
	dateCell   int
	centered   int
	dateColumn int
}

func thinBorders() []excelize.Border {
	var borders []excelize.Border
	for _, side := range []string{"left", "top", "right", "bottom"} {
		borders = append(borders, excelize.Border{Type: side, Color: "000000", Style: 1})
	}
	return borders
}

func newStyles(f *excelize.File) (*styles, error) {
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	left := &excelize.Alignment{Horizontal: "left", Vertical: "center"}
	bold := func(size float64) *excelize.Font { return &excelize.Font{Bold: true, Size: size} }

	st := &styles{}
	defs := []struct {
		target *int
		style  *excelize.Style
	}{
		{&st.title, &excelize.Style{Font: bold(14), Alignment: left}},
		{&st.channel, &excelize.Style{Font: bold(18), Alignment: left}},
		{&st.header, &excelize.Style{Font: bold(11), Alignment: center, Border: thinBorders()}},
		{&st.total, &excelize.Style{Font: bold(11), Alignment: center}},
		{&st.cell, &excelize.Style{Alignment: center, Border: thinBorders()}},
		{&st.dateCell, &excelize.Style{Alignment: center, Border: thinBorders(), NumFmt: dateNumFmt}},
		{&st.centered, &excelize.Style{Alignment: center}},
		{&st.dateColumn, &excelize.Style{Alignment: center, NumFmt: dateNumFmt}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return nil, fmt.Errorf("create style: %w", err)
		}
		*d.target = id
	}
	return st, nil
}
