package loader

import (
	"regexp"
	"time"

	"golang.org/x/text/cases"

	"github.com/tulumbas/irareports/pkg/irareports/models"
	"github.com/tulumbas/irareports/pkg/irareports/table"
	"github.com/tulumbas/irareports/pkg/irareports/workbook"
)

// channelSheetPattern matches sheet names such as "Первый канал - 2023-05-01".
var channelSheetPattern = regexp.MustCompile(`(?i)(.+) - (\d{4}-\d{2}-\d{2})`)

// ChannelOptions configures channel sheet loading.
type ChannelOptions struct {
	// DateLabel is the A1 text marking a sheet whose headers are on row 1.
	DateLabel string `yaml:"date_label" split_words:"true" validate:"required"`
	// Strict makes an unusable channel file abort the batch instead of being skipped.
	Strict bool `yaml:"strict" split_words:"true"`
	// Table holds the scan limits.
	Table table.TableOptions `yaml:"table" split_words:"true"`
}

// DefaultChannelOptions returns the layout of a channel airtime export.
func DefaultChannelOptions() ChannelOptions {
	return ChannelOptions{
		DateLabel: "Дата",
		Table:     table.DefaultTableOptions().WithMaxColumns(4),
	}
}

// ParseSheetName splits a channel sheet name into the channel and its yyyy-MM-dd token.
func ParseSheetName(name string) (channel, date string, ok bool) {
	m := channelSheetPattern.FindStringSubmatch(name)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// AirtimeBinder binds channel rows: field 0 is the date, 1 the time, 2 the code
// and 3 the duration. Rows without a date are absent.
type AirtimeBinder struct{}

// DefineHeaders implements table.Binder. Columns are addressed by position.
func (AirtimeBinder) DefineHeaders([]string) {}

// CreateInstance implements table.Binder. An unparsable date or duration leaves the
// zero value and the row is still produced.
func (AirtimeBinder) CreateInstance(row table.Row, _ int) (*models.AirtimeRecord, bool) {
	dateCell := row.Field(0)
	if dateCell.IsEmpty() {
		return nil, false
	}

	rec := &models.AirtimeRecord{
		Time: row.Field(1).String(),
		Code: row.Field(2).String(),
	}
	if d, err := dateCell.Time(); err == nil {
		rec.Date = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
	rec.SetDurationString(row.Field(3).String())
	return rec, true
}

// LoadChannel reads the first sheet of a channel export and joins its records to catalog.
// A workbook without sheets, or whose first sheet name does not carry a channel and date,
// is returned as a *SheetError wrapping ErrNoUsableSheet.
func LoadChannel(wb Workbook, path string, catalog models.Catalog, opts ChannelOptions) (*models.SourceFile, error) {
	names := wb.SheetNames()
	if len(names) == 0 {
		return nil, NewSheetError(path, "", ErrNoUsableSheet)
	}

	name := names[0]
	channel, date, ok := ParseSheetName(name)
	if !ok {
		return nil, NewSheetError(path, name, ErrNoUsableSheet)
	}

	sheet, err := wb.Sheet(name)
	if err != nil {
		return nil, NewSheetError(path, name, err)
	}

	headerRow, err := channelHeaderRow(sheet, opts.DateLabel)
	if err != nil {
		return nil, NewSheetError(path, name, err)
	}

	file := &models.SourceFile{
		Path:      path,
		SheetName: name,
		Channel:   channel,
		Date:      date,
	}
	for rec, err := range table.Read(sheet, table.Binder[*models.AirtimeRecord](AirtimeBinder{}), opts.Table, headerRow, 1) {
		if err != nil {
			return nil, NewSheetError(path, name, err)
		}
		rec.Info = catalog.Lookup(rec.Code)
		file.Records = append(file.Records, rec)
	}
	return file, nil
}

// LoadChannelFile opens path, loads its channel sheet and closes the file.
func LoadChannelFile(path string, catalog models.Catalog, opts ChannelOptions) (*models.SourceFile, error) {
	wb, err := workbook.Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	return LoadChannel(wb, path, catalog, opts)
}

// channelHeaderRow returns 1 when A1 holds label, otherwise 2.
func channelHeaderRow(sheet table.Sheet, label string) (int, error) {
	cell, err := sheet.Cell(1, 1)
	if err != nil {
		return 0, err
	}
	fold := cases.Fold()
	if fold.String(cell.String()) == fold.String(label) {
		return 1, nil
	}
	return 2, nil
}
