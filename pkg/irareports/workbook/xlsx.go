package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tulumbas/irareports/pkg/irareports/table"
)

// XLSX is an Office Open XML workbook read through excelize.
type XLSX struct {
	f        *excelize.File
	date1904 bool
}

// OpenXLSX opens an .xlsx workbook.
func OpenXLSX(path string) (*XLSX, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return NewXLSX(f), nil
}

// NewXLSX wraps an already opened excelize file. Close closes f.
func NewXLSX(f *excelize.File) *XLSX {
	b := &XLSX{f: f}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		b.date1904 = *props.Date1904
	}
	return b
}

// SheetNames lists the sheets in workbook order.
func (b *XLSX) SheetNames() []string {
	return b.f.GetSheetList()
}

// Sheet returns the named sheet.
func (b *XLSX) Sheet(name string) (table.Sheet, error) {
	idx, err := b.f.GetSheetIndex(name)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, name)
	}
	return &xlsxSheet{f: b.f, name: name, date1904: b.date1904}, nil
}

// Close releases the workbook.
func (b *XLSX) Close() error {
	return b.f.Close()
}

type xlsxSheet struct {
	f        *excelize.File
	name     string
	date1904 bool
	bounds   *bounds
}

func (s *xlsxSheet) Name() string {
	return s.name
}

// LastUsedCell streams the sheet once and caches the bottom-right non-empty cell.
func (s *xlsxSheet) LastUsedCell() (int, int, error) {
	if s.bounds != nil {
		return s.bounds.lastRow, s.bounds.lastCol, nil
	}

	rows, err := s.f.Rows(s.name)
	if err != nil {
		return 0, 0, err
	}
	defer rows.Close()

	b := &bounds{}
	rowNum := 0
	for rows.Next() {
		rowNum++
		cols, err := rows.Columns()
		if err != nil {
			return 0, 0, fmt.Errorf("row %d: %w", rowNum, err)
		}
		b.add(rowNum, cols)
	}
	if err := rows.Error(); err != nil {
		return 0, 0, err
	}

	s.bounds = b
	return b.lastRow, b.lastCol, nil
}

func (s *xlsxSheet) Cell(row, col int) (table.Cell, error) {
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return nil, err
	}
	text, err := s.f.GetCellValue(s.name, axis)
	if err != nil {
		return nil, err
	}
	raw, err := s.f.GetCellValue(s.name, axis, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	return value{text: text, raw: raw, date1904: s.date1904}, nil
}
