package workbook

import (
	"errors"
	"fmt"
	"io"
	"os"

	xls "github.com/extrame/xls"

	"github.com/tulumbas/irareports/pkg/irareports/table"
)

// legacyCharsets are tried in order when opening BIFF files; older Russian exports
// store strings in windows-1251.
var legacyCharsets = []string{"windows-1251", "utf-8"}

// maxXLSColumns is the BIFF8 column limit, scanned when a row carries no ROW record.
const maxXLSColumns = 256

var errNoWorkbookStream = errors.New("no workbook stream")

// XLS is a legacy BIFF workbook. Sheets are read into memory on first access.
type XLS struct {
	wb     *xls.WorkBook
	closer io.Closer
	sheets map[string]*gridSheet
}

// OpenXLS opens an .xls workbook. The file stays open until Close.
func OpenXLS(path string) (*XLS, error) {
	var lastErr error
	for _, charset := range legacyCharsets {
		fh, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open workbook %s: %w", path, err)
		}
		wb, err := xls.OpenReader(fh, charset)
		if err == nil && wb == nil {
			err = errNoWorkbookStream
		}
		if err == nil {
			return &XLS{wb: wb, closer: fh, sheets: make(map[string]*gridSheet)}, nil
		}
		fh.Close()
		lastErr = err
	}
	return nil, fmt.Errorf("open workbook %s: %w", path, lastErr)
}

// SheetNames lists the sheets in workbook order.
func (b *XLS) SheetNames() []string {
	names := make([]string, 0, b.wb.NumSheets())
	for i := 0; i < b.wb.NumSheets(); i++ {
		if ws := b.wb.GetSheet(i); ws != nil {
			names = append(names, ws.Name)
		}
	}
	return names
}

// Sheet returns the named sheet.
func (b *XLS) Sheet(name string) (table.Sheet, error) {
	if s, ok := b.sheets[name]; ok {
		return s, nil
	}
	for i := 0; i < b.wb.NumSheets(); i++ {
		ws := b.wb.GetSheet(i)
		if ws == nil || ws.Name != name {
			continue
		}
		s := newGridSheet(name, readXLSRows(ws))
		b.sheets[name] = s
		return s, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, name)
}

// Close releases the workbook file.
func (b *XLS) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}

func readXLSRows(ws *xls.WorkSheet) [][]string {
	rows := make([][]string, 0, int(ws.MaxRow)+1)
	for i := 0; i <= int(ws.MaxRow); i++ {
		row := xlsRow(ws, i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		width := row.LastCol()
		if width == 0 {
			width = maxXLSColumns
		}
		cols := make([]string, width)
		for j := row.FirstCol(); j < width; j++ {
			cols[j] = row.Col(j)
		}
		for len(cols) > 0 && cols[len(cols)-1] == "" {
			cols = cols[:len(cols)-1]
		}
		rows = append(rows, cols)
	}
	return rows
}

// xlsRow returns row i of ws, or nil when the sheet stores nothing for it.
// WorkSheet.Row dereferences the missing entry instead of returning nil.
func xlsRow(ws *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return ws.Row(i)
}

// gridSheet serves cells from rows already held in memory.
type gridSheet struct {
	name   string
	rows   [][]string
	bounds bounds
}

func newGridSheet(name string, rows [][]string) *gridSheet {
	s := &gridSheet{name: name, rows: rows}
	for i, cols := range rows {
		s.bounds.add(i+1, cols)
	}
	return s
}

func (s *gridSheet) Name() string {
	return s.name
}

func (s *gridSheet) LastUsedCell() (int, int, error) {
	return s.bounds.lastRow, s.bounds.lastCol, nil
}

func (s *gridSheet) Cell(row, col int) (table.Cell, error) {
	if row < 1 || col < 1 {
		return nil, fmt.Errorf("invalid cell coordinates %d:%d", row, col)
	}
	if row > len(s.rows) || col > len(s.rows[row-1]) {
		return value{}, nil
	}
	text := s.rows[row-1][col-1]
	return value{text: text, raw: text}, nil
}
