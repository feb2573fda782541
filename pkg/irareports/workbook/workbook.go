// Package workbook opens spreadsheet files as table.Sheet sources.
package workbook

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tulumbas/irareports/pkg/irareports/table"
)

// ErrSheetNotFound indicates the workbook has no sheet with the requested name.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrUnsupportedFormat indicates a file extension no backend can read.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// Book is an opened workbook. Close releases the underlying file.
type Book interface {
	SheetNames() []string
	Sheet(name string) (table.Sheet, error)
	Close() error
}

// Open opens path with the backend matching its extension:
// .xls files use the BIFF reader, .xlsx/.xlsm/.xltx/.xltm use excelize.
func Open(path string) (Book, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xls":
		return OpenXLS(path)
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return OpenXLSX(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
}

// bounds tracks the bottom-right non-empty cell of a sheet.
type bounds struct {
	lastRow int
	lastCol int
}

// add records the non-empty cells of the 1-based row.
func (b *bounds) add(row int, cols []string) {
	for c := len(cols) - 1; c >= 0; c-- {
		if cols[c] == "" {
			continue
		}
		if row > b.lastRow {
			b.lastRow = row
		}
		if c+1 > b.lastCol {
			b.lastCol = c + 1
		}
		return
	}
}
