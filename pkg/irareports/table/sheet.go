// Package table reads header-driven rectangular regions of a worksheet into typed records.
package table

import (
	"errors"
	"time"
)

// ErrEmptyCell is returned by Cell.Time for a cell without content.
var ErrEmptyCell = errors.New("empty cell")

// Sheet is the read-only view of a worksheet the reader scans.
// Coordinates are 1-based.
type Sheet interface {
	// Name returns the worksheet name.
	Name() string
	// LastUsedCell returns the bottom-right populated cell, or (0, 0) for an empty sheet.
	LastUsedCell() (row, col int, err error)
	// Cell returns the cell at the given position. Cells outside the used range are empty.
	Cell(row, col int) (Cell, error)
}

// Cell is a single worksheet value.
type Cell interface {
	// IsEmpty reports whether the cell has no visible content.
	IsEmpty() bool
	// String returns the trimmed display text.
	String() string
	// Time interprets the cell as a date/time value.
	Time() (time.Time, error)
}

// Row gives a binder access to one data row of the scanned region.
type Row interface {
	// Field returns the cell at the 0-based offset from the region's left column.
	// Offsets outside the region yield an empty cell.
	Field(i int) Cell
	// Number returns the absolute 1-based sheet row.
	Number() int
}

type emptyCell struct{}

func (emptyCell) IsEmpty() bool            { return true }
func (emptyCell) String() string           { return "" }
func (emptyCell) Time() (time.Time, error) { return time.Time{}, ErrEmptyCell }
