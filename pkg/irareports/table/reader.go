package table

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/tulumbas/irareports/pkg/irareports/models"
)

// ErrInvalidStart indicates a start row or column below 1.
var ErrInvalidStart = errors.New("start row and column must be positive")

// ErrConsumed is yielded when a sequence returned by Read is ranged over a second time.
var ErrConsumed = errors.New("table sequence already consumed")

// TableOptions holds the scan limits of a read.
type TableOptions struct {
	// MaxColumns caps the column span measured from the start column.
	MaxColumns int `yaml:"max_columns" split_words:"true" validate:"gte=0"`
	// MaxRows caps the row span measured from the start (header) row.
	MaxRows int `yaml:"max_rows" split_words:"true" validate:"gte=0"`
	// SkipEmptyRows is the number of consecutive absent rows tolerated before the read stops.
	SkipEmptyRows int `yaml:"skip_empty_rows" split_words:"true" validate:"gte=0"`
	// ContiguousHeaders ends header discovery at the first empty header cell.
	ContiguousHeaders bool `yaml:"contiguous_headers" split_words:"true"`
}

// DefaultTableOptions returns the default scan limits.
func DefaultTableOptions() TableOptions {
	return TableOptions{
		MaxColumns:    200,
		MaxRows:       60000,
		SkipEmptyRows: 1,
	}
}

// WithMaxColumns returns a copy of o with MaxColumns set to n.
func (o TableOptions) WithMaxColumns(n int) TableOptions {
	o.MaxColumns = n
	return o
}

// ScanRegion computes the region a read starting at (startRow, startColumn) covers.
// It returns false when the sheet has no data at or below-right of the start.
func ScanRegion(sheet Sheet, opts TableOptions, startRow, startColumn int) (models.Region, bool, error) {
	if startRow < 1 || startColumn < 1 {
		return models.Region{}, false, ErrInvalidStart
	}

	lastRow, lastCol, err := sheet.LastUsedCell()
	if err != nil {
		return models.Region{}, false, fmt.Errorf("last used cell of %q: %w", sheet.Name(), err)
	}
	region := models.Region{R1: startRow, C1: startColumn, R2: lastRow, C2: lastCol}
	if region.Empty() {
		return models.Region{}, false, nil
	}

	// MaxRows and MaxColumns count beyond the start cell.
	if region.Rows() > opts.MaxRows+1 {
		region.R2 = startRow + opts.MaxRows
	}
	if region.Columns() > opts.MaxColumns+1 {
		region.C2 = startColumn + opts.MaxColumns
	}

	return region, true, nil
}

// Headers reads the header names from the first row of region.
// Blank header cells get a ColumnN name unless contiguous is set, in which case the
// first blank cell ends the header set. No non-empty header cell means no headers.
func Headers(sheet Sheet, region models.Region, contiguous bool) ([]string, error) {
	headers := make([]string, 0, region.Columns())
	named := 0
	for c := region.C1; c <= region.C2; c++ {
		cell, err := sheet.Cell(region.R1, c)
		if err != nil {
			return nil, fmt.Errorf("header cell %d:%d of %q: %w", region.R1, c, sheet.Name(), err)
		}
		name := strings.TrimSpace(cell.String())
		if name == "" {
			if contiguous {
				break
			}
			name = fmt.Sprintf("Column%d", len(headers)+1)
		} else {
			named++
		}
		headers = append(headers, name)
	}
	if named == 0 {
		return nil, nil
	}
	return headers, nil
}

// Read returns the records bound from the region whose header row is startRow.
// Records are produced lazily; breaking out of the loop stops the scan. The read ends
// once more than opts.SkipEmptyRows consecutive rows are absent, leaving the rest of the
// region unread. A cell access error is yielded once and ends the sequence.
// The returned sequence is single-use.
func Read[T any](sheet Sheet, binder Binder[T], opts TableOptions, startRow, startColumn int) iter.Seq2[T, error] {
	consumed := false
	return func(yield func(T, error) bool) {
		var zero T
		if consumed {
			yield(zero, ErrConsumed)
			return
		}
		consumed = true

		region, ok, err := ScanRegion(sheet, opts, startRow, startColumn)
		if err != nil {
			yield(zero, err)
			return
		}
		if !ok {
			return
		}

		headers, err := Headers(sheet, region, opts.ContiguousHeaders)
		if err != nil {
			yield(zero, err)
			return
		}
		if len(headers) == 0 {
			return
		}
		region.C2 = region.C1 + len(headers) - 1

		binder.DefineHeaders(headers)

		absent := 0
		for n := 1; n < region.Rows(); n++ {
			row := &sheetRow{sheet: sheet, number: region.R1 + n, left: region.C1, width: len(headers)}
			rec, ok := binder.CreateInstance(row, n)
			if row.err != nil {
				yield(zero, fmt.Errorf("row %d of %q: %w", row.number, sheet.Name(), row.err))
				return
			}
			if !ok {
				absent++
				if absent > opts.SkipEmptyRows {
					return
				}
				continue
			}
			absent = 0
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// Collect drains seq into a slice, stopping at the first error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T
	for rec, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// sheetRow fetches cells on demand and remembers the first access error.
type sheetRow struct {
	sheet  Sheet
	number int
	left   int
	width  int
	err    error
}

func (r *sheetRow) Field(i int) Cell {
	if i < 0 || i >= r.width || r.err != nil {
		return emptyCell{}
	}
	cell, err := r.sheet.Cell(r.number, r.left+i)
	if err != nil {
		r.err = err
		return emptyCell{}
	}
	if cell == nil {
		return emptyCell{}
	}
	return cell
}

func (r *sheetRow) Number() int {
	return r.number
}
