package table

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tulumbas/irareports/pkg/irareports/models"
)

type textCell string

func (c textCell) IsEmpty() bool  { return strings.TrimSpace(string(c)) == "" }
func (c textCell) String() string { return strings.TrimSpace(string(c)) }
func (c textCell) Time() (time.Time, error) {
	return time.Parse("2006-01-02", c.String())
}

// gridSheet serves cells from a [][]string and records every access.
type gridSheet struct {
	rows    [][]string
	lastRow int
	lastCol int
	failAt  [2]int
	reads   [][2]int
}

func newGridSheet(rows ...[]string) *gridSheet {
	s := &gridSheet{rows: rows}
	for r, row := range rows {
		for c, v := range row {
			if v != "" {
				if r+1 > s.lastRow {
					s.lastRow = r + 1
				}
				if c+1 > s.lastCol {
					s.lastCol = c + 1
				}
			}
		}
	}
	return s
}

func (s *gridSheet) Name() string { return "grid" }

func (s *gridSheet) LastUsedCell() (int, int, error) { return s.lastRow, s.lastCol, nil }

func (s *gridSheet) Cell(row, col int) (Cell, error) {
	s.reads = append(s.reads, [2]int{row, col})
	if s.failAt == [2]int{row, col} {
		return nil, errors.New("boom")
	}
	if row-1 < len(s.rows) && col-1 < len(s.rows[row-1]) {
		return textCell(s.rows[row-1][col-1]), nil
	}
	return textCell(""), nil
}

func (s *gridSheet) maxRead() (row, col int) {
	for _, rc := range s.reads {
		if rc[0] > row {
			row = rc[0]
		}
		if rc[1] > col {
			col = rc[1]
		}
	}
	return
}

// firstColumnBinder binds the first field and treats an empty first field as absent.
type firstColumnBinder struct {
	headers [][]string
	numbers []int
}

func (b *firstColumnBinder) DefineHeaders(h []string) {
	b.headers = append(b.headers, h)
}

func (b *firstColumnBinder) CreateInstance(row Row, n int) (string, bool) {
	b.numbers = append(b.numbers, n)
	f := row.Field(0)
	if f.IsEmpty() {
		return "", false
	}
	return f.String(), true
}

func TestRead_BindsRowsAfterHeader(t *testing.T) {
	sheet := newGridSheet(
		[]string{"Code", "Name"},
		[]string{"A1", "first"},
		[]string{"A2", "second"},
	)
	b := &firstColumnBinder{}

	got, err := Collect(Read[string](sheet, b, DefaultTableOptions(), 1, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2"}, got)
	require.Len(t, b.headers, 1, "DefineHeaders must be called exactly once")
	assert.Equal(t, []string{"Code", "Name"}, b.headers[0])
	assert.Equal(t, []int{1, 2}, b.numbers)
}

func TestRead_StartOffset(t *testing.T) {
	sheet := newGridSheet(
		[]string{"title", "", ""},
		[]string{"", "Code", "Len"},
		[]string{"", "X", "10"},
	)
	b := BinderFunc[string](func(row Row, _ int) (string, bool) {
		if row.Field(0).IsEmpty() {
			return "", false
		}
		return row.Field(0).String() + "/" + row.Field(1).String() + "/" + row.Field(2).String(), true
	})

	got, err := Collect(Read[string](sheet, b, DefaultTableOptions(), 2, 2))
	require.NoError(t, err)
	assert.Equal(t, []string{"X/10/"}, got, "fields beyond the region are empty")
}

func TestRead_EmptyWhenNoDataBelowStart(t *testing.T) {
	sheet := newGridSheet([]string{"Code"}, []string{"A1"})
	b := &firstColumnBinder{}

	got, err := Collect(Read[string](sheet, b, DefaultTableOptions(), 5, 1))
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Collect(Read[string](sheet, b, DefaultTableOptions(), 1, 3))
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, b.headers)
}

func TestRead_EmptyWhenHeadersBlank(t *testing.T) {
	sheet := newGridSheet(
		[]string{"", "", ""},
		[]string{"A1", "x", "y"},
		[]string{"A2", "x", "y"},
	)
	b := &firstColumnBinder{}

	got, err := Collect(Read[string](sheet, b, DefaultTableOptions(), 1, 1))
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, b.headers, "DefineHeaders is not called without headers")
	assert.Empty(t, b.numbers)
}

func TestRead_SkipEmptyRowsTolerance(t *testing.T) {
	sheet := newGridSheet(
		[]string{"Code"},
		[]string{"A1"},
		[]string{""},
		[]string{"A2"},
		[]string{""},
		[]string{""},
		[]string{"A3"},
	)

	got, err := Collect(Read[string](sheet, &firstColumnBinder{}, DefaultTableOptions(), 1, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2"}, got)

	row, _ := sheet.maxRead()
	assert.Equal(t, 6, row, "the row holding A3 is never read")
}

func TestRead_TwoLeadingBlankRowsStopTheRead(t *testing.T) {
	sheet := newGridSheet(
		[]string{"Code"},
		[]string{""},
		[]string{""},
		[]string{"A1"},
		[]string{"A2"},
	)

	got, err := Collect(Read[string](sheet, &firstColumnBinder{}, DefaultTableOptions(), 1, 1))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRead_SkipEmptyRowsZero(t *testing.T) {
	sheet := newGridSheet(
		[]string{"Code"},
		[]string{"A1"},
		[]string{""},
		[]string{"A2"},
	)
	opts := DefaultTableOptions()
	opts.SkipEmptyRows = 0

	got, err := Collect(Read[string](sheet, &firstColumnBinder{}, opts, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"A1"}, got)
}

func TestRead_NeverReadsBeyondCaps(t *testing.T) {
	rows := [][]string{}
	for r := 0; r < 50; r++ {
		row := make([]string, 30)
		for c := range row {
			row[c] = fmt.Sprintf("r%dc%d", r, c)
		}
		rows = append(rows, row)
	}

	tests := []struct {
		maxRows, maxCols int
		startRow, startC int
	}{
		{0, 0, 1, 1},
		{5, 3, 1, 1},
		{10, 4, 3, 2},
		{100, 100, 1, 1},
	}

	for _, tt := range tests {
		sheet := newGridSheet(rows...)
		opts := TableOptions{MaxRows: tt.maxRows, MaxColumns: tt.maxCols, SkipEmptyRows: 1}
		b := BinderFunc[int](func(row Row, _ int) (int, bool) {
			for i := 0; i < 40; i++ {
				row.Field(i)
			}
			return row.Number(), true
		})

		got, err := Collect(Read[int](sheet, b, opts, tt.startRow, tt.startC))
		require.NoError(t, err)

		maxRow, maxCol := sheet.maxRead()
		assert.LessOrEqual(t, maxRow, tt.startRow+tt.maxRows, "rows for %+v", tt)
		assert.LessOrEqual(t, maxCol, tt.startC+tt.maxCols, "columns for %+v", tt)
		assert.LessOrEqual(t, maxRow, 50)
		assert.LessOrEqual(t, maxCol, 30)

		wantRows := min(50, tt.startRow+tt.maxRows) - tt.startRow
		assert.Len(t, got, wantRows, "records for %+v", tt)
	}
}

func TestRead_IsLazy(t *testing.T) {
	sheet := newGridSheet(
		[]string{"Code"},
		[]string{"A1"},
		[]string{"A2"},
		[]string{"A3"},
		[]string{"A4"},
	)

	var got []string
	for rec, err := range Read[string](sheet, &firstColumnBinder{}, DefaultTableOptions(), 1, 1) {
		require.NoError(t, err)
		got = append(got, rec)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"A1", "A2"}, got)
	row, _ := sheet.maxRead()
	assert.Equal(t, 3, row)
}

func TestRead_SingleUse(t *testing.T) {
	sheet := newGridSheet([]string{"Code"}, []string{"A1"})
	seq := Read[string](sheet, &firstColumnBinder{}, DefaultTableOptions(), 1, 1)

	first, err := Collect(seq)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1"}, first)

	_, err = Collect(seq)
	assert.ErrorIs(t, err, ErrConsumed)
}

func TestRead_CellErrorEndsSequence(t *testing.T) {
	sheet := newGridSheet(
		[]string{"Code"},
		[]string{"A1"},
		[]string{"A2"},
		[]string{"A3"},
	)
	sheet.failAt = [2]int{3, 1}

	got, err := Collect(Read[string](sheet, &firstColumnBinder{}, DefaultTableOptions(), 1, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
	assert.Equal(t, []string{"A1"}, got)
}

func TestRead_InvalidStart(t *testing.T) {
	sheet := newGridSheet([]string{"Code"})
	_, err := Collect(Read[string](sheet, &firstColumnBinder{}, DefaultTableOptions(), 0, 1))
	assert.ErrorIs(t, err, ErrInvalidStart)
}

func TestHeaders(t *testing.T) {
	sheet := newGridSheet([]string{"Date", "", "Code", "Length"})
	region := models.Region{R1: 1, C1: 1, R2: 1, C2: 4}

	declared, err := Headers(sheet, region, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Column2", "Code", "Length"}, declared)

	contiguous, err := Headers(sheet, region, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Date"}, contiguous)
}

func TestRead_ContiguousHeadersNarrowSpan(t *testing.T) {
	sheet := newGridSheet(
		[]string{"Code", "", "Extra"},
		[]string{"A1", "b", "c"},
	)
	opts := DefaultTableOptions()
	opts.ContiguousHeaders = true

	b := BinderFunc[string](func(row Row, _ int) (string, bool) {
		return row.Field(0).String() + "|" + row.Field(2).String(), true
	})
	got, err := Collect(Read[string](sheet, b, opts, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"A1|"}, got)
}

func TestScanRegion(t *testing.T) {
	sheet := newGridSheet(make([]string, 0))
	sheet.lastRow, sheet.lastCol = 100, 20

	region, ok, err := ScanRegion(sheet, TableOptions{MaxRows: 10, MaxColumns: 4}, 2, 3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.Region{R1: 2, C1: 3, R2: 12, C2: 7}, region)

	region, ok, err = ScanRegion(sheet, DefaultTableOptions(), 2, 3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.Region{R1: 2, C1: 3, R2: 100, C2: 20}, region)

	region, ok, err = ScanRegion(sheet, TableOptions{MaxRows: 0, MaxColumns: 0}, 100, 20)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, region.Rows())
	assert.Equal(t, 1, region.Columns())

	_, ok, err = ScanRegion(sheet, DefaultTableOptions(), 101, 1)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = ScanRegion(sheet, DefaultTableOptions(), 1, 21)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDefaultTableOptions(t *testing.T) {
	opts := DefaultTableOptions()
	assert.Equal(t, 200, opts.MaxColumns)
	assert.Equal(t, 60000, opts.MaxRows)
	assert.Equal(t, 1, opts.SkipEmptyRows)
	assert.Equal(t, 4, opts.WithMaxColumns(4).MaxColumns)
	assert.Equal(t, 200, opts.MaxColumns)
}
