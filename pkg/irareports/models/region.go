package models

// Region represents cell coordinate bounds of a rectangular sheet area.
type Region struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// Rows returns the number of rows spanned by the region.
func (r Region) Rows() int {
	if r.R2 < r.R1 {
		return 0
	}
	return r.R2 - r.R1 + 1
}

// Columns returns the number of columns spanned by the region.
func (r Region) Columns() int {
	if r.C2 < r.C1 {
		return 0
	}
	return r.C2 - r.C1 + 1
}

// Empty reports whether the region contains no cells.
func (r Region) Empty() bool {
	return r.Rows() == 0 || r.Columns() == 0
}
