package models

// Region represents cell coordinate bounds within a grid.
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

// Empty reports whether the region covers no cells.
func (r Region) Empty() bool {
	return r.R2 < r.R1 || r.C2 < r.C1
}
