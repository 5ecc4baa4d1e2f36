// Package models defines data structures for financial table extraction.
package models

import (
	"encoding/json"
	"strconv"
)

// CellKind identifies which variant a Cell holds.
type CellKind int

const (
	// KindMissing marks an absent cell.
	KindMissing CellKind = iota
	// KindText marks a string cell.
	KindText
	// KindNumber marks a numeric cell.
	KindNumber
)

// Cell is a single grid value. The zero value is a missing cell.
type Cell struct {
	kind CellKind
	text string
	num  float64
}

// Missing returns an absent cell.
func Missing() Cell {
	return Cell{}
}

// Text returns a string cell.
func Text(s string) Cell {
	return Cell{kind: KindText, text: s}
}

// Number returns a numeric cell.
func Number(f float64) Cell {
	return Cell{kind: KindNumber, num: f}
}

// Kind returns the variant held by the cell.
func (c Cell) Kind() CellKind {
	return c.kind
}

// IsMissing reports whether the cell is absent.
func (c Cell) IsMissing() bool {
	return c.kind == KindMissing
}

// Float returns the numeric value and whether the cell holds a number.
func (c Cell) Float() (float64, bool) {
	return c.num, c.kind == KindNumber
}

// String returns the text form of the cell. Numbers use the shortest
// representation that round-trips; a missing cell yields "".
func (c Cell) String() string {
	switch c.kind {
	case KindText:
		return c.text
	case KindNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Value returns nil, a string or a float64 depending on the variant.
func (c Cell) Value() interface{} {
	switch c.kind {
	case KindText:
		return c.text
	case KindNumber:
		return c.num
	default:
		return nil
	}
}

// MarshalJSON encodes missing cells as null, numbers as JSON numbers and
// text as JSON strings.
func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Value())
}
