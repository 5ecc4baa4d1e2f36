package parser

// PDF user space is measured in points: 1 inch = 72 points.
const PointsPerInch = 72

// defaultFontSize is assumed for text runs that report no font size.
const defaultFontSize = 10.0

// glyphWidthRatio estimates a glyph's advance, in em, when the font carries
// no width table.
const glyphWidthRatio = 0.5

// LayoutParams holds the tolerances used to rebuild a grid from positioned
// PDF text. Gaps are expressed in em (multiples of the font size) and
// tolerances in points.
type LayoutParams struct {
	// RowTolerance is the maximum baseline difference within one row.
	RowTolerance float64
	// WordGap is the horizontal gap above which a space is inserted.
	WordGap float64
	// CellGap is the horizontal gap above which text starts a new cell.
	CellGap float64
	// ColumnTolerance is the slack when merging column spans.
	ColumnTolerance float64
}

// DefaultLayoutParams returns default layout tolerances.
func DefaultLayoutParams() LayoutParams {
	return LayoutParams{
		RowTolerance:    2.0,
		WordGap:         0.35,
		CellGap:         1.5,
		ColumnTolerance: 2.0,
	}
}

// emToPoints converts a length in em to points for the given font size.
func emToPoints(em, fontSize float64) float64 {
	if fontSize <= 0 {
		fontSize = defaultFontSize
	}
	return em * fontSize
}
