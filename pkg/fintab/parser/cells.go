// Package parser turns PDF pages and Excel sheets into raw financial tables.
package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"

	"github.com/ukaji3/fintab-go/pkg/fintab/models"
)

// Grid is a rectangular block of cell texts, row-major.
type Grid [][]string

// Width returns the length of the longest row.
func (g Grid) Width() int {
	width := 0
	for _, row := range g {
		width = max(width, len(row))
	}
	return width
}

// ReadSheetGrid reads the cell texts of a sheet. An empty sheet name selects
// the first sheet. When the sheet defines a print area the grid is cropped
// to it. Rows are padded to a rectangle.
func ReadSheetGrid(f *excelize.File, sheetName string) (Grid, error) {
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	grid := pad(Grid(rows))

	// Restrict to the print area if one is set
	areas, err := ExtractPrintAreas(f)
	if err == nil {
		if sheetAreas := areas[sheetName]; len(sheetAreas) > 0 {
			grid = Crop(grid, sheetAreas[0])
		}
	}

	return grid, nil
}

// pad extends every row with empty strings up to the grid width.
func pad(g Grid) Grid {
	width := g.Width()
	out := make(Grid, len(g))
	for i, row := range g {
		padded := make([]string, width)
		copy(padded, row)
		out[i] = padded
	}
	return out
}

// ParseCell normalizes a cell text and types it: empty text is missing,
// finite numbers become numbers, anything else stays text.
func ParseCell(s string) models.Cell {
	s = normalizeCellText(s)
	if s == "" {
		return models.Missing()
	}

	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return models.Number(float64(i))
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return models.Number(f)
	}
	return models.Text(s)
}

// normalizeCellText folds compatibility characters (full-width "＄" and "％",
// no-break spaces) to their plain forms and trims surrounding space.
func normalizeCellText(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}
