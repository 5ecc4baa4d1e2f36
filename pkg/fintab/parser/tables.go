package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/fintab-go/pkg/fintab/models"
)

// TableDetectionParams holds parameters for table detection.
type TableDetectionParams struct {
	DensityMin       float64
	MinNonemptyCells int
}

// DefaultTableParams returns default table detection parameters.
func DefaultTableParams() TableDetectionParams {
	return TableDetectionParams{
		DensityMin:       0.04,
		MinNonemptyCells: 3,
	}
}

// DetectTable finds the table-like region of a grid: the bounding box of its
// non-empty cells, provided it holds enough cells at a sufficient density.
func DetectTable(grid Grid, params TableDetectionParams) (models.Region, bool) {
	if len(grid) == 0 {
		return models.Region{}, false
	}

	// Find the bounding box of non-empty cells
	minRow, maxRow, minCol, maxCol := findDataBounds(grid)
	if minRow < 0 {
		return models.Region{}, false
	}

	// Calculate density
	totalCells := (maxRow - minRow + 1) * (maxCol - minCol + 1)
	nonEmptyCells := countNonEmptyCells(grid, minRow, maxRow, minCol, maxCol)

	if nonEmptyCells < params.MinNonemptyCells {
		return models.Region{}, false
	}

	density := float64(nonEmptyCells) / float64(totalCells)
	if density < params.DensityMin {
		return models.Region{}, false
	}

	return models.Region{R1: minRow + 1, C1: minCol + 1, R2: maxRow + 1, C2: maxCol + 1}, true
}

// Crop returns the cells of grid inside region, padded to the region size.
func Crop(grid Grid, region models.Region) Grid {
	if region.Empty() {
		return nil
	}

	var out Grid
	for r := region.R1 - 1; r < region.R2 && r < len(grid); r++ {
		row := make([]string, region.C2-region.C1+1)
		for c := region.C1 - 1; c < region.C2 && c < len(grid[r]); c++ {
			row[c-region.C1+1] = grid[r][c]
		}
		out = append(out, row)
	}
	return out
}

// RangeRef renders a region in Excel range notation, e.g. "A1:D10".
func RangeRef(region models.Region) string {
	startCell, _ := excelize.CoordinatesToCellName(region.C1, region.R1)
	endCell, _ := excelize.CoordinatesToCellName(region.C2, region.R2)
	return fmt.Sprintf("%s:%s", startCell, endCell)
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows Grid) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if normalizeCellText(cell) == "" {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}

// countNonEmptyCells counts non-empty cells within bounds.
func countNonEmptyCells(rows Grid, minRow, maxRow, minCol, maxCol int) int {
	count := 0
	for rowIdx := minRow; rowIdx <= maxRow && rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		for colIdx := minCol; colIdx <= maxCol && colIdx < len(row); colIdx++ {
			if normalizeCellText(row[colIdx]) != "" {
				count++
			}
		}
	}
	return count
}
