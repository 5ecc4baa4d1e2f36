package parser

import (
	"errors"
	"strconv"

	"github.com/ukaji3/fintab-go/pkg/fintab/models"
)

// ErrEmptyGrid indicates a grid without a header row.
var ErrEmptyGrid = errors.New("grid has no rows")

// BuildTable converts a grid into a raw table. The first grid row is the
// header row: blank headers become "Unnamed: <i>", duplicates get ".N"
// suffixes and the first column is renamed to models.RowLabelColumn. The
// remaining grid rows are typed with ParseCell.
func BuildTable(grid Grid) (*models.Table, error) {
	if len(grid) == 0 {
		return nil, ErrEmptyGrid
	}

	ids := headerIDs(grid[0], grid.Width())

	rows := make([][]models.Cell, 0, len(grid)-1)
	for _, line := range grid[1:] {
		row := make([]models.Cell, len(ids))
		for c := range ids {
			if c < len(line) {
				row[c] = ParseCell(line[c])
			}
		}
		rows = append(rows, row)
	}

	return models.NewTable(ids, rows), nil
}

// headerIDs derives unique column ids from a header row.
func headerIDs(header []string, width int) []string {
	ids := make([]string, width)
	seen := make(map[string]struct{}, width)

	for c := 0; c < width; c++ {
		var id string
		if c < len(header) {
			id = normalizeCellText(header[c])
		}
		switch {
		case c == 0:
			id = models.RowLabelColumn
		case id == "":
			id = "Unnamed: " + strconv.Itoa(c)
		}

		ids[c] = models.UniqueID(id, seen)
		seen[ids[c]] = struct{}{}
	}

	return ids
}
