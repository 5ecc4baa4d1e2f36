package cleaner

import "github.com/ukaji3/fintab-go/pkg/fintab/models"

// SingletonColumn is a column whose non-missing cells are all equal.
type SingletonColumn struct {
	// ID is the column identifier.
	ID string
	// Value is the single distinct value.
	Value models.Cell
}

// FindSingletonColumns returns, in column order, the columns whose set of
// distinct non-missing values has exactly one element.
func FindSingletonColumns(t *models.Table) []SingletonColumn {
	var result []SingletonColumn

	for _, col := range t.Columns {
		distinct := make(map[models.Cell]struct{})
		var first models.Cell
		for _, cell := range col.Cells {
			if cell.IsMissing() {
				continue
			}
			if len(distinct) == 0 {
				first = cell
			}
			distinct[cell] = struct{}{}
			if len(distinct) > 1 {
				break
			}
		}

		if len(distinct) == 1 {
			result = append(result, SingletonColumn{ID: col.ID, Value: first})
		}
	}

	return result
}

// findUnitMarkerColumns returns the singleton columns whose value is a unit
// marker, skipping the row-label column.
func findUnitMarkerColumns(t *models.Table, rowLabel string) []SingletonColumn {
	var markers []SingletonColumn
	for _, sc := range FindSingletonColumns(t) {
		if sc.ID == rowLabel || sc.Value.Kind() != models.KindText {
			continue
		}
		if models.IsMarker(sc.Value.String()) {
			markers = append(markers, sc)
		}
	}
	return markers
}
