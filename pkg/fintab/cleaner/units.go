package cleaner

import (
	"slices"
	"strings"

	"github.com/ukaji3/fintab-go/pkg/fintab/models"
)

// unitMarkers lists the markers in detection priority order.
var unitMarkers = []models.Unit{models.UnitCurrency, models.UnitPercent}

// SplitValueUnit separates a financial unit from a cell text.
// Example: "$ 180" -> {Val: "180", Unit: "$"}.
//
// Markers are tried in order and the first one present in the text decides
// the result. The marker must stand alone as a whitespace-separated token;
// when it is glued to other characters ("$180", "%abc") the whole text is
// returned without a unit.
func SplitValueUnit(text string) models.ValueUnit {
	vu, _ := splitValueUnit(text)
	return vu
}

// splitValueUnit also reports whether a marker was present but could not be
// isolated as a token.
func splitValueUnit(text string) (models.ValueUnit, bool) {
	for _, marker := range unitMarkers {
		if !strings.Contains(text, string(marker)) {
			continue
		}

		tokens := strings.Fields(text)
		idx := slices.Index(tokens, string(marker))
		if idx < 0 {
			return models.ValueUnit{Val: text}, true
		}
		tokens = slices.Delete(tokens, idx, idx+1)

		var val string
		if len(tokens) > 0 {
			val = tokens[0]
		}
		return models.ValueUnit{Val: val, Unit: marker}, false
	}

	return models.ValueUnit{Val: text}, false
}

// ColumnSplit is a column split into value cells and unit markers.
type ColumnSplit struct {
	// Values holds the value part of every cell.
	Values []models.Cell
	// Units holds the marker of every cell, UnitNone where absent.
	Units []models.Unit
	// Glued counts cells whose marker was not a standalone token.
	Glued int
}

// SplitColumn applies SplitValueUnit to every cell of a column. Missing
// cells stay missing with no unit; cells without a marker keep their
// original value.
func SplitColumn(cells []models.Cell) ColumnSplit {
	split := ColumnSplit{
		Values: make([]models.Cell, len(cells)),
		Units:  make([]models.Unit, len(cells)),
	}

	for i, cell := range cells {
		if cell.IsMissing() {
			continue
		}

		vu, glued := splitValueUnit(cell.String())
		if glued {
			split.Glued++
		}

		switch {
		case vu.Unit == models.UnitNone:
			split.Values[i] = cell
		case vu.Val == "":
			split.Values[i] = models.Missing()
		default:
			split.Values[i] = models.Text(vu.Val)
		}
		split.Units[i] = vu.Unit
	}

	return split
}

// UnitCheck reports whether a column uniformly carries one unit.
type UnitCheck struct {
	// HasUnit is true iff exactly one distinct unit is present.
	HasUnit bool
	// Unit is that unit when HasUnit is true.
	Unit models.Unit
}

// CheckUniformUnit collects the distinct non-empty units of a split column.
// It reports HasUnit only when there is exactly one.
func CheckUniformUnit(units []models.Unit) UnitCheck {
	var distinct []models.Unit
	for _, u := range units {
		if u == models.UnitNone || slices.Contains(distinct, u) {
			continue
		}
		distinct = append(distinct, u)
	}

	if len(distinct) == 1 {
		return UnitCheck{HasUnit: true, Unit: distinct[0]}
	}
	return UnitCheck{}
}
