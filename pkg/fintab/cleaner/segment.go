package cleaner

import (
	"fmt"
	"unicode"

	"github.com/ukaji3/fintab-go/pkg/fintab/models"
)

// Segment splits t into groups of width consecutive columns; the last group
// may be narrower. Each group is labelled with ExtractYear of its columns.
func Segment(t *models.Table, width int) ([]models.Segment, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGroupWidth, width)
	}

	var segments []models.Segment
	for from := 0; from < t.NumCols(); from += width {
		group := t.SelectColumns(from, from+width)
		segments = append(segments, models.Segment{
			Year:  ExtractYear(group.ColumnIDs()),
			Table: group,
		})
	}
	return segments, nil
}

// ExtractYear returns the first id made only of digits, or "" if none.
func ExtractYear(ids []string) string {
	for _, id := range ids {
		if isDigits(id) {
			return id
		}
	}
	return ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
