package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/fintab-go/pkg/fintab/models"
)

func TestSegment(t *testing.T) {
	table := models.NewTable(
		[]string{"2020", "q1", "q2", "label", "2021", "q3", "tail"},
		[][]models.Cell{{
			models.Text("a"), models.Text("b"), models.Text("c"),
			models.Text("d"), models.Text("e"), models.Text("f"), models.Text("g"),
		}},
	)

	segments, err := Segment(table, 3)
	require.NoError(t, err)
	require.Len(t, segments, 3)

	assert.Equal(t, "2020", segments[0].Year)
	assert.Equal(t, []string{"2020", "q1", "q2"}, segments[0].Table.ColumnIDs())

	assert.Equal(t, "2021", segments[1].Year)
	assert.Equal(t, []string{"label", "2021", "q3"}, segments[1].Table.ColumnIDs())

	assert.Equal(t, "", segments[2].Year)
	assert.Equal(t, []string{"tail"}, segments[2].Table.ColumnIDs())
	assert.Equal(t, models.Text("g"), segments[2].Table.Cell(0, "tail"))
}

func TestSegmentInvalidWidth(t *testing.T) {
	table := models.NewTable([]string{"a"}, nil)

	_, err := Segment(table, 0)
	assert.ErrorIs(t, err, ErrInvalidGroupWidth)
}

func TestExtractYear(t *testing.T) {
	tests := []struct {
		ids      []string
		expected string
	}{
		{[]string{"row_nm", "2019", "2020"}, "2019"},
		{[]string{"FY2020", "Q1"}, ""},
		{[]string{"", "12a"}, ""},
		{nil, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ExtractYear(tt.ids), "ids %v", tt.ids)
	}
}
