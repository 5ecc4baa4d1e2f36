package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/fintab-go/pkg/fintab/models"
)

func TestFindSingletonColumns(t *testing.T) {
	table := models.NewTable(
		[]string{"row_nm", "a", "unit", "b", "c", "d"},
		[][]models.Cell{
			{models.Text("x"), models.Text("$"), models.Text("$"), models.Text("1"), models.Missing(), models.Number(5)},
			{models.Text("y"), models.Text("2"), models.Missing(), models.Text("1"), models.Missing(), models.Text("5")},
		},
	)

	got := FindSingletonColumns(table)
	require.Len(t, got, 2)

	assert.Equal(t, "unit", got[0].ID)
	assert.Equal(t, models.Text("$"), got[0].Value)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, models.Text("1"), got[1].Value)

	// never returns columns with zero or several distinct values
	for _, sc := range got {
		assert.NotContains(t, []string{"row_nm", "a", "c", "d"}, sc.ID)
	}
}

func TestFindUnitMarkerColumns(t *testing.T) {
	table := models.NewTable(
		[]string{"row_nm", "cur", "v", "pct", "same"},
		[][]models.Cell{
			{models.Text("%"), models.Text("$"), models.Text("1"), models.Text("%"), models.Text("10")},
			{models.Text("%"), models.Missing(), models.Text("2"), models.Text("%"), models.Text("10")},
		},
	)

	got := findUnitMarkerColumns(table, "row_nm")
	require.Len(t, got, 2)
	assert.Equal(t, "cur", got[0].ID)
	assert.Equal(t, "pct", got[1].ID)
}
