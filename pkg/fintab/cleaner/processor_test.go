package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ukaji3/fintab-go/pkg/fintab/models"
)

var (
	na  = models.Missing()
	txt = models.Text
)

func newProcessor(t *testing.T, ids []string, rows [][]models.Cell) *Processor {
	t.Helper()

	opts := DefaultOptions()
	opts.Logger = zaptest.NewLogger(t)

	p, err := NewProcessor(models.NewTable(ids, rows), opts)
	require.NoError(t, err)
	return p
}

func labels(t *testing.T, table *models.Table) []string {
	t.Helper()

	col, ok := table.Column(models.RowLabelColumn)
	require.True(t, ok)

	out := make([]string, len(col.Cells))
	for i, c := range col.Cells {
		out[i] = c.String()
	}
	return out
}

func TestProcessMixedUnitsAreNotRecorded(t *testing.T) {
	p := newProcessor(t, []string{"row_nm", "c1", "c2"}, [][]models.Cell{
		{txt("Revenue (1)"), txt("$ 100"), txt("$ 200")},
		{na, txt("Total"), txt("Q1 2020")},
		{txt("Growth Rate"), txt("5 %"), txt("7 %")},
	})

	res, err := p.Process()
	require.NoError(t, err)

	require.Equal(t, 1, res.UnlabeledRows.NumRows())
	assert.Equal(t, []int{1}, res.UnlabeledRows.RowIndex)
	assert.Equal(t, txt("Total"), res.UnlabeledRows.Cell(0, "c1"))
	assert.Equal(t, txt("Q1 2020"), res.UnlabeledRows.Cell(0, "c2"))
	assert.True(t, res.UnlabeledRows.Cell(0, "row_nm").IsMissing())

	assert.Equal(t, []string{"revenue", "growth_rate"}, labels(t, res.Table))
	assert.Equal(t, []string{"row_nm", "c1", "c2"}, res.Table.ColumnIDs())

	// "$" and "%" disagree within each column, so nothing is split off
	assert.Empty(t, res.Units)
	assert.Equal(t, txt("$ 100"), res.Table.Cell(0, "c1"))
	assert.Equal(t, txt("5 %"), res.Table.Cell(1, "c1"))

	assert.Equal(t, 0, res.TitleRows.NumRows())
	assert.Same(t, res, p.Result())
}

func TestProcessInlineUnits(t *testing.T) {
	p := newProcessor(t, []string{"row_nm", "c1", "c2"}, [][]models.Cell{
		{txt("Revenue (1)"), txt("$ 100"), txt("10 %")},
		{txt("Operations"), na, na},
		{txt("Cost of Sales"), txt("$ 50"), txt("5 %")},
		{txt("Other"), models.Number(7), na},
	})

	res, err := p.Process()
	require.NoError(t, err)

	assert.Equal(t, []string{"row_nm", "c1", "c2"}, res.Table.ColumnIDs())
	assert.Equal(t, []string{"revenue", "cost_of_sales", "other"}, labels(t, res.Table))
	assert.Equal(t, map[string]models.Unit{"c1": models.UnitCurrency, "c2": models.UnitPercent}, res.Units)

	assert.Equal(t, txt("100"), res.Table.Cell(0, "c1"))
	assert.Equal(t, txt("50"), res.Table.Cell(1, "c1"))
	assert.Equal(t, models.Number(7), res.Table.Cell(2, "c1"))
	assert.Equal(t, txt("10"), res.Table.Cell(0, "c2"))
	assert.Equal(t, txt("5"), res.Table.Cell(1, "c2"))
	assert.True(t, res.Table.Cell(2, "c2").IsMissing())

	require.Equal(t, 1, res.TitleRows.NumRows())
	assert.Equal(t, txt("operations"), res.TitleRows.Cell(0, "row_nm"))
	assert.Equal(t, []int{1}, res.TitleRows.RowIndex)
	assert.Equal(t, []int{0, 2, 3}, res.Table.RowIndex)
}

func TestProcessExplicitUnitColumns(t *testing.T) {
	p := newProcessor(t, []string{"row_nm", "Unnamed: 1", "2020", "2019", "Unnamed: 4"}, [][]models.Cell{
		{txt("Revenue"), txt("$"), txt("100"), txt("90"), na},
		{txt("Margin"), na, txt("10"), txt("9"), txt("%")},
	})

	res, err := p.Process()
	require.NoError(t, err)

	assert.Equal(t, []string{"row_nm", "2020", "2019"}, res.Table.ColumnIDs())
	assert.Equal(t, map[string]models.Unit{"2020": models.UnitCurrency, "2019": models.UnitPercent}, res.Units)
	assert.Equal(t, txt("100"), res.Table.Cell(0, "2020"))
}

func TestProcessTrailingCurrencyMarkerHasNoNeighbour(t *testing.T) {
	p := newProcessor(t, []string{"row_nm", "v", "cur"}, [][]models.Cell{
		{txt("Revenue"), txt("1"), txt("$")},
		{txt("Cost"), txt("2"), txt("$")},
	})

	res, err := p.Process()
	require.NoError(t, err)

	assert.Equal(t, []string{"row_nm", "v"}, res.Table.ColumnIDs())
	assert.Empty(t, res.Units)
}

func TestProcessWithoutUnitsKeepsValues(t *testing.T) {
	rows := [][]models.Cell{
		{txt("Total Assets"), models.Number(1200), txt("1,100")},
		{txt("Total-Liabilities"), models.Number(800.5), txt("700")},
	}
	p := newProcessor(t, []string{"row_nm", "2021", "2020"}, rows)

	res, err := p.Process()
	require.NoError(t, err)

	assert.Empty(t, res.Units)
	assert.Equal(t, []string{"row_nm", "2021", "2020"}, res.Table.ColumnIDs())
	assert.Equal(t, []string{"total_assets", "total_liabilities"}, labels(t, res.Table))
	for r := range rows {
		assert.Equal(t, rows[r][1], res.Table.Cell(r, "2021"))
		assert.Equal(t, rows[r][2], res.Table.Cell(r, "2020"))
	}
}

func TestProcessDoesNotModifyRaw(t *testing.T) {
	p := newProcessor(t, []string{"row_nm", "c1"}, [][]models.Cell{
		{txt("Revenue (1)"), txt("$ 100")},
	})

	_, err := p.Process()
	require.NoError(t, err)

	raw := p.Raw()
	assert.Equal(t, txt("Revenue (1)"), raw.Cell(0, "row_nm"))
	assert.Equal(t, txt("$ 100"), raw.Cell(0, "c1"))
}

func TestProcessRowAccounting(t *testing.T) {
	p := newProcessor(t, []string{"row_nm", "a", "b"}, [][]models.Cell{
		{na, txt("Fiscal"), txt("Fiscal")},
		{txt("Income"), na, na},
		{txt("Sales"), txt("$ 1"), txt("$ 2")},
		{na, na, na},
		{txt("Expenses"), na, na},
		{txt("Wages"), txt("$ 3"), na},
	})

	res, err := p.Process()
	require.NoError(t, err)
	require.NoError(t, res.Check())

	assert.Equal(t, []int{0, 3}, res.UnlabeledRows.RowIndex)
	assert.Equal(t, []int{1, 4}, res.TitleRows.RowIndex)
	assert.Equal(t, []int{2, 5}, res.Table.RowIndex)
	assert.Equal(t, map[string]models.Unit{"a": "$", "b": "$"}, res.Units)
}

func TestNewProcessorPreconditions(t *testing.T) {
	tests := []struct {
		name  string
		table *models.Table
		err   error
	}{
		{"no columns", models.NewTable(nil, nil), ErrNoColumns},
		{"nil table", nil, ErrNoColumns},
		{"no rows", models.NewTable([]string{"row_nm", "a"}, nil), ErrNoRows},
		{"no row label", models.NewTable([]string{"a"}, [][]models.Cell{{txt("x")}}), ErrMissingRowLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProcessor(tt.table, DefaultOptions())
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestExtractColumnNames(t *testing.T) {
	p := newProcessor(t, []string{"row_nm", "c1", "c2", "c3"}, [][]models.Cell{
		{na, txt("Fiscal"), txt("Fiscal"), na},
		{na, models.Number(2020), txt("2019 (restated)"), na},
		{txt("Revenue"), txt("1"), txt("2"), txt("3")},
	})

	names, err := p.ExtractColumnNames([]int{0, 1})
	require.NoError(t, err)

	assert.Equal(t, models.HeaderNames{
		{Column: "c1", Name: "fiscal_2020"},
		{Column: "c2", Name: "fiscal_2019_restated"},
	}, names)
	assert.Equal(t, names, p.ColumnNames())

	_, err = p.ExtractColumnNames([]int{0, 7})
	assert.ErrorIs(t, err, ErrRowIndexOutOfRange)
}

func TestAssignColumnNames(t *testing.T) {
	table := models.NewTable([]string{"row_nm", "c1", "c2"}, nil)

	got := AssignColumnNames(table, map[string]string{"c1": "fiscal_2020", "zz": "unused"})
	assert.Equal(t, map[string]string{"c1": "fiscal_2020"}, got)

	renamed := table.RenameColumns(got)
	assert.Equal(t, []string{"row_nm", "fiscal_2020", "c2"}, renamed.ColumnIDs())
}
