package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/fintab-go/pkg/fintab/models"
)

// Sheet names used by ToXLSX.
const (
	TableSheet     = "table"
	TitleSheet     = "title_rows"
	UnlabeledSheet = "unlabeled_rows"
)

// ToXLSX writes a result to an xlsx workbook. The table sheet holds the
// column ids, a units row and the cleaned rows; title and unlabeled rows get
// sheets of their own.
func ToXLSX(res *models.Result, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), TableSheet); err != nil {
		return err
	}

	unitRow := make([]interface{}, res.Table.NumCols())
	for i, id := range res.Table.ColumnIDs() {
		if i == 0 {
			unitRow[i] = "unit"
			continue
		}
		if unit, ok := res.Units[id]; ok {
			unitRow[i] = string(unit)
		}
	}
	if err := writeTable(f, TableSheet, res.Table, unitRow); err != nil {
		return err
	}

	sheets := []struct {
		name  string
		table *models.Table
	}{
		{TitleSheet, res.TitleRows},
		{UnlabeledSheet, res.UnlabeledRows},
	}
	for _, s := range sheets {
		if _, err := f.NewSheet(s.name); err != nil {
			return err
		}
		if err := writeTable(f, s.name, s.table); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// writeTable writes the header row, optional extra rows and the data rows.
func writeTable(f *excelize.File, sheet string, t *models.Table, extra ...[]interface{}) error {
	if t == nil {
		return nil
	}

	header := make([]interface{}, t.NumCols())
	for i, id := range t.ColumnIDs() {
		header[i] = id
	}
	rows := [][]interface{}{header}
	for _, row := range extra {
		if row != nil {
			rows = append(rows, row)
		}
	}
	for r := 0; r < t.NumRows(); r++ {
		cells := t.Row(r)
		values := make([]interface{}, len(cells))
		for i, cell := range cells {
			values[i] = cell.Value()
		}
		rows = append(rows, values)
	}

	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
