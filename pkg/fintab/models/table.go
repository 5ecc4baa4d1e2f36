package models

import (
	"fmt"
	"strconv"
)

// RowLabelColumn is the canonical identifier of the row-label column.
const RowLabelColumn = "row_nm"

// Column is one named column of a Table.
type Column struct {
	// ID is the column identifier (header label or positional name).
	ID string `json:"id"`
	// Cells holds one value per table row.
	Cells []Cell `json:"cells"`
}

// Table is a column-ordered grid. Column order is explicit: inserting or
// dropping a column shifts the positions of the columns after it.
type Table struct {
	// Columns holds the columns in display order.
	Columns []Column `json:"columns"`
	// RowIndex maps each row to its position in the source grid.
	RowIndex []int `json:"row_index"`
}

// NewTable builds a table from column ids and row-major cells. Short rows are
// padded with missing cells and extra cells are ignored.
func NewTable(ids []string, rows [][]Cell) *Table {
	t := &Table{
		Columns:  make([]Column, len(ids)),
		RowIndex: make([]int, len(rows)),
	}
	for c, id := range ids {
		cells := make([]Cell, len(rows))
		for r, row := range rows {
			if c < len(row) {
				cells[r] = row[c]
			}
		}
		t.Columns[c] = Column{ID: id, Cells: cells}
	}
	for r := range rows {
		t.RowIndex[r] = r
	}
	return t
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	if t == nil {
		return 0
	}
	return len(t.RowIndex)
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	if t == nil {
		return 0
	}
	return len(t.Columns)
}

// ColumnIDs returns the column identifiers in order.
func (t *Table) ColumnIDs() []string {
	ids := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		ids[i] = col.ID
	}
	return ids
}

// Index returns the position of the column with the given id, or -1.
func (t *Table) Index(id string) int {
	for i, col := range t.Columns {
		if col.ID == id {
			return i
		}
	}
	return -1
}

// Column returns the column with the given id.
func (t *Table) Column(id string) (Column, bool) {
	idx := t.Index(id)
	if idx < 0 {
		return Column{}, false
	}
	return t.Columns[idx], true
}

// Cell returns the cell at row position r in the column id. Unknown columns
// and out of range rows yield a missing cell.
func (t *Table) Cell(r int, id string) Cell {
	col, ok := t.Column(id)
	if !ok || r < 0 || r >= len(col.Cells) {
		return Missing()
	}
	return col.Cells[r]
}

// Row returns the cells of row position r in column order.
func (t *Table) Row(r int) []Cell {
	row := make([]Cell, len(t.Columns))
	for c, col := range t.Columns {
		if r < len(col.Cells) {
			row[c] = col.Cells[r]
		}
	}
	return row
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns:  make([]Column, len(t.Columns)),
		RowIndex: append([]int(nil), t.RowIndex...),
	}
	for i, col := range t.Columns {
		out.Columns[i] = Column{ID: col.ID, Cells: append([]Cell(nil), col.Cells...)}
	}
	return out
}

// SelectRows returns a new table holding the given row positions in order.
func (t *Table) SelectRows(positions []int) *Table {
	out := &Table{
		Columns:  make([]Column, len(t.Columns)),
		RowIndex: make([]int, 0, len(positions)),
	}
	for _, p := range positions {
		out.RowIndex = append(out.RowIndex, t.RowIndex[p])
	}
	for i, col := range t.Columns {
		cells := make([]Cell, 0, len(positions))
		for _, p := range positions {
			cells = append(cells, col.Cells[p])
		}
		out.Columns[i] = Column{ID: col.ID, Cells: cells}
	}
	return out
}

// SelectColumns returns a new table holding the columns in [from, to).
func (t *Table) SelectColumns(from, to int) *Table {
	from = max(from, 0)
	to = min(to, len(t.Columns))
	out := &Table{RowIndex: append([]int(nil), t.RowIndex...)}
	for i := from; i < to; i++ {
		col := t.Columns[i]
		out.Columns = append(out.Columns, Column{ID: col.ID, Cells: append([]Cell(nil), col.Cells...)})
	}
	return out
}

// InsertColumn splices col into position at, shifting later columns right.
func (t *Table) InsertColumn(at int, col Column) error {
	if at < 0 || at > len(t.Columns) {
		return fmt.Errorf("insert position %d out of range [0, %d]", at, len(t.Columns))
	}
	if len(col.Cells) != t.NumRows() {
		return fmt.Errorf("column %q has %d cells, table has %d rows", col.ID, len(col.Cells), t.NumRows())
	}
	if t.Index(col.ID) >= 0 {
		return fmt.Errorf("column %q already exists", col.ID)
	}
	t.Columns = append(t.Columns, Column{})
	copy(t.Columns[at+1:], t.Columns[at:])
	t.Columns[at] = col
	return nil
}

// DropColumns returns a new table without the named columns.
func (t *Table) DropColumns(ids ...string) *Table {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	out := &Table{RowIndex: append([]int(nil), t.RowIndex...)}
	for _, col := range t.Columns {
		if _, ok := drop[col.ID]; ok {
			continue
		}
		out.Columns = append(out.Columns, Column{ID: col.ID, Cells: append([]Cell(nil), col.Cells...)})
	}
	return out
}

// RenameColumns returns a copy with columns renamed according to names.
// Columns absent from names keep their id; a new name that collides with an
// existing id gets a numeric suffix.
func (t *Table) RenameColumns(names map[string]string) *Table {
	out := t.Clone()
	seen := make(map[string]struct{}, len(out.Columns))
	for i, col := range out.Columns {
		id := col.ID
		if name, ok := names[col.ID]; ok && name != "" {
			id = name
		}
		out.Columns[i].ID = UniqueID(id, seen)
		seen[out.Columns[i].ID] = struct{}{}
	}
	return out
}

// UniqueID returns id, or id with the first ".N" suffix not present in seen.
func UniqueID(id string, seen map[string]struct{}) string {
	if _, taken := seen[id]; !taken {
		return id
	}
	for n := 1; ; n++ {
		candidate := id + "." + strconv.Itoa(n)
		if _, taken := seen[candidate]; !taken {
			return candidate
		}
	}
}
