// Package output serializes extraction results.
package output

import (
	"encoding/json"

	"github.com/ukaji3/fintab-go/pkg/fintab/models"
)

// TableView is the serialized form of a table: column ids plus row-major
// cells, with each row's position in the source grid.
type TableView struct {
	Columns  []string        `json:"columns"`
	RowIndex []int           `json:"row_index"`
	Rows     [][]models.Cell `json:"rows"`
}

// SegmentView is the serialized form of a column group.
type SegmentView struct {
	Year  string    `json:"year,omitempty"`
	Table TableView `json:"table"`
}

// ResultView is the serialized form of a Result.
type ResultView struct {
	Table         TableView              `json:"table"`
	Units         map[string]models.Unit `json:"units"`
	TitleRows     TableView              `json:"title_rows"`
	UnlabeledRows TableView              `json:"unlabeled_rows"`
	ColumnNames   models.HeaderNames     `json:"column_names,omitempty"`
	Segments      []SegmentView          `json:"segments,omitempty"`
	SourceRows    int                    `json:"source_rows"`
}

// NewTableView converts a table into its row-major view.
func NewTableView(t *models.Table) TableView {
	view := TableView{
		Columns:  []string{},
		RowIndex: []int{},
		Rows:     [][]models.Cell{},
	}
	if t == nil {
		return view
	}

	view.Columns = t.ColumnIDs()
	view.RowIndex = append(view.RowIndex, t.RowIndex...)
	for r := 0; r < t.NumRows(); r++ {
		view.Rows = append(view.Rows, t.Row(r))
	}
	return view
}

// NewResultView converts a result into its serialized form.
func NewResultView(res *models.Result) ResultView {
	units := res.Units
	if units == nil {
		units = map[string]models.Unit{}
	}

	view := ResultView{
		Table:         NewTableView(res.Table),
		Units:         units,
		TitleRows:     NewTableView(res.TitleRows),
		UnlabeledRows: NewTableView(res.UnlabeledRows),
		ColumnNames:   res.ColumnNames,
		SourceRows:    res.SourceRows,
	}
	for _, seg := range res.Segments {
		view.Segments = append(view.Segments, SegmentView{Year: seg.Year, Table: NewTableView(seg.Table)})
	}
	return view
}

// ToJSON serializes a result to JSON.
func ToJSON(res *models.Result, pretty bool) ([]byte, error) {
	return marshal(NewResultView(res), pretty)
}

// SegmentToJSON serializes a single column group to JSON.
func SegmentToJSON(seg *models.Segment, pretty bool) ([]byte, error) {
	return marshal(SegmentView{Year: seg.Year, Table: NewTableView(seg.Table)}, pretty)
}

func marshal(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
