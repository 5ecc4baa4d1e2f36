package models

import "fmt"

// Unit is a financial unit marker attached to a numeric value.
type Unit string

const (
	// UnitNone marks a value without a unit.
	UnitNone Unit = ""
	// UnitCurrency is the dollar marker.
	UnitCurrency Unit = "$"
	// UnitPercent is the percent marker.
	UnitPercent Unit = "%"
)

// IsMarker reports whether s is exactly one of the known unit markers.
func IsMarker(s string) bool {
	return s == string(UnitCurrency) || s == string(UnitPercent)
}

// ValueUnit is a cell split into its value and unit marker.
type ValueUnit struct {
	// Val is the value text with the marker removed.
	Val string `json:"val"`
	// Unit is the detected marker, UnitNone if absent.
	Unit Unit `json:"unit,omitempty"`
}

// HeaderName is a header reconstructed for one column.
type HeaderName struct {
	// Column is the raw column identifier.
	Column string `json:"column"`
	// Name is the normalized header text.
	Name string `json:"name"`
}

// HeaderNames is an ordered list of reconstructed headers.
type HeaderNames []HeaderName

// Map returns the headers keyed by raw column identifier.
func (h HeaderNames) Map() map[string]string {
	m := make(map[string]string, len(h))
	for _, hn := range h {
		m[hn.Column] = hn.Name
	}
	return m
}

// Segment is a group of consecutive columns of a wide table.
type Segment struct {
	// Year is the first all-digit column id in the group, "" if none.
	Year string `json:"year,omitempty"`
	// Table holds the group's columns.
	Table *Table `json:"table"`
}

// Result holds every output of the cleaning pipeline.
type Result struct {
	// Table is the cleaned table: row labels plus value columns.
	Table *Table `json:"table"`
	// Units maps value column id to the unit shared by all its values.
	Units map[string]Unit `json:"units"`
	// TitleRows holds labelled rows without data, in source order.
	TitleRows *Table `json:"title_rows"`
	// UnlabeledRows holds rows with a missing row label, in source order.
	UnlabeledRows *Table `json:"unlabeled_rows"`
	// ColumnNames holds headers reconstructed from header rows (optional).
	ColumnNames HeaderNames `json:"column_names,omitempty"`
	// Segments holds year-labelled column groups (optional).
	Segments []Segment `json:"segments,omitempty"`
	// SourceRows is the row count of the raw grid.
	SourceRows int `json:"source_rows"`
}

// Check verifies that every source row is accounted for exactly once.
func (r *Result) Check() error {
	got := r.Table.NumRows() + r.TitleRows.NumRows() + r.UnlabeledRows.NumRows()
	if got != r.SourceRows {
		return fmt.Errorf("row accounting mismatch: %d cleaned + %d title + %d unlabeled != %d source rows",
			r.Table.NumRows(), r.TitleRows.NumRows(), r.UnlabeledRows.NumRows(), r.SourceRows)
	}
	return nil
}
