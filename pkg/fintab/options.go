// Package fintab extracts financial tables from PDF and Excel documents and
// normalizes them into labelled rows, value columns and a unit map.
package fintab

import (
	"go.uber.org/zap"

	"github.com/ukaji3/fintab-go/pkg/fintab/models"
	"github.com/ukaji3/fintab-go/pkg/fintab/parser"
)

// Options configures extraction behavior.
type Options struct {
	// Page is the 1-based PDF page holding the table. Defaults to 1.
	Page int
	// Sheet is the Excel sheet holding the table. Defaults to the first sheet.
	Sheet string
	// RowLabelColumn names the row-label column. Defaults to models.RowLabelColumn.
	RowLabelColumn string
	// HeaderRows lists raw row positions that hold column headers.
	HeaderRows []int
	// ApplyHeaders renames value columns with the headers from HeaderRows.
	ApplyHeaders bool
	// GroupWidth splits the cleaned value columns into groups of this width.
	// Zero disables segmentation.
	GroupWidth int
	// Table holds the table region detection thresholds.
	Table parser.TableDetectionParams
	// Layout holds the PDF text layout tolerances.
	Layout parser.LayoutParams
	// Logger receives debug output. If nil, logging is disabled.
	Logger *zap.Logger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Page:           1,
		RowLabelColumn: models.RowLabelColumn,
		Table:          parser.DefaultTableParams(),
		Layout:         parser.DefaultLayoutParams(),
	}
}

// logger returns the configured logger or a no-op one.
func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

// page returns the configured page, defaulting to the first.
func (o Options) page() int {
	if o.Page > 0 {
		return o.Page
	}
	return 1
}
