package fintab

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ukaji3/fintab-go/pkg/fintab/cleaner"
	"github.com/ukaji3/fintab-go/pkg/fintab/models"
	"github.com/ukaji3/fintab-go/pkg/fintab/parser"
)

// Extract reads the table on the configured page or sheet of a PDF or xlsx
// file and runs the cleaning pipeline on it.
func Extract(path string, opts Options) (*models.Result, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	source := filepath.Base(path)
	grid, err := readGrid(path, opts)
	if err != nil {
		return nil, NewExtractionError(source, "read", err)
	}

	return ExtractGrid(source, grid, opts)
}

// ExtractGrid runs table detection and the cleaning pipeline on a grid that
// was already read from a document. source only labels errors and logs.
func ExtractGrid(source string, grid parser.Grid, opts Options) (*models.Result, error) {
	log := opts.logger().With(zap.String("source", source))

	// Locate the table
	region, ok := parser.DetectTable(grid, opts.Table)
	if !ok {
		return nil, NewExtractionError(source, "detect", ErrNoTable)
	}
	log.Debug("detected table", zap.String("range", parser.RangeRef(region)))

	raw, err := parser.BuildTable(parser.Crop(grid, region))
	if err != nil {
		return nil, NewExtractionError(source, "build", err)
	}

	rowLabel := opts.RowLabelColumn
	if rowLabel == "" {
		rowLabel = models.RowLabelColumn
	}

	proc, err := cleaner.NewProcessor(raw, cleaner.Options{RowLabelColumn: rowLabel, Logger: log})
	if err != nil {
		return nil, NewExtractionError(source, "clean", err)
	}

	// Reconstruct headers from the raw rows
	var headers models.HeaderNames
	if len(opts.HeaderRows) > 0 {
		headers, err = proc.ExtractColumnNames(opts.HeaderRows)
		if err != nil {
			return nil, NewExtractionError(source, "headers", err)
		}
	}

	res, err := proc.Process()
	if err != nil {
		return nil, NewExtractionError(source, "clean", err)
	}
	res.ColumnNames = headers

	if opts.ApplyHeaders && len(headers) > 0 {
		applyHeaders(res, headers, rowLabel)
	}

	if opts.GroupWidth > 0 {
		res.Segments, err = segment(res.Table, rowLabel, opts.GroupWidth)
		if err != nil {
			return nil, NewExtractionError(source, "segment", err)
		}
	}

	log.Debug("extracted table",
		zap.Int("rows", res.Table.NumRows()),
		zap.Int("columns", res.Table.NumCols()),
		zap.Int("units", len(res.Units)))

	return res, nil
}

// readGrid dispatches on the file extension.
func readGrid(path string, opts Options) (parser.Grid, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		layout := opts.Layout
		if layout == (parser.LayoutParams{}) {
			layout = parser.DefaultLayoutParams()
		}
		return parser.ReadPDFGrid(path, opts.page(), layout)

	case ".xlsx", ".xlsm":
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return parser.ReadSheetGrid(f, opts.Sheet)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// applyHeaders renames columns of every output table with the reconstructed
// headers. The row-label column keeps its id.
func applyHeaders(res *models.Result, headers models.HeaderNames, rowLabel string) {
	names := headers.Map()
	delete(names, rowLabel)

	before := res.Table.ColumnIDs()
	res.Table = res.Table.RenameColumns(cleaner.AssignColumnNames(res.Table, names))
	after := res.Table.ColumnIDs()

	units := make(map[string]models.Unit, len(res.Units))
	for i, id := range before {
		if unit, ok := res.Units[id]; ok {
			units[after[i]] = unit
		}
	}
	res.Units = units

	res.TitleRows = res.TitleRows.RenameColumns(cleaner.AssignColumnNames(res.TitleRows, names))
	res.UnlabeledRows = res.UnlabeledRows.RenameColumns(cleaner.AssignColumnNames(res.UnlabeledRows, names))
}

// segment groups the value columns of t and prefixes every group with the
// row-label column.
func segment(t *models.Table, rowLabel string, width int) ([]models.Segment, error) {
	labels, _ := t.Column(rowLabel)

	segments, err := cleaner.Segment(t.DropColumns(rowLabel), width)
	if err != nil {
		return nil, err
	}

	for _, seg := range segments {
		col := models.Column{ID: labels.ID, Cells: append([]models.Cell(nil), labels.Cells...)}
		if err := seg.Table.InsertColumn(0, col); err != nil {
			return nil, err
		}
	}
	return segments, nil
}
