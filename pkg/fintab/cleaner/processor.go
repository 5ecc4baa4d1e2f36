package cleaner

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ukaji3/fintab-go/pkg/fintab/models"
)

// Options configures a Processor.
type Options struct {
	// RowLabelColumn names the row-label column. Defaults to models.RowLabelColumn.
	RowLabelColumn string
	// Logger receives one debug line per pipeline stage. Defaults to a no-op logger.
	Logger *zap.Logger
}

// DefaultOptions returns default processor options.
func DefaultOptions() Options {
	return Options{
		RowLabelColumn: models.RowLabelColumn,
		Logger:         zap.NewNop(),
	}
}

// Processor cleans one raw financial table. The raw table is copied on
// construction and never modified; every stage works on a fresh table.
// A Processor is not safe for concurrent use.
type Processor struct {
	raw      *models.Table
	rowLabel string
	logger   *zap.Logger

	result      *models.Result
	columnNames models.HeaderNames
}

// NewProcessor validates raw and returns a Processor for it.
func NewProcessor(raw *models.Table, opts Options) (*Processor, error) {
	if opts.RowLabelColumn == "" {
		opts.RowLabelColumn = models.RowLabelColumn
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	if raw.NumCols() == 0 {
		return nil, ErrNoColumns
	}
	if raw.NumRows() == 0 {
		return nil, ErrNoRows
	}
	if raw.Index(opts.RowLabelColumn) < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingRowLabel, opts.RowLabelColumn)
	}

	return &Processor{
		raw:      raw.Clone(),
		rowLabel: opts.RowLabelColumn,
		logger:   opts.Logger,
	}, nil
}

// Raw returns a copy of the raw table.
func (p *Processor) Raw() *models.Table {
	return p.raw.Clone()
}

// Result returns the output of the last Process call, or nil.
func (p *Processor) Result() *models.Result {
	return p.result
}

// ColumnNames returns the headers of the last ExtractColumnNames call.
func (p *Processor) ColumnNames() models.HeaderNames {
	return p.columnNames
}

// Process runs the cleaning pipeline: split off unlabeled rows, clean row
// labels, remove title rows, then extract unit columns.
func (p *Processor) Process() (*models.Result, error) {
	// Separate rows without a row label
	unlabeled, working := separateUnlabeledRows(p.raw, p.rowLabel)
	p.logger.Debug("separated unlabeled rows",
		zap.Int("unlabeled", unlabeled.NumRows()),
		zap.Int("remaining", working.NumRows()))

	// Clean row labels
	working = cleanRowLabels(working, p.rowLabel)
	p.logger.Debug("cleaned row labels", zap.Int("rows", working.NumRows()))

	// Remove title rows
	working, titles := removeTitleRows(working, p.rowLabel)
	p.logger.Debug("removed title rows",
		zap.Int("title_rows", titles.NumRows()),
		zap.Int("remaining", working.NumRows()))

	// Extract units
	working, units, err := p.extractUnitColumns(working)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("extracted unit columns",
		zap.Int("columns", working.NumCols()),
		zap.Int("units", len(units)))

	result := &models.Result{
		Table:         working,
		Units:         units,
		TitleRows:     titles,
		UnlabeledRows: unlabeled,
		SourceRows:    p.raw.NumRows(),
	}
	if err := result.Check(); err != nil {
		return nil, err
	}

	p.result = result
	return result, nil
}

// separateUnlabeledRows splits t into rows whose label is missing and the rest.
func separateUnlabeledRows(t *models.Table, rowLabel string) (unlabeled, rest *models.Table) {
	labels, _ := t.Column(rowLabel)

	var missing, present []int
	for r, cell := range labels.Cells {
		if cell.IsMissing() {
			missing = append(missing, r)
		} else {
			present = append(present, r)
		}
	}

	return t.SelectRows(missing), t.SelectRows(present)
}

// cleanRowLabels rewrites every row label with CleanLabel.
func cleanRowLabels(t *models.Table, rowLabel string) *models.Table {
	out := t.Clone()
	idx := out.Index(rowLabel)
	for r, cell := range out.Columns[idx].Cells {
		if cell.IsMissing() {
			continue
		}
		out.Columns[idx].Cells[r] = models.Text(CleanLabel(cell.String()))
	}
	return out
}

// removeTitleRows moves rows whose cells other than the label are all
// missing into a separate table.
func removeTitleRows(t *models.Table, rowLabel string) (cleaned, titles *models.Table) {
	var data, title []int
	for r := 0; r < t.NumRows(); r++ {
		if isTitleRow(t, r, rowLabel) {
			title = append(title, r)
		} else {
			data = append(data, r)
		}
	}
	return t.SelectRows(data), t.SelectRows(title)
}

func isTitleRow(t *models.Table, r int, rowLabel string) bool {
	for _, col := range t.Columns {
		if col.ID == rowLabel {
			continue
		}
		if !col.Cells[r].IsMissing() {
			return false
		}
	}
	return true
}

// extractUnitColumns moves inline unit markers into dedicated columns, maps
// every marker column onto its value column and drops the marker columns.
// A "$" column precedes its values and a "%" column follows them.
func (p *Processor) extractUnitColumns(t *models.Table) (*models.Table, map[string]models.Unit, error) {
	out := t.Clone()

	// Explicit marker columns already carry their unit
	explicit := make(map[string]struct{})
	for _, sc := range findUnitMarkerColumns(out, p.rowLabel) {
		explicit[sc.ID] = struct{}{}
	}

	var candidates []string
	for _, id := range out.ColumnIDs() {
		if _, ok := explicit[id]; ok || id == p.rowLabel {
			continue
		}
		candidates = append(candidates, id)
	}

	// Split inline units off each candidate column
	for _, id := range candidates {
		idx := out.Index(id)
		split := SplitColumn(out.Columns[idx].Cells)
		if split.Glued > 0 {
			p.logger.Debug("unit marker not isolable", zap.String("column", id), zap.Int("cells", split.Glued))
		}

		check := CheckUniformUnit(split.Units)
		if !check.HasUnit {
			continue
		}

		at := idx
		if check.Unit == models.UnitPercent {
			at = idx + 1
		}

		out.Columns[idx].Cells = split.Values
		unitCol := models.Column{ID: unitColumnID(out, id), Cells: unitCells(split.Units)}
		if err := out.InsertColumn(at, unitCol); err != nil {
			return nil, nil, fmt.Errorf("insert unit column for %q: %w", id, err)
		}
	}

	// Map marker columns onto their neighbours
	markers := findUnitMarkerColumns(out, p.rowLabel)
	isMarker := make(map[string]struct{}, len(markers))
	for _, sc := range markers {
		isMarker[sc.ID] = struct{}{}
	}

	units := make(map[string]models.Unit)
	var drop []string
	for _, sc := range markers {
		idx := out.Index(sc.ID)
		unit := models.Unit(sc.Value.String())

		neighbour := idx + 1
		if unit == models.UnitPercent {
			neighbour = idx - 1
		}

		if neighbour >= 0 && neighbour < out.NumCols() {
			target := out.Columns[neighbour].ID
			_, targetIsMarker := isMarker[target]
			if target != p.rowLabel && !targetIsMarker {
				units[target] = unit
			}
		}
		drop = append(drop, sc.ID)
	}

	return out.DropColumns(drop...), units, nil
}

// unitColumnID returns an id for the unit column of id that is not yet used.
func unitColumnID(t *models.Table, id string) string {
	seen := make(map[string]struct{}, t.NumCols())
	for _, existing := range t.ColumnIDs() {
		seen[existing] = struct{}{}
	}
	return models.UniqueID("unit: "+id, seen)
}

func unitCells(units []models.Unit) []models.Cell {
	cells := make([]models.Cell, len(units))
	for i, u := range units {
		if u != models.UnitNone {
			cells[i] = models.Text(string(u))
		}
	}
	return cells
}

// ExtractColumnNames reconstructs a header per raw column from the given raw
// row positions: non-missing values are joined with spaces, special
// characters dropped and the result snake-cased. Columns whose header comes
// out blank are omitted.
func (p *Processor) ExtractColumnNames(rows []int) (models.HeaderNames, error) {
	for _, r := range rows {
		if r < 0 || r >= p.raw.NumRows() {
			return nil, fmt.Errorf("%w: %d (rows: %d)", ErrRowIndexOutOfRange, r, p.raw.NumRows())
		}
	}

	var names models.HeaderNames
	for _, col := range p.raw.Columns {
		var tokens []string
		for _, r := range rows {
			if cell := col.Cells[r]; !cell.IsMissing() {
				tokens = append(tokens, cell.String())
			}
		}

		name := SnakeCase(ReplaceSpecialChars(Join(tokens, " "), " "))
		if strings.TrimSpace(name) == "" {
			continue
		}
		names = append(names, models.HeaderName{Column: col.ID, Name: name})
	}

	p.columnNames = names
	return names, nil
}

// AssignColumnNames returns the entries of translations whose key is a
// column of t.
func AssignColumnNames(t *models.Table, translations map[string]string) map[string]string {
	mapping := make(map[string]string)
	for _, id := range t.ColumnIDs() {
		if name, ok := translations[id]; ok {
			mapping[id] = name
		}
	}
	return mapping
}
