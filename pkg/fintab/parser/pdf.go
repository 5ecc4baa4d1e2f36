package parser

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// ErrPageOutOfRange indicates a page number outside the document.
var ErrPageOutOfRange = errors.New("page out of range")

// ReadPDFGrid rebuilds the table grid of one PDF page (1-based).
func ReadPDFGrid(path string, page int, params LayoutParams) (Grid, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	return readPDFPage(r, page, params)
}

// ReadPDFGridFromReader is ReadPDFGrid for an in-memory document.
func ReadPDFGridFromReader(ra io.ReaderAt, size int64, page int, params LayoutParams) (Grid, error) {
	r, err := pdf.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf: %w", err)
	}
	return readPDFPage(r, page, params)
}

func readPDFPage(r *pdf.Reader, page int, params LayoutParams) (grid Grid, err error) {
	total := r.NumPage()
	if page < 1 || page > total {
		return nil, fmt.Errorf("%w: %d (pages: %d)", ErrPageOutOfRange, page, total)
	}

	// The content stream decoder panics on some malformed documents
	defer func() {
		if rec := recover(); rec != nil {
			grid, err = nil, fmt.Errorf("failed to decode page %d: %v", page, rec)
		}
	}()

	p := r.Page(page)
	if p.V.IsNull() {
		return nil, fmt.Errorf("%w: %d (pages: %d)", ErrPageOutOfRange, page, total)
	}

	return LayoutGrid(p.Content().Text, params), nil
}

// textRun is a horizontal stretch of text belonging to one cell.
type textRun struct {
	x0, x1 float64
	text   string
}

// span is the horizontal extent of one column.
type span struct {
	x0, x1 float64
}

// LayoutGrid places positioned text into a grid. Text is grouped into rows
// by baseline (top of the page first), runs within a row are merged into
// cells when their gap is below CellGap, column extents are taken from the
// rows with the most cells, and every cell is assigned to the column it
// overlaps most (or lies closest to).
func LayoutGrid(texts []pdf.Text, params LayoutParams) Grid {
	rows := groupRows(texts, params.RowTolerance)

	cellRows := make([][]textRun, 0, len(rows))
	for _, row := range rows {
		if runs := mergeRuns(row, params); len(runs) > 0 {
			cellRows = append(cellRows, runs)
		}
	}

	spans := columnSpans(cellRows, params.ColumnTolerance)

	grid := make(Grid, len(cellRows))
	for i, runs := range cellRows {
		line := make([]string, len(spans))
		for _, run := range runs {
			c := nearestSpan(spans, run)
			if line[c] != "" {
				line[c] += " "
			}
			line[c] += run.text
		}
		grid[i] = line
	}
	return grid
}

// groupRows clusters texts whose baselines lie within tolerance, ordered
// top to bottom, each row ordered left to right.
func groupRows(texts []pdf.Text, tolerance float64) [][]pdf.Text {
	sorted := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if t.S != "" {
			sorted = append(sorted, t)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var rows [][]pdf.Text
	var rowY float64
	for _, t := range sorted {
		if len(rows) > 0 && abs(rowY-t.Y) <= tolerance {
			rows[len(rows)-1] = append(rows[len(rows)-1], t)
			continue
		}
		rows = append(rows, []pdf.Text{t})
		rowY = t.Y
	}

	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
	}
	return rows
}

// mergeRuns joins the texts of one row into cell runs. Whitespace glyphs and
// gaps wider than WordGap become a single space inside a run.
func mergeRuns(row []pdf.Text, params LayoutParams) []textRun {
	var runs []textRun
	pendingSpace := false

	for _, t := range row {
		if strings.TrimSpace(t.S) == "" {
			pendingSpace = true
			continue
		}

		width := t.W
		if width <= 0 {
			width = emToPoints(glyphWidthRatio*float64(utf8.RuneCountInString(t.S)), t.FontSize)
		}

		if len(runs) > 0 {
			last := &runs[len(runs)-1]
			gap := t.X - last.x1
			if gap < emToPoints(params.CellGap, t.FontSize) {
				if pendingSpace || gap > emToPoints(params.WordGap, t.FontSize) {
					last.text += " "
				}
				last.text += t.S
				last.x1 = max(last.x1, t.X+width)
				pendingSpace = false
				continue
			}
		}

		runs = append(runs, textRun{x0: t.X, x1: t.X + width, text: t.S})
		pendingSpace = false
	}

	return runs
}

// columnSpans derives column extents from the rows with the most runs by
// merging overlapping run extents.
func columnSpans(rows [][]textRun, tolerance float64) []span {
	maxCount := 0
	for _, runs := range rows {
		maxCount = max(maxCount, len(runs))
	}

	var extents []span
	for _, runs := range rows {
		if len(runs) != maxCount {
			continue
		}
		for _, run := range runs {
			extents = append(extents, span{x0: run.x0, x1: run.x1})
		}
	}
	sort.Slice(extents, func(i, j int) bool { return extents[i].x0 < extents[j].x0 })

	var spans []span
	for _, e := range extents {
		if n := len(spans); n > 0 && e.x0 <= spans[n-1].x1+tolerance {
			spans[n-1].x1 = max(spans[n-1].x1, e.x1)
			continue
		}
		spans = append(spans, e)
	}
	return spans
}

// nearestSpan returns the column a run belongs to.
func nearestSpan(spans []span, run textRun) int {
	best, bestOverlap := -1, 0.0
	for i, s := range spans {
		if overlap := min(s.x1, run.x1) - max(s.x0, run.x0); overlap > bestOverlap {
			best, bestOverlap = i, overlap
		}
	}
	if best >= 0 {
		return best
	}

	best, bestDist := 0, -1.0
	for i, s := range spans {
		dist := max(s.x0-run.x1, run.x0-s.x1, 0)
		if bestDist < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
