package cleaning

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"ozonecli/internal/dataset"
)

// missingMarker is the raw-input sentinel for an absent value.
const missingMarker = "?"

// iqrFactor scales the interquartile range when computing outlier bounds.
const iqrFactor = 1.5

// DeriveFunc is the derived-feature extension point. It runs as the final
// stage on the otherwise fully cleaned table.
type DeriveFunc func(*dataset.Table)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithDerived installs a derived-feature stage. The default pipeline carries
// none.
func WithDerived(fn DeriveFunc) Option {
	return func(p *Pipeline) { p.derive = fn }
}

// Pipeline applies the fixed cleaning stages to one table at a time. It holds
// no per-run state and is safe to reuse across datasets.
type Pipeline struct {
	logger *slog.Logger
	derive DeriveFunc
}

// New creates a cleaning pipeline. A nil logger falls back to slog.Default.
func New(logger *slog.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Pipeline{logger: logger}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Clean runs the stages strictly in order, mutating the table in place, and
// returns it. Unparseable cells degrade to missing; Clean never fails on data
// quality. Deterministic for a fixed input table.
func (p *Pipeline) Clean(t *dataset.Table) *dataset.Table {
	initialRows := t.RowCount()

	p.normalizeMissing(t)
	p.coerceNumeric(t)
	p.parseDates(t)
	p.dropSparseRows(t)
	p.imputeMedians(t)
	p.trimOutliers(t)
	p.standardize(t)
	p.dropDuplicates(t)
	if p.derive != nil {
		p.derive(t)
	}

	p.logger.Info("cleaning complete",
		slog.Int("initial_rows", initialRows),
		slog.Int("final_rows", t.RowCount()),
		slog.Int("columns", t.ColumnCount()))
	return t
}

// normalizeMissing replaces every cell equal to the "?" marker with the
// missing state, across all columns.
func (p *Pipeline) normalizeMissing(t *dataset.Table) {
	replaced := 0
	for _, col := range t.Columns() {
		for i, cell := range col.Cells {
			if !cell.IsMissing() && cell.Kind() == dataset.Text && cell.Text() == missingMarker {
				col.Cells[i] = dataset.MissingCell(col.Kind)
				replaced++
			}
		}
	}
	p.logger.Debug("normalized missing markers", slog.Int("replaced", replaced))
}

// coerceNumeric converts every column except Date to numeric. Cells that fail
// to parse become missing; the stage never fails.
func (p *Pipeline) coerceNumeric(t *dataset.Table) {
	for _, col := range t.Columns() {
		if col.Name == dataset.DateColumn {
			continue
		}
		col.Kind = dataset.Numeric
		for i, cell := range col.Cells {
			switch {
			case cell.IsMissing():
				col.Cells[i] = dataset.MissingCell(dataset.Numeric)
			case cell.Kind() == dataset.Numeric:
				// already coerced (idempotent re-run)
			default:
				// ParseFloat accepts NaN/Inf tokens; those carry no usable
				// magnitude and degrade to missing like any other bad cell.
				v, err := strconv.ParseFloat(strings.TrimSpace(cell.Text()), 64)
				if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
					col.Cells[i] = dataset.MissingCell(dataset.Numeric)
				} else {
					col.Cells[i] = dataset.NumberCell(v)
				}
			}
		}
	}
}

// parseDates parses the Date column strictly as month/day/4-digit-year.
// Unparseable values become missing.
func (p *Pipeline) parseDates(t *dataset.Table) {
	col := t.Column(dataset.DateColumn)
	if col == nil {
		return
	}
	col.Kind = dataset.Date
	for i, cell := range col.Cells {
		switch {
		case cell.IsMissing():
			col.Cells[i] = dataset.MissingCell(dataset.Date)
		case cell.Kind() == dataset.Date:
			// already parsed
		default:
			d, err := time.Parse(dataset.DateFormat, strings.TrimSpace(cell.Text()))
			if err != nil {
				col.Cells[i] = dataset.MissingCell(dataset.Date)
			} else {
				col.Cells[i] = dataset.DateCell(d)
			}
		}
	}
}

// dropSparseRows removes rows where more than half the cells are missing,
// keeping rows with at least ceil(0.5*columns) present values.
func (p *Pipeline) dropSparseRows(t *dataset.Table) {
	threshold := int(math.Ceil(0.5 * float64(t.ColumnCount())))
	dropped := t.FilterRows(func(row int) bool {
		return t.PresentInRow(row) >= threshold
	})
	p.logger.Debug("dropped sparse rows",
		slog.Int("dropped", dropped),
		slog.Int("present_threshold", threshold))
}

// imputeMedians fills remaining missing cells of each numeric column with the
// column median over present values. Medians are computed on the row set as it
// stands after sparse-row removal, independently per column.
func (p *Pipeline) imputeMedians(t *dataset.Table) {
	for _, col := range t.Columns() {
		if col.Kind != dataset.Numeric {
			continue
		}
		vals := col.Values()
		if len(vals) == 0 {
			continue
		}
		med := median(vals)
		for i, cell := range col.Cells {
			if cell.IsMissing() {
				col.Cells[i] = dataset.NumberCell(med)
			}
		}
	}
}

// trimOutliers drops rows outside [Q1-1.5*IQR, Q3+1.5*IQR] per numeric column,
// in column order. Each column's quartiles are computed over the row set
// already narrowed by the preceding columns' trims in this same stage, so the
// result depends on column order.
func (p *Pipeline) trimOutliers(t *dataset.Table) {
	for _, col := range t.Columns() {
		if col.Kind != dataset.Numeric {
			continue
		}
		vals := col.Values()
		if len(vals) == 0 {
			// No present values leaves the bounds undefined, and a missing
			// cell never satisfies them, so the column empties the table.
			if dropped := t.FilterRows(func(int) bool { return false }); dropped > 0 {
				p.logger.Debug("trimmed outliers",
					slog.String("column", col.Name),
					slog.Int("dropped", dropped))
			}
			continue
		}
		q1 := quantile(vals, 0.25)
		q3 := quantile(vals, 0.75)
		iqr := q3 - q1
		lo := q1 - iqrFactor*iqr
		hi := q3 + iqrFactor*iqr

		dropped := t.FilterRows(func(row int) bool {
			cell := col.Cells[row]
			if cell.IsMissing() {
				return false
			}
			v := cell.Number()
			return v >= lo && v <= hi
		})
		if dropped > 0 {
			p.logger.Debug("trimmed outliers",
				slog.String("column", col.Name),
				slog.Int("dropped", dropped),
				slog.Float64("lower", lo),
				slog.Float64("upper", hi))
		}
	}
}

// standardize rescales every numeric column to zero mean and unit variance
// using population statistics (ddof=0). Zero-variance columns collapse to 0.
func (p *Pipeline) standardize(t *dataset.Table) {
	for _, col := range t.Columns() {
		if col.Kind != dataset.Numeric {
			continue
		}
		vals := col.Values()
		if len(vals) == 0 {
			continue
		}
		mean := stat.Mean(vals, nil)
		std := stat.PopStdDev(vals, nil)
		if std == 0 {
			std = 1
		}
		for i, cell := range col.Cells {
			if !cell.IsMissing() {
				col.Cells[i] = dataset.NumberCell((cell.Number() - mean) / std)
			}
		}
	}
}

// dropDuplicates removes rows that duplicate an earlier row across all
// columns, keeping the first occurrence.
func (p *Pipeline) dropDuplicates(t *dataset.Table) {
	seen := make(map[string]bool, t.RowCount())
	dropped := t.FilterRows(func(row int) bool {
		key := t.RowKey(row)
		if seen[key] {
			return false
		}
		seen[key] = true
		return true
	})
	p.logger.Debug("dropped duplicate rows", slog.Int("dropped", dropped))
}
