package dataset

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ColumnSummary describes one column of a table. Mean, Std, Min and Max are
// populated for numeric columns with at least one present value; Std uses the
// sample (n-1) estimator.
type ColumnSummary struct {
	Name    string
	Kind    Kind
	Count   int
	Missing int
	Mean    float64
	Std     float64
	Min     float64
	Max     float64
}

// Describe computes per-column summaries, the tabular equivalent of an
// info/describe dump. It is an observability aid invoked around the cleaning
// pipeline, never part of it.
func Describe(t *Table) []ColumnSummary {
	summaries := make([]ColumnSummary, 0, t.ColumnCount())
	for _, col := range t.Columns() {
		s := ColumnSummary{
			Name:    col.Name,
			Kind:    col.Kind,
			Count:   len(col.Cells) - col.MissingCount(),
			Missing: col.MissingCount(),
		}
		if col.Kind == Numeric {
			if vals := col.Values(); len(vals) > 0 {
				s.Mean = stat.Mean(vals, nil)
				if len(vals) > 1 {
					s.Std = stat.StdDev(vals, nil)
				}
				s.Min = floats.Min(vals)
				s.Max = floats.Max(vals)
			}
		}
		summaries = append(summaries, s)
	}
	return summaries
}
