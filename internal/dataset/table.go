package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateFormat is the reference layout for the Date column: month/day/4-digit
// year, no zero padding required on input.
const DateFormat = "1/2/2006"

// DateColumn is the one column exempt from numeric coercion.
const DateColumn = "Date"

// Kind is the declared semantic type of a column.
type Kind int

const (
	Text Kind = iota
	Numeric
	Date
)

// String returns the kind name used in logs and summaries.
func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Date:
		return "date"
	default:
		return "text"
	}
}

// Cell is a single scalar value or the explicit missing state. The zero value
// is a missing text cell.
type Cell struct {
	kind    Kind
	missing bool
	num     float64
	date    time.Time
	text    string
}

// TextCell returns a present text cell.
func TextCell(s string) Cell { return Cell{kind: Text, text: s} }

// NumberCell returns a present numeric cell.
func NumberCell(v float64) Cell { return Cell{kind: Numeric, num: v} }

// DateCell returns a present date cell.
func DateCell(d time.Time) Cell { return Cell{kind: Date, date: d} }

// MissingCell returns the missing state for the given kind.
func MissingCell(k Kind) Cell { return Cell{kind: k, missing: true} }

// IsMissing reports whether the cell holds no value.
func (c Cell) IsMissing() bool { return c.missing }

// Kind returns the cell's semantic kind.
func (c Cell) Kind() Kind { return c.kind }

// Number returns the numeric value. Only meaningful for present numeric cells.
func (c Cell) Number() float64 { return c.num }

// Date returns the date value. Only meaningful for present date cells.
func (c Cell) Date() time.Time { return c.date }

// Text returns the text value. Only meaningful for present text cells.
func (c Cell) Text() string { return c.text }

// String renders the cell in its on-disk textual form. Missing renders as the
// empty token.
func (c Cell) String() string {
	if c.missing {
		return ""
	}
	switch c.kind {
	case Numeric:
		return strconv.FormatFloat(c.num, 'g', -1, 64)
	case Date:
		return c.date.Format(DateFormat)
	default:
		return c.text
	}
}

// Column is a named sequence of cells sharing one declared kind.
type Column struct {
	Name  string
	Kind  Kind
	Cells []Cell
}

// NewTextColumn builds a text column from raw string values, mapping the empty
// token to missing.
func NewTextColumn(name string, values []string) *Column {
	cells := make([]Cell, len(values))
	for i, v := range values {
		if v == "" {
			cells[i] = MissingCell(Text)
		} else {
			cells[i] = TextCell(v)
		}
	}
	return &Column{Name: name, Kind: Text, Cells: cells}
}

// Values returns the present numeric values of the column in row order.
func (c *Column) Values() []float64 {
	vals := make([]float64, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if !cell.IsMissing() && cell.Kind() == Numeric {
			vals = append(vals, cell.Number())
		}
	}
	return vals
}

// MissingCount returns the number of missing cells in the column.
func (c *Column) MissingCount() int {
	n := 0
	for _, cell := range c.Cells {
		if cell.IsMissing() {
			n++
		}
	}
	return n
}

// Table is an ordered sequence of equally sized named columns. It is mutated
// in place by the cleaning pipeline and must not be shared across runs.
type Table struct {
	cols []*Column
}

// New builds a table from columns, enforcing unique names and consistent row
// counts.
func New(cols ...*Column) (*Table, error) {
	seen := make(map[string]bool, len(cols))
	rows := -1
	for _, col := range cols {
		if seen[col.Name] {
			return nil, fmt.Errorf("duplicate column %q", col.Name)
		}
		seen[col.Name] = true
		if rows == -1 {
			rows = len(col.Cells)
		} else if len(col.Cells) != rows {
			return nil, fmt.Errorf("column %q has %d rows, want %d", col.Name, len(col.Cells), rows)
		}
	}
	return &Table{cols: cols}, nil
}

// Columns returns the table's columns in order.
func (t *Table) Columns() []*Column { return t.cols }

// Column returns the named column, or nil when absent.
func (t *Table) Column(name string) *Column {
	for _, col := range t.cols {
		if col.Name == name {
			return col
		}
	}
	return nil
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int { return len(t.cols) }

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0].Cells)
}

// PresentInRow returns the number of present cells in the given row.
func (t *Table) PresentInRow(row int) int {
	n := 0
	for _, col := range t.cols {
		if !col.Cells[row].IsMissing() {
			n++
		}
	}
	return n
}

// FilterRows drops every row for which keep returns false, preserving order,
// and returns the number of rows removed.
func (t *Table) FilterRows(keep func(row int) bool) int {
	rows := t.RowCount()
	kept := make([]int, 0, rows)
	for i := 0; i < rows; i++ {
		if keep(i) {
			kept = append(kept, i)
		}
	}
	if len(kept) == rows {
		return 0
	}
	for _, col := range t.cols {
		cells := make([]Cell, len(kept))
		for j, i := range kept {
			cells[j] = col.Cells[i]
		}
		col.Cells = cells
	}
	return rows - len(kept)
}

// RowKey renders the row as a single string for exact-duplicate detection.
func (t *Table) RowKey(row int) string {
	parts := make([]string, len(t.cols))
	for i, col := range t.cols {
		parts[i] = col.Cells[row].String()
	}
	return strings.Join(parts, "\x1f")
}
