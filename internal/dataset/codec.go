package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	errs "ozonecli/internal/errors"
)

// Decode parses comma-separated table bytes. The first row is the header and
// defines the column set; every following row supplies one value per column.
// Empty tokens decode to missing. All columns come back as text; the cleaning
// pipeline performs type coercion. A row whose width disagrees with the header
// yields a FormatError.
func Decode(data []byte) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // width checked below so the error carries context

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("missing header row")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	values := make([][]string, len(header))
	line := 1
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line++
		if len(record) != len(header) {
			return nil, &errs.FormatError{Line: line, Fields: len(record), Want: len(header)}
		}
		for i, field := range record {
			values[i] = append(values[i], field)
		}
	}

	cols := make([]*Column, len(header))
	for i, name := range header {
		cols[i] = NewTextColumn(name, values[i])
	}
	return New(cols...)
}

// Encode serializes the table as comma-separated text: header row first, then
// one row per record, missing values rendered as empty tokens. Numeric cells
// use the shortest decimal representation that round-trips.
func Encode(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, t.ColumnCount())
	for i, col := range t.Columns() {
		header[i] = col.Name
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	rows := t.RowCount()
	fields := make([]string, t.ColumnCount())
	for row := 0; row < rows; row++ {
		for i, col := range t.Columns() {
			fields[i] = col.Cells[row].String()
		}
		if err := w.Write(fields); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
