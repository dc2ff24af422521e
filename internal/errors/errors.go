// Package errors defines the error taxonomy shared across the preprocessing
// run: blob-store misses, malformed table bytes, and helpers for classifying
// wrapped errors at the driver boundary.
package errors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a requested blob does not exist in the store.
// Store implementations wrap it with the missing key.
var ErrNotFound = errors.New("blob not found")

// FormatError reports malformed table bytes: a data row whose field count
// disagrees with the header row.
type FormatError struct {
	Line   int // 1-based line number within the blob
	Fields int // fields found on the offending row
	Want   int // fields declared by the header
}

// Error implements the error interface
func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed table: line %d has %d fields, header declares %d", e.Line, e.Fields, e.Want)
}

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsFormat reports whether err wraps a FormatError.
func IsFormat(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
