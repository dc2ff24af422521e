// Package dataset implements the tagged-column table model used throughout
// the preprocessing run, together with the CSV codec that moves tables in and
// out of blob storage and a per-column summarizer for observability logging.
//
// A Table is an ordered set of equally sized named columns. Every column
// carries one declared semantic kind (text, numeric, or date) and each cell is
// either a value of that kind or the explicit missing state. Raw bytes always
// decode to text columns; the cleaning pipeline owns type coercion.
package dataset
