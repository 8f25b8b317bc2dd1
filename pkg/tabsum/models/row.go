// Package models defines data structures for tabular aggregation.
package models

// Row represents a single data line of a table.
type Row struct {
	// Line is the 1-based source line (delimited text) or sheet row (xlsx).
	Line int
	// Fields holds the raw cell texts in header order.
	Fields []string
}

// Get returns the field at idx, or "" when the row has no such field.
func (r Row) Get(idx int) string {
	if idx < 0 || idx >= len(r.Fields) {
		return ""
	}
	return r.Fields[idx]
}
