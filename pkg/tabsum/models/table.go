package models

// Table represents a loaded header plus its data rows.
type Table struct {
	// Source is the input name (no directory).
	Source string
	// Header names the fields of every row.
	Header []string
	// Rows contains the data rows in source order.
	Rows []Row
	// Skipped counts malformed lines passed over while loading.
	Skipped int
}

// Index returns the position of the first header field named name, or -1.
// Matching is exact and case-sensitive.
func (t *Table) Index(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Preview returns up to n rows as header name to cell text objects.
// Repeated header names keep the first column's value.
func (t *Table) Preview(n int) []map[string]string {
	if n <= 0 || len(t.Rows) == 0 {
		return nil
	}
	if n > len(t.Rows) {
		n = len(t.Rows)
	}

	preview := make([]map[string]string, 0, n)
	for _, row := range t.Rows[:n] {
		obj := make(map[string]string, len(t.Header))
		for i, name := range t.Header {
			if _, seen := obj[name]; seen {
				continue
			}
			obj[name] = row.Get(i)
		}
		preview = append(preview, obj)
	}
	return preview
}
