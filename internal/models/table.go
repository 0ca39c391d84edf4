package models

// Table is a loaded record set: an ordered list of column names and the raw rows.
// Cell values are whatever the source produced (strings for CSV, native values for SQL);
// a row may be shorter than Columns, missing cells read as nil.
type Table struct {
	Name    string   // Name of the dataset, used in logs and artifact names.
	Columns []string // Columns in source order.
	Rows    [][]any  // Rows in source order.
}

// Cell returns the value of column idx in row, or nil when the row is too short.
func (t *Table) Cell(row, idx int) any {
	if row < 0 || row >= len(t.Rows) || idx < 0 || idx >= len(t.Rows[row]) {
		return nil
	}

	return t.Rows[row][idx]
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	return len(t.Rows)
}
