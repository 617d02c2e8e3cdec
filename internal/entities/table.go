package entities

import "strings"

// headerPlaceholder marks a missing header level. It matches the text an
// empty header cell renders to after trimming, and the literal "nan" some
// portals emit for unnamed column groups.
const headerPlaceholder = "nan"

// Table is an ordered tabular snapshot of monitoring-station readings.
// Columns keeps declaration order; every row is aligned to Columns, with
// an empty string standing in for a missing value.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Empty reports whether the table has no data rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// ColumnIndex returns the position of a column by exact name, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, column name), or "" when the column is
// absent or the row is short.
func (t Table) Cell(row int, name string) string {
	idx := t.ColumnIndex(name)
	if idx < 0 || row < 0 || row >= len(t.Rows) || idx >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][idx]
}

// AddConstantColumn appends a column holding the same value in every row.
func (t *Table) AddConstantColumn(name, value string) {
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], value)
	}
}

// Project reduces the table to the named columns, in the given order,
// skipping names the table does not have. Absent columns are never
// synthesized.
func (t Table) Project(names []string) Table {
	var keep []int
	var cols []string
	for _, name := range names {
		if idx := t.ColumnIndex(name); idx >= 0 {
			keep = append(keep, idx)
			cols = append(cols, name)
		}
	}
	out := Table{Columns: cols}
	for _, row := range t.Rows {
		projected := make([]string, len(keep))
		for i, idx := range keep {
			if idx < len(row) {
				projected[i] = row[idx]
			}
		}
		out.Rows = append(out.Rows, projected)
	}
	return out
}

// Filter returns a table holding only the rows the predicate retains.
func (t Table) Filter(retain func(row int) bool) Table {
	out := Table{Columns: t.Columns}
	for i, row := range t.Rows {
		if retain(i) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Concat joins tables top to bottom, preserving the given order. The
// combined column set is the union of the inputs' columns in first-seen
// order; cells a table does not have come out empty.
func Concat(tables []Table) Table {
	var combined Table
	seen := make(map[string]bool)
	for _, t := range tables {
		for _, c := range t.Columns {
			if !seen[c] {
				seen[c] = true
				combined.Columns = append(combined.Columns, c)
			}
		}
	}
	for _, t := range tables {
		for r := range t.Rows {
			row := make([]string, len(combined.Columns))
			for i, c := range combined.Columns {
				row[i] = t.Cell(r, c)
			}
			combined.Rows = append(combined.Rows, row)
		}
	}
	return combined
}

// FlattenHeader collapses a multi-level header into flat column names.
// Each entry of levels is the top-to-bottom stack of header labels for one
// column; segments are trimmed, empty and placeholder segments dropped,
// and the survivors joined with single spaces. A one-level header comes
// back trimmed unchanged.
func FlattenHeader(levels [][]string) []string {
	names := make([]string, len(levels))
	for i, stack := range levels {
		var parts []string
		for _, segment := range stack {
			segment = strings.TrimSpace(segment)
			if segment == "" || segment == headerPlaceholder {
				continue
			}
			parts = append(parts, segment)
		}
		names[i] = strings.Join(parts, " ")
	}
	return names
}
