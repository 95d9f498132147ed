package models

// Table is an ordered set of named columns holding rows of values.
type Table struct {
	// Columns holds the column names in order.
	Columns []string
	// Rows holds one slice of values per row, each len(Columns) long.
	Rows [][]Value
	// Index holds the original 0-based position of each row.
	Index []int
}

// NewTable creates a table with the given columns and rows.
// Rows are indexed 0..len(rows)-1 and padded or truncated to the column count.
func NewTable(columns []string, rows [][]Value) *Table {
	t := &Table{
		Columns: append([]string(nil), columns...),
		Rows:    make([][]Value, len(rows)),
		Index:   make([]int, len(rows)),
	}
	for i, row := range rows {
		cells := make([]Value, len(columns))
		copy(cells, row)
		t.Rows[i] = cells
		t.Index[i] = i
	}
	return t
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	if t == nil {
		return 0
	}
	return len(t.Columns)
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at row r and column c, or Missing when out of range.
func (t *Table) Cell(r, c int) Value {
	if r < 0 || r >= len(t.Rows) || c < 0 || c >= len(t.Rows[r]) {
		return Missing()
	}
	return t.Rows[r][c]
}
