package models

// AlignedPair holds two tables reindexed onto the same columns and row count.
type AlignedPair struct {
	// Columns is the union of both inputs' column names.
	Columns []string
	// Left is the first input reindexed onto Columns.
	Left *Table
	// Right is the second input reindexed onto Columns.
	Right *Table
}

// DiffMask marks unequal cells of an AlignedPair, indexed [row][column].
type DiffMask [][]bool

// DiffReport holds "old → new" strings for unequal cells and "" elsewhere.
type DiffReport [][]string

// Summary counts what a comparison found.
type Summary struct {
	// Rows is the aligned row count.
	Rows int `json:"rows"`
	// Columns is the aligned column count.
	Columns int `json:"columns"`
	// ChangedCells is the number of true cells in the mask.
	ChangedCells int `json:"changed_cells"`
	// ChangedRows is the number of rows with at least one changed cell.
	ChangedRows int `json:"changed_rows"`
	// LeftOnlyColumns lists columns present only in the first input.
	LeftOnlyColumns []string `json:"left_only_columns,omitempty"`
	// RightOnlyColumns lists columns present only in the second input.
	RightOnlyColumns []string `json:"right_only_columns,omitempty"`
}

// Result is the output of one comparison.
type Result struct {
	// LeftName is the first input's file name.
	LeftName string
	// RightName is the second input's file name.
	RightName string
	// Sheet is the compared sheet name, empty for CSV inputs.
	Sheet string
	// Columns is the aligned column set.
	Columns []string
	// Aligned holds both inputs reindexed onto Columns and the aligned rows.
	Aligned *AlignedPair
	// Mask marks unequal cells.
	Mask DiffMask
	// Report renders unequal cells.
	Report DiffReport
	// ChangedRows holds the first input's aligned rows with any difference.
	ChangedRows *Table
	// Summary counts the differences.
	Summary Summary
}

// HasDifferences reports whether any cell differs.
func (r *Result) HasDifferences() bool {
	return r.Summary.ChangedCells > 0
}
