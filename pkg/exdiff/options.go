// Package exdiff compares two CSV files or two .xlsx workbooks cell by cell.
package exdiff

// Mode represents how a pair of inputs is compared.
type Mode string

const (
	// ModeTable compares two CSV files directly.
	ModeTable Mode = "table"
	// ModeWorkbook compares one sheet common to two workbooks.
	ModeWorkbook Mode = "workbook"
)

// Options configures a comparison.
type Options struct {
	// Sheet selects the sheet to compare in workbook mode.
	// If empty, the first common sheet is used. Ignored in table mode.
	Sheet string
}

// DefaultOptions returns default comparison options.
func DefaultOptions() Options {
	return Options{}
}
