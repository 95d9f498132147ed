// Package differ aligns two tables and computes their cell-level differences.
//
// Columns are outer-joined by name: the first table's columns keep their
// order and columns found only in the second table are appended. Rows are
// matched by position, so the aligned row count is the larger of the two
// inputs' row counts. A cell absent from an input reads as Missing.
package differ

import (
	"errors"

	"github.com/ukaji3/exdiff-go/pkg/exdiff/models"
)

// Arrow separates the old and new renderings in a report cell.
const Arrow = " → "

// ErrNilTable is returned when either input table is nil.
var ErrNilTable = errors.New("nil table")

// Align reindexes a and b onto the union of their columns and rows.
func Align(a, b *models.Table) (*models.AlignedPair, error) {
	if a == nil || b == nil {
		return nil, ErrNilTable
	}

	columns := unionColumns(a.Columns, b.Columns)
	rows := a.NumRows()
	if b.NumRows() > rows {
		rows = b.NumRows()
	}

	return &models.AlignedPair{
		Columns: columns,
		Left:    reindex(a, columns, rows),
		Right:   reindex(b, columns, rows),
	}, nil
}

// Compare aligns a and b and reports every cell whose values differ.
func Compare(a, b *models.Table) (*models.Result, error) {
	pair, err := Align(a, b)
	if err != nil {
		return nil, err
	}

	mask := Mask(pair)
	changed := changedRows(pair.Left, mask)

	summary := models.Summary{
		Rows:             pair.Left.NumRows(),
		Columns:          len(pair.Columns),
		ChangedRows:      changed.NumRows(),
		LeftOnlyColumns:  missingFrom(a.Columns, b.Columns),
		RightOnlyColumns: missingFrom(b.Columns, a.Columns),
	}
	for _, row := range mask {
		for _, diff := range row {
			if diff {
				summary.ChangedCells++
			}
		}
	}

	return &models.Result{
		Columns:     pair.Columns,
		Aligned:     pair,
		Mask:        mask,
		Report:      Report(pair, mask),
		ChangedRows: changed,
		Summary:     summary,
	}, nil
}

// Mask marks the cells of pair whose left and right values are unequal.
func Mask(pair *models.AlignedPair) models.DiffMask {
	mask := make(models.DiffMask, pair.Left.NumRows())
	for r := range mask {
		mask[r] = make([]bool, len(pair.Columns))
		for c := range pair.Columns {
			mask[r][c] = !pair.Left.Rows[r][c].Equal(pair.Right.Rows[r][c])
		}
	}
	return mask
}

// Report renders "old → new" for masked cells and "" elsewhere.
func Report(pair *models.AlignedPair, mask models.DiffMask) models.DiffReport {
	report := make(models.DiffReport, len(mask))
	for r, row := range mask {
		report[r] = make([]string, len(row))
		for c, diff := range row {
			if diff {
				report[r][c] = pair.Left.Rows[r][c].String() + Arrow + pair.Right.Rows[r][c].String()
			}
		}
	}
	return report
}

// unionColumns returns a's columns followed by b's columns not in a.
func unionColumns(a, b []string) []string {
	columns := make([]string, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, set := range [][]string{a, b} {
		for _, c := range set {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			columns = append(columns, c)
		}
	}
	return columns
}

// missingFrom lists the columns of a that b lacks.
func missingFrom(a, b []string) []string {
	have := make(map[string]struct{}, len(b))
	for _, c := range b {
		have[c] = struct{}{}
	}
	var out []string
	for _, c := range a {
		if _, ok := have[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}

// reindex places t's cells onto columns and pads it to rows rows.
// Rows are matched by position, so the aligned index is the position.
func reindex(t *models.Table, columns []string, rows int) *models.Table {
	source := make([]int, len(columns))
	for i, name := range columns {
		source[i] = t.ColumnIndex(name)
	}

	out := &models.Table{
		Columns: columns,
		Rows:    make([][]models.Value, rows),
		Index:   make([]int, rows),
	}
	for r := 0; r < rows; r++ {
		cells := make([]models.Value, len(columns))
		for c, src := range source {
			if src >= 0 {
				cells[c] = t.Cell(r, src)
			}
		}
		out.Rows[r] = cells
		out.Index[r] = r
	}
	return out
}

// changedRows keeps the rows of t that have any masked cell.
func changedRows(t *models.Table, mask models.DiffMask) *models.Table {
	out := &models.Table{Columns: t.Columns}
	for r, row := range mask {
		for _, diff := range row {
			if diff {
				out.Rows = append(out.Rows, t.Rows[r])
				out.Index = append(out.Index, t.Index[r])
				break
			}
		}
	}
	return out
}
