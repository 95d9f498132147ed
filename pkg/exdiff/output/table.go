package output

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"

	"github.com/ukaji3/exdiff-go/pkg/exdiff/models"
)

// TableOptions configures terminal rendering.
type TableOptions struct {
	// Color styles changed cells and headers with foreground colors.
	Color bool
	// ChangedOnly renders the changed rows with their original values
	// instead of the full difference report.
	ChangedOnly bool
	// Inputs renders both aligned inputs ahead of the report.
	Inputs bool
}

// WriteTable renders the result as a terminal table. Changed cells are bold,
// and red when Color is set. The first column holds the row index.
func WriteTable(w io.Writer, result *models.Result, opts TableOptions) {
	if w == nil {
		w = os.Stdout
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Left)
		changedStyle = cellStyle.Bold(true)
	)
	if opts.Color {
		headerStyle = headerStyle.Foreground(lipgloss.Color("#f6be00"))
		changedStyle = changedStyle.Foreground(lipgloss.Color("#ff5f5f"))
	}

	headers := append([]string{""}, result.Columns...)
	newTable := func(changed func(row, col int) bool) *table.Table {
		return table.New().
			Border(lipgloss.NormalBorder()).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerStyle
				case col > 0 && changed(row, col-1):
					return changedStyle
				default:
					return cellStyle
				}
			}).
			Headers(headers...)
	}

	if opts.Inputs && result.Aligned != nil {
		changed := func(row, col int) bool { return result.Mask[row][col] }
		for _, input := range []struct {
			name  string
			table *models.Table
		}{
			{result.LeftName, result.Aligned.Left},
			{result.RightName, result.Aligned.Right},
		} {
			fmt.Fprintln(w, headerStyle.Render("data from "+input.name))
			fmt.Fprintln(w, newTable(changed).Rows(valueRows(input.table)...))
		}
	}

	var (
		rows    [][]string
		changed func(row, col int) bool
	)
	if opts.ChangedOnly {
		t := result.ChangedRows
		rows = valueRows(t)
		changed = func(row, col int) bool {
			return result.Mask[t.Index[row]][col]
		}
	} else {
		for r, record := range result.Report {
			rows = append(rows, append([]string{strconv.Itoa(r)}, record...))
		}
		changed = func(row, col int) bool {
			return result.Mask[row][col]
		}
	}

	fmt.Fprintln(w, newTable(changed).Rows(rows...))
	fmt.Fprintln(w, headerStyle.Render(SummaryLine(result)))
}

// valueRows renders a table's rows, each led by its original row index.
func valueRows(t *models.Table) [][]string {
	if t == nil {
		return nil
	}
	rows := make([][]string, 0, len(t.Rows))
	for r, values := range t.Rows {
		row := make([]string, 0, len(values)+1)
		row = append(row, strconv.Itoa(t.Index[r]))
		for _, v := range values {
			row = append(row, v.String())
		}
		rows = append(rows, row)
	}
	return rows
}

// SummaryLine describes the result in one line.
func SummaryLine(result *models.Result) string {
	s := result.Summary
	line := fmt.Sprintf("%d changed cells in %d of %d rows across %d columns",
		s.ChangedCells, s.ChangedRows, s.Rows, s.Columns)
	if result.Sheet != "" {
		line = fmt.Sprintf("sheet %q: %s", result.Sheet, line)
	}
	return line
}
