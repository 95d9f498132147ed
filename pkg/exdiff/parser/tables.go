package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/exdiff-go/pkg/exdiff/models"
)

// dataRegion is the part of a sheet holding the header and data rows.
type dataRegion struct {
	// HeaderRow is the 0-based index of the first non-empty row.
	HeaderRow int
	// LastRow is the 0-based index of the last non-empty row.
	LastRow int
	// Width is the number of columns from column A to the rightmost non-empty cell.
	Width int
}

// findDataRegion finds the rows holding data. Leading and trailing empty
// rows fall outside the region; columns always start at the first one.
// ok is false when every cell is empty.
func findDataRegion(rows [][]string) (region dataRegion, ok bool) {
	minRow, maxRow, _, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return dataRegion{}, false
	}
	return dataRegion{HeaderRow: minRow, LastRow: maxRow, Width: maxCol + 1}, true
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}

// columnNames builds unique column names from a header row of the given width.
// Blank names become "Unnamed: <i>" and repeats get a ".<n>" suffix.
func columnNames(header []string, width int) []string {
	names := make([]string, width)
	seen := make(map[string]int, width)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) {
			name = header[i]
		}
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if _, dup := seen[name]; dup {
			base := name
			n := seen[base]
			for {
				n++
				name = fmt.Sprintf("%s.%d", base, n)
				if _, taken := seen[name]; !taken {
					break
				}
			}
			seen[base] = n
		}
		seen[name] = 0
		names[i] = name
	}
	return names
}

// buildTable turns a header and value rows into a Table.
func buildTable(header []string, rows [][]models.Value, width int) *models.Table {
	return models.NewTable(columnNames(header, width), rows)
}
