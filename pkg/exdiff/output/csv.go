// Package output serializes comparison results as CSV, workbooks, JSON and terminal tables.
package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ukaji3/exdiff-go/pkg/exdiff/models"
)

const (
	// ReportCSVName is the download name of the CSV report.
	ReportCSVName = "difference_report.csv"
	// CSVContentType is the MIME type of the CSV report.
	CSVContentType = "text/csv"
)

// CSVOptions configures CSV export.
type CSVOptions struct {
	// BOMPrefix adds a UTF-8 BOM so spreadsheet applications detect the encoding.
	BOMPrefix bool
}

// WriteCSV writes the difference report: a header of aligned column names,
// then one record per aligned row.
func WriteCSV(w io.Writer, result *models.Result, opts CSVOptions) error {
	if opts.BOMPrefix {
		if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	if len(result.Columns) > 0 {
		if err := writer.Write(result.Columns); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range result.Report {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
