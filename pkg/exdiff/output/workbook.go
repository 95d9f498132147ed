package output

import (
	"fmt"
	"io"

	"github.com/ukaji3/exdiff-go/pkg/exdiff/models"
	"github.com/xuri/excelize/v2"
)

const (
	// ReportWorkbookName is the download name of the workbook report.
	ReportWorkbookName = "difference_report.xlsx"
	// WorkbookContentType is the MIME type of the workbook report.
	WorkbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// DifferencesSheet holds the difference report.
	DifferencesSheet = "Differences"
	// ChangedRowsSheet holds the changed rows with their original values.
	ChangedRowsSheet = "ChangedRowsOnly"

	// changedFill is the background of changed cells.
	changedFill = "FFDDDD"
)

// WriteWorkbook writes the report and the changed rows as two sheets of one workbook.
func WriteWorkbook(w io.Writer, result *models.Result) error {
	f, err := BuildWorkbook(result)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// BuildWorkbook creates the report workbook in memory. The caller closes it.
func BuildWorkbook(result *models.Result) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), DifferencesSheet); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(ChangedRowsSheet); err != nil {
		f.Close()
		return nil, err
	}

	if err := writeDifferences(f, result); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeChangedRows(f, result.ChangedRows); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeDifferences(f *excelize.File, result *models.Result) error {
	if err := writeHeader(f, DifferencesSheet, result.Columns); err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{changedFill}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	for r, record := range result.Report {
		row := make([]interface{}, len(record))
		for c, s := range record {
			row[c] = s
		}
		if err := setRow(f, DifferencesSheet, r+2, row); err != nil {
			return err
		}
		for c, diff := range result.Mask[r] {
			if !diff {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(DifferencesSheet, cell, cell, style); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeChangedRows(f *excelize.File, t *models.Table) error {
	if t == nil {
		return nil
	}
	if err := writeHeader(f, ChangedRowsSheet, t.Columns); err != nil {
		return err
	}
	for r, values := range t.Rows {
		row := make([]interface{}, len(values))
		for c, v := range values {
			row[c] = v.Interface()
		}
		if err := setRow(f, ChangedRowsSheet, r+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, columns []string) error {
	row := make([]interface{}, len(columns))
	for i, c := range columns {
		row[i] = c
	}
	return setRow(f, sheet, 1, row)
}

// setRow writes values starting at column A of the 1-based row.
func setRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
