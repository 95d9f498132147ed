package parser

import (
	"fmt"
	"io"

	"github.com/ukaji3/exdiff-go/pkg/exdiff/models"
	"github.com/xuri/excelize/v2"
)

// Workbook is an opened .xlsx file whose sheets are read on demand.
type Workbook struct {
	name   string
	file   *excelize.File
	sheets []string
}

// OpenWorkbook opens workbook content. Only the sheet list is read upfront.
func OpenWorkbook(name string, r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, invalid(name, err)
	}
	return &Workbook{
		name:   name,
		file:   f,
		sheets: f.GetSheetList(),
	}, nil
}

// Name returns the workbook's file name.
func (w *Workbook) Name() string { return w.name }

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return append([]string(nil), w.sheets...)
}

// HasSheet reports whether the workbook contains the named sheet.
func (w *Workbook) HasSheet(sheet string) bool {
	for _, s := range w.sheets {
		if s == sheet {
			return true
		}
	}
	return false
}

// Table reads one sheet into a Table. The first non-empty row is the header.
func (w *Workbook) Table(sheet string) (*models.Table, error) {
	if !w.HasSheet(sheet) {
		return nil, fmt.Errorf("%w: %q in %s", ErrSheetNotFound, sheet, w.name)
	}

	rows, err := w.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, invalid(w.name, err)
	}

	region, ok := findDataRegion(rows)
	if !ok {
		return models.NewTable(nil, nil), nil
	}

	values := make([][]models.Value, 0, region.LastRow-region.HeaderRow)
	for rowIdx := region.HeaderRow + 1; rowIdx <= region.LastRow; rowIdx++ {
		row := make([]models.Value, region.Width)
		for colIdx, raw := range rows[rowIdx] {
			if raw == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, invalid(w.name, err)
			}
			cellType, err := w.file.GetCellType(sheet, cellName)
			if err != nil {
				return nil, invalid(w.name, err)
			}
			row[colIdx] = typedValue(raw, cellType)
		}
		values = append(values, row)
	}

	return buildTable(rows[region.HeaderRow], values, region.Width), nil
}

// Close releases the underlying workbook.
func (w *Workbook) Close() error {
	return w.file.Close()
}
