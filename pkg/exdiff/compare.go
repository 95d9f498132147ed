package exdiff

import (
	"errors"
	"io"

	"github.com/ukaji3/exdiff-go/pkg/exdiff/differ"
	"github.com/ukaji3/exdiff-go/pkg/exdiff/models"
	"github.com/ukaji3/exdiff-go/pkg/exdiff/parser"
)

// Input is a named byte stream to compare.
type Input struct {
	// Name is the declared file name; its extension selects the format.
	Name string
	// Reader supplies the file content.
	Reader io.Reader
}

// Gate checks that two sources can be compared. For workbooks it returns
// the sheet names present in both, in the order of the first workbook.
func Gate(left, right *parser.Source) (Mode, []string, error) {
	if left.Kind != right.Kind {
		return "", nil, &FormatMismatchError{
			Left:      left.Name,
			LeftKind:  left.Kind,
			Right:     right.Name,
			RightKind: right.Kind,
		}
	}

	if left.Kind == parser.KindCSV {
		return ModeTable, nil, nil
	}

	var common []string
	for _, sheet := range left.Workbook.SheetNames() {
		if right.Workbook.HasSheet(sheet) {
			common = append(common, sheet)
		}
	}
	if len(common) == 0 {
		return "", nil, &NoCommonSheetError{Left: left.Name, Right: right.Name}
	}
	return ModeWorkbook, common, nil
}

// Comparison holds two loaded inputs that passed the compatibility gate.
type Comparison struct {
	left   *parser.Source
	right  *parser.Source
	mode   Mode
	sheets []string
}

// Open loads both inputs and applies the compatibility gate.
// On error nothing stays open.
func Open(left, right Input) (*Comparison, error) {
	l, err := parser.Load(left.Name, left.Reader)
	if err != nil {
		return nil, err
	}

	r, err := parser.Load(right.Name, right.Reader)
	if err != nil {
		l.Close()
		return nil, err
	}

	return newComparison(l, r)
}

// Mode returns the comparison mode.
func (c *Comparison) Mode() Mode { return c.mode }

// CommonSheets returns the sheet names shared by both workbooks.
// It is empty in table mode.
func (c *Comparison) CommonSheets() []string {
	return append([]string(nil), c.sheets...)
}

// Compare diffs the selected table pair.
func (c *Comparison) Compare(opts Options) (*models.Result, error) {
	var (
		a, b  *models.Table
		sheet string
		err   error
	)

	switch c.mode {
	case ModeTable:
		a, b = c.left.Table, c.right.Table
	case ModeWorkbook:
		sheet, err = c.selectSheet(opts.Sheet)
		if err != nil {
			return nil, err
		}
		if a, err = c.left.Workbook.Table(sheet); err != nil {
			return nil, err
		}
		if b, err = c.right.Workbook.Table(sheet); err != nil {
			return nil, err
		}
	}

	result, err := differ.Compare(a, b)
	if err != nil {
		return nil, err
	}
	result.LeftName = c.left.Name
	result.RightName = c.right.Name
	result.Sheet = sheet
	return result, nil
}

func (c *Comparison) selectSheet(sheet string) (string, error) {
	if sheet == "" {
		return c.sheets[0], nil
	}
	for _, s := range c.sheets {
		if s == sheet {
			return s, nil
		}
	}
	return "", &SheetNotFoundError{Sheet: sheet, Available: c.CommonSheets()}
}

// Close releases both inputs.
func (c *Comparison) Close() error {
	return errors.Join(c.left.Close(), c.right.Close())
}

// CompareFiles compares two files on disk.
func CompareFiles(leftPath, rightPath string, opts Options) (*models.Result, error) {
	c, err := OpenFiles(leftPath, rightPath)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	return c.Compare(opts)
}

// OpenFiles loads two files on disk and applies the compatibility gate.
func OpenFiles(leftPath, rightPath string) (*Comparison, error) {
	l, err := parser.LoadFile(leftPath)
	if err != nil {
		return nil, err
	}

	r, err := parser.LoadFile(rightPath)
	if err != nil {
		l.Close()
		return nil, err
	}

	return newComparison(l, r)
}

// newComparison gates two loaded sources, closing both when they are incompatible.
func newComparison(l, r *parser.Source) (*Comparison, error) {
	mode, sheets, err := Gate(l, r)
	if err != nil {
		l.Close()
		r.Close()
		return nil, err
	}
	return &Comparison{left: l, right: r, mode: mode, sheets: sheets}, nil
}
