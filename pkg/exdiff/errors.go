package exdiff

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/exdiff-go/pkg/exdiff/parser"
)

// ErrFormatMismatch indicates one input is a CSV file and the other a workbook.
var ErrFormatMismatch = errors.New("input formats differ")

// ErrNoCommonSheet indicates two workbooks share no sheet name.
var ErrNoCommonSheet = errors.New("no common sheets")

// ErrSheetNotFound indicates the requested sheet is not common to both workbooks.
var ErrSheetNotFound = parser.ErrSheetNotFound

// ErrUnsupportedFormat and ErrInvalidFormat are the causes wrapped by a FormatError.
var (
	ErrUnsupportedFormat = parser.ErrUnsupportedFormat
	ErrInvalidFormat     = parser.ErrInvalidFormat
)

// FormatError represents an input that could not be loaded.
type FormatError = parser.FormatError

// FormatMismatchError represents a CSV file paired with a workbook.
type FormatMismatchError struct {
	Left      string
	LeftKind  parser.Kind
	Right     string
	RightKind parser.Kind
}

func (e *FormatMismatchError) Error() string {
	return fmt.Sprintf("cannot compare %s (%s) with %s (%s): both files must be CSV or both must be workbooks",
		e.Left, e.LeftKind, e.Right, e.RightKind)
}

func (e *FormatMismatchError) Unwrap() error {
	return ErrFormatMismatch
}

// NoCommonSheetError represents two workbooks without a shared sheet name.
type NoCommonSheetError struct {
	Left  string
	Right string
}

func (e *NoCommonSheetError) Error() string {
	return fmt.Sprintf("no common sheets found between %s and %s", e.Left, e.Right)
}

func (e *NoCommonSheetError) Unwrap() error {
	return ErrNoCommonSheet
}

// SheetNotFoundError represents a sheet selection outside the common sheets.
type SheetNotFoundError struct {
	Sheet     string
	Available []string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet %q is not present in both workbooks (common sheets: %s)",
		e.Sheet, strings.Join(e.Available, ", "))
}

func (e *SheetNotFoundError) Unwrap() error {
	return ErrSheetNotFound
}
