package parser

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat indicates the file extension is neither .csv nor .xlsx.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrInvalidFormat indicates the content could not be parsed as the declared format.
var ErrInvalidFormat = errors.New("invalid file content")

// ErrSheetNotFound indicates a workbook has no sheet with the requested name.
var ErrSheetNotFound = errors.New("sheet not found")

// FormatError represents a file that could not be loaded.
type FormatError struct {
	File string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("cannot read %q: %v", e.File, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// NewFormatError creates a new FormatError.
func NewFormatError(file string, err error) *FormatError {
	return &FormatError{
		File: file,
		Err:  err,
	}
}

// invalid wraps cause so that the result matches ErrInvalidFormat.
func invalid(file string, cause error) *FormatError {
	return NewFormatError(file, fmt.Errorf("%w: %v", ErrInvalidFormat, cause))
}
