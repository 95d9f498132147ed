// Package parser loads CSV files and .xlsx workbooks into tables.
package parser

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/exdiff-go/pkg/exdiff/models"
)

// Kind is the format of a loaded file.
type Kind string

const (
	// KindCSV is a single table read from a .csv file.
	KindCSV Kind = "csv"
	// KindWorkbook is a set of sheets read from a .xlsx file.
	KindWorkbook Kind = "xlsx"
)

// Source is a loaded input file. Exactly one of Table and Workbook is set.
type Source struct {
	// Name is the declared file name.
	Name string
	// Kind is the detected format.
	Kind Kind
	// Table holds the parsed CSV content.
	Table *models.Table
	// Workbook holds the opened workbook.
	Workbook *Workbook
}

// Close releases resources held by the source.
func (s *Source) Close() error {
	if s == nil || s.Workbook == nil {
		return nil
	}
	return s.Workbook.Close()
}

// DetectKind returns the format implied by the file name's extension.
func DetectKind(name string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return KindCSV, nil
	case ".xlsx":
		return KindWorkbook, nil
	default:
		return "", NewFormatError(name, ErrUnsupportedFormat)
	}
}

// Load parses r according to the extension of name.
func Load(name string, r io.Reader) (*Source, error) {
	kind, err := DetectKind(name)
	if err != nil {
		return nil, err
	}

	src := &Source{Name: name, Kind: kind}
	switch kind {
	case KindCSV:
		src.Table, err = ReadCSV(name, r)
	case KindWorkbook:
		src.Workbook, err = OpenWorkbook(name, r)
	}
	if err != nil {
		return nil, err
	}
	return src, nil
}

// LoadFile opens and loads the file at path.
func LoadFile(path string) (*Source, error) {
	name := filepath.Base(path)
	if _, err := DetectKind(name); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(name, f)
}
