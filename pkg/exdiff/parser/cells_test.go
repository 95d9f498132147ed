package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/exdiff-go/pkg/exdiff/models"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected models.Value
	}{
		{"123", models.Number(123)},
		{"123.45", models.Number(123.45)},
		{"-100", models.Number(-100)},
		{"1e3", models.Number(1000)},
		{"hello", models.Text("hello")},
		{" 5", models.Text(" 5")},
		{"", models.Missing()},
		{"NaN", models.Missing()},
		{"N/A", models.Missing()},
		{"NULL", models.Missing()},
		{"NAN", models.Missing()},
		{"Nan", models.Missing()},
		{"+NaN", models.Missing()},
		{"True", models.Bool(true)},
		{"FALSE", models.Bool(false)},
		{"yes", models.Text("yes")},
	}

	for _, tt := range tests {
		result := parseValue(tt.input)
		assert.Equal(t, tt.expected, result, "parseValue(%q)", tt.input)
	}
}

func TestTypedValue(t *testing.T) {
	tests := []struct {
		raw      string
		cellType excelize.CellType
		expected models.Value
	}{
		{"", excelize.CellTypeSharedString, models.Missing()},
		{"42", excelize.CellTypeUnset, models.Number(42)},
		{"42", excelize.CellTypeNumber, models.Number(42)},
		{"NAN", excelize.CellTypeUnset, models.Missing()},
		{"42", excelize.CellTypeSharedString, models.Text("42")},
		{"42", excelize.CellTypeInlineString, models.Text("42")},
		{"1", excelize.CellTypeBool, models.Bool(true)},
		{"0", excelize.CellTypeBool, models.Bool(false)},
		{"#DIV/0!", excelize.CellTypeError, models.Text("#DIV/0!")},
		{"total", excelize.CellTypeFormula, models.Text("total")},
		{"2024-01-31T00:00:00Z", excelize.CellTypeDate, models.Text("2024-01-31T00:00:00Z")},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, typedValue(tt.raw, tt.cellType), "typedValue(%q, %v)", tt.raw, tt.cellType)
	}
}

func TestColumnNames(t *testing.T) {
	tests := []struct {
		name     string
		header   []string
		width    int
		expected []string
	}{
		{"plain", []string{"id", "name"}, 2, []string{"id", "name"}},
		{"blank names", []string{"id", "", " "}, 3, []string{"id", "Unnamed: 1", "Unnamed: 2"}},
		{"wider than header", []string{"id"}, 3, []string{"id", "Unnamed: 1", "Unnamed: 2"}},
		{"duplicates", []string{"a", "a", "a"}, 3, []string{"a", "a.1", "a.2"}},
		{"duplicate clashes with suffix", []string{"a", "a.1", "a"}, 3, []string{"a", "a.1", "a.2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, columnNames(tt.header, tt.width))
		})
	}
}

func TestFindDataRegion(t *testing.T) {
	rows := [][]string{
		{},
		{"", ""},
		{"", "id", "name"},
		{"", "1", ""},
		{},
		{"", "", "", "x"},
		{""},
	}

	region, ok := findDataRegion(rows)
	assert.True(t, ok)
	assert.Equal(t, dataRegion{HeaderRow: 2, LastRow: 5, Width: 4}, region)

	_, ok = findDataRegion([][]string{{}, {"", ""}})
	assert.False(t, ok)
}
