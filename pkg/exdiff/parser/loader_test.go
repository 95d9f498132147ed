package parser

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/exdiff-go/pkg/exdiff/models"
)

type sheetFixture struct {
	name  string
	cells map[string]interface{}
}

// workbookBytes builds an .xlsx file in memory.
func workbookBytes(t *testing.T, sheets ...sheetFixture) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheet.name))
		} else {
			_, err := f.NewSheet(sheet.name)
			require.NoError(t, err)
		}
		for cell, v := range sheet.cells {
			require.NoError(t, f.SetCellValue(sheet.name, cell, v))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name    string
		want    Kind
		wantErr bool
	}{
		{"data.csv", KindCSV, false},
		{"DATA.CSV", KindCSV, false},
		{"book.xlsx", KindWorkbook, false},
		{"Book.XLSX", KindWorkbook, false},
		{"legacy.xls", "", true},
		{"notes.txt", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		kind, err := DetectKind(tt.name)
		if tt.wantErr {
			var formatErr *FormatError
			require.ErrorAs(t, err, &formatErr, tt.name)
			assert.Equal(t, tt.name, formatErr.File)
			assert.ErrorIs(t, err, ErrUnsupportedFormat)
			continue
		}
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, kind, tt.name)
	}
}

func TestReadCSV(t *testing.T) {
	content := "\xEF\xBB\xBFid,name,active,score\n" +
		"1,Al,true,\n" +
		"2,\"Bo, Jr.\",FALSE,3.5\n" +
		"\n" +
		"3,Cy\n"

	table, err := ReadCSV("people.csv", strings.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "active", "score"}, table.Columns)
	require.Equal(t, 3, table.NumRows())
	assert.Equal(t, []int{0, 1, 2}, table.Index)

	assert.Equal(t, []models.Value{models.Number(1), models.Text("Al"), models.Bool(true), models.Missing()}, table.Rows[0])
	assert.Equal(t, []models.Value{models.Number(2), models.Text("Bo, Jr."), models.Bool(false), models.Number(3.5)}, table.Rows[1])
	assert.Equal(t, []models.Value{models.Number(3), models.Text("Cy"), models.Missing(), models.Missing()}, table.Rows[2])
}

func TestReadCSVEmpty(t *testing.T) {
	table, err := ReadCSV("empty.csv", strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, table.NumCols())
	assert.Equal(t, 0, table.NumRows())
}

func TestReadCSVHeaderOnly(t *testing.T) {
	table, err := ReadCSV("header.csv", strings.NewReader("a,b,a\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "a.1"}, table.Columns)
	assert.Equal(t, 0, table.NumRows())
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"too many fields", "a,b\n1,2,3\n"},
		{"bad quoting", "a,b\n\"1,2\n3\"x,4\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV("bad.csv", strings.NewReader(tt.content))
			var formatErr *FormatError
			require.ErrorAs(t, err, &formatErr)
			assert.Equal(t, "bad.csv", formatErr.File)
			assert.ErrorIs(t, err, ErrInvalidFormat)
		})
	}
}

func TestLoadWorkbook(t *testing.T) {
	data := workbookBytes(t,
		sheetFixture{name: "People", cells: map[string]interface{}{
			"A2": "id", "B2": "name", "C2": "active",
			"A3": 1, "B3": "Al", "C3": true,
			"A4": 2.5, "B4": "5",
			"A6": 4, "D6": "extra",
		}},
		sheetFixture{name: "Empty"},
	)

	src, err := Load("book.xlsx", bytes.NewReader(data))
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, KindWorkbook, src.Kind)
	assert.Nil(t, src.Table)
	require.NotNil(t, src.Workbook)
	assert.Equal(t, []string{"People", "Empty"}, src.Workbook.SheetNames())
	assert.True(t, src.Workbook.HasSheet("Empty"))
	assert.False(t, src.Workbook.HasSheet("Other"))

	table, err := src.Workbook.Table("People")
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "active", "Unnamed: 3"}, table.Columns)
	require.Equal(t, 4, table.NumRows())
	assert.Equal(t, []models.Value{models.Number(1), models.Text("Al"), models.Bool(true), models.Missing()}, table.Rows[0])
	assert.Equal(t, []models.Value{models.Number(2.5), models.Text("5"), models.Missing(), models.Missing()}, table.Rows[1])
	assert.Equal(t, []models.Value{models.Missing(), models.Missing(), models.Missing(), models.Missing()}, table.Rows[2])
	assert.Equal(t, []models.Value{models.Number(4), models.Missing(), models.Missing(), models.Text("extra")}, table.Rows[3])

	empty, err := src.Workbook.Table("Empty")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.NumCols())
	assert.Equal(t, 0, empty.NumRows())

	_, err = src.Workbook.Table("Other")
	assert.ErrorIs(t, err, ErrSheetNotFound)
	assert.Contains(t, err.Error(), `"Other" in book.xlsx`)
}

func TestLoadInvalidWorkbook(t *testing.T) {
	_, err := Load("broken.xlsx", strings.NewReader("not a zip archive"))

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "broken.xlsx", formatErr.File)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("a\n1\n"), 0644))

	src, err := LoadFile(path)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, "data.csv", src.Name)
	assert.Equal(t, KindCSV, src.Kind)
	assert.Equal(t, 1, src.Table.NumRows())

	_, err = LoadFile(filepath.Join(tmpDir, "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadFile(filepath.Join(tmpDir, "data.json"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
