package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/exdiff-go/pkg/exdiff/differ"
	"github.com/ukaji3/exdiff-go/pkg/exdiff/models"
)

func sampleResult(t *testing.T) *models.Result {
	t.Helper()

	a := models.NewTable([]string{"id", "name"}, [][]models.Value{
		{models.Number(1), models.Text("Al")},
		{models.Number(2), models.Text("Bo")},
		{models.Number(3), models.Text("Cy")},
	})
	b := models.NewTable([]string{"id", "name", "ok"}, [][]models.Value{
		{models.Number(1), models.Text("Al")},
		{models.Number(2), models.Text("Bob"), models.Bool(true)},
		{models.Number(3), models.Text("Cy")},
	})

	result, err := differ.Compare(a, b)
	require.NoError(t, err)
	result.LeftName, result.RightName = "old.csv", "new.csv"
	return result
}

func TestWriteCSV(t *testing.T) {
	result := sampleResult(t)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, result, CSVOptions{}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"id", "name", "ok"},
		{"", "", ""},
		{"", "Bo → Bob", "nan → true"},
		{"", "", ""},
	}, records)
}

func TestWriteCSVWithBOM(t *testing.T) {
	result := sampleResult(t)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, result, CSVOptions{BOMPrefix: true}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
}

func TestWriteCSVEmpty(t *testing.T) {
	result, err := differ.Compare(models.NewTable(nil, nil), models.NewTable(nil, nil))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, result, CSVOptions{}))
	assert.Empty(t, buf.String())
}

func TestWriteWorkbook(t *testing.T) {
	result := sampleResult(t)

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, result))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{DifferencesSheet, ChangedRowsSheet}, f.GetSheetList())

	diffRows, err := f.GetRows(DifferencesSheet)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(diffRows), 3)
	assert.Equal(t, []string{"id", "name", "ok"}, diffRows[0])
	assert.Equal(t, []string{"", "Bo → Bob", "nan → true"}, diffRows[2])

	changedStyle, err := f.GetCellStyle(DifferencesSheet, "B3")
	require.NoError(t, err)
	plainStyle, err := f.GetCellStyle(DifferencesSheet, "A3")
	require.NoError(t, err)
	assert.NotEqual(t, plainStyle, changedStyle)

	changedRows, err := f.GetRows(ChangedRowsSheet)
	require.NoError(t, err)
	require.Len(t, changedRows, 2)
	assert.Equal(t, []string{"id", "name", "ok"}, changedRows[0])
	for cell, want := range map[string]string{"A2": "2", "B2": "Bo", "C2": ""} {
		got, err := f.GetCellValue(ChangedRowsSheet, cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, cell)
	}

	cellType, err := f.GetCellType(ChangedRowsSheet, "A2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, cellType)
}

func TestToJSON(t *testing.T) {
	result := sampleResult(t)

	data, err := ToJSON(result, false)
	require.NoError(t, err)

	var view struct {
		Left        string          `json:"left"`
		Sheet       string          `json:"sheet"`
		Columns     []string        `json:"columns"`
		Report      [][]string      `json:"report"`
		Mask        [][]bool        `json:"mask"`
		ChangedRows json.RawMessage `json:"changed_rows"`
		Aligned     struct {
			Left  json.RawMessage `json:"left"`
			Right json.RawMessage `json:"right"`
		} `json:"aligned"`
		Summary models.Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(data, &view))

	assert.Equal(t, "old.csv", view.Left)
	assert.Empty(t, view.Sheet)
	assert.Equal(t, []string{"id", "name", "ok"}, view.Columns)
	assert.Equal(t, "Bo → Bob", view.Report[1][1])
	assert.Equal(t, []bool{false, true, true}, view.Mask[1])
	assert.JSONEq(t, `{"index":[1],"rows":[[2,"Bo",null]]}`, string(view.ChangedRows))
	assert.JSONEq(t, `{"index":[0,1,2],"rows":[[1,"Al",null],[2,"Bo",null],[3,"Cy",null]]}`, string(view.Aligned.Left))
	assert.JSONEq(t, `{"index":[0,1,2],"rows":[[1,"Al",null],[2,"Bob",true],[3,"Cy",null]]}`, string(view.Aligned.Right))
	assert.Equal(t, 2, view.Summary.ChangedCells)
	assert.Equal(t, []string{"ok"}, view.Summary.RightOnlyColumns)

	pretty, err := ToJSON(result, true)
	require.NoError(t, err)
	assert.Contains(t, string(pretty), "\n  \"columns\"")
}

func TestToJSONEmptyAndInfinite(t *testing.T) {
	empty, err := differ.Compare(models.NewTable(nil, nil), models.NewTable(nil, nil))
	require.NoError(t, err)

	data, err := ToJSON(empty, false)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"columns":[]`)
	assert.Contains(t, string(data), `"report":[]`)
	assert.Contains(t, string(data), `"changed_rows":{"index":[],"rows":[]}`)
	assert.Contains(t, string(data), `"aligned":{"left":{"index":[],"rows":[]},"right":{"index":[],"rows":[]}}`)

	view := NewResultView(&models.Result{})
	assert.Empty(t, view.Aligned.Left.Rows)
	assert.NotNil(t, view.Aligned.Right.Index)

	a := models.NewTable([]string{"v"}, [][]models.Value{{models.Number(math.Inf(1))}})
	b := models.NewTable([]string{"v"}, [][]models.Value{{models.Number(1)}})
	inf, err := differ.Compare(a, b)
	require.NoError(t, err)

	data, err = ToJSON(inf, false)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rows":[["+Inf"]]`)
}

func TestWriteTable(t *testing.T) {
	result := sampleResult(t)

	var buf bytes.Buffer
	WriteTable(&buf, result, TableOptions{})
	out := buf.String()

	for _, want := range []string{"id", "name", "ok", "Bo → Bob", "nan → true", "2 changed cells in 1 of 3 rows across 3 columns"} {
		assert.Contains(t, out, want)
	}

	buf.Reset()
	WriteTable(&buf, result, TableOptions{ChangedOnly: true, Color: true})
	out = buf.String()
	assert.Contains(t, out, "Bo")
	assert.NotContains(t, out, "Bo → Bob")
	assert.NotContains(t, out, "Cy")
}

func TestWriteTableInputs(t *testing.T) {
	result := sampleResult(t)

	var buf bytes.Buffer
	WriteTable(&buf, result, TableOptions{})
	assert.NotContains(t, buf.String(), "data from old.csv")

	buf.Reset()
	WriteTable(&buf, result, TableOptions{Inputs: true})
	out := buf.String()

	left := strings.Index(out, "data from old.csv")
	right := strings.Index(out, "data from new.csv")
	report := strings.Index(out, "Bo → Bob")
	require.True(t, left >= 0 && right > left && report > right, out)
	assert.Contains(t, out[left:right], "Cy")
	assert.Contains(t, out[right:report], "Bob")
	assert.Contains(t, out[right:report], "true")
}

func TestSummaryLine(t *testing.T) {
	result := sampleResult(t)
	assert.Equal(t, "2 changed cells in 1 of 3 rows across 3 columns", SummaryLine(result))

	result.Sheet = "Data"
	assert.True(t, strings.HasPrefix(SummaryLine(result), `sheet "Data": `))
}
