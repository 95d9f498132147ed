package output

import (
	"encoding/json"
	"math"

	"github.com/ukaji3/exdiff-go/pkg/exdiff/models"
)

// ResultView is the JSON form of a comparison result.
type ResultView struct {
	// ID identifies the comparison when one was assigned by the caller.
	ID string `json:"id,omitempty"`
	// Left is the first input's file name.
	Left string `json:"left"`
	// Right is the second input's file name.
	Right string `json:"right"`
	// Sheet is the compared sheet, omitted for CSV inputs.
	Sheet string `json:"sheet,omitempty"`
	// Columns is the aligned column set.
	Columns []string `json:"columns"`
	// Report holds "old → new" strings per aligned cell.
	Report [][]string `json:"report"`
	// Mask marks differing cells.
	Mask [][]bool `json:"mask"`
	// Aligned holds both inputs reindexed onto Columns.
	Aligned AlignedView `json:"aligned"`
	// ChangedRows holds the first input's rows with any difference.
	ChangedRows RowsView `json:"changed_rows"`
	// Summary counts the differences.
	Summary models.Summary `json:"summary"`
}

// RowsView is the JSON form of a table's rows.
type RowsView struct {
	// Index holds each row's original position.
	Index []int `json:"index"`
	// Rows holds cell values; missing cells are null.
	Rows [][]interface{} `json:"rows"`
}

// AlignedView is the JSON form of the two aligned inputs.
type AlignedView struct {
	// Left is the first input's aligned table.
	Left RowsView `json:"left"`
	// Right is the second input's aligned table.
	Right RowsView `json:"right"`
}

// NewResultView converts a result for serialization.
func NewResultView(result *models.Result) ResultView {
	view := ResultView{
		Left:        result.LeftName,
		Right:       result.RightName,
		Sheet:       result.Sheet,
		Columns:     nonNil(result.Columns),
		Report:      result.Report,
		Mask:        result.Mask,
		Summary:     result.Summary,
		ChangedRows: newRowsView(result.ChangedRows),
		Aligned:     AlignedView{Left: newRowsView(nil), Right: newRowsView(nil)},
	}
	if view.Report == nil {
		view.Report = [][]string{}
	}
	if view.Mask == nil {
		view.Mask = [][]bool{}
	}
	if pair := result.Aligned; pair != nil {
		view.Aligned = AlignedView{Left: newRowsView(pair.Left), Right: newRowsView(pair.Right)}
	}
	return view
}

// newRowsView converts a table's rows. A nil table yields empty slices.
func newRowsView(t *models.Table) RowsView {
	rv := RowsView{Index: []int{}, Rows: [][]interface{}{}}
	if t == nil {
		return rv
	}
	for r, values := range t.Rows {
		row := make([]interface{}, len(values))
		for c, v := range values {
			row[c] = jsonValue(v)
		}
		rv.Rows = append(rv.Rows, row)
		rv.Index = append(rv.Index, t.Index[r])
	}
	return rv
}

// ToJSON serializes a comparison result.
func ToJSON(result *models.Result, pretty bool) ([]byte, error) {
	view := NewResultView(result)
	if pretty {
		return json.MarshalIndent(view, "", "  ")
	}
	return json.Marshal(view)
}

// jsonValue keeps infinities representable in JSON.
func jsonValue(v models.Value) interface{} {
	if f, ok := v.Float(); ok && math.IsInf(f, 0) {
		return v.String()
	}
	return v.Interface()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
