package parser

import (
	"math"
	"strconv"

	"github.com/ukaji3/exdiff-go/pkg/exdiff/models"
	"github.com/xuri/excelize/v2"
)

// missingMarkers are field contents read as blank cells.
var missingMarkers = map[string]struct{}{
	"":     {},
	"nan":  {},
	"NaN":  {},
	"-nan": {},
	"-NaN": {},
	"NA":   {},
	"N/A":  {},
	"n/a":  {},
	"NULL": {},
	"null": {},
	"None": {},
	"#N/A": {},
	"<NA>": {},
}

// parseValue infers the type of a text field.
// Missing markers become Missing, boolean words become Bool,
// anything strconv accepts as a float becomes Number, the rest stays Text.
// NaN in any spelling strconv accepts ("NAN", "+nan") is Missing.
func parseValue(s string) models.Value {
	if _, ok := missingMarkers[s]; ok {
		return models.Missing()
	}
	switch s {
	case "true", "True", "TRUE":
		return models.Bool(true)
	case "false", "False", "FALSE":
		return models.Bool(false)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return number(f)
	}
	return models.Text(s)
}

// typedValue converts a raw workbook cell according to its stored type.
// String cells are never coerced to numbers.
func typedValue(raw string, cellType excelize.CellType) models.Value {
	if raw == "" {
		return models.Missing()
	}
	switch cellType {
	case excelize.CellTypeBool:
		return models.Bool(raw == "1" || raw == "TRUE" || raw == "true")
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError:
		return models.Text(raw)
	default:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return number(f)
		}
		return models.Text(raw)
	}
}

// number wraps f, reading NaN as a blank cell.
func number(f float64) models.Value {
	if math.IsNaN(f) {
		return models.Missing()
	}
	return models.Number(f)
}
