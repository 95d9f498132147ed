// Package models defines data structures for table comparison.
package models

import (
	"math"
	"strconv"
)

// MissingLiteral is the rendering of a Missing value in reports.
const MissingLiteral = "nan"

// Kind identifies the variant held by a Value.
type Kind int

const (
	// KindMissing marks a blank or absent cell.
	KindMissing Kind = iota
	// KindNumber marks a numeric cell.
	KindNumber
	// KindText marks a text cell.
	KindText
	// KindBool marks a boolean cell.
	KindBool
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	default:
		return "missing"
	}
}

// Value is a single cell value. The zero Value is Missing.
type Value struct {
	kind Kind
	num  float64
	text string
	b    bool
}

// Missing returns the missing value.
func Missing() Value { return Value{} }

// Number returns a numeric value. NaN is not a number a cell can hold,
// so Number(NaN) is Missing.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Value{}
	}
	return Value{kind: KindNumber, num: f}
}

// Text returns a text value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind returns the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether v is the missing value.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Float returns the numeric payload and whether v is a number.
func (v Value) Float() (float64, bool) { return v.num, v.kind == KindNumber }

// Str returns the text payload and whether v is text.
func (v Value) Str() (string, bool) { return v.text, v.kind == KindText }

// Boolean returns the boolean payload and whether v is a boolean.
func (v Value) Boolean() (bool, bool) { return v.b, v.kind == KindBool }

// Equal reports whether v and o hold the same value.
// Two missing values are equal, and values of different kinds never are,
// so Text("5") differs from Number(5).
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindMissing:
		return true
	case KindNumber:
		return v.num == o.num
	case KindText:
		return v.text == o.text
	case KindBool:
		return v.b == o.b
	}
	return false
}

// String renders v for reports.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindText:
		return v.text
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return MissingLiteral
	}
}

// Interface returns v as a plain Go value: nil, float64, string or bool.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindText:
		return v.text
	case KindBool:
		return v.b
	default:
		return nil
	}
}
