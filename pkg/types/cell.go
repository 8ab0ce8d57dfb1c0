package types

import (
	"bytes"
	"math"
	"strconv"
)

// Kind identifies which variant of a CellValue is active.
type Kind int

// Cell kinds. The zero Kind is KindNull so the zero CellValue is Null.
const (
	KindNull Kind = iota
	KindInteger
	KindReal
	KindText
	KindBlob
)

// Display sentinels for cells whose content is not rendered verbatim.
const (
	NullSentinel = "<null>"
	BlobSentinel = "<blob>"
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindText:
		return "text"
	case KindBlob:
		return "blob"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// CellValue holds the typed content of one table cell. Exactly one variant
// is active; only the payload field matching kind is meaningful.
type CellValue struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    []byte
}

// Row is an ordered sequence of cells.
type Row []CellValue

// Rows is an ordered sequence of rows as produced by a loader.
type Rows []Row

// Integer returns an Integer cell.
func Integer(v int64) CellValue { return CellValue{kind: KindInteger, i: v} }

// Real returns a Real cell.
func Real(v float64) CellValue { return CellValue{kind: KindReal, f: v} }

// Text returns a Text cell.
func Text(v string) CellValue { return CellValue{kind: KindText, s: v} }

// Blob returns a Blob cell. The bytes are copied.
func Blob(v []byte) CellValue {
	cp := make([]byte, len(v))
	copy(cp, v)
	return CellValue{kind: KindBlob, b: cp}
}

// Null returns a Null cell.
func Null() CellValue { return CellValue{} }

// Kind returns the active variant.
func (c CellValue) Kind() Kind { return c.kind }

// IsNull reports whether the cell is Null.
func (c CellValue) IsNull() bool { return c.kind == KindNull }

// AsInteger returns the integer payload and whether the cell is an Integer.
func (c CellValue) AsInteger() (int64, bool) { return c.i, c.kind == KindInteger }

// AsReal returns the float payload and whether the cell is a Real.
func (c CellValue) AsReal() (float64, bool) { return c.f, c.kind == KindReal }

// AsText returns the string payload and whether the cell is a Text.
func (c CellValue) AsText() (string, bool) { return c.s, c.kind == KindText }

// AsBlob returns the byte payload and whether the cell is a Blob.
// The returned slice must not be modified.
func (c CellValue) AsBlob() ([]byte, bool) { return c.b, c.kind == KindBlob }

// Equal reports whether two cells hold the same variant and payload.
// Reals compare numerically, with NaN equal to NaN.
func (c CellValue) Equal(o CellValue) bool {
	if c.kind != o.kind {
		return false
	}
	switch c.kind {
	case KindNull:
		return true
	case KindInteger:
		return c.i == o.i
	case KindReal:
		return c.f == o.f || (math.IsNaN(c.f) && math.IsNaN(o.f))
	case KindText:
		return c.s == o.s
	case KindBlob:
		return bytes.Equal(c.b, o.b)
	default:
		return false
	}
}

// String returns Format(c).
func (c CellValue) String() string { return Format(c) }

// Format renders a cell for display. Blob and Null render as fixed
// sentinels; blob bytes are never decoded.
func Format(c CellValue) string {
	switch c.kind {
	case KindInteger:
		return strconv.FormatInt(c.i, 10)
	case KindReal:
		return strconv.FormatFloat(c.f, 'f', -1, 64)
	case KindText:
		return c.s
	case KindBlob:
		return BlobSentinel
	case KindNull:
		return NullSentinel
	default:
		return NullSentinel
	}
}

// Strings formats every cell of the row.
func (r Row) Strings() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = Format(c)
	}
	return out
}

// TextRow builds a row of Text cells, one per field.
func TextRow(fields ...string) Row {
	row := make(Row, len(fields))
	for i, f := range fields {
		row[i] = Text(f)
	}
	return row
}
