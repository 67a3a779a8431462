// Package batch implements the in-memory columnar batch model (spec.md
// §3, §9): typed value buffers, an LSB-first validity bitmap, and offset
// buffers for variable-length and nested columns, assembled by the
// column package's decoder and consumed by the column package's encoder.
package batch

import (
	"github.com/orcgo/orccore/byterle"
	"github.com/orcgo/orccore/valuecodec"
)

// Array is the common surface every typed batch column exposes.
type Array interface {
	// Len returns the number of logical rows (including nulls).
	Len() int
	// IsValid reports whether row i is non-null.
	IsValid(i int) bool
	// NullCount returns the number of null rows.
	NullCount() int
}

// base holds the fields shared by every concrete Array: row count and
// validity bitmap. Embed it in typed arrays rather than duplicating
// IsValid/NullCount on each one.
type base struct {
	length   int
	validity []byte // LSB-first; nil means "all valid"
}

func newBase(length int, validity []byte) base {
	return base{length: length, validity: validity}
}

func (b base) Len() int {
	return b.length
}

func (b base) IsValid(i int) bool {
	if b.validity == nil {
		return true
	}

	return byterle.IsValid(b.validity, i)
}

func (b base) NullCount() int {
	if b.validity == nil {
		return 0
	}

	return b.length - byterle.CountTrue(b.validity, b.length)
}

// Validity exposes the raw LSB-first bitmap, or nil if every row is
// valid.
func (b base) Validity() []byte {
	return b.validity
}

// BoolArray holds a Boolean column's decoded values.
type BoolArray struct {
	base
	Values []bool
}

// NewBoolArray builds a BoolArray. validity may be nil (all rows valid).
func NewBoolArray(values []bool, validity []byte) *BoolArray {
	return &BoolArray{base: newBase(len(values), validity), Values: values}
}

// Int64Array holds a Byte, Short, Int, Long, or Date column's decoded
// values, always widened to int64 (Date is days since the Unix epoch).
type Int64Array struct {
	base
	Values []int64
}

// NewInt64Array builds an Int64Array.
func NewInt64Array(values []int64, validity []byte) *Int64Array {
	return &Int64Array{base: newBase(len(values), validity), Values: values}
}

// Float32Array holds a Float column's decoded values.
type Float32Array struct {
	base
	Values []float32
}

// NewFloat32Array builds a Float32Array.
func NewFloat32Array(values []float32, validity []byte) *Float32Array {
	return &Float32Array{base: newBase(len(values), validity), Values: values}
}

// Float64Array holds a Double column's decoded values.
type Float64Array struct {
	base
	Values []float64
}

// NewFloat64Array builds a Float64Array.
func NewFloat64Array(values []float64, validity []byte) *Float64Array {
	return &Float64Array{base: newBase(len(values), validity), Values: values}
}

// BytesArray holds a String or Binary column's decoded values: a single
// concatenated data buffer plus a length-N+1 offset slice, Arrow-style
// (row i occupies Data[Offsets[i]:Offsets[i+1]]).
type BytesArray struct {
	base
	Data    []byte
	Offsets []int32
}

// NewBytesArray builds a BytesArray from per-row byte slices.
func NewBytesArray(values [][]byte, validity []byte) *BytesArray {
	offsets := make([]int32, len(values)+1)
	var total int32
	for i, v := range values {
		total += int32(len(v))
		offsets[i+1] = total
	}
	data := make([]byte, 0, total)
	for _, v := range values {
		data = append(data, v...)
	}

	return &BytesArray{base: newBase(len(values), validity), Data: data, Offsets: offsets}
}

// At returns row i's bytes. Callers must check IsValid first; a null
// row's slice is zero-length but not meaningful.
func (a *BytesArray) At(i int) []byte {
	return a.Data[a.Offsets[i]:a.Offsets[i+1]]
}

// NewBytesArrayFromOffsets builds a BytesArray directly from a shared data
// buffer and a pre-built (len(offsets)-1)-row offset slice, used when
// reshaping an existing BytesArray's row count without re-copying bytes
// (e.g. padding around null parent rows).
func NewBytesArrayFromOffsets(data []byte, offsets []int32, validity []byte) *BytesArray {
	return &BytesArray{base: newBase(len(offsets)-1, validity), Data: data, Offsets: offsets}
}

// DecimalArray holds a Decimal column's decoded values.
type DecimalArray struct {
	base
	Values []valuecodec.Decimal
}

// NewDecimalArray builds a DecimalArray.
func NewDecimalArray(values []valuecodec.Decimal, validity []byte) *DecimalArray {
	return &DecimalArray{base: newBase(len(values), validity), Values: values}
}

// TimestampArray holds a Timestamp column's decoded values: seconds since
// ORC's epoch plus nanosecond-of-second.
type TimestampArray struct {
	base
	Seconds []int64
	Nanos   []int64
}

// NewTimestampArray builds a TimestampArray.
func NewTimestampArray(seconds, nanos []int64, validity []byte) *TimestampArray {
	return &TimestampArray{base: newBase(len(seconds), validity), Seconds: seconds, Nanos: nanos}
}

// ListArray holds a List column: an offset slice over a single child
// Array holding every element from every row concatenated together.
type ListArray struct {
	base
	Offsets []int32
	Elem    Array
}

// NewListArray builds a ListArray.
func NewListArray(offsets []int32, elem Array, validity []byte) *ListArray {
	return &ListArray{base: newBase(len(offsets)-1, validity), Offsets: offsets, Elem: elem}
}

// MapArray holds a Map column: an offset slice over parallel key and
// value child Arrays.
type MapArray struct {
	base
	Offsets []int32
	Keys    Array
	Values  Array
}

// NewMapArray builds a MapArray.
func NewMapArray(offsets []int32, keys, values Array, validity []byte) *MapArray {
	return &MapArray{base: newBase(len(offsets)-1, validity), Offsets: offsets, Keys: keys, Values: values}
}

// StructArray holds a Struct column: one child Array per field, each the
// same length as the struct itself.
type StructArray struct {
	base
	Fields []Array
	Names  []string
}

// NewStructArray builds a StructArray.
func NewStructArray(length int, names []string, fields []Array, validity []byte) *StructArray {
	return &StructArray{base: newBase(length, validity), Names: names, Fields: fields}
}

// UnionArray holds a Union column: a per-row tag selecting which
// alternative Array holds that row's value, plus one child Array per
// alternative (each addressed by its own internal offset, not by row
// index).
type UnionArray struct {
	base
	Tags  []byte
	Alts  []Array
	Index []int32 // per-row index into the selected alternative's Array
}

// NewUnionArray builds a UnionArray.
func NewUnionArray(tags []byte, index []int32, alts []Array, validity []byte) *UnionArray {
	return &UnionArray{base: newBase(len(tags), validity), Tags: tags, Index: index, Alts: alts}
}
