// Package valuecodec implements the float (C7), decimal (C8), and
// timestamp (C9) value-stream codecs layered on top of rleint and
// byterle.
package valuecodec

import (
	"math"

	"github.com/orcgo/orccore/endian"
	"github.com/orcgo/orccore/errs"
)

// engine is the byte order the float codecs in this package read and write
// with; the decimal and timestamp codecs do not use it. ORC's Float/Double streams are always little-endian;
// going through endian.EndianEngine rather than encoding/binary directly
// keeps every multi-byte read in the codec on one seam, should a
// big-endian variant ever be needed.
var engine = endian.GetLittleEndianEngine()

// DecodeFloat32 reads count little-endian IEEE-754 single-precision
// values, one per non-null row, with no NaN normalization and sign of
// zero preserved (spec.md §6: "no NaN normalization, no byte-order
// alternatives").
func DecodeFloat32(data []byte, count int) ([]float32, error) {
	if len(data) < count*4 {
		return nil, errs.ErrOutOfSpec
	}
	out := make([]float32, count)
	for i := range out {
		bits := engine.Uint32(data[i*4:])
		out[i] = math.Float32frombits(bits)
	}

	return out, nil
}

// EncodeFloat32 appends count little-endian IEEE-754 values to dst.
func EncodeFloat32(dst []byte, values []float32) []byte {
	for _, v := range values {
		dst = engine.AppendUint32(dst, math.Float32bits(v))
	}

	return dst
}

// DecodeFloat64 reads count little-endian IEEE-754 double-precision
// values, one per non-null row.
func DecodeFloat64(data []byte, count int) ([]float64, error) {
	if len(data) < count*8 {
		return nil, errs.ErrOutOfSpec
	}
	out := make([]float64, count)
	for i := range out {
		bits := engine.Uint64(data[i*8:])
		out[i] = math.Float64frombits(bits)
	}

	return out, nil
}

// EncodeFloat64 appends count little-endian IEEE-754 values to dst.
func EncodeFloat64(dst []byte, values []float64) []byte {
	for _, v := range values {
		dst = engine.AppendUint64(dst, math.Float64bits(v))
	}

	return dst
}
