package rleint

import "github.com/orcgo/orccore/errs"

// decodeBitWidth maps the 5-bit width field used throughout RLE v2 headers
// (Direct, Patched-Base value/patch widths, Delta) to an actual bit width.
// The table is non-contiguous above index 23: ORC only allows the "round"
// widths 26, 28, 30, 32, 40, 48, 56, 64 beyond that point.
var decodeBitWidthTable = [32]int{
	1, 2, 3, 4, 5, 6, 7, 8,
	9, 10, 11, 12, 13, 14, 15, 16,
	17, 18, 19, 20, 21, 22, 23, 24,
	26, 28, 30, 32, 40, 48, 56, 64,
}

// encodeBitWidthTable is the inverse of decodeBitWidthTable, indexed by
// bit width (1..64); entries for widths that are not directly encodable
// (25, 27, 29, 31, 33..39, ...) are left at -1 and must be rounded up first
// via ClosestAlignedWidth.
var encodeBitWidthTable = func() [65]int8 {
	var t [65]int8
	for i := range t {
		t[i] = -1
	}
	for code, width := range decodeBitWidthTable {
		t[width] = int8(code)
	}

	return t
}()

// alignedWidths is decodeBitWidthTable sorted ascending, used to find the
// nearest legal write width at or above a required bit count.
var alignedWidths = decodeBitWidthTable

// DecodeBitWidth returns the bit width encoded by the 5-bit field value
// code (0..31). The result is always in 1..64.
func DecodeBitWidth(code int) (int, error) {
	if code < 0 || code > 31 {
		return 0, errs.ErrBitWidthRange
	}

	return decodeBitWidthTable[code], nil
}

// EncodeBitWidth returns the 5-bit field value for an aligned bit width.
// width must be one of the values in decodeBitWidthTable; use
// ClosestAlignedWidth first if it might not be.
func EncodeBitWidth(width int) (int, error) {
	if width < 1 || width > 64 || encodeBitWidthTable[width] < 0 {
		return 0, errs.ErrUnalignedBitWidth
	}

	return int(encodeBitWidthTable[width]), nil
}

// ClosestAlignedWidth rounds bits up to the smallest aligned width ORC's
// write path is allowed to emit. It does not panic: bits <= 0 yields 1 and
// bits > 64 yields 64.
func ClosestAlignedWidth(bits int) int {
	if bits <= 0 {
		return 1
	}
	for _, w := range alignedWidths {
		if w >= bits {
			return w
		}
	}

	return 64
}

// BitsForUnsignedValue returns the minimum number of bits needed to
// represent v in an unsigned binary field (0 requires 1 bit, matching
// ORC's convention of never emitting a zero-width value field).
func BitsForUnsignedValue(v uint64) int {
	bits := 0
	for v > 0 {
		bits++
		v >>= 1
	}
	if bits == 0 {
		bits = 1
	}

	return bits
}
