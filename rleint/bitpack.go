package rleint

import (
	"bytes"
	"io"

	"github.com/icza/bitio"

	"github.com/orcgo/orccore/errs"
)

// BytesForPacked returns the number of whole bytes needed to pack count
// values at width bits each, rounding up for the trailing padding §4.2
// requires.
func BytesForPacked(count, width int) int {
	bits := count * width

	return (bits + 7) / 8
}

// PackValues bit-packs values MSB-first at the given (aligned) bit width,
// head-to-tail with no inter-value padding, padding the final byte with
// zero bits. width must already be one of ORC's aligned write widths; use
// ClosestAlignedWidth beforehand if it might not be.
//
// This is the write side of C2: the only bit-packing ORC's writer ever
// performs, at a width drawn from the aligned table.
func PackValues(values []uint64, width int) ([]byte, error) {
	if width < 1 || width > 64 {
		return nil, errs.ErrBitWidthRange
	}

	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	for _, v := range values {
		if err := w.WriteBits(v, uint8(width)); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// UnpackValues reads count values packed MSB-first at the given bit width
// from data. Unlike the write path, width may be any value in 1..64: ORC
// readers must accept bit widths a writer would never emit (legacy files,
// Patched-Base base/patch widths that are not independently aligned).
func UnpackValues(data []byte, width int, count int) ([]uint64, error) {
	if width < 1 || width > 64 {
		return nil, errs.ErrBitWidthRange
	}

	r := bitio.NewReader(bytes.NewReader(data))
	out := make([]uint64, count)
	for i := 0; i < count; i++ {
		v, err := r.ReadBits(uint8(width))
		if err != nil {
			if err == io.EOF {
				return nil, errs.ErrRLERunTruncated
			}

			return nil, err
		}
		out[i] = v
	}

	return out, nil
}
