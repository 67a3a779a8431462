package valuecodec

import (
	"bytes"
	"math/big"

	"github.com/orcgo/orccore/rleint"
)

// Decimal is an arbitrary-precision decimal value: unscaledValue *
// 10^-scale, matching ORC's unbounded decimal representation.
type Decimal struct {
	Unscaled *big.Int
	Scale    int32
}

// DecodeDecimal reads count decimal values from a Data stream (a sequence
// of zigzag-encoded unbounded varints, one per non-null row) and a
// Secondary stream (count signed-RLE-encoded per-value scales). Each
// Secondary value is the value's own scale directly, not an offset from
// the column's declared scale (spec.md §8 S4: declared scale=2,
// secondary=[2], unscaled=12345 -> 123.45, i.e. Scale=2, not 2+2=4).
func DecodeDecimal(data []byte, secondary []byte, count int) ([]Decimal, error) {
	scales, err := rleint.DecodeV2(secondary, true, count)
	if err != nil {
		return nil, err
	}

	r := bytes.NewReader(data)
	out := make([]Decimal, count)
	for i := 0; i < count; i++ {
		v, err := rleint.ReadSvarintBig(r)
		if err != nil {
			return nil, err
		}
		out[i] = Decimal{Unscaled: v, Scale: int32(scales[i])}
	}

	return out, nil
}

// EncodeDecimal encodes values into a Data byte slice (zigzag varints) and
// a Secondary byte slice (RLE v2 of each value's own scale).
func EncodeDecimal(values []Decimal) (data []byte, secondary []byte) {
	for _, v := range values {
		data = rleint.PutUvarintBig(data, rleint.ZigZagEncodeBig(v.Unscaled))
	}

	scales := make([]int64, len(values))
	for i, v := range values {
		scales[i] = int64(v.Scale)
	}
	secondary = rleint.EncodeV2(scales, true)

	return data, secondary
}

// Float64 approximates the decimal as a float64 (Unscaled * 10^-Scale).
// Precision beyond float64's mantissa is lost; callers that need exact
// arithmetic should work with Unscaled and Scale directly.
func (d Decimal) Float64() float64 {
	f := new(big.Float).SetInt(d.Unscaled)
	scale := new(big.Float).SetFloat64(pow10(d.Scale))
	f.Quo(f, scale)
	out, _ := f.Float64()

	return out
}

func pow10(scale int32) float64 {
	result := 1.0
	neg := scale < 0
	if neg {
		scale = -scale
	}
	for i := int32(0); i < scale; i++ {
		result *= 10
	}
	if neg {
		return 1 / result
	}

	return result
}
