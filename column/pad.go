package column

import (
	"github.com/orcgo/orccore/batch"
	"github.com/orcgo/orccore/byterle"
)

// padArray expands a densely-decoded Array of length L (L = the number of
// true bits in parentValidity) into one of length rowCount, marking every
// position where the parent is null as null in the result too, per
// spec.md §4.6's "child-row positions corresponding to null parents are
// not consumed from child streams but are marked null in the child
// array." a is returned unchanged when parentValidity is nil (every
// parent row is valid, so no expansion is needed).
func padArray(a batch.Array, rowCount int, parentValidity []byte) batch.Array {
	if parentValidity == nil {
		return a
	}

	switch v := a.(type) {
	case *batch.BoolArray:
		return batch.NewBoolArray(
			spacedFromSlice(rowCount, parentValidity, v.Values),
			combineValidity(parentValidity, v.Validity(), rowCount),
		)
	case *batch.Int64Array:
		return batch.NewInt64Array(
			spacedFromSlice(rowCount, parentValidity, v.Values),
			combineValidity(parentValidity, v.Validity(), rowCount),
		)
	case *batch.Float32Array:
		return batch.NewFloat32Array(
			spacedFromSlice(rowCount, parentValidity, v.Values),
			combineValidity(parentValidity, v.Validity(), rowCount),
		)
	case *batch.Float64Array:
		return batch.NewFloat64Array(
			spacedFromSlice(rowCount, parentValidity, v.Values),
			combineValidity(parentValidity, v.Validity(), rowCount),
		)
	case *batch.DecimalArray:
		return batch.NewDecimalArray(
			spacedFromSlice(rowCount, parentValidity, v.Values),
			combineValidity(parentValidity, v.Validity(), rowCount),
		)
	case *batch.TimestampArray:
		return batch.NewTimestampArray(
			spacedFromSlice(rowCount, parentValidity, v.Seconds),
			spacedFromSlice(rowCount, parentValidity, v.Nanos),
			combineValidity(parentValidity, v.Validity(), rowCount),
		)
	case *batch.BytesArray:
		offsets := padOffsets(rowCount, parentValidity, v.Offsets)

		return batch.NewBytesArrayFromOffsets(v.Data, offsets, combineValidity(parentValidity, v.Validity(), rowCount))
	case *batch.ListArray:
		offsets := padOffsets(rowCount, parentValidity, v.Offsets)

		return batch.NewListArray(offsets, v.Elem, combineValidity(parentValidity, v.Validity(), rowCount))
	case *batch.MapArray:
		offsets := padOffsets(rowCount, parentValidity, v.Offsets)

		return batch.NewMapArray(offsets, v.Keys, v.Values, combineValidity(parentValidity, v.Validity(), rowCount))
	case *batch.StructArray:
		fields := make([]batch.Array, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = padArray(f, rowCount, parentValidity)
		}

		return batch.NewStructArray(rowCount, v.Names, fields, combineValidity(parentValidity, v.Validity(), rowCount))
	case *batch.UnionArray:
		return batch.NewUnionArray(
			spacedFromSlice(rowCount, parentValidity, v.Tags),
			spacedFromSlice(rowCount, parentValidity, v.Index),
			v.Alts,
			combineValidity(parentValidity, v.Validity(), rowCount),
		)
	default:
		return a
	}
}

// combineValidity produces a rowCount-length LSB-first bitmap where
// position i is valid iff parentValidity says row i is valid AND the
// child's own validity bit at that row's dense rank (its position among
// valid parent rows) says the child value itself is non-null.
// childValidity of nil means every dense child row is valid.
func combineValidity(parentValidity, childValidity []byte, rowCount int) []byte {
	out := make([]byte, (rowCount+7)/8)
	rank := 0
	for i := 0; i < rowCount; i++ {
		if !byterle.IsValid(parentValidity, i) {
			continue
		}
		if childValidity == nil || byterle.IsValid(childValidity, rank) {
			byterle.SetValid(out, i, true)
		}
		rank++
	}

	return out
}

// padOffsets expands a (parentTrueCount+1)-length offset slice into a
// (rowCount+1)-length one, giving every null-parent row a zero-length
// span. The underlying data/child buffer the offsets index into is left
// untouched.
func padOffsets(rowCount int, parentValidity []byte, offsets []int32) []int32 {
	out := make([]int32, rowCount+1)
	rank := 0
	for i := 0; i < rowCount; i++ {
		if byterle.IsValid(parentValidity, i) {
			out[i+1] = out[i] + (offsets[rank+1] - offsets[rank])
			rank++
		} else {
			out[i+1] = out[i]
		}
	}

	return out
}
