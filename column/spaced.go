package column

import "github.com/orcgo/orccore/byterle"

// SpacedDecode implements the canonical null-aware decode pattern (spec.md
// §4.6, §9): it reads exactly trueCount values densely from produce, then
// redistributes them across a length-n output so row i holds the
// (rank of i among valid rows)-th produced value when valid, and the zero
// value of T otherwise. This trades one extra pass for zero per-row
// branching on whether a value needs to be read from the stream.
//
// validity may be nil, meaning every row is valid (trueCount must then
// equal n).
func SpacedDecode[T any](n int, validity []byte, trueCount int, produce func() (T, error)) ([]T, error) {
	dense := make([]T, trueCount)
	for i := range dense {
		v, err := produce()
		if err != nil {
			return nil, err
		}
		dense[i] = v
	}

	if validity == nil {
		return dense, nil
	}

	out := make([]T, n)
	rank := 0
	for i := 0; i < n; i++ {
		if byterle.IsValid(validity, i) {
			out[i] = dense[rank]
			rank++
		}
	}

	return out, nil
}

// spacedFromSlice distributes a contiguously-decoded dense slice (already
// fully materialized, e.g. by a primitive decoder that returns []int64)
// across a length-n validity-aware output without requiring a per-value
// producer closure.
func spacedFromSlice[T any](n int, validity []byte, dense []T) []T {
	if validity == nil {
		return dense
	}

	out := make([]T, n)
	rank := 0
	for i := 0; i < n; i++ {
		if byterle.IsValid(validity, i) {
			out[i] = dense[rank]
			rank++
		}
	}

	return out
}
