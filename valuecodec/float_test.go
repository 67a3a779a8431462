package valuecodec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// Property 2: float round-trip, NaN compared by bit pattern, sign of zero
// preserved.
func TestFloat32RoundTrip(t *testing.T) {
	values := []float32{0, float32(math.Copysign(0, -1)), 1, -1, 3.14159, float32(math.NaN()), float32(math.Inf(1)), float32(math.Inf(-1))}

	data := EncodeFloat32(nil, values)
	got, err := DecodeFloat32(data, len(values))
	require.NoError(t, err)

	for i, v := range values {
		require.Equal(t, math.Float32bits(v), math.Float32bits(got[i]), "index %d", i)
	}
}

func TestFloat64RoundTrip(t *testing.T) {
	values := []float64{0, math.Copysign(0, -1), 1, -1, 2.71828182845, float64(math.NaN()), math.Inf(1), math.Inf(-1)}

	data := EncodeFloat64(nil, values)
	got, err := DecodeFloat64(data, len(values))
	require.NoError(t, err)

	for i, v := range values {
		require.Equal(t, math.Float64bits(v), math.Float64bits(got[i]), "index %d", i)
	}
}

func TestDecodeFloat32_Truncated(t *testing.T) {
	_, err := DecodeFloat32([]byte{1, 2, 3}, 1)
	require.Error(t, err)
}

func TestDecodeFloat64_Truncated(t *testing.T) {
	_, err := DecodeFloat64([]byte{1, 2, 3}, 1)
	require.Error(t, err)
}
