package rleint

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackUnpackValues_RoundTrip(t *testing.T) {
	for _, width := range []int{1, 2, 4, 5, 7, 8, 16, 24, 32, 64} {
		max := uint64(1)<<uint(width) - 1
		if width == 64 {
			max = ^uint64(0)
		}
		values := []uint64{0, 1, max, max / 2}

		packed, err := PackValues(values, width)
		require.NoError(t, err)

		got, err := UnpackValues(packed, width, len(values))
		require.NoError(t, err)
		require.Equal(t, values, got)
	}
}

func TestBytesForPacked(t *testing.T) {
	require.Equal(t, 1, BytesForPacked(8, 1))
	require.Equal(t, 1, BytesForPacked(1, 8))
	require.Equal(t, 4, BytesForPacked(4, 8))
	require.Equal(t, 4, BytesForPacked(32, 1))
	require.Equal(t, 5, BytesForPacked(33, 1))
}

func TestPackValues_InvalidWidth(t *testing.T) {
	_, err := PackValues([]uint64{1}, 0)
	require.Error(t, err)

	_, err = PackValues([]uint64{1}, 65)
	require.Error(t, err)
}

func TestUnpackValues_Truncated(t *testing.T) {
	_, err := UnpackValues([]byte{0xff}, 32, 10)
	require.Error(t, err)
}
