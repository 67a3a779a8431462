package rleint

import (
	"bytes"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZigZagRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 2, -2, math.MaxInt64, math.MinInt64, 12345, -12345}
	for _, v := range values {
		got := ZigZagDecode64(ZigZagEncode64(v))
		require.Equal(t, v, got)
	}
}

func TestZigZagEncode64_KnownValues(t *testing.T) {
	// n=0 -> 0, n=-1 -> 1, n=1 -> 2, n=-2 -> 3 (classic zigzag table)
	require.Equal(t, uint64(0), ZigZagEncode64(0))
	require.Equal(t, uint64(1), ZigZagEncode64(-1))
	require.Equal(t, uint64(2), ZigZagEncode64(1))
	require.Equal(t, uint64(3), ZigZagEncode64(-2))
}

func TestUvarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 16383, 16384, math.MaxUint64}
	for _, v := range values {
		buf := make([]byte, MaxVarint64Len)
		n := PutUvarint(buf, v)

		got, err := ReadUvarint(bytes.NewReader(buf[:n]))
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestReadUvarint_Truncated(t *testing.T) {
	// A continuation byte (high bit set) with nothing following is truncated.
	_, err := ReadUvarint(bytes.NewReader([]byte{0x80}))
	require.Error(t, err)
}

func TestSvarintRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 12345, -12345, math.MaxInt64, math.MinInt64}
	for _, v := range values {
		buf := make([]byte, MaxVarint64Len)
		n := PutUvarint(buf, ZigZagEncode64(v))

		got, err := ReadSvarint(bytes.NewReader(buf[:n]))
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

// S4 from spec.md §8: decimal scale=2, zigzag varint of 12345 is 0xF2, 0xC0, 0x01.
func TestDecimalVarintVector_S4(t *testing.T) {
	zz := ZigZagEncodeBig(big.NewInt(12345))
	require.Equal(t, big.NewInt(24690), zz)

	var dst []byte
	dst = PutUvarintBig(dst, zz)
	require.Equal(t, []byte{0xF2, 0xC0, 0x01}, dst)

	back, err := ReadUvarintBig(bytes.NewReader(dst))
	require.NoError(t, err)
	require.Equal(t, zz, back)
	require.Equal(t, big.NewInt(12345), ZigZagDecodeBig(back))
}

func TestZigZagBigRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 12345, -12345, math.MaxInt64, math.MinInt64}
	for _, v := range values {
		n := big.NewInt(v)
		got := ZigZagDecodeBig(ZigZagEncodeBig(n))
		require.Equal(t, 0, n.Cmp(got))
	}
}

func TestPutUvarintBig_RoundTrip(t *testing.T) {
	huge, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
	require.True(t, ok)

	zz := ZigZagEncodeBig(huge)
	var dst []byte
	dst = PutUvarintBig(dst, zz)

	back, err := ReadSvarintBig(bytes.NewReader(dst))
	require.NoError(t, err)
	require.Equal(t, 0, huge.Cmp(back))
}

func TestVarintLen64(t *testing.T) {
	require.Equal(t, 1, VarintLen64(0))
	require.Equal(t, 1, VarintLen64(127))
	require.Equal(t, 2, VarintLen64(128))
	require.Equal(t, 2, VarintLen64(16383))
	require.Equal(t, 3, VarintLen64(16384))
}
