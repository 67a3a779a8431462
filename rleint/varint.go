// Package rleint implements the integer stream codecs: varint/zigzag (C1),
// bit-packed integers (C2), integer RLE v1 (C5, read-only), and integer RLE
// v2 with its four sub-encodings (C6).
package rleint

import (
	"math/big"

	"github.com/orcgo/orccore/errs"
)

// MaxVarint64Len is the maximum number of bytes a 64-bit unsigned varint
// can occupy under LEB128 (ceil(64/7)).
const MaxVarint64Len = 10

// MaxVarint128Len is the maximum number of bytes the unbounded decimal
// varint (C8) is allowed to occupy before the stream is considered
// malformed.
const MaxVarint128Len = 19

// ByteSource is the minimal read surface the varint decoders need. It lets
// callers pass a bytes.Reader, a bufio.Reader, or any other io.ByteReader.
type ByteSource interface {
	ReadByte() (byte, error)
}

// ZigZagEncode64 maps a signed 64-bit value to an unsigned one, preserving
// small magnitudes: non-negative n maps to 2n, negative n maps to 2|n|-1.
func ZigZagEncode64(n int64) uint64 {
	return uint64((n << 1) ^ (n >> 63))
}

// ZigZagDecode64 is the inverse of ZigZagEncode64.
func ZigZagDecode64(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}

// PutUvarint encodes v as LEB128 into dst, which must have capacity for at
// least MaxVarint64Len bytes, and returns the number of bytes written.
func PutUvarint(dst []byte, v uint64) int {
	i := 0
	for v >= 0x80 {
		dst[i] = byte(v) | 0x80
		v >>= 7
		i++
	}
	dst[i] = byte(v)

	return i + 1
}

// ReadUvarint decodes a LEB128-encoded unsigned 64-bit integer from src.
// It fails with errs.ErrVarintTruncated if src is exhausted mid-value and
// errs.ErrVarintOverflow if the encoding exceeds MaxVarint64Len bytes.
func ReadUvarint(src ByteSource) (uint64, error) {
	var result uint64
	var shift uint
	for i := 0; i < MaxVarint64Len; i++ {
		b, err := src.ReadByte()
		if err != nil {
			return 0, errs.ErrVarintTruncated
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}

	return 0, errs.ErrVarintOverflow
}

// ReadSvarint decodes a zigzag+LEB128-encoded signed 64-bit integer.
func ReadSvarint(src ByteSource) (int64, error) {
	v, err := ReadUvarint(src)
	if err != nil {
		return 0, err
	}

	return ZigZagDecode64(v), nil
}

// bigOne and bigTwo are reused by the big.Int zigzag helpers below to avoid
// reallocating small constants on every call.
var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)

// ZigZagEncodeBig maps an arbitrary-precision signed integer to an unsigned
// one using the same mapping as ZigZagEncode64, generalized to big.Int:
// n >= 0 maps to 2n, n < 0 maps to 2|n|-1.
func ZigZagEncodeBig(n *big.Int) *big.Int {
	out := new(big.Int)
	if n.Sign() < 0 {
		out.Neg(n)
		out.Mul(out, bigTwo)
		out.Sub(out, bigOne)
	} else {
		out.Mul(n, bigTwo)
	}

	return out
}

// ZigZagDecodeBig is the inverse of ZigZagEncodeBig.
func ZigZagDecodeBig(v *big.Int) *big.Int {
	out := new(big.Int).Rsh(v, 1)
	if v.Bit(0) == 1 {
		out.Add(out, bigOne)
		out.Neg(out)
	}

	return out
}

// PutUvarintBig encodes a non-negative arbitrary-precision integer as
// LEB128 and appends it to dst, returning the extended slice.
func PutUvarintBig(dst []byte, v *big.Int) []byte {
	if v.Sign() == 0 {
		return append(dst, 0)
	}

	n := new(big.Int).Set(v)
	mask := big.NewInt(0x7f)
	tmp := new(big.Int)
	for n.Sign() != 0 {
		tmp.And(n, mask)
		b := byte(tmp.Uint64())
		n.Rsh(n, 7)
		if n.Sign() != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
	}

	return dst
}

// ReadUvarintBig decodes a LEB128-encoded arbitrary-precision non-negative
// integer from src, failing with errs.ErrVarintOverflow past
// MaxVarint128Len bytes.
func ReadUvarintBig(src ByteSource) (*big.Int, error) {
	result := new(big.Int)
	shift := uint(0)
	for i := 0; i < MaxVarint128Len; i++ {
		b, err := src.ReadByte()
		if err != nil {
			return nil, errs.ErrVarintTruncated
		}
		chunk := new(big.Int).Lsh(big.NewInt(int64(b&0x7f)), shift)
		result.Or(result, chunk)
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}

	return nil, errs.ErrVarintOverflow
}

// ReadSvarintBig decodes a zigzag+LEB128-encoded arbitrary-precision
// signed integer.
func ReadSvarintBig(src ByteSource) (*big.Int, error) {
	v, err := ReadUvarintBig(src)
	if err != nil {
		return nil, err
	}

	return ZigZagDecodeBig(v), nil
}

// VarintLen64 returns the number of bytes PutUvarint would write for v,
// without encoding it. Used by encoders sizing their output buffer ahead
// of a bulk write.
func VarintLen64(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}

	return n
}
