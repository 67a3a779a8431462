package valuecodec

import (
	"time"

	"github.com/orcgo/orccore/rleint"
)

// Epoch is ORC's timestamp epoch: 2015-01-01 00:00:00 UTC. Data stream
// seconds are offsets from this instant, not the Unix epoch.
var Epoch = time.Date(2015, time.January, 1, 0, 0, 0, 0, time.UTC)

// nanosMultiplier maps the 3-bit trailing-zero-count field k (0..7)
// encoded in the low bits of a Secondary stream value to the decimal
// multiplier applied to the remaining bits, per §4.6 and §9's call to
// document this table exactly: an off-by-one here corrupts every
// timestamp silently. k=0 means "no trailing zeros were stripped" (the
// remaining bits are nanoseconds verbatim); k in 1..7 means the original
// nanosecond value was divisible by 10^k and that factor was divided out
// before encoding.
var nanosMultiplier = [8]int64{
	1, 10, 100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000,
}

// DecodeTimestampSeconds decodes the Data stream: signed RLE v2 of
// seconds offsets from Epoch.
func DecodeTimestampSeconds(data []byte, count int) ([]int64, error) {
	return rleint.DecodeV2(data, true, count)
}

// EncodeTimestampSeconds encodes second offsets as signed RLE v2.
func EncodeTimestampSeconds(secondsOffsets []int64) []byte {
	return rleint.EncodeV2(secondsOffsets, true)
}

// DecodeNanos decodes the Secondary stream into nanosecond-of-second
// values. Each encoded value packs a 3-bit trailing-zero count k in its
// low bits; the true nanosecond value is (encoded >> 3) * 10^k when k > 0,
// or simply (encoded >> 3) when k == 0 (§4.6).
func DecodeNanos(secondary []byte, count int) ([]int64, error) {
	encoded, err := rleint.DecodeV2(secondary, false, count)
	if err != nil {
		return nil, err
	}

	out := make([]int64, count)
	for i, v := range encoded {
		k := v & 0x7
		rest := v >> 3
		out[i] = rest * nanosMultiplier[k]
	}

	return out, nil
}

// EncodeNanos encodes nanosecond-of-second values, stripping up to seven
// trailing decimal zeros from each (the most the 3-bit count holds) so the
// decoder's trailing-zero trick round-trips exactly. nanos values must be in [0, 1e9).
func EncodeNanos(nanos []int64) []byte {
	encoded := make([]int64, len(nanos))
	for i, n := range nanos {
		k := int64(0)
		for k < 7 && n != 0 && n%10 == 0 {
			n /= 10
			k++
		}
		encoded[i] = n<<3 | k
	}

	return rleint.EncodeV2(encoded, false)
}

// SecondsSinceEpoch converts a UTC time to ORC's seconds-since-Epoch
// representation (may be negative for instants before 2015).
func SecondsSinceEpoch(t time.Time) int64 {
	return t.UTC().Unix() - Epoch.Unix()
}

// TimeFromParts reconstructs a UTC time.Time from decoded seconds offset
// and nanosecond-of-second values.
func TimeFromParts(secondsOffset, nanos int64) time.Time {
	return Epoch.Add(time.Duration(secondsOffset)*time.Second + time.Duration(nanos)*time.Nanosecond)
}
