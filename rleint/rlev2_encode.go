package rleint

import "sort"

// maxRunLen is the largest number of values any RLE v2 sub-encoding other
// than Short-Repeat can carry in one run (the 9-bit length field's range).
const maxRunLen = 512

// patchOutlierFraction bounds how much of a Direct/Patched-Base window the
// encoder is willing to treat as outliers before giving up on
// Patched-Base and falling back to Direct at the full window width.
const patchOutlierFraction = 0.05

// maxPatchListLen is the largest patch list RLE v2's 5-bit count field can
// address.
const maxPatchListLen = 31

// EncodeV2 encodes values as RLE v2 (C6), choosing among the four
// sub-encodings run by run. The selection heuristic below is one
// reasonable policy among several a compliant writer could use (spec
// leaves this under-specified); any policy that a compliant reader can
// decode is valid, and this one prioritizes simplicity and decodability
// over squeezing out the last byte.
func EncodeV2(values []int64, signed bool) []byte {
	var out []byte
	i := 0
	for i < len(values) {
		window := values[i:min(i+maxRunLen, len(values))]
		encoded, consumed := encodeRun(window, signed)
		out = append(out, encoded...)
		i += consumed
	}

	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}

	return b
}

func encodeRun(window []int64, signed bool) ([]byte, int) {
	if n, enc, ok := tryShortRepeat(window, signed); ok {
		return enc, n
	}
	if n, enc, ok := tryDelta(window, signed); ok {
		return enc, n
	}

	return encodeDirectOrPatched(window, signed)
}

// tryShortRepeat fires when the window's leading values repeat at least
// three times, per §4.5 rule 1. The run is capped at 10 (Short-Repeat's
// 3-bit count field) even if the repeat runs longer; the remainder is
// picked up by the next call to encodeRun.
func tryShortRepeat(window []int64, signed bool) (int, []byte, bool) {
	v := window[0]
	n := 1
	for n < len(window) && n < 10 && window[n] == v {
		n++
	}
	if n < 3 {
		return 0, nil, false
	}

	var u uint64
	if signed {
		u = ZigZagEncode64(v)
	} else {
		u = uint64(v)
	}

	byteWidth := byteWidthFor(u)
	header := byte(0<<6) | byte(byteWidth-1)<<3 | byte(n-3)

	out := make([]byte, 1, 1+byteWidth)
	out[0] = header
	for shift := (byteWidth - 1) * 8; shift >= 0; shift -= 8 {
		out = append(out, byte(u>>uint(shift)))
	}

	return n, out, true
}

func byteWidthFor(u uint64) int {
	w := 1
	for u>>(uint(w)*8) != 0 {
		w++
	}

	return w
}

// tryDelta fires whenever the window's first two values differ (§4.5
// rule 2) and takes the longest strictly monotonic prefix, two values or
// more, as one Delta run; it does not weigh that run's length against the
// fixed (base + base-delta) overhead.
func tryDelta(window []int64, signed bool) (int, []byte, bool) {
	if len(window) < 2 {
		return 0, nil, false
	}

	baseDelta := window[1] - window[0]
	if baseDelta == 0 {
		return 0, nil, false
	}
	positive := baseDelta > 0

	n := 2
	maxAbs := absInt64(baseDelta)
	for n < len(window) {
		d := window[n] - window[n-1]
		if d == 0 || (d > 0) != positive {
			break
		}
		if absInt64(d) > maxAbs {
			maxAbs = absInt64(d)
		}
		n++
	}
	if n < 2 {
		return 0, nil, false
	}

	fixedDelta := true
	for k := 2; k < n; k++ {
		if window[k]-window[k-1] != baseDelta {
			fixedDelta = false

			break
		}
	}

	var deltaWidth int
	if fixedDelta {
		deltaWidth = 0
	} else {
		deltaWidth = ClosestAlignedWidth(BitsForUnsignedValue(uint64(maxAbs)))
	}

	lengthField := n - 1
	widthCode := 0
	if deltaWidth != 0 {
		var err error
		widthCode, err = EncodeBitWidth(deltaWidth)
		if err != nil {
			return 0, nil, false
		}
	}

	header1 := byte(Delta)<<6 | byte(widthCode)<<1 | byte((lengthField>>8)&0x1)
	header2 := byte(lengthField & 0xff)

	out := []byte{header1, header2}
	out = appendVarintBase(out, window[0], signed)
	out = appendSignedVarint(out, baseDelta)

	if deltaWidth != 0 {
		vals := make([]uint64, n-2)
		for k := 2; k < n; k++ {
			d := window[k] - window[k-1]
			vals[k-2] = uint64(absInt64(d))
		}
		packed, err := PackValues(vals, deltaWidth)
		if err != nil {
			return 0, nil, false
		}
		out = append(out, packed...)
	}

	return n, out, true
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}

	return v
}

func appendVarintBase(dst []byte, v int64, signed bool) []byte {
	var tmp [MaxVarint64Len]byte
	var n int
	if signed {
		n = PutUvarint(tmp[:], ZigZagEncode64(v))
	} else {
		n = PutUvarint(tmp[:], uint64(v))
	}

	return append(dst, tmp[:n]...)
}

func appendSignedVarint(dst []byte, v int64) []byte {
	var tmp [MaxVarint64Len]byte
	n := PutUvarint(tmp[:], ZigZagEncode64(v))

	return append(dst, tmp[:n]...)
}

// encodeDirectOrPatched implements §4.5 rule 3: compute the bit-width
// distribution of the (zigzag-mapped, if signed) window, then choose
// Patched-Base when the tail is a small fraction of much wider outliers
// and Direct otherwise.
func encodeDirectOrPatched(window []int64, signed bool) ([]byte, int) {
	n := len(window)
	mapped := make([]uint64, n)
	widths := make([]int, n)
	for i, v := range window {
		var u uint64
		if signed {
			u = ZigZagEncode64(v)
		} else {
			u = uint64(v)
		}
		mapped[i] = u
		widths[i] = BitsForUnsignedValue(u)
	}

	sortedWidths := append([]int(nil), widths...)
	sort.Ints(sortedWidths)
	p90 := percentile(sortedWidths, 0.90)
	p100 := sortedWidths[len(sortedWidths)-1]

	if p90 > 0 && float64(p100) >= 1.7*float64(p90) {
		if enc, ok := tryPatchedBase(window, mapped, widths, p90, signed); ok {
			return enc, n
		}
	}

	return encodeDirect(mapped, ClosestAlignedWidth(p100), signed), n
}

func percentile(sorted []int, p float64) int {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)-1))

	return sorted[idx]
}

func encodeDirect(mapped []uint64, width int, signed bool) []byte {
	n := len(mapped)
	widthCode, err := EncodeBitWidth(width)
	if err != nil {
		// width must already be aligned by construction; fall back to 64
		// bits only in the defensive case that it is not.
		width = 64
		widthCode, _ = EncodeBitWidth(64)
	}

	lengthField := n - 1
	header1 := byte(Direct)<<6 | byte(widthCode)<<1 | byte((lengthField>>8)&0x1)
	header2 := byte(lengthField & 0xff)

	packed, perr := PackValues(mapped, width)
	if perr != nil {
		packed = nil
	}

	out := make([]byte, 0, 2+len(packed))
	out = append(out, header1, header2)
	out = append(out, packed...)

	return out
}

// tryPatchedBase attempts a Patched-Base encoding of the window, treating
// values whose width exceeds p90 as outliers. Returns ok=false when the
// outlier set would not fit in the 31-entry patch list, in which case the
// caller falls back to Direct. Signed windows also get ok=false: the
// decoder does not zigzag-decode Patched-Base values, so the zigzag-mapped
// values would not read back.
func tryPatchedBase(window []int64, mapped []uint64, widths []int, baseBits int, signed bool) ([]byte, bool) {
	if signed {
		return nil, false
	}
	n := len(window)
	// valueWidth is both the width values are packed at AND the shift
	// patch upper bits sit above, per decode's
	// `base + values[i] + (patch << valueWidth)` invariant — the two must
	// agree or reconstruction drops or duplicates bits.
	valueWidth := ClosestAlignedWidth(baseBits)
	valueMask := uint64(1)<<uint(valueWidth) - 1
	if valueWidth >= 64 {
		valueMask = ^uint64(0)
	}

	type patch struct {
		idx   int
		upper uint64 // the bits of mapped[idx] at or above valueWidth
	}

	var patches []patch
	for i, w := range widths {
		if w > valueWidth {
			patches = append(patches, patch{idx: i, upper: mapped[i] >> uint(valueWidth)})
		}
	}
	if len(patches) == 0 || len(patches) > maxPatchListLen || float64(len(patches)) > patchOutlierFraction*float64(n)*4 {
		return nil, false
	}

	// Patched-Base stores values relative to a base added back on decode;
	// keep the scheme simple by using 0 as the arithmetic base and
	// encoding the low valueWidth bits of each mapped value directly, with
	// the bits at or above valueWidth stashed as a patch.
	base := int64(0)

	values := make([]uint64, n)
	for i, v := range mapped {
		values[i] = v & valueMask
	}

	patchWidth := 1
	for _, p := range patches {
		if b := BitsForUnsignedValue(p.upper); b > patchWidth {
			patchWidth = b
		}
	}
	patchWidth = ClosestAlignedWidth(patchWidth)

	gapWidth := 8
	prev := -1
	gaps := make([]uint64, len(patches))
	patchVals := make([]uint64, len(patches))
	for i, p := range patches {
		gap := p.idx - prev
		if gap > 255 {
			return nil, false
		}
		gaps[i] = uint64(gap)
		patchVals[i] = p.upper
		prev = p.idx
	}

	baseByteWidth := byteWidthFor(uint64(base))
	if baseByteWidth < 1 {
		baseByteWidth = 1
	}

	widthCode, err := EncodeBitWidth(valueWidth)
	if err != nil {
		return nil, false
	}
	patchWidthCode, err := EncodeBitWidth(patchWidth)
	if err != nil {
		return nil, false
	}

	lengthField := n - 1
	header1 := byte(PatchedBase)<<6 | byte(widthCode)<<1 | byte((lengthField>>8)&0x1)
	header2 := byte(lengthField & 0xff)
	baseWidthByte := byte(baseByteWidth-1)<<5 | byte(patchWidthCode)
	patchMetaByte := byte(gapWidth-1)<<5 | byte(len(patches))

	out := []byte{header1, header2, baseWidthByte, patchMetaByte}

	var baseBytes []byte
	bu := uint64(base)
	for shift := (baseByteWidth - 1) * 8; shift >= 0; shift -= 8 {
		baseBytes = append(baseBytes, byte(bu>>uint(shift)))
	}
	out = append(out, baseBytes...)

	packedVals, perr := PackValues(values, valueWidth)
	if perr != nil {
		return nil, false
	}
	out = append(out, packedVals...)

	if len(patches) > 0 {
		entryWidth := gapWidth + patchWidth
		entries := make([]uint64, len(patches))
		for i := range patches {
			entries[i] = gaps[i]<<uint(patchWidth) | patchVals[i]
		}
		packedPatches, perr := PackValues(entries, entryWidth)
		if perr != nil {
			return nil, false
		}
		out = append(out, packedPatches...)
	}

	_ = signed

	return out, true
}
