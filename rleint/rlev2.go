package rleint

import "github.com/orcgo/orccore/errs"

// SubEncoding identifies which of RLE v2's four run shapes a header byte
// selects, per the two high bits of the header (§4.5).
type SubEncoding int

const (
	ShortRepeat SubEncoding = iota
	Direct
	PatchedBase
	Delta
)

func (s SubEncoding) String() string {
	switch s {
	case ShortRepeat:
		return "ShortRepeat"
	case Direct:
		return "Direct"
	case PatchedBase:
		return "PatchedBase"
	case Delta:
		return "Delta"
	default:
		return "Unknown"
	}
}

// DecodeV2 decodes exactly count values from RLE v2-encoded data (C6),
// dispatching run by run on each header's top two bits until count values
// have been produced (§4.8's "one-state loop"). If the stream is exhausted
// first, it fails with errs.ErrRLEHeaderTruncated when the data ends where
// a run header or length byte is expected, and with errs.ErrRLERunTruncated
// (or a varint error for Delta's base values) when it ends inside a run.
func DecodeV2(data []byte, signed bool, count int) ([]int64, error) {
	c := newCursor(data)
	out := make([]int64, 0, count)

	for len(out) < count {
		header, err := c.ReadByte()
		if err != nil {
			return nil, errs.ErrRLEHeaderTruncated
		}

		sub := SubEncoding(header >> 6)
		var vals []int64
		switch sub {
		case ShortRepeat:
			vals, err = decodeShortRepeat(c, header, signed)
		case Direct:
			vals, err = decodeDirect(c, header, signed)
		case PatchedBase:
			vals, err = decodePatchedBase(c, header)
		case Delta:
			vals, err = decodeDelta(c, header, signed)
		default:
			return nil, errs.ErrRLEInvalidSubEncoding
		}
		if err != nil {
			return nil, err
		}
		out = append(out, vals...)
	}

	if len(out) < count {
		return nil, errs.ErrRLERunTruncated
	}

	return out[:count], nil
}

func decodeShortRepeat(c *cursor, header byte, signed bool) ([]int64, error) {
	byteWidth := int((header>>3)&0x7) + 1
	count := int(header&0x7) + 3

	raw, err := c.readN(byteWidth)
	if err != nil {
		return nil, err
	}

	var u uint64
	for _, b := range raw {
		u = (u << 8) | uint64(b)
	}

	var v int64
	if signed {
		v = ZigZagDecode64(u)
	} else {
		v = int64(u)
	}

	out := make([]int64, count)
	for i := range out {
		out[i] = v
	}

	return out, nil
}

// readLength decodes RLE v2's shared 9-bit length field: the header's low
// bit is the high bit of the length, the following byte is the low 8
// bits. The stored value is length-1, so the returned length is in
// 1..512.
func readLength(c *cursor, header byte) (int, error) {
	lowByte, err := c.ReadByte()
	if err != nil {
		return 0, errs.ErrRLEHeaderTruncated
	}
	lengthHigh := int(header & 0x1)

	return (lengthHigh<<8 | int(lowByte)) + 1, nil
}

func decodeDirect(c *cursor, header byte, signed bool) ([]int64, error) {
	widthCode := int((header >> 1) & 0x1f)
	width, err := DecodeBitWidth(widthCode)
	if err != nil {
		return nil, err
	}

	length, err := readLength(c, header)
	if err != nil {
		return nil, err
	}

	nbytes := BytesForPacked(length, width)
	raw, err := c.readN(nbytes)
	if err != nil {
		return nil, err
	}

	packed, err := UnpackValues(raw, width, length)
	if err != nil {
		return nil, err
	}

	out := make([]int64, length)
	for i, u := range packed {
		if signed {
			out[i] = ZigZagDecode64(u)
		} else {
			out[i] = int64(u)
		}
	}

	return out, nil
}

func decodePatchedBase(c *cursor, header byte) ([]int64, error) {
	widthCode := int((header >> 1) & 0x1f)
	valueWidth, err := DecodeBitWidth(widthCode)
	if err != nil {
		return nil, err
	}

	length, err := readLength(c, header)
	if err != nil {
		return nil, err
	}

	baseWidthByte, err := c.ReadByte()
	if err != nil {
		return nil, errs.ErrRLEHeaderTruncated
	}
	baseByteWidth := int((baseWidthByte>>5)&0x7) + 1
	patchWidthCode := int(baseWidthByte & 0x1f)
	patchWidth, err := DecodeBitWidth(patchWidthCode)
	if err != nil {
		return nil, err
	}

	patchMetaByte, err := c.ReadByte()
	if err != nil {
		return nil, errs.ErrRLEHeaderTruncated
	}
	gapWidth := int((patchMetaByte>>5)&0x7) + 1
	patchListLen := int(patchMetaByte & 0x1f)
	if patchListLen > 31 {
		return nil, errs.ErrPatchListTooLong
	}

	baseRaw, err := c.readN(baseByteWidth)
	if err != nil {
		return nil, err
	}
	var baseMag uint64
	for i, b := range baseRaw {
		if i == 0 {
			// Strip the sign bit out of the first (most significant) byte
			// before folding it into the magnitude.
			baseMag = uint64(b & 0x7f)
		} else {
			baseMag = (baseMag << 8) | uint64(b)
		}
	}
	base := int64(baseMag)
	if baseRaw[0]&0x80 != 0 {
		base = -base
	}

	valuesNbytes := BytesForPacked(length, valueWidth)
	valuesRaw, err := c.readN(valuesNbytes)
	if err != nil {
		return nil, err
	}
	values, err := UnpackValues(valuesRaw, valueWidth, length)
	if err != nil {
		return nil, err
	}

	out := make([]int64, length)
	for i, v := range values {
		out[i] = base + int64(v)
	}

	if patchListLen > 0 {
		patchEntryWidth := gapWidth + patchWidth
		patchNbytes := BytesForPacked(patchListLen, patchEntryWidth)
		patchRaw, err := c.readN(patchNbytes)
		if err != nil {
			return nil, err
		}
		patchEntries, err := UnpackValues(patchRaw, patchEntryWidth, patchListLen)
		if err != nil {
			return nil, err
		}

		gapSentinel := uint64(1<<uint(gapWidth)) - 1
		pos := -1
		for _, entry := range patchEntries {
			gap := entry >> uint(patchWidth)
			patch := entry & (uint64(1<<uint(patchWidth)) - 1)

			pos += int(gap)
			if gap == gapSentinel && patch == 0 {
				// Gap-skip sentinel: the real gap exceeded what this field
				// can hold; accumulate and continue without patching.
				continue
			}
			if pos < 0 || pos >= length {
				return nil, errs.ErrOutOfSpec
			}
			out[pos] = base + int64(values[pos]) + int64(patch<<uint(valueWidth))
		}
	}

	return out, nil
}

func decodeDelta(c *cursor, header byte, signed bool) ([]int64, error) {
	widthCode := int((header >> 1) & 0x1f)
	var deltaWidth int
	if widthCode == 0 {
		deltaWidth = 0
	} else {
		w, err := DecodeBitWidth(widthCode)
		if err != nil {
			return nil, err
		}
		deltaWidth = w
	}

	length, err := readLength(c, header)
	if err != nil {
		return nil, err
	}

	base, err := readBase(c, signed)
	if err != nil {
		return nil, err
	}

	out := make([]int64, length)
	out[0] = base
	if length == 1 {
		return out, nil
	}

	baseDelta, err := ReadSvarint(c)
	if err != nil {
		return nil, err
	}
	out[1] = base + baseDelta

	if length == 2 {
		return out, nil
	}

	remaining := length - 2
	var deltas []uint64
	if deltaWidth == 0 {
		deltas = make([]uint64, remaining)
		absDelta := baseDelta
		if absDelta < 0 {
			absDelta = -absDelta
		}
		for i := range deltas {
			deltas[i] = uint64(absDelta)
		}
	} else {
		nbytes := BytesForPacked(remaining, deltaWidth)
		raw, err := c.readN(nbytes)
		if err != nil {
			return nil, err
		}
		deltas, err = UnpackValues(raw, deltaWidth, remaining)
		if err != nil {
			return nil, err
		}
	}

	negative := baseDelta < 0
	prev := out[1]
	for i, d := range deltas {
		if negative {
			prev -= int64(d)
		} else {
			prev += int64(d)
		}
		out[2+i] = prev
	}

	return out, nil
}
