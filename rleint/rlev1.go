package rleint

import "github.com/orcgo/orccore/errs"

const (
	rlev1MinRepeat = 3
	rlev1MaxLit    = 128
)

// cursor is a small bytes.Reader-alike used by every RLE v1/v2 decoder in
// this package. It exists instead of bytes.Reader so ReadByte and readN
// fail with errs.ErrRLERunTruncated rather than io.EOF. That sentinel does
// not wrap errs.ErrOutOfSpec, so errors.Is(err, errs.ErrOutOfSpec) is false
// for it.
type cursor struct {
	data []byte
	pos  int
}

func newCursor(data []byte) *cursor { return &cursor{data: data} }

func (c *cursor) ReadByte() (byte, error) {
	if c.pos >= len(c.data) {
		return 0, errs.ErrRLERunTruncated
	}
	b := c.data[c.pos]
	c.pos++

	return b, nil
}

func (c *cursor) readN(n int) ([]byte, error) {
	if c.pos+n > len(c.data) {
		return nil, errs.ErrRLERunTruncated
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n

	return b, nil
}

func (c *cursor) remaining() int { return len(c.data) - c.pos }

// DecodeV1 decodes exactly count values from RLE v1-encoded data (C5).
// RLE v1 is ORC's legacy integer encoding: kept for reading old files
// only, the write path always emits RLE v2 (per ColumnEncoding DirectV2 /
// DictionaryV2).
func DecodeV1(data []byte, signed bool, count int) ([]int64, error) {
	c := newCursor(data)
	out := make([]int64, 0, count)

	for len(out) < count {
		header, err := c.ReadByte()
		if err != nil {
			return nil, errs.ErrRLEHeaderTruncated
		}

		if int8(header) >= 0 {
			runLen := int(header) + rlev1MinRepeat
			deltaByte, err := c.ReadByte()
			if err != nil {
				return nil, errs.ErrRLEHeaderTruncated
			}
			delta := int64(int8(deltaByte))

			base, err := readBase(c, signed)
			if err != nil {
				return nil, err
			}

			for i := 0; i < runLen; i++ {
				out = append(out, base+int64(i)*delta)
			}
		} else {
			litLen := -int(int8(header))
			for i := 0; i < litLen; i++ {
				v, err := readBase(c, signed)
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
		}
	}

	if len(out) < count {
		return nil, errs.ErrRLERunTruncated
	}

	return out[:count], nil
}

func readBase(c *cursor, signed bool) (int64, error) {
	if signed {
		return ReadSvarint(c)
	}
	v, err := ReadUvarint(c)

	return int64(v), err
}
