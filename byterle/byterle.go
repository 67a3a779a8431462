// Package byterle implements the byte RLE codec (C3) and the boolean /
// present-stream codec layered on top of it (C4).
package byterle

import (
	"github.com/orcgo/orccore/errs"
	"github.com/orcgo/orccore/internal/pool"
)

const (
	minRepeatSize = 3
	maxRepeatSize = 130
	maxLiteralLen = 128
)

// Encoder implements byte RLE: runs of 3..130 repeated bytes are collapsed
// to a two-byte (header, value) pair; everything else is emitted as
// literal runs of up to 128 bytes. It tracks the same running state the
// reference algorithm does (a pending literal buffer plus a trailing
// repeat-run counter) so the repeat/literal decision never needs to look
// ahead past the byte it was just given.
type Encoder struct {
	buf      *pool.ByteBuffer
	literals [maxLiteralLen]byte
	numLit   int
	repeat   bool
	tailRun  int
}

// NewEncoder creates a byte RLE encoder.
func NewEncoder() *Encoder {
	return &Encoder{buf: pool.GetBlobBuffer()}
}

// Bytes returns the encoded byte slice produced so far. The returned slice
// is valid until the next call to Write, WriteSlice, or Finish.
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Finish flushes any buffered run and returns the buffer to the pool. The
// encoder is not usable afterward.
func (e *Encoder) Finish() []byte {
	e.flush()
	out := append([]byte(nil), e.buf.Bytes()...)
	pool.PutBlobBuffer(e.buf)
	e.buf = nil

	return out
}

// Write encodes a single byte.
func (e *Encoder) Write(value byte) {
	switch {
	case e.numLit == 0:
		e.literals[0] = value
		e.numLit = 1
		e.tailRun = 1
	case e.repeat:
		if value == e.literals[0] {
			e.numLit++
			if e.numLit == maxRepeatSize {
				e.flush()
			}
		} else {
			e.flush()
			e.literals[0] = value
			e.numLit = 1
			e.tailRun = 1
		}
	default:
		if value == e.literals[e.numLit-1] {
			e.tailRun++
		} else {
			e.tailRun = 1
		}

		switch {
		case e.tailRun == minRepeatSize:
			if e.numLit+1 == minRepeatSize {
				e.repeat = true
				e.numLit++
			} else {
				e.numLit -= minRepeatSize - 1
				e.flush()
				e.literals[0] = value
				e.repeat = true
				e.numLit = minRepeatSize
			}
		default:
			e.literals[e.numLit] = value
			e.numLit++
			if e.numLit == maxLiteralLen {
				e.flush()
			}
		}
	}
}

// WriteSlice encodes a slice of bytes.
func (e *Encoder) WriteSlice(values []byte) {
	for _, v := range values {
		e.Write(v)
	}
}

// flush emits the pending run (repeat or literal) as a header+body pair
// and resets the run state. A no-op when nothing is pending.
func (e *Encoder) flush() {
	if e.numLit == 0 {
		return
	}

	if e.repeat {
		header := byte(e.numLit - minRepeatSize)
		e.buf.MustWrite([]byte{header, e.literals[0]})
	} else {
		header := byte(-int8(e.numLit)) //nolint:gosec
		e.buf.MustWrite([]byte{header})
		e.buf.MustWrite(e.literals[:e.numLit])
	}

	e.numLit = 0
	e.repeat = false
	e.tailRun = 0
}

// Decode decodes exactly count bytes of byte-RLE-encoded data, returning
// the decoded byte slice and the number of input bytes consumed.
//
// Fails with errs.ErrByteRLETruncated if a run's header claims more bytes
// than remain in data, or if fewer than count bytes are produced.
func Decode(data []byte, count int) ([]byte, int, error) {
	out := make([]byte, 0, count)
	pos := 0
	for len(out) < count {
		if pos >= len(data) {
			return nil, pos, errs.ErrByteRLETruncated
		}
		header := int8(data[pos])
		pos++

		if header < 0 {
			n := -int(int16(header))
			if pos+n > len(data) {
				return nil, pos, errs.ErrByteRLETruncated
			}
			out = append(out, data[pos:pos+n]...)
			pos += n
		} else {
			n := int(header) + minRepeatSize
			if pos >= len(data) {
				return nil, pos, errs.ErrByteRLETruncated
			}
			v := data[pos]
			pos++
			for i := 0; i < n; i++ {
				out = append(out, v)
			}
		}
	}

	return out[:count], pos, nil
}

// DecodeAll decodes byte-RLE-encoded data to exhaustion (used when the
// number of encoded bytes, not a target count, is known — e.g. the length
// of a Length stream's own RLE payload is bounded by the containing
// stream's byte range rather than a row count).
func DecodeAll(data []byte) ([]byte, error) {
	out := make([]byte, 0, len(data))
	pos := 0
	for pos < len(data) {
		header := int8(data[pos])
		pos++

		if header < 0 {
			n := -int(int16(header))
			if pos+n > len(data) {
				return nil, errs.ErrByteRLETruncated
			}
			out = append(out, data[pos:pos+n]...)
			pos += n
		} else {
			n := int(header) + minRepeatSize
			if pos >= len(data) {
				return nil, errs.ErrByteRLETruncated
			}
			v := data[pos]
			pos++
			for i := 0; i < n; i++ {
				out = append(out, v)
			}
		}
	}

	return out, nil
}
