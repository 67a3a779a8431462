// Package errs declares the sentinel errors returned across the module.
//
// Every error a caller might want to match against with errors.Is is
// declared once here. The codec packages return these sentinels as they
// are, without added context; fixtures wraps them with fmt.Errorf("...: %w")
// to name the column or stream involved.
//
// The four families below mirror the error surface spec.md describes:
// malformed stream bytes, failed byte sources, unsupported schema types,
// and schema/stream mismatches. The package-specific sentinels are
// separate errors.New values and do not wrap a family, so errors.Is
// matches a family sentinel only where that sentinel itself is returned.
package errs

import "errors"

// Family sentinels. No other sentinel in this package wraps them: a
// truncated varint, for example, returns ErrVarintTruncated, and
// errors.Is(err, errs.ErrOutOfSpec) is false for it. They are returned
// directly only by the few code paths that have no more specific sentinel.
var (
	// ErrOutOfSpec marks a malformed stream byte: bad header, truncated run,
	// or a value that overflows its declared width.
	ErrOutOfSpec = errors.New("orccore: out of spec")
	// ErrIO marks a failure reading from the underlying byte source. No
	// function in this module returns it.
	ErrIO = errors.New("orccore: io error")
	// ErrUnsupportedType marks a schema type the codec path does not implement.
	ErrUnsupportedType = errors.New("orccore: unsupported type")
	// ErrInvalidColumn marks a schema/stream mismatch: a missing required
	// stream, or a stream present under the wrong encoding.
	ErrInvalidColumn = errors.New("orccore: invalid column")
)

// Varint / zigzag (C1)
var (
	// ErrVarintTruncated fires when the byte source ends mid-varint.
	ErrVarintTruncated = errors.New("orccore: varint truncated")
	// ErrVarintOverflow fires when a varint exceeds its target width (10
	// bytes for 64-bit, 19 bytes for 128-bit).
	ErrVarintOverflow = errors.New("orccore: varint exceeds target width")
)

// Bit-packed integers (C2)
var (
	// ErrBitWidthRange fires when a requested bit width falls outside 1..64.
	ErrBitWidthRange = errors.New("orccore: bit width out of range")
	// ErrUnalignedBitWidth fires when the write path is asked to pack at a
	// bit width outside ORC's aligned-width table.
	ErrUnalignedBitWidth = errors.New("orccore: bit width is not an aligned write width")
)

// Byte RLE / boolean (C3, C4)
var (
	// ErrByteRLETruncated fires when a repeat or literal run claims more
	// bytes than remain in the source.
	ErrByteRLETruncated = errors.New("orccore: byte RLE run truncated")
)

// Integer RLE v1/v2 (C5, C6)
var (
	// ErrRLEHeaderTruncated fires when the source ends before a header (and
	// its fixed-size body prefix) can be read.
	ErrRLEHeaderTruncated = errors.New("orccore: RLE header truncated")
	// ErrRLERunTruncated fires when fewer values remain in the source than
	// the run's header claims.
	ErrRLERunTruncated = errors.New("orccore: RLE run truncated")
	// ErrRLEInvalidSubEncoding fires on a header whose two high bits select
	// a sub-encoding this decoder does not recognize (should be unreachable
	// since all four 2-bit values are assigned, kept for defensive decode).
	ErrRLEInvalidSubEncoding = errors.New("orccore: invalid RLE v2 sub-encoding")
	// ErrPatchListTooLong fires when a Patched-Base patch list length byte
	// exceeds 31 entries.
	ErrPatchListTooLong = errors.New("orccore: patch list length exceeds 31")
	// ErrRunLengthRange fires when an encoded run length falls outside
	// 1..512 (Direct/Patched-Base/Delta) or 3..10 (Short-Repeat). No
	// function in this module returns it.
	ErrRunLengthRange = errors.New("orccore: run length out of range")
)

// Column assembly (C10, C11)
var (
	// ErrPresentLengthMismatch fires when a decoded Present stream's row
	// count does not match the stripe's declared row count after truncation.
	// No function in this module returns it.
	ErrPresentLengthMismatch = errors.New("orccore: present stream length mismatch")
	// ErrDictionaryIndexOutOfRange fires when a Dictionary-encoded Data
	// stream yields an index outside [0, size).
	ErrDictionaryIndexOutOfRange = errors.New("orccore: dictionary index out of range")
	// ErrRowCountMismatch fires when sibling columns in the same stripe
	// decode to different row counts. No function in this module returns it.
	ErrRowCountMismatch = errors.New("orccore: row count mismatch across columns")
	// ErrMissingStream fires when a column's encoding requires a stream
	// kind that is absent from the stripe's stream map. No function in this
	// module returns it.
	ErrMissingStream = errors.New("orccore: required stream missing")
)
