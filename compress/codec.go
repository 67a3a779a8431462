// Package compress provides the compression codecs the fixtures package
// uses to build realistic stripe-stream test data. The stream-codec core
// (rleint, byterle, valuecodec, column) never compresses or decompresses
// anything itself — ORC compresses stream bytes in chunks above this
// layer, outside spec.md's scope — but a test harness that only ever
// feeds the core raw, uncompressed bytes would never exercise the real
// boundary a stripe reader sits behind. This package gives fixtures a way
// to round-trip through a real compressor first.
package compress

import "fmt"

// Kind identifies a compression algorithm a stripe's streams were written
// with, mirroring ORC's per-stripe CompressionKind without adopting
// ORC's exact wire enum (out of scope per spec.md §1).
type Kind uint8

const (
	KindNone Kind = iota + 1
	KindZstd
	KindS2
	KindLZ4
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindZstd:
		return "Zstd"
	case KindS2:
		return "S2"
	case KindLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Compressor compresses a stream's raw bytes.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses bytes produced by the matching Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of one compression algorithm.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[Kind]Codec{
	KindNone: NewNoOpCompressor(),
	KindZstd: NewZstdCompressor(),
	KindS2:   NewS2Compressor(),
	KindLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the given Kind.
func GetCodec(kind Kind) (Codec, error) {
	if codec, ok := builtinCodecs[kind]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("compress: unsupported compression kind: %s", kind)
}
