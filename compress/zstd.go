package compress

// ZstdCompressor compresses stripe stream bytes with Zstandard. It has two
// implementations selected by build tag, mirroring the pure-Go vs cgo
// split a real deployment has to choose between: zstd_pure.go (default,
// klauspost/compress/zstd) and zstd_cgo.go (cgo build tag, valyala/gozstd).
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
