// Package fixtures builds realistic stripe fixtures for tests that sit
// above the column codec: a schema, a batch of values with a configurable
// null rate, the physical streams column.Encode produces for it, and
// (optionally) those streams compressed the way a real stripe writer
// would compress them before handing bytes to storage. A harness that
// only ever exercises column.Decode on raw, uncompressed bytes never
// drives the boundary a stripe reader actually sits behind; Stripe's
// Compressed/Decompress round-trip closes that gap.
package fixtures

import (
	"fmt"

	"github.com/orcgo/orccore/batch"
	"github.com/orcgo/orccore/column"
	"github.com/orcgo/orccore/compress"
	"github.com/orcgo/orccore/internal/options"
	"github.com/orcgo/orccore/schema"
	"github.com/orcgo/orccore/stream"
)

// Config controls how a fixture's synthetic values are generated.
type Config struct {
	RowCount    int
	NullRate    float64 // fraction of rows, per nullable column, that decode as NULL
	Compression compress.Kind
}

// Option configures a Config via the functional-options pattern.
type Option = options.Option[*Config]

// WithRowCount sets the fixture's row count. Must be positive.
func WithRowCount(n int) Option {
	return options.New(func(c *Config) error {
		if n <= 0 {
			return fmt.Errorf("fixtures: row count must be positive, got %d", n)
		}
		c.RowCount = n

		return nil
	})
}

// WithNullRate sets the fraction of rows (0.0-1.0) that land as NULL in
// every nullable column the fixture generates.
func WithNullRate(rate float64) Option {
	return options.New(func(c *Config) error {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("fixtures: null rate must be in [0,1], got %f", rate)
		}
		c.NullRate = rate

		return nil
	})
}

// WithCompression sets the compression algorithm Stripe.Compressed uses.
func WithCompression(kind compress.Kind) Option {
	return options.NoError(func(c *Config) {
		c.Compression = kind
	})
}

func defaultConfig() *Config {
	return &Config{RowCount: 8, NullRate: 0.25, Compression: compress.KindNone}
}

func newConfig(opts ...Option) (*Config, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Stripe is one fixture's fully-encoded physical representation: the
// schema it was built from plus the stream.Set/Params a column.Decode
// call needs to read it back.
type Stripe struct {
	Schema          *schema.Column
	RowCount        int
	Streams         stream.Set
	Encodings       stream.ColumnEncodings
	DictionarySizes stream.DictionarySizes
	Compression     compress.Kind
}

// Compressed returns a copy of s.Streams with every stream's bytes run
// through s.Compression. KindNone (the default) returns the streams
// unchanged.
func (s Stripe) Compressed() (stream.Set, error) {
	if s.Compression == compress.KindNone {
		return s.Streams, nil
	}

	codec, err := compress.GetCodec(s.Compression)
	if err != nil {
		return nil, err
	}

	out := make(stream.Set, len(s.Streams))
	for k, data := range s.Streams {
		compressed, err := codec.Compress(data)
		if err != nil {
			return nil, fmt.Errorf("fixtures: compress %s: %w", k, err)
		}
		out[k] = compressed
	}

	return out, nil
}

// Decompress reverses Compressed, given the Kind the streams were
// compressed with.
func Decompress(streams stream.Set, kind compress.Kind) (stream.Set, error) {
	if kind == compress.KindNone {
		return streams, nil
	}

	codec, err := compress.GetCodec(kind)
	if err != nil {
		return nil, err
	}

	out := make(stream.Set, len(streams))
	for k, data := range streams {
		restored, err := codec.Decompress(data)
		if err != nil {
			return nil, fmt.Errorf("fixtures: decompress %s: %w", k, err)
		}
		out[k] = restored
	}

	return out, nil
}

// encodeColumns walks every (column, array) pair, encodes it, and merges
// the results into one stripe.
func encodeColumns(cols []*schema.Column, arrs []batch.Array) (stream.Set, stream.ColumnEncodings, stream.DictionarySizes, error) {
	streams := stream.Set{}
	encodings := stream.ColumnEncodings{}
	dictSizes := stream.DictionarySizes{}

	for i, col := range cols {
		res, err := column.Encode(col, arrs[i], true, column.EncodeOptions{})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("fixtures: encode column %q: %w", col.Name, err)
		}
		for k, v := range res.Streams {
			streams[k] = v
		}
		encodings[col.ID] = res.Encoding
		if res.Encoding.IsDictionary() {
			dictSizes[col.ID] = res.DictionarySize
		}
	}

	return streams, encodings, dictSizes, nil
}

// validityFor returns a deterministic LSB-first validity bitmap for n
// rows at the given null rate: with k = i+offset, row i is null when
// floor((k+1)*rate) > floor(k*rate), which spreads the nulls evenly so
// every run of rows holds the rate's share of nulls, give or take one.
// Deterministic rather than randomized so fixture-based tests are
// reproducible.
func validityFor(n int, nullRate float64, offset int) []byte {
	out := make([]byte, (n+7)/8)
	for i := range n {
		k := float64(i + offset)
		isNull := int((k+1)*nullRate) > int(k*nullRate)
		if !isNull {
			out[i/8] |= 1 << uint(i%8)
		}
	}

	return out
}
