package fixtures

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orcgo/orccore/batch"
	"github.com/orcgo/orccore/column"
	"github.com/orcgo/orccore/compress"
)

func TestEventStripe_DecodeRoundTrip(t *testing.T) {
	stripe, err := EventStripe(WithRowCount(12), WithNullRate(0.25))
	require.NoError(t, err)

	params := column.Params{Encodings: stripe.Encodings, DictionarySizes: stripe.DictionarySizes}
	decoded, err := column.Decode(stripe.Schema, stripe.Streams, params, stripe.RowCount)
	require.NoError(t, err)

	out := decoded.(*batch.StructArray)
	require.Equal(t, 12, out.Len())

	ids := out.Fields[0].(*batch.Int64Array)
	for i := range 12 {
		require.Equal(t, int64(i+1), ids.Values[i])
	}
}

func TestEventStripe_InvalidOptionsRejected(t *testing.T) {
	_, err := EventStripe(WithRowCount(0))
	require.Error(t, err)

	_, err = EventStripe(WithNullRate(-0.1))
	require.Error(t, err)

	_, err = EventStripe(WithNullRate(1.5))
	require.Error(t, err)
}

func TestEventStripe_CompressedRoundTrip(t *testing.T) {
	stripe, err := EventStripe(WithRowCount(16), WithCompression(compress.KindS2))
	require.NoError(t, err)

	compressed, err := stripe.Compressed()
	require.NoError(t, err)
	require.Len(t, compressed, len(stripe.Streams))

	restored, err := Decompress(compressed, stripe.Compression)
	require.NoError(t, err)

	params := column.Params{Encodings: stripe.Encodings, DictionarySizes: stripe.DictionarySizes}
	decoded, err := column.Decode(stripe.Schema, restored, params, stripe.RowCount)
	require.NoError(t, err)
	require.Equal(t, 16, decoded.Len())
}

func TestEventStripe_NoCompressionIsNoOp(t *testing.T) {
	stripe, err := EventStripe(WithRowCount(4))
	require.NoError(t, err)
	require.Equal(t, compress.KindNone, stripe.Compression)

	compressed, err := stripe.Compressed()
	require.NoError(t, err)

	for k, data := range stripe.Streams {
		require.Equal(t, data, compressed[k])
	}
}

func TestTagsStripe_DecodeRoundTrip(t *testing.T) {
	stripe, err := TagsStripe(WithRowCount(9), WithNullRate(0.2))
	require.NoError(t, err)

	params := column.Params{Encodings: stripe.Encodings, DictionarySizes: stripe.DictionarySizes}
	decoded, err := column.Decode(stripe.Schema, stripe.Streams, params, stripe.RowCount)
	require.NoError(t, err)

	out := decoded.(*batch.ListArray)
	require.Equal(t, 9, out.Len())

	for i := range 9 {
		wantValid := isValid(validityFor(9, 0.2, 0), i)
		require.Equal(t, wantValid, out.IsValid(i), "row %d", i)
	}
}

func TestTagsStripe_ZeroNullRateHasNoPresentStream(t *testing.T) {
	stripe, err := TagsStripe(WithRowCount(6), WithNullRate(0))
	require.NoError(t, err)

	params := column.Params{Encodings: stripe.Encodings, DictionarySizes: stripe.DictionarySizes}
	decoded, err := column.Decode(stripe.Schema, stripe.Streams, params, stripe.RowCount)
	require.NoError(t, err)

	out := decoded.(*batch.ListArray)
	for i := range 6 {
		require.True(t, out.IsValid(i))
	}
}
