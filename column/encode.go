package column

import (
	"github.com/orcgo/orccore/batch"
	"github.com/orcgo/orccore/byterle"
	"github.com/orcgo/orccore/errs"
	"github.com/orcgo/orccore/rleint"
	"github.com/orcgo/orccore/schema"
	"github.com/orcgo/orccore/stream"
	"github.com/orcgo/orccore/valuecodec"
)

// EncodeOptions configures the column encoder's write-path heuristics
// (spec.md §4.7, §9's "make them configurable and test at boundary
// values").
type EncodeOptions struct {
	// DictionaryUniquenessThreshold selects Dictionary encoding for a
	// string/binary column when unique_count/total_count is at or below
	// this fraction. Zero defaults to 0.8.
	DictionaryUniquenessThreshold float64
	// MaxDictionaryBytes caps the total dictionary payload size Dictionary
	// encoding is allowed to produce; above this, Direct is used even when
	// the uniqueness threshold would otherwise select Dictionary. Zero
	// means unbounded.
	MaxDictionaryBytes int
}

func (o EncodeOptions) uniquenessThreshold() float64 {
	if o.DictionaryUniquenessThreshold == 0 {
		return 0.8
	}

	return o.DictionaryUniquenessThreshold
}

// Result holds everything Encode writes for one column, to be merged into
// the stripe's stream.Set and stream.ColumnEncodings by the caller.
type Result struct {
	Streams        stream.Set
	Encoding       stream.Encoding
	DictionarySize int // meaningful only when Encoding.IsDictionary()
}

// Encode disassembles an in-memory Array back into the physical streams
// col's schema type requires, the mirror image of Decode. Integer streams
// are always written as RLE v2 (see encodeInt); v2 only selects whether
// Result.Encoding carries the V2 tags (DirectV2/DictionaryV2) or the v1
// tags (Direct/Dictionary). Every caller in this module passes v2=true.
func Encode(col *schema.Column, a batch.Array, v2 bool, opts EncodeOptions) (Result, error) {
	res := Result{Streams: stream.Set{}}

	validity := validityOf(a)
	if validity != nil && !byterle.AllTrue(validity, a.Len()) {
		res.Streams.Set(col.ID, stream.Present, byterle.EncodePresent(validity, a.Len()))
	}

	enc := stream.Direct
	if v2 {
		enc = stream.DirectV2
	}

	switch col.Type {
	case schema.Boolean:
		arr := a.(*batch.BoolArray)
		dense := denseBools(arr)
		res.Streams.Set(col.ID, stream.Data, byterle.EncodeBits(dense))
		res.Encoding = enc

	case schema.Byte, schema.Short, schema.Int, schema.Long, schema.Date:
		arr := a.(*batch.Int64Array)
		dense := denseValues(arr.Values, validity)
		res.Streams.Set(col.ID, stream.Data, encodeInt(dense, true, v2))
		res.Encoding = enc

	case schema.Float:
		arr := a.(*batch.Float32Array)
		dense := denseValues(arr.Values, validity)
		res.Streams.Set(col.ID, stream.Data, valuecodec.EncodeFloat32(nil, dense))
		res.Encoding = enc

	case schema.Double:
		arr := a.(*batch.Float64Array)
		dense := denseValues(arr.Values, validity)
		res.Streams.Set(col.ID, stream.Data, valuecodec.EncodeFloat64(nil, dense))
		res.Encoding = enc

	case schema.String, schema.Binary:
		return encodeBytesColumn(col, a.(*batch.BytesArray), validity, v2, opts)

	case schema.Decimal:
		arr := a.(*batch.DecimalArray)
		dense := denseValues(arr.Values, validity)
		data, secondary := valuecodec.EncodeDecimal(dense)
		res.Streams.Set(col.ID, stream.Data, data)
		res.Streams.Set(col.ID, stream.Secondary, secondary)
		res.Encoding = enc

	case schema.Timestamp:
		arr := a.(*batch.TimestampArray)
		seconds := denseValues(arr.Seconds, validity)
		nanos := denseValues(arr.Nanos, validity)
		res.Streams.Set(col.ID, stream.Data, valuecodec.EncodeTimestampSeconds(seconds))
		res.Streams.Set(col.ID, stream.Secondary, valuecodec.EncodeNanos(nanos))
		res.Encoding = enc

	case schema.List:
		return encodeListColumn(col, a.(*batch.ListArray), validity, v2, opts)

	case schema.Map:
		return encodeMapColumn(col, a.(*batch.MapArray), validity, v2, opts)

	case schema.Struct:
		return encodeStructColumn(col, a.(*batch.StructArray), v2, opts)

	case schema.Union:
		return encodeUnionColumn(col, a.(*batch.UnionArray), validity, v2, opts)

	default:
		return Result{}, errs.ErrUnsupportedType
	}

	return res, nil
}

func validityOf(a batch.Array) []byte {
	type hasValidity interface{ Validity() []byte }
	if v, ok := a.(hasValidity); ok {
		return v.Validity()
	}

	return nil
}

func denseValues[T any](values []T, validity []byte) []T {
	if validity == nil {
		return values
	}

	out := make([]T, 0, len(values))
	for i, v := range values {
		if byterle.IsValid(validity, i) {
			out = append(out, v)
		}
	}

	return out
}

func denseBools(arr *batch.BoolArray) []bool {
	return denseValues(arr.Values, arr.Validity())
}

// encodeInt always emits RLE v2: rleint has no v1 encoder, since v1 is a
// legacy read-only format (§4.4). The v2 parameter is accepted for
// symmetry with Decode/the rest of the Encode call tree and to make the
// "v1 is write-unsupported" decision a single point of change.
func encodeInt(values []int64, signed, v2 bool) []byte {
	_ = v2

	return rleint.EncodeV2(values, signed)
}

func encodeBytesColumn(col *schema.Column, arr *batch.BytesArray, validity []byte, v2 bool, opts EncodeOptions) (Result, error) {
	res := Result{Streams: stream.Set{}}
	if validity != nil && !byterle.AllTrue(validity, arr.Len()) {
		res.Streams.Set(col.ID, stream.Present, byterle.EncodePresent(validity, arr.Len()))
	}

	n := arr.Len()
	values := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		if validity == nil || byterle.IsValid(validity, i) {
			values = append(values, arr.At(i))
		}
	}

	unique := map[string]int{}
	var dictBytes int
	for _, v := range values {
		if _, ok := unique[string(v)]; !ok {
			unique[string(v)] = len(unique)
			dictBytes += len(v)
		}
	}

	useDictionary := len(values) > 0 &&
		float64(len(unique))/float64(len(values)) <= opts.uniquenessThreshold() &&
		(opts.MaxDictionaryBytes == 0 || dictBytes <= opts.MaxDictionaryBytes)

	if useDictionary {
		dict := make([][]byte, len(unique))
		for s, idx := range unique {
			dict[idx] = []byte(s)
		}

		lengths := make([]int64, len(dict))
		var dictData []byte
		for i, d := range dict {
			lengths[i] = int64(len(d))
			dictData = append(dictData, d...)
		}

		indices := make([]int64, len(values))
		for i, v := range values {
			indices[i] = int64(unique[string(v)])
		}

		res.Streams.Set(col.ID, stream.DictionaryData, dictData)
		res.Streams.Set(col.ID, stream.Length, encodeInt(lengths, false, v2))
		res.Streams.Set(col.ID, stream.Data, encodeInt(indices, false, v2))
		res.Encoding = dictionaryEncoding(v2)
		res.DictionarySize = len(dict)

		return res, nil
	}

	lengths := make([]int64, len(values))
	var data []byte
	for i, v := range values {
		lengths[i] = int64(len(v))
		data = append(data, v...)
	}
	res.Streams.Set(col.ID, stream.Length, encodeInt(lengths, false, v2))
	res.Streams.Set(col.ID, stream.Data, data)
	res.Encoding = directEncoding(v2)

	return res, nil
}

func directEncoding(v2 bool) stream.Encoding {
	if v2 {
		return stream.DirectV2
	}

	return stream.Direct
}

func dictionaryEncoding(v2 bool) stream.Encoding {
	if v2 {
		return stream.DictionaryV2
	}

	return stream.Dictionary
}

func encodeListColumn(col *schema.Column, arr *batch.ListArray, validity []byte, v2 bool, opts EncodeOptions) (Result, error) {
	res := Result{Streams: stream.Set{}}
	if validity != nil && !byterle.AllTrue(validity, arr.Len()) {
		res.Streams.Set(col.ID, stream.Present, byterle.EncodePresent(validity, arr.Len()))
	}

	lengths := rowLengths(arr.Len(), validity, arr.Offsets)
	res.Streams.Set(col.ID, stream.Length, encodeInt(lengths, false, v2))
	res.Encoding = directEncoding(v2)

	elemRes, err := Encode(col.Children[0], arr.Elem, v2, opts)
	if err != nil {
		return Result{}, err
	}
	mergeInto(res.Streams, elemRes.Streams)

	return res, nil
}

func encodeMapColumn(col *schema.Column, arr *batch.MapArray, validity []byte, v2 bool, opts EncodeOptions) (Result, error) {
	res := Result{Streams: stream.Set{}}
	if validity != nil && !byterle.AllTrue(validity, arr.Len()) {
		res.Streams.Set(col.ID, stream.Present, byterle.EncodePresent(validity, arr.Len()))
	}

	lengths := rowLengths(arr.Len(), validity, arr.Offsets)
	res.Streams.Set(col.ID, stream.Length, encodeInt(lengths, false, v2))
	res.Encoding = directEncoding(v2)

	keysRes, err := Encode(col.Children[0], arr.Keys, v2, opts)
	if err != nil {
		return Result{}, err
	}
	valuesRes, err := Encode(col.Children[1], arr.Values, v2, opts)
	if err != nil {
		return Result{}, err
	}
	mergeInto(res.Streams, keysRes.Streams)
	mergeInto(res.Streams, valuesRes.Streams)

	return res, nil
}

// rowLengths recovers one length per valid row from a padded offset
// slice, the inverse of buildOffsets/padOffsets.
func rowLengths(n int, validity []byte, offsets []int32) []int64 {
	out := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		if validity == nil || byterle.IsValid(validity, i) {
			out = append(out, int64(offsets[i+1]-offsets[i]))
		}
	}

	return out
}

func encodeStructColumn(col *schema.Column, arr *batch.StructArray, v2 bool, opts EncodeOptions) (Result, error) {
	res := Result{Streams: stream.Set{}}
	validity := arr.Validity()
	if validity != nil && !byterle.AllTrue(validity, arr.Len()) {
		res.Streams.Set(col.ID, stream.Present, byterle.EncodePresent(validity, arr.Len()))
	}
	res.Encoding = directEncoding(v2)

	for i, child := range col.Children {
		childRes, err := Encode(child, arr.Fields[i], v2, opts)
		if err != nil {
			return Result{}, err
		}
		mergeInto(res.Streams, childRes.Streams)
	}

	return res, nil
}

func encodeUnionColumn(col *schema.Column, arr *batch.UnionArray, validity []byte, v2 bool, opts EncodeOptions) (Result, error) {
	res := Result{Streams: stream.Set{}}
	if validity != nil && !byterle.AllTrue(validity, arr.Len()) {
		res.Streams.Set(col.ID, stream.Present, byterle.EncodePresent(validity, arr.Len()))
	}
	res.Encoding = directEncoding(v2)

	tags := denseValues(arr.Tags, validity)
	enc := byterle.NewEncoder()
	enc.WriteSlice(tags)
	res.Streams.Set(col.ID, stream.Data, enc.Finish())

	for i, child := range col.Children {
		childRes, err := Encode(child, arr.Alts[i], v2, opts)
		if err != nil {
			return Result{}, err
		}
		mergeInto(res.Streams, childRes.Streams)
	}

	return res, nil
}

func mergeInto(dst, src stream.Set) {
	for k, v := range src {
		dst[k] = v
	}
}
