// Package column implements the column decoder (C10) and column encoder
// (C11): the machinery that assembles the stream-level codecs (rleint,
// byterle, valuecodec) into typed columnar batches per spec.md §4.6-4.7,
// including the null-aware "spaced decode" primitive.
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

// Params bundles the per-stripe metadata a column decode/encode needs
// beyond the schema and stream bytes themselves: each column's physical
// encoding, and (for dictionary-encoded string/binary columns) dictionary
// sizes. In a full ORC reader these come from the stripe footer protobuf;
// here they are supplied directly by the caller.
type Params struct {
	Encodings       stream.ColumnEncodings
	DictionarySizes stream.DictionarySizes
}

func (p Params) encodingFor(columnID int) stream.Encoding {
	return p.Encodings[columnID]
}

// rleDecodeInt decodes count integer values from data using v1 or v2
// depending on enc.
func rleDecodeInt(data []byte, signed bool, enc stream.Encoding, count int) ([]int64, error) {
	if enc.UsesRLEv2() {
		return rleint.DecodeV2(data, signed, count)
	}

	return rleint.DecodeV1(data, signed, count)
}

// Decode assembles a typed batch.Array for col over rowCount logical
// rows, reading whatever streams col's type requires out of streams.
func Decode(col *schema.Column, streams stream.Set, params Params, rowCount int) (batch.Array, error) {
	present := streams.Get(col.ID, stream.Present)
	validity, trueCount, err := byterle.DecodePresent(present, rowCount)
	if err != nil {
		return nil, err
	}
	if present == nil {
		validity = nil // nil validity means "all valid" throughout batch/column
	}

	enc := params.encodingFor(col.ID)
	data := streams.Get(col.ID, stream.Data)

	switch col.Type {
	case schema.Boolean:
		dense, err := byterle.DecodeBits(data, trueCount)
		if err != nil {
			return nil, err
		}

		return batch.NewBoolArray(spacedFromSlice(rowCount, validity, dense), validity), nil

	case schema.Byte, schema.Short, schema.Int, schema.Long, schema.Date:
		dense, err := rleDecodeInt(data, true, enc, trueCount)
		if err != nil {
			return nil, err
		}

		return batch.NewInt64Array(spacedFromSlice(rowCount, validity, dense), validity), nil

	case schema.Float:
		dense, err := valuecodec.DecodeFloat32(data, trueCount)
		if err != nil {
			return nil, err
		}

		return batch.NewFloat32Array(spacedFromSlice(rowCount, validity, dense), validity), nil

	case schema.Double:
		dense, err := valuecodec.DecodeFloat64(data, trueCount)
		if err != nil {
			return nil, err
		}

		return batch.NewFloat64Array(spacedFromSlice(rowCount, validity, dense), validity), nil

	case schema.String, schema.Binary:
		return decodeBytesColumn(col, streams, params, enc, data, validity, trueCount, rowCount)

	case schema.Decimal:
		secondary := streams.Get(col.ID, stream.Secondary)
		dense, err := valuecodec.DecodeDecimal(data, secondary, trueCount)
		if err != nil {
			return nil, err
		}

		return batch.NewDecimalArray(spacedFromSlice(rowCount, validity, dense), validity), nil

	case schema.Timestamp:
		secondary := streams.Get(col.ID, stream.Secondary)
		seconds, err := valuecodec.DecodeTimestampSeconds(data, trueCount)
		if err != nil {
			return nil, err
		}
		nanos, err := valuecodec.DecodeNanos(secondary, trueCount)
		if err != nil {
			return nil, err
		}

		return batch.NewTimestampArray(
			spacedFromSlice(rowCount, validity, seconds),
			spacedFromSlice(rowCount, validity, nanos),
			validity,
		), nil

	case schema.List:
		return decodeListColumn(col, streams, params, enc, validity, trueCount, rowCount)

	case schema.Map:
		return decodeMapColumn(col, streams, params, enc, validity, trueCount, rowCount)

	case schema.Struct:
		return decodeStructColumn(col, streams, params, validity, trueCount, rowCount)

	case schema.Union:
		return decodeUnionColumn(col, streams, params, data, validity, trueCount, rowCount)

	default:
		return nil, errs.ErrUnsupportedType
	}
}

func decodeBytesColumn(col *schema.Column, streams stream.Set, params Params, enc stream.Encoding, data []byte, validity []byte, trueCount, rowCount int) (batch.Array, error) {
	lengthStream := streams.Get(col.ID, stream.Length)

	if enc.IsDictionary() {
		dictSize := params.DictionarySizes[col.ID]
		dictLengths, err := rleDecodeInt(lengthStream, false, enc, dictSize)
		if err != nil {
			return nil, err
		}

		dictData := streams.Get(col.ID, stream.DictionaryData)
		dictionary, err := sliceByLengths(dictData, dictLengths)
		if err != nil {
			return nil, err
		}

		indices, err := rleDecodeInt(data, false, enc, trueCount)
		if err != nil {
			return nil, err
		}

		dense := make([][]byte, trueCount)
		for i, idx := range indices {
			if idx < 0 || int(idx) >= len(dictionary) {
				return nil, errs.ErrDictionaryIndexOutOfRange
			}
			dense[i] = dictionary[idx]
		}

		return batch.NewBytesArray(spacedFromSlice(rowCount, validity, dense), validity), nil
	}

	lengths, err := rleDecodeInt(lengthStream, false, enc, trueCount)
	if err != nil {
		return nil, err
	}

	dense, err := sliceByLengths(data, lengths)
	if err != nil {
		return nil, err
	}

	return batch.NewBytesArray(spacedFromSlice(rowCount, validity, dense), validity), nil
}

// sliceByLengths splits data into len(lengths) consecutive spans.
func sliceByLengths(data []byte, lengths []int64) ([][]byte, error) {
	out := make([][]byte, len(lengths))
	pos := int64(0)
	for i, l := range lengths {
		if l < 0 || pos+l > int64(len(data)) {
			return nil, errs.ErrOutOfSpec
		}
		out[i] = data[pos : pos+l]
		pos += l
	}

	return out, nil
}

func decodeListColumn(col *schema.Column, streams stream.Set, params Params, enc stream.Encoding, validity []byte, trueCount, rowCount int) (batch.Array, error) {
	lengthStream := streams.Get(col.ID, stream.Length)
	lengths, err := rleDecodeInt(lengthStream, false, enc, trueCount)
	if err != nil {
		return nil, err
	}

	offsets, total := buildOffsets(rowCount, validity, lengths)

	elem, err := Decode(col.Children[0], streams, params, total)
	if err != nil {
		return nil, err
	}

	return batch.NewListArray(offsets, elem, validity), nil
}

func decodeMapColumn(col *schema.Column, streams stream.Set, params Params, enc stream.Encoding, validity []byte, trueCount, rowCount int) (batch.Array, error) {
	lengthStream := streams.Get(col.ID, stream.Length)
	lengths, err := rleDecodeInt(lengthStream, false, enc, trueCount)
	if err != nil {
		return nil, err
	}

	offsets, total := buildOffsets(rowCount, validity, lengths)

	keys, err := Decode(col.Children[0], streams, params, total)
	if err != nil {
		return nil, err
	}
	values, err := Decode(col.Children[1], streams, params, total)
	if err != nil {
		return nil, err
	}

	return batch.NewMapArray(offsets, keys, values, validity), nil
}

// buildOffsets expands a dense per-valid-row length list into a
// rowCount+1 offset slice, with null rows contributing a zero-length
// span, and returns the total element count the List/Map's single child
// stream must be decoded for.
func buildOffsets(rowCount int, validity []byte, lengths []int64) ([]int32, int) {
	offsets := make([]int32, rowCount+1)
	rank := 0
	for i := 0; i < rowCount; i++ {
		var l int64
		if validity == nil || byterle.IsValid(validity, i) {
			l = lengths[rank]
			rank++
		}
		offsets[i+1] = offsets[i] + int32(l)
	}

	return offsets, int(offsets[rowCount])
}

func decodeStructColumn(col *schema.Column, streams stream.Set, params Params, validity []byte, trueCount, rowCount int) (batch.Array, error) {
	names := make([]string, len(col.Children))
	fields := make([]batch.Array, len(col.Children))
	for i, child := range col.Children {
		names[i] = child.Name
		fieldArr, err := Decode(child, streams, params, trueCount)
		if err != nil {
			return nil, err
		}
		fields[i] = padArray(fieldArr, rowCount, validity)
	}

	return batch.NewStructArray(rowCount, names, fields, validity), nil
}

func decodeUnionColumn(col *schema.Column, streams stream.Set, params Params, data []byte, validity []byte, trueCount, rowCount int) (batch.Array, error) {
	tags, _, err := byterle.Decode(data, trueCount)
	if err != nil {
		return nil, err
	}

	altCounts := make([]int, len(col.Children))
	index := make([]int32, trueCount)
	for i, tag := range tags {
		if int(tag) >= len(col.Children) {
			return nil, errs.ErrInvalidColumn
		}
		index[i] = int32(altCounts[tag])
		altCounts[tag]++
	}

	alts := make([]batch.Array, len(col.Children))
	for k, child := range col.Children {
		altArr, err := Decode(child, streams, params, altCounts[k])
		if err != nil {
			return nil, err
		}
		alts[k] = altArr
	}

	return batch.NewUnionArray(
		spacedFromSlice(rowCount, validity, tags),
		spacedFromSlice(rowCount, validity, index),
		alts,
		validity,
	), nil
}
