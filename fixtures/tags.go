package fixtures

import (
	"github.com/orcgo/orccore/batch"
	"github.com/orcgo/orccore/schema"
)

// TagsSchema returns a List<Long> column named "tags", the column tree
// TagsStripe encodes against.
func TagsSchema() *schema.Column {
	b := schema.NewBuilder()
	elem := b.Primitive("tag", schema.Long)

	return b.List("tags", elem)
}

// TagsStripe builds a Stripe for TagsSchema: RowCount rows, each either
// NULL (at NullRate) or holding a short run of Long elements whose count
// and values are derived deterministically from the row index, so the
// fixture exercises List's offset/validity padding without randomness.
func TagsStripe(opts ...Option) (Stripe, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return Stripe{}, err
	}

	col := TagsSchema()
	n := cfg.RowCount
	validity := validityFor(n, cfg.NullRate, 0)

	offsets := make([]int32, n+1)
	var elems []int64
	for i := range n {
		offsets[i] = int32(len(elems))
		if isValid(validity, i) {
			count := i % 3
			for j := range count {
				elems = append(elems, int64(i*10+j))
			}
		}
	}
	offsets[n] = int32(len(elems))

	elemArr := batch.NewInt64Array(elems, nil)
	listArr := batch.NewListArray(offsets, elemArr, validity)

	streams, encodings, dictSizes, err := encodeColumns([]*schema.Column{col}, []batch.Array{listArr})
	if err != nil {
		return Stripe{}, err
	}

	return Stripe{
		Schema:          col,
		RowCount:        n,
		Streams:         streams,
		Encodings:       encodings,
		DictionarySizes: dictSizes,
		Compression:     cfg.Compression,
	}, nil
}

func isValid(validity []byte, row int) bool {
	return validity[row/8]&(1<<uint(row%8)) != 0
}
