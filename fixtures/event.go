package fixtures

import (
	"math/big"

	"github.com/orcgo/orccore/batch"
	"github.com/orcgo/orccore/schema"
	"github.com/orcgo/orccore/valuecodec"
)

// EventSchema returns the column tree EventStripe encodes against: a
// struct of (id Long, name String, amount Decimal(18,2), seen Timestamp,
// active Boolean).
func EventSchema() *schema.Column {
	b := schema.NewBuilder()
	id := b.Primitive("id", schema.Long)
	name := b.Primitive("name", schema.String)
	amount := b.DecimalColumn("amount", 18, 2)
	seen := b.Primitive("seen", schema.Timestamp)
	active := b.Primitive("active", schema.Boolean)

	return b.Struct("event", id, name, amount, seen, active)
}

// EventStripe builds a Stripe for EventSchema's column tree: RowCount
// rows, every nullable field (every field but id) null at NullRate.
func EventStripe(opts ...Option) (Stripe, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return Stripe{}, err
	}

	root := EventSchema()
	id, name, amount, seen, active := root.Children[0], root.Children[1], root.Children[2], root.Children[3], root.Children[4]

	n := cfg.RowCount
	ids := make([]int64, n)
	names := make([][]byte, n)
	amounts := make([]valuecodec.Decimal, n)
	seconds := make([]int64, n)
	nanos := make([]int64, n)
	actives := make([]bool, n)

	for i := range n {
		ids[i] = int64(i + 1)
		names[i] = []byte(sampleName(i))
		amounts[i] = valuecodec.Decimal{Unscaled: big.NewInt(int64(i)*137 + 99), Scale: 2}
		seconds[i] = int64(i * 60)
		nanos[i] = int64(i%10) * 100000000
		actives[i] = i%2 == 0
	}

	idArr := batch.NewInt64Array(ids, nil)
	nameArr := batch.NewBytesArray(names, validityFor(n, cfg.NullRate, 1))
	amountArr := batch.NewDecimalArray(amounts, validityFor(n, cfg.NullRate, 2))
	seenArr := batch.NewTimestampArray(seconds, nanos, validityFor(n, cfg.NullRate, 3))
	activeArr := batch.NewBoolArray(actives, validityFor(n, cfg.NullRate, 4))

	cols := []*schema.Column{id, name, amount, seen, active}
	arrs := []batch.Array{idArr, nameArr, amountArr, seenArr, activeArr}

	streams, encodings, dictSizes, err := encodeColumns(cols, arrs)
	if err != nil {
		return Stripe{}, err
	}

	return Stripe{
		Schema:          root,
		RowCount:        n,
		Streams:         streams,
		Encodings:       encodings,
		DictionarySizes: dictSizes,
		Compression:     cfg.Compression,
	}, nil
}

// sampleName cycles through a small pool of names so that, across enough
// rows, a dictionary-encoded name column crosses the uniqueness
// threshold in one direction or the other depending on RowCount.
func sampleName(i int) string {
	pool := []string{"alice", "bob", "carol", "dave", "erin"}

	return pool[i%len(pool)]
}
