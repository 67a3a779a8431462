// Package stripefp fingerprints a stripe's physical stream set with
// xxHash64, the way a stripe reader can cheaply check whether the bytes it
// holds for a stripe still match what it last decoded — without
// re-walking every value stream. This supplements spec.md: the core codec
// packages (rleint, byterle, valuecodec, column) never hash anything
// themselves, but a stripe cache sitting above them needs a fast identity
// check for a stream.Set.
package stripefp

import (
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/orcgo/orccore/stream"
)

// Fingerprint is the xxHash64 digest of a stripe's stream bytes, combined
// in a deterministic (column ID, stream kind) order so that two
// byte-identical stream.Sets always fingerprint the same regardless of Go
// map iteration order.
type Fingerprint uint64

// Stripe computes the Fingerprint of every stream in streams. Streams are
// visited in ascending (ColumnID, Kind) order and folded into one running
// xxHash64 digest via Digest.Write, so the result depends only on the
// stream map's contents, not its iteration order.
func Stripe(streams stream.Set) Fingerprint {
	keys := make([]stream.Key, 0, len(streams))
	for k := range streams {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ColumnID != keys[j].ColumnID {
			return keys[i].ColumnID < keys[j].ColumnID
		}

		return keys[i].Kind < keys[j].Kind
	})

	d := xxhash.New()
	for _, k := range keys {
		writeKey(d, k)
		_, _ = d.Write(streams[k])
	}

	return Fingerprint(d.Sum64())
}

// Column computes the Fingerprint of the subset of streams belonging to
// columnID only, in ascending Kind order. Two stripes that agree on every
// stream of a column but differ elsewhere produce the same Column
// fingerprint, letting a cache invalidate a single column's decoded
// batches without rehashing the whole stripe.
func Column(streams stream.Set, columnID int) Fingerprint {
	kinds := []stream.Kind{stream.Present, stream.Data, stream.Length, stream.DictionaryData, stream.Secondary}

	d := xxhash.New()
	for _, kind := range kinds {
		key := stream.Key{ColumnID: columnID, Kind: kind}
		data, ok := streams[key]
		if !ok {
			continue
		}
		writeKey(d, key)
		_, _ = d.Write(data)
	}

	return Fingerprint(d.Sum64())
}

func writeKey(d *xxhash.Digest, k stream.Key) {
	var buf [8]byte
	putUint32(buf[0:4], uint32(k.ColumnID))
	putUint32(buf[4:8], uint32(k.Kind))
	_, _ = d.Write(buf[:])
}

func putUint32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
