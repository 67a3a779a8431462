// Package stream models the physical stream map a stripe presents to the
// column codec layer (spec.md §3): which streams exist per column, what
// each one's Kind means, and how a column's logical encoding selects
// which streams it needs.
package stream

import "fmt"

// Kind identifies a stream's role within a column.
type Kind int

const (
	Present Kind = iota + 1
	Data
	Length
	DictionaryData
	Secondary
)

func (k Kind) String() string {
	switch k {
	case Present:
		return "PRESENT"
	case Data:
		return "DATA"
	case Length:
		return "LENGTH"
	case DictionaryData:
		return "DICTIONARY_DATA"
	case Secondary:
		return "SECONDARY"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Encoding identifies how a column's Data stream (and, for strings,
// DictionaryData/Length streams) are laid out.
type Encoding int

const (
	Direct Encoding = iota
	Dictionary
	DirectV2
	DictionaryV2
)

func (e Encoding) String() string {
	switch e {
	case Direct:
		return "DIRECT"
	case Dictionary:
		return "DICTIONARY"
	case DirectV2:
		return "DIRECT_V2"
	case DictionaryV2:
		return "DICTIONARY_V2"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// UsesRLEv2 reports whether e's Data stream (and length/secondary streams,
// where present) are RLE v2 rather than RLE v1.
func (e Encoding) UsesRLEv2() bool {
	return e == DirectV2 || e == DictionaryV2
}

// IsDictionary reports whether e stores values indirectly via a
// DictionaryData stream plus Data-stream indices.
func (e Encoding) IsDictionary() bool {
	return e == Dictionary || e == DictionaryV2
}

// Key identifies one physical stream: the column it belongs to and its
// role.
type Key struct {
	ColumnID int
	Kind     Kind
}

func (k Key) String() string {
	return fmt.Sprintf("col%d/%s", k.ColumnID, k.Kind)
}

// Set is the physical stream map a stripe's column codecs read from and
// write to, keyed by (column ID, stream kind).
type Set map[Key][]byte

// Get returns the bytes for (columnID, kind), or nil if absent. A nil
// Present stream means "no nulls, all rows valid" per spec.md §5's
// present-stream-omission rule; a nil Data/Length/Secondary stream
// generally means the column has zero non-null values in this stripe.
func (s Set) Get(columnID int, kind Kind) []byte {
	return s[Key{ColumnID: columnID, Kind: kind}]
}

// Set stores the bytes for (columnID, kind). A nil or empty data slice
// still creates an entry: Has reports it, and Get returns the slice as
// stored.
func (s Set) Set(columnID int, kind Kind, data []byte) {
	s[Key{ColumnID: columnID, Kind: kind}] = data
}

// Has reports whether (columnID, kind) has a (possibly empty) entry.
func (s Set) Has(columnID int, kind Kind) bool {
	_, ok := s[Key{ColumnID: columnID, Kind: kind}]

	return ok
}

// ColumnEncodings maps a column ID to the Encoding its Data stream (and
// any Length/Secondary/DictionaryData streams) was written with.
type ColumnEncodings map[int]Encoding

// DictionarySizes maps a Dictionary/DictionaryV2-encoded column ID to the
// number of entries in its dictionary. ORC stores this in the stripe
// footer's column encoding metadata (protobuf, out of scope here); the
// core codec layer takes it as a parameter instead.
type DictionarySizes map[int]int
