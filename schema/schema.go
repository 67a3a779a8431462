// Package schema models the ORC column type tree (spec.md §3): the
// logical types a Column can carry and the depth-first numbering that
// identifies a column within a stripe's stream map.
package schema

// Type enumerates ORC's logical column types.
type Type int

const (
	Boolean Type = iota
	Byte
	Short
	Int
	Long
	Float
	Double
	String
	Binary
	Decimal
	Date
	Timestamp
	List
	Map
	Struct
	Union
)

func (t Type) String() string {
	switch t {
	case Boolean:
		return "boolean"
	case Byte:
		return "byte"
	case Short:
		return "short"
	case Int:
		return "int"
	case Long:
		return "long"
	case Float:
		return "float"
	case Double:
		return "double"
	case String:
		return "string"
	case Binary:
		return "binary"
	case Decimal:
		return "decimal"
	case Date:
		return "date"
	case Timestamp:
		return "timestamp"
	case List:
		return "list"
	case Map:
		return "map"
	case Struct:
		return "struct"
	case Union:
		return "union"
	default:
		return "unknown"
	}
}

// IsPrimitive reports whether t has no children (every type except List,
// Map, Struct, Union).
func (t Type) IsPrimitive() bool {
	return t < List
}

// Column is a node in the schema tree. The root column is always a Struct
// in practice, though this package does not enforce that. IDs come from a
// Builder, in the order its methods are called; see Builder.
type Column struct {
	ID       int
	Name     string
	Type     Type
	Children []*Column

	// Precision and Scale are meaningful only when Type == Decimal.
	Precision int
	Scale     int32
}

// Builder assigns column IDs, starting at 0, in the order its methods are
// called. StartStruct/FinishStruct give ORC's depth-first numbering with the
// root at 0; Struct, List, Map and Union number a node after its
// already-built children, so a root built with them gets the last ID.
type Builder struct {
	nextID int
}

// NewBuilder creates a schema Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) assign(c *Column) *Column {
	c.ID = b.nextID
	b.nextID++

	return c
}

// Primitive creates a leaf column of the given primitive type.
func (b *Builder) Primitive(name string, t Type) *Column {
	return b.assign(&Column{Name: name, Type: t})
}

// DecimalColumn creates a leaf Decimal column with the given precision and
// scale.
func (b *Builder) DecimalColumn(name string, precision int, scale int32) *Column {
	c := b.assign(&Column{Name: name, Type: Decimal})
	c.Precision = precision
	c.Scale = scale

	return c
}

// Struct creates a Struct column. Children must already have been built
// (and so already hold their own IDs) via this same Builder, in the
// depth-first order they should appear; the struct node itself is
// assigned the next ID after theirs, so its ID follows its fields' IDs.
//
// Callers that need ORC's exact "parent ID precedes children" numbering
// should instead use StartStruct/FinishStruct.
func (b *Builder) Struct(name string, children ...*Column) *Column {
	c := &Column{Name: name, Type: Struct, Children: children}
	c.ID = b.nextID
	b.nextID++

	return c
}

// StartStruct reserves the next ID for a struct column so its field
// builder callbacks can run afterward and still number depth-first with
// the parent first. Call Builder.FinishStruct with the returned ID and
// the built children.
func (b *Builder) StartStruct() int {
	id := b.nextID
	b.nextID++

	return id
}

// FinishStruct assembles a Struct column from a reserved ID and its
// already-built children.
func (b *Builder) FinishStruct(id int, name string, children ...*Column) *Column {
	return &Column{ID: id, Name: name, Type: Struct, Children: children}
}

// List creates a List column; elem must already be built.
func (b *Builder) List(name string, elem *Column) *Column {
	id := b.nextID
	b.nextID++

	return &Column{ID: id, Name: name, Type: List, Children: []*Column{elem}}
}

// Map creates a Map column; key and value must already be built.
func (b *Builder) Map(name string, key, value *Column) *Column {
	id := b.nextID
	b.nextID++

	return &Column{ID: id, Name: name, Type: Map, Children: []*Column{key, value}}
}

// Union creates a Union column over the given alternative columns.
func (b *Builder) Union(name string, alts ...*Column) *Column {
	id := b.nextID
	b.nextID++

	return &Column{ID: id, Name: name, Type: Union, Children: alts}
}

// Walk visits c and every descendant in depth-first order.
func Walk(c *Column, fn func(*Column)) {
	fn(c)
	for _, child := range c.Children {
		Walk(child, fn)
	}
}
