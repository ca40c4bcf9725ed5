package ast

import "github.com/DeanoC/MessageWrangler-sub001/internal/source"

// TypeKind discriminates the payload of a TypeExpr.
type TypeKind uint8

const (
	// TypePrimitive is a builtin type; Prim holds which one.
	TypePrimitive TypeKind = iota
	// TypeRef is a (possibly qualified) reference to a named type.
	// Name holds the raw text exactly as written.
	TypeRef
	// TypeEnumRef is an 'enum Qualified::Name' reference; Name holds the
	// raw qualified text.
	TypeEnumRef
	// TypeInlineEnum is an enum body written directly on a field.
	// Open marks 'open_enum', Values lists the members.
	TypeInlineEnum
	// TypeInlineOptions is an options body written directly on a field.
	TypeInlineOptions
	// TypeInlineCompound is 'base { comps }' written directly on a field.
	// Name holds the base type text, Components the member names.
	TypeInlineCompound
	// TypeArray is Elem[].
	TypeArray
	// TypeMap is Map<Key, Elem>.
	TypeMap
)

// Prim enumerates the builtin field types of the definition language.
type Prim uint8

const (
	PrimString Prim = iota
	PrimInt
	PrimFloat
	PrimBool
	PrimByte
)

func (p Prim) String() string {
	switch p {
	case PrimString:
		return "string"
	case PrimInt:
		return "int"
	case PrimFloat:
		return "float"
	case PrimBool:
		return "bool"
	case PrimByte:
		return "byte"
	}
	return "unknown"
}

// TypeExpr is one node of a field type. Which members are meaningful
// depends on Kind; everything else stays zero.
type TypeExpr struct {
	Kind       TypeKind
	Span       source.Span
	Prim       Prim
	Name       string
	Open       bool
	Elem       TypeID
	Key        TypeID
	Values     []ValueID
	Components []string
}
