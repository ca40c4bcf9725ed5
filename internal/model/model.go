// Package model holds the fully resolved form of a definition file:
// every reference bound, enum inheritance merged, bit widths computed.
// Generators consume this and nothing earlier.
package model

import "github.com/DeanoC/MessageWrangler-sub001/internal/source"

// TypeTag discriminates field type payloads.
type TypeTag uint8

const (
	TagString TypeTag = iota
	TagInt
	TagFloat
	TagBool
	TagByte
	TagEnum
	TagOptions
	TagCompound
	TagMessage
	TagArray
	TagMap
)

var tagNames = [...]string{
	TagString:   "string",
	TagInt:      "int",
	TagFloat:    "float",
	TagBool:     "bool",
	TagByte:     "byte",
	TagEnum:     "enum",
	TagOptions:  "options",
	TagCompound: "compound",
	TagMessage:  "message",
	TagArray:    "array",
	TagMap:      "map",
}

func (t TypeTag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "invalid"
}

// Type is one resolved type occurrence. Ref is a QFN key into the
// owning Model's lookup tables, never a pointer into another entity;
// every entity has exactly one owner, its namespace.
type Type struct {
	Tag  TypeTag
	Ref  string
	Elem *Type
	Key  *Type
}

// IsScalar reports whether the type is a bare primitive.
func (t *Type) IsScalar() bool {
	switch t.Tag {
	case TagString, TagInt, TagFloat, TagBool, TagByte:
		return true
	}
	return false
}

type Field struct {
	Name       string
	Span       source.Span
	Doc        []string
	Comment    string
	Modifiers  []string
	Type       Type
	DefaultRaw string
	HasDefault bool
}

type Message struct {
	Name    string
	QFN     string
	Span    source.Span
	Doc     []string
	Comment string
	// Parent is the parent message QFN, empty for root messages.
	Parent string
	Fields []*Field
}

type EnumValue struct {
	Name     string
	Span     source.Span
	Doc      []string
	Comment  string
	Value    int64
	Explicit bool
	// Inherited marks values merged in from a parent enum.
	Inherited bool
}

type Enum struct {
	Name    string
	QFN     string
	Span    source.Span
	Doc     []string
	Comment string
	Open    bool
	// Parent is the parent enum QFN, empty when none.
	Parent string
	// Values holds the merged set: declared values plus inherited ones
	// the declaration does not rename, declaration order with inherited
	// values first.
	Values []EnumValue
	// Width is the smallest of 8, 16, 32, 64 that holds every value's
	// unsigned magnitude. Open enums never go below 32.
	Width    uint8
	Promoted bool
}

// Options is a resolved bit-flag set.
type Options struct {
	Name    string
	QFN     string
	Span    source.Span
	Doc     []string
	Comment string
	Values  []EnumValue
	Width   uint8
}

type Compound struct {
	Name    string
	QFN     string
	Span    source.Span
	Doc     []string
	Comment string
	// Base is the component primitive, spelled as in the source.
	Base    string
	Members []string
}

type Namespace struct {
	Name    string
	QFN     string
	Span    source.Span
	Doc     []string
	Comment string

	Namespaces []*Namespace
	Messages   []*Message
	Enums      []*Enum
	Options    []*Options
	Compounds  []*Compound
}

// Model is one resolved definition file plus lookup tables over it.
type Model struct {
	// File is the canonical absolute path of the source file.
	File string
	Root *Namespace

	// QFN-keyed indexes over everything declared in this file.
	Messages  map[string]*Message
	Enums     map[string]*Enum
	OptionSet map[string]*Options
	Compounds map[string]*Compound

	// Imports holds the resolved models of imported files, keyed by
	// alias when the import had one and by the written path otherwise.
	Imports map[string]*Model
	// Aliases maps alias names to the imported file's root namespace.
	Aliases map[string]string
}

// EachNamespace walks the tree depth first, parents before children.
func (m *Model) EachNamespace(fn func(ns *Namespace)) {
	var walk func(ns *Namespace)
	walk = func(ns *Namespace) {
		fn(ns)
		for _, child := range ns.Namespaces {
			walk(child)
		}
	}
	if m.Root != nil {
		walk(m.Root)
	}
}
