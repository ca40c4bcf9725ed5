// Package early holds the raw per-file model produced straight from the
// parse tree. Names and types stay exactly as written; the transform
// passes rewrite them in place before model building resolves anything.
package early

import (
	"github.com/DeanoC/MessageWrangler-sub001/internal/ast"
	"github.com/DeanoC/MessageWrangler-sub001/internal/source"
)

// Import is one raw import statement. Alias is empty when absent.
// Resolved is the canonical absolute path of the target file, filled in
// by the loader; empty when the file could not be found.
type Import struct {
	Path     string
	Alias    string
	Resolved string
	Span     source.Span
}

// Key is what the import binds under: the alias when present, else the
// path exactly as written.
func (i Import) Key() string {
	if i.Alias != "" {
		return i.Alias
	}
	return i.Path
}

// Model is the raw content of one definition file.
type Model struct {
	// File is the canonical absolute path of the source file.
	File   string
	FileID source.FileID

	Namespaces []*Namespace
	Messages   []*Message
	Enums      []*Enum
	Options    []*Options
	Compounds  []*Compound

	Imports []Import
	// ImportedModels binds raw imports to finished models, keyed by
	// alias when present, else by the import path as written.
	ImportedModels map[string]*Model
}

type Namespace struct {
	Name string
	// QFN is assigned by the reference pass; empty before it runs.
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

type Message struct {
	Name      string
	Span      source.Span
	Doc       []string
	Comment   string
	ParentRaw string
	Fields    []*Field
}

type Field struct {
	Name       string
	Span       source.Span
	Doc        []string
	Comment    string
	Modifiers  []string
	Type       *TypeExpr
	DefaultRaw string
	HasDefault bool
}

type Enum struct {
	Name      string
	Span      source.Span
	Doc       []string
	Comment   string
	Open      bool
	ParentRaw string
	Values    []EnumValue
	// Promoted marks enums synthesized from inline bodies.
	Promoted bool
}

// EnumValue carries the resolved number. Explicit records whether the
// source spelled it out or auto numbering assigned it.
type EnumValue struct {
	Name     string
	Span     source.Span
	Doc      []string
	Comment  string
	Value    int64
	Explicit bool
}

// Options is a named bit-flag set. Values follow the same auto numbering
// as inline options bodies: omitted members take sequential powers of two.
type Options struct {
	Name    string
	Span    source.Span
	Doc     []string
	Comment string
	Values  []EnumValue
}

type Compound struct {
	Name    string
	Span    source.Span
	Doc     []string
	Comment string
	Base    ast.Prim
	Members []string
}

// TypeKind discriminates TypeExpr payloads, mirroring the parse tree's
// type variants with raw names still unresolved.
type TypeKind uint8

const (
	TypePrimitive TypeKind = iota
	TypeRef
	TypeEnumRef
	TypeInlineEnum
	TypeInlineOptions
	TypeInlineCompound
	TypeArray
	TypeMap
)

type TypeExpr struct {
	Kind       TypeKind
	Span       source.Span
	Prim       ast.Prim
	Name       string
	Open       bool
	Values     []EnumValue
	Components []string
	Elem       *TypeExpr
	Key        *TypeExpr
}

// EachNamespace walks all namespaces depth first, parents before children.
func (m *Model) EachNamespace(fn func(parent *Namespace, ns *Namespace)) {
	var walk func(parent, ns *Namespace)
	walk = func(parent, ns *Namespace) {
		fn(parent, ns)
		for _, child := range ns.Namespaces {
			walk(ns, child)
		}
	}
	for _, ns := range m.Namespaces {
		walk(nil, ns)
	}
}

// EachMessage visits every message in the model, including nested
// namespace members, with the owning namespace (nil at file level).
func (m *Model) EachMessage(fn func(ns *Namespace, msg *Message)) {
	for _, msg := range m.Messages {
		fn(nil, msg)
	}
	m.EachNamespace(func(_ *Namespace, ns *Namespace) {
		for _, msg := range ns.Messages {
			fn(ns, msg)
		}
	})
}

// EachEnum visits every enum in the model with its owning namespace.
func (m *Model) EachEnum(fn func(ns *Namespace, enum *Enum)) {
	for _, e := range m.Enums {
		fn(nil, e)
	}
	m.EachNamespace(func(_ *Namespace, ns *Namespace) {
		for _, e := range ns.Enums {
			fn(ns, e)
		}
	})
}
