package ast

import (
	"github.com/DeanoC/MessageWrangler-sub001/internal/source"
)

type ItemKind uint8

const (
	ItemImport ItemKind = iota
	ItemNamespace
	ItemMessage
	ItemEnum
	ItemOptions
	ItemCompound
)

// Item is one top-level or namespace-level declaration. Payload indexes
// the per-kind arena selected by Kind.
type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload uint32
}

// ImportItem is 'import "path" as Alias'. Alias is empty when absent.
type ImportItem struct {
	Path      string
	PathSpan  source.Span
	Alias     string
	AliasSpan source.Span
}

type NamespaceItem struct {
	Name     string
	NameSpan source.Span
	Items    []ItemID
	Doc      []string
	Comment  string
}

// MessageItem is a message declaration. Parent holds the raw qualified
// base name, empty when the message has none.
type MessageItem struct {
	Name       string
	NameSpan   source.Span
	Parent     string
	ParentSpan source.Span
	Fields     []FieldID
	Doc        []string
	Comment    string
}

// EnumItem covers both 'enum' and 'open_enum' declarations.
type EnumItem struct {
	Name       string
	NameSpan   source.Span
	Open       bool
	Parent     string
	ParentSpan source.Span
	Values     []ValueID
	Doc        []string
	Comment    string
}

// OptionsItem is a named bit-flag set declaration.
type OptionsItem struct {
	Name     string
	NameSpan source.Span
	Values   []ValueID
	Doc      []string
	Comment  string
}

// CompoundItem is 'basetype Name { comps }' at item level, e.g.
// 'float Vector3 { x, y, z }'.
type CompoundItem struct {
	Name     string
	NameSpan source.Span
	Base     Prim
	Members  []string
	Doc      []string
	Comment  string
}

// Field is one message field.
type Field struct {
	Name       string
	NameSpan   source.Span
	Span       source.Span
	Modifiers  []string
	Type       TypeID
	Default    string
	HasDefault bool
	Doc        []string
	Comment    string
}

// Value is one enum or options member. HasValue distinguishes an explicit
// '= N' from auto numbering.
type Value struct {
	Name     string
	Span     source.Span
	HasValue bool
	Value    int64
	Doc      []string
	Comment  string
}

// Items bundles the arenas of one parsed file.
type Items struct {
	Arena      *Arena[Item]
	Imports    *Arena[ImportItem]
	Namespaces *Arena[NamespaceItem]
	Messages   *Arena[MessageItem]
	Enums      *Arena[EnumItem]
	Options    *Arena[OptionsItem]
	Compounds  *Arena[CompoundItem]
	Fields     *Arena[Field]
	Values     *Arena[Value]
	Types      *Arena[TypeExpr]
}

// NewItems creates an *Items with per-kind arenas sized to capHint.
// A capHint of 0 picks a small default.
func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Items{
		Arena:      NewArena[Item](capHint),
		Imports:    NewArena[ImportItem](capHint),
		Namespaces: NewArena[NamespaceItem](capHint),
		Messages:   NewArena[MessageItem](capHint),
		Enums:      NewArena[EnumItem](capHint),
		Options:    NewArena[OptionsItem](capHint),
		Compounds:  NewArena[CompoundItem](capHint),
		Fields:     NewArena[Field](capHint),
		Values:     NewArena[Value](capHint),
		Types:      NewArena[TypeExpr](capHint),
	}
}

func (i *Items) New(kind ItemKind, span source.Span, payload uint32) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

func (i *Items) Import(id ItemID) (*ImportItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemImport {
		return nil, false
	}
	return i.Imports.Get(item.Payload), true
}

func (i *Items) Namespace(id ItemID) (*NamespaceItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemNamespace {
		return nil, false
	}
	return i.Namespaces.Get(item.Payload), true
}

func (i *Items) Message(id ItemID) (*MessageItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemMessage {
		return nil, false
	}
	return i.Messages.Get(item.Payload), true
}

func (i *Items) Enum(id ItemID) (*EnumItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemEnum {
		return nil, false
	}
	return i.Enums.Get(item.Payload), true
}

func (i *Items) OptionsDecl(id ItemID) (*OptionsItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemOptions {
		return nil, false
	}
	return i.Options.Get(item.Payload), true
}

func (i *Items) Compound(id ItemID) (*CompoundItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemCompound {
		return nil, false
	}
	return i.Compounds.Get(item.Payload), true
}

func (i *Items) Field(id FieldID) *Field {
	return i.Fields.Get(uint32(id))
}

func (i *Items) Value(id ValueID) *Value {
	return i.Values.Get(uint32(id))
}

func (i *Items) Type(id TypeID) *TypeExpr {
	return i.Types.Get(uint32(id))
}
