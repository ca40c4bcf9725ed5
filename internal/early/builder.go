package early

import (
	"github.com/DeanoC/MessageWrangler-sub001/internal/ast"
	"github.com/DeanoC/MessageWrangler-sub001/internal/source"
)

// Build converts a parse tree into the raw model for the file identified
// by canonicalPath. Nothing is resolved here: type names, parents, and
// defaults stay verbatim. Enum and options values do get their numbers
// assigned, since auto numbering is purely local to one declaration.
func Build(file *ast.File, canonicalPath string) *Model {
	b := builder{file: file}
	m := &Model{
		File:           canonicalPath,
		FileID:         file.Source.ID,
		ImportedModels: make(map[string]*Model),
	}
	b.fill(file.Order, nil, m)
	return m
}

type builder struct {
	file *ast.File
}

// fill distributes items into either the model's top level (ns == nil) or
// a namespace body.
func (b *builder) fill(order []ast.ItemID, ns *Namespace, m *Model) {
	for _, id := range order {
		item := b.file.Items.Get(id)
		switch item.Kind {
		case ast.ItemImport:
			imp, _ := b.file.Items.Import(id)
			if m != nil {
				m.Imports = append(m.Imports, Import{
					Path:  imp.Path,
					Alias: imp.Alias,
					Span:  item.Span,
				})
			}
		case ast.ItemNamespace:
			nsItem, _ := b.file.Items.Namespace(id)
			child := b.namespace(nsItem, item.Span)
			if ns != nil {
				ns.Namespaces = append(ns.Namespaces, child)
			} else {
				m.Namespaces = append(m.Namespaces, child)
			}
		case ast.ItemMessage:
			msgItem, _ := b.file.Items.Message(id)
			msg := b.message(msgItem, item.Span)
			if ns != nil {
				ns.Messages = append(ns.Messages, msg)
			} else {
				m.Messages = append(m.Messages, msg)
			}
		case ast.ItemEnum:
			enumItem, _ := b.file.Items.Enum(id)
			e := b.enum(enumItem, item.Span)
			if ns != nil {
				ns.Enums = append(ns.Enums, e)
			} else {
				m.Enums = append(m.Enums, e)
			}
		case ast.ItemOptions:
			optsItem, _ := b.file.Items.OptionsDecl(id)
			o := b.options(optsItem, item.Span)
			if ns != nil {
				ns.Options = append(ns.Options, o)
			} else {
				m.Options = append(m.Options, o)
			}
		case ast.ItemCompound:
			compItem, _ := b.file.Items.Compound(id)
			c := b.compound(compItem, item.Span)
			if ns != nil {
				ns.Compounds = append(ns.Compounds, c)
			} else {
				m.Compounds = append(m.Compounds, c)
			}
		}
	}
}

func (b *builder) namespace(item *ast.NamespaceItem, span source.Span) *Namespace {
	ns := &Namespace{
		Name:    item.Name,
		Span:    span,
		Doc:     item.Doc,
		Comment: item.Comment,
	}
	b.fill(item.Items, ns, nil)
	return ns
}

func (b *builder) message(item *ast.MessageItem, span source.Span) *Message {
	msg := &Message{
		Name:      item.Name,
		Span:      span,
		Doc:       item.Doc,
		Comment:   item.Comment,
		ParentRaw: item.Parent,
	}
	for _, fid := range item.Fields {
		f := b.file.Items.Field(fid)
		msg.Fields = append(msg.Fields, &Field{
			Name:       f.Name,
			Span:       f.Span,
			Doc:        f.Doc,
			Comment:    f.Comment,
			Modifiers:  f.Modifiers,
			Type:       b.typeExpr(f.Type),
			DefaultRaw: f.Default,
			HasDefault: f.HasDefault,
		})
	}
	return msg
}

func (b *builder) enum(item *ast.EnumItem, span source.Span) *Enum {
	return &Enum{
		Name:      item.Name,
		Span:      span,
		Doc:       item.Doc,
		Comment:   item.Comment,
		Open:      item.Open,
		ParentRaw: item.Parent,
		Values:    numberEnumValues(b.values(item.Values)),
	}
}

func (b *builder) options(item *ast.OptionsItem, span source.Span) *Options {
	return &Options{
		Name:    item.Name,
		Span:    span,
		Doc:     item.Doc,
		Comment: item.Comment,
		Values:  numberOptionValues(b.values(item.Values)),
	}
}

func (b *builder) compound(item *ast.CompoundItem, span source.Span) *Compound {
	return &Compound{
		Name:    item.Name,
		Span:    span,
		Doc:     item.Doc,
		Comment: item.Comment,
		Base:    item.Base,
		Members: item.Members,
	}
}

func (b *builder) values(ids []ast.ValueID) []EnumValue {
	out := make([]EnumValue, 0, len(ids))
	for _, id := range ids {
		v := b.file.Items.Value(id)
		out = append(out, EnumValue{
			Name:     v.Name,
			Span:     v.Span,
			Doc:      v.Doc,
			Comment:  v.Comment,
			Value:    v.Value,
			Explicit: v.HasValue,
		})
	}
	return out
}

func (b *builder) typeExpr(id ast.TypeID) *TypeExpr {
	t := b.file.Items.Type(id)
	if t == nil {
		return nil
	}
	out := &TypeExpr{
		Span:       t.Span,
		Prim:       t.Prim,
		Name:       t.Name,
		Open:       t.Open,
		Components: t.Components,
	}
	switch t.Kind {
	case ast.TypePrimitive:
		out.Kind = TypePrimitive
	case ast.TypeRef:
		out.Kind = TypeRef
	case ast.TypeEnumRef:
		out.Kind = TypeEnumRef
	case ast.TypeInlineEnum:
		out.Kind = TypeInlineEnum
		out.Values = numberEnumValues(b.values(t.Values))
	case ast.TypeInlineOptions:
		out.Kind = TypeInlineOptions
		out.Values = numberOptionValues(b.values(t.Values))
	case ast.TypeInlineCompound:
		out.Kind = TypeInlineCompound
	case ast.TypeArray:
		out.Kind = TypeArray
		out.Elem = b.typeExpr(t.Elem)
	case ast.TypeMap:
		out.Kind = TypeMap
		out.Key = b.typeExpr(t.Key)
		out.Elem = b.typeExpr(t.Elem)
	}
	return out
}

// numberEnumValues applies enum auto increment: an explicit value is kept,
// an omitted one takes previous+1, and a leading omitted value is 0.
func numberEnumValues(values []EnumValue) []EnumValue {
	next := int64(0)
	for i := range values {
		if values[i].Explicit {
			next = values[i].Value + 1
			continue
		}
		values[i].Value = next
		next++
	}
	return values
}

// numberOptionValues assigns omitted option members sequential powers of
// two. An explicit value is kept as written and does not advance the bit.
func numberOptionValues(values []EnumValue) []EnumValue {
	bit := int64(1)
	for i := range values {
		if values[i].Explicit {
			continue
		}
		values[i].Value = bit
		bit <<= 1
	}
	return values
}
