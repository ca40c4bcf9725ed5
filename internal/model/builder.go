package model

import (
	"fmt"
	"math"

	"github.com/DeanoC/MessageWrangler-sub001/internal/ast"
	"github.com/DeanoC/MessageWrangler-sub001/internal/diag"
	"github.com/DeanoC/MessageWrangler-sub001/internal/early"
	"github.com/DeanoC/MessageWrangler-sub001/internal/source"
)

// Build resolves a transformed early model into a Model. deps maps
// import keys (alias, else written path) to the already-built models of
// imported files; dependency order guarantees they exist. Every schema
// problem goes through rep; the returned model is only meaningful when
// no errors were reported.
func Build(em *early.Model, deps map[string]*Model, rep diag.Reporter) *Model {
	b := &builder{
		em:  em,
		rep: rep,
		out: &Model{
			File:      em.File,
			Messages:  make(map[string]*Message),
			Enums:     make(map[string]*Enum),
			OptionSet: make(map[string]*Options),
			Compounds: make(map[string]*Compound),
			Imports:   deps,
			Aliases:   make(map[string]string),
		},
		enumState: make(map[string]int),
		spans:     make(map[string]source.Span),
		srcEnums:  make(map[string]*early.Enum),
	}
	for _, imp := range em.Imports {
		if imp.Alias == "" {
			continue
		}
		if dep := deps[imp.Alias]; dep != nil && dep.Root != nil {
			b.out.Aliases[imp.Alias] = dep.Root.Name
		}
	}

	if len(em.Namespaces) == 1 {
		b.out.Root = b.namespace(em.Namespaces[0])
	}
	b.resolveEnums()
	b.resolveOptions()
	b.resolveMessages()
	return b.out
}

const (
	enumPending = iota
	enumResolving
	enumDone
)

type builder struct {
	em  *early.Model
	rep diag.Reporter
	out *Model

	enumState map[string]int
	// spans remembers where each QFN was declared for duplicate reports.
	spans map[string]source.Span

	// srcEnums keeps the early enum behind each local QFN so parents can
	// be merged lazily; enumOrder preserves declaration order.
	srcEnums  map[string]*early.Enum
	enumOrder []string
}

func (b *builder) errorf(code diag.Code, span source.Span, format string, args ...any) {
	diag.ReportError(b.rep, code, span, fmt.Sprintf(format, args...)).Emit()
}

// namespace converts one early namespace and registers everything it
// declares under its QFN.
func (b *builder) namespace(ens *early.Namespace) *Namespace {
	ns := &Namespace{
		Name:    ens.Name,
		QFN:     ens.QFN,
		Span:    ens.Span,
		Doc:     ens.Doc,
		Comment: ens.Comment,
	}
	for _, emsg := range ens.Messages {
		qfn := ns.QFN + "::" + emsg.Name
		if !b.declare(qfn, emsg.Name, emsg.Span) {
			continue
		}
		msg := &Message{
			Name:    emsg.Name,
			QFN:     qfn,
			Span:    emsg.Span,
			Doc:     emsg.Doc,
			Comment: emsg.Comment,
		}
		ns.Messages = append(ns.Messages, msg)
		b.out.Messages[qfn] = msg
	}
	for _, ee := range ens.Enums {
		qfn := ns.QFN + "::" + ee.Name
		if !b.declare(qfn, ee.Name, ee.Span) {
			continue
		}
		e := &Enum{
			Name:     ee.Name,
			QFN:      qfn,
			Span:     ee.Span,
			Doc:      ee.Doc,
			Comment:  ee.Comment,
			Open:     ee.Open,
			Promoted: ee.Promoted,
		}
		ns.Enums = append(ns.Enums, e)
		b.out.Enums[qfn] = e
		b.srcEnums[qfn] = ee
		b.enumOrder = append(b.enumOrder, qfn)
	}
	for _, eo := range ens.Options {
		qfn := ns.QFN + "::" + eo.Name
		if !b.declare(qfn, eo.Name, eo.Span) {
			continue
		}
		o := &Options{
			Name:    eo.Name,
			QFN:     qfn,
			Span:    eo.Span,
			Doc:     eo.Doc,
			Comment: eo.Comment,
			Values:  convertValues(eo.Values, false),
		}
		ns.Options = append(ns.Options, o)
		b.out.OptionSet[qfn] = o
	}
	for _, ec := range ens.Compounds {
		qfn := ns.QFN + "::" + ec.Name
		if !b.declare(qfn, ec.Name, ec.Span) {
			continue
		}
		c := &Compound{
			Name:    ec.Name,
			QFN:     qfn,
			Span:    ec.Span,
			Doc:     ec.Doc,
			Comment: ec.Comment,
			Base:    ec.Base.String(),
			Members: ec.Members,
		}
		ns.Compounds = append(ns.Compounds, c)
		b.out.Compounds[qfn] = c
	}
	for _, child := range ens.Namespaces {
		ns.Namespaces = append(ns.Namespaces, b.namespace(child))
	}
	return ns
}

// declare checks a QFN is fresh within its namespace.
func (b *builder) declare(qfn, name string, span source.Span) bool {
	if prev, dup := b.spans[qfn]; dup {
		diag.ReportError(b.rep, diag.SemaDuplicateDefinition, span,
			fmt.Sprintf("%s is already defined in this namespace", name)).
			WithNote(prev, "previous definition here").Emit()
		return false
	}
	b.spans[qfn] = span
	return true
}

func convertValues(in []early.EnumValue, inherited bool) []EnumValue {
	out := make([]EnumValue, len(in))
	for i, v := range in {
		out[i] = EnumValue{
			Name:      v.Name,
			Span:      v.Span,
			Doc:       v.Doc,
			Comment:   v.Comment,
			Value:     v.Value,
			Explicit:  v.Explicit,
			Inherited: inherited,
		}
	}
	return out
}

// symbol is one resolvable declaration, local or imported.
type symbol struct {
	tag  TypeTag
	msg  *Message
	enum *Enum
	opts *Options
	comp *Compound
}

// lookup resolves a QFN against this file first, then aliased imports
// (with the alias segment translated to the target's root namespace),
// then non-aliased imports in declaration order.
func (b *builder) lookup(qfn string) (symbol, bool) {
	if s, ok := lookupModel(b.out, qfn); ok {
		return s, true
	}
	if head, rest, found := cutQFN(qfn); found {
		if root, aliased := b.out.Aliases[head]; aliased {
			if dep := b.out.Imports[head]; dep != nil {
				return lookupModel(dep, root+"::"+rest)
			}
		}
	}
	for _, imp := range b.em.Imports {
		if imp.Alias != "" {
			continue
		}
		if dep := b.out.Imports[imp.Key()]; dep != nil {
			if s, ok := lookupModel(dep, qfn); ok {
				return s, true
			}
		}
	}
	return symbol{}, false
}

func lookupModel(m *Model, qfn string) (symbol, bool) {
	if msg, ok := m.Messages[qfn]; ok {
		return symbol{tag: TagMessage, msg: msg}, true
	}
	if e, ok := m.Enums[qfn]; ok {
		return symbol{tag: TagEnum, enum: e}, true
	}
	if o, ok := m.OptionSet[qfn]; ok {
		return symbol{tag: TagOptions, opts: o}, true
	}
	if c, ok := m.Compounds[qfn]; ok {
		return symbol{tag: TagCompound, comp: c}, true
	}
	return symbol{}, false
}

func cutQFN(qfn string) (head, rest string, found bool) {
	for i := 0; i+1 < len(qfn); i++ {
		if qfn[i] == ':' && qfn[i+1] == ':' {
			return qfn[:i], qfn[i+2:], true
		}
	}
	return qfn, "", false
}

// resolveEnums merges inheritance and computes widths for every enum
// declared in this file.
func (b *builder) resolveEnums() {
	for _, qfn := range b.enumOrder {
		b.resolveEnum(qfn)
	}
	for _, e := range b.out.Enums {
		e.Width = widthFor(e.Values, e.Open)
	}
}

func (b *builder) resolveEnum(qfn string) *Enum {
	e := b.out.Enums[qfn]
	src := b.srcEnums[qfn]
	switch b.enumState[qfn] {
	case enumDone:
		return e
	case enumResolving:
		b.errorf(diag.SemaCircularInheritance, src.Span,
			"enum %s inherits from itself", src.Name)
		b.enumState[qfn] = enumDone
		e.Values = convertValues(src.Values, false)
		return e
	}
	b.enumState[qfn] = enumResolving

	declared := convertValues(src.Values, false)
	if src.ParentRaw == "" {
		e.Values = declared
		b.enumState[qfn] = enumDone
		return e
	}

	parent := b.bindEnumParent(src, qfn)
	if parent == nil {
		e.Values = declared
		b.enumState[qfn] = enumDone
		return e
	}
	e.Parent = parent.QFN

	names := make(map[string]source.Span, len(declared))
	for _, v := range declared {
		names[v.Name] = v.Span
	}
	merged := make([]EnumValue, 0, len(parent.Values)+len(declared))
	for _, pv := range parent.Values {
		if span, redeclared := names[pv.Name]; redeclared {
			b.errorf(diag.SemaDuplicateEnumValue, span,
				"enum value %s is already defined by parent %s", pv.Name, parent.Name)
			continue
		}
		inherited := pv
		inherited.Inherited = true
		merged = append(merged, inherited)
	}
	e.Values = append(merged, declared...)
	b.enumState[qfn] = enumDone
	return e
}

// bindEnumParent resolves an enum's parent reference, recursing into
// local parents so they merge first.
func (b *builder) bindEnumParent(src *early.Enum, childQFN string) *Enum {
	if _, local := b.srcEnums[src.ParentRaw]; local {
		return b.resolveEnum(src.ParentRaw)
	}
	sym, ok := b.lookup(src.ParentRaw)
	if !ok {
		b.errorf(diag.SemaUnresolvedReference, src.Span,
			"unknown parent %s of enum %s", src.ParentRaw, src.Name)
		return nil
	}
	if sym.tag != TagEnum {
		b.errorf(diag.SemaNotAnEnum, src.Span,
			"%s is a %s, enums can only inherit from enums", src.ParentRaw, sym.tag)
		return nil
	}
	return sym.enum
}

func (b *builder) resolveOptions() {
	for _, o := range b.out.OptionSet {
		for _, v := range o.Values {
			if v.Value < 0 {
				b.errorf(diag.SemaEnumValueOverflow, v.Span,
					"options value %s is negative, bit flags must be non-negative", v.Name)
			}
		}
		o.Width = widthFor(o.Values, true)
	}
}

// resolveMessages binds parents and field types.
func (b *builder) resolveMessages() {
	b.em.EachMessage(func(ns *early.Namespace, em *early.Message) {
		if ns == nil {
			return
		}
		qfn := ns.QFN + "::" + em.Name
		msg := b.out.Messages[qfn]
		if msg == nil {
			return
		}
		if em.ParentRaw != "" {
			b.bindMessageParent(msg, em)
		}
		b.buildFields(ns, msg, em)
	})
	b.checkMessageCycles()
}

func (b *builder) bindMessageParent(msg *Message, em *early.Message) {
	sym, ok := b.lookup(em.ParentRaw)
	if !ok {
		b.errorf(diag.SemaUnresolvedReference, em.Span,
			"unknown parent %s of message %s", em.ParentRaw, em.Name)
		return
	}
	if sym.tag != TagMessage {
		b.errorf(diag.SemaNotAMessage, em.Span,
			"%s is a %s, messages can only inherit from messages", em.ParentRaw, sym.tag)
		return
	}
	msg.Parent = sym.msg.QFN
}

func (b *builder) checkMessageCycles() {
	for qfn, msg := range b.out.Messages {
		seen := map[string]bool{qfn: true}
		cur := msg
		for cur.Parent != "" {
			if seen[cur.Parent] {
				b.errorf(diag.SemaCircularInheritance, msg.Span,
					"message %s inherits from itself", msg.Name)
				msg.Parent = ""
				break
			}
			seen[cur.Parent] = true
			sym, ok := b.lookup(cur.Parent)
			if !ok || sym.tag != TagMessage {
				break
			}
			cur = sym.msg
		}
	}
}

func (b *builder) buildFields(ns *early.Namespace, msg *Message, em *early.Message) {
	names := make(map[string]source.Span, len(em.Fields))
	for _, ef := range em.Fields {
		if prev, dup := names[ef.Name]; dup {
			diag.ReportError(b.rep, diag.SemaDuplicateField, ef.Span,
				fmt.Sprintf("duplicate field %s in message %s", ef.Name, em.Name)).
				WithNote(prev, "first defined here").Emit()
			continue
		}
		names[ef.Name] = ef.Span
		msg.Fields = append(msg.Fields, &Field{
			Name:       ef.Name,
			Span:       ef.Span,
			Doc:        ef.Doc,
			Comment:    ef.Comment,
			Modifiers:  ef.Modifiers,
			Type:       b.fieldType(ns, msg, ef, ef.Type),
			DefaultRaw: ef.DefaultRaw,
			HasDefault: ef.HasDefault,
		})
	}
}

// fieldType converts one early type occurrence, binding references.
func (b *builder) fieldType(ns *early.Namespace, msg *Message, f *early.Field, t *early.TypeExpr) Type {
	if t == nil {
		return Type{Tag: TagString}
	}
	switch t.Kind {
	case early.TypePrimitive:
		return Type{Tag: primTag(t.Prim)}
	case early.TypeRef:
		sym, ok := b.lookup(t.Name)
		if !ok {
			b.errorf(diag.SemaUnresolvedReference, t.Span,
				"unknown type %s in field %s", t.Name, f.Name)
			return Type{Tag: TagMessage, Ref: t.Name}
		}
		return Type{Tag: sym.tag, Ref: refQFN(sym)}
	case early.TypeEnumRef:
		sym, ok := b.lookup(t.Name)
		if !ok {
			b.errorf(diag.SemaUnresolvedReference, t.Span,
				"unknown enum %s in field %s", t.Name, f.Name)
			return Type{Tag: TagEnum, Ref: t.Name}
		}
		if sym.tag != TagEnum {
			b.errorf(diag.SemaNotAnEnum, t.Span,
				"%s is a %s, not an enum", t.Name, sym.tag)
			return Type{Tag: sym.tag, Ref: refQFN(sym)}
		}
		return Type{Tag: TagEnum, Ref: sym.enum.QFN}
	case early.TypeInlineCompound:
		// Inline component lists get a synthesized named compound so
		// generators always emit from a declaration.
		return b.synthCompound(ns, msg, f, t)
	case early.TypeArray:
		elem := b.fieldType(ns, msg, f, t.Elem)
		return Type{Tag: TagArray, Elem: &elem}
	case early.TypeMap:
		key := b.fieldType(ns, msg, f, t.Key)
		val := b.fieldType(ns, msg, f, t.Elem)
		return Type{Tag: TagMap, Key: &key, Elem: &val}
	default:
		// Inline enum and options bodies are promoted before building.
		return Type{Tag: TagString}
	}
}

func (b *builder) synthCompound(ns *early.Namespace, msg *Message, f *early.Field, t *early.TypeExpr) Type {
	name := msg.Name + "_" + f.Name
	qfn := ns.QFN + "::" + name
	if _, exists := b.out.Compounds[qfn]; !exists {
		// The parser records the base type text in Name, even for
		// primitive bases like `float { x, y, z }`.
		c := &Compound{
			Name:    name,
			QFN:     qfn,
			Span:    t.Span,
			Base:    t.Name,
			Members: t.Components,
		}
		b.out.Compounds[qfn] = c
		b.attachCompound(ns.QFN, c)
	}
	return Type{Tag: TagCompound, Ref: qfn}
}

func (b *builder) attachCompound(nsQFN string, c *Compound) {
	b.out.EachNamespace(func(ns *Namespace) {
		if ns.QFN == nsQFN {
			ns.Compounds = append(ns.Compounds, c)
		}
	})
}

func refQFN(s symbol) string {
	switch s.tag {
	case TagMessage:
		return s.msg.QFN
	case TagEnum:
		return s.enum.QFN
	case TagOptions:
		return s.opts.QFN
	case TagCompound:
		return s.comp.QFN
	}
	return ""
}

func primTag(p ast.Prim) TypeTag {
	switch p {
	case ast.PrimInt:
		return TagInt
	case ast.PrimFloat:
		return TagFloat
	case ast.PrimBool:
		return TagBool
	case ast.PrimByte:
		return TagByte
	default:
		return TagString
	}
}

// widthFor picks the smallest storage width that holds every value's
// unsigned magnitude. floor32 raises the minimum to 32 bits, which open
// enums and options need for forward compatibility.
func widthFor(values []EnumValue, floor32 bool) uint8 {
	var maxMag uint64
	for _, v := range values {
		mag := uint64(v.Value)
		if v.Value < 0 {
			mag = uint64(-(v.Value + 1)) + 1
		}
		if mag > maxMag {
			maxMag = mag
		}
	}
	var w uint8
	switch {
	case maxMag > math.MaxUint32:
		w = 64
	case maxMag > math.MaxUint16:
		w = 32
	case maxMag > math.MaxUint8:
		w = 16
	default:
		w = 8
	}
	if floor32 && w < 32 {
		w = 32
	}
	return w
}
