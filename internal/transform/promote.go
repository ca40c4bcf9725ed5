package transform

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/DeanoC/MessageWrangler-sub001/internal/diag"
	"github.com/DeanoC/MessageWrangler-sub001/internal/early"
)

var titleCaser = cases.Title(language.Und, cases.NoLower)

// PromoteInlineEnums lifts inline enum and options bodies out of fields
// into named declarations in the enclosing namespace, rewriting each
// field to a qualified reference. An inline enum on field f of message
// M becomes enum M_f; an inline options body becomes the options set
// MF with f title-cased. Runs after QfnReference so the namespace QFNs
// it needs are already stamped. A second run finds no inline bodies and
// changes nothing.
type PromoteInlineEnums struct{}

func (PromoteInlineEnums) Name() string { return "promote-inline-enums" }

func (PromoteInlineEnums) Apply(m *early.Model, _ diag.Reporter) error {
	m.EachMessage(func(ns *early.Namespace, msg *early.Message) {
		if ns == nil {
			return
		}
		for _, f := range msg.Fields {
			promoteType(f.Type, ns, msg, f)
		}
	})
	return nil
}

func promoteType(t *early.TypeExpr, ns *early.Namespace, msg *early.Message, f *early.Field) {
	if t == nil {
		return
	}
	switch t.Kind {
	case early.TypeInlineEnum:
		name := msg.Name + "_" + f.Name
		ns.Enums = append(ns.Enums, &early.Enum{
			Name:     name,
			Span:     t.Span,
			Open:     t.Open,
			Values:   t.Values,
			Promoted: true,
		})
		rewriteToRef(t, ns.QFN+"::"+name)
	case early.TypeInlineOptions:
		name := msg.Name + titleCaser.String(f.Name)
		ns.Options = append(ns.Options, &early.Options{
			Name:   name,
			Span:   t.Span,
			Values: t.Values,
		})
		rewriteToRef(t, ns.QFN+"::"+name)
	case early.TypeArray:
		promoteType(t.Elem, ns, msg, f)
	case early.TypeMap:
		promoteType(t.Elem, ns, msg, f)
	}
}

func rewriteToRef(t *early.TypeExpr, qfn string) {
	*t = early.TypeExpr{
		Kind: early.TypeRef,
		Span: t.Span,
		Name: qfn,
	}
}
