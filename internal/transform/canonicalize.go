package transform

import (
	"strings"

	"github.com/DeanoC/MessageWrangler-sub001/internal/diag"
	"github.com/DeanoC/MessageWrangler-sub001/internal/early"
)

// CanonicalizeColons rewrites dot-spelled qualified names to the "::"
// form everywhere a raw name can appear, so later passes only ever see
// one separator.
type CanonicalizeColons struct{}

func (CanonicalizeColons) Name() string { return "canonicalize-colons" }

func (CanonicalizeColons) Apply(m *early.Model, _ diag.Reporter) error {
	m.EachMessage(func(_ *early.Namespace, msg *early.Message) {
		msg.ParentRaw = canonName(msg.ParentRaw)
		for _, f := range msg.Fields {
			canonType(f.Type)
		}
	})
	m.EachEnum(func(_ *early.Namespace, e *early.Enum) {
		e.ParentRaw = canonName(e.ParentRaw)
	})
	return nil
}

func canonName(name string) string {
	if name == "" || !strings.Contains(name, ".") {
		return name
	}
	return strings.ReplaceAll(name, ".", "::")
}

func canonType(t *early.TypeExpr) {
	if t == nil {
		return
	}
	switch t.Kind {
	case early.TypeRef, early.TypeEnumRef:
		t.Name = canonName(t.Name)
	case early.TypeArray:
		canonType(t.Elem)
	case early.TypeMap:
		canonType(t.Key)
		canonType(t.Elem)
	}
}
