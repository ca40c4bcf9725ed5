package transform

import (
	"fmt"
	"strings"

	"github.com/DeanoC/MessageWrangler-sub001/internal/diag"
	"github.com/DeanoC/MessageWrangler-sub001/internal/early"
)

// QfnReference qualifies every raw name in the model: field type
// references, message parents and enum parents all become fully
// qualified names rooted at a file-level namespace. Names that cannot
// be resolved are left as written; the model builder reports those.
// The pass also stamps each namespace with its own QFN.
//
// Lookup order for an unqualified name: the innermost namespace
// outward, accepting a candidate only when it lives under the
// namespace being searched, then anywhere in the file, then the
// file-level tables of non-aliased imports in declaration order.
// Aliased imports are reachable only through Alias::Name.
type QfnReference struct{}

func (QfnReference) Name() string { return "qfn-reference" }

func (QfnReference) Apply(m *early.Model, _ diag.Reporter) error {
	if len(m.Namespaces) != 1 {
		return fmt.Errorf("qfn-reference: model %s has %d root namespaces, want 1",
			m.File, len(m.Namespaces))
	}
	root := m.Namespaces[0]
	stampQFNs(root, "")

	r := &resolver{
		local:   newSymbolTable(root, ""),
		byDecl:  make([]*symbolTable, 0, len(m.Imports)),
		byAlias: make(map[string]*symbolTable),
	}
	for _, imp := range m.Imports {
		target := m.ImportedModels[imp.Key()]
		if target == nil || len(target.Namespaces) != 1 {
			continue
		}
		if imp.Alias == "" {
			r.byDecl = append(r.byDecl, newSymbolTable(target.Namespaces[0], ""))
		} else {
			r.byAlias[imp.Alias] = newSymbolTable(target.Namespaces[0], imp.Alias)
		}
	}

	r.walk(root, nil)
	return nil
}

// symbolTable is a flat per-file index of declared names.
type symbolTable struct {
	// names maps a simple name to every QFN declaring it, in
	// depth-first declaration order.
	names map[string][]string
	// qfns holds every QFN in the table.
	qfns map[string]bool
}

// newSymbolTable indexes every message, enum, options and compound
// reachable from ns. A non-empty aliasRoot replaces the file-level
// namespace segment in every QFN.
func newSymbolTable(ns *early.Namespace, aliasRoot string) *symbolTable {
	t := &symbolTable{
		names: make(map[string][]string),
		qfns:  make(map[string]bool),
	}
	rootName := ns.Name
	if aliasRoot != "" {
		rootName = aliasRoot
	}
	t.index(ns, rootName)
	return t
}

func (t *symbolTable) index(ns *early.Namespace, prefix string) {
	add := func(name string) {
		qfn := prefix + "::" + name
		t.names[name] = append(t.names[name], qfn)
		t.qfns[qfn] = true
	}
	for _, msg := range ns.Messages {
		add(msg.Name)
	}
	for _, e := range ns.Enums {
		add(e.Name)
	}
	for _, o := range ns.Options {
		add(o.Name)
	}
	for _, c := range ns.Compounds {
		add(c.Name)
	}
	for _, nested := range ns.Namespaces {
		t.index(nested, prefix+"::"+nested.Name)
	}
}

// stampQFNs assigns every namespace its qualified name.
func stampQFNs(ns *early.Namespace, prefix string) {
	if prefix == "" {
		ns.QFN = ns.Name
	} else {
		ns.QFN = prefix + "::" + ns.Name
	}
	for _, nested := range ns.Namespaces {
		stampQFNs(nested, ns.QFN)
	}
}

type resolver struct {
	local   *symbolTable
	byDecl  []*symbolTable
	byAlias map[string]*symbolTable
}

func (r *resolver) walk(ns *early.Namespace, stack []*early.Namespace) {
	stack = append(stack, ns)
	for _, msg := range ns.Messages {
		msg.ParentRaw = r.resolve(msg.ParentRaw, stack)
		for _, f := range msg.Fields {
			r.resolveType(f.Type, stack)
		}
	}
	for _, e := range ns.Enums {
		e.ParentRaw = r.resolve(e.ParentRaw, stack)
	}
	for _, nested := range ns.Namespaces {
		r.walk(nested, stack)
	}
}

func (r *resolver) resolveType(t *early.TypeExpr, stack []*early.Namespace) {
	if t == nil {
		return
	}
	switch t.Kind {
	case early.TypeRef, early.TypeEnumRef:
		t.Name = r.resolve(t.Name, stack)
	case early.TypeArray:
		r.resolveType(t.Elem, stack)
	case early.TypeMap:
		r.resolveType(t.Key, stack)
		r.resolveType(t.Elem, stack)
	}
}

// resolve maps a raw name to its QFN, or returns it untouched when no
// declaration matches.
func (r *resolver) resolve(name string, stack []*early.Namespace) string {
	if name == "" {
		return name
	}
	if strings.Contains(name, "::") {
		return r.resolveQualified(name)
	}
	return r.resolveUnqualified(name, stack)
}

func (r *resolver) resolveUnqualified(name string, stack []*early.Namespace) string {
	candidates := r.local.names[name]
	// Innermost scope outward; a candidate counts only when declared
	// under the namespace being searched, so siblings never leak.
	for i := len(stack) - 1; i >= 0; i-- {
		prefix := stack[i].QFN + "::"
		for _, qfn := range candidates {
			if strings.HasPrefix(qfn, prefix) {
				return qfn
			}
		}
	}
	// Anywhere in the file.
	if len(candidates) > 0 {
		return candidates[0]
	}
	// Non-aliased imports, declaration order.
	for _, t := range r.byDecl {
		if qfns := t.names[name]; len(qfns) > 0 {
			return qfns[0]
		}
	}
	return name
}

func (r *resolver) resolveQualified(name string) string {
	if r.local.qfns[name] {
		return name
	}
	head, rest, _ := strings.Cut(name, "::")
	if t, ok := r.byAlias[head]; ok {
		if t.qfns[name] {
			return name
		}
		// A bare Alias::Name pair may point at a nested declaration;
		// the simple-name index finds it.
		if !strings.Contains(rest, "::") {
			if qfns := t.names[rest]; len(qfns) > 0 {
				return qfns[0]
			}
		}
	}
	// Partially qualified local names: suffix match against declared
	// QFNs, innermost-authored declaration order.
	last := name[strings.LastIndex(name, "::")+2:]
	for _, qfn := range r.local.names[last] {
		if strings.HasSuffix(qfn, "::"+name) {
			return qfn
		}
	}
	return name
}
