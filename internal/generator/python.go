package generator

import (
	"fmt"
	"strings"

	"github.com/DeanoC/MessageWrangler-sub001/internal/model"
)

// Python emits dataclasses for messages and compounds, IntEnum for
// enums and IntFlag for options. Namespace nesting flattens into
// underscore-joined class names with the file-level namespace stripped.
type Python struct{}

func (Python) Name() string { return "python" }

func (Python) FileName(m *model.Model) string { return stem(m) + ".py" }

func (Python) Generate(m *model.Model) ([]byte, error) {
	var out strings.Builder
	out.WriteString("from __future__ import annotations\n\n")
	out.WriteString("from dataclasses import dataclass, field\n")
	out.WriteString("from enum import IntEnum, IntFlag\n")
	for _, dep := range sortedImports(m) {
		fmt.Fprintf(&out, "\nimport %s", stem(dep))
	}
	out.WriteString("\n")
	if m.Root != nil {
		g := pyGen{model: m, out: &out}
		g.namespace(m.Root)
	}
	return []byte(out.String()), nil
}

type pyGen struct {
	model *model.Model
	out   *strings.Builder
}

// localName flattens a QFN declared in this file: root stripped, the
// rest underscore joined.
func (g *pyGen) localName(qfn string) string {
	parts := qfnParts(qfn)
	if len(parts) > 1 && g.model.Root != nil && parts[0] == g.model.Root.Name {
		parts = parts[1:]
	}
	return strings.Join(parts, "_")
}

// refName resolves a QFN to a Python expression, module-qualified when
// it lives in an imported file.
func (g *pyGen) refName(qfn string) string {
	parts := qfnParts(qfn)
	if g.model.Root != nil && parts[0] == g.model.Root.Name {
		return g.localName(qfn)
	}
	if dep := depByRoot(g.model, parts[0]); dep != nil {
		return stem(dep) + "." + strings.Join(parts[1:], "_")
	}
	return strings.Join(parts, "_")
}

func (g *pyGen) namespace(ns *model.Namespace) {
	for _, e := range ns.Enums {
		fmt.Fprintf(g.out, "\n\nclass %s(IntEnum):\n", g.localName(e.QFN))
		g.docstring("    ", e.Doc)
		for _, v := range e.Values {
			fmt.Fprintf(g.out, "    %s = %d\n", v.Name, v.Value)
		}
	}
	for _, o := range ns.Options {
		fmt.Fprintf(g.out, "\n\nclass %s(IntFlag):\n", g.localName(o.QFN))
		g.docstring("    ", o.Doc)
		for _, v := range o.Values {
			fmt.Fprintf(g.out, "    %s = %d\n", v.Name, v.Value)
		}
	}
	for _, c := range ns.Compounds {
		fmt.Fprintf(g.out, "\n\n@dataclass\nclass %s:\n", g.localName(c.QFN))
		g.docstring("    ", c.Doc)
		for _, member := range c.Members {
			fmt.Fprintf(g.out, "    %s: %s = %s\n", member, pyPrimName(c.Base), pyPrimZero(c.Base))
		}
	}
	for _, msg := range ns.Messages {
		base := ""
		if msg.Parent != "" {
			base = "(" + g.refName(msg.Parent) + ")"
		}
		fmt.Fprintf(g.out, "\n\n@dataclass\nclass %s%s:\n", g.localName(msg.QFN), base)
		g.docstring("    ", msg.Doc)
		if len(msg.Fields) == 0 && len(msg.Doc) == 0 {
			g.out.WriteString("    pass\n")
		}
		for _, f := range msg.Fields {
			fmt.Fprintf(g.out, "    %s: %s = %s\n", f.Name, g.typ(&f.Type, f), g.defaultFor(f))
		}
	}
	for _, child := range ns.Namespaces {
		g.namespace(child)
	}
}

func (g *pyGen) docstring(indent string, doc []string) {
	if len(doc) == 0 {
		return
	}
	fmt.Fprintf(g.out, "%s\"\"\"%s\"\"\"\n", indent, strings.Join(doc, " "))
}

func (g *pyGen) typ(t *model.Type, f *model.Field) string {
	base := g.bareType(t)
	if isOptional(f) {
		return base + " | None"
	}
	return base
}

func (g *pyGen) bareType(t *model.Type) string {
	switch t.Tag {
	case model.TagString:
		return "str"
	case model.TagInt, model.TagByte:
		return "int"
	case model.TagFloat:
		return "float"
	case model.TagBool:
		return "bool"
	case model.TagArray:
		return "list[" + g.bareType(t.Elem) + "]"
	case model.TagMap:
		return "dict[" + g.bareType(t.Key) + ", " + g.bareType(t.Elem) + "]"
	default:
		return g.refName(t.Ref)
	}
}

// defaultFor keeps every dataclass field defaulted so declaration order
// never breaks the generated class.
func (g *pyGen) defaultFor(f *model.Field) string {
	if isOptional(f) {
		return "None"
	}
	if f.HasDefault {
		return pyLiteral(f.DefaultRaw)
	}
	switch f.Type.Tag {
	case model.TagString:
		return `""`
	case model.TagInt, model.TagByte:
		return "0"
	case model.TagFloat:
		return "0.0"
	case model.TagBool:
		return "False"
	case model.TagArray:
		return "field(default_factory=list)"
	case model.TagMap:
		return "field(default_factory=dict)"
	default:
		return "None"
	}
}

func pyLiteral(raw string) string {
	switch raw {
	case "true":
		return "True"
	case "false":
		return "False"
	}
	return raw
}

func pyPrimName(base string) string {
	switch base {
	case "string":
		return "str"
	case "int", "byte":
		return "int"
	case "bool":
		return "bool"
	default:
		return "float"
	}
}

func pyPrimZero(base string) string {
	switch base {
	case "string":
		return `""`
	case "int", "byte":
		return "0"
	case "bool":
		return "False"
	default:
		return "0.0"
	}
}
