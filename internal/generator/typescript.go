package generator

import (
	"fmt"
	"strings"

	"github.com/DeanoC/MessageWrangler-sub001/internal/model"
)

// TypeScript emits interfaces for messages and compounds plus numeric
// enums; options sets become enums holding bit-flag values.
type TypeScript struct{}

func (TypeScript) Name() string { return "typescript" }

func (TypeScript) FileName(m *model.Model) string { return stem(m) + ".ts" }

func (TypeScript) Generate(m *model.Model) ([]byte, error) {
	var out strings.Builder
	for _, dep := range sortedImports(m) {
		if dep.Root == nil {
			continue
		}
		fmt.Fprintf(&out, "import { %s } from \"./%s\";\n", dep.Root.Name, stem(dep))
	}
	if len(m.Imports) > 0 {
		out.WriteString("\n")
	}
	if m.Root != nil {
		tsNamespace(&out, m.Root, 0)
	}
	return []byte(out.String()), nil
}

func tsNamespace(out *strings.Builder, ns *model.Namespace, depth int) {
	ind := strings.Repeat("    ", depth)
	fmt.Fprintf(out, "%sexport namespace %s {\n\n", ind, ns.Name)
	inner := strings.Repeat("    ", depth+1)

	for _, e := range ns.Enums {
		docLines(out, inner, "// ", e.Doc)
		fmt.Fprintf(out, "%sexport enum %s {\n", inner, e.Name)
		for _, v := range e.Values {
			fmt.Fprintf(out, "%s    %s = %d,\n", inner, v.Name, v.Value)
		}
		fmt.Fprintf(out, "%s}\n\n", inner)
	}
	for _, o := range ns.Options {
		docLines(out, inner, "// ", o.Doc)
		fmt.Fprintf(out, "%sexport enum %s {\n", inner, o.Name)
		for _, v := range o.Values {
			fmt.Fprintf(out, "%s    %s = %d,\n", inner, v.Name, v.Value)
		}
		fmt.Fprintf(out, "%s}\n\n", inner)
	}
	for _, c := range ns.Compounds {
		docLines(out, inner, "// ", c.Doc)
		fmt.Fprintf(out, "%sexport interface %s {\n", inner, c.Name)
		for _, member := range c.Members {
			fmt.Fprintf(out, "%s    %s: %s;\n", inner, member, tsPrimName(c.Base))
		}
		fmt.Fprintf(out, "%s}\n\n", inner)
	}
	for _, msg := range ns.Messages {
		docLines(out, inner, "// ", msg.Doc)
		if msg.Parent != "" {
			fmt.Fprintf(out, "%sexport interface %s extends %s {\n", inner, msg.Name, tsRef(msg.Parent))
		} else {
			fmt.Fprintf(out, "%sexport interface %s {\n", inner, msg.Name)
		}
		for _, f := range msg.Fields {
			name := f.Name
			if isOptional(f) {
				name += "?"
			}
			fmt.Fprintf(out, "%s    %s: %s;\n", inner, name, tsType(&f.Type))
		}
		fmt.Fprintf(out, "%s}\n\n", inner)
	}
	for _, child := range ns.Namespaces {
		tsNamespace(out, child, depth+1)
	}
	fmt.Fprintf(out, "%s}\n", ind)
}

func tsType(t *model.Type) string {
	switch t.Tag {
	case model.TagString:
		return "string"
	case model.TagInt, model.TagFloat, model.TagByte:
		return "number"
	case model.TagBool:
		return "boolean"
	case model.TagArray:
		return tsType(t.Elem) + "[]"
	case model.TagMap:
		return "Record<" + tsType(t.Key) + ", " + tsType(t.Elem) + ">"
	default:
		return tsRef(t.Ref)
	}
}

func tsRef(qfn string) string {
	return strings.Join(qfnParts(qfn), ".")
}

func tsPrimName(base string) string {
	switch base {
	case "string":
		return "string"
	case "bool":
		return "boolean"
	default:
		return "number"
	}
}
