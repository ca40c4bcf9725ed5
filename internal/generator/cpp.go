package generator

import (
	"fmt"
	"strings"

	"github.com/DeanoC/MessageWrangler-sub001/internal/model"
)

// Cpp emits a C++23 header: structs for messages, enum class with a
// sized underlying type for enums and options, structs for compounds.
type Cpp struct{}

func (Cpp) Name() string { return "cpp" }

func (Cpp) FileName(m *model.Model) string { return stem(m) + ".h" }

func (Cpp) Generate(m *model.Model) ([]byte, error) {
	var out strings.Builder
	out.WriteString("#pragma once\n\n")
	out.WriteString("#include <cstdint>\n")
	out.WriteString("#include <map>\n")
	out.WriteString("#include <optional>\n")
	out.WriteString("#include <string>\n")
	out.WriteString("#include <vector>\n")
	for _, dep := range sortedImports(m) {
		fmt.Fprintf(&out, "#include %q\n", stem(dep)+".h")
	}
	out.WriteString("\n")
	if m.Root != nil {
		cppNamespace(&out, m.Root, 0)
	}
	return []byte(out.String()), nil
}

func cppNamespace(out *strings.Builder, ns *model.Namespace, depth int) {
	ind := strings.Repeat("    ", depth)
	fmt.Fprintf(out, "%snamespace %s {\n\n", ind, ns.Name)
	inner := strings.Repeat("    ", depth+1)

	for _, e := range ns.Enums {
		docLines(out, inner, "// ", e.Doc)
		fmt.Fprintf(out, "%senum class %s : uint%d_t {\n", inner, e.Name, e.Width)
		for _, v := range e.Values {
			fmt.Fprintf(out, "%s    %s = %d,\n", inner, v.Name, v.Value)
		}
		fmt.Fprintf(out, "%s};\n\n", inner)
	}
	for _, o := range ns.Options {
		docLines(out, inner, "// ", o.Doc)
		fmt.Fprintf(out, "%senum class %s : uint%d_t {\n", inner, o.Name, o.Width)
		for _, v := range o.Values {
			fmt.Fprintf(out, "%s    %s = %d,\n", inner, v.Name, v.Value)
		}
		fmt.Fprintf(out, "%s};\n\n", inner)
	}
	for _, c := range ns.Compounds {
		docLines(out, inner, "// ", c.Doc)
		fmt.Fprintf(out, "%sstruct %s {\n", inner, c.Name)
		for _, member := range c.Members {
			fmt.Fprintf(out, "%s    %s %s;\n", inner, cppPrimName(c.Base), member)
		}
		fmt.Fprintf(out, "%s};\n\n", inner)
	}
	for _, msg := range ns.Messages {
		docLines(out, inner, "// ", msg.Doc)
		if msg.Parent != "" {
			fmt.Fprintf(out, "%sstruct %s : %s {\n", inner, msg.Name, msg.Parent)
		} else {
			fmt.Fprintf(out, "%sstruct %s {\n", inner, msg.Name)
		}
		for _, f := range msg.Fields {
			typ := cppType(&f.Type)
			if isOptional(f) {
				typ = "std::optional<" + typ + ">"
			}
			if f.HasDefault && f.Type.IsScalar() && !isOptional(f) {
				fmt.Fprintf(out, "%s    %s %s = %s;\n", inner, typ, f.Name, f.DefaultRaw)
			} else {
				fmt.Fprintf(out, "%s    %s %s;\n", inner, typ, f.Name)
			}
		}
		fmt.Fprintf(out, "%s};\n\n", inner)
	}
	for _, child := range ns.Namespaces {
		cppNamespace(out, child, depth+1)
	}
	fmt.Fprintf(out, "%s} // namespace %s\n", ind, ns.Name)
	if depth > 0 {
		out.WriteString("\n")
	}
}

func cppType(t *model.Type) string {
	switch t.Tag {
	case model.TagString:
		return "std::string"
	case model.TagInt:
		return "int32_t"
	case model.TagFloat:
		return "float"
	case model.TagBool:
		return "bool"
	case model.TagByte:
		return "uint8_t"
	case model.TagArray:
		return "std::vector<" + cppType(t.Elem) + ">"
	case model.TagMap:
		return "std::map<" + cppType(t.Key) + ", " + cppType(t.Elem) + ">"
	default:
		// References keep their qualified spelling; the scope layout of
		// the generated headers matches the model namespaces exactly.
		return t.Ref
	}
}

func cppPrimName(base string) string {
	switch base {
	case "string":
		return "std::string"
	case "int":
		return "int32_t"
	case "bool":
		return "bool"
	case "byte":
		return "uint8_t"
	default:
		return "float"
	}
}
