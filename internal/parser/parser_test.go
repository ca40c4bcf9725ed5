package parser

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/DeanoC/MessageWrangler-sub001/internal/ast"
	"github.com/DeanoC/MessageWrangler-sub001/internal/diag"
	"github.com/DeanoC/MessageWrangler-sub001/internal/source"
)

func parseSource(t *testing.T, src string) (*ast.File, *diag.Bag, bool) {
	t.Helper()
	fileSet := source.NewFileSet(afero.NewMemMapFs())
	id := fileSet.AddVirtual("test.def", []byte(src))
	bag := diag.NewBag(64)
	file, ok := ParseFile(fileSet.Get(id), Options{
		Reporter: diag.BagReporter{Bag: bag},
	})
	return file, bag, ok
}

func mustParse(t *testing.T, src string) *ast.File {
	t.Helper()
	file, bag, ok := parseSource(t, src)
	if !ok {
		t.Fatalf("parse failed: %v", bag.Items())
	}
	return file
}

func TestParseMessage(t *testing.T) {
	file := mustParse(t, `
message Position {
	x: float
	y: float
	tag: string = "origin";
}
`)
	if len(file.Order) != 1 {
		t.Fatalf("items = %d, want 1", len(file.Order))
	}
	msg, ok := file.Items.Message(file.Order[0])
	if !ok {
		t.Fatalf("item 0 is not a message")
	}
	if msg.Name != "Position" || len(msg.Fields) != 3 {
		t.Fatalf("msg = %q with %d fields", msg.Name, len(msg.Fields))
	}

	x := file.Items.Field(msg.Fields[0])
	tx := file.Items.Type(x.Type)
	if x.Name != "x" || tx.Kind != ast.TypePrimitive || tx.Prim != ast.PrimFloat {
		t.Fatalf("field 0 = %+v type %+v", x, tx)
	}

	tag := file.Items.Field(msg.Fields[2])
	if !tag.HasDefault || tag.Default != `"origin"` {
		t.Fatalf("default = %v %q", tag.HasDefault, tag.Default)
	}
}

func TestParseMessageInheritance(t *testing.T) {
	file := mustParse(t, "message Derived : Base::Inner { a: int }")
	msg, _ := file.Items.Message(file.Order[0])
	if msg.Parent != "Base::Inner" {
		t.Fatalf("parent = %q", msg.Parent)
	}
}

func TestParseDotQualifiedParent(t *testing.T) {
	file := mustParse(t, "message M : Pkg.Base { a: int }")
	msg, _ := file.Items.Message(file.Order[0])
	if msg.Parent != "Pkg.Base" {
		t.Fatalf("parent = %q, want raw dot spelling preserved", msg.Parent)
	}
}

func TestParseMultiDotQualifiedName(t *testing.T) {
	file := mustParse(t, "message M : A.B.C { f: A.B.C }")
	msg, _ := file.Items.Message(file.Order[0])
	if msg.Parent != "A.B.C" {
		t.Fatalf("parent = %q, want raw dot spelling preserved", msg.Parent)
	}
	f := file.Items.Field(msg.Fields[0])
	ft := file.Items.Type(f.Type)
	if ft.Kind != ast.TypeRef || ft.Name != "A.B.C" {
		t.Fatalf("field type = %+v, want ref A.B.C", ft)
	}
}

func TestParseFieldModifiers(t *testing.T) {
	file := mustParse(t, "message M { optional repeated payload: byte[] }")
	msg, _ := file.Items.Message(file.Order[0])
	f := file.Items.Field(msg.Fields[0])
	if f.Name != "payload" {
		t.Fatalf("name = %q", f.Name)
	}
	if len(f.Modifiers) != 2 || f.Modifiers[0] != "optional" || f.Modifiers[1] != "repeated" {
		t.Fatalf("modifiers = %v", f.Modifiers)
	}
	ft := file.Items.Type(f.Type)
	if ft.Kind != ast.TypeArray {
		t.Fatalf("type kind = %v", ft.Kind)
	}
	elem := file.Items.Type(ft.Elem)
	if elem.Kind != ast.TypePrimitive || elem.Prim != ast.PrimByte {
		t.Fatalf("elem = %+v", elem)
	}
}

func TestParseNestedArrayIsError(t *testing.T) {
	_, bag, ok := parseSource(t, "message M { m: int[][] }")
	if ok {
		t.Fatalf("nested array accepted")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynNestedArray {
			found = true
		}
	}
	if !found {
		t.Fatalf("no SynNestedArray diagnostic: %v", bag.Items())
	}
}

func TestParseMapType(t *testing.T) {
	file := mustParse(t, "message M { lookup: Map<string, Vec2[]> }")
	msg, _ := file.Items.Message(file.Order[0])
	f := file.Items.Field(msg.Fields[0])
	ft := file.Items.Type(f.Type)
	if ft.Kind != ast.TypeMap {
		t.Fatalf("type kind = %v", ft.Kind)
	}
	key := file.Items.Type(ft.Key)
	if key.Kind != ast.TypePrimitive || key.Prim != ast.PrimString {
		t.Fatalf("key = %+v", key)
	}
	val := file.Items.Type(ft.Elem)
	if val.Kind != ast.TypeArray {
		t.Fatalf("value kind = %v", val.Kind)
	}
}

func TestParseEnum(t *testing.T) {
	file := mustParse(t, `
enum Color {
	Red = 1,
	Green,
	Blue = 10
}
`)
	enum, ok := file.Items.Enum(file.Order[0])
	if !ok {
		t.Fatalf("item is not an enum")
	}
	if enum.Open || len(enum.Values) != 3 {
		t.Fatalf("enum = %+v", enum)
	}
	red := file.Items.Value(enum.Values[0])
	if !red.HasValue || red.Value != 1 {
		t.Fatalf("Red = %+v", red)
	}
	green := file.Items.Value(enum.Values[1])
	if green.HasValue {
		t.Fatalf("Green should have no explicit value")
	}
}

func TestParseOpenEnumWithParent(t *testing.T) {
	file := mustParse(t, "open_enum Extended : Base::Color { Purple = 100 }")
	enum, _ := file.Items.Enum(file.Order[0])
	if !enum.Open || enum.Parent != "Base::Color" {
		t.Fatalf("enum = %+v", enum)
	}
}

func TestParseOptions(t *testing.T) {
	file := mustParse(t, "options Flags { A, B, C = 16, D }")
	opts, ok := file.Items.OptionsDecl(file.Order[0])
	if !ok {
		t.Fatalf("item is not options")
	}
	if len(opts.Values) != 4 {
		t.Fatalf("values = %d", len(opts.Values))
	}
	c := file.Items.Value(opts.Values[2])
	if !c.HasValue || c.Value != 16 {
		t.Fatalf("C = %+v", c)
	}
}

func TestParseCompoundDecl(t *testing.T) {
	file := mustParse(t, "float Vector3 { x, y, z }")
	comp, ok := file.Items.Compound(file.Order[0])
	if !ok {
		t.Fatalf("item is not a compound")
	}
	if comp.Base != ast.PrimFloat || len(comp.Members) != 3 || comp.Members[2] != "z" {
		t.Fatalf("compound = %+v", comp)
	}
}

func TestParseInlineEnumField(t *testing.T) {
	file := mustParse(t, "message M { state: enum { Idle, Busy = 5 } }")
	msg, _ := file.Items.Message(file.Order[0])
	ft := file.Items.Type(file.Items.Field(msg.Fields[0]).Type)
	if ft.Kind != ast.TypeInlineEnum || ft.Open || len(ft.Values) != 2 {
		t.Fatalf("type = %+v", ft)
	}
}

func TestParseInlineOptionsField(t *testing.T) {
	file := mustParse(t, "message M { caps: options { Read, Write, Exec } }")
	msg, _ := file.Items.Message(file.Order[0])
	ft := file.Items.Type(file.Items.Field(msg.Fields[0]).Type)
	if ft.Kind != ast.TypeInlineOptions || len(ft.Values) != 3 {
		t.Fatalf("type = %+v", ft)
	}
}

func TestParseEnumRefField(t *testing.T) {
	file := mustParse(t, "message M { c: enum Colors::Basic }")
	msg, _ := file.Items.Message(file.Order[0])
	ft := file.Items.Type(file.Items.Field(msg.Fields[0]).Type)
	if ft.Kind != ast.TypeEnumRef || ft.Name != "Colors::Basic" {
		t.Fatalf("type = %+v", ft)
	}
}

func TestParseInlineCompoundField(t *testing.T) {
	file := mustParse(t, "message M { pos: float { x, y } }")
	msg, _ := file.Items.Message(file.Order[0])
	ft := file.Items.Type(file.Items.Field(msg.Fields[0]).Type)
	if ft.Kind != ast.TypeInlineCompound || ft.Name != "float" || len(ft.Components) != 2 {
		t.Fatalf("type = %+v", ft)
	}
}

func TestParseNamespace(t *testing.T) {
	file := mustParse(t, `
namespace Game {
	enum Mode { Solo, Coop }
	message Player { name: string }
}
`)
	ns, ok := file.Items.Namespace(file.Order[0])
	if !ok {
		t.Fatalf("item is not a namespace")
	}
	if ns.Name != "Game" || len(ns.Items) != 2 {
		t.Fatalf("ns = %q with %d items", ns.Name, len(ns.Items))
	}
}

func TestParseImports(t *testing.T) {
	file := mustParse(t, `
import "./common.def"
import "./colors.def" as Colors
message M { c: Colors::Basic }
`)
	imports := file.ImportsOf()
	if len(imports) != 2 {
		t.Fatalf("imports = %d", len(imports))
	}
	if imports[0].Path != "./common.def" || imports[0].Alias != "" {
		t.Fatalf("import 0 = %+v", imports[0])
	}
	if imports[1].Path != "./colors.def" || imports[1].Alias != "Colors" {
		t.Fatalf("import 1 = %+v", imports[1])
	}
}

func TestParseDocComments(t *testing.T) {
	file := mustParse(t, `
/// A point in space.
message Point {
	/// Horizontal part.
	x: float
	y: float // trailing speed note
}
`)
	msg, _ := file.Items.Message(file.Order[0])
	if len(msg.Doc) != 1 || msg.Doc[0] != "A point in space." {
		t.Fatalf("doc = %q", msg.Doc)
	}
	x := file.Items.Field(msg.Fields[0])
	if len(x.Doc) != 1 || x.Doc[0] != "Horizontal part." {
		t.Fatalf("field doc = %q", x.Doc)
	}
	y := file.Items.Field(msg.Fields[1])
	if len(y.Doc) != 0 {
		t.Fatalf("y doc = %q", y.Doc)
	}
}

func TestParseRecoversPerItem(t *testing.T) {
	file, bag, ok := parseSource(t, `
message Broken { : }
enum Fine { A, B }
`)
	if ok {
		t.Fatalf("expected errors")
	}
	if !bag.HasErrors() {
		t.Fatalf("bag has no errors")
	}
	// The parser should still deliver the enum after resyncing.
	foundEnum := false
	for _, id := range file.Order {
		if e, isEnum := file.Items.Enum(id); isEnum && e.Name == "Fine" {
			foundEnum = true
		}
	}
	if !foundEnum {
		t.Fatalf("enum after broken message was lost")
	}
}

func TestParseUnexpectedTopLevel(t *testing.T) {
	_, bag, ok := parseSource(t, "= 5")
	if ok {
		t.Fatalf("expected failure")
	}
	if bag.Items()[0].Code != diag.SynUnexpectedTopLevel {
		t.Fatalf("code = %v", bag.Items()[0].Code)
	}
}
