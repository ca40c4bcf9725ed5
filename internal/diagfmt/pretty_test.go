package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/DeanoC/MessageWrangler-sub001/internal/diag"
	"github.com/DeanoC/MessageWrangler-sub001/internal/source"
)

func testSetup(t *testing.T) (*source.FileSet, *diag.Bag) {
	t.Helper()
	fileSet := source.NewFileSet(afero.NewMemMapFs())
	id := fileSet.AddVirtual("/defs/test.def", []byte("message M {\n\tx: Missing\n}\n"))
	bag := diag.NewBag(8)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SemaUnresolvedReference,
		Message:  "unknown type Missing in field x",
		Primary:  source.Span{File: id, Start: 16, End: 23},
	})
	return fileSet, bag
}

func TestPrettyPlain(t *testing.T) {
	fileSet, bag := testSetup(t)

	var out bytes.Buffer
	Pretty(&out, bag, fileSet, PrettyOpts{})
	got := out.String()

	if !strings.Contains(got, "/defs/test.def:2:5: error SEM3001: unknown type Missing in field x") {
		t.Fatalf("heading missing, got:\n%s", got)
	}
	if !strings.Contains(got, "x: Missing") {
		t.Fatalf("source line missing, got:\n%s", got)
	}
	if !strings.Contains(got, "^~~~~~~") {
		t.Fatalf("underline missing, got:\n%s", got)
	}
}

func TestPrettyNotes(t *testing.T) {
	fileSet := source.NewFileSet(afero.NewMemMapFs())
	id := fileSet.AddVirtual("/defs/dup.def", []byte("enum E { A }\nenum E { B }\n"))
	bag := diag.NewBag(8)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SemaDuplicateDefinition,
		Message:  "E is already defined in this namespace",
		Primary:  source.Span{File: id, Start: 18, End: 19},
		Notes: []diag.Note{
			{Span: source.Span{File: id, Start: 5, End: 6}, Msg: "previous definition here"},
		},
	})

	var out bytes.Buffer
	Pretty(&out, bag, fileSet, PrettyOpts{ShowNotes: true})
	got := out.String()
	if !strings.Contains(got, "note: previous definition here") {
		t.Fatalf("note missing, got:\n%s", got)
	}
}

func TestPrettyBasenameMode(t *testing.T) {
	fileSet, bag := testSetup(t)
	var out bytes.Buffer
	Pretty(&out, bag, fileSet, PrettyOpts{PathMode: PathModeBasename})
	if !strings.HasPrefix(out.String(), "test.def:2:5:") {
		t.Fatalf("basename mode not applied: %s", out.String())
	}
}

func TestJSONDiagnostics(t *testing.T) {
	fileSet, bag := testSetup(t)

	var out bytes.Buffer
	err := JSONDiagnostics(&out, bag, fileSet, JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
	})
	if err != nil {
		t.Fatal(err)
	}

	var decoded []DiagnosticJSON
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(decoded))
	}
	d := decoded[0]
	if d.Code != "SEM3001" || d.Severity != "error" {
		t.Fatalf("got %+v", d)
	}
	if d.Line != 2 || d.Col != 5 {
		t.Fatalf("position = %d:%d, want 2:5", d.Line, d.Col)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	fileSet, bag := testSetup(t)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.SynEmptyBody,
		Message:  "second",
		Primary:  source.Span{File: 0, Start: 0, End: 1},
	})

	var out bytes.Buffer
	if err := JSONDiagnostics(&out, bag, fileSet, JSONOpts{Max: 1}); err != nil {
		t.Fatal(err)
	}
	var decoded []DiagnosticJSON
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(decoded))
	}
}
