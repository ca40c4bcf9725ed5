package lexer

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/DeanoC/MessageWrangler-sub001/internal/diag"
	"github.com/DeanoC/MessageWrangler-sub001/internal/source"
	"github.com/DeanoC/MessageWrangler-sub001/internal/token"
)

type testReporter struct {
	codes []diag.Code
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.codes = append(r.codes, code)
}

func lexAll(t *testing.T, src string) ([]token.Token, *testReporter) {
	t.Helper()
	fileSet := source.NewFileSet(afero.NewMemMapFs())
	id := fileSet.AddVirtual("test.def", []byte(src))
	rep := &testReporter{}
	lx := New(fileSet.Get(id), Options{Reporter: rep})

	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, rep
		}
		if len(toks) > 1000 {
			t.Fatalf("lexer did not reach EOF")
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestLexMessageDecl(t *testing.T) {
	toks, rep := lexAll(t, "message Vec2 { x: float\n y: float }")
	want := []token.Kind{
		token.KwMessage, token.Ident, token.LBrace,
		token.Ident, token.Colon, token.KwFloat,
		token.Ident, token.Colon, token.KwFloat,
		token.RBrace, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
	if len(rep.codes) != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.codes)
	}
}

func TestLexKeywordsCaseSensitive(t *testing.T) {
	toks, _ := lexAll(t, "Map map Message open_enum")
	want := []token.Kind{token.KwMap, token.Ident, token.Ident, token.KwOpenEnum, token.EOF}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexPunct(t *testing.T) {
	toks, _ := lexAll(t, ":: : , ; = . [ ] < > { }")
	want := []token.Kind{
		token.ColonColon, token.Colon, token.Comma, token.Semicolon,
		token.Assign, token.Dot, token.LBracket, token.RBracket,
		token.Lt, token.Gt, token.LBrace, token.RBrace, token.EOF,
	}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexNegativeNumber(t *testing.T) {
	toks, rep := lexAll(t, "A = -42")
	if toks[2].Kind != token.IntLit || toks[2].Text != "-42" {
		t.Fatalf("number token = %v %q", toks[2].Kind, toks[2].Text)
	}
	if len(rep.codes) != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.codes)
	}
}

func TestLexBadNumber(t *testing.T) {
	_, rep := lexAll(t, "x = 12abc")
	if len(rep.codes) != 1 || rep.codes[0] != diag.LexBadNumber {
		t.Fatalf("codes = %v, want [LexBadNumber]", rep.codes)
	}
}

func TestLexString(t *testing.T) {
	toks, _ := lexAll(t, `import "./base.def" as Base`)
	if toks[1].Kind != token.StringLit || toks[1].Text != `"./base.def"` {
		t.Fatalf("string token = %v %q", toks[1].Kind, toks[1].Text)
	}
}

func TestLexUnterminatedString(t *testing.T) {
	_, rep := lexAll(t, `import "oops`)
	if len(rep.codes) != 1 || rep.codes[0] != diag.LexUnterminatedString {
		t.Fatalf("codes = %v, want [LexUnterminatedString]", rep.codes)
	}
}

func TestLexDocTrivia(t *testing.T) {
	toks, _ := lexAll(t, "/// Position in metres.\n/// Second line.\nmessage Pos {}")
	if toks[0].Kind != token.KwMessage {
		t.Fatalf("first token = %v", toks[0].Kind)
	}
	doc := toks[0].DocText()
	if len(doc) != 2 || doc[0] != "Position in metres." || doc[1] != "Second line." {
		t.Fatalf("doc = %q", doc)
	}
}

func TestLexLineAndBlockComments(t *testing.T) {
	toks, rep := lexAll(t, "// local\n/* block /* nested */ still */ enum E {}")
	if toks[0].Kind != token.KwEnum {
		t.Fatalf("first token = %v", toks[0].Kind)
	}
	var sawLine, sawBlock bool
	for _, tr := range toks[0].Leading {
		switch tr.Kind {
		case token.TriviaLineComment:
			sawLine = true
		case token.TriviaBlockComment:
			sawBlock = true
			if tr.Text != "/* block /* nested */ still */" {
				t.Fatalf("block text = %q", tr.Text)
			}
		}
	}
	if !sawLine || !sawBlock {
		t.Fatalf("missing trivia: line=%v block=%v", sawLine, sawBlock)
	}
	if len(rep.codes) != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.codes)
	}
}

func TestLexUnterminatedBlockComment(t *testing.T) {
	_, rep := lexAll(t, "/* never closed")
	if len(rep.codes) != 1 || rep.codes[0] != diag.LexUnterminatedBlockComment {
		t.Fatalf("codes = %v, want [LexUnterminatedBlockComment]", rep.codes)
	}
}

func TestNextRawExpr(t *testing.T) {
	fileSet := source.NewFileSet(afero.NewMemMapFs())
	id := fileSet.AddVirtual("test.def", []byte("= Vec2 { x: 1.5, y: 0 } ;"))
	lx := New(fileSet.Get(id), Options{})

	if tok := lx.Next(); tok.Kind != token.Assign {
		t.Fatalf("first token = %v", tok.Kind)
	}
	raw := lx.NextRawExpr()
	if raw.Kind != token.RawExpr || raw.Text != "Vec2 { x: 1.5, y: 0 }" {
		t.Fatalf("raw = %v %q", raw.Kind, raw.Text)
	}
	if tok := lx.Next(); tok.Kind != token.Semicolon {
		t.Fatalf("token after raw = %v", tok.Kind)
	}
}
