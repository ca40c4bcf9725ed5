package source

import (
	"testing"

	"github.com/spf13/afero"
)

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := []byte{0xEF, 0xBB, 0xBF}
	content = append(content, []byte("message A {\r\n}\r\n")...)
	if err := afero.WriteFile(fs, "/defs/a.def", content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fileSet := NewFileSet(fs)
	id, err := fileSet.Load("/defs/a.def")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	f := fileSet.Get(id)
	if got, want := string(f.Content), "message A {\n}\n"; got != want {
		t.Fatalf("content = %q, want %q", got, want)
	}
	if f.Flags&FileHadBOM == 0 {
		t.Fatalf("expected FileHadBOM flag")
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("expected FileNormalizedCRLF flag")
	}
}

func TestResolveLineCol(t *testing.T) {
	fileSet := NewFileSet(afero.NewMemMapFs())
	id := fileSet.AddVirtual("test.def", []byte("enum E {\n  A,\n  B\n}\n"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{5, LineCol{1, 6}},
		{8, LineCol{1, 9}},
		{9, LineCol{2, 1}},
		{13, LineCol{2, 5}},
		{14, LineCol{3, 1}},
		{11, LineCol{2, 3}},
		{18, LineCol{4, 1}},
	}
	for _, tt := range tests {
		got, _ := fileSet.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if got != tt.want {
			t.Errorf("Resolve(%d) = %v, want %v", tt.off, got, tt.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	fileSet := NewFileSet(afero.NewMemMapFs())
	id := fileSet.AddVirtual("test.def", []byte("line one\nline two\nlast"))
	f := fileSet.Get(id)

	if got := f.GetLine(1); got != "line one" {
		t.Fatalf("line 1 = %q", got)
	}
	if got := f.GetLine(3); got != "last" {
		t.Fatalf("line 3 = %q", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Fatalf("line 4 = %q, want empty", got)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 15}
	if got := a.Cover(b); got.Start != 5 || got.End != 20 {
		t.Fatalf("Cover = %v", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Fatalf("Cover across files changed span: %v", got)
	}
}

func TestBaseName(t *testing.T) {
	if got := BaseName("/a/b/messages.def"); got != "messages" {
		t.Fatalf("BaseName = %q", got)
	}
}
