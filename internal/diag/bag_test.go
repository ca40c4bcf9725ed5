package diag

import (
	"testing"

	"github.com/DeanoC/MessageWrangler-sub001/internal/source"
)

func TestBagCap(t *testing.T) {
	b := NewBag(2)
	if !b.Add(Diagnostic{Code: SynUnexpectedToken, Severity: SevError}) {
		t.Fatalf("first Add rejected")
	}
	if !b.Add(Diagnostic{Code: SynExpectRBrace, Severity: SevError}) {
		t.Fatalf("second Add rejected")
	}
	if b.Add(Diagnostic{Code: SynExpectColon, Severity: SevError}) {
		t.Fatalf("Add over cap accepted")
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
}

func TestBagHasErrors(t *testing.T) {
	b := NewBag(8)
	b.Add(Diagnostic{Severity: SevWarning, Code: ProjInfo})
	if b.HasErrors() {
		t.Fatalf("warning counted as error")
	}
	if !b.HasWarnings() {
		t.Fatalf("HasWarnings = false")
	}
	b.Add(Diagnostic{Severity: SevError, Code: SemaUnresolvedReference})
	if !b.HasErrors() {
		t.Fatalf("HasErrors = false after error added")
	}
}

func TestBagSortDeterministic(t *testing.T) {
	b := NewBag(8)
	b.Add(Diagnostic{Severity: SevError, Code: SemaDuplicateDefinition, Primary: source.Span{File: 2, Start: 5}})
	b.Add(Diagnostic{Severity: SevError, Code: SemaUnresolvedReference, Primary: source.Span{File: 1, Start: 9}})
	b.Add(Diagnostic{Severity: SevWarning, Code: ProjInfo, Primary: source.Span{File: 1, Start: 9}})
	b.Sort()

	items := b.Items()
	if items[0].Primary.File != 1 || items[0].Severity != SevError {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	if items[2].Primary.File != 2 {
		t.Fatalf("unexpected last item: %+v", items[2])
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(8)
	sp := source.Span{File: 1, Start: 3, End: 7}
	b.Add(Diagnostic{Severity: SevError, Code: SemaUnresolvedReference, Primary: sp})
	b.Add(Diagnostic{Severity: SevError, Code: SemaUnresolvedReference, Primary: sp})
	b.Dedup()
	if b.Len() != 1 {
		t.Fatalf("Len after Dedup = %d, want 1", b.Len())
	}
}

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LexUnknownChar, "LEX1001"},
		{SynNestedArray, "SYN2008"},
		{SemaUnresolvedReference, "SEM3001"},
		{IOLoadFileError, "IO4001"},
		{ProjImportCycle, "PRJ5002"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("ID(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
