package main

import (
	"testing"

	"github.com/spf13/cobra"
)

func newGenerateFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{}
	cmd.Flags().Bool("cpp", false, "")
	cmd.Flags().Bool("ts", false, "")
	cmd.Flags().Bool("py", false, "")
	cmd.Flags().Bool("json", false, "")
	if err := cmd.Flags().Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd
}

func genNames(t *testing.T, cmd *cobra.Command, langs []string) []string {
	t.Helper()
	gens, err := selectGenerators(cmd, langs)
	if err != nil {
		t.Fatalf("selectGenerators: %v", err)
	}
	names := make([]string, len(gens))
	for i, g := range gens {
		names[i] = g.Name()
	}
	return names
}

func TestSelectGeneratorsDefault(t *testing.T) {
	cmd := newGenerateFlags(t)
	got := genNames(t, cmd, nil)
	want := []string{"cpp", "typescript", "jsonschema"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSelectGeneratorsFlags(t *testing.T) {
	cmd := newGenerateFlags(t, "--py")
	got := genNames(t, cmd, nil)
	if len(got) != 1 || got[0] != "python" {
		t.Fatalf("got %v, want [python]", got)
	}
}

func TestSelectGeneratorsLanguageListWins(t *testing.T) {
	cmd := newGenerateFlags(t, "--cpp")
	got := genNames(t, cmd, []string{"typescript"})
	if len(got) != 1 || got[0] != "typescript" {
		t.Fatalf("got %v, want [typescript]", got)
	}
}

func TestSelectGeneratorsAll(t *testing.T) {
	cmd := newGenerateFlags(t)
	got := genNames(t, cmd, []string{"all"})
	if len(got) != 4 {
		t.Fatalf("got %v, want four generators", got)
	}
}

func TestSelectGeneratorsUnknown(t *testing.T) {
	cmd := newGenerateFlags(t)
	if _, err := selectGenerators(cmd, []string{"cobol"}); err == nil {
		t.Fatalf("expected error for unknown language")
	}
}
