package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, data string) string {
	t.Helper()
	path := filepath.Join(dir, "wrangler.toml")
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write wrangler.toml: %v", err)
	}
	return path
}

func TestLoadProjectManifest(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `# test manifest
[package]
name = "game-protocol"

[generate]
input = "defs/game.def"
output = "gen"
languages = ["cpp", "python"]
`)

	manifest, ok, err := loadProjectManifest(root)
	if err != nil {
		t.Fatalf("loadProjectManifest: %v", err)
	}
	if !ok {
		t.Fatalf("expected a manifest in %s", root)
	}
	if manifest.Config.Package.Name != "game-protocol" {
		t.Fatalf("package name = %q, want game-protocol", manifest.Config.Package.Name)
	}
	wantInput := filepath.Join(root, "defs", "game.def")
	if got := manifest.manifestInput(); got != wantInput {
		t.Fatalf("manifestInput() = %q, want %q", got, wantInput)
	}
	wantOutput := filepath.Join(root, "gen")
	if got := manifest.manifestOutput(); got != wantOutput {
		t.Fatalf("manifestOutput() = %q, want %q", got, wantOutput)
	}
	if len(manifest.Config.Generate.Languages) != 2 {
		t.Fatalf("languages = %v, want two entries", manifest.Config.Generate.Languages)
	}
}

func TestLoadProjectManifestWalksParents(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	manifest, ok, err := loadProjectManifest(nested)
	if err != nil {
		t.Fatalf("loadProjectManifest: %v", err)
	}
	if !ok {
		t.Fatalf("expected manifest discovery from nested dir")
	}
	if manifest.Root != root {
		t.Fatalf("manifest.Root = %q, want %q", manifest.Root, root)
	}
}

func TestLoadProjectManifestRequiresPackageName(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[generate]\ninput = \"x.def\"\n")

	_, _, err := loadProjectManifest(root)
	if err == nil {
		t.Fatalf("expected an error for a manifest without [package].name")
	}
}

func TestManifestInputEmptyWhenUnset(t *testing.T) {
	m := &projectManifest{Root: "/proj"}
	if got := m.manifestInput(); got != "" {
		t.Fatalf("manifestInput() = %q, want empty", got)
	}
}
