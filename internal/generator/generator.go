// Package generator turns resolved models into per-language bindings.
// Every emitter is a plain template writer over the finished model; no
// resolution happens here.
package generator

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/DeanoC/MessageWrangler-sub001/internal/model"
	"github.com/DeanoC/MessageWrangler-sub001/internal/source"
)

// Generator emits one output file per model.
type Generator interface {
	Name() string
	FileName(m *model.Model) string
	Generate(m *model.Model) ([]byte, error)
}

// All returns every emitter in the default output order.
func All() []Generator {
	return []Generator{Cpp{}, TypeScript{}, Python{}, JSONSchema{}}
}

// ByName resolves a language name as spelled on the command line.
func ByName(name string) (Generator, bool) {
	switch strings.ToLower(name) {
	case "cpp", "c++":
		return Cpp{}, true
	case "ts", "typescript":
		return TypeScript{}, true
	case "py", "python":
		return Python{}, true
	case "json", "jsonschema":
		return JSONSchema{}, true
	}
	return nil, false
}

// WriteAll runs each generator and writes its output under outDir,
// returning the written paths.
func WriteAll(fs afero.Fs, outDir string, m *model.Model, gens []Generator, log *logrus.Logger) ([]string, error) {
	if err := fs.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}
	var written []string
	for _, g := range gens {
		content, err := g.Generate(m)
		if err != nil {
			return written, fmt.Errorf("%s: %w", g.Name(), err)
		}
		path := filepath.Join(outDir, g.FileName(m))
		if err := afero.WriteFile(fs, path, content, 0o644); err != nil {
			return written, err
		}
		if log != nil {
			log.WithFields(logrus.Fields{"generator": g.Name(), "path": path}).Debug("wrote output")
		}
		written = append(written, path)
	}
	return written, nil
}

// stem is the output base name for a model: its source file stem.
func stem(m *model.Model) string {
	return source.BaseName(m.File)
}

func isOptional(f *model.Field) bool {
	for _, mod := range f.Modifiers {
		if mod == "optional" {
			return true
		}
	}
	return false
}

func qfnParts(qfn string) []string {
	return strings.Split(qfn, "::")
}

// sortedImports returns the import keys in stable order with their
// models, deduplicated by file.
func sortedImports(m *model.Model) []*model.Model {
	keys := make([]string, 0, len(m.Imports))
	for k := range m.Imports {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	seen := make(map[string]bool, len(keys))
	deps := make([]*model.Model, 0, len(keys))
	for _, k := range keys {
		dep := m.Imports[k]
		if dep == nil || seen[dep.File] {
			continue
		}
		seen[dep.File] = true
		deps = append(deps, dep)
	}
	return deps
}

// depByRoot finds the imported model whose root namespace declares the
// given name.
func depByRoot(m *model.Model, root string) *model.Model {
	for _, dep := range m.Imports {
		if dep != nil && dep.Root != nil && dep.Root.Name == root {
			return dep
		}
	}
	return nil
}

func docLines(out *strings.Builder, indent, marker string, doc []string) {
	for _, line := range doc {
		out.WriteString(indent)
		out.WriteString(marker)
		out.WriteString(line)
		out.WriteString("\n")
	}
}
