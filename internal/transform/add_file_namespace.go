package transform

import (
	"strings"

	"github.com/DeanoC/MessageWrangler-sub001/internal/diag"
	"github.com/DeanoC/MessageWrangler-sub001/internal/early"
	"github.com/DeanoC/MessageWrangler-sub001/internal/source"
)

// AddFileLevelNamespace guarantees every model has exactly one root
// namespace. A file whose only top-level declaration is a namespace
// keeps it; anything else gets wrapped in a namespace named after the
// file stem. Running the pass twice changes nothing.
type AddFileLevelNamespace struct{}

func (AddFileLevelNamespace) Name() string { return "add-file-level-namespace" }

func (AddFileLevelNamespace) Apply(m *early.Model, _ diag.Reporter) error {
	if len(m.Namespaces) == 1 &&
		len(m.Messages) == 0 && len(m.Enums) == 0 &&
		len(m.Options) == 0 && len(m.Compounds) == 0 {
		return nil
	}

	root := &early.Namespace{
		Name:       identFromPath(m.File),
		Namespaces: m.Namespaces,
		Messages:   m.Messages,
		Enums:      m.Enums,
		Options:    m.Options,
		Compounds:  m.Compounds,
	}
	m.Namespaces = []*early.Namespace{root}
	m.Messages = nil
	m.Enums = nil
	m.Options = nil
	m.Compounds = nil
	return nil
}

// identFromPath turns a file path into a usable namespace name: the base
// name without extension, with anything outside [A-Za-z0-9_] replaced
// by underscores. A leading digit gets an underscore prefix.
func identFromPath(path string) string {
	stem := source.BaseName(path)
	var b strings.Builder
	for _, r := range stem {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	if out == "" {
		return "file"
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return out
}
