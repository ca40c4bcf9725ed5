package transform

import (
	"fmt"

	"github.com/DeanoC/MessageWrangler-sub001/internal/diag"
	"github.com/DeanoC/MessageWrangler-sub001/internal/early"
)

// AttachImports binds every resolved import of every model to the
// finished model it names, keyed by alias when present and by the raw
// path otherwise. Two imports binding the same key in one file is an
// error; the first binding wins.
func AttachImports(models map[string]*early.Model, rep diag.Reporter) {
	for _, m := range models {
		if m.ImportedModels == nil {
			m.ImportedModels = make(map[string]*early.Model, len(m.Imports))
		}
		for _, imp := range m.Imports {
			if imp.Resolved == "" {
				continue
			}
			target, known := models[imp.Resolved]
			if !known {
				continue
			}
			key := imp.Key()
			if _, taken := m.ImportedModels[key]; taken {
				diag.ReportError(rep, diag.ProjDuplicateAlias, imp.Span,
					fmt.Sprintf("import %q already bound in this file", key)).Emit()
				continue
			}
			m.ImportedModels[key] = target
		}
	}
}
