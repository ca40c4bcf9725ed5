// Package transform rewrites raw early models step by step until every
// reference is fully qualified and no inline type bodies remain. The
// passes run in a fixed order; each one is idempotent so a pipeline can
// be re-entered safely.
package transform

import (
	"github.com/DeanoC/MessageWrangler-sub001/internal/diag"
	"github.com/DeanoC/MessageWrangler-sub001/internal/early"
)

// Transform is one per-file rewrite pass. Schema problems go through the
// reporter; the error return is for infrastructure failures only.
type Transform interface {
	Name() string
	Apply(m *early.Model, rep diag.Reporter) error
}

// SingleFilePasses returns the passes that run before imports attach:
// namespace wrapping and colon canonicalization touch only one file.
func SingleFilePasses() []Transform {
	return []Transform{
		AddFileLevelNamespace{},
		CanonicalizeColons{},
	}
}

// ResolutionPasses returns the passes that need attached imports, in
// their required order.
func ResolutionPasses() []Transform {
	return []Transform{
		QfnReference{},
		PromoteInlineEnums{},
	}
}

// Run applies passes in order, stopping at the first infrastructure
// failure.
func Run(m *early.Model, rep diag.Reporter, passes []Transform) error {
	for _, pass := range passes {
		if err := pass.Apply(m, rep); err != nil {
			return err
		}
	}
	return nil
}
