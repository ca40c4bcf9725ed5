package diag

import (
	"github.com/DeanoC/MessageWrangler-sub001/internal/source"
)

// Note attaches secondary context to a diagnostic, e.g. the location of a
// previous definition for a duplicate error.
type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
