package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/DeanoC/MessageWrangler-sub001/internal/diag"
	"github.com/DeanoC/MessageWrangler-sub001/internal/source"
)

// DiagnosticJSON is the machine-readable shape of one diagnostic.
type DiagnosticJSON struct {
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	Message  string     `json:"message"`
	Path     string     `json:"path,omitempty"`
	Line     uint32     `json:"line,omitempty"`
	Col      uint32     `json:"col,omitempty"`
	Notes    []NoteJSON `json:"notes,omitempty"`
}

type NoteJSON struct {
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
	Line    uint32 `json:"line,omitempty"`
	Col     uint32 `json:"col,omitempty"`
}

// JSONDiagnostics writes the bag as a JSON array.
func JSONDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	items := bag.Items()
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
	}
	out := make([]DiagnosticJSON, 0, len(items))
	for _, d := range items {
		j := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
		}
		fillPosition(fs, d.Primary, opts, &j.Path, &j.Line, &j.Col)
		if opts.IncludeNotes {
			for _, note := range d.Notes {
				nj := NoteJSON{Message: note.Msg}
				fillPosition(fs, note.Span, opts, &nj.Path, &nj.Line, &nj.Col)
				j.Notes = append(j.Notes, nj)
			}
		}
		out = append(out, j)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func fillPosition(fs *source.FileSet, span source.Span, opts JSONOpts, path *string, line, col *uint32) {
	if int(span.File) >= fs.Len() {
		return
	}
	*path = displayPath(fs, span, opts.PathMode)
	if opts.IncludePositions {
		start, _ := fs.Resolve(span)
		*line = start.Line
		*col = start.Col
	}
}
