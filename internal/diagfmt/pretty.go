// Package diagfmt renders diagnostics and token dumps for humans and
// tools.
package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/DeanoC/MessageWrangler-sub001/internal/diag"
	"github.com/DeanoC/MessageWrangler-sub001/internal/source"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
	warnColor  = color.New(color.FgYellow, color.Bold)
	infoColor  = color.New(color.FgCyan)
	noteColor  = color.New(color.FgBlue)
)

// Pretty writes each diagnostic as
//
//	<path>:<line>:<col>: <severity> <CODE>: <message>
//
// followed by the source line with a caret underline, then notes.
// Call bag.Sort() first for stable output.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeHeading(w, fs, d, opts)
		writeUnderline(w, fs, d.Primary, opts)
		if opts.ShowNotes {
			for _, note := range d.Notes {
				if int(note.Span.File) >= fs.Len() {
					fmt.Fprintf(w, "%s: %s\n", paint(opts.Color, noteColor, "note"), note.Msg)
					continue
				}
				start, _ := fs.Resolve(note.Span)
				fmt.Fprintf(w, "%s:%d:%d: %s: %s\n",
					displayPath(fs, note.Span, opts.PathMode), start.Line, start.Col,
					paint(opts.Color, noteColor, "note"), note.Msg)
				writeUnderline(w, fs, note.Span, opts)
			}
		}
	}
}

func writeHeading(w io.Writer, fs *source.FileSet, d diag.Diagnostic, opts PrettyOpts) {
	sev := d.Severity.String()
	switch d.Severity {
	case diag.SevError:
		sev = paint(opts.Color, errorColor, sev)
	case diag.SevWarning:
		sev = paint(opts.Color, warnColor, sev)
	default:
		sev = paint(opts.Color, infoColor, sev)
	}
	if int(d.Primary.File) >= fs.Len() {
		fmt.Fprintf(w, "%s %s: %s\n", sev, d.Code.ID(), d.Message)
		return
	}
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		displayPath(fs, d.Primary, opts.PathMode), start.Line, start.Col,
		sev, d.Code.ID(), d.Message)
}

// writeUnderline prints the primary source line with ^~~~ under the span.
func writeUnderline(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts) {
	if int(span.File) >= fs.Len() || (span.Empty() && span.Start == 0) {
		return
	}
	file := fs.Get(span.File)
	start, end := fs.Resolve(span)
	line := file.GetLine(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "    %s\n", line)

	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = int(end.Col - start.Col)
	}
	marker := "^"
	if width > 1 {
		marker += strings.Repeat("~", width-1)
	}
	pad := strings.Repeat(" ", int(start.Col-1))
	fmt.Fprintf(w, "    %s%s\n", pad, paint(opts.Color, errorColor, marker))
}

func displayPath(fs *source.FileSet, span source.Span, mode PathMode) string {
	path := fs.Get(span.File).Path
	switch mode {
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	}
	return path
}

func paint(enabled bool, c *color.Color, s string) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}
