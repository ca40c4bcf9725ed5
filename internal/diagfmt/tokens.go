package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/DeanoC/MessageWrangler-sub001/internal/source"
	"github.com/DeanoC/MessageWrangler-sub001/internal/token"
)

// FormatTokensPretty writes one token per line with position and text.
func FormatTokensPretty(w io.Writer, toks []token.Token, fs *source.FileSet) error {
	for _, tok := range toks {
		start, _ := fs.Resolve(tok.Span)
		if tok.Text != "" {
			if _, err := fmt.Fprintf(w, "%4d:%-3d %-12s %q\n", start.Line, start.Col, tok.Kind, tok.Text); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%4d:%-3d %s\n", start.Line, start.Col, tok.Kind); err != nil {
			return err
		}
	}
	return nil
}

type tokenJSON struct {
	Kind  string `json:"kind"`
	Text  string `json:"text,omitempty"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
}

// FormatTokensJSON writes the token stream as a JSON array.
func FormatTokensJSON(w io.Writer, toks []token.Token) error {
	out := make([]tokenJSON, len(toks))
	for i, tok := range toks {
		out[i] = tokenJSON{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Start: tok.Span.Start,
			End:   tok.Span.End,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
