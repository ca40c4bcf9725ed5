package token

import (
	"github.com/DeanoC/MessageWrangler-sub001/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwMessage, KwNamespace, KwEnum, KwOpenEnum, KwOptions, KwImport,
		KwAs, KwMap, KwString, KwInt, KwFloat, KwBool, KwByte:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// DocText collects the text of leading doc-comment trivia, with the
// comment markers stripped.
func (t Token) DocText() []string {
	var out []string
	for _, tr := range t.Leading {
		if tr.Kind == TriviaDocLine {
			out = append(out, trimDocMarker(tr.Text))
		}
	}
	return out
}

func trimDocMarker(s string) string {
	for len(s) > 0 && (s[0] == ' ' || s[0] == '\t') {
		s = s[1:]
	}
	if len(s) >= 3 && s[:3] == "///" {
		s = s[3:]
	}
	if len(s) > 0 && s[0] == ' ' {
		s = s[1:]
	}
	return s
}
