package token

import "github.com/DeanoC/MessageWrangler-sub001/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaDocLine
)

// Trivia is whitespace or a comment collected ahead of a token. Doc lines
// become declaration documentation; line and block comments are kept so
// tooling can round-trip them.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
