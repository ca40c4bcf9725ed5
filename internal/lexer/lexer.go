package lexer

import (
	"github.com/DeanoC/MessageWrangler-sub001/internal/source"
	"github.com/DeanoC/MessageWrangler-sub001/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // one-token lookahead buffer
	hold   []token.Trivia // leading trivia accumulated for the next token
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next significant token with its Leading trivia attached.
// After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		return token.Token{
			Kind:    token.EOF,
			Span:    lx.emptySpan(),
			Leading: lx.takeHold(),
		}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '-' && lx.isDigitAfterMinus():
		tok = lx.scanNumber()
	case ch == '"':
		tok = lx.scanString()
	default:
		tok = lx.scanPunct()
	}

	tok.Leading = lx.takeHold()
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// NextRawExpr scans raw default-expression text up to ';' or newline,
// excluding the terminator, with surrounding spaces trimmed. Used by the
// parser directly after consuming '='.
func (lx *Lexer) NextRawExpr() token.Token {
	if lx.look != nil {
		// Rewind the lookahead so the raw scan starts where it began.
		lx.cursor.Reset(Mark(lx.look.Span.Start))
		lx.look = nil
	}
	for lx.cursor.Peek() == ' ' || lx.cursor.Peek() == '\t' {
		lx.cursor.Bump()
	}
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == ';' || b == '\n' {
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	for len(text) > 0 && (text[len(text)-1] == ' ' || text[len(text)-1] == '\t' || text[len(text)-1] == '\r') {
		text = text[:len(text)-1]
		sp.End--
	}
	return token.Token{Kind: token.RawExpr, Span: sp, Text: text}
}

func (lx *Lexer) takeHold() []token.Trivia {
	h := lx.hold
	lx.hold = nil
	return h
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
