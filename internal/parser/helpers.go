package parser

import (
	"github.com/DeanoC/MessageWrangler-sub001/internal/diag"
	"github.com/DeanoC/MessageWrangler-sub001/internal/source"
	"github.com/DeanoC/MessageWrangler-sub001/internal/token"
)

// advance consumes the next token and updates lastSpan.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// diagnosticSpan picks the best span for a report. At EOF the position
// just past the last consumed token beats an empty span at offset 0.
func (p *Parser) diagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if (peek.Kind == token.EOF || peek.Kind == token.Invalid) && peek.Span.Empty() {
		if p.lastSpan.End > 0 {
			return source.Span{
				File:  p.lastSpan.File,
				Start: p.lastSpan.End,
				End:   p.lastSpan.End,
			}
		}
	}
	return peek.Span
}

// expect consumes a token of kind k or reports and returns ok=false.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.diagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.lx.Peek().Text}, false
}

// err reports an error at the current position.
func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, diag.SevError, p.diagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter != nil && !p.opts.Enough() {
		p.opts.Reporter.Report(code, sev, sp, msg, nil)
	}
}

// resyncUntil skips tokens until one of kinds or EOF.
func (p *Parser) resyncUntil(kinds ...token.Kind) {
	for !p.at(token.EOF) && !p.atAny(kinds...) {
		p.advance()
	}
}

// localComment extracts the nearest preceding line or block comment from
// the token's leading trivia. Doc lines are handled separately.
func localComment(tok token.Token) string {
	out := ""
	for _, tr := range tok.Leading {
		if tr.Kind == token.TriviaLineComment || tr.Kind == token.TriviaBlockComment {
			out = trimCommentText(tr.Text)
		}
	}
	return out
}

func trimCommentText(s string) string {
	for len(s) > 0 && (s[0] == ' ' || s[0] == '\t') {
		s = s[1:]
	}
	switch {
	case len(s) >= 2 && s[:2] == "//":
		s = s[2:]
	case len(s) >= 4 && s[:2] == "/*" && s[len(s)-2:] == "*/":
		s = s[2 : len(s)-2]
	}
	for len(s) > 0 && (s[0] == ' ' || s[0] == '\t') {
		s = s[1:]
	}
	for len(s) > 0 && (s[len(s)-1] == ' ' || s[len(s)-1] == '\t') {
		s = s[:len(s)-1]
	}
	return s
}
