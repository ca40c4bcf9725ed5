package parser

import (
	"slices"

	"github.com/DeanoC/MessageWrangler-sub001/internal/ast"
	"github.com/DeanoC/MessageWrangler-sub001/internal/diag"
	"github.com/DeanoC/MessageWrangler-sub001/internal/lexer"
	"github.com/DeanoC/MessageWrangler-sub001/internal/source"
	"github.com/DeanoC/MessageWrangler-sub001/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error cap has been reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Parser holds the state for parsing one definition file.
type Parser struct {
	lx       *lexer.Lexer
	file     *ast.File
	opts     Options
	nsDepth  int         // nesting level of namespace bodies
	lastSpan source.Span // span of the last consumed token, for diagnostics at EOF
}

// ParseFile parses one definition file into its parse tree. ok is false
// when any syntax error was reported; a file with syntax errors must not
// flow into model building.
func ParseFile(src *source.File, opts Options) (file *ast.File, ok bool) {
	lx := lexer.New(src, lexer.Options{Reporter: opts.Reporter})
	p := Parser{
		lx:   lx,
		file: ast.NewFile(src, 0),
		opts: opts,
	}
	p.parseItems(token.EOF, &p.file.Order)
	return p.file, p.opts.CurrentErrors == 0
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseItems is the declaration loop shared by the file level and
// namespace bodies; stop is EOF or RBrace respectively.
func (p *Parser) parseItems(stop token.Kind, out *[]ast.ItemID) {
	for !p.at(stop) && !p.at(token.EOF) {
		itemID, ok := p.parseItem()
		if !ok {
			before := p.lx.Peek().Span.Start
			p.resyncTop()
			// Guarantee progress when resync lands on the same token,
			// e.g. a stray '}' at the file level.
			if !p.at(stop) && !p.at(token.EOF) && p.lx.Peek().Span.Start == before {
				p.advance()
			}
			continue
		}
		*out = append(*out, itemID)
	}
}

// parseItem dispatches on the first token of a declaration.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwImport:
		if p.nsDepth > 0 {
			p.err(diag.SynUnexpectedTopLevel, "imports are only allowed at the file level")
			return ast.NoItemID, false
		}
		return p.parseImportItem()
	case token.KwNamespace:
		return p.parseNamespaceItem()
	case token.KwMessage:
		return p.parseMessageItem()
	case token.KwEnum, token.KwOpenEnum:
		return p.parseEnumItem()
	case token.KwOptions:
		return p.parseOptionsItem()
	case token.KwString, token.KwInt, token.KwFloat, token.KwBool, token.KwByte:
		return p.parseCompoundItem()
	default:
		p.err(diag.SynUnexpectedTopLevel, "unexpected top-level construct")
		return ast.NoItemID, false
	}
}

// resyncTop skips to the start of the next declaration after an error.
func (p *Parser) resyncTop() {
	p.resyncUntil(
		token.KwImport, token.KwNamespace, token.KwMessage,
		token.KwEnum, token.KwOpenEnum, token.KwOptions,
		token.KwString, token.KwInt, token.KwFloat, token.KwBool, token.KwByte,
		token.RBrace, token.Semicolon,
	)
	if p.at(token.Semicolon) {
		p.advance()
	}
}

func (p *Parser) parseImportItem() (ast.ItemID, bool) {
	kw := p.advance() // 'import'

	pathTok, ok := p.expect(token.StringLit, diag.SynExpectString, "expected file path string after 'import'")
	if !ok {
		return ast.NoItemID, false
	}

	imp := ast.ImportItem{
		Path:     unquote(pathTok.Text),
		PathSpan: pathTok.Span,
	}
	span := kw.Span.Cover(pathTok.Span)

	if p.at(token.KwAs) {
		p.advance()
		aliasTok, aliasOK := p.expect(token.Ident, diag.SynExpectIdentAfterAs, "expected alias identifier after 'as'")
		if !aliasOK {
			return ast.NoItemID, false
		}
		imp.Alias = aliasTok.Text
		imp.AliasSpan = aliasTok.Span
		span = span.Cover(aliasTok.Span)
	}

	payload := p.file.Items.Imports.Allocate(imp)
	return p.file.Items.New(ast.ItemImport, span, payload), true
}

func (p *Parser) parseNamespaceItem() (ast.ItemID, bool) {
	kw := p.advance() // 'namespace'

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected namespace name")
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok := p.expect(token.LBrace, diag.SynExpectLBrace, "expected '{' after namespace name"); !ok {
		return ast.NoItemID, false
	}

	ns := ast.NamespaceItem{
		Name:     nameTok.Text,
		NameSpan: nameTok.Span,
		Doc:      kw.DocText(),
		Comment:  localComment(kw),
	}
	p.nsDepth++
	p.parseItems(token.RBrace, &ns.Items)
	p.nsDepth--

	closeTok, ok := p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}' to close namespace")
	if !ok {
		return ast.NoItemID, false
	}

	payload := p.file.Items.Namespaces.Allocate(ns)
	return p.file.Items.New(ast.ItemNamespace, kw.Span.Cover(closeTok.Span), payload), true
}

// unquote strips the surrounding quotes of a string literal and resolves
// the simple escapes the lexer admits.
func unquote(lit string) string {
	if len(lit) >= 2 && lit[0] == '"' && lit[len(lit)-1] == '"' {
		lit = lit[1 : len(lit)-1]
	}
	out := make([]byte, 0, len(lit))
	for i := 0; i < len(lit); i++ {
		if lit[i] == '\\' && i+1 < len(lit) {
			i++
			switch lit[i] {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			default:
				out = append(out, lit[i])
			}
			continue
		}
		out = append(out, lit[i])
	}
	return string(out)
}
