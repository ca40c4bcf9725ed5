package parser

import (
	"strconv"

	"github.com/DeanoC/MessageWrangler-sub001/internal/ast"
	"github.com/DeanoC/MessageWrangler-sub001/internal/diag"
	"github.com/DeanoC/MessageWrangler-sub001/internal/source"
	"github.com/DeanoC/MessageWrangler-sub001/internal/token"
)

func (p *Parser) parseEnumItem() (ast.ItemID, bool) {
	kw := p.advance() // 'enum' or 'open_enum'

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected enum name")
	if !ok {
		return ast.NoItemID, false
	}

	enum := ast.EnumItem{
		Name:     nameTok.Text,
		NameSpan: nameTok.Span,
		Open:     kw.Kind == token.KwOpenEnum,
		Doc:      kw.DocText(),
		Comment:  localComment(kw),
	}

	if p.at(token.Colon) {
		p.advance()
		parent, parentSpan, parentOK := p.parseQualifiedName()
		if !parentOK {
			return ast.NoItemID, false
		}
		enum.Parent = parent
		enum.ParentSpan = parentSpan
	}

	values, span, valuesOK := p.parseValueList(kw.Span)
	if !valuesOK {
		return ast.NoItemID, false
	}
	enum.Values = values

	payload := p.file.Items.Enums.Allocate(enum)
	return p.file.Items.New(ast.ItemEnum, span, payload), true
}

func (p *Parser) parseOptionsItem() (ast.ItemID, bool) {
	kw := p.advance() // 'options'

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected options name")
	if !ok {
		return ast.NoItemID, false
	}

	values, span, valuesOK := p.parseValueList(kw.Span)
	if !valuesOK {
		return ast.NoItemID, false
	}

	payload := p.file.Items.Options.Allocate(ast.OptionsItem{
		Name:     nameTok.Text,
		NameSpan: nameTok.Span,
		Values:   values,
		Doc:      kw.DocText(),
		Comment:  localComment(kw),
	})
	return p.file.Items.New(ast.ItemOptions, span, payload), true
}

// parseCompoundItem parses 'basetype Name { a, b, c }'.
func (p *Parser) parseCompoundItem() (ast.ItemID, bool) {
	baseTok := p.advance() // basic type keyword

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected compound name")
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok := p.expect(token.LBrace, diag.SynExpectLBrace, "expected '{' after compound name"); !ok {
		return ast.NoItemID, false
	}

	var members []string
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		memberTok, memberOK := p.expect(token.Ident, diag.SynExpectIdentifier, "expected compound member name")
		if !memberOK {
			return ast.NoItemID, false
		}
		members = append(members, memberTok.Text)
	}
	closeTok, ok := p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}' to close compound")
	if !ok {
		return ast.NoItemID, false
	}
	if len(members) == 0 {
		p.report(diag.SynEmptyBody, diag.SevWarning, baseTok.Span.Cover(closeTok.Span), "compound has no members")
	}

	payload := p.file.Items.Compounds.Allocate(ast.CompoundItem{
		Name:     nameTok.Text,
		NameSpan: nameTok.Span,
		Base:     primOf(baseTok.Kind),
		Members:  members,
		Doc:      baseTok.DocText(),
		Comment:  localComment(baseTok),
	})
	return p.file.Items.New(ast.ItemCompound, baseTok.Span.Cover(closeTok.Span), payload), true
}

// parseValueList parses '{ value (, value)* ,? }' for enums and options.
// Stray commas and semicolons between values are tolerated the way the
// grammar tolerates comments there.
func (p *Parser) parseValueList(openSpan source.Span) ([]ast.ValueID, source.Span, bool) {
	if _, ok := p.expect(token.LBrace, diag.SynExpectLBrace, "expected '{' to open value list"); !ok {
		return nil, openSpan, false
	}

	var values []ast.ValueID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.Comma) || p.at(token.Semicolon) {
			p.advance()
			continue
		}

		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected value name")
		if !ok {
			return nil, openSpan, false
		}

		value := ast.Value{
			Name:    nameTok.Text,
			Span:    nameTok.Span,
			Doc:     nameTok.DocText(),
			Comment: localComment(nameTok),
		}

		if p.at(token.Assign) {
			p.advance()
			numTok, numOK := p.expect(token.IntLit, diag.SynBadEnumValue, "expected integer after '='")
			if !numOK {
				return nil, openSpan, false
			}
			n, err := strconv.ParseInt(numTok.Text, 10, 64)
			if err != nil {
				p.report(diag.SynBadEnumValue, diag.SevError, numTok.Span, "enum value does not fit in 64 bits")
				return nil, openSpan, false
			}
			value.HasValue = true
			value.Value = n
			value.Span = value.Span.Cover(numTok.Span)
		}

		values = append(values, ast.ValueID(p.file.Items.Values.Allocate(value)))
	}

	closeTok, ok := p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}' to close value list")
	if !ok {
		return nil, openSpan, false
	}
	return values, openSpan.Cover(closeTok.Span), true
}
