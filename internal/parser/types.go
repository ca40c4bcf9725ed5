package parser

import (
	"strings"

	"github.com/DeanoC/MessageWrangler-sub001/internal/ast"
	"github.com/DeanoC/MessageWrangler-sub001/internal/diag"
	"github.com/DeanoC/MessageWrangler-sub001/internal/source"
	"github.com/DeanoC/MessageWrangler-sub001/internal/token"
)

func primOf(k token.Kind) ast.Prim {
	switch k {
	case token.KwString:
		return ast.PrimString
	case token.KwInt:
		return ast.PrimInt
	case token.KwFloat:
		return ast.PrimFloat
	case token.KwBool:
		return ast.PrimBool
	}
	return ast.PrimByte
}

// parseQualifiedName parses NAME ('::' NAME)* ('.' NAME)* and returns the
// text exactly as written. The dot spelling survives until the colon
// canonicalization pass rewrites it.
func (p *Parser) parseQualifiedName() (string, source.Span, bool) {
	first, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected type name")
	if !ok {
		return "", source.Span{}, false
	}
	var sb strings.Builder
	sb.WriteString(first.Text)
	span := first.Span

	for p.at(token.ColonColon) {
		p.advance()
		seg, segOK := p.expect(token.Ident, diag.SynExpectIdentifier, "expected name after '::'")
		if !segOK {
			return "", span, false
		}
		sb.WriteString("::")
		sb.WriteString(seg.Text)
		span = span.Cover(seg.Span)
	}
	for p.at(token.Dot) {
		p.advance()
		seg, segOK := p.expect(token.Ident, diag.SynExpectIdentifier, "expected name after '.'")
		if !segOK {
			return "", span, false
		}
		sb.WriteString(".")
		sb.WriteString(seg.Text)
		span = span.Cover(seg.Span)
	}
	return sb.String(), span, true
}

// parseTypeDef parses a field type including an optional array suffix.
func (p *Parser) parseTypeDef() (ast.TypeID, bool) {
	base, ok := p.parseBaseType()
	if !ok {
		return ast.NoTypeID, false
	}
	return p.parseArraySuffix(base)
}

func (p *Parser) parseBaseType() (ast.TypeID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.KwMap:
		return p.parseMapType()

	case token.KwEnum, token.KwOpenEnum:
		p.advance()
		open := tok.Kind == token.KwOpenEnum
		if p.at(token.LBrace) {
			values, span, valuesOK := p.parseValueList(tok.Span)
			if !valuesOK {
				return ast.NoTypeID, false
			}
			return ast.TypeID(p.file.Items.Types.Allocate(ast.TypeExpr{
				Kind:   ast.TypeInlineEnum,
				Span:   span,
				Open:   open,
				Values: values,
			})), true
		}
		name, span, nameOK := p.parseQualifiedName()
		if !nameOK {
			return ast.NoTypeID, false
		}
		return ast.TypeID(p.file.Items.Types.Allocate(ast.TypeExpr{
			Kind: ast.TypeEnumRef,
			Span: tok.Span.Cover(span),
			Name: name,
		})), true

	case token.KwOptions:
		p.advance()
		values, span, valuesOK := p.parseValueList(tok.Span)
		if !valuesOK {
			return ast.NoTypeID, false
		}
		return ast.TypeID(p.file.Items.Types.Allocate(ast.TypeExpr{
			Kind:   ast.TypeInlineOptions,
			Span:   span,
			Values: values,
		})), true

	case token.KwString, token.KwInt, token.KwFloat, token.KwBool, token.KwByte:
		p.advance()
		if p.at(token.LBrace) {
			return p.parseInlineCompound(tok.Text, tok.Span)
		}
		return ast.TypeID(p.file.Items.Types.Allocate(ast.TypeExpr{
			Kind: ast.TypePrimitive,
			Span: tok.Span,
			Prim: primOf(tok.Kind),
		})), true

	case token.Ident:
		name, span, nameOK := p.parseQualifiedName()
		if !nameOK {
			return ast.NoTypeID, false
		}
		if p.at(token.LBrace) {
			return p.parseInlineCompound(name, span)
		}
		return ast.TypeID(p.file.Items.Types.Allocate(ast.TypeExpr{
			Kind: ast.TypeRef,
			Span: span,
			Name: name,
		})), true

	default:
		p.err(diag.SynExpectType, "expected field type")
		return ast.NoTypeID, false
	}
}

// parseArraySuffix handles a single trailing '[]'. A second suffix is a
// hard error: nested arrays are not part of the language.
func (p *Parser) parseArraySuffix(elem ast.TypeID) (ast.TypeID, bool) {
	if !p.at(token.LBracket) {
		return elem, true
	}
	open := p.advance()
	closeTok, ok := p.expect(token.RBracket, diag.SynUnexpectedToken, "expected ']' after '['")
	if !ok {
		return ast.NoTypeID, false
	}
	if p.at(token.LBracket) {
		p.err(diag.SynNestedArray, "nested array types are not supported")
		return ast.NoTypeID, false
	}
	span := p.file.Items.Type(elem).Span.Cover(open.Span).Cover(closeTok.Span)
	return ast.TypeID(p.file.Items.Types.Allocate(ast.TypeExpr{
		Kind: ast.TypeArray,
		Span: span,
		Elem: elem,
	})), true
}

func (p *Parser) parseMapType() (ast.TypeID, bool) {
	kw := p.advance() // 'Map'
	if _, ok := p.expect(token.Lt, diag.SynExpectLt, "expected '<' after 'Map'"); !ok {
		return ast.NoTypeID, false
	}

	key, ok := p.parseMapKeyType()
	if !ok {
		return ast.NoTypeID, false
	}
	if _, ok := p.expect(token.Comma, diag.SynExpectComma, "expected ',' between map key and value types"); !ok {
		return ast.NoTypeID, false
	}
	value, ok := p.parseTypeDef()
	if !ok {
		return ast.NoTypeID, false
	}
	closeTok, ok := p.expect(token.Gt, diag.SynExpectGt, "expected '>' to close map type")
	if !ok {
		return ast.NoTypeID, false
	}

	return ast.TypeID(p.file.Items.Types.Allocate(ast.TypeExpr{
		Kind: ast.TypeMap,
		Span: kw.Span.Cover(closeTok.Span),
		Key:  key,
		Elem: value,
	})), true
}

// parseMapKeyType admits basic types and plain or qualified names.
func (p *Parser) parseMapKeyType() (ast.TypeID, bool) {
	tok := p.lx.Peek()
	switch {
	case tok.Kind.IsBasicType():
		p.advance()
		return ast.TypeID(p.file.Items.Types.Allocate(ast.TypeExpr{
			Kind: ast.TypePrimitive,
			Span: tok.Span,
			Prim: primOf(tok.Kind),
		})), true
	case tok.Kind == token.Ident:
		name, span, ok := p.parseQualifiedName()
		if !ok {
			return ast.NoTypeID, false
		}
		return ast.TypeID(p.file.Items.Types.Allocate(ast.TypeExpr{
			Kind: ast.TypeRef,
			Span: span,
			Name: name,
		})), true
	default:
		p.err(diag.SynExpectType, "expected map key type")
		return ast.NoTypeID, false
	}
}

func (p *Parser) parseInlineCompound(base string, baseSpan source.Span) (ast.TypeID, bool) {
	p.advance() // '{'
	var members []string
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		memberTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected compound member name")
		if !ok {
			return ast.NoTypeID, false
		}
		members = append(members, memberTok.Text)
	}
	closeTok, ok := p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}' to close compound type")
	if !ok {
		return ast.NoTypeID, false
	}
	return ast.TypeID(p.file.Items.Types.Allocate(ast.TypeExpr{
		Kind:       ast.TypeInlineCompound,
		Span:       baseSpan.Cover(closeTok.Span),
		Name:       base,
		Components: members,
	})), true
}
