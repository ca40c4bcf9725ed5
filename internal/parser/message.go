package parser

import (
	"github.com/DeanoC/MessageWrangler-sub001/internal/ast"
	"github.com/DeanoC/MessageWrangler-sub001/internal/diag"
	"github.com/DeanoC/MessageWrangler-sub001/internal/token"
)

func (p *Parser) parseMessageItem() (ast.ItemID, bool) {
	kw := p.advance() // 'message'

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected message name")
	if !ok {
		return ast.NoItemID, false
	}

	msg := ast.MessageItem{
		Name:     nameTok.Text,
		NameSpan: nameTok.Span,
		Doc:      kw.DocText(),
		Comment:  localComment(kw),
	}

	if p.at(token.Colon) {
		p.advance()
		parent, parentSpan, parentOK := p.parseQualifiedName()
		if !parentOK {
			return ast.NoItemID, false
		}
		msg.Parent = parent
		msg.ParentSpan = parentSpan
	}

	if _, ok := p.expect(token.LBrace, diag.SynExpectLBrace, "expected '{' after message header"); !ok {
		return ast.NoItemID, false
	}

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		fieldID, fieldOK := p.parseField()
		if !fieldOK {
			p.resyncField()
			continue
		}
		msg.Fields = append(msg.Fields, fieldID)
	}

	closeTok, ok := p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}' to close message")
	if !ok {
		return ast.NoItemID, false
	}

	payload := p.file.Items.Messages.Allocate(msg)
	return p.file.Items.New(ast.ItemMessage, kw.Span.Cover(closeTok.Span), payload), true
}

// parseField parses 'modifier* name : type (= default)? ;?'. The last
// identifier before the colon is the field name, anything before it is a
// modifier.
func (p *Parser) parseField() (ast.FieldID, bool) {
	first, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected field name")
	if !ok {
		return ast.NoFieldID, false
	}

	field := ast.Field{
		NameSpan: first.Span,
		Span:     first.Span,
		Doc:      first.DocText(),
		Comment:  localComment(first),
	}

	nameTok := first
	for p.at(token.Ident) {
		field.Modifiers = append(field.Modifiers, nameTok.Text)
		nameTok = p.advance()
	}
	field.Name = nameTok.Text
	field.NameSpan = nameTok.Span

	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after field name"); !ok {
		return ast.NoFieldID, false
	}

	typeID, typeOK := p.parseTypeDef()
	if !typeOK {
		return ast.NoFieldID, false
	}
	field.Type = typeID
	field.Span = field.Span.Cover(p.file.Items.Type(typeID).Span)

	if p.at(token.Assign) {
		p.advance()
		raw := p.lx.NextRawExpr()
		field.Default = raw.Text
		field.HasDefault = true
		field.Span = field.Span.Cover(raw.Span)
	}
	if p.at(token.Semicolon) {
		p.advance()
	}

	return ast.FieldID(p.file.Items.Fields.Allocate(field)), true
}

// resyncField skips to the likely start of the next field or the end of
// the message body.
func (p *Parser) resyncField() {
	p.resyncUntil(token.Semicolon, token.RBrace, token.Ident)
	if p.at(token.Semicolon) {
		p.advance()
	}
}
