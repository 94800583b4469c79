package parser

import (
	"github.com/leafscript/leaf/ast"
	"github.com/leafscript/leaf/token"
)

// structLiteral parses the remainder of a struct expression after the
// leading 'struct' keyword has already been consumed: a name, then a
// brace-delimited body of field declarations (`name;`) and method
// declarations (`name(params) { body }`, no leading 'function'
// keyword). Like functionLiteral, it does not consume a trailing
// ';' itself — struct is an ordinary primary expression, and the
// statement that embeds it (an expressionStatement, a var/const
// declaration, ...) is the one that owns and consumes that
// terminator.
//
// `extends` is deliberately not special-cased: spec.md's grammar has
// no inheritance clause, so `struct Foo extends Bar {` fails at the
// expect(LBRACE) below and recovers like any other parse error.
func (p *Parser) structLiteral() *ast.Struct {
	tok := p.previous()
	name := p.expect(token.IDENTIFIER, "expected struct name")
	p.expect(token.LBRACE, "expected '{' after struct name")

	var fields []token.Token
	var methods []ast.StructMethod
	for !p.check(token.RBRACE) && !p.atEnd() {
		memberName := p.expect(token.IDENTIFIER, "expected field or method name")
		if p.check(token.LPAREN) {
			p.advance()
			params := p.paramList()
			p.expect(token.RPAREN, "expected ')' after parameters")
			body := p.block()
			fn := &ast.Function{Tok: memberName, Name: memberName.Lexeme, Params: params, Body: body}
			methods = append(methods, ast.StructMethod{Name: memberName, Fn: fn})
			continue
		}
		p.expect(token.SEMICOLON, "expected ';' after field declaration")
		fields = append(fields, memberName)
	}
	p.expect(token.RBRACE, "expected '}' after struct body")

	return &ast.Struct{Tok: tok, Name: name, Fields: fields, Methods: methods}
}
