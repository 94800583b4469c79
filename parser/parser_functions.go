package parser

import (
	"github.com/leafscript/leaf/ast"
	"github.com/leafscript/leaf/token"
)

// functionLiteral parses the remainder of a function expression after
// the leading 'function' keyword has already been consumed: an
// optional name, a parenthesized parameter list, and a body block.
// The name is recorded on the node only; it never introduces a
// binding by itself (callers wanting a named, callable binding go
// through namedFunctionDecl instead).
func (p *Parser) functionLiteral() *ast.Function {
	tok := p.previous()
	var name string
	if p.check(token.IDENTIFIER) {
		name = p.advance().Lexeme
	}
	p.expect(token.LPAREN, "expected '(' after function name")
	params := p.paramList()
	p.expect(token.RPAREN, "expected ')' after parameters")
	body := p.block()
	return &ast.Function{Tok: tok, Name: name, Params: params, Body: body}
}

// paramList parses a comma-separated identifier list up to (but not
// including) the closing ')'.
func (p *Parser) paramList() []token.Token {
	var params []token.Token
	if !p.check(token.RPAREN) {
		for {
			params = append(params, p.expect(token.IDENTIFIER, "expected parameter name"))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	return params
}

// namedFunctionDecl parses `function name(params) { body }` as a
// statement, desugaring it to `var name = function name(params) {
// body};` so the interpreter only ever has one binding mechanism
// (Var) to deal with. The 'function' keyword has already been
// consumed by the caller's lookahead.
func (p *Parser) namedFunctionDecl(tok token.Token) ast.Stmt {
	name := p.expect(token.IDENTIFIER, "expected function name")
	p.expect(token.LPAREN, "expected '(' after function name")
	params := p.paramList()
	p.expect(token.RPAREN, "expected ')' after parameters")
	body := p.block()
	fn := &ast.Function{Tok: tok, Name: name.Lexeme, Params: params, Body: body}
	return &ast.Var{Tok: tok, Name: name, Init: fn}
}
