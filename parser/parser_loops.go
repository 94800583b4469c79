package parser

import (
	"github.com/leafscript/leaf/ast"
	"github.com/leafscript/leaf/token"
)

// countSemicolonsBeforeBrace looks ahead from the current position
// (without consuming anything) to the matching top-level '{' that
// opens the loop body, counting ';' tokens seen at paren depth zero
// along the way. It is how the parser tells a while-style for
// (`for cond { ... }`, zero semicolons) apart from a C-style one
// (`for init; cond; step { ... }`, two semicolons) without a
// backtracking parse attempt.
func (p *Parser) countSemicolonsBeforeBrace() int {
	depth := 0
	count := 0
	for i := p.pos; i < len(p.tokens); i++ {
		tok := p.tokens[i]
		switch tok.Kind {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		case token.SEMICOLON:
			if depth == 0 {
				count++
			}
		case token.LBRACE:
			if depth == 0 {
				return count
			}
		case token.EOF:
			return count
		}
	}
	return count
}

// forStmt parses all four surface forms of the loop construct the
// 'for' keyword introduces:
//
//	for { body }                   infinite loop
//	for cond { body }               while-style
//	for init; cond; step { body }   C-style
//
// The C-style form's initializer is lifted into a synthetic
// enclosing Block (so the initializer's binding is scoped to the
// loop and nothing outside it), and its step expression is both
// pushed onto stepStack (so a nested 'continue' can carry it) and
// appended as the body's final statement (so the normal fall-through
// path re-runs it too).
func (p *Parser) forStmt() ast.Stmt {
	tok := p.previous()

	if p.check(token.LBRACE) {
		p.advance()
		return &ast.For{Tok: tok, Cond: nil, Body: p.block()}
	}

	if p.countSemicolonsBeforeBrace() == 0 {
		cond := p.expression()
		p.expect(token.LBRACE, "expected '{' after for condition")
		return &ast.For{Tok: tok, Cond: cond, Body: p.block()}
	}

	return p.forCStyle(tok)
}

// forCStyle parses the C-style `for init; cond; step { body }` form;
// tok is the already-consumed 'for' token.
func (p *Parser) forCStyle(tok token.Token) ast.Stmt {
	var initStmt ast.Stmt
	if p.match(token.VAR) {
		initStmt = p.varDecl()
	} else {
		initStmt = p.expressionStatement()
	}

	cond := p.expression()
	p.expect(token.SEMICOLON, "expected ';' after for-loop condition")

	step := p.expression()
	p.expect(token.LBRACE, "expected '{' after for-loop step expression")

	p.stepStack = append(p.stepStack, step)
	body := p.block()
	p.stepStack = p.stepStack[:len(p.stepStack)-1]

	body.Stmts = append(body.Stmts, &ast.ExpressionStmt{Value: step})

	forNode := &ast.For{Tok: tok, Cond: cond, Body: body, StepExpr: step}
	return &ast.Block{LBrace: tok, Stmts: []ast.Stmt{initStmt, forNode}}
}
