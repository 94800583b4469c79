package parser

import (
	"fmt"

	"github.com/leafscript/leaf/ast"
	"github.com/leafscript/leaf/token"
)

// expression is the entry point for parsing any expression; it
// starts at the loosest-binding level (assignment).
func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment implements spec.md §4.2's assign level: an identifier
// or member-access target followed by '=' and a right-associative
// assignment expression, or (falling through) a ternary expression.
// Function literals and struct literals are ordinary primaries
// reached through the fall-through chain, so they naturally satisfy
// the grammar's "assign: ... / function / ternary" alternation
// without a separate branch here.
func (p *Parser) assignment() ast.Expr {
	expr := p.ternary()

	if p.match(token.ASSIGN) {
		op := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Primary:
			if target.Tok.Kind == token.IDENTIFIER {
				return &ast.Assign{Target: target.Tok, Op: op, Value: value}
			}
		case *ast.Get:
			return &ast.Set{Target: target, Op: op, Value: value}
		}
		p.errorAt(op, "invalid assignment target")
	}
	return expr
}

// ternary implements the right-associative `cond ? then : else`.
func (p *Parser) ternary() ast.Expr {
	expr := p.or()
	if p.match(token.QUESTION) {
		qtok := p.previous()
		thenExpr := p.ternary()
		p.expect(token.COLON, "expected ':' in ternary expression")
		elseExpr := p.ternary()
		return &ast.Ternary{Cond: expr, Then: thenExpr, Else: elseExpr, QTok: qtok}
	}
	return expr
}

func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.OR) {
		op := p.previous()
		right := p.and()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.AND) {
		op := p.previous()
		right := p.equality()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.EQ, token.NEQ) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.LT, token.LE, token.GT, token.GE) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.PLUS, token.MINUS) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.STAR, token.SLASH, token.PERCENT) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// unary is the prefix level: '!' or '-' applied to another unary (so
// chains like `!!true` parse), falling through to exponent once
// there is no more prefix operator to consume.
func (p *Parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		operand := p.unary()
		return &ast.Unary{Op: op, Operand: operand}
	}
	return p.exponent()
}

// exponent is the right-associative '**' level. The right operand is
// parsed at the unary level (so `2 ** -3` parses), which falls
// through to another exponent() call when there is no prefix
// operator, which is what makes `2 ** 3 ** 2` associate as
// `2 ** (3 ** 2)`.
func (p *Parser) exponent() ast.Expr {
	left := p.primary()
	if p.match(token.STARSTAR) {
		op := p.previous()
		right := p.unary()
		return &ast.Exponent{Left: left, Op: op, Right: right}
	}
	return left
}

// primary parses a literal, identifier, grouping, function literal,
// or struct literal. Literals, identifiers and groupings are threaded
// through postfix to absorb any trailing call/member-access chain;
// function and struct literals are returned as they are.
func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.NUMBER, token.STRING, token.TRUE, token.FALSE, token.NULL, token.THIS, token.SUPER):
		return p.postfix(&ast.Primary{Tok: p.previous()})

	case p.match(token.IDENTIFIER):
		return p.postfix(&ast.Primary{Tok: p.previous()})

	case p.match(token.LPAREN):
		lparen := p.previous()
		inner := p.expression()
		p.expect(token.RPAREN, "expected ')' after expression")
		return p.postfix(&ast.Grouping{LParen: lparen, Inner: inner})

	case p.match(token.FUNCTION):
		return p.functionLiteral()

	case p.match(token.STRUCT):
		return p.structLiteral()
	}

	p.errorAt(p.current(), fmt.Sprintf("expected expression, found '%s'", p.current().Lexeme))
	panic(parseError{}) // unreachable
}

// postfix absorbs a chain of `(args)` calls and `.name` (optionally
// immediately called) member accesses onto base, in the order they
// appear in source.
func (p *Parser) postfix(base ast.Expr) ast.Expr {
	expr := base
	for {
		switch {
		case p.match(token.LPAREN):
			lparen := p.previous()
			args := p.argumentList()
			p.expect(token.RPAREN, "expected ')' after arguments")
			expr = p.makeCall(expr, lparen, args)

		case p.match(token.DOT):
			dot := p.previous()
			name := p.expect(token.IDENTIFIER, "expected property name after '.'")
			get := p.makeGet(expr, dot, name)
			if p.match(token.LPAREN) {
				lparen := p.previous()
				args := p.argumentList()
				p.expect(token.RPAREN, "expected ')' after arguments")
				get.Call = &ast.CallTail{LParen: lparen, Args: args}
			}
			expr = get

		default:
			return expr
		}
	}
}

// makeCall builds a Call node, preferring to carry the callee as a
// bare identifier token (rather than wrapping it in a Sub
// expression) when the callee is a plain name — this is what lets
// the interpreter prefer an instance's own fields over the
// environment when resolving a call made from inside a method body
// (spec.md §4.5 Call step 1).
func (p *Parser) makeCall(callee ast.Expr, lparen token.Token, args []ast.Expr) *ast.Call {
	if prim, ok := callee.(*ast.Primary); ok && prim.Tok.Kind == token.IDENTIFIER {
		return &ast.Call{NameTok: prim.Tok, LParen: lparen, Args: args}
	}
	return &ast.Call{Sub: callee, LParen: lparen, Args: args}
}

// makeGet mirrors makeCall's identifier-vs-expression distinction
// for the left-hand side of a member access.
func (p *Parser) makeGet(left ast.Expr, dot, right token.Token) *ast.Get {
	if prim, ok := left.(*ast.Primary); ok && prim.Tok.Kind == token.IDENTIFIER {
		return &ast.Get{NameTok: prim.Tok, Dot: dot, Right: right}
	}
	return &ast.Get{Sub: left, Dot: dot, Right: right}
}

// argumentList parses a comma-separated expression list up to (but
// not including) the closing ')'.
func (p *Parser) argumentList() []ast.Expr {
	var args []ast.Expr
	if !p.check(token.RPAREN) {
		for {
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	return args
}
