package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leafscript/leaf/ast"
	"github.com/leafscript/leaf/diag"
	"github.com/leafscript/leaf/lexer"
	"github.com/leafscript/leaf/token"
)

func parse(t *testing.T, src string) ([]ast.Stmt, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink()
	toks := lexer.New(src, sink).Tokenize()
	require.False(t, sink.HasErrors(), "lexer reported diagnostics: %v", sink.Messages())
	stmts := New(toks, sink).Parse()
	return stmts, sink
}

func TestParse_ExponentBindsTighterThanFactor(t *testing.T) {
	stmts, sink := parse(t, "println 1 + 2 * 3 ** 2;")
	require.False(t, sink.HasErrors())
	require.Len(t, stmts, 1)

	println, ok := stmts[0].(*ast.Println)
	require.True(t, ok)

	add, ok := println.Value.(*ast.Binary)
	require.True(t, ok)
	mul, ok := add.Right.(*ast.Binary)
	require.True(t, ok)
	_, ok = mul.Right.(*ast.Exponent)
	assert.True(t, ok, "2 * 3 ** 2 should parse with ** binding tighter than *")
}

func TestParse_TernaryIsRightAssociative(t *testing.T) {
	stmts, sink := parse(t, "println true ? 1 : false ? 2 : 3;")
	require.False(t, sink.HasErrors())
	require.Len(t, stmts, 1)

	outer, ok := stmts[0].(*ast.Println).Value.(*ast.Ternary)
	require.True(t, ok)
	_, ok = outer.Else.(*ast.Ternary)
	assert.True(t, ok, "a ? b : c ? d : e should nest the second ternary in Else")
}

func TestParse_CStyleForLiftsInitializerAndCarriesStep(t *testing.T) {
	stmts, sink := parse(t, "for var i = 0; i < 5; i = i + 1 { print i; }")
	require.False(t, sink.HasErrors())
	require.Len(t, stmts, 1)

	block, ok := stmts[0].(*ast.Block)
	require.True(t, ok, "C-style for must be wrapped in a synthetic block")
	require.Len(t, block.Stmts, 2)

	_, ok = block.Stmts[0].(*ast.Var)
	assert.True(t, ok, "first statement should be the lifted initializer")

	forNode, ok := block.Stmts[1].(*ast.For)
	require.True(t, ok)
	require.NotNil(t, forNode.StepExpr)
	require.Len(t, forNode.Body.Stmts, 2, "step expression must be appended as the body's trailing statement")
}

func TestParse_WhileStyleForHasNoStep(t *testing.T) {
	stmts, sink := parse(t, "for true { break; }")
	require.False(t, sink.HasErrors())
	require.Len(t, stmts, 1)

	forNode, ok := stmts[0].(*ast.For)
	require.True(t, ok)
	assert.Nil(t, forNode.StepExpr)
	assert.NotNil(t, forNode.Cond)
}

func TestParse_StructLiteralSeparatesFieldsAndMethods(t *testing.T) {
	stmts, sink := parse(t, `
		struct Point {
			x;
			y;
			__construct(a, b) { this.x = a; this.y = b; }
			sum() { return this.x + this.y; }
		};
	`)
	require.False(t, sink.HasErrors())
	require.Len(t, stmts, 1)

	// A struct declaration is an ordinary expression statement; the
	// interpreter binds the struct's name as a constant when it
	// evaluates the Struct expression, not the parser.
	decl, ok := stmts[0].(*ast.ExpressionStmt)
	require.True(t, ok)

	structExpr, ok := decl.Value.(*ast.Struct)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, fieldLexemes(structExpr.Fields))
	assert.Len(t, structExpr.Methods, 2)
}

func TestParse_StructExtendsIsARecoverableParseError(t *testing.T) {
	_, sink := parse(t, "struct Foo extends Bar { };")
	assert.True(t, sink.HasErrors(), "inheritance is not implemented; the parser should report a diagnostic, not panic")
}

func TestParse_ConstWithoutInitializerIsAParseError(t *testing.T) {
	_, sink := parse(t, "const x;")
	assert.True(t, sink.HasErrors())
}

func fieldLexemes(toks []token.Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Lexeme
	}
	return out
}
