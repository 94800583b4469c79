package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leafscript/leaf/diag"
	"github.com/leafscript/leaf/token"
)

// kindsAndLexemes strips line numbers so test tables only assert on
// what the lexer actually decided, not where.
func kindsAndLexemes(toks []token.Token) []token.Token {
	out := make([]token.Token, len(toks))
	for i, t := range toks {
		out[i] = token.Token{Kind: t.Kind, Lexeme: t.Lexeme}
	}
	return out
}

type tokenizeCase struct {
	name     string
	input    string
	expected []token.Token
}

func TestTokenize(t *testing.T) {
	tests := []tokenizeCase{
		{
			name:  "arithmetic and punctuation",
			input: "1 + 2 * 3 ** 2;",
			expected: []token.Token{
				{Kind: token.NUMBER, Lexeme: "1"},
				{Kind: token.PLUS, Lexeme: "+"},
				{Kind: token.NUMBER, Lexeme: "2"},
				{Kind: token.STAR, Lexeme: "*"},
				{Kind: token.NUMBER, Lexeme: "3"},
				{Kind: token.STARSTAR, Lexeme: "**"},
				{Kind: token.NUMBER, Lexeme: "2"},
				{Kind: token.SEMICOLON, Lexeme: ";"},
				{Kind: token.EOF, Lexeme: ""},
			},
		},
		{
			name:  "two-character operators prefer the longer form",
			input: "== != <= >= = < > !",
			expected: []token.Token{
				{Kind: token.EQ, Lexeme: "=="},
				{Kind: token.NEQ, Lexeme: "!="},
				{Kind: token.LE, Lexeme: "<="},
				{Kind: token.GE, Lexeme: ">="},
				{Kind: token.ASSIGN, Lexeme: "="},
				{Kind: token.LT, Lexeme: "<"},
				{Kind: token.GT, Lexeme: ">"},
				{Kind: token.BANG, Lexeme: "!"},
				{Kind: token.EOF, Lexeme: ""},
			},
		},
		{
			name:  "keywords classify distinctly from identifiers",
			input: "var x = function struct if elseif else this",
			expected: []token.Token{
				{Kind: token.VAR, Lexeme: "var"},
				{Kind: token.IDENTIFIER, Lexeme: "x"},
				{Kind: token.ASSIGN, Lexeme: "="},
				{Kind: token.FUNCTION, Lexeme: "function"},
				{Kind: token.STRUCT, Lexeme: "struct"},
				{Kind: token.IF, Lexeme: "if"},
				{Kind: token.ELSEIF, Lexeme: "elseif"},
				{Kind: token.ELSE, Lexeme: "else"},
				{Kind: token.THIS, Lexeme: "this"},
				{Kind: token.EOF, Lexeme: ""},
			},
		},
		{
			name:  "trailing-dot number normalized",
			input: "3.",
			expected: []token.Token{
				{Kind: token.NUMBER, Lexeme: "3.0"},
				{Kind: token.EOF, Lexeme: ""},
			},
		},
		{
			name:  "string literal decodes escapes",
			input: `"a\tb\nc"`,
			expected: []token.Token{
				{Kind: token.STRING, Lexeme: "a\tb\nc"},
				{Kind: token.EOF, Lexeme: ""},
			},
		},
		{
			name:  "line comment consumed to end of line",
			input: "1 // a comment\n+ 2",
			expected: []token.Token{
				{Kind: token.NUMBER, Lexeme: "1"},
				{Kind: token.PLUS, Lexeme: "+"},
				{Kind: token.NUMBER, Lexeme: "2"},
				{Kind: token.EOF, Lexeme: ""},
			},
		},
		{
			name:  "unrecognized character silently dropped",
			input: "1 @ 2",
			expected: []token.Token{
				{Kind: token.NUMBER, Lexeme: "1"},
				{Kind: token.NUMBER, Lexeme: "2"},
				{Kind: token.EOF, Lexeme: ""},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sink := diag.NewSink()
			toks := New(tc.input, sink).Tokenize()
			assert.Equal(t, tc.expected, kindsAndLexemes(toks))
			assert.False(t, sink.HasErrors())
		})
	}
}

func TestTokenize_UnterminatedStringReportsDiagnostic(t *testing.T) {
	sink := diag.NewSink()
	toks := New(`"never closes`, sink).Tokenize()

	assert.True(t, sink.HasErrors())
	assert.Equal(t, []token.Token{{Kind: token.EOF, Lexeme: ""}}, kindsAndLexemes(toks))
}

func TestTokenize_StringCannotCrossNewline(t *testing.T) {
	sink := diag.NewSink()
	toks := New("\"line one\nline two\"", sink).Tokenize()

	assert.True(t, sink.HasErrors())
	assert.Equal(t, []token.Token{
		{Kind: token.IDENTIFIER, Lexeme: "line"},
		{Kind: token.IDENTIFIER, Lexeme: "two"},
		{Kind: token.EOF, Lexeme: ""},
	}, kindsAndLexemes(toks))
}

func TestTokenize_LineNumbersTrackNewlines(t *testing.T) {
	sink := diag.NewSink()
	toks := New("1\n2\n3", sink).Tokenize()

	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[1].Line)
	assert.Equal(t, 3, toks[2].Line)
}
