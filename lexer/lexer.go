/*
Package lexer implements Leaf's single-pass, one-character-lookahead
scanner: it turns a source string into a token.Token sequence
terminated by exactly one EOF token, reporting lexical diagnostics
(malformed strings, and nothing else — unrecognized characters are
silently dropped, per spec.md §4.1) to a diag.Sink.

Grounded on the teacher's lexer/lexer.go (Lexer{Src, Current,
Position, Line} state-machine shape, Advance/Peek helpers) and
lexer/lexer_utils.go (character-classification helpers), adapted to
spec.md §4.1's exact rules: `**` as its own token, escape decoding,
and the specific diagnostics for strings that cross a newline or
never close.
*/
package lexer

import (
	"strings"

	"github.com/leafscript/leaf/diag"
	"github.com/leafscript/leaf/token"
)

// Lexer scans Src one byte at a time, tracking the current line for
// diagnostics and token positions.
type Lexer struct {
	src     string
	pos     int // index of the next unread byte
	line    int
	current byte // lex.src[lex.pos-1], 0 at EOF
	sink    *diag.Sink
}

// New creates a Lexer over src that reports diagnostics to sink.
func New(src string, sink *diag.Sink) *Lexer {
	lex := &Lexer{src: src, line: 1, sink: sink}
	lex.advance()
	return lex
}

// advance consumes and returns the current byte, loading the next
// one (0 at end of input).
func (lex *Lexer) advance() byte {
	c := lex.current
	if lex.pos < len(lex.src) {
		lex.current = lex.src[lex.pos]
		lex.pos++
	} else {
		lex.current = 0
		if lex.pos <= len(lex.src) {
			lex.pos++
		}
	}
	return c
}

// peek returns the current unconsumed byte without advancing.
func (lex *Lexer) peek() byte {
	return lex.current
}

// peekNext returns the byte after current without advancing.
func (lex *Lexer) peekNext() byte {
	if lex.pos < len(lex.src) {
		return lex.src[lex.pos]
	}
	return 0
}

// atEnd reports whether the lexer has consumed the whole source.
func (lex *Lexer) atEnd() bool {
	return lex.pos > len(lex.src)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNumeric(c byte) bool { return isAlpha(c) || isDigit(c) }

// skipWhitespaceAndComments consumes spaces, tabs, carriage returns,
// newlines (bumping the line counter), and `//` line comments.
func (lex *Lexer) skipWhitespaceAndComments() {
	for {
		switch lex.peek() {
		case ' ', '\t', '\r':
			lex.advance()
		case '\n':
			lex.line++
			lex.advance()
		case '/':
			if lex.peekNext() == '/' {
				for lex.peek() != '\n' && !lex.atEnd() {
					lex.advance()
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

// Tokenize runs the lexer to completion, returning every token in
// source order followed by exactly one EOF token.
func (lex *Lexer) Tokenize() []token.Token {
	var out []token.Token
	for {
		tok := lex.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// Next scans and returns the next token, skipping whitespace and
// comments first. An unrecognized character is consumed and no
// token is emitted for it; the scan continues to find the next real
// token (the parser will discover the resulting syntax gap).
func (lex *Lexer) Next() token.Token {
	for {
		lex.skipWhitespaceAndComments()
		if lex.atEnd() {
			return token.Token{Kind: token.EOF, Lexeme: "", Line: lex.line}
		}

		startLine := lex.line
		c := lex.advance()

		switch {
		case isDigit(c):
			return lex.number(c, startLine)
		case isAlpha(c):
			return lex.identifier(c, startLine)
		case c == '"':
			if tok, ok := lex.string(startLine); ok {
				return tok
			}
			continue // malformed string: diagnostic already recorded, resume scanning
		}

		if tok, ok := lex.operator(c, startLine); ok {
			return tok
		}
		// Unrecognized character: silently dropped per spec.md §4.1.
	}
}

// operator recognizes a single- or two-character operator or
// punctuation token starting with c. Two-character forms (==, !=,
// <=, >=, **) are preferred over their single-character prefixes.
func (lex *Lexer) operator(c byte, line int) (token.Token, bool) {
	mk := func(k token.Kind, lexeme string) (token.Token, bool) {
		return token.Token{Kind: k, Lexeme: lexeme, Line: line}, true
	}
	switch c {
	case '+':
		return mk(token.PLUS, "+")
	case '-':
		return mk(token.MINUS, "-")
	case '*':
		if lex.peek() == '*' {
			lex.advance()
			return mk(token.STARSTAR, "**")
		}
		return mk(token.STAR, "*")
	case '/':
		return mk(token.SLASH, "/")
	case '%':
		return mk(token.PERCENT, "%")
	case '=':
		if lex.peek() == '=' {
			lex.advance()
			return mk(token.EQ, "==")
		}
		return mk(token.ASSIGN, "=")
	case '!':
		if lex.peek() == '=' {
			lex.advance()
			return mk(token.NEQ, "!=")
		}
		return mk(token.BANG, "!")
	case '<':
		if lex.peek() == '=' {
			lex.advance()
			return mk(token.LE, "<=")
		}
		return mk(token.LT, "<")
	case '>':
		if lex.peek() == '=' {
			lex.advance()
			return mk(token.GE, ">=")
		}
		return mk(token.GT, ">")
	case '(':
		return mk(token.LPAREN, "(")
	case ')':
		return mk(token.RPAREN, ")")
	case '{':
		return mk(token.LBRACE, "{")
	case '}':
		return mk(token.RBRACE, "}")
	case ';':
		return mk(token.SEMICOLON, ";")
	case ',':
		return mk(token.COMMA, ",")
	case '?':
		return mk(token.QUESTION, "?")
	case ':':
		return mk(token.COLON, ":")
	case '.':
		return mk(token.DOT, ".")
	}
	return token.Token{}, false
}

// number scans a numeric literal: one or more decimal digits,
// optionally followed by '.' and more digits. A trailing '.' is
// normalized by appending "0" (leading-dot numbers are not
// supported, per spec.md §4.1).
func (lex *Lexer) number(first byte, line int) token.Token {
	var b strings.Builder
	b.WriteByte(first)
	for isDigit(lex.peek()) {
		b.WriteByte(lex.advance())
	}
	if lex.peek() == '.' {
		b.WriteByte(lex.advance())
		if !isDigit(lex.peek()) {
			b.WriteString("0")
		}
		for isDigit(lex.peek()) {
			b.WriteByte(lex.advance())
		}
	}
	return token.Token{Kind: token.NUMBER, Lexeme: b.String(), Line: line}
}

// identifier scans `[A-Za-z_][A-Za-z0-9_]*` and classifies the
// result as a keyword token if it matches one, else as IDENTIFIER.
func (lex *Lexer) identifier(first byte, line int) token.Token {
	var b strings.Builder
	b.WriteByte(first)
	for isAlphaNumeric(lex.peek()) {
		b.WriteByte(lex.advance())
	}
	name := b.String()
	if kind, ok := token.Keywords[name]; ok {
		return token.Token{Kind: kind, Lexeme: name, Line: line}
	}
	return token.Token{Kind: token.IDENTIFIER, Lexeme: name, Line: line}
}

// string scans the remainder of a string literal after the opening
// '"' has been consumed, decoding \t \n \r \\ \" escapes (any other
// escaped character is passed through unchanged). A newline inside
// the literal or EOF before the closing '"' is a lexical diagnostic;
// the second return value is false in that case.
func (lex *Lexer) string(startLine int) (token.Token, bool) {
	var b strings.Builder
	for {
		if lex.atEnd() {
			lex.sink.Lex(startLine, "\"", "string starts but never ends")
			return token.Token{}, false
		}
		c := lex.peek()
		if c == '"' {
			lex.advance()
			return token.Token{Kind: token.STRING, Lexeme: b.String(), Line: startLine}, true
		}
		if c == '\n' {
			lex.sink.Lex(startLine, "\"", "string cannot traverse multiple lines")
			return token.Token{}, false
		}
		lex.advance()
		if c == '\\' {
			esc := lex.peek()
			switch esc {
			case 't':
				b.WriteByte('\t')
				lex.advance()
			case 'n':
				b.WriteByte('\n')
				lex.advance()
			case 'r':
				b.WriteByte('\r')
				lex.advance()
			case '\\':
				b.WriteByte('\\')
				lex.advance()
			case '"':
				b.WriteByte('"')
				lex.advance()
			default:
				b.WriteByte(c) // pass through: keep the backslash itself
			}
			continue
		}
		b.WriteByte(c)
	}
}
