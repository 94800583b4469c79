/*
Package diag implements the diagnostic sink shared by the lexer and
the parser: an append-only list of formatted messages plus a sticky
has-errors flag.

The original source keeps this as a process-global singleton; we
thread a *Sink value through the pipeline instead (lexer, then
parser, then the driver) so that two parses never share state and so
that nothing relies on untracked global mutable state, per the design
note in spec.md §9.
*/
package diag

import "fmt"

// Sink accumulates diagnostics discovered during lexing and parsing.
// Zero value is ready to use.
type Sink struct {
	messages []string
}

// NewSink returns an empty, ready-to-use diagnostic sink.
func NewSink() *Sink {
	return &Sink{}
}

// Lex records a lexical diagnostic: "Error: [At line N] after '<lexeme>' - <message>".
func (s *Sink) Lex(line int, after string, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.messages = append(s.messages, fmt.Sprintf("Error: [At line %d] after '%s' - %s", line, after, msg))
}

// Parse records a syntactic diagnostic: "ParseError: [Near line N] - <message>".
func (s *Sink) Parse(line int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.messages = append(s.messages, fmt.Sprintf("ParseError: [Near line %d] - %s", line, msg))
}

// HasErrors reports whether any diagnostic has been recorded.
func (s *Sink) HasErrors() bool {
	return len(s.messages) > 0
}

// Messages returns the recorded diagnostics in the order they were
// reported. The returned slice is owned by the caller.
func (s *Sink) Messages() []string {
	out := make([]string, len(s.messages))
	copy(out, s.messages)
	return out
}
