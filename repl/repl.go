/*
Package repl implements Leaf's interactive Read-Eval-Print Loop. Each
line the user enters is lexed, parsed, and interpreted as a complete
program fragment sharing one interpreter (and so one global scope)
across the whole session, per spec.md §6/§9 ("the REPL treats each
input line as a complete program; multi-line constructs across
prompts are not supported").

Grounded on the teacher's repl/repl.go (Repl{Banner, Version, Prompt}
shape, readline-backed line editing, color-coded output), adapted to
Leaf's exit phrase (`exit` / `exit;` rather than `.exit`) and to
running lex→parse→interpret directly instead of delegating to an
eval.Evaluator.
*/
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/leafscript/leaf/diag"
	"github.com/leafscript/leaf/interp"
	"github.com/leafscript/leaf/lexer"
	"github.com/leafscript/leaf/parser"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// REPL holds the cosmetic configuration of an interactive session.
type REPL struct {
	Banner  string
	Version string
	Line    string
	Prompt  string
}

// New creates a REPL with the given banner, version string,
// separator line, and prompt.
func New(banner, version, line, prompt string) *REPL {
	return &REPL{Banner: banner, Version: version, Line: line, Prompt: prompt}
}

func (r *REPL) printBanner(w io.Writer) {
	blueColor.Fprintf(w, "%s\n", r.Line)
	greenColor.Fprintf(w, "%s\n", r.Banner)
	blueColor.Fprintf(w, "%s\n", r.Line)
	yellowColor.Fprintf(w, "Leaf %s\n", r.Version)
	blueColor.Fprintf(w, "%s\n", r.Line)
	cyanColor.Fprintln(w, "Type Leaf code and press enter.")
	cyanColor.Fprintln(w, "Type 'exit' or 'exit;' to quit.")
	blueColor.Fprintf(w, "%s\n", r.Line)
}

// Start runs the REPL loop until the user types exit (or exit;) or
// stdin reaches EOF. Every accepted line runs against the same
// Interpreter, so declarations made in one line are visible to the
// next.
func (r *REPL) Start(w io.Writer) {
	r.printBanner(w)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	machine := interp.New(w)

	for {
		line, err := rl.Readline()
		if err != nil {
			fmt.Fprintln(w, "Good bye!")
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "exit;" {
			fmt.Fprintln(w, "Good bye!")
			return
		}
		rl.SaveHistory(line)

		r.runFragment(w, line, machine)
	}
}

// runFragment lexes, parses, and interprets one line as a complete
// program, printing diagnostics in red and swallowing the error so
// the session keeps going — unlike file execution, the REPL never
// exits on a bad line.
func (r *REPL) runFragment(w io.Writer, line string, machine *interp.Interpreter) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(w, "RuntimeError: %v\n", recovered)
		}
	}()

	sink := diag.NewSink()
	tokens := lexer.New(line, sink).Tokenize()
	if sink.HasErrors() {
		for _, msg := range sink.Messages() {
			redColor.Fprintln(w, msg)
		}
		return
	}

	stmts := parser.New(tokens, sink).Parse()
	if sink.HasErrors() {
		for _, msg := range sink.Messages() {
			redColor.Fprintln(w, msg)
		}
		return
	}

	if rerr := machine.Run(stmts); rerr != nil {
		redColor.Fprintln(w, rerr.Error())
	}
}
