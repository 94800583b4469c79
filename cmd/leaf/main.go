/*
Command leaf is Leaf's command-line driver: with no arguments it opens
an interactive REPL, with one path argument it runs that file as a
program, and with `--help` it prints usage, per spec.md §6's External
Interfaces.

Grounded on the teacher's main/main.go (argument dispatch, colored
diagnostic/result output), stripped of the teacher's `server <port>`
TCP listener and AST-printing debug mode — both outside spec.md §6's
scope, as recorded in DESIGN.md.
*/
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/leafscript/leaf/diag"
	"github.com/leafscript/leaf/interp"
	"github.com/leafscript/leaf/lexer"
	"github.com/leafscript/leaf/parser"
	"github.com/leafscript/leaf/repl"
)

const (
	version = "0.1.0"
	banner  = "  _          __\n | |___ __ _/ _|\n | / -_) _` |  _|\n |_\\___\\__,_|_|\n"
	line    = "------------------------------------------------------------"
	prompt  = "leaf> "
)

func main() {
	args := os.Args[1:]

	switch len(args) {
	case 0:
		repl.New(banner, version, line, prompt).Start(os.Stdout)
	case 1:
		if args[0] == "--help" {
			printUsage(os.Stdout)
			os.Exit(0)
		}
		runFile(args[0])
	default:
		printUsage(os.Stderr)
		os.Exit(1)
	}
}

func printUsage(w *os.File) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  leaf             start the interactive REPL")
	fmt.Fprintln(w, "  leaf <path>      run the Leaf program at <path>")
	fmt.Fprintln(w, "  leaf --help      print this message")
}

// runFile executes the program at path, exiting 1 on a file error, a
// lexical/syntactic diagnostic, or a runtime error, and 0 otherwise —
// per spec.md §6's exit-code contract.
func runFile(path string) {
	src, err := os.ReadFile(path)
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "leaf: cannot open %q: %v\n", path, err)
		os.Exit(1)
	}

	sink := diag.NewSink()

	tokens := lexer.New(string(src), sink).Tokenize()
	if sink.HasErrors() {
		reportDiagnostics(sink)
		os.Exit(1)
	}

	stmts := parser.New(tokens, sink).Parse()
	if sink.HasErrors() {
		reportDiagnostics(sink)
		os.Exit(1)
	}

	machine := interp.New(os.Stdout)
	if rerr := machine.Run(stmts); rerr != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, rerr.Error())
		os.Exit(1)
	}
}

func reportDiagnostics(sink *diag.Sink) {
	red := color.New(color.FgRed)
	for _, msg := range sink.Messages() {
		red.Fprintln(os.Stderr, msg)
	}
}
