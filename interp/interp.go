/*
Package interp implements Leaf's tree-walking interpreter: it executes
the ast.Stmt list the parser produces directly, without a separate
compilation step, tracking two ambient execution registers (block
context, call context) plus a current receiver for method dispatch,
per spec.md §4.5.

Grounded on the teacher's eval/evaluator.go (Evaluator{Scp, Writer}
state shape) and eval/eval_statements.go / eval/eval_loops.go /
eval/eval_structs.go for the statement- and loop-execution idiom, but
non-local control transfer (break/continue/return) is carried as an
explicit flow value returned alongside an explicit *RuntimeError
(spec.md §9's "typed signal, not native exceptions" note) rather than
the teacher's own approach of wrapping sentinel object types
(std.ReturnValue, std.BreakType) inside the same result value the
evaluator already uses for ordinary values.
*/
package interp

import (
	"fmt"
	"io"

	"github.com/leafscript/leaf/ast"
	"github.com/leafscript/leaf/env"
	"github.com/leafscript/leaf/value"
)

// RuntimeError is a structured runtime fault, attributed to a source
// line, that unwinds the interpreter to its caller. It is distinct
// from flow's non-local control signals (spec.md §7).
type RuntimeError struct {
	Line    int
	Op      string // operator lexeme, when the fault is operator-specific; empty otherwise
	Message string
}

func (e *RuntimeError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("RuntimeError: [Near line %d] for operator '%s' - %s", e.Line, e.Op, e.Message)
	}
	return fmt.Sprintf("RuntimeError: [Near line %d] - %s", e.Line, e.Message)
}

func errorf(line int, format string, args ...any) *RuntimeError {
	return &RuntimeError{Line: line, Message: fmt.Sprintf(format, args...)}
}

func opErrorf(line int, op string, format string, args ...any) *RuntimeError {
	return &RuntimeError{Line: line, Op: op, Message: fmt.Sprintf(format, args...)}
}

// signal identifies the kind of non-local control transfer a
// statement's execution produced, if any.
type signal int

const (
	signalNone signal = iota
	signalBreak
	signalContinue
	signalReturn
)

// flow is exec's result: either ordinary fall-through (signalNone) or
// a non-local transfer, carrying a value for signalReturn.
type flow struct {
	kind  signal
	value value.Value
}

var flowNone = flow{kind: signalNone}

// blockContext and callContext are the two ambient registers spec.md
// §4.5 names: blockContext governs whether break/continue is legal,
// callContext governs whether return is legal and whether the
// currently executing call is constructing an instance.
type blockContext int

const (
	blockNone blockContext = iota
	blockLoop
)

type callContext int

const (
	callNone callContext = iota
	callFunction
	callConstructor
)

// Interpreter walks an ast.Stmt list, threading a mutable environment
// chain and the ambient execution registers through every statement
// and expression.
type Interpreter struct {
	globals *env.Environment
	env     *env.Environment
	writer  io.Writer

	blockCtx blockContextStack
	callCtx  callContextStack

	// receiver and inMethod implement spec.md §4.5's "current receiver"
	// and "is executing method body" ambient fields: while a method is
	// dispatched through a Get, identifier lookups made directly by a
	// Call (not through another Get) prefer the receiver's fields.
	receiver *value.InstanceVal
	inMethod bool
}

// blockContextStack and callContextStack are unexported thin stacks;
// named distinctly from their element type only to keep push/pop call
// sites self-documenting at use (e.g. i.callCtx.push(callFunction)).
type blockContextStack struct{ frames []blockContext }
type callContextStack struct{ frames []callContext }

func (s *blockContextStack) push(c blockContext) { s.frames = append(s.frames, c) }
func (s *blockContextStack) pop()                { s.frames = s.frames[:len(s.frames)-1] }
func (s *blockContextStack) top() blockContext {
	if len(s.frames) == 0 {
		return blockNone
	}
	return s.frames[len(s.frames)-1]
}

func (s *callContextStack) push(c callContext) { s.frames = append(s.frames, c) }
func (s *callContextStack) pop()               { s.frames = s.frames[:len(s.frames)-1] }
func (s *callContextStack) top() callContext {
	if len(s.frames) == 0 {
		return callNone
	}
	return s.frames[len(s.frames)-1]
}

// New creates an Interpreter with a fresh global scope, writing
// Print/Println output to w.
func New(w io.Writer) *Interpreter {
	g := env.New(nil)
	return &Interpreter{globals: g, env: g, writer: w}
}

// Globals returns the interpreter's top-level scope, so a REPL driver
// can keep reusing it across successive program fragments.
func (i *Interpreter) Globals() *env.Environment { return i.globals }

// Run executes stmts in the interpreter's current (global) scope,
// stopping at the first runtime error. A stray break/continue/return
// reaching top level is itself a runtime error, per spec.md §4.5 ("…
// outside context").
func (i *Interpreter) Run(stmts []ast.Stmt) *RuntimeError {
	for _, stmt := range stmts {
		f, err := i.exec(stmt)
		if err != nil {
			return err
		}
		if f.kind != signalNone {
			return errorf(stmt.Line(), "%s used outside its context", controlName(f.kind))
		}
	}
	return nil
}

func controlName(k signal) string {
	switch k {
	case signalBreak:
		return "break"
	case signalContinue:
		return "continue"
	case signalReturn:
		return "return"
	default:
		return "control transfer"
	}
}

func (i *Interpreter) exec(stmt ast.Stmt) (flow, *RuntimeError) {
	switch n := stmt.(type) {
	case *ast.Print:
		v, err := i.eval(n.Value)
		if err != nil {
			return flowNone, err
		}
		fmt.Fprint(i.writer, formatValue(v))
		return flowNone, nil

	case *ast.Println:
		v, err := i.eval(n.Value)
		if err != nil {
			return flowNone, err
		}
		fmt.Fprintln(i.writer, formatValue(v))
		return flowNone, nil

	case *ast.ExpressionStmt:
		_, err := i.eval(n.Value)
		return flowNone, err

	case *ast.Var:
		v, err := i.eval(n.Init)
		if err != nil {
			return flowNone, err
		}
		if !i.env.DeclareVar(n.Name.Lexeme, v) {
			return flowNone, errorf(n.Line(), "variable '%s' already declared in this scope", n.Name.Lexeme)
		}
		return flowNone, nil

	case *ast.Const:
		v, err := i.eval(n.Init)
		if err != nil {
			return flowNone, err
		}
		if !i.env.DeclareConst(n.Name.Lexeme, v) {
			return flowNone, errorf(n.Line(), "constant '%s' already declared in this scope", n.Name.Lexeme)
		}
		return flowNone, nil

	case *ast.Block:
		return i.execBlockIn(n, env.New(i.env))

	case *ast.If:
		return i.execIf(n)

	case *ast.For:
		return i.execFor(n)

	case *ast.Break:
		if i.blockCtx.top() != blockLoop {
			return flowNone, errorf(n.Line(), "'break' used outside a loop")
		}
		return flow{kind: signalBreak}, nil

	case *ast.Continue:
		if i.blockCtx.top() != blockLoop {
			return flowNone, errorf(n.Line(), "'continue' used outside a loop")
		}
		return flow{kind: signalContinue}, nil

	case *ast.Return:
		switch i.callCtx.top() {
		case callConstructor:
			return flowNone, errorf(n.Line(), "'return' is not allowed inside a constructor")
		case callNone:
			return flowNone, errorf(n.Line(), "'return' used outside a function call")
		}
		if n.Value == nil {
			return flow{kind: signalReturn, value: value.NullValue()}, nil
		}
		v, err := i.eval(n.Value)
		if err != nil {
			return flowNone, err
		}
		return flow{kind: signalReturn, value: v}, nil
	}

	return flowNone, errorf(stmt.Line(), "unhandled statement type %T", stmt)
}

// execBlockIn runs block's statements inside scope, installing it as
// the interpreter's current environment for the duration and
// restoring the previous one on the way out (normal or via a
// propagated flow/error) — scope is simply dropped when no closure
// retains a reference to it, since package env has no explicit
// teardown step.
func (i *Interpreter) execBlockIn(block *ast.Block, scope *env.Environment) (flow, *RuntimeError) {
	prev := i.env
	i.env = scope
	defer func() { i.env = prev }()

	for _, stmt := range block.Stmts {
		f, err := i.exec(stmt)
		if err != nil {
			return flowNone, err
		}
		if f.kind != signalNone {
			return f, nil
		}
	}
	return flowNone, nil
}

func (i *Interpreter) execIf(n *ast.If) (flow, *RuntimeError) {
	for _, clause := range n.Clauses {
		if clause.Cond != nil {
			cond, err := i.eval(clause.Cond)
			if err != nil {
				return flowNone, err
			}
			if !cond.Truthy() {
				continue
			}
		}
		return i.execBlockIn(clause.Body, env.New(i.env))
	}
	return flowNone, nil
}

// execFor implements spec.md §4.5's For semantics. The parser has
// already lifted a C-style loop's initializer into an enclosing
// ast.Block and appended its step expression as the body's final
// statement, so this method only has three concerns left: evaluate
// the condition (if any) before each iteration, run the body in a
// fresh per-iteration scope, and on `continue` re-run the saved step
// expression before looping back to the condition check (the normal
// fall-through path already ran it as the body's last statement).
func (i *Interpreter) execFor(n *ast.For) (flow, *RuntimeError) {
	i.blockCtx.push(blockLoop)
	defer i.blockCtx.pop()

	for {
		if n.Cond != nil {
			cond, err := i.eval(n.Cond)
			if err != nil {
				return flowNone, err
			}
			if !cond.Truthy() {
				return flowNone, nil
			}
		}

		f, err := i.execBlockIn(n.Body, env.New(i.env))
		if err != nil {
			return flowNone, err
		}

		switch f.kind {
		case signalBreak:
			return flowNone, nil
		case signalReturn:
			return f, nil
		case signalContinue:
			if n.StepExpr != nil {
				if _, err := i.eval(n.StepExpr); err != nil {
					return flowNone, err
				}
			}
		}
	}
}
