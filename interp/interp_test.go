package interp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leafscript/leaf/diag"
	"github.com/leafscript/leaf/lexer"
	"github.com/leafscript/leaf/parser"
)

// run lexes, parses, and interprets src against a fresh Interpreter,
// returning everything it printed and any runtime error. It fails the
// test immediately if lexing or parsing reported a diagnostic, since
// these tests are about interpreter behavior, not recovery.
func run(t *testing.T, src string) (string, *RuntimeError) {
	t.Helper()
	sink := diag.NewSink()
	tokens := lexer.New(src, sink).Tokenize()
	require.False(t, sink.HasErrors(), "lexer: %v", sink.Messages())
	stmts := parser.New(tokens, sink).Parse()
	require.False(t, sink.HasErrors(), "parser: %v", sink.Messages())

	var buf bytes.Buffer
	rerr := New(&buf).Run(stmts)
	return buf.String(), rerr
}

func TestRun_ArithmeticPrecedence(t *testing.T) {
	out, rerr := run(t, "println 1 + 2 * 3 ** 2;")
	require.Nil(t, rerr)
	assert.Equal(t, "19\n", out)
}

func TestRun_ExponentIsRightAssociative(t *testing.T) {
	out, rerr := run(t, "println 2 ** 3 ** 2;")
	require.Nil(t, rerr)
	assert.Equal(t, "512\n", out)
}

func TestRun_ClosuresCaptureTheEnvironmentByReference(t *testing.T) {
	out, rerr := run(t, `
		function mk(start) {
			var n = start;
			return function() {
				n = n + 1;
				return n;
			};
		}
		var c = mk(10);
		println c();
		println c();
		println c();
	`)
	require.Nil(t, rerr)
	assert.Equal(t, "11\n12\n13\n", out)
}

func TestRun_AssigningToAConstantIsARuntimeError(t *testing.T) {
	_, rerr := run(t, "const x = 1; x = 2;")
	require.NotNil(t, rerr)
	assert.Contains(t, rerr.Error(), "RuntimeError")
	assert.Contains(t, rerr.Error(), "const")
	assert.Contains(t, rerr.Error(), "x")
}

func TestRun_StructConstructorAndMethod(t *testing.T) {
	out, rerr := run(t, `
		struct Point {
			x;
			y;
			__construct(a, b) {
				this.x = a;
				this.y = b;
			}
			sum() {
				return this.x + this.y;
			}
		};
		var p = Point(3, 4);
		println p.sum();
	`)
	require.Nil(t, rerr)
	assert.Equal(t, "7\n", out)
}

func TestRun_ContinueReEvaluatesStepBeforeLooping(t *testing.T) {
	out, rerr := run(t, `
		for var i = 0; i < 5; i = i + 1 {
			if i == 2 { continue; }
			print i;
		}
	`)
	require.Nil(t, rerr)
	assert.Equal(t, "0134", out)
}

func TestRun_UndefinedIdentifierIsARuntimeError(t *testing.T) {
	_, rerr := run(t, "println undefinedThing;")
	require.NotNil(t, rerr)
	assert.Contains(t, rerr.Error(), "undefined")
}

func TestRun_DivisionByZeroIsIEEE754NotAnError(t *testing.T) {
	out, rerr := run(t, `
		println 1 / 0;
		println -1 / 0;
		println 0 / 0;
	`)
	require.Nil(t, rerr)
	assert.Equal(t, "inf\n-inf\nnan\n", out)
}

func TestRun_ModuloTruncatesToInt64(t *testing.T) {
	out, rerr := run(t, "println 7.9 % 2.5;")
	require.Nil(t, rerr)
	assert.Equal(t, "1\n", out)
}

func TestRun_AndOrShortCircuit(t *testing.T) {
	out, rerr := run(t, `
		function sideEffect() {
			print "called";
			return true;
		}
		println false and sideEffect();
		println true or sideEffect();
	`)
	require.Nil(t, rerr)
	assert.Equal(t, "false\ntrue\n", out)
}

func TestRun_BreakOutsideLoopIsARuntimeError(t *testing.T) {
	_, rerr := run(t, "break;")
	require.NotNil(t, rerr)
	assert.Contains(t, rerr.Error(), "break")
}

func TestRun_ReturnInsideConstructorIsARuntimeError(t *testing.T) {
	_, rerr := run(t, `
		struct Bad {
			__construct() {
				return 1;
			}
		};
		Bad();
	`)
	require.NotNil(t, rerr)
	assert.Contains(t, rerr.Error(), "constructor")
}

// Inside a method body, a bare identifier call prefers a
// same-named field over the enclosing environment, per spec.md
// §4.5's Call-resolution rule — this is what makes `this.greeter =
// someFn; ... greeter();` dispatch to the field instead of a global
// function of the same name.
func TestRun_BareCallInsideMethodPrefersReceiverFieldOverEnvironment(t *testing.T) {
	out, rerr := run(t, `
		function greeter() {
			println "global";
		}
		struct Greeter {
			greeter;
			__construct(fn) { this.greeter = fn; }
			run() { greeter(); }
		};
		var g = Greeter(function() { println "field"; });
		g.run();
	`)
	require.Nil(t, rerr)
	assert.Equal(t, "field\n", out)
}
