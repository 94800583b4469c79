package interp

import (
	"math"

	"github.com/leafscript/leaf/token"
	"github.com/leafscript/leaf/value"
)

// binOp evaluates a binary operator given its already-evaluated
// operands, returning a runtime error attributed to line and the
// operator's lexeme on any type mismatch.
type binOp func(line int, opLexeme string, left, right value.Value) (value.Value, *RuntimeError)

// binOps is the operator table spec.md §4.4 calls for: every binary
// operator except 'and'/'or' (handled separately in evalBinary so
// they can short-circuit, per the deviation recorded in DESIGN.md)
// dispatches through this map keyed by token kind.
var binOps = map[token.Kind]binOp{
	token.PLUS:     opAdd,
	token.MINUS:    opArith(func(a, b float64) float64 { return a - b }),
	token.STAR:     opArith(func(a, b float64) float64 { return a * b }),
	token.SLASH:    opArith(func(a, b float64) float64 { return a / b }),
	token.PERCENT:  opModulo,
	token.STARSTAR: opArith(math.Pow),
	token.EQ:       opEquals(false),
	token.NEQ:      opEquals(true),
	token.LT:       opCompare(func(a, b float64) bool { return a < b }),
	token.LE:       opCompare(func(a, b float64) bool { return a <= b }),
	token.GT:       opCompare(func(a, b float64) bool { return a > b }),
	token.GE:       opCompare(func(a, b float64) bool { return a >= b }),
}

func bothNumbers(l, r value.Value) bool { return l.Kind == value.Number && r.Kind == value.Number }

// opAdd implements '+': numeric sum, or string concatenation; any
// other operand-kind pairing is a runtime error.
func opAdd(line int, opLexeme string, l, r value.Value) (value.Value, *RuntimeError) {
	switch {
	case bothNumbers(l, r):
		return value.NumberValue(l.Num + r.Num), nil
	case l.Kind == value.String && r.Kind == value.String:
		return value.StringValue(l.Str + r.Str), nil
	default:
		return value.Value{}, opErrorf(line, opLexeme, "cannot add %s and %s", l.TypeName(), r.TypeName())
	}
}

// opArith builds a binOp for the number-only arithmetic operators
// ('-', '*', '/', '**'). Division by zero is IEEE-754 infinity/NaN,
// not a runtime error, per spec.md §4.4.
func opArith(f func(a, b float64) float64) binOp {
	return func(line int, opLexeme string, l, r value.Value) (value.Value, *RuntimeError) {
		if !bothNumbers(l, r) {
			return value.Value{}, opErrorf(line, opLexeme, "operands must be numbers, got %s and %s", l.TypeName(), r.TypeName())
		}
		return value.NumberValue(f(l.Num, r.Num)), nil
	}
}

// opModulo implements '%': spec.md §9's resolved Open Question —
// truncate both operands toward zero to a 64-bit signed integer,
// then take Go's '%' (itself a truncated/signed remainder).
func opModulo(line int, opLexeme string, l, r value.Value) (value.Value, *RuntimeError) {
	if !bothNumbers(l, r) {
		return value.Value{}, opErrorf(line, opLexeme, "operands must be numbers, got %s and %s", l.TypeName(), r.TypeName())
	}
	li, ri := int64(l.Num), int64(r.Num)
	if ri == 0 {
		return value.Value{}, opErrorf(line, opLexeme, "modulo by zero")
	}
	return value.NumberValue(float64(li % ri)), nil
}

// opCompare builds a binOp for the ordering operators, which require
// both operands to be numbers per spec.md §4.4.
func opCompare(f func(a, b float64) bool) binOp {
	return func(line int, opLexeme string, l, r value.Value) (value.Value, *RuntimeError) {
		if !bothNumbers(l, r) {
			return value.Value{}, opErrorf(line, opLexeme, "operands must be numbers, got %s and %s", l.TypeName(), r.TypeName())
		}
		return value.BoolValue(f(l.Num, r.Num)), nil
	}
}

// opEquals builds '==' (negate=false) and '!=' (negate=true).
// Operands of different runtime kinds always compare unequal; within
// a kind, numbers compare numerically, strings byte-wise, booleans by
// identity, and null always equals null.
func opEquals(negate bool) binOp {
	return func(line int, opLexeme string, l, r value.Value) (value.Value, *RuntimeError) {
		eq := valuesEqual(l, r)
		if negate {
			eq = !eq
		}
		return value.BoolValue(eq), nil
	}
}

func valuesEqual(l, r value.Value) bool {
	if l.Kind != r.Kind {
		return false
	}
	switch l.Kind {
	case value.Null:
		return true
	case value.Number:
		return l.Num == r.Num
	case value.String:
		return l.Str == r.Str
	case value.Bool:
		return l.BoolV == r.BoolV
	case value.Func:
		return l.Fn == r.Fn
	case value.StructType:
		return l.Struct == r.Struct
	case value.Instance:
		return l.Instance == r.Instance
	default:
		return false
	}
}
