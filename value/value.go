/*
Package value implements Leaf's runtime value model: a closed tagged
variant covering null, number (64-bit float), boolean, string,
function, struct-type, and struct-instance, per spec.md §3.

Grounded on the teacher's objects/objects.go (GoMixObject interface
plus one concrete struct per type), objects/struct.go (GoMixStruct /
GoMixObjectInstance), and function/function.go (Function{Name,
Params, Body, Scp}). Collapsed here into a single closed struct per
spec.md §9's design note preferring a closed tagged variant over a
polymorphic interface hierarchy, and with a single Number (float64)
replacing the teacher's separate Integer/Float, per spec.md §3.
*/
package value

import "github.com/leafscript/leaf/ast"

// Kind identifies which field of a Value is meaningful.
type Kind int

const (
	Null Kind = iota
	Number
	Bool
	String
	Func
	StructType
	Instance
)

// Value is Leaf's tagged runtime value. Exactly one field other than
// Kind is meaningful at a time, selected by Kind.
type Value struct {
	Kind     Kind
	Num      float64
	BoolV    bool
	Str      string
	Fn       *Function
	Struct   *Struct
	Instance *InstanceVal
}

// NullValue is the single null value; Leaf has no distinct identity
// for nulls so every Null returns an equal Value.
func NullValue() Value { return Value{Kind: Null} }

// NumberValue wraps a float64.
func NumberValue(n float64) Value { return Value{Kind: Number, Num: n} }

// BoolValue wraps a bool.
func BoolValue(b bool) Value { return Value{Kind: Bool, BoolV: b} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{Kind: String, Str: s} }

// FuncValue wraps a *Function.
func FuncValue(fn *Function) Value { return Value{Kind: Func, Fn: fn} }

// StructValue wraps a *Struct.
func StructValue(s *Struct) Value { return Value{Kind: StructType, Struct: s} }

// InstanceValue wraps a *InstanceVal.
func InstanceValue(i *InstanceVal) Value { return Value{Kind: Instance, Instance: i} }

// TypeName returns the name used in runtime-error messages for this
// value's kind.
func (v Value) TypeName() string {
	switch v.Kind {
	case Null:
		return "null"
	case Number:
		return "number"
	case Bool:
		return "boolean"
	case String:
		return "string"
	case Func:
		return "function"
	case StructType:
		return "struct"
	case Instance:
		return "instance"
	default:
		return "unknown"
	}
}

// Truthy implements spec.md §4.5's truthiness rules: null and false
// are false; a number is truthy iff non-zero; a string is truthy iff
// non-empty; functions, structs, and instances are always truthy.
func (v Value) Truthy() bool {
	switch v.Kind {
	case Null:
		return false
	case Bool:
		return v.BoolV
	case Number:
		return v.Num != 0
	case String:
		return v.Str != ""
	default:
		return true
	}
}

// Function is a Leaf function value: a parameter-name list, a body
// block shared with the AST that produced it, and the environment
// chain that was current at the point the function literal was
// evaluated (its closure). Function values compare by identity: two
// Function values are equal iff they are the same *Function.
type Function struct {
	Name    string
	Params  []string
	Body    *ast.Block
	Closure any // always a *env.Environment; see package env's doc for why this is `any`
}

// Struct is a user-defined record type: an ordered field-name list
// (textual declaration order) and a method table keyed by name.
// There is at most one method named "__construct".
type Struct struct {
	Name    string
	Fields  []string
	Methods map[string]*Function
}

// Constructor returns this struct's "__construct" method, if any.
func (s *Struct) Constructor() (*Function, bool) {
	fn, ok := s.Methods["__construct"]
	return fn, ok
}

// InstanceVal is a struct instance: a back-pointer to its type and a
// mutable field map. Instances have reference semantics — copying a
// Value that wraps an InstanceVal copies the pointer, not the
// fields, so `a = p; a.x = 1;` is visible through p too.
type InstanceVal struct {
	Struct *Struct
	Fields map[string]Value
}

// NewInstance allocates a fresh instance of s with every field bound
// to null, per spec.md §4.5 Call step 3.
func NewInstance(s *Struct) *InstanceVal {
	fields := make(map[string]Value, len(s.Fields))
	for _, name := range s.Fields {
		fields[name] = NullValue()
	}
	return &InstanceVal{Struct: s, Fields: fields}
}
