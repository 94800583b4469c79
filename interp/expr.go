package interp

import (
	"strconv"

	"github.com/leafscript/leaf/ast"
	"github.com/leafscript/leaf/env"
	"github.com/leafscript/leaf/token"
	"github.com/leafscript/leaf/value"
)

// eval dispatches on expr's concrete type and produces its runtime
// value, or a *RuntimeError attributed to expr's line.
func (i *Interpreter) eval(expr ast.Expr) (value.Value, *RuntimeError) {
	switch n := expr.(type) {
	case *ast.Null:
		return value.NullValue(), nil
	case *ast.Primary:
		return i.evalPrimary(n)
	case *ast.Grouping:
		return i.eval(n.Inner)
	case *ast.Unary:
		return i.evalUnary(n)
	case *ast.Binary:
		return i.evalBinary(n)
	case *ast.Exponent:
		return i.evalExponent(n)
	case *ast.Ternary:
		return i.evalTernary(n)
	case *ast.Assign:
		return i.evalAssign(n)
	case *ast.Function:
		return i.evalFunctionLiteral(n), nil
	case *ast.Call:
		return i.evalCall(n)
	case *ast.Struct:
		return i.evalStructLiteral(n)
	case *ast.Get:
		return i.evalGet(n)
	case *ast.Set:
		return i.evalSet(n)
	}
	return value.Value{}, errorf(expr.Line(), "unhandled expression type %T", expr)
}

func (i *Interpreter) evalPrimary(n *ast.Primary) (value.Value, *RuntimeError) {
	switch n.Tok.Kind {
	case token.NUMBER:
		f, parseErr := strconv.ParseFloat(n.Tok.Lexeme, 64)
		if parseErr != nil {
			return value.Value{}, errorf(n.Line(), "malformed number literal '%s'", n.Tok.Lexeme)
		}
		return value.NumberValue(f), nil
	case token.STRING:
		return value.StringValue(n.Tok.Lexeme), nil
	case token.TRUE:
		return value.BoolValue(true), nil
	case token.FALSE:
		return value.BoolValue(false), nil
	case token.NULL:
		return value.NullValue(), nil
	case token.THIS:
		if i.receiver == nil {
			return value.Value{}, errorf(n.Line(), "'this' used outside a method")
		}
		return value.InstanceValue(i.receiver), nil
	case token.SUPER:
		return value.Value{}, errorf(n.Line(), "'super' is not supported: structs do not support inheritance")
	case token.IDENTIFIER:
		return i.lookup(n.Line(), n.Tok.Lexeme)
	}
	return value.Value{}, errorf(n.Line(), "unhandled primary token kind %s", n.Tok.Kind)
}

// lookup resolves name through the environment chain, translating
// the `any` package env stores into the value.Value the rest of the
// interpreter expects.
func (i *Interpreter) lookup(line int, name string) (value.Value, *RuntimeError) {
	raw, ok := i.env.Lookup(name)
	if !ok {
		return value.Value{}, errorf(line, "undefined identifier '%s'", name)
	}
	return raw.(value.Value), nil
}

func (i *Interpreter) evalUnary(n *ast.Unary) (value.Value, *RuntimeError) {
	v, err := i.eval(n.Operand)
	if err != nil {
		return value.Value{}, err
	}
	switch n.Op.Kind {
	case token.BANG:
		return value.BoolValue(!v.Truthy()), nil
	case token.MINUS:
		if v.Kind != value.Number {
			return value.Value{}, opErrorf(n.Line(), n.Op.Lexeme, "operand must be a number, got %s", v.TypeName())
		}
		return value.NumberValue(-v.Num), nil
	}
	return value.Value{}, errorf(n.Line(), "unknown unary operator '%s'", n.Op.Lexeme)
}

// evalBinary implements spec.md §4.4's operator table, except for
// 'and'/'or': DESIGN.md records the deviation that both operators
// short-circuit here (evaluating the right operand only when the
// left doesn't already determine the result), since no observable
// scenario in the source distinguishes short-circuit from eager
// evaluation and short-circuiting is the idiomatic Go reading of the
// grammar's `or: and ('or' and)*` production.
func (i *Interpreter) evalBinary(n *ast.Binary) (value.Value, *RuntimeError) {
	switch n.Op.Kind {
	case token.AND:
		l, err := i.eval(n.Left)
		if err != nil {
			return value.Value{}, err
		}
		if !l.Truthy() {
			return value.BoolValue(false), nil
		}
		r, err := i.eval(n.Right)
		if err != nil {
			return value.Value{}, err
		}
		return value.BoolValue(r.Truthy()), nil

	case token.OR:
		l, err := i.eval(n.Left)
		if err != nil {
			return value.Value{}, err
		}
		if l.Truthy() {
			return value.BoolValue(true), nil
		}
		r, err := i.eval(n.Right)
		if err != nil {
			return value.Value{}, err
		}
		return value.BoolValue(r.Truthy()), nil
	}

	l, err := i.eval(n.Left)
	if err != nil {
		return value.Value{}, err
	}
	r, err := i.eval(n.Right)
	if err != nil {
		return value.Value{}, err
	}
	op, ok := binOps[n.Op.Kind]
	if !ok {
		return value.Value{}, errorf(n.Line(), "unknown binary operator '%s'", n.Op.Lexeme)
	}
	return op(n.Line(), n.Op.Lexeme, l, r)
}

func (i *Interpreter) evalExponent(n *ast.Exponent) (value.Value, *RuntimeError) {
	l, err := i.eval(n.Left)
	if err != nil {
		return value.Value{}, err
	}
	r, err := i.eval(n.Right)
	if err != nil {
		return value.Value{}, err
	}
	return binOps[token.STARSTAR](n.Line(), n.Op.Lexeme, l, r)
}

func (i *Interpreter) evalTernary(n *ast.Ternary) (value.Value, *RuntimeError) {
	cond, err := i.eval(n.Cond)
	if err != nil {
		return value.Value{}, err
	}
	if cond.Truthy() {
		return i.eval(n.Then)
	}
	return i.eval(n.Else)
}

func (i *Interpreter) evalAssign(n *ast.Assign) (value.Value, *RuntimeError) {
	v, err := i.eval(n.Value)
	if err != nil {
		return value.Value{}, err
	}
	if !i.env.Assign(n.Target.Lexeme, v) {
		if i.env.Qualifier(n.Target.Lexeme) == "const" {
			return value.Value{}, errorf(n.Line(), "cannot assign to constant '%s'", n.Target.Lexeme)
		}
		return value.Value{}, errorf(n.Line(), "undefined variable '%s'", n.Target.Lexeme)
	}
	return v, nil
}

// evalFunctionLiteral produces a function value that captures the
// interpreter's current environment chain by reference as its
// closure, per spec.md §4.3's closure rule.
func (i *Interpreter) evalFunctionLiteral(n *ast.Function) value.Value {
	return value.FuncValue(&value.Function{
		Name:    n.Name,
		Params:  paramNames(n.Params),
		Body:    n.Body,
		Closure: i.env,
	})
}

func paramNames(toks []token.Token) []string {
	names := make([]string, len(toks))
	for idx, t := range toks {
		names[idx] = t.Lexeme
	}
	return names
}

// evalStructLiteral constructs a struct type value, binds it as a
// const under its own name in the current scope, and builds its
// method table — each method closing over the struct definition's
// environment, same as an ordinary function literal.
func (i *Interpreter) evalStructLiteral(n *ast.Struct) (value.Value, *RuntimeError) {
	methods := make(map[string]*value.Function, len(n.Methods))
	for _, m := range n.Methods {
		methods[m.Name.Lexeme] = &value.Function{
			Name:    m.Name.Lexeme,
			Params:  paramNames(m.Fn.Params),
			Body:    m.Fn.Body,
			Closure: i.env,
		}
	}
	s := &value.Struct{
		Name:    n.Name.Lexeme,
		Fields:  paramNames(n.Fields),
		Methods: methods,
	}
	sv := value.StructValue(s)
	if !i.env.DeclareConst(n.Name.Lexeme, sv) {
		return value.Value{}, errorf(n.Line(), "struct '%s' already declared in this scope", n.Name.Lexeme)
	}
	return sv, nil
}

// evalCall resolves a Call's callee, then dispatches to invoke. Per
// spec.md §4.5 Call step 1, an identifier callee checked from inside
// a method body is looked up on the receiver's fields first — this
// is what lets a method call a function stored in one of its own
// instance's fields.
func (i *Interpreter) evalCall(n *ast.Call) (value.Value, *RuntimeError) {
	var callee value.Value
	if n.IsIdentCallee() {
		name := n.NameTok.Lexeme
		found := false
		if i.inMethod && i.receiver != nil {
			if fv, ok := i.receiver.Fields[name]; ok {
				callee, found = fv, true
			}
		}
		if !found {
			v, err := i.lookup(n.Line(), name)
			if err != nil {
				return value.Value{}, err
			}
			callee = v
		}
	} else {
		v, err := i.eval(n.Sub)
		if err != nil {
			return value.Value{}, err
		}
		callee = v
	}
	return i.invoke(n.Line(), callee, n.Args)
}

// invoke evaluates argExprs left-to-right then calls callee, which
// must be a function (ordinary call) or a struct type (construction).
func (i *Interpreter) invoke(line int, callee value.Value, argExprs []ast.Expr) (value.Value, *RuntimeError) {
	args := make([]value.Value, len(argExprs))
	for idx, ae := range argExprs {
		v, err := i.eval(ae)
		if err != nil {
			return value.Value{}, err
		}
		args[idx] = v
	}

	switch callee.Kind {
	case value.StructType:
		return i.construct(line, callee.Struct, args)
	case value.Func:
		return i.invokeFunction(line, callee.Fn, args)
	default:
		return value.Value{}, errorf(line, "'%s' is not callable", callee.TypeName())
	}
}

func (i *Interpreter) invokeFunction(line int, fn *value.Function, args []value.Value) (value.Value, *RuntimeError) {
	if len(args) != len(fn.Params) {
		return value.Value{}, errorf(line, "wrong number of arguments: expected %d, got %d", len(fn.Params), len(args))
	}
	closure, _ := fn.Closure.(*env.Environment)
	callEnv := env.New(closure)
	for idx, p := range fn.Params {
		callEnv.DeclareVar(p, args[idx])
	}

	i.callCtx.push(callFunction)
	f, err := i.execBlockIn(fn.Body, callEnv)
	i.callCtx.pop()
	if err != nil {
		return value.Value{}, err
	}
	if f.kind == signalReturn {
		return f.value, nil
	}
	return value.NullValue(), nil
}

// construct runs s's constructor (a runtime error if s declares
// none) in a fresh instance's context and yields the instance, per
// spec.md §4.5 Call step 3 — never whatever the constructor body
// itself evaluates to.
func (i *Interpreter) construct(line int, s *value.Struct, args []value.Value) (value.Value, *RuntimeError) {
	ctor, ok := s.Constructor()
	if !ok {
		return value.Value{}, errorf(line, "struct '%s' has no constructor", s.Name)
	}
	if len(args) != len(ctor.Params) {
		return value.Value{}, errorf(line, "constructor for struct '%s' expects %d arguments, got %d", s.Name, len(ctor.Params), len(args))
	}

	inst := value.NewInstance(s)
	closure, _ := ctor.Closure.(*env.Environment)
	callEnv := env.New(closure)
	for idx, p := range ctor.Params {
		callEnv.DeclareVar(p, args[idx])
	}

	prevReceiver, prevInMethod := i.receiver, i.inMethod
	i.receiver, i.inMethod = inst, true
	i.callCtx.push(callConstructor)
	_, err := i.execBlockIn(ctor.Body, callEnv)
	i.callCtx.pop()
	i.receiver, i.inMethod = prevReceiver, prevInMethod
	if err != nil {
		return value.Value{}, err
	}
	return value.InstanceValue(inst), nil
}

// resolveGetTarget evaluates the left operand of a Get/Set, the same
// identifier-vs-sub-expression distinction Call makes for its callee.
func (i *Interpreter) resolveGetTarget(n *ast.Get) (value.Value, *RuntimeError) {
	if n.IsIdentTarget() {
		return i.lookup(n.Line(), n.NameTok.Lexeme)
	}
	return i.eval(n.Sub)
}

func (i *Interpreter) evalGet(n *ast.Get) (value.Value, *RuntimeError) {
	leftVal, err := i.resolveGetTarget(n)
	if err != nil {
		return value.Value{}, err
	}
	if leftVal.Kind != value.Instance {
		return value.Value{}, errorf(n.Line(), "member access on non-struct value (got %s)", leftVal.TypeName())
	}
	inst := leftVal.Instance
	name := n.Right.Lexeme

	if n.Call == nil {
		fv, ok := inst.Fields[name]
		if !ok {
			return value.Value{}, errorf(n.Line(), "instance of '%s' has no field '%s'", inst.Struct.Name, name)
		}
		return fv, nil
	}

	callee, ok := resolveMember(inst, name)
	if !ok {
		return value.Value{}, errorf(n.Line(), "instance of '%s' has no field or method '%s'", inst.Struct.Name, name)
	}

	prevReceiver, prevInMethod := i.receiver, i.inMethod
	i.receiver, i.inMethod = inst, true
	result, cerr := i.invoke(n.Call.LParen.Line, callee, n.Call.Args)
	i.receiver, i.inMethod = prevReceiver, prevInMethod
	return result, cerr
}

// resolveMember implements the field-before-method preference
// spec.md §4.5 describes for identifier lookups made during method
// dispatch: a stored function-valued field shadows a same-named
// method.
func resolveMember(inst *value.InstanceVal, name string) (value.Value, bool) {
	if fv, ok := inst.Fields[name]; ok {
		return fv, true
	}
	if fn, ok := inst.Struct.Methods[name]; ok {
		return value.FuncValue(fn), true
	}
	return value.Value{}, false
}

func (i *Interpreter) evalSet(n *ast.Set) (value.Value, *RuntimeError) {
	leftVal, err := i.resolveGetTarget(n.Target)
	if err != nil {
		return value.Value{}, err
	}
	if leftVal.Kind != value.Instance {
		return value.Value{}, errorf(n.Line(), "member access on non-struct value (got %s)", leftVal.TypeName())
	}
	inst := leftVal.Instance
	name := n.Target.Right.Lexeme
	if _, ok := inst.Fields[name]; !ok {
		return value.Value{}, errorf(n.Line(), "instance of '%s' has no field '%s'", inst.Struct.Name, name)
	}
	v, err := i.eval(n.Value)
	if err != nil {
		return value.Value{}, err
	}
	inst.Fields[name] = v
	return v, nil
}
