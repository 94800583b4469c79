/*
Package env implements Leaf's lexical scope chain: a tree of scope
nodes, each owning a set of name-to-value bindings (tagged mutable or
immutable) plus an optional parent pointer.

Environment intentionally stores bindings as `any` rather than a
concrete value type: the runtime value representation lives in
package value, and value.Function holds a *Environment as its closure
— making env depend on value would create an import cycle. The
interpreter (package interp), which depends on both, performs the
type assertions back to value.Value at the point of use.

Grounded on the teacher's scope/scope.go (LookUp/Bind/Assign/
IsConstant chain-walking methods), with one deliberate deviation:
closures here always capture the environment node itself, never a
copy (see Function.Closure in package value and the interp call-site
that installs it) — per spec.md §4.3/§8, mutation of a captured
binding after capture must be visible through the closure, which a
snapshot copy cannot provide.
*/
package env

// binding pairs a stored value with its mutability tag.
type binding struct {
	value   any
	isConst bool
}

// Environment is one node in the scope chain. The zero value is not
// ready to use; construct with New.
type Environment struct {
	vars   map[string]binding
	parent *Environment
}

// New creates a scope whose parent is the given Environment (nil for
// the global scope).
func New(parent *Environment) *Environment {
	return &Environment{
		vars:   make(map[string]binding),
		parent: parent,
	}
}

// Parent returns the enclosing scope, or nil for the global scope.
func (e *Environment) Parent() *Environment {
	return e.parent
}

// DeclareVar binds name to value as a mutable variable in this
// scope. It reports false if name is already bound in this scope
// (by either declare_var or declare_const) — declarations never
// silently shadow a sibling binding in the same scope, though they
// may shadow a parent scope's binding.
func (e *Environment) DeclareVar(name string, value any) bool {
	if _, exists := e.vars[name]; exists {
		return false
	}
	e.vars[name] = binding{value: value, isConst: false}
	return true
}

// DeclareConst binds name to value as an immutable constant in this
// scope, with the same redeclaration rule as DeclareVar.
func (e *Environment) DeclareConst(name string, value any) bool {
	if _, exists := e.vars[name]; exists {
		return false
	}
	e.vars[name] = binding{value: value, isConst: true}
	return true
}

// Lookup walks from this scope toward the root looking for name,
// returning its value and true on success.
func (e *Environment) Lookup(name string) (any, bool) {
	for scope := e; scope != nil; scope = scope.parent {
		if b, ok := scope.vars[name]; ok {
			return b.value, true
		}
	}
	return nil, false
}

// Assign walks from this scope toward the root, updating name's
// binding in place in whichever scope declared it. It reports false
// if name is not bound anywhere in the chain, or if name was
// declared const anywhere the chain resolves it to (the assignment
// is rejected rather than silently shadowed).
func (e *Environment) Assign(name string, value any) bool {
	for scope := e; scope != nil; scope = scope.parent {
		if b, ok := scope.vars[name]; ok {
			if b.isConst {
				return false
			}
			scope.vars[name] = binding{value: value, isConst: false}
			return true
		}
	}
	return false
}

// Qualifier reports how name is bound in this scope chain: "const",
// "var", or "" if it is not bound at all. Used by the interpreter to
// produce a precise diagnostic when an assignment to a const target
// is rejected.
func (e *Environment) Qualifier(name string) string {
	for scope := e; scope != nil; scope = scope.parent {
		if b, ok := scope.vars[name]; ok {
			if b.isConst {
				return "const"
			}
			return "var"
		}
	}
	return ""
}
