// Package environment implements ava's lexically scoped binding table,
// grounded on go-mix's scope/scope.go. ava has only one binding form
// (`var`), so the const/let/type tracking go-mix's Scope carries is
// dropped — a child Environment is just a symbol table with a fallback
// to its parent.
package environment

import "github.com/vishalmet/ava/values"

// Environment is one lexical scope: a flat symbol table plus an optional
// parent to fall back to on lookup miss. Function calls each get their
// own child Environment (a nested `ava_exec` run gets a fresh root
// scope of its own); for/while loop bodies
// deliberately do NOT — they evaluate in the loop's own scope, so a
// `var i = i + 1` inside a while body is visible to the loop's condition
// on the next pass (see eval.evalWhile).
type Environment struct {
	parent *Environment
	table  map[string]values.Value
}

// New creates a root environment with no parent (the global scope).
func New() *Environment {
	return &Environment{table: make(map[string]values.Value)}
}

// NewChild creates a scope nested inside parent, used for function calls
// so bindings made inside them don't leak outward.
func NewChild(parent *Environment) *Environment {
	return &Environment{parent: parent, table: make(map[string]values.Value)}
}

// Get looks up name in this scope, then each enclosing scope in turn.
func (e *Environment) Get(name string) (values.Value, bool) {
	if v, ok := e.table[name]; ok {
		return v, true
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return nil, false
}

// Set binds name in the current scope. ava's `var` always targets the
// current scope, declaration and reassignment alike, so there is no
// separate "assign to enclosing scope" path.
func (e *Environment) Set(name string, v values.Value) {
	e.table[name] = v
}

// Remove deletes a binding from this scope only.
func (e *Environment) Remove(name string) {
	delete(e.table, name)
}

// SnapshotAll returns every name visible from this scope (including
// inherited ones, innermost shadowing outermost), used by the trace
// collector to record symbol state after a run completes.
func (e *Environment) SnapshotAll() map[string]values.Value {
	out := make(map[string]values.Value)
	var walk func(*Environment)
	walk = func(env *Environment) {
		if env == nil {
			return
		}
		walk(env.parent)
		for k, v := range env.table {
			out[k] = v
		}
	}
	walk(e)
	return out
}

// Copy returns a scope with the same parent and a duplicated table: an
// independent snapshot of this scope's own bindings. Function values do
// not use it; they capture a live reference to their defining scope.
func (e *Environment) Copy() *Environment {
	table := make(map[string]values.Value, len(e.table))
	for k, v := range e.table {
		table[k] = v
	}
	return &Environment{parent: e.parent, table: table}
}
