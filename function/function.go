// Package function holds ava's user-defined closure value. It is kept
// separate from package values (rather than folding Function in beside
// Number/String/List) because a Function must reference
// *environment.Environment, and environment must in turn reference
// values.Value for its binding table — putting Function in values would
// create a values<->environment import cycle. go-mix keeps the same
// split between objects/objects.go and function/function.go.
package function

import (
	"fmt"

	"github.com/vishalmet/ava/ast"
	"github.com/vishalmet/ava/environment"
	"github.com/vishalmet/ava/values"
)

// Function is a closure: the AST of a user-defined function body paired
// with the environment active at its definition site (spec.md §3).
type Function struct {
	Name       string // empty for an anonymous function expression
	Params     []string
	Body       ast.Node
	Env        *environment.Environment
	AutoReturn bool
}

func New(name string, params []string, body ast.Node, env *environment.Environment, autoReturn bool) *Function {
	return &Function{Name: name, Params: params, Body: body, Env: env, AutoReturn: autoReturn}
}

func (f *Function) Kind() values.Kind { return values.FunctionKind }
func (f *Function) IsTrue() bool      { return true }

func (f *Function) displayName() string {
	if f.Name == "" {
		return "<anonymous>"
	}
	return f.Name
}

func (f *Function) String() string {
	return fmt.Sprintf("<function %s>", f.displayName())
}

func (f *Function) Inspect() string { return f.String() }

// CallEnv builds the child environment a call to f should evaluate its
// body in: a fresh scope nested inside the environment captured at
// definition time, never the caller's — this is what makes ava's
// scoping lexical rather than dynamic.
func (f *Function) CallEnv() *environment.Environment {
	return environment.NewChild(f.Env)
}
