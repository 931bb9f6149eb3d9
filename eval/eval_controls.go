package eval

import (
	"github.com/vishalmet/ava/ast"
	"github.com/vishalmet/ava/environment"
	"github.com/vishalmet/ava/values"
)

// evalReturn implements `return [expr]`; a bare return yields unit.
// continue/break carry no expression and are handled inline by dispatch.
func (e *Evaluator) evalReturn(n *ast.ReturnNode, env *environment.Environment) *Result {
	if n.Expr == nil {
		return ReturnSignal(values.Null)
	}
	res := e.Eval(n.Expr, env)
	if res.ShouldUnwind() {
		return res
	}
	return ReturnSignal(res.Value)
}
