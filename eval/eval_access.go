package eval

import (
	"github.com/vishalmet/ava/ast"
	"github.com/vishalmet/ava/diag"
	"github.com/vishalmet/ava/environment"
)

func (e *Evaluator) evalVarAccess(n *ast.VarAccessNode, env *environment.Environment) *Result {
	v, ok := env.Get(n.Name)
	if !ok {
		span := n.Span()
		return Failure(diag.NewRuntimeError("'"+n.Name+"' is not defined", span.Start, span.End))
	}
	return Success(v)
}

// evalVarAssign implements `var NAME = expr`, binding in the CURRENT
// scope whether NAME was already bound (here or in a parent) or not —
// ava has no separate declaration/update forms (spec.md §4.3,
// Design Notes §9 resolved Open Question).
func (e *Evaluator) evalVarAssign(n *ast.VarAssignNode, env *environment.Environment) *Result {
	res := e.Eval(n.Expr, env)
	if res.ShouldUnwind() {
		return res
	}
	env.Set(n.Name, res.Value)

	if e.Trace != nil {
		e.Trace.AddEvent("var_assign", map[string]interface{}{
			"name":  n.Name,
			"value": ToPlain(res.Value),
		})
	}

	return Success(res.Value)
}
