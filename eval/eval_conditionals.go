package eval

import (
	"github.com/vishalmet/ava/ast"
	"github.com/vishalmet/ava/environment"
	"github.com/vishalmet/ava/values"
)

// evalIf runs each case's condition in order, evaluating the body of the
// first truthy one; falls through to the else body if present, else
// yields unit. Block form (ReturnsUnit) always yields unit regardless of
// the body's value (spec.md §4.3).
func (e *Evaluator) evalIf(n *ast.IfNode, env *environment.Environment) *Result {
	for _, c := range n.Cases {
		cond := e.Eval(c.Cond, env)
		if cond.ShouldUnwind() {
			return cond
		}
		if !cond.Value.IsTrue() {
			continue
		}
		body := e.Eval(c.Body, env)
		if body.ShouldUnwind() {
			return body
		}
		if n.ReturnsUnit {
			return Success(values.Null)
		}
		return Success(body.Value)
	}

	if n.Else != nil {
		body := e.Eval(n.Else, env)
		if body.ShouldUnwind() {
			return body
		}
		if n.ReturnsUnit {
			return Success(values.Null)
		}
		return Success(body.Value)
	}

	return Success(values.Null)
}
