package eval

import (
	"github.com/vishalmet/ava/ast"
	"github.com/vishalmet/ava/environment"
	"github.com/vishalmet/ava/values"
)

// evalFor implements `for VAR = start to end [step s] then body`. Bounds
// are evaluated once; the loop variable is rebound in the SAME
// environment before every iteration (spec.md §4.3: "bind i in the
// current environment before each iteration") rather than a fresh child
// scope per iteration — a per-iteration child scope would make `var i =
// i + 1` inside the body invisible to the loop condition, which
// contradicts spec.md §8 scenario 5's worked `while` example. Iterations
// that `continue`/`break` are excluded from the expression-form result
// list.
func (e *Evaluator) evalFor(n *ast.ForNode, env *environment.Environment) *Result {
	start := e.Eval(n.StartValue, env)
	if start.ShouldUnwind() {
		return start
	}
	end := e.Eval(n.EndValue, env)
	if end.ShouldUnwind() {
		return end
	}

	step := 1.0
	if n.StepValue != nil {
		s := e.Eval(n.StepValue, env)
		if s.ShouldUnwind() {
			return s
		}
		stepNum, ok := s.Value.(*values.Number)
		if !ok {
			span := n.Span()
			return failureAt(span, "step value must be a number")
		}
		step = stepNum.Value
	}

	startNum, ok := start.Value.(*values.Number)
	if !ok {
		span := n.Span()
		return failureAt(span, "for loop start value must be a number")
	}
	endNum, ok := end.Value.(*values.Number)
	if !ok {
		span := n.Span()
		return failureAt(span, "for loop end value must be a number")
	}

	var elements []values.Value
	i := startNum.Value
	condition := func() bool {
		if step >= 0 {
			return i < endNum.Value
		}
		return i > endNum.Value
	}

	for condition() {
		env.Set(n.VarName, values.NewNumber(i))
		i += step

		body := e.Eval(n.Body, env)
		if body.Err != nil || (body.IsReturn && !body.IsLoopSignal()) {
			return body
		}
		if body.IsContinue {
			continue
		}
		if body.IsBreak {
			break
		}
		elements = append(elements, body.Value)
	}

	if n.ReturnsUnit {
		return Success(values.Null)
	}
	return Success(values.NewList(elements))
}

// evalWhile implements `while cond then body`, re-evaluating cond each
// iteration; same return-value rules as evalFor.
func (e *Evaluator) evalWhile(n *ast.WhileNode, env *environment.Environment) *Result {
	var elements []values.Value

	for {
		cond := e.Eval(n.Cond, env)
		if cond.ShouldUnwind() {
			return cond
		}
		if !cond.Value.IsTrue() {
			break
		}

		body := e.Eval(n.Body, env)
		if body.Err != nil || (body.IsReturn && !body.IsLoopSignal()) {
			return body
		}
		if body.IsContinue {
			continue
		}
		if body.IsBreak {
			break
		}
		elements = append(elements, body.Value)
	}

	if n.ReturnsUnit {
		return Success(values.Null)
	}
	return Success(values.NewList(elements))
}
