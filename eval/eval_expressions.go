package eval

import (
	"github.com/vishalmet/ava/ast"
	"github.com/vishalmet/ava/diag"
	"github.com/vishalmet/ava/environment"
	"github.com/vishalmet/ava/values"
)

func (e *Evaluator) evalNumber(n *ast.NumberNode) *Result {
	return Success(values.NewNumber(n.Value))
}

func (e *Evaluator) evalString(n *ast.StringNode) *Result {
	return Success(values.NewString(n.Value))
}

func (e *Evaluator) evalList(n *ast.ListNode, env *environment.Environment) *Result {
	elements := make([]values.Value, 0, len(n.Elements))
	for _, elNode := range n.Elements {
		res := e.Eval(elNode, env)
		if res.ShouldUnwind() {
			return res
		}
		elements = append(elements, res.Value)
	}
	return Success(values.NewList(elements))
}

// binOpFunc implements one of values' binary operator dispatch functions.
type binOpFunc func(left, right values.Value) (values.Value, error)

var binOps = map[string]binOpFunc{
	"+":   values.AddedTo,
	"-":   values.SubbedBy,
	"*":   values.MultedBy,
	"/":   values.DivedBy,
	"^":   values.PowedBy,
	"==":  values.ComparisonEq,
	"!=":  values.ComparisonNe,
	"<":   values.ComparisonLt,
	">":   values.ComparisonGt,
	"<=":  values.ComparisonLte,
	">=":  values.ComparisonGte,
	"and": values.AndedBy,
	"or":  values.OredBy,
}

func (e *Evaluator) evalBinOp(n *ast.BinOpNode, env *environment.Environment) *Result {
	left := e.Eval(n.Left, env)
	if left.ShouldUnwind() {
		return left
	}
	right := e.Eval(n.Right, env)
	if right.ShouldUnwind() {
		return right
	}

	op, ok := binOps[n.Op]
	if !ok {
		span := n.Span()
		return Failure(diag.NewRuntimeError("unknown operator '"+n.Op+"'", span.Start, span.End))
	}

	v, err := op(left.Value, right.Value)
	if err != nil {
		span := n.Span()
		return Failure(diag.NewRuntimeError(err.Error(), span.Start, span.End))
	}
	return Success(v)
}

func (e *Evaluator) evalUnaryOp(n *ast.UnaryOpNode, env *environment.Environment) *Result {
	operand := e.Eval(n.Operand, env)
	if operand.ShouldUnwind() {
		return operand
	}

	var v values.Value
	var err error
	switch n.Op {
	case "-":
		v, err = values.Negated(operand.Value)
	case "+":
		v = operand.Value
	case "not":
		v, err = values.Notted(operand.Value)
	default:
		span := n.Span()
		return Failure(diag.NewRuntimeError("unknown unary operator '"+n.Op+"'", span.Start, span.End))
	}
	if err != nil {
		span := n.Span()
		return Failure(diag.NewRuntimeError(err.Error(), span.Start, span.End))
	}
	return Success(v)
}
