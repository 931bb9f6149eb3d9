package eval

import (
	"fmt"

	"github.com/vishalmet/ava/ast"
	"github.com/vishalmet/ava/diag"
	"github.com/vishalmet/ava/environment"
	"github.com/vishalmet/ava/function"
	"github.com/vishalmet/ava/position"
	"github.com/vishalmet/ava/values"
)

// evalFuncDef builds a closure over the current environment. A named
// definition also binds itself into that environment (so it can recurse);
// an anonymous one (used as an expression, e.g. passed to a builtin) does
// not.
func (e *Evaluator) evalFuncDef(n *ast.FuncDefNode, env *environment.Environment) *Result {
	fn := function.New(n.Name, n.Params, n.Body, env, n.AutoReturn)
	if n.Name != "" {
		env.Set(n.Name, fn)
	}
	return Success(fn)
}

// evalCall evaluates the callee and its arguments left to right, then
// dispatches on whether the callee is a user Function or a native
// Builtin (spec.md §4.3/§4.4). A RuntimeError propagating out of a
// Function call gains one traceback frame naming the call site.
func (e *Evaluator) evalCall(n *ast.CallNode, env *environment.Environment) *Result {
	calleeRes := e.Eval(n.Callee, env)
	if calleeRes.ShouldUnwind() {
		return calleeRes
	}

	args := make([]values.Value, 0, len(n.Args))
	for _, argNode := range n.Args {
		argRes := e.Eval(argNode, env)
		if argRes.ShouldUnwind() {
			return argRes
		}
		args = append(args, argRes.Value)
	}

	span := n.Span()

	if e.Trace != nil {
		e.Trace.AddEvent("call", map[string]interface{}{
			"callee": calleeRes.Value.String(),
			"args":   plainList(args),
		})
	}

	value, err := e.invoke(calleeRes.Value, args, span)

	if e.Trace != nil {
		event := map[string]interface{}{"callee": calleeRes.Value.String()}
		if err == nil {
			event["result"] = ToPlain(value)
		}
		e.Trace.AddEvent("return", event)
	}

	if err != nil {
		if rtErr, ok := err.(*diag.RuntimeError); ok {
			return Failure(rtErr)
		}
		return Failure(diag.NewRuntimeError(err.Error(), span.Start, span.End))
	}
	return Success(value)
}

// invoke dispatches a single call of fn with already-evaluated args,
// against the call site's span (used for arity-error positions and the
// traceback frame added to any RuntimeError that escapes a Function
// body). It is the single call path shared by evalCall and CallFunction
// (the latter is how values.Builtin handlers call back into ava
// closures passed to them as arguments).
func (e *Evaluator) invoke(fn values.Value, args []values.Value, span position.Span) (values.Value, error) {
	switch callee := fn.(type) {
	case *function.Function:
		return e.invokeFunction(callee, args, span)
	case *values.Builtin:
		return e.invokeBuiltin(callee, args, span)
	default:
		return nil, diag.NewRuntimeError(fn.String()+" is not callable", span.Start, span.End)
	}
}

func (e *Evaluator) invokeFunction(fn *function.Function, args []values.Value, span position.Span) (values.Value, error) {
	if len(args) != len(fn.Params) {
		name := fn.String()
		var diff int
		var word string
		if len(args) > len(fn.Params) {
			diff = len(args) - len(fn.Params)
			word = "too many"
		} else {
			diff = len(fn.Params) - len(args)
			word = "too few"
		}
		return nil, diag.NewRuntimeError(
			fmt.Sprintf("%d %s args passed into %s", diff, word, name),
			span.Start, span.End,
		)
	}

	callEnv := fn.CallEnv()
	for i, param := range fn.Params {
		callEnv.Set(param, args[i])
	}

	res := e.Eval(fn.Body, callEnv)
	if res.Err != nil {
		res.Err.AddFrame(fn.String(), span.Start)
		return nil, res.Err
	}

	if fn.AutoReturn {
		return res.Value, nil
	}
	if res.IsReturn {
		return res.Value, nil
	}
	return values.Null, nil
}

func (e *Evaluator) invokeBuiltin(b *values.Builtin, args []values.Value, span position.Span) (values.Value, error) {
	if !b.AcceptsArity(len(args)) {
		return nil, diag.NewRuntimeError(
			fmt.Sprintf("%d args passed into %s", len(args), b.String()),
			span.Start, span.End,
		)
	}
	return b.Handler(e, e.Writer, args)
}

// CallFunction implements values.Runtime, letting a Builtin handler call
// back into an ava closure it received as an argument (e.g. a
// higher-order builtin). It uses an empty span as the error position
// since there is no originating AST call site.
func (e *Evaluator) CallFunction(fn values.Value, args ...values.Value) (values.Value, error) {
	return e.invoke(fn, args, position.Span{})
}

// plainList converts already-evaluated call arguments to trace-safe plain
// values.
func plainList(args []values.Value) []interface{} {
	out := make([]interface{}, len(args))
	for i, a := range args {
		out[i] = ToPlain(a)
	}
	return out
}
