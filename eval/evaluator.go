// Package eval implements ava's tree-walking evaluator: a type-switch
// dispatch over ast.Node producing a Result (spec.md §4.3), grounded on
// go-mix's eval/evaluator.go (Evaluator struct shape: Writer/Reader
// fields, NewEvaluator/SetWriter/SetReader) and on
// original_source/ava_core/basic.py's Interpreter.visit (per-node-kind
// dispatch, enter_node/exit_node tracing) for exact control-flow and
// trace semantics.
package eval

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/vishalmet/ava/ast"
	"github.com/vishalmet/ava/diag"
	"github.com/vishalmet/ava/environment"
	"github.com/vishalmet/ava/trace"
	"github.com/vishalmet/ava/values"
)

// Evaluator holds everything a single evaluation pass needs: where
// builtins write/read and the trace to append events to. execFileFn is
// wired via SetExecFile by the lang package after construction so this
// package never imports lang (which would create an import cycle, since
// lang constructs an Evaluator).
type Evaluator struct {
	Writer     io.Writer
	Reader     *bufio.Reader
	Trace      *trace.Collector
	execFileFn func(path string) (*trace.Object, error)
}

// SetExecFile wires the recursive `ava_exec` entry point; the lang
// package supplies this after constructing the Evaluator, since lang
// imports eval and a direct field-to-lang reference here would cycle.
func (e *Evaluator) SetExecFile(fn func(path string) (*trace.Object, error)) {
	e.execFileFn = fn
}

// ExecFile implements values.Runtime for the `ava_exec` builtin.
func (e *Evaluator) ExecFile(path string) (*trace.Object, error) {
	if e.execFileFn == nil {
		return nil, fmt.Errorf("ava_exec is not available in this context")
	}
	return e.execFileFn(path)
}

// New creates an Evaluator wired to stdout/stdin; the caller (lang.Run)
// replaces Writer/Reader/Trace and calls SetExecFile as needed before
// evaluating.
func New() *Evaluator {
	return &Evaluator{
		Writer: os.Stdout,
		Reader: bufio.NewReader(os.Stdin),
	}
}

func (e *Evaluator) ClearScreen() {
	fmt.Fprint(e.Writer, "\033[H\033[2J")
}

func (e *Evaluator) InputReader() *bufio.Reader { return e.Reader }

// Run evaluates a full program: the top-level statement list, in order,
// absorbing any return/break/continue signal that escapes to the top
// (spec.md §9's resolved Open Question: top-level control-flow signals
// are a no-op, not an error) and yielding the value of the LAST
// statement as the program's result (spec.md §8 scenario semantics; an
// empty program yields unit).
func (e *Evaluator) Run(prog *ast.ProgramNode, env *environment.Environment) (values.Value, *diag.RuntimeError) {
	result := values.Value(values.Null)

	for _, stmt := range prog.Statements {
		res := e.Eval(stmt, env)
		if res.Err != nil {
			return nil, res.Err
		}
		switch {
		case res.IsReturn:
			result = res.Value
		case res.IsBreak, res.IsContinue:
			result = values.Null
		default:
			result = res.Value
		}
	}

	return result, nil
}

// Eval dispatches on the concrete AST node type, wrapping every visit
// with enter_node/exit_node trace events when a Trace collector is
// attached (spec.md §4.3's required event pair).
func (e *Evaluator) Eval(node ast.Node, env *environment.Environment) *Result {
	e.traceEnter(node)
	res := e.dispatch(node, env)
	e.traceExit(node, res)
	return res
}

func (e *Evaluator) dispatch(node ast.Node, env *environment.Environment) *Result {
	switch n := node.(type) {
	case *ast.NumberNode:
		return e.evalNumber(n)
	case *ast.StringNode:
		return e.evalString(n)
	case *ast.ListNode:
		return e.evalList(n, env)
	case *ast.VarAccessNode:
		return e.evalVarAccess(n, env)
	case *ast.VarAssignNode:
		return e.evalVarAssign(n, env)
	case *ast.BinOpNode:
		return e.evalBinOp(n, env)
	case *ast.UnaryOpNode:
		return e.evalUnaryOp(n, env)
	case *ast.IfNode:
		return e.evalIf(n, env)
	case *ast.ForNode:
		return e.evalFor(n, env)
	case *ast.WhileNode:
		return e.evalWhile(n, env)
	case *ast.FuncDefNode:
		return e.evalFuncDef(n, env)
	case *ast.CallNode:
		return e.evalCall(n, env)
	case *ast.ReturnNode:
		return e.evalReturn(n, env)
	case *ast.ContinueNode:
		return ContinueSignal()
	case *ast.BreakNode:
		return BreakSignal()
	default:
		span := node.Span()
		return Failure(diag.NewRuntimeError("no evaluation rule for this construct", span.Start, span.End))
	}
}

func (e *Evaluator) traceEnter(node ast.Node) {
	if e.Trace == nil || node == nil {
		return
	}
	span := node.Span()
	e.Trace.AddEvent("enter_node", map[string]interface{}{
		"node_type": nodeTypeName(node),
		"pos_start": trace.PosRecord(span.Start),
		"pos_end":   trace.PosRecord(span.End),
	})
}

func (e *Evaluator) traceExit(node ast.Node, res *Result) {
	if e.Trace == nil || node == nil {
		return
	}
	data := map[string]interface{}{
		"node_type": nodeTypeName(node),
		"result":    ToPlain(res.Value),
	}
	if res.Err != nil {
		data["error"] = map[string]interface{}{
			"name":    res.Err.Name,
			"details": res.Err.Details,
		}
	}
	e.Trace.AddEvent("exit_node", data)
}

func nodeTypeName(node ast.Node) string {
	switch node.(type) {
	case *ast.NumberNode:
		return "NumberNode"
	case *ast.StringNode:
		return "StringNode"
	case *ast.ListNode:
		return "ListNode"
	case *ast.VarAccessNode:
		return "VarAccessNode"
	case *ast.VarAssignNode:
		return "VarAssignNode"
	case *ast.BinOpNode:
		return "BinOpNode"
	case *ast.UnaryOpNode:
		return "UnaryOpNode"
	case *ast.IfNode:
		return "IfNode"
	case *ast.ForNode:
		return "ForNode"
	case *ast.WhileNode:
		return "WhileNode"
	case *ast.FuncDefNode:
		return "FuncDefNode"
	case *ast.CallNode:
		return "CallNode"
	case *ast.ReturnNode:
		return "ReturnNode"
	case *ast.ContinueNode:
		return "ContinueNode"
	case *ast.BreakNode:
		return "BreakNode"
	case *ast.ProgramNode:
		return "ProgramNode"
	default:
		return fmt.Sprintf("%T", node)
	}
}
