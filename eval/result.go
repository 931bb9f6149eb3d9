package eval

import (
	"github.com/vishalmet/ava/diag"
	"github.com/vishalmet/ava/position"
	"github.com/vishalmet/ava/values"
)

// Result carries exactly one of {value, error, return-signal,
// break-signal, continue-signal} out of evaluating a node, per
// spec.md §4.3 — the Go re-expression of the original's RTResult, with
// Go's explicit returns replacing its mutable register()/success()
// threading.
type Result struct {
	Value      values.Value
	Err        *diag.RuntimeError
	IsReturn   bool
	IsBreak    bool
	IsContinue bool
}

func Success(v values.Value) *Result { return &Result{Value: v} }

func ReturnSignal(v values.Value) *Result { return &Result{Value: v, IsReturn: true} }

func BreakSignal() *Result { return &Result{IsBreak: true} }

func ContinueSignal() *Result { return &Result{IsContinue: true} }

func Failure(err *diag.RuntimeError) *Result { return &Result{Err: err} }

// failureAt builds a Failure Result from a plain message and a node span,
// for runtime errors raised directly by the evaluator rather than by a
// values op (which already carry their own plain error).
func failureAt(span position.Span, message string) *Result {
	return Failure(diag.NewRuntimeError(message, span.Start, span.End))
}

// ShouldUnwind reports whether evaluation of the current construct must
// stop and hand this Result to its enclosing caller unchanged, rather
// than continuing to the next statement/operand.
func (r *Result) ShouldUnwind() bool {
	return r.Err != nil || r.IsReturn || r.IsBreak || r.IsContinue
}

// IsLoopSignal reports whether r is a break or continue (but not a bare
// error or return) — used by for/while bodies to distinguish "stop the
// loop and propagate" from "stop the loop and consume the signal here".
func (r *Result) IsLoopSignal() bool {
	return r.IsBreak || r.IsContinue
}
