// Package lang ties the lexer, parser, and evaluator together into the
// single programmatic entry point spec.md §6 specifies, owning global
// environment construction and the re-entrant trace handle that
// `ava_exec` needs (spec.md Design Notes §9's preferred "explicit
// threading over a hidden current-trace slot" resolution).
package lang

import (
	"fmt"
	"os"

	"github.com/vishalmet/ava/ast"
	"github.com/vishalmet/ava/builtins"
	"github.com/vishalmet/ava/diag"
	"github.com/vishalmet/ava/environment"
	"github.com/vishalmet/ava/eval"
	"github.com/vishalmet/ava/lexer"
	"github.com/vishalmet/ava/parser"
	"github.com/vishalmet/ava/position"
	"github.com/vishalmet/ava/trace"
	"github.com/vishalmet/ava/values"
)

// newGlobalEnv builds a fresh global scope with ava's pre-bound
// singletons (spec.md §3: null=0, false=0, true=1, math_PI=π) and every
// registered builtin (spec.md §4.4).
func newGlobalEnv() *environment.Environment {
	env := environment.New()
	env.Set("null", values.Null)
	env.Set("false", values.False)
	env.Set("true", values.True)
	env.Set("math_PI", values.PI)
	for _, b := range builtins.Registered {
		env.Set(b.Name, b)
	}
	return env
}

// Run lexes, parses, and evaluates source, always returning a complete
// trace object (spec.md §6: "Always returns a trace even on error").
// env lets a caller supply its own global scope; pass nil to get a fresh
// one (RunFile does this for nested ava_exec runs).
func Run(fileName, source string, env *environment.Environment) *trace.Object {
	if env == nil {
		env = newGlobalEnv()
	}
	collector := trace.New(fileName, source)

	header, headerErr := builtins.ParseHeader(source)
	if headerErr == nil && header != nil {
		collector.SetHeader(header)
	}

	tokens, lexErr := lexer.New(fileName, source).Tokenize()
	if lexErr != nil {
		return finishWithError(collector, env, toDiagError(lexErr))
	}
	for _, t := range tokens {
		collector.AddToken(string(t.Kind), t.Value, t.Start, t.End)
	}

	prog, parseErr := parser.Parse(tokens)
	if parseErr != nil {
		return finishWithError(collector, env, parseErr)
	}
	collector.SetRootRepr(ast.Repr(prog))

	evaluator := eval.New()
	evaluator.Writer = &stdoutCapture{collector: collector}
	evaluator.Trace = collector
	evaluator.SetExecFile(func(path string) (*trace.Object, error) {
		return RunFile(path)
	})

	result, runErr := evaluator.Run(prog, env)
	if runErr != nil {
		return finishWithError(collector, env, runErr)
	}

	collector.Finish(plainSymbols(env), eval.ToPlain(result))
	return collector.Snapshot()
}

// RunFile reads path and runs it through Run with a fresh global
// environment, satisfying values.Runtime.ExecFile for the `ava_exec`
// builtin. The Go error return is reserved for the file not being
// readable at all; lex/parse/runtime failures are reported inside the
// returned trace's Error field per spec.md §6.
func RunFile(path string) (*trace.Object, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load script %q: %w", path, err)
	}
	return Run(path, string(source), nil), nil
}

// stdoutCapture appends every byte the evaluator's builtins write to the
// run's trace buffer (spec.md §4.5) without touching the real process
// stdout: Run always returns a complete trace object, and it's the
// caller's job to print result.Stdout (see cmd/ava's runFile). Writing
// straight to os.Stdout here as well would double-print a nested
// ava_exec run's output, once live and once when the outer ava_exec
// call echoes the nested result's Stdout.
type stdoutCapture struct {
	collector *trace.Collector
}

func (s *stdoutCapture) Write(p []byte) (int, error) {
	s.collector.AppendStdout(string(p))
	return len(p), nil
}

func plainSymbols(env *environment.Environment) map[string]interface{} {
	out := make(map[string]interface{})
	for name, v := range env.SnapshotAll() {
		out[name] = eval.ToPlain(v)
	}
	return out
}

// errorLike is implemented by diag.Error and diag.RuntimeError alike,
// letting finishWithError render either into the same trace.ErrorRecord
// shape.
type errorLike interface {
	error
	String() string
}

func finishWithError(collector *trace.Collector, env *environment.Environment, err errorLike) *trace.Object {
	name, details, start, end := errorFields(err)
	collector.SetError(&trace.ErrorRecord{
		Name:         name,
		Details:      details,
		PosStart:     trace.PosRecord(start),
		PosEnd:       trace.PosRecord(end),
		TracebackStr: err.String(),
	})
	collector.Finish(plainSymbols(env), nil)
	return collector.Snapshot()
}

func errorFields(err errorLike) (name, details string, start, end position.Position) {
	switch e := err.(type) {
	case *diag.Error:
		return e.Name, e.Details, e.Start, e.End
	case *diag.RuntimeError:
		return e.Name, e.Details, e.Start, e.End
	default:
		return "Error", err.Error(), position.Position{}, position.Position{}
	}
}

func toDiagError(lexErr *lexer.Error) *diag.Error {
	switch lexErr.Name {
	case "Expected Character":
		return diag.NewExpectedCharacter(lexErr.Details, lexErr.Start, lexErr.End)
	default:
		return diag.NewIllegalCharacter(lexErr.Details, lexErr.Start, lexErr.End)
	}
}
