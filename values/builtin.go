package values

import (
	"bufio"
	"fmt"
	"io"

	"github.com/vishalmet/ava/trace"
)

// Runtime is the slice of the evaluator a Builtin handler is allowed to
// call back into: invoking ava closures, reading host input, clearing
// the host screen, and recursively running another source file
// (`ava_exec`). Kept narrow so builtins can't reach into evaluator
// internals they don't need.
type Runtime interface {
	CallFunction(fn Value, args ...Value) (Value, error)
	InputReader() *bufio.Reader
	ClearScreen()
	ExecFile(path string) (*trace.Object, error)
}

// Handler is the Go function backing a Builtin. It receives the output
// writer (so `show` et al. write to the run's captured stdout buffer) and
// the already-evaluated argument list.
type Handler func(rt Runtime, writer io.Writer, args []Value) (Value, error)

// Builtin is a native callable registered into the global environment
// before a run starts (spec.md §4.4). Like Function, it is itself a first
// class Value: it can be passed around, stored in a list, etc.
type Builtin struct {
	Name    string
	MinArgs int
	MaxArgs int // -1 means unbounded
	Handler Handler
}

func (b *Builtin) Kind() Kind      { return BuiltinKind }
func (b *Builtin) IsTrue() bool    { return true }
func (b *Builtin) String() string  { return fmt.Sprintf("<built-in function %s>", b.Name) }
func (b *Builtin) Inspect() string { return b.String() }

// AcceptsArity reports whether argc falls within [MinArgs, MaxArgs].
func (b *Builtin) AcceptsArity(argc int) bool {
	if argc < b.MinArgs {
		return false
	}
	return b.MaxArgs < 0 || argc <= b.MaxArgs
}
