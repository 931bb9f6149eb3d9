package parser

import (
	"github.com/vishalmet/ava/ast"
	"github.com/vishalmet/ava/diag"
)

// Result accumulates a parse outcome the way the original's ParseResult
// does: a node or an error, plus the bookkeeping needed for speculative
// (try/rewind) parsing. lastAdvanceCount/advanceCount track how many
// tokens were actually consumed en route to this result so an error from
// a branch that advanced zero tokens never overrides one that advanced
// further (spec.md §4.2: "the first parse error with the deepest advance
// count wins").
type Result struct {
	Node             ast.Node
	Err              *diag.Error
	lastAdvanceCount int
	advanceCount     int
	toReverseCount   int
}

// RegisterAdvancement records that the parser consumed exactly one token.
func (r *Result) RegisterAdvancement() {
	r.lastAdvanceCount = 1
	r.advanceCount++
}

// Register folds a sub-result into r, propagating its advance count and
// any error, and returns the sub-result's node for convenient chaining.
func (r *Result) Register(other *Result) ast.Node {
	r.lastAdvanceCount = other.advanceCount
	r.advanceCount += other.advanceCount
	if other.Err != nil {
		r.Err = other.Err
	}
	return other.Node
}

// TryRegister folds in a speculative sub-result. On failure it records
// how far the sub-parse advanced (so the caller can rewind exactly that
// far) and returns nil without propagating the error.
func (r *Result) TryRegister(other *Result) ast.Node {
	if other.Err != nil {
		r.toReverseCount = other.advanceCount
		return nil
	}
	return r.Register(other)
}

// ToReverseCount returns how far the parser must rewind after a failed
// TryRegister.
func (r *Result) ToReverseCount() int { return r.toReverseCount }

func (r *Result) Success(node ast.Node) *Result {
	r.Node = node
	return r
}

// Failure sets the result's error, unless a deeper (further-advanced)
// error is already recorded — matching the original's "only overwrite if
// nothing advanced past this point yet" rule.
func (r *Result) Failure(err *diag.Error) *Result {
	if r.Err == nil || r.lastAdvanceCount == 0 {
		r.Err = err
	}
	return r
}
