// Package ast defines the tagged-union AST ava's parser produces:
// one Node interface plus a concrete struct per syntactic form, matched
// by the evaluator via type switch (spec.md §9's "tagged variants
// instead of inheritance" note, grounded on the shape of go-mix's
// parser/node.go but narrowed to ava's closed grammar).
package ast

import "github.com/vishalmet/ava/position"

// Node is implemented by every AST variant. Span returns the source
// extent the node was parsed from, used for error reporting and trace
// enter_node/exit_node events.
type Node interface {
	Span() position.Span
	node()
}

type base struct {
	Start position.Position
	End   position.Position
}

func (b base) Span() position.Span { return position.Span{Start: b.Start, End: b.End} }
func (base) node()                 {}

func newBase(start, end position.Position) base { return base{Start: start, End: end} }

// NumberNode is a numeric literal.
type NumberNode struct {
	base
	Value float64
}

func NewNumberNode(value float64, start, end position.Position) *NumberNode {
	return &NumberNode{base: newBase(start, end), Value: value}
}

// StringNode is a string literal (already escape-processed by the lexer).
type StringNode struct {
	base
	Value string
}

func NewStringNode(value string, start, end position.Position) *StringNode {
	return &StringNode{base: newBase(start, end), Value: value}
}

// ListNode is a `[a, b, c]` literal.
type ListNode struct {
	base
	Elements []Node
}

func NewListNode(elements []Node, start, end position.Position) *ListNode {
	return &ListNode{base: newBase(start, end), Elements: elements}
}

// VarAccessNode reads a bound identifier.
type VarAccessNode struct {
	base
	Name string
}

func NewVarAccessNode(name string, start, end position.Position) *VarAccessNode {
	return &VarAccessNode{base: newBase(start, end), Name: name}
}

// VarAssignNode is `var NAME = expr`, used for both first binding and
// reassignment (ava has no separate declaration/update forms).
type VarAssignNode struct {
	base
	Name string
	Expr Node
}

func NewVarAssignNode(name string, expr Node, start, end position.Position) *VarAssignNode {
	return &VarAssignNode{base: newBase(start, end), Name: name, Expr: expr}
}

// BinOpNode is a binary operator application. Op is a lexer.Kind value
// for arithmetic/comparison operators, or the literal keyword text
// "and"/"or" for logical operators.
type BinOpNode struct {
	base
	Op    string
	Left  Node
	Right Node
}

func NewBinOpNode(op string, left, right Node, start, end position.Position) *BinOpNode {
	return &BinOpNode{base: newBase(start, end), Op: op, Left: left, Right: right}
}

// UnaryOpNode is a prefix operator: numeric +/- or logical `not`.
type UnaryOpNode struct {
	base
	Op      string
	Operand Node
}

func NewUnaryOpNode(op string, operand Node, start, end position.Position) *UnaryOpNode {
	return &UnaryOpNode{base: newBase(start, end), Op: op, Operand: operand}
}

// IfCase is one `if`/`elif` arm: a condition and the body to run when it
// is the first truthy condition.
type IfCase struct {
	Cond Node
	Body Node
}

// IfNode covers `if/elif/else`. ReturnsUnit is true when the construct
// was written in block form (newline after `then`/`else`, terminated by
// `end`), in which case evaluation yields unit regardless of branch value.
type IfNode struct {
	base
	Cases       []IfCase
	Else        Node
	ReturnsUnit bool
}

func NewIfNode(cases []IfCase, elseBody Node, returnsUnit bool, start, end position.Position) *IfNode {
	return &IfNode{base: newBase(start, end), Cases: cases, Else: elseBody, ReturnsUnit: returnsUnit}
}

// ForNode is `for VAR = start to end [step s] then body`.
type ForNode struct {
	base
	VarName     string
	StartValue  Node
	EndValue    Node
	StepValue   Node // nil means default step of 1
	Body        Node
	ReturnsUnit bool
}

func NewForNode(varName string, start, end, step, body Node, returnsUnit bool, spanStart, spanEnd position.Position) *ForNode {
	return &ForNode{
		base:        newBase(spanStart, spanEnd),
		VarName:     varName,
		StartValue:  start,
		EndValue:    end,
		StepValue:   step,
		Body:        body,
		ReturnsUnit: returnsUnit,
	}
}

// WhileNode is `while cond then body`.
type WhileNode struct {
	base
	Cond        Node
	Body        Node
	ReturnsUnit bool
}

func NewWhileNode(cond, body Node, returnsUnit bool, start, end position.Position) *WhileNode {
	return &WhileNode{base: newBase(start, end), Cond: cond, Body: body, ReturnsUnit: returnsUnit}
}

// FuncDefNode defines a function value. Name is empty for an anonymous
// function expression. AutoReturn is true for the single-line `->` form,
// where the body expression's value is returned implicitly.
type FuncDefNode struct {
	base
	Name       string
	Params     []string
	Body       Node
	AutoReturn bool
}

func NewFuncDefNode(name string, params []string, body Node, autoReturn bool, start, end position.Position) *FuncDefNode {
	return &FuncDefNode{base: newBase(start, end), Name: name, Params: params, Body: body, AutoReturn: autoReturn}
}

// CallNode applies Callee to Args.
type CallNode struct {
	base
	Callee Node
	Args   []Node
}

func NewCallNode(callee Node, args []Node, start, end position.Position) *CallNode {
	return &CallNode{base: newBase(start, end), Callee: callee, Args: args}
}

// ReturnNode is `return` or `return expr`; Expr is nil for the bare form.
type ReturnNode struct {
	base
	Expr Node
}

func NewReturnNode(expr Node, start, end position.Position) *ReturnNode {
	return &ReturnNode{base: newBase(start, end), Expr: expr}
}

// ContinueNode is the bare `continue` statement.
type ContinueNode struct{ base }

func NewContinueNode(start, end position.Position) *ContinueNode {
	return &ContinueNode{base: newBase(start, end)}
}

// BreakNode is the bare `break` statement.
type BreakNode struct{ base }

func NewBreakNode(start, end position.Position) *BreakNode {
	return &BreakNode{base: newBase(start, end)}
}

// ProgramNode is the parser's root: a List AST whose elements are the
// top-level statements, per spec.md §4.2.
type ProgramNode struct {
	base
	Statements []Node
}

func NewProgramNode(statements []Node, start, end position.Position) *ProgramNode {
	return &ProgramNode{base: newBase(start, end), Statements: statements}
}
