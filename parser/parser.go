// Package parser turns a lexer.Token stream into an ast.Node tree,
// following the grammar and ParseResult/try-register recovery strategy
// of original_source/ava_core/basic.py's Parser/ParseResult classes,
// re-expressed with Go's explicit error returns replacing Python's
// mutable-result-object threading.
package parser

import (
	"fmt"
	"strconv"

	"github.com/vishalmet/ava/ast"
	"github.com/vishalmet/ava/diag"
	"github.com/vishalmet/ava/lexer"
)

func parseNumber(tok lexer.Token) (float64, error) {
	return strconv.ParseFloat(tok.Value, 64)
}

// Parser walks a fixed token slice with a single position cursor,
// supporting rewind for the speculative branches the grammar needs
// (optional `return expr`, statement-list continuation).
type Parser struct {
	tokens  []lexer.Token
	tokIdx  int
	current lexer.Token
}

// New creates a Parser positioned at the first token.
func New(tokens []lexer.Token) *Parser {
	p := &Parser{tokens: tokens, tokIdx: -1}
	p.advance()
	return p
}

func (p *Parser) advance() lexer.Token {
	p.tokIdx++
	p.updateCurrent()
	return p.current
}

func (p *Parser) reverse(amount int) lexer.Token {
	p.tokIdx -= amount
	p.updateCurrent()
	return p.current
}

func (p *Parser) updateCurrent() {
	if p.tokIdx >= 0 && p.tokIdx < len(p.tokens) {
		p.current = p.tokens[p.tokIdx]
	}
}

// Parse runs the parser to completion, requiring the whole token stream
// to be consumed (modulo the trailing EOF).
func Parse(tokens []lexer.Token) (*ast.ProgramNode, *diag.Error) {
	p := New(tokens)
	res := p.statements()
	if res.Err == nil && p.current.Kind != lexer.EOF {
		return nil, diag.NewInvalidSyntax("Token cannot appear after previous tokens", p.current.Start, p.current.End)
	}
	if res.Err != nil {
		return nil, res.Err
	}
	list := res.Node.(*ast.ListNode)
	span := list.Span()
	return ast.NewProgramNode(list.Elements, span.Start, span.End), nil
}

func invalidSyntax(tok lexer.Token, details string) *diag.Error {
	return diag.NewInvalidSyntax(details, tok.Start, tok.End)
}

// statements parses a NEWLINE-separated sequence of statements, tolerant
// of leading/trailing/consecutive newlines (spec.md §8 boundary cases).
func (p *Parser) statements() *Result {
	res := &Result{}
	var stmts []ast.Node
	start := p.current.Start

	for p.current.Kind == lexer.NEWLINE {
		res.RegisterAdvancement()
		p.advance()
	}

	if p.current.Kind == lexer.EOF {
		return res.Success(ast.NewListNode(nil, start, p.current.End))
	}

	stmt := res.Register(p.statement())
	if res.Err != nil {
		return res
	}
	stmts = append(stmts, stmt)

	for {
		newlineCount := 0
		for p.current.Kind == lexer.NEWLINE {
			res.RegisterAdvancement()
			p.advance()
			newlineCount++
		}
		if newlineCount == 0 {
			break
		}

		next := res.TryRegister(p.statement())
		if next == nil {
			p.reverse(res.ToReverseCount())
			break
		}
		stmts = append(stmts, next)
	}

	return res.Success(ast.NewListNode(stmts, start, p.current.End))
}

// statement handles the bare control statements (return/continue/break)
// before falling through to a plain expression.
func (p *Parser) statement() *Result {
	res := &Result{}
	start := p.current.Start

	if p.current.Matches(lexer.KEYWORD, "return") {
		res.RegisterAdvancement()
		p.advance()

		expr := res.TryRegister(p.expr())
		if expr == nil {
			p.reverse(res.ToReverseCount())
		}
		return res.Success(ast.NewReturnNode(expr, start, p.current.Start))
	}

	if p.current.Matches(lexer.KEYWORD, "continue") {
		res.RegisterAdvancement()
		p.advance()
		return res.Success(ast.NewContinueNode(start, p.current.Start))
	}

	if p.current.Matches(lexer.KEYWORD, "break") {
		res.RegisterAdvancement()
		p.advance()
		return res.Success(ast.NewBreakNode(start, p.current.Start))
	}

	expr := res.Register(p.expr())
	if res.Err != nil {
		return res.Failure(invalidSyntax(p.current,
			"Expected 'return', 'continue', 'break', 'var', 'if', 'for', 'while', 'fun', int, float, identifier, '+', '-', '(', '[' or 'not'"))
	}
	return res.Success(expr)
}

func (p *Parser) expr() *Result {
	res := &Result{}

	if p.current.Matches(lexer.KEYWORD, "var") {
		start := p.current.Start
		res.RegisterAdvancement()
		p.advance()

		if p.current.Kind != lexer.IDENT {
			return res.Failure(invalidSyntax(p.current, "Expected identifier"))
		}
		name := p.current.Value
		res.RegisterAdvancement()
		p.advance()

		if p.current.Kind != lexer.EQ {
			return res.Failure(invalidSyntax(p.current, "Expected '='"))
		}
		res.RegisterAdvancement()
		p.advance()

		value := res.Register(p.expr())
		if res.Err != nil {
			return res
		}
		return res.Success(ast.NewVarAssignNode(name, value, start, p.current.End))
	}

	node := res.Register(p.binOp(p.compExpr, []matcher{keyword("and"), keyword("or")}, nil))
	if res.Err != nil {
		return res.Failure(invalidSyntax(p.current,
			"Expected 'var', 'if', 'for', 'while', 'fun', int, float, identifier, '+', '-', '(', '[' or 'not'"))
	}
	return res.Success(node)
}

func (p *Parser) compExpr() *Result {
	res := &Result{}

	if p.current.Matches(lexer.KEYWORD, "not") {
		start := p.current.Start
		res.RegisterAdvancement()
		p.advance()

		node := res.Register(p.compExpr())
		if res.Err != nil {
			return res
		}
		return res.Success(ast.NewUnaryOpNode("not", node, start, node.Span().End))
	}

	node := res.Register(p.binOp(p.arithExpr, []matcher{
		kind(lexer.EE), kind(lexer.NE), kind(lexer.LT), kind(lexer.GT), kind(lexer.LTE), kind(lexer.GTE),
	}, nil))
	if res.Err != nil {
		return res.Failure(invalidSyntax(p.current,
			"Expected int, float, identifier, '+', '-', '(', '[', 'if', 'for', 'while', 'fun' or 'not'"))
	}
	return res.Success(node)
}

func (p *Parser) arithExpr() *Result {
	return p.binOp(p.term, []matcher{kind(lexer.PLUS), kind(lexer.MINUS)}, nil)
}

func (p *Parser) term() *Result {
	return p.binOp(p.factor, []matcher{kind(lexer.MUL), kind(lexer.DIV)}, nil)
}

func (p *Parser) factor() *Result {
	res := &Result{}
	tok := p.current

	if tok.Kind == lexer.PLUS || tok.Kind == lexer.MINUS {
		res.RegisterAdvancement()
		p.advance()
		operand := res.Register(p.factor())
		if res.Err != nil {
			return res
		}
		return res.Success(ast.NewUnaryOpNode(string(tok.Kind), operand, tok.Start, operand.Span().End))
	}

	return p.power()
}

func (p *Parser) power() *Result {
	return p.binOp(p.call, []matcher{kind(lexer.POW)}, p.factor)
}

func (p *Parser) call() *Result {
	res := &Result{}
	start := p.current.Start
	atomNode := res.Register(p.atom())
	if res.Err != nil {
		return res
	}

	if p.current.Kind != lexer.LPAREN {
		return res.Success(atomNode)
	}

	res.RegisterAdvancement()
	p.advance()

	var args []ast.Node
	if p.current.Kind == lexer.RPAREN {
		res.RegisterAdvancement()
		p.advance()
	} else {
		arg := res.Register(p.expr())
		if res.Err != nil {
			return res.Failure(invalidSyntax(p.current,
				"Expected ')', 'var', 'if', 'for', 'while', 'fun', int, float, identifier, '+', '-', '(', '[' or 'not'"))
		}
		args = append(args, arg)

		for p.current.Kind == lexer.COMMA {
			res.RegisterAdvancement()
			p.advance()
			arg := res.Register(p.expr())
			if res.Err != nil {
				return res
			}
			args = append(args, arg)
		}

		if p.current.Kind != lexer.RPAREN {
			return res.Failure(invalidSyntax(p.current, "Expected ',' or ')'"))
		}
		res.RegisterAdvancement()
		p.advance()
	}

	return res.Success(ast.NewCallNode(atomNode, args, start, p.current.End))
}

func (p *Parser) atom() *Result {
	res := &Result{}
	tok := p.current

	switch {
	case tok.Kind == lexer.INT || tok.Kind == lexer.FLOAT:
		res.RegisterAdvancement()
		p.advance()
		n, err := parseNumber(tok)
		if err != nil {
			return res.Failure(invalidSyntax(tok, err.Error()))
		}
		return res.Success(ast.NewNumberNode(n, tok.Start, tok.End))

	case tok.Kind == lexer.STRING:
		res.RegisterAdvancement()
		p.advance()
		return res.Success(ast.NewStringNode(tok.Value, tok.Start, tok.End))

	case tok.Kind == lexer.IDENT:
		res.RegisterAdvancement()
		p.advance()
		return res.Success(ast.NewVarAccessNode(tok.Value, tok.Start, tok.End))

	case tok.Kind == lexer.LPAREN:
		res.RegisterAdvancement()
		p.advance()
		expr := res.Register(p.expr())
		if res.Err != nil {
			return res
		}
		if p.current.Kind != lexer.RPAREN {
			return res.Failure(invalidSyntax(p.current, "Expected ')'"))
		}
		res.RegisterAdvancement()
		p.advance()
		return res.Success(expr)

	case tok.Kind == lexer.LSQUARE:
		return p.listExpr()

	case tok.Matches(lexer.KEYWORD, "if"):
		return p.ifExpr()

	case tok.Matches(lexer.KEYWORD, "for"):
		return p.forExpr()

	case tok.Matches(lexer.KEYWORD, "while"):
		return p.whileExpr()

	case tok.Matches(lexer.KEYWORD, "fun"):
		return p.funcDef()
	}

	return res.Failure(invalidSyntax(tok,
		"Expected int, float, identifier, '+', '-', '(', '[', 'if', 'for', 'while' or 'fun'"))
}

func (p *Parser) listExpr() *Result {
	res := &Result{}
	start := p.current.Start

	if p.current.Kind != lexer.LSQUARE {
		return res.Failure(invalidSyntax(p.current, "Expected '['"))
	}
	res.RegisterAdvancement()
	p.advance()

	var elements []ast.Node
	if p.current.Kind == lexer.RSQUARE {
		res.RegisterAdvancement()
		p.advance()
	} else {
		el := res.Register(p.expr())
		if res.Err != nil {
			return res.Failure(invalidSyntax(p.current,
				"Expected ']', 'var', 'if', 'for', 'while', 'fun', int, float, identifier, '+', '-', '(', '[' or 'not'"))
		}
		elements = append(elements, el)

		for p.current.Kind == lexer.COMMA {
			res.RegisterAdvancement()
			p.advance()
			el := res.Register(p.expr())
			if res.Err != nil {
				return res
			}
			elements = append(elements, el)
		}

		if p.current.Kind != lexer.RSQUARE {
			return res.Failure(invalidSyntax(p.current, "Expected ',' or ']'"))
		}
		res.RegisterAdvancement()
		p.advance()
	}

	return res.Success(ast.NewListNode(elements, start, p.current.End))
}

func (p *Parser) ifExpr() *Result {
	res := &Result{}
	start := p.current.Start

	cases, elseBody, returnsUnit := res.registerIfCases(p, "if")
	if res.Err != nil {
		return res
	}
	// A one-line if/elif/else may be closed by an optional `end`.
	if !returnsUnit && p.current.Matches(lexer.KEYWORD, "end") {
		res.RegisterAdvancement()
		p.advance()
	}
	return res.Success(ast.NewIfNode(cases, elseBody, returnsUnit, start, p.current.End))
}

// registerIfCases implements if_expr_cases/if_expr_b/if_expr_b_or_c/
// if_expr_c as one recursive routine: it collects the `if`/`elif` arms
// plus an optional trailing `else`, and reports whether the *outermost*
// clause (the leading `if`/`elif` it was called for) was written in block
// form.
func (r *Result) registerIfCases(p *Parser, caseKeyword string) ([]ast.IfCase, ast.Node, bool) {
	var cases []ast.IfCase
	var elseBody ast.Node

	if !p.current.Matches(lexer.KEYWORD, caseKeyword) {
		r.Failure(invalidSyntax(p.current, fmt.Sprintf("Expected '%s'", caseKeyword)))
		return nil, nil, false
	}
	r.RegisterAdvancement()
	p.advance()

	cond := r.Register(p.expr())
	if r.Err != nil {
		return nil, nil, false
	}

	if !p.current.Matches(lexer.KEYWORD, "then") {
		r.Failure(invalidSyntax(p.current, "Expected 'then'"))
		return nil, nil, false
	}
	r.RegisterAdvancement()
	p.advance()

	blockForm := false
	if p.current.Kind == lexer.NEWLINE {
		blockForm = true
		r.RegisterAdvancement()
		p.advance()

		body := r.Register(p.statements())
		if r.Err != nil {
			return nil, nil, false
		}
		cases = append(cases, ast.IfCase{Cond: cond, Body: body})

		if p.current.Matches(lexer.KEYWORD, "end") {
			r.RegisterAdvancement()
			p.advance()
		} else {
			moreCases, elseC := r.registerIfTail(p)
			if r.Err != nil {
				return nil, nil, false
			}
			cases = append(cases, moreCases...)
			elseBody = elseC
		}
	} else {
		body := r.Register(p.statement())
		if r.Err != nil {
			return nil, nil, false
		}
		cases = append(cases, ast.IfCase{Cond: cond, Body: body})

		moreCases, elseC := r.registerIfTail(p)
		if r.Err != nil {
			return nil, nil, false
		}
		cases = append(cases, moreCases...)
		elseBody = elseC
	}

	return cases, elseBody, blockForm
}

// registerIfTail parses an `elif` chain or a trailing `else`.
func (r *Result) registerIfTail(p *Parser) ([]ast.IfCase, ast.Node) {
	if p.current.Matches(lexer.KEYWORD, "elif") {
		cases, elseBody, _ := r.registerIfCases(p, "elif")
		return cases, elseBody
	}
	return nil, r.registerElse(p)
}

func (r *Result) registerElse(p *Parser) ast.Node {
	if !p.current.Matches(lexer.KEYWORD, "else") {
		return nil
	}
	r.RegisterAdvancement()
	p.advance()

	if p.current.Kind == lexer.NEWLINE {
		r.RegisterAdvancement()
		p.advance()

		body := r.Register(p.statements())
		if r.Err != nil {
			return nil
		}

		if !p.current.Matches(lexer.KEYWORD, "end") {
			r.Failure(invalidSyntax(p.current, "Expected 'end'"))
			return nil
		}
		r.RegisterAdvancement()
		p.advance()
		return body
	}

	return r.Register(p.statement())
}

func (p *Parser) forExpr() *Result {
	res := &Result{}
	start := p.current.Start

	if !p.current.Matches(lexer.KEYWORD, "for") {
		return res.Failure(invalidSyntax(p.current, "Expected 'for'"))
	}
	res.RegisterAdvancement()
	p.advance()

	if p.current.Kind != lexer.IDENT {
		return res.Failure(invalidSyntax(p.current, "Expected identifier"))
	}
	varName := p.current.Value
	res.RegisterAdvancement()
	p.advance()

	if p.current.Kind != lexer.EQ {
		return res.Failure(invalidSyntax(p.current, "Expected '='"))
	}
	res.RegisterAdvancement()
	p.advance()

	startValue := res.Register(p.expr())
	if res.Err != nil {
		return res
	}

	if !p.current.Matches(lexer.KEYWORD, "to") {
		return res.Failure(invalidSyntax(p.current, "Expected 'to'"))
	}
	res.RegisterAdvancement()
	p.advance()

	endValue := res.Register(p.expr())
	if res.Err != nil {
		return res
	}

	var stepValue ast.Node
	if p.current.Matches(lexer.KEYWORD, "step") {
		res.RegisterAdvancement()
		p.advance()
		stepValue = res.Register(p.expr())
		if res.Err != nil {
			return res
		}
	}

	if !p.current.Matches(lexer.KEYWORD, "then") {
		return res.Failure(invalidSyntax(p.current, "Expected 'then'"))
	}
	res.RegisterAdvancement()
	p.advance()

	if p.current.Kind == lexer.NEWLINE {
		res.RegisterAdvancement()
		p.advance()

		body := res.Register(p.statements())
		if res.Err != nil {
			return res
		}

		if !p.current.Matches(lexer.KEYWORD, "end") {
			return res.Failure(invalidSyntax(p.current, "Expected 'end'"))
		}
		res.RegisterAdvancement()
		p.advance()

		return res.Success(ast.NewForNode(varName, startValue, endValue, stepValue, body, true, start, p.current.End))
	}

	body := res.Register(p.statement())
	if res.Err != nil {
		return res
	}
	return res.Success(ast.NewForNode(varName, startValue, endValue, stepValue, body, false, start, p.current.End))
}

func (p *Parser) whileExpr() *Result {
	res := &Result{}
	start := p.current.Start

	if !p.current.Matches(lexer.KEYWORD, "while") {
		return res.Failure(invalidSyntax(p.current, "Expected 'while'"))
	}
	res.RegisterAdvancement()
	p.advance()

	cond := res.Register(p.expr())
	if res.Err != nil {
		return res
	}

	if !p.current.Matches(lexer.KEYWORD, "then") {
		return res.Failure(invalidSyntax(p.current, "Expected 'then'"))
	}
	res.RegisterAdvancement()
	p.advance()

	if p.current.Kind == lexer.NEWLINE {
		res.RegisterAdvancement()
		p.advance()

		body := res.Register(p.statements())
		if res.Err != nil {
			return res
		}

		if !p.current.Matches(lexer.KEYWORD, "end") {
			return res.Failure(invalidSyntax(p.current, "Expected 'end'"))
		}
		res.RegisterAdvancement()
		p.advance()

		return res.Success(ast.NewWhileNode(cond, body, true, start, p.current.End))
	}

	body := res.Register(p.statement())
	if res.Err != nil {
		return res
	}
	// A one-line while may be closed by an optional `end`.
	if p.current.Matches(lexer.KEYWORD, "end") {
		res.RegisterAdvancement()
		p.advance()
	}
	return res.Success(ast.NewWhileNode(cond, body, false, start, p.current.End))
}

func (p *Parser) funcDef() *Result {
	res := &Result{}
	start := p.current.Start

	if !p.current.Matches(lexer.KEYWORD, "fun") {
		return res.Failure(invalidSyntax(p.current, "Expected 'fun'"))
	}
	res.RegisterAdvancement()
	p.advance()

	name := ""
	if p.current.Kind == lexer.IDENT {
		name = p.current.Value
		res.RegisterAdvancement()
		p.advance()
		if p.current.Kind != lexer.LPAREN {
			return res.Failure(invalidSyntax(p.current, "Expected '('"))
		}
	} else if p.current.Kind != lexer.LPAREN {
		return res.Failure(invalidSyntax(p.current, "Expected identifier or '('"))
	}

	res.RegisterAdvancement()
	p.advance()

	var params []string
	if p.current.Kind == lexer.IDENT {
		params = append(params, p.current.Value)
		res.RegisterAdvancement()
		p.advance()

		for p.current.Kind == lexer.COMMA {
			res.RegisterAdvancement()
			p.advance()
			if p.current.Kind != lexer.IDENT {
				return res.Failure(invalidSyntax(p.current, "Expected identifier"))
			}
			params = append(params, p.current.Value)
			res.RegisterAdvancement()
			p.advance()
		}

		if p.current.Kind != lexer.RPAREN {
			return res.Failure(invalidSyntax(p.current, "Expected ',' or ')'"))
		}
	} else if p.current.Kind != lexer.RPAREN {
		return res.Failure(invalidSyntax(p.current, "Expected identifier or ')'"))
	}

	res.RegisterAdvancement()
	p.advance()

	if p.current.Kind == lexer.ARROW {
		res.RegisterAdvancement()
		p.advance()

		body := res.Register(p.expr())
		if res.Err != nil {
			return res
		}
		return res.Success(ast.NewFuncDefNode(name, params, body, true, start, p.current.End))
	}

	if p.current.Kind != lexer.NEWLINE {
		return res.Failure(invalidSyntax(p.current, "Expected '->' or newline"))
	}
	res.RegisterAdvancement()
	p.advance()

	body := res.Register(p.statements())
	if res.Err != nil {
		return res
	}

	if !p.current.Matches(lexer.KEYWORD, "end") {
		return res.Failure(invalidSyntax(p.current, "Expected 'end'"))
	}
	res.RegisterAdvancement()
	p.advance()

	return res.Success(ast.NewFuncDefNode(name, params, body, false, start, p.current.End))
}

// matcher recognizes one operator alternative in a bin_op chain: either
// a bare operator Kind (PLUS, MUL, ...) or a KEYWORD with a specific
// literal value ("and", "or").
type matcher struct {
	k     lexer.Kind
	value string
	isKw  bool
}

func kind(k lexer.Kind) matcher       { return matcher{k: k} }
func keyword(value string) matcher    { return matcher{k: lexer.KEYWORD, value: value, isKw: true} }
func (m matcher) match(t lexer.Token) bool {
	if m.isKw {
		return t.Matches(lexer.KEYWORD, m.value)
	}
	return t.Kind == m.k
}

// binOp parses left-associative `func_a (op func_b)*`, matching the
// original's generic bin_op helper.
func (p *Parser) binOp(funcA func() *Result, ops []matcher, funcB func() *Result) *Result {
	if funcB == nil {
		funcB = funcA
	}

	res := &Result{}
	left := res.Register(funcA())
	if res.Err != nil {
		return res
	}

	for matchesAny(p.current, ops) {
		op := p.current
		res.RegisterAdvancement()
		p.advance()
		right := res.Register(funcB())
		if res.Err != nil {
			return res
		}
		opText := op.Value
		if opText == "" {
			opText = string(op.Kind)
		}
		left = ast.NewBinOpNode(opText, left, right, left.Span().Start, right.Span().End)
	}

	return res.Success(left)
}

func matchesAny(t lexer.Token, ops []matcher) bool {
	for _, m := range ops {
		if m.match(t) {
			return true
		}
	}
	return false
}
