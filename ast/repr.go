package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Repr renders a node as a short parenthesized text summary, the Go
// equivalent of original_source/ava_core/basic.py's per-node __repr__
// methods (e.g. BinOpNode's `(left, op, right)`). Used for the trace's
// parser.root_repr field (spec.md §6), not for anything evaluated.
func Repr(node Node) string {
	switch n := node.(type) {
	case nil:
		return "<nil>"
	case *NumberNode:
		return strconv.FormatFloat(n.Value, 'g', -1, 64)
	case *StringNode:
		return strconv.Quote(n.Value)
	case *ListNode:
		return "[" + join(n.Elements) + "]"
	case *VarAccessNode:
		return n.Name
	case *VarAssignNode:
		return fmt.Sprintf("(var %s = %s)", n.Name, Repr(n.Expr))
	case *BinOpNode:
		return fmt.Sprintf("(%s, %s, %s)", Repr(n.Left), n.Op, Repr(n.Right))
	case *UnaryOpNode:
		return fmt.Sprintf("(%s, %s)", n.Op, Repr(n.Operand))
	case *IfNode:
		var sb strings.Builder
		sb.WriteString("(if")
		for _, c := range n.Cases {
			fmt.Fprintf(&sb, " %s then %s", Repr(c.Cond), Repr(c.Body))
		}
		if n.Else != nil {
			fmt.Fprintf(&sb, " else %s", Repr(n.Else))
		}
		sb.WriteString(")")
		return sb.String()
	case *ForNode:
		return fmt.Sprintf("(for %s = %s to %s then %s)", n.VarName, Repr(n.StartValue), Repr(n.EndValue), Repr(n.Body))
	case *WhileNode:
		return fmt.Sprintf("(while %s then %s)", Repr(n.Cond), Repr(n.Body))
	case *FuncDefNode:
		name := n.Name
		if name == "" {
			name = "<anonymous>"
		}
		return fmt.Sprintf("(fun %s(%s) %s)", name, strings.Join(n.Params, ", "), Repr(n.Body))
	case *CallNode:
		return fmt.Sprintf("%s(%s)", Repr(n.Callee), join(n.Args))
	case *ReturnNode:
		if n.Expr == nil {
			return "(return)"
		}
		return fmt.Sprintf("(return %s)", Repr(n.Expr))
	case *ContinueNode:
		return "(continue)"
	case *BreakNode:
		return "(break)"
	case *ProgramNode:
		return join(n.Statements)
	default:
		return fmt.Sprintf("%T", node)
	}
}

func join(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = Repr(n)
	}
	return strings.Join(parts, ", ")
}
