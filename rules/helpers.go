package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/JA3G3R/lintzard/types"
)

// inspect visits n and its named descendants depth-first. Returning false
// from fn skips the node's children.
func inspect(n *sitter.Node, fn func(*sitter.Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		inspect(n.NamedChild(i), fn)
	}
}

// statements returns the named children of n, comments excluded.
func statements(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c == nil || c.Type() == "comment" {
			continue
		}
		out = append(out, c)
	}
	return out
}

func firstArg(args *sitter.Node) *sitter.Node {
	if list := statements(args); len(list) > 0 {
		return list[0]
	}
	return nil
}

func sameNode(a, b *sitter.Node) bool {
	return a != nil && b != nil &&
		a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

// isLiteral reports a value fixed at parse time.
func isLiteral(n *sitter.Node) bool {
	switch n.Type() {
	case "string", "number", "true", "false", "null", "undefined", "regex":
		return true
	case "template_string":
		return !hasSubstitution(n)
	case "parenthesized_expression":
		if list := statements(n); len(list) == 1 {
			return isLiteral(list[0])
		}
	}
	return false
}

func hasSubstitution(n *sitter.Node) bool {
	for _, c := range statements(n) {
		if c.Type() == "template_substitution" {
			return true
		}
	}
	return false
}

// builtString reports a string assembled at run time: a template with
// substitutions or a concatenation involving a string.
func builtString(n *sitter.Node) bool {
	switch n.Type() {
	case "template_string":
		return hasSubstitution(n)
	case "parenthesized_expression":
		if list := statements(n); len(list) == 1 {
			return builtString(list[0])
		}
	case "binary_expression":
		op := n.ChildByFieldName("operator")
		if op == nil || op.Type() != "+" {
			return false
		}
		return stringish(n.ChildByFieldName("left")) || stringish(n.ChildByFieldName("right"))
	}
	return false
}

func stringish(n *sitter.Node) bool {
	if n == nil {
		return false
	}
	return n.Type() == "string" || n.Type() == "template_string" || builtString(n)
}

// calleeName returns "name" for a bare identifier callee and "obj.name" for
// a one-level member callee; otherwise "".
func calleeName(unit *types.SourceUnit, fn *sitter.Node) string {
	if fn == nil {
		return ""
	}
	switch fn.Type() {
	case "identifier":
		return unit.Text(fn)
	case "member_expression":
		obj, prop := fn.ChildByFieldName("object"), fn.ChildByFieldName("property")
		if obj == nil || prop == nil || obj.Type() != "identifier" {
			return ""
		}
		return unit.Text(obj) + "." + unit.Text(prop)
	case "parenthesized_expression":
		if list := statements(fn); len(list) == 1 {
			return calleeName(unit, list[0])
		}
	}
	return ""
}

// keywordNode returns the leading keyword token of a statement, falling back to n.
func keywordNode(n *sitter.Node) *sitter.Node {
	if n.ChildCount() > 0 {
		if c := n.Child(0); c != nil && !c.IsNamed() {
			return c
		}
	}
	return n
}
