package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/JA3G3R/lintzard/types"
)

// unnecessaryParentheses flags parentheses around a single primary
// expression. Parentheses the grammar requires are not reported.
type unnecessaryParentheses struct{ base }

func newUnnecessaryParentheses(desc types.RuleDescriptor, _ Options) (Rule, error) {
	return &unnecessaryParentheses{base{desc}}, nil
}

func (r *unnecessaryParentheses) Check(unit *types.SourceUnit) []types.Finding {
	var out []types.Finding
	inspect(unit.Root(), func(n *sitter.Node) bool {
		if n.Type() != "parenthesized_expression" || syntacticParens(n) {
			return true
		}
		list := statements(n)
		if len(list) != 1 || !primary(list[0]) {
			return true
		}
		out = append(out, r.findingf(unit, n, "unnecessary parentheses around %s", list[0].Type()))
		return true
	})
	return out
}

// syntacticParens reports parentheses that belong to a statement header.
func syntacticParens(n *sitter.Node) bool {
	p := n.Parent()
	if p == nil {
		return false
	}
	switch p.Type() {
	case "if_statement", "while_statement", "do_statement", "switch_statement", "with_statement":
		return true
	}
	return false
}

func primary(n *sitter.Node) bool {
	switch n.Type() {
	case "identifier", "number", "string", "template_string", "regex",
		"true", "false", "null", "undefined", "this":
		return true
	}
	return false
}
