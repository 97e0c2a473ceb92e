package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/JA3G3R/lintzard/types"
)

// noElseReturn flags an else branch after an if branch that always returns.
// else-if chains are left alone.
type noElseReturn struct{ base }

func newNoElseReturn(desc types.RuleDescriptor, _ Options) (Rule, error) {
	return &noElseReturn{base{desc}}, nil
}

func (r *noElseReturn) Check(unit *types.SourceUnit) []types.Finding {
	var out []types.Finding
	inspect(unit.Root(), func(n *sitter.Node) bool {
		if n.Type() != "if_statement" || !endsInReturn(n.ChildByFieldName("consequence")) {
			return true
		}
		alt := n.ChildByFieldName("alternative")
		if alt == nil {
			return true
		}
		body, keyword := alt, alt.PrevSibling()
		if alt.Type() == "else_clause" {
			keyword = keywordNode(alt)
			body = nil
			if list := statements(alt); len(list) > 0 {
				body = list[0]
			}
		}
		if body == nil || body.Type() == "if_statement" || keyword == nil {
			return true
		}
		out = append(out, r.finding(unit, keyword, "unnecessary else after return"))
		return true
	})
	return out
}

func endsInReturn(n *sitter.Node) bool {
	if n == nil {
		return false
	}
	switch n.Type() {
	case "return_statement":
		return true
	case "statement_block":
		list := statements(n)
		return len(list) > 0 && list[len(list)-1].Type() == "return_statement"
	}
	return false
}
