package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/JA3G3R/lintzard/types"
)

// assignInCondition flags assignments inside loop and if conditions unless
// they are wrapped in an extra pair of parentheses.
type assignInCondition struct{ base }

func newAssignInCondition(desc types.RuleDescriptor, _ Options) (Rule, error) {
	return &assignInCondition{base{desc}}, nil
}

func (r *assignInCondition) Check(unit *types.SourceUnit) []types.Finding {
	var out []types.Finding
	inspect(unit.Root(), func(n *sitter.Node) bool {
		switch n.Type() {
		case "if_statement", "while_statement", "do_statement", "for_statement":
		default:
			return true
		}
		cond := n.ChildByFieldName("condition")
		if cond == nil {
			return true
		}
		// if/while/do conditions carry their own parentheses.
		if cond.Type() == "parenthesized_expression" {
			if list := statements(cond); len(list) == 1 {
				cond = list[0]
			}
		}
		r.scan(unit, cond, &out)
		return true
	})
	return out
}

func (r *assignInCondition) scan(unit *types.SourceUnit, n *sitter.Node, out *[]types.Finding) {
	switch n.Type() {
	case "assignment_expression", "augmented_assignment_expression":
		*out = append(*out, r.finding(unit, n, "assignment in a condition; wrap it in extra parentheses if intended"))
		return
	case "parenthesized_expression", "arrow_function", "function_expression", "function", "generator_function":
		return
	}
	for _, c := range statements(n) {
		r.scan(unit, c, out)
	}
}
