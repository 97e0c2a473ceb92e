package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/JA3G3R/lintzard/types"
)

type unreachableCode struct{ base }

func newUnreachableCode(desc types.RuleDescriptor, _ Options) (Rule, error) {
	return &unreachableCode{base{desc}}, nil
}

func (r *unreachableCode) Check(unit *types.SourceUnit) []types.Finding {
	var out []types.Finding
	inspect(unit.Root(), func(n *sitter.Node) bool {
		switch n.Type() {
		case "program", "statement_block", "switch_case", "switch_default":
		default:
			return true
		}
		value := n.ChildByFieldName("value")
		var exit *sitter.Node
		for _, st := range statements(n) {
			if sameNode(st, value) {
				continue
			}
			if exit != nil {
				switch st.Type() {
				case "function_declaration", "generator_function_declaration", "empty_statement":
					continue
				}
				out = append(out, r.findingf(unit, st, "unreachable code after %s", keywordNode(exit).Type()))
				break
			}
			switch st.Type() {
			case "return_statement", "throw_statement", "break_statement", "continue_statement":
				exit = st
			}
		}
		return true
	})
	return out
}
