package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/JA3G3R/lintzard/types"
)

type loneBlock struct{ base }

func newLoneBlock(desc types.RuleDescriptor, _ Options) (Rule, error) {
	return &loneBlock{base{desc}}, nil
}

func (r *loneBlock) Check(unit *types.SourceUnit) []types.Finding {
	var out []types.Finding
	inspect(unit.Root(), func(n *sitter.Node) bool {
		if n.Type() != "statement_block" {
			return true
		}
		if p := n.Parent(); p != nil {
			switch p.Type() {
			case "program", "statement_block", "switch_case", "switch_default":
				out = append(out, r.finding(unit, n, "unnecessary block"))
			}
		}
		return true
	})
	return out
}
