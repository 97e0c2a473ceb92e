package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/JA3G3R/lintzard/types"
)

type noVar struct{ base }

func newNoVar(desc types.RuleDescriptor, _ Options) (Rule, error) {
	return &noVar{base{desc}}, nil
}

func (r *noVar) Check(unit *types.SourceUnit) []types.Finding {
	var out []types.Finding
	inspect(unit.Root(), func(n *sitter.Node) bool {
		if n.Type() == "variable_declaration" {
			out = append(out, r.finding(unit, keywordNode(n), "use let or const instead of var"))
		}
		return true
	})
	return out
}
