package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/JA3G3R/lintzard/types"
)

type noWith struct{ base }

func newNoWith(desc types.RuleDescriptor, _ Options) (Rule, error) {
	return &noWith{base{desc}}, nil
}

func (r *noWith) Check(unit *types.SourceUnit) []types.Finding {
	var out []types.Finding
	inspect(unit.Root(), func(n *sitter.Node) bool {
		if n.Type() == "with_statement" {
			out = append(out, r.finding(unit, keywordNode(n), "avoid the with statement; it makes scope resolution ambiguous"))
		}
		return true
	})
	return out
}
