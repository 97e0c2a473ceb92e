package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/JA3G3R/lintzard/types"
)

type radix struct{ base }

func newRadix(desc types.RuleDescriptor, _ Options) (Rule, error) {
	return &radix{base{desc}}, nil
}

func (r *radix) Check(unit *types.SourceUnit) []types.Finding {
	var out []types.Finding
	inspect(unit.Root(), func(n *sitter.Node) bool {
		if n.Type() != "call_expression" {
			return true
		}
		name := calleeName(unit, n.ChildByFieldName("function"))
		if name != "parseInt" && name != "Number.parseInt" {
			return true
		}
		if len(statements(n.ChildByFieldName("arguments"))) < 2 {
			out = append(out, r.findingf(unit, n, "%s() without a radix argument", name))
		}
		return true
	})
	return out
}
