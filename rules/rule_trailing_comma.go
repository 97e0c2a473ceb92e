package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/JA3G3R/lintzard/types"
)

type trailingComma struct{ base }

func newTrailingComma(desc types.RuleDescriptor, _ Options) (Rule, error) {
	return &trailingComma{base{desc}}, nil
}

func (r *trailingComma) Check(unit *types.SourceUnit) []types.Finding {
	var out []types.Finding
	inspect(unit.Root(), func(n *sitter.Node) bool {
		if n.Type() != "array" && n.Type() != "object" {
			return true
		}
		// Last child is the closing bracket; look at what precedes it.
		for i := int(n.ChildCount()) - 2; i >= 0; i-- {
			c := n.Child(i)
			if c == nil || c.Type() == "comment" {
				continue
			}
			if c.Type() == "," {
				out = append(out, r.findingf(unit, c, "trailing comma in %s literal", n.Type()))
			}
			break
		}
		return true
	})
	return out
}
