package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/JA3G3R/lintzard/types"
)

// scopeForIn flags for-in and for-of loops whose variable is not declared in
// the loop header, so the loop writes to an outer or implicit global name.
type scopeForIn struct{ base }

func newScopeForIn(desc types.RuleDescriptor, _ Options) (Rule, error) {
	return &scopeForIn{base{desc}}, nil
}

func (r *scopeForIn) Check(unit *types.SourceUnit) []types.Finding {
	var out []types.Finding
	inspect(unit.Root(), func(n *sitter.Node) bool {
		if n.Type() != "for_in_statement" || declaresLoopVar(n) {
			return true
		}
		left := n.ChildByFieldName("left")
		if left == nil {
			return true
		}
		switch left.Type() {
		case "identifier", "object_pattern", "array_pattern":
			out = append(out, r.findingf(unit, left, "loop variable %s is not declared with let, const or var", unit.Text(left)))
		}
		return true
	})
	return out
}

func declaresLoopVar(n *sitter.Node) bool {
	if n.ChildByFieldName("kind") != nil {
		return true
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil || c.IsNamed() {
			continue
		}
		switch c.Type() {
		case "var", "let", "const":
			return true
		}
	}
	return false
}
