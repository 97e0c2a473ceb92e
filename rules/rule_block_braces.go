package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/JA3G3R/lintzard/types"
)

// blockBraces flags a single-statement control body written without braces
// that starts on a later line than its header.
type blockBraces struct{ base }

func newBlockBraces(desc types.RuleDescriptor, _ Options) (Rule, error) {
	return &blockBraces{base{desc}}, nil
}

func (r *blockBraces) Check(unit *types.SourceUnit) []types.Finding {
	var out []types.Finding
	check := func(body *sitter.Node, what string) {
		if f, ok := r.body(unit, body, what); ok {
			out = append(out, f)
		}
	}
	inspect(unit.Root(), func(n *sitter.Node) bool {
		switch n.Type() {
		case "if_statement":
			check(n.ChildByFieldName("consequence"), "if")
			alt := n.ChildByFieldName("alternative")
			if alt != nil && alt.Type() == "else_clause" {
				if list := statements(alt); len(list) > 0 {
					alt = list[0]
				} else {
					alt = nil
				}
			}
			if alt != nil && alt.Type() != "if_statement" {
				check(alt, "else")
			}
		case "for_statement", "for_in_statement":
			check(n.ChildByFieldName("body"), "for")
		case "while_statement":
			check(n.ChildByFieldName("body"), "while")
		case "do_statement":
			check(n.ChildByFieldName("body"), "do")
		case "with_statement":
			check(n.ChildByFieldName("body"), "with")
		}
		return true
	})
	return out
}

func (r *blockBraces) body(unit *types.SourceUnit, body *sitter.Node, what string) (types.Finding, bool) {
	if body == nil {
		return types.Finding{}, false
	}
	switch body.Type() {
	case "statement_block", "empty_statement":
		return types.Finding{}, false
	}
	header := body.PrevSibling()
	for header != nil && header.Type() == "comment" {
		header = header.PrevSibling()
	}
	if header == nil || body.StartPoint().Row <= header.EndPoint().Row {
		return types.Finding{}, false
	}
	return r.findingf(unit, body, "%s body continues on the next line without braces", what), true
}
