package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/JA3G3R/lintzard/types"
)

// consistentReturn flags functions that return a value on some paths and
// nothing on others. Each bare return in such a function is reported.
type consistentReturn struct{ base }

func newConsistentReturn(desc types.RuleDescriptor, _ Options) (Rule, error) {
	return &consistentReturn{base{desc}}, nil
}

func (r *consistentReturn) Check(unit *types.SourceUnit) []types.Finding {
	var out []types.Finding
	inspect(unit.Root(), func(n *sitter.Node) bool {
		if !isFunction(n) {
			return true
		}
		body := n.ChildByFieldName("body")
		if body == nil || body.Type() != "statement_block" {
			return true
		}
		var valued, bare []*sitter.Node
		for _, ret := range returns(body) {
			if len(statements(ret)) > 0 {
				valued = append(valued, ret)
			} else {
				bare = append(bare, ret)
			}
		}
		if len(valued) == 0 {
			return true
		}
		for _, ret := range bare {
			out = append(out, r.finding(unit, ret, "return without a value in a function that returns a value elsewhere"))
		}
		return true
	})
	return out
}

func isFunction(n *sitter.Node) bool {
	switch n.Type() {
	case "function_declaration", "generator_function_declaration", "function_expression",
		"function", "generator_function", "arrow_function", "method_definition":
		return true
	}
	return false
}

// returns collects the return statements of one function body, leaving
// nested functions out.
func returns(body *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for _, c := range statements(body) {
		inspect(c, func(n *sitter.Node) bool {
			if isFunction(n) || n.Type() == "class_body" {
				return false
			}
			if n.Type() == "return_statement" {
				out = append(out, n)
			}
			return true
		})
	}
	return out
}
