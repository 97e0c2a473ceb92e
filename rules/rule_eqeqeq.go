package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/JA3G3R/lintzard/types"
)

type eqeqeq struct {
	base
	allowNull bool
}

func newEqeqeq(desc types.RuleDescriptor, opts Options) (Rule, error) {
	allowNull, err := opts.Bool("allow_null", false)
	if err != nil {
		return nil, err
	}
	return &eqeqeq{base: base{desc}, allowNull: allowNull}, nil
}

func (r *eqeqeq) Check(unit *types.SourceUnit) []types.Finding {
	var out []types.Finding
	inspect(unit.Root(), func(n *sitter.Node) bool {
		if n.Type() != "binary_expression" {
			return true
		}
		op := n.ChildByFieldName("operator")
		if op == nil || (op.Type() != "==" && op.Type() != "!=") {
			return true
		}
		if r.allowNull && (isNull(n.ChildByFieldName("left")) || isNull(n.ChildByFieldName("right"))) {
			return true
		}
		out = append(out, r.findingf(unit, op, "expected '%s=' and instead saw '%s'", op.Type(), op.Type()))
		return true
	})
	return out
}

func isNull(n *sitter.Node) bool {
	return n != nil && n.Type() == "null"
}
