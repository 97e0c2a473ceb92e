package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/JA3G3R/lintzard/scope"
	"github.com/JA3G3R/lintzard/types"
)

// noEval flags dynamic code execution whose code is not fixed in the source.
// Callees shadowed by a local binding are not the global primitives.
type noEval struct{ base }

func newNoEval(desc types.RuleDescriptor, _ Options) (Rule, error) {
	return &noEval{base{desc}}, nil
}

func (r *noEval) Check(unit *types.SourceUnit) []types.Finding {
	global := unresolvedNodes(scope.For(unit))
	var out []types.Finding
	inspect(unit.Root(), func(n *sitter.Node) bool {
		switch n.Type() {
		case "call_expression":
			fn := n.ChildByFieldName("function")
			if !global[rootIdent(fn)] {
				return true
			}
			args := n.ChildByFieldName("arguments")
			switch name := calleeName(unit, fn); name {
			case "eval", "window.eval", "globalThis.eval", "self.eval", "global.eval":
				if arg := firstArg(args); arg != nil && !isLiteral(arg) {
					out = append(out, r.findingf(unit, n, "%s() with a non-literal argument can execute arbitrary code", name))
				}
			case "Function":
				if nonLiteralArgs(args) {
					out = append(out, r.finding(unit, n, "Function() with non-literal arguments compiles code at run time"))
				}
			case "setTimeout", "setInterval", "setImmediate", "execScript",
				"window.setTimeout", "window.setInterval":
				if arg := firstArg(args); arg != nil && builtString(arg) {
					out = append(out, r.findingf(unit, n, "%s() with a string built at run time is an implied eval", name))
				}
			}
		case "new_expression":
			ctor := n.ChildByFieldName("constructor")
			if ctor != nil && ctor.Type() == "identifier" && unit.Text(ctor) == "Function" &&
				global[rootIdent(ctor)] && nonLiteralArgs(n.ChildByFieldName("arguments")) {
				out = append(out, r.finding(unit, n, "new Function() with non-literal arguments compiles code at run time"))
			}
		}
		return true
	})
	return out
}

func nonLiteralArgs(args *sitter.Node) bool {
	for _, a := range statements(args) {
		if !isLiteral(a) {
			return true
		}
	}
	return false
}

type byteRange struct{ start, end uint32 }

// unresolvedNodes indexes the identifiers that resolve to no declaration.
func unresolvedNodes(m *scope.Model) map[byteRange]bool {
	out := make(map[byteRange]bool, len(m.Unresolved))
	for _, ref := range m.Unresolved {
		out[byteRange{ref.Node.StartByte(), ref.Node.EndByte()}] = true
	}
	return out
}

// rootIdent returns the range of the identifier a callee starts from:
// the callee itself or the object of a one-level member access.
func rootIdent(fn *sitter.Node) byteRange {
	for fn != nil && fn.Type() == "parenthesized_expression" {
		list := statements(fn)
		if len(list) != 1 {
			return byteRange{}
		}
		fn = list[0]
	}
	if fn != nil && fn.Type() == "member_expression" {
		fn = fn.ChildByFieldName("object")
	}
	if fn == nil || fn.Type() != "identifier" {
		return byteRange{}
	}
	return byteRange{fn.StartByte(), fn.EndByte()}
}
