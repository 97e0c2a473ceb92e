package rules

import (
	"strings"

	"github.com/JA3G3R/lintzard/scope"
	"github.com/JA3G3R/lintzard/types"
)

// noUnusedVars flags local bindings and imports that are never read.
// Module-level declarations other than imports may be used by other
// scripts and are left alone.
type noUnusedVars struct {
	base
	checkParams bool
}

func newNoUnusedVars(desc types.RuleDescriptor, opts Options) (Rule, error) {
	checkParams, err := opts.Bool("check_params", false)
	if err != nil {
		return nil, err
	}
	return &noUnusedVars{base: base{desc}, checkParams: checkParams}, nil
}

func (r *noUnusedVars) Check(unit *types.SourceUnit) []types.Finding {
	m := scope.For(unit)
	var out []types.Finding
	for _, b := range m.Bindings {
		if b.Reads() > 0 || b.Exported || strings.HasPrefix(b.Name, "_") || selfName(b) {
			continue
		}
		switch b.Kind {
		case scope.DeclCatch:
			continue
		case scope.DeclParam:
			if !r.checkParams {
				continue
			}
		case scope.DeclImport:
		default:
			if b.Scope.Kind == scope.KindModule {
				continue
			}
		}
		out = append(out, r.findingf(unit, b.Ident, "%q is %s but never used", b.Name, usage(b)))
	}
	return out
}

func usage(b *scope.Binding) string {
	if b.Kind == scope.DeclImport {
		return "imported"
	}
	if b.Kind == scope.DeclParam {
		return "declared"
	}
	for _, ref := range b.Refs {
		if ref.Write {
			return "assigned a value"
		}
	}
	if b.Initialized && (b.Kind == scope.DeclVar || b.Kind == scope.DeclLet || b.Kind == scope.DeclConst) {
		return "assigned a value"
	}
	return "defined"
}

// selfName reports the name of a function or class expression, visible
// only inside itself.
func selfName(b *scope.Binding) bool {
	if b.Scope.Node == nil {
		return false
	}
	return sameNode(b.Scope.Node.ChildByFieldName("name"), b.Ident)
}
