package rules

import (
	"github.com/JA3G3R/lintzard/scope"
	"github.com/JA3G3R/lintzard/types"
)

// globalState flags module-level let/var bindings that several functions
// touch and at least one function reassigns. One finding per declaration.
type globalState struct{ base }

func newGlobalState(desc types.RuleDescriptor, _ Options) (Rule, error) {
	return &globalState{base{desc}}, nil
}

func (r *globalState) Check(unit *types.SourceUnit) []types.Finding {
	m := scope.For(unit)
	var out []types.Finding
	for _, b := range m.Module.Bindings() {
		if !b.Kind.Mutable() {
			continue
		}
		users := map[*scope.Scope]bool{}
		writers := map[*scope.Scope]bool{}
		for _, ref := range b.Refs {
			fn := ref.Function()
			if fn == nil {
				continue
			}
			users[fn] = true
			if ref.Write {
				writers[fn] = true
			}
		}
		if len(writers) == 0 || len(users) < 2 {
			continue
		}
		out = append(out, r.findingf(unit, b.Ident,
			"module-level %s %q is shared by %d functions and reassigned in %d; pass it explicitly or encapsulate it",
			b.Kind, b.Name, len(users), len(writers)))
	}
	return out
}
