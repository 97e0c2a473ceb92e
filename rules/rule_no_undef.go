package rules

import (
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/JA3G3R/lintzard/scope"
	"github.com/JA3G3R/lintzard/types"
)

// globalComment matches /* global a, b:writable */ directives.
var globalComment = regexp.MustCompile(`^/\*\s*globals?\s+([\s\S]*?)\*/$`)

type noUndef struct {
	base
	globals *scope.Globals
}

func newNoUndef(desc types.RuleDescriptor, opts Options) (Rule, error) {
	return &noUndef{base: base{desc}, globals: opts.Globals}, nil
}

func (r *noUndef) Check(unit *types.SourceUnit) []types.Finding {
	declared := declaredGlobals(unit)
	m := scope.For(unit)
	var out []types.Finding
	for _, ref := range m.Unresolved {
		if ref.Typeof || r.globals.Has(ref.Name) || declared[ref.Name] {
			continue
		}
		out = append(out, r.findingf(unit, ref.Node, "%q is not defined", ref.Name))
	}
	return out
}

// declaredGlobals collects names listed in global directive comments.
func declaredGlobals(unit *types.SourceUnit) map[string]bool {
	names := map[string]bool{}
	inspect(unit.Root(), func(n *sitter.Node) bool {
		if n.Type() != "comment" {
			return true
		}
		m := globalComment.FindStringSubmatch(unit.Text(n))
		if m == nil {
			return false
		}
		for _, part := range strings.Split(m[1], ",") {
			name, _, _ := strings.Cut(strings.TrimSpace(part), ":")
			if name = strings.TrimSpace(name); name != "" {
				names[name] = true
			}
		}
		return false
	})
	return names
}
