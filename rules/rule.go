// Package rules holds the rule registry, the built-in JavaScript rules and
// the engine that runs them over a parsed SourceUnit.
package rules

import (
	"fmt"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/JA3G3R/lintzard/scope"
	"github.com/JA3G3R/lintzard/types"
)

// Rule is one detector. Check must only read the unit and must not keep
// state between calls.
type Rule interface {
	Descriptor() types.RuleDescriptor
	Check(unit *types.SourceUnit) []types.Finding
}

// Options carries a rule's configured option values and the run's globals.
type Options struct {
	Values  map[string]string
	Globals *scope.Globals
}

// Bool reads a boolean option, returning def when it is unset.
func (o Options) Bool(key string, def bool) (bool, error) {
	v, ok := o.Values[key]
	if !ok || strings.TrimSpace(v) == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def, fmt.Errorf("option %s: %w", key, err)
	}
	return b, nil
}

// Definition is a registered rule: its default descriptor, the options it
// accepts and a constructor for a configured instance.
type Definition struct {
	Descriptor types.RuleDescriptor
	Options    []string
	New        func(desc types.RuleDescriptor, opts Options) (Rule, error)
}

// base carries the descriptor and builds findings for it.
type base struct {
	desc types.RuleDescriptor
}

func (b base) Descriptor() types.RuleDescriptor { return b.desc }

func (b base) finding(unit *types.SourceUnit, n *sitter.Node, msg string) types.Finding {
	return types.Finding{
		Rule:     b.desc.ID,
		Category: b.desc.Category,
		Severity: b.desc.Severity,
		File:     unit.Path(),
		Span:     unit.Span(n),
		Message:  msg,
	}
}

func (b base) findingf(unit *types.SourceUnit, n *sitter.Node, format string, args ...any) types.Finding {
	return b.finding(unit, n, fmt.Sprintf(format, args...))
}
