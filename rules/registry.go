package rules

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/JA3G3R/lintzard/scope"
	"github.com/JA3G3R/lintzard/types"
)

// Settings is the rule part of a run's configuration.
type Settings struct {
	Rules        map[string]RuleSettings
	Environments []string
	Globals      []string
}

type RuleSettings struct {
	Enabled  *bool
	Severity string
	Options  map[string]string
}

// Registry holds rule definitions keyed by id.
type Registry struct {
	defs  []Definition
	index map[string]int
}

func NewRegistry() *Registry {
	return &Registry{index: map[string]int{}}
}

// Default returns a new registry with every built-in rule.
func Default() *Registry {
	reg := NewRegistry()
	for _, d := range builtin() {
		if err := reg.Add(d); err != nil {
			panic(err)
		}
	}
	return reg
}

func (r *Registry) Add(d Definition) error {
	id := normalizeID(d.Descriptor.ID)
	if id == "" {
		return errors.New("rule definition without id")
	}
	if _, dup := r.index[id]; dup {
		return fmt.Errorf("rule %s registered twice", id)
	}
	if d.New == nil {
		return fmt.Errorf("rule %s has no constructor", id)
	}
	r.index[id] = len(r.defs)
	r.defs = append(r.defs, d)
	return nil
}

func (r *Registry) Lookup(id string) (Definition, bool) {
	i, ok := r.index[normalizeID(id)]
	if !ok {
		return Definition{}, false
	}
	return r.defs[i], true
}

// Descriptors returns the default descriptors sorted by id.
func (r *Registry) Descriptors() []types.RuleDescriptor {
	out := make([]types.RuleDescriptor, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d.Descriptor)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Resolve applies settings to the default descriptors. Unknown rule ids and
// severities are ConfigErrors.
func (r *Registry) Resolve(s Settings) ([]types.RuleDescriptor, error) {
	ids := make([]string, 0, len(s.Rules))
	for id := range s.Rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if _, ok := r.Lookup(id); !ok {
			return nil, &types.ConfigError{Rule: id, Cause: errors.New("unknown rule")}
		}
	}

	out := r.Descriptors()
	for i := range out {
		rs, ok := settingsFor(s, out[i].ID)
		if !ok {
			continue
		}
		if rs.Enabled != nil {
			out[i].Enabled = *rs.Enabled
		}
		if rs.Severity != "" {
			sev, err := types.ParseSeverity(rs.Severity)
			if err != nil {
				return nil, &types.ConfigError{Rule: out[i].ID, Field: "severity", Cause: err}
			}
			out[i].Severity = sev
		}
	}
	return out, nil
}

// Configure builds the enabled rules for a run. It fails before any file is
// scanned on unknown ids, severities, environments or options.
func (r *Registry) Configure(s Settings) ([]Rule, error) {
	descs, err := r.Resolve(s)
	if err != nil {
		return nil, err
	}
	globals, err := scope.NewGlobals(s.Environments, s.Globals)
	if err != nil {
		return nil, &types.ConfigError{Field: "environments", Cause: err}
	}

	var out []Rule
	for _, desc := range descs {
		def, _ := r.Lookup(desc.ID)
		rs, _ := settingsFor(s, desc.ID)
		if err := checkOptions(def, rs.Options); err != nil {
			return nil, &types.ConfigError{Rule: desc.ID, Field: "options", Cause: err}
		}
		if !desc.Enabled {
			continue
		}
		rule, err := def.New(desc, Options{Values: rs.Options, Globals: globals})
		if err != nil {
			return nil, &types.ConfigError{Rule: desc.ID, Field: "options", Cause: err}
		}
		out = append(out, rule)
	}
	return out, nil
}

func settingsFor(s Settings, id string) (RuleSettings, bool) {
	for k, v := range s.Rules {
		if normalizeID(k) == id {
			return v, true
		}
	}
	return RuleSettings{}, false
}

func checkOptions(def Definition, opts map[string]string) error {
	for k := range opts {
		known := false
		for _, o := range def.Options {
			if o == k {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown option %q", k)
		}
	}
	return nil
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

func builtin() []Definition {
	return []Definition{
		{
			Descriptor: descriptor("global-state", "Module-level mutable state shared across functions", types.CategoryBestPractices, types.SeverityWarning, true),
			New:        newGlobalState,
		},
		{
			Descriptor: descriptor("block-braces", "Multi-line control body without braces", types.CategoryCodeStyle, types.SeverityWarning, true),
			New:        newBlockBraces,
		},
		{
			Descriptor: descriptor("lone-block", "Unnecessary standalone block", types.CategoryCodeStyle, types.SeverityInfo, true),
			New:        newLoneBlock,
		},
		{
			Descriptor: descriptor("no-eval", "Dynamic code evaluation with a non-literal argument", types.CategoryErrorProne, types.SeverityError, true),
			New:        newNoEval,
		},
		{
			Descriptor: descriptor("no-undef", "Use of an undeclared identifier", types.CategoryErrorProne, types.SeverityError, true),
			New:        newNoUndef,
		},
		{
			Descriptor: descriptor("eqeqeq", "Loose equality comparison", types.CategoryErrorProne, types.SeverityWarning, true),
			Options:    []string{"allow_null"},
			New:        newEqeqeq,
		},
		{
			Descriptor: descriptor("no-unused-vars", "Local binding that is never read", types.CategoryBestPractices, types.SeverityWarning, true),
			Options:    []string{"check_params"},
			New:        newNoUnusedVars,
		},
		{
			Descriptor: descriptor("no-with", "Use of the with statement", types.CategoryBestPractices, types.SeverityWarning, true),
			New:        newNoWith,
		},
		{
			Descriptor: descriptor("radix", "parseInt without a radix", types.CategoryBestPractices, types.SeverityWarning, true),
			New:        newRadix,
		},
		{
			Descriptor: descriptor("trailing-comma", "Trailing comma in an array or object literal", types.CategoryErrorProne, types.SeverityInfo, true),
			New:        newTrailingComma,
		},
		{
			Descriptor: descriptor("unreachable-code", "Statement after return, throw, break or continue", types.CategoryCodeStyle, types.SeverityWarning, true),
			New:        newUnreachableCode,
		},
		{
			Descriptor: descriptor("assign-in-condition", "Assignment inside a condition", types.CategoryCodeStyle, types.SeverityWarning, true),
			New:        newAssignInCondition,
		},
		{
			Descriptor: descriptor("consistent-return", "Function returns a value on some paths only", types.CategoryBestPractices, types.SeverityWarning, true),
			New:        newConsistentReturn,
		},
		{
			Descriptor: descriptor("scope-for-in", "Loop variable not declared in the for-in or for-of header", types.CategoryBestPractices, types.SeverityWarning, true),
			New:        newScopeForIn,
		},
		{
			Descriptor: descriptor("no-else-return", "else branch after an if branch that returns", types.CategoryCodeStyle, types.SeverityInfo, true),
			New:        newNoElseReturn,
		},
		{
			Descriptor: descriptor("unnecessary-parentheses", "Parentheses around a single primary expression", types.CategoryCodeStyle, types.SeverityInfo, true),
			New:        newUnnecessaryParentheses,
		},
		{
			Descriptor: descriptor("inaccurate-numeric-literal", "Number literal that loses precision as a double", types.CategoryErrorProne, types.SeverityWarning, true),
			New:        newInaccurateNumericLiteral,
		},
		{
			Descriptor: descriptor("no-var", "var declaration instead of let or const", types.CategoryBestPractices, types.SeverityInfo, false),
			New:        newNoVar,
		},
	}
}

func descriptor(id, title string, cat types.Category, sev types.Severity, enabled bool) types.RuleDescriptor {
	return types.RuleDescriptor{ID: id, Title: title, Category: cat, Severity: sev, Enabled: enabled}
}
