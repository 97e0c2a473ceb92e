package rules

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/JA3G3R/lintzard/types"
)

// Engine runs a fixed set of configured rules over source units.
type Engine struct {
	rules []Rule
	log   *zap.Logger
}

func NewEngine(log *zap.Logger, rules ...Rule) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{rules: append([]Rule{}, rules...), log: log}
}

// Rules returns the descriptors of the engine's rules.
func (e *Engine) Rules() []types.RuleDescriptor {
	out := make([]types.RuleDescriptor, 0, len(e.rules))
	for _, r := range e.rules {
		out = append(out, r.Descriptor())
	}
	return out
}

// Run applies every rule to unit. A failing rule contributes a
// *types.RuleExecutionError instead of findings; the others still run.
func (e *Engine) Run(unit *types.SourceUnit) ([]types.Finding, []error) {
	var (
		out  []types.Finding
		errs []error
	)
	for _, r := range e.rules {
		start := time.Now()
		found, err := e.apply(r, unit)
		if err != nil {
			e.log.Warn("rule failed",
				zap.String("rule", r.Descriptor().ID),
				zap.String("file", unit.Path()),
				zap.Error(err))
			errs = append(errs, err)
			continue
		}
		e.log.Debug("rule applied",
			zap.String("rule", r.Descriptor().ID),
			zap.String("file", unit.Path()),
			zap.Int("findings", len(found)),
			zap.Duration("duration", time.Since(start)))
		out = append(out, found...)
	}
	return out, errs
}

func (e *Engine) apply(r Rule, unit *types.SourceUnit) (out []types.Finding, err error) {
	desc := r.Descriptor()
	defer func() {
		if p := recover(); p != nil {
			out = nil
			err = &types.RuleExecutionError{File: unit.Path(), Rule: desc.ID, Cause: fmt.Errorf("panic: %v", p)}
		}
	}()

	found := r.Check(unit)
	out = make([]types.Finding, 0, len(found))
	for _, f := range found {
		if !unit.Contains(f.Span) {
			return nil, &types.RuleExecutionError{
				File:  unit.Path(),
				Rule:  desc.ID,
				Cause: fmt.Errorf("finding at %s is outside the source", f.Span),
			}
		}
		f.Rule = desc.ID
		f.Category = desc.Category
		f.Severity = desc.Severity
		f.File = unit.Path()
		out = append(out, f)
	}
	return out, nil
}
