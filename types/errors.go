package types

import "fmt"

// ParseError reports malformed or unparseable source. It is recoverable: the
// file gets one synthetic finding and no rules run on it.
type ParseError struct {
	File  string
	Span  Span
	Cause error
}

func (e *ParseError) Error() string {
	if e.Span.Line > 0 {
		return fmt.Sprintf("parse %s:%s: %v", e.File, e.Span, e.Cause)
	}
	return fmt.Sprintf("parse %s: %v", e.File, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// Finding converts the error into the synthetic finding reported for the file.
func (e *ParseError) Finding() Finding {
	span := e.Span
	if span.Line == 0 {
		span = Span{Line: 1, Column: 1, EndLine: 1, EndColumn: 1}
	}
	return Finding{
		Rule:     ParseErrorRule,
		Category: CategorySyntax,
		Severity: SeverityError,
		File:     e.File,
		Span:     span,
		Message:  e.Cause.Error(),
	}
}

// RuleExecutionError reports a rule that failed on one file.
type RuleExecutionError struct {
	File  string
	Rule  string
	Cause error
}

func (e *RuleExecutionError) Error() string {
	return fmt.Sprintf("rule %s on %s: %v", e.Rule, e.File, e.Cause)
}

func (e *RuleExecutionError) Unwrap() error { return e.Cause }

// ConfigError reports invalid configuration. It is returned before any file is scanned.
type ConfigError struct {
	Rule  string
	Field string
	Cause error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Rule != "" && e.Field != "":
		return fmt.Sprintf("config: rule %s: %s: %v", e.Rule, e.Field, e.Cause)
	case e.Rule != "":
		return fmt.Sprintf("config: rule %s: %v", e.Rule, e.Cause)
	case e.Field != "":
		return fmt.Sprintf("config: %s: %v", e.Field, e.Cause)
	}
	return fmt.Sprintf("config: %v", e.Cause)
}

func (e *ConfigError) Unwrap() error { return e.Cause }
