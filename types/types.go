package types

import (
	"fmt"
	"strings"
)

// Severity is how serious a finding is.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ParseSeverity accepts info/warning/error (any case) and the low/medium/high aliases.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info", "low":
		return SeverityInfo, nil
	case "warning", "warn", "medium":
		return SeverityWarning, nil
	case "error", "high":
		return SeverityError, nil
	}
	return "", fmt.Errorf("unknown severity %q", s)
}

// Rank orders severities: info < warning < error. Unknown values rank 0.
func (s Severity) Rank() int {
	switch s {
	case SeverityInfo:
		return 1
	case SeverityWarning:
		return 2
	case SeverityError:
		return 3
	}
	return 0
}

func (s Severity) AtLeast(min Severity) bool {
	return s.Rank() >= min.Rank()
}

// Category groups rules the way PMD groups its JavaScript rules.
type Category string

const (
	CategoryBestPractices Category = "BestPractices"
	CategoryCodeStyle     Category = "CodeStyle"
	CategoryErrorProne    Category = "ErrorProne"
	CategorySyntax        Category = "Syntax"
)

// Span is a 1-based source range. Columns count runes.
type Span struct {
	Line      int `json:"line"`
	Column    int `json:"column"`
	EndLine   int `json:"end_line"`
	EndColumn int `json:"end_column"`
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// Before reports whether s starts before o.
func (s Span) Before(o Span) bool {
	if s.Line != o.Line {
		return s.Line < o.Line
	}
	return s.Column < o.Column
}

type Finding struct {
	Rule     string   `json:"rule"`     // e.g., "no-eval"
	Category Category `json:"category"` // e.g., "ErrorProne"
	Severity Severity `json:"severity"` // "info", "warning", "error"
	File     string   `json:"file"`
	Span
	Message string `json:"message"`
}

// RuleDescriptor describes a rule and its effective configuration for a run.
type RuleDescriptor struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Category Category `json:"category"`
	Severity Severity `json:"severity"`
	Enabled  bool     `json:"enabled"`
}

// ParseErrorRule is the rule id of the synthetic finding a malformed file produces.
const ParseErrorRule = "parse-error"

// RunError kinds.
const (
	ErrorKindRule = "rule"
	ErrorKindRead = "read"
)

// RunError is a per-file failure that did not abort the run.
type RunError struct {
	File    string `json:"file"`
	Rule    string `json:"rule,omitempty"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type FileReport struct {
	File        string    `json:"file"`
	ParseFailed bool      `json:"parse_failed,omitempty"`
	Findings    []Finding `json:"findings"`
}

// Summary counts findings the way the violation tallies group them: total,
// by severity, by category and by rule.
type Summary struct {
	FilesAnalyzed int              `json:"files_analyzed"`
	FilesFailed   int              `json:"files_failed"`
	Total         int              `json:"total"`
	BySeverity    map[Severity]int `json:"by_severity"`
	ByCategory    map[Category]int `json:"by_category"`
	ByRule        map[string]int   `json:"by_rule"`
}

type Report struct {
	RunID   string       `json:"run_id"`
	Files   []FileReport `json:"files"`
	Errors  []RunError   `json:"errors,omitempty"`
	Summary Summary      `json:"summary"`
}

// Findings flattens the report in file order.
func (r *Report) Findings() []Finding {
	var out []Finding
	for _, f := range r.Files {
		out = append(out, f.Findings...)
	}
	return out
}

// Worst returns the highest severity present, or "" for a clean report.
func (r *Report) Worst() Severity {
	var worst Severity
	for _, f := range r.Files {
		for _, fd := range f.Findings {
			if fd.Severity.Rank() > worst.Rank() {
				worst = fd.Severity
			}
		}
	}
	return worst
}
