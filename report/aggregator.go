// Package report collects findings from concurrent workers into a Report and
// renders reports for people and tools.
package report

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/JA3G3R/lintzard/types"
)

type fileState struct {
	parseFailed bool
	findings    []types.Finding
}

// Aggregator is safe for concurrent use.
type Aggregator struct {
	mu     sync.Mutex
	min    types.Severity
	files  map[string]*fileState
	errors []types.RunError
}

// NewAggregator keeps findings at or above min. Parse errors are always kept.
func NewAggregator(min types.Severity) *Aggregator {
	return &Aggregator{min: min, files: map[string]*fileState{}}
}

func (a *Aggregator) file(path string) *fileState {
	fs, ok := a.files[path]
	if !ok {
		fs = &fileState{}
		a.files[path] = fs
	}
	return fs
}

// Add records findings for file. Calling it with no findings still marks the
// file as analysed.
func (a *Aggregator) Add(file string, findings ...types.Finding) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fs := a.file(file)
	for _, f := range findings {
		if f.Rule != types.ParseErrorRule && !f.Severity.AtLeast(a.min) {
			continue
		}
		fs.findings = append(fs.findings, f)
	}
}

// AddParseError marks the file as unparseable and records its synthetic finding.
func (a *Aggregator) AddParseError(pe *types.ParseError) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fs := a.file(pe.File)
	fs.parseFailed = true
	fs.findings = append(fs.findings, pe.Finding())
}

// AddError records a per-file failure that did not stop the run.
func (a *Aggregator) AddError(file string, err error) {
	re := types.RunError{File: file, Kind: types.ErrorKindRead, Message: err.Error()}
	var rerr *types.RuleExecutionError
	if errors.As(err, &rerr) {
		re.Kind = types.ErrorKindRule
		re.Rule = rerr.Rule
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.errors = append(a.errors, re)
}

// Report builds the sorted, deduplicated report. An empty runID gets a new UUID.
func (a *Aggregator) Report(runID string) *types.Report {
	if runID == "" {
		runID = uuid.NewString()
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	rep := &types.Report{
		RunID:   runID,
		Files:   make([]types.FileReport, 0, len(a.files)),
		Summary: newSummary(),
	}
	paths := make([]string, 0, len(a.files))
	for p := range a.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		fs := a.files[p]
		findings := append([]types.Finding{}, fs.findings...)
		Sort(findings)
		findings = Dedupe(findings)
		rep.Files = append(rep.Files, types.FileReport{File: p, ParseFailed: fs.parseFailed, Findings: findings})

		rep.Summary.FilesAnalyzed++
		if fs.parseFailed {
			rep.Summary.FilesFailed++
		}
		for _, f := range findings {
			count(&rep.Summary, f)
		}
	}

	rep.Errors = append([]types.RunError(nil), a.errors...)
	sort.SliceStable(rep.Errors, func(i, j int) bool {
		x, y := rep.Errors[i], rep.Errors[j]
		if x.File != y.File {
			return x.File < y.File
		}
		return x.Rule < y.Rule
	})
	return rep
}

func newSummary() types.Summary {
	return types.Summary{
		BySeverity: map[types.Severity]int{},
		ByCategory: map[types.Category]int{},
		ByRule:     map[string]int{},
	}
}

func count(s *types.Summary, f types.Finding) {
	s.Total++
	s.BySeverity[f.Severity]++
	s.ByCategory[f.Category]++
	s.ByRule[f.Rule]++
}

// Sort orders findings by position, higher severity first on ties, then by
// rule id, end position and message so the order is total.
func Sort(findings []types.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		return less(findings[i], findings[j])
	})
}

func less(a, b types.Finding) bool {
	if a.File != b.File {
		return a.File < b.File
	}
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	if a.Column != b.Column {
		return a.Column < b.Column
	}
	if a.Severity.Rank() != b.Severity.Rank() {
		return a.Severity.Rank() > b.Severity.Rank()
	}
	if a.Rule != b.Rule {
		return a.Rule < b.Rule
	}
	if a.EndLine != b.EndLine {
		return a.EndLine < b.EndLine
	}
	if a.EndColumn != b.EndColumn {
		return a.EndColumn < b.EndColumn
	}
	return a.Message < b.Message
}

// Dedupe drops findings repeating an earlier one's file, rule and span.
// The input must be sorted.
func Dedupe(findings []types.Finding) []types.Finding {
	type key struct {
		file, rule string
		span       types.Span
	}
	seen := map[key]bool{}
	out := findings[:0]
	for _, f := range findings {
		k := key{f.File, f.Rule, f.Span}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, f)
	}
	return out
}
