package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeverity(t *testing.T) {
	cases := map[string]Severity{
		"info":    SeverityInfo,
		"LOW":     SeverityInfo,
		"Warning": SeverityWarning,
		"medium":  SeverityWarning,
		"error":   SeverityError,
		"HIGH":    SeverityError,
	}
	for in, want := range cases {
		got, err := ParseSeverity(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseSeverity("critical")
	assert.Error(t, err)
}

func TestSeverityRank(t *testing.T) {
	assert.True(t, SeverityError.AtLeast(SeverityWarning))
	assert.True(t, SeverityWarning.AtLeast(SeverityWarning))
	assert.False(t, SeverityInfo.AtLeast(SeverityWarning))
	assert.Equal(t, 0, Severity("bogus").Rank())
}

func TestSourceUnitSpans(t *testing.T) {
	src := []byte("let a = 1;\nconst é = 'x'; b\n")
	u := NewSourceUnit("a.js", src, nil)

	assert.Equal(t, 3, u.LineCount())
	assert.Equal(t, Span{Line: 1, Column: 1, EndLine: 1, EndColumn: 4}, u.SpanOf(0, 3))

	// "b" sits after a two-byte rune on line 2.
	off := len("let a = 1;\nconst é = 'x'; ")
	assert.Equal(t, Span{Line: 2, Column: 16, EndLine: 2, EndColumn: 17}, u.SpanOf(off, off+1))

	assert.True(t, u.Contains(Span{Line: 2, Column: 16, EndLine: 2, EndColumn: 17}))
	assert.False(t, u.Contains(Span{Line: 9, Column: 1, EndLine: 9, EndColumn: 2}))
	assert.False(t, u.Contains(Span{Line: 1, Column: 40, EndLine: 1, EndColumn: 41}))
	assert.False(t, u.Contains(Span{Line: 2, Column: 5, EndLine: 1, EndColumn: 1}))
}

func TestParseErrorFinding(t *testing.T) {
	pe := &ParseError{File: "x.js", Cause: errors.New("unexpected '('")}
	f := pe.Finding()
	assert.Equal(t, ParseErrorRule, f.Rule)
	assert.Equal(t, SeverityError, f.Severity)
	assert.Equal(t, 1, f.Line)

	wrapped := fmt.Errorf("scan: %w", pe)
	var target *ParseError
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "x.js", target.File)
}

func TestReportWorst(t *testing.T) {
	r := &Report{Files: []FileReport{
		{File: "a.js", Findings: []Finding{{Severity: SeverityInfo}}},
		{File: "b.js", Findings: []Finding{{Severity: SeverityWarning}}},
	}}
	assert.Equal(t, SeverityWarning, r.Worst())
	assert.Len(t, r.Findings(), 2)
	assert.Equal(t, Severity(""), (&Report{}).Worst())
}

func TestSourceUnitDerived(t *testing.T) {
	u := NewSourceUnit("a.js", []byte("a;\n"), nil)
	type key struct{}
	builds := 0
	build := func() any {
		builds++
		return &builds
	}
	first := u.Derived(key{}, build)
	second := u.Derived(key{}, build)
	assert.Same(t, first, second)
	assert.Equal(t, 1, builds)

	other := NewSourceUnit("b.js", []byte("b;\n"), nil)
	other.Derived(key{}, build)
	assert.Equal(t, 2, builds)
}
