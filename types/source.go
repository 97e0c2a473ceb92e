package types

import (
	"sort"
	"sync"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
)

// SourceUnit is one parsed file. It is not modified after construction.
//
// Node handles handed out by the tree cache into a per-tree map, so a unit
// must not be traversed from several goroutines at once.
type SourceUnit struct {
	path       string
	src        []byte
	tree       *sitter.Tree
	lineStarts []int

	mu      sync.Mutex
	derived map[any]any
}

func NewSourceUnit(path string, src []byte, tree *sitter.Tree) *SourceUnit {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &SourceUnit{path: path, src: src, tree: tree, lineStarts: starts}
}

func (u *SourceUnit) Path() string { return u.path }

// Source returns the original text. Callers must not modify it.
func (u *SourceUnit) Source() []byte { return u.src }

func (u *SourceUnit) Root() *sitter.Node { return u.tree.RootNode() }

func (u *SourceUnit) LineCount() int { return len(u.lineStarts) }

// Text returns the source text covered by n.
func (u *SourceUnit) Text(n *sitter.Node) string {
	return string(u.src[n.StartByte():n.EndByte()])
}

// Span returns the 1-based range of n.
func (u *SourceUnit) Span(n *sitter.Node) Span {
	return u.SpanOf(int(n.StartByte()), int(n.EndByte()))
}

// SpanOf converts a byte range into a 1-based line/column range.
func (u *SourceUnit) SpanOf(start, end int) Span {
	l1, c1 := u.position(start)
	l2, c2 := u.position(end)
	return Span{Line: l1, Column: c1, EndLine: l2, EndColumn: c2}
}

func (u *SourceUnit) position(off int) (line, col int) {
	if off < 0 {
		off = 0
	}
	if off > len(u.src) {
		off = len(u.src)
	}
	idx := sort.Search(len(u.lineStarts), func(i int) bool { return u.lineStarts[i] > off }) - 1
	return idx + 1, utf8.RuneCount(u.src[u.lineStarts[idx]:off]) + 1
}

// Contains reports whether s lies inside the unit's text.
func (u *SourceUnit) Contains(s Span) bool {
	if s.Line < 1 || s.Column < 1 || s.EndLine < s.Line || s.EndLine > len(u.lineStarts) {
		return false
	}
	if s.EndLine == s.Line && s.EndColumn < s.Column {
		return false
	}
	return s.Column <= u.lineWidth(s.Line)+1 && s.EndColumn <= u.lineWidth(s.EndLine)+1
}

func (u *SourceUnit) lineWidth(line int) int {
	start := u.lineStarts[line-1]
	end := len(u.src)
	if line < len(u.lineStarts) {
		end = u.lineStarts[line] - 1
	}
	return utf8.RuneCount(u.src[start:end])
}

// Derived returns the value build computes for key, building it at most once
// per unit. Callers must treat the value as read-only.
func (u *SourceUnit) Derived(key any, build func() any) any {
	u.mu.Lock()
	defer u.mu.Unlock()
	if v, ok := u.derived[key]; ok {
		return v
	}
	if u.derived == nil {
		u.derived = map[any]any{}
	}
	v := build()
	u.derived[key] = v
	return v
}

// Close releases the syntax tree.
func (u *SourceUnit) Close() {
	if u.tree != nil {
		u.tree.Close()
	}
}
