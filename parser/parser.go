// Package parser turns JavaScript source into tree-sitter syntax trees.
package parser

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/JA3G3R/lintzard/types"
)

// ErrTimeout is the cause of a ParseError for a parse that ran out of budget.
var ErrTimeout = errors.New("parse budget exceeded")

// Extensions lists the file extensions parsed as JavaScript.
func Extensions() []string {
	return []string{".js", ".mjs", ".cjs", ".jsx"}
}

// Supported reports whether path has a JavaScript extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions() {
		if e == ext {
			return true
		}
	}
	return false
}

// Parse parses src into a SourceUnit. A source the grammar cannot fully
// recognise, or a parse exceeding timeout, yields a *types.ParseError that
// points at the first problem.
func Parse(ctx context.Context, path string, src []byte, timeout time.Duration) (*types.SourceUnit, error) {
	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(javascript.GetLanguage())

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	// An exhausted budget fails the same way however far the parser got.
	if err := ctx.Err(); err != nil {
		return nil, &types.ParseError{File: path, Cause: fmt.Errorf("%w: %w", ErrTimeout, err)}
	}
	tree, err := p.ParseCtx(ctx, nil, src)
	if err != nil {
		cause := err
		if ctxErr := ctx.Err(); ctxErr != nil {
			cause = fmt.Errorf("%w: %w", ErrTimeout, ctxErr)
		}
		return nil, &types.ParseError{File: path, Cause: cause}
	}

	unit := types.NewSourceUnit(path, src, tree)
	root := tree.RootNode()
	if !root.HasError() {
		return unit, nil
	}

	bad := firstError(root)
	pe := &types.ParseError{File: path, Cause: errors.New("syntax error")}
	if bad != nil {
		pe.Span = unit.Span(bad)
		pe.Cause = describe(unit, bad)
	}
	unit.Close()
	return nil, pe
}

// firstError returns the earliest ERROR or MISSING node below n.
func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil || !c.HasError() && !c.IsMissing() {
			continue
		}
		if bad := firstError(c); bad != nil {
			return bad
		}
	}
	return nil
}

func describe(unit *types.SourceUnit, n *sitter.Node) error {
	if n.IsMissing() {
		return fmt.Errorf("missing %q", n.Type())
	}
	text := strings.TrimSpace(unit.Text(n))
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	text = truncate(text, 40)
	if text == "" {
		return errors.New("unexpected end of input")
	}
	return fmt.Errorf("unexpected %q", text)
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
