package scope

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JA3G3R/lintzard/parser"
	"github.com/JA3G3R/lintzard/types"
)

func analyze(t *testing.T, src string) *Model {
	t.Helper()
	unit, err := parser.Parse(context.Background(), "test.js", []byte(src), 0)
	require.NoError(t, err)
	t.Cleanup(unit.Close)
	return Analyze(unit)
}

func binding(t *testing.T, m *Model, name string) *Binding {
	t.Helper()
	for _, b := range m.Bindings {
		if b.Name == name {
			return b
		}
	}
	t.Fatalf("no binding %q", name)
	return nil
}

func unresolved(m *Model) []string {
	var out []string
	for _, r := range m.Unresolved {
		out = append(out, r.Name)
	}
	sort.Strings(out)
	return out
}

func TestModuleBindingsAndFunctionRefs(t *testing.T) {
	m := analyze(t, `
let recording = false;
function start() { recording = true; }
function stop() { if (recording) { recording = false; } }
`)
	b := binding(t, m, "recording")
	assert.Equal(t, DeclLet, b.Kind)
	assert.Same(t, m.Module, b.Scope)
	assert.True(t, b.Initialized)
	require.Len(t, b.Refs, 3)

	writes, reads := 0, 0
	fns := map[*Scope]bool{}
	for _, r := range b.Refs {
		if r.Write {
			writes++
		}
		if r.Read {
			reads++
		}
		fns[r.Function()] = true
	}
	assert.Equal(t, 2, writes)
	assert.Equal(t, 1, reads)
	assert.Len(t, fns, 2)
	assert.Empty(t, m.Unresolved)
}

func TestHoisting(t *testing.T) {
	m := analyze(t, `
function outer() {
  use(helper);
  if (true) { var hoisted = 1; let blocked = 2; }
  return hoisted + blocked;
  function helper() {}
}
`)
	hoisted := binding(t, m, "hoisted")
	assert.Equal(t, KindFunction, hoisted.Scope.Kind)
	assert.Len(t, hoisted.Refs, 1)

	blocked := binding(t, m, "blocked")
	assert.Equal(t, KindBlock, blocked.Scope.Kind)
	assert.Empty(t, blocked.Refs)

	helper := binding(t, m, "helper")
	assert.Equal(t, 1, helper.Reads())

	assert.Equal(t, []string{"blocked", "use"}, unresolved(m))
}

func TestParamsDestructuringAndDefaults(t *testing.T) {
	m := analyze(t, `
const f = ({ a, b: [c] }, d = fallback, ...rest) => a + c + d + rest.length;
`)
	for _, name := range []string{"a", "c", "d", "rest"} {
		b := binding(t, m, name)
		assert.Equal(t, DeclParam, b.Kind, name)
		assert.Equal(t, 1, b.Reads(), name)
	}
	assert.Equal(t, []string{"fallback"}, unresolved(m))
}

func TestAccessKinds(t *testing.T) {
	m := analyze(t, `
let n = 0;
n += 1;
n++;
[n] = [2];
console.log(typeof missing);
`)
	b := binding(t, m, "n")
	require.Len(t, b.Refs, 3)
	for i, r := range b.Refs {
		assert.False(t, r.Read, i)
		assert.True(t, r.Write, i)
	}
	assert.Equal(t, 0, b.Reads())

	var typeofRef *Reference
	for _, r := range m.Unresolved {
		if r.Name == "missing" {
			typeofRef = r
		}
	}
	require.NotNil(t, typeofRef)
	assert.True(t, typeofRef.Typeof)
}

func TestUpdateCountsAsReadOnlyWhenUsed(t *testing.T) {
	m := analyze(t, `
let i = 0, j = 0, k = 0, s = 0;
for (; i < 3; i++) {}
use(j++);
const next = (k += 1);
(s++, s--);
`)
	i := binding(t, m, "i")
	require.Len(t, i.Refs, 2)
	assert.True(t, i.Refs[0].Read, "condition")
	assert.False(t, i.Refs[1].Read, "loop update")
	assert.True(t, i.Refs[1].Write)

	assert.Equal(t, 1, binding(t, m, "j").Reads())
	assert.Equal(t, 1, binding(t, m, "k").Reads())
	assert.Equal(t, 0, binding(t, m, "s").Reads())
}

func TestImportsExportsAndCatch(t *testing.T) {
	m := analyze(t, `
import def, { used as local, unused } from 'mod';
import * as ns from 'other';
export { local as renamed };
export { thing } from 'elsewhere';
export const shared = 1;
try { ns.go(def); } catch (err) {}
`)
	assert.Equal(t, DeclImport, binding(t, m, "local").Kind)
	assert.Equal(t, 1, binding(t, m, "local").Reads())
	assert.Equal(t, 0, binding(t, m, "unused").Reads())
	assert.Equal(t, 1, binding(t, m, "ns").Reads())
	assert.True(t, binding(t, m, "shared").Exported)
	assert.Equal(t, DeclCatch, binding(t, m, "err").Kind)
	assert.Empty(t, unresolved(m))
}

func TestShorthandPropertyIsRead(t *testing.T) {
	m := analyze(t, "const x = 1; const o = { x };\n")
	assert.Equal(t, 1, binding(t, m, "x").Reads())
}

func TestNamedFunctionExpressionAndClassExpression(t *testing.T) {
	m := analyze(t, `
const fact = function inner(n) { return n ? n * inner(n - 1) : 1; };
const K = class Named { make() { return new Named(); } };
`)
	assert.Equal(t, 1, binding(t, m, "inner").Reads())
	assert.Equal(t, 1, binding(t, m, "Named").Reads())
	assert.Empty(t, m.Unresolved)
}

func TestGlobals(t *testing.T) {
	g, err := NewGlobals([]string{"browser"}, []string{"myLib"})
	require.NoError(t, err)
	assert.True(t, g.Has("document"))
	assert.True(t, g.Has("Math"))
	assert.True(t, g.Has("myLib"))
	assert.False(t, g.Has("process"))

	_, err = NewGlobals([]string{"deno"}, nil)
	assert.Error(t, err)

	var none *Globals
	assert.False(t, none.Has("window"))
}

func TestSpansComeFromUnit(t *testing.T) {
	unit, err := parser.Parse(context.Background(), "s.js", []byte("let a;\na = 1;\n"), 0)
	require.NoError(t, err)
	defer unit.Close()

	m := Analyze(unit)
	b := m.Module.Lookup("a")
	require.NotNil(t, b)
	assert.Equal(t, types.Span{Line: 1, Column: 5, EndLine: 1, EndColumn: 6}, unit.Span(b.Ident))
	require.Len(t, b.Refs, 1)
	assert.Equal(t, 2, unit.Span(b.Refs[0].Node).Line)
}

func TestForSharesModelPerUnit(t *testing.T) {
	unit, err := parser.Parse(context.Background(), "m.js", []byte("let a = 1;\nuse(a);\n"), 0)
	require.NoError(t, err)
	defer unit.Close()

	m := For(unit)
	assert.Same(t, m, For(unit))
	assert.NotSame(t, m, Analyze(unit))
	assert.Equal(t, []string{"use"}, unresolved(m))
}
