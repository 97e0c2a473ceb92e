package scope

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/JA3G3R/lintzard/types"
)

// nodeKey identifies a node within one tree.
type nodeKey struct {
	start, end uint32
	typ        string
}

func keyOf(n *sitter.Node) nodeKey {
	return nodeKey{start: n.StartByte(), end: n.EndByte(), typ: n.Type()}
}

func same(a, b *sitter.Node) bool {
	return a != nil && b != nil && keyOf(a) == keyOf(b)
}

type analyzer struct {
	unit   *types.SourceUnit
	model  *Model
	scopes map[nodeKey]*Scope
	// names holds identifier nodes that name something rather than refer to it.
	names map[nodeKey]bool
}

type modelKey struct{}

// For returns the unit's scope model, analysing the unit on first use. The
// model is shared by every caller and must not be modified.
func For(unit *types.SourceUnit) *Model {
	return unit.Derived(modelKey{}, func() any { return Analyze(unit) }).(*Model)
}

// Analyze builds the scope model for unit. It only reads the tree.
func Analyze(unit *types.SourceUnit) *Model {
	root := unit.Root()
	a := &analyzer{
		unit:   unit,
		model:  &Model{},
		scopes: map[nodeKey]*Scope{},
		names:  map[nodeKey]bool{},
	}
	module := newScope(KindModule, root, nil)
	a.model.Module = module
	a.scopes[keyOf(root)] = module

	a.declareChildren(root, module)
	a.resolve(root, module)
	return a.model
}

func (a *analyzer) open(kind Kind, n *sitter.Node, parent *Scope) *Scope {
	s := newScope(kind, n, parent)
	a.scopes[keyOf(n)] = s
	return s
}

func (a *analyzer) declareChildren(n *sitter.Node, s *Scope) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c != nil {
			a.declare(c, s)
		}
	}
}

// declare is the first pass: open scopes and bind every declared name.
func (a *analyzer) declare(n *sitter.Node, s *Scope) {
	switch n.Type() {
	case "function_declaration", "generator_function_declaration":
		if name := n.ChildByFieldName("name"); name != nil {
			a.bind(s.hoistTarget(), name, DeclFunction, n, true)
		}
		a.function(n, s)

	case "function_expression", "function", "generator_function", "arrow_function", "method_definition":
		a.function(n, s)

	case "class_declaration":
		name := n.ChildByFieldName("name")
		if name != nil {
			a.bind(s, name, DeclClass, n, true)
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if c := n.NamedChild(i); c != nil && !same(c, name) {
				a.declare(c, s)
			}
		}

	case "class":
		cs := a.open(KindBlock, n, s)
		name := n.ChildByFieldName("name")
		if name != nil {
			a.bind(cs, name, DeclClass, n, true)
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if c := n.NamedChild(i); c != nil && !same(c, name) {
				a.declare(c, cs)
			}
		}

	case "variable_declaration":
		a.declarators(n, s.hoistTarget(), DeclVar, s)

	case "lexical_declaration":
		kind := DeclLet
		if keyword(n) == "const" {
			kind = DeclConst
		}
		a.declarators(n, s, kind, s)

	case "statement_block", "switch_body", "for_statement":
		a.declareChildren(n, a.open(KindBlock, n, s))

	case "for_in_statement":
		b := a.open(KindBlock, n, s)
		left := n.ChildByFieldName("left")
		switch keyword(n) {
		case "var":
			a.pattern(left, b.hoistTarget(), DeclVar, n, true, b)
		case "let":
			a.pattern(left, b, DeclLet, n, true, b)
		case "const":
			a.pattern(left, b, DeclConst, n, true, b)
		default:
			if left != nil {
				a.declare(left, b)
			}
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if c := n.NamedChild(i); c != nil && !same(c, left) {
				a.declare(c, b)
			}
		}

	case "catch_clause":
		b := a.open(KindBlock, n, s)
		if p := n.ChildByFieldName("parameter"); p != nil {
			a.pattern(p, b, DeclCatch, n, true, b)
		}
		if body := n.ChildByFieldName("body"); body != nil {
			a.declareChildren(body, b)
		}

	case "import_statement":
		a.imports(n, s.hoistTarget())

	case "export_statement":
		if n.ChildByFieldName("source") != nil {
			// Re-exports name another module's bindings, not ours.
			a.markNames(n)
			return
		}
		a.exportAliases(n)
		a.declareChildren(n, s)

	default:
		a.declareChildren(n, s)
	}
}

func (a *analyzer) function(n *sitter.Node, s *Scope) {
	fs := a.open(KindFunction, n, s)
	switch n.Type() {
	case "function_expression", "function", "generator_function":
		if name := n.ChildByFieldName("name"); name != nil {
			a.bind(fs, name, DeclFunction, n, true)
		}
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			if p := params.NamedChild(i); p != nil {
				a.pattern(p, fs, DeclParam, n, true, fs)
			}
		}
	}
	if p := n.ChildByFieldName("parameter"); p != nil {
		a.pattern(p, fs, DeclParam, n, true, fs)
	}
	body := n.ChildByFieldName("body")
	if body == nil {
		return
	}
	// The body block shares the function scope.
	if body.Type() == "statement_block" {
		a.declareChildren(body, fs)
	} else {
		a.declare(body, fs)
	}
}

func (a *analyzer) declarators(n *sitter.Node, target *Scope, kind DeclKind, cur *Scope) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		d := n.NamedChild(i)
		if d == nil || d.Type() != "variable_declarator" {
			continue
		}
		value := d.ChildByFieldName("value")
		a.pattern(d.ChildByFieldName("name"), target, kind, n, value != nil, cur)
		if value != nil {
			a.declare(value, cur)
		}
	}
}

// pattern binds every name a binding pattern introduces. Default values
// are expressions and are declared in cur.
func (a *analyzer) pattern(n *sitter.Node, target *Scope, kind DeclKind, decl *sitter.Node, init bool, cur *Scope) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		a.bind(target, n, kind, decl, init)
	case "assignment_pattern", "object_assignment_pattern":
		a.pattern(n.ChildByFieldName("left"), target, kind, decl, init, cur)
		if right := n.ChildByFieldName("right"); right != nil {
			a.declare(right, cur)
		}
	case "pair_pattern":
		if k := n.ChildByFieldName("key"); k != nil {
			a.declare(k, cur)
		}
		a.pattern(n.ChildByFieldName("value"), target, kind, decl, init, cur)
	case "rest_pattern", "object_pattern", "array_pattern":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			a.pattern(n.NamedChild(i), target, kind, decl, init, cur)
		}
	case "comment":
	default:
		a.declare(n, cur)
	}
}

func (a *analyzer) imports(n *sitter.Node, module *Scope) {
	walk(n, func(c *sitter.Node) bool {
		switch c.Type() {
		case "import_specifier":
			name, alias := c.ChildByFieldName("name"), c.ChildByFieldName("alias")
			if alias != nil {
				if name != nil {
					a.names[keyOf(name)] = true
				}
				a.bind(module, alias, DeclImport, n, true)
			} else if name != nil && name.Type() == "identifier" {
				a.bind(module, name, DeclImport, n, true)
			}
			return false
		case "namespace_import":
			for i := 0; i < int(c.NamedChildCount()); i++ {
				if id := c.NamedChild(i); id != nil && id.Type() == "identifier" {
					a.bind(module, id, DeclImport, n, true)
				}
			}
			return false
		case "import_clause":
			for i := 0; i < int(c.NamedChildCount()); i++ {
				if id := c.NamedChild(i); id != nil && id.Type() == "identifier" {
					a.bind(module, id, DeclImport, n, true)
				}
			}
		}
		return true
	})
}

func (a *analyzer) exportAliases(n *sitter.Node) {
	walk(n, func(c *sitter.Node) bool {
		if c.Type() != "export_specifier" {
			return true
		}
		if alias := c.ChildByFieldName("alias"); alias != nil {
			a.names[keyOf(alias)] = true
		}
		return false
	})
}

func (a *analyzer) markNames(n *sitter.Node) {
	walk(n, func(c *sitter.Node) bool {
		if c.Type() == "identifier" {
			a.names[keyOf(c)] = true
		}
		return true
	})
}

func (a *analyzer) bind(target *Scope, ident *sitter.Node, kind DeclKind, decl *sitter.Node, init bool) {
	a.names[keyOf(ident)] = true
	name := a.unit.Text(ident)
	if existing, ok := target.bindings[name]; ok {
		// Redeclaration (var twice, or var after function) keeps the first binding.
		existing.Initialized = existing.Initialized || init
		return
	}
	b := &Binding{
		Name:        name,
		Kind:        kind,
		Ident:       ident,
		Scope:       target,
		Exported:    exported(decl),
		Initialized: init,
	}
	target.bindings[name] = b
	target.order = append(target.order, b)
	a.model.Bindings = append(a.model.Bindings, b)
}

// resolve is the second pass: attach each identifier use to its binding.
func (a *analyzer) resolve(n *sitter.Node, cur *Scope) {
	if s, ok := a.scopes[keyOf(n)]; ok {
		cur = s
	}
	switch n.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		if !a.names[keyOf(n)] && !intrinsicElement(a.unit, n) {
			a.reference(n, cur)
		}
		return
	case "shorthand_property_identifier":
		a.reference(n, cur)
		return
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c != nil {
			a.resolve(c, cur)
		}
	}
}

func (a *analyzer) reference(n *sitter.Node, cur *Scope) {
	ref := &Reference{Name: a.unit.Text(n), Node: n, Scope: cur, Typeof: typeofOperand(n)}
	ref.Read, ref.Write = access(n)
	if b := cur.Lookup(ref.Name); b != nil {
		b.Refs = append(b.Refs, ref)
		return
	}
	a.model.Unresolved = append(a.model.Unresolved, ref)
}

// access classifies an identifier use as a read, a write or both.
func access(n *sitter.Node) (read, write bool) {
	child, p := n, n.Parent()
	for p != nil {
		switch p.Type() {
		case "assignment_expression", "for_in_statement":
			if same(p.ChildByFieldName("left"), child) {
				return false, true
			}
			return true, false
		case "augmented_assignment_expression", "update_expression":
			if p.Type() == "update_expression" || same(p.ChildByFieldName("left"), child) {
				// n++ on its own line updates n without reading it for anything.
				return valueUsed(p), true
			}
			return true, false
		case "assignment_pattern", "object_assignment_pattern":
			if same(p.ChildByFieldName("right"), child) {
				return true, false
			}
		case "pair_pattern":
			if same(p.ChildByFieldName("key"), child) {
				return true, false
			}
		case "array_pattern", "object_pattern", "rest_pattern", "parenthesized_expression":
		default:
			return true, false
		}
		child, p = p, p.Parent()
	}
	return true, false
}

// valueUsed reports whether the result of expression n feeds into anything,
// as opposed to standing alone as a statement or a for-loop update.
func valueUsed(n *sitter.Node) bool {
	child, p := n, n.Parent()
	for p != nil {
		switch p.Type() {
		case "parenthesized_expression", "sequence_expression":
		case "expression_statement":
			return false
		case "for_statement":
			return !same(p.ChildByFieldName("increment"), child)
		default:
			return true
		}
		child, p = p, p.Parent()
	}
	return true
}

func typeofOperand(n *sitter.Node) bool {
	p := n.Parent()
	for p != nil && p.Type() == "parenthesized_expression" {
		p = p.Parent()
	}
	if p == nil || p.Type() != "unary_expression" {
		return false
	}
	op := p.ChildByFieldName("operator")
	return op != nil && op.Type() == "typeof"
}

// intrinsicElement reports a lower-case JSX tag name such as div.
func intrinsicElement(unit *types.SourceUnit, n *sitter.Node) bool {
	p := n.Parent()
	if p == nil {
		return false
	}
	switch p.Type() {
	case "jsx_opening_element", "jsx_closing_element", "jsx_self_closing_element":
		name := unit.Text(n)
		return name != "" && strings.ToLower(name[:1]) == name[:1]
	}
	return false
}

func exported(decl *sitter.Node) bool {
	if decl == nil {
		return false
	}
	p := decl.Parent()
	return p != nil && p.Type() == "export_statement"
}

// keyword returns the var/let/const token of a declaration or for-in header.
func keyword(n *sitter.Node) string {
	if k := n.ChildByFieldName("kind"); k != nil {
		return k.Type()
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil || c.IsNamed() {
			continue
		}
		switch t := c.Type(); t {
		case "var", "let", "const":
			return t
		}
	}
	return ""
}

// walk visits n and its named descendants depth-first; returning false skips children.
func walk(n *sitter.Node, fn func(*sitter.Node) bool) {
	if !fn(n) {
		return
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c != nil {
			walk(c, fn)
		}
	}
}
