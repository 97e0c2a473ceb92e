// Package scope builds a lexical scope model for a JavaScript syntax tree:
// which names each scope declares, where every identifier resolves, and
// which references resolve nowhere.
//
// The model follows the language's hoisting rules: var and function
// declarations belong to the nearest function (or the module), let, const
// and class declarations to the nearest block.
package scope

import (
	sitter "github.com/smacker/go-tree-sitter"
)

type Kind int

const (
	KindModule Kind = iota
	KindFunction
	KindBlock
)

// DeclKind says how a name was introduced.
type DeclKind int

const (
	DeclVar DeclKind = iota
	DeclLet
	DeclConst
	DeclFunction
	DeclClass
	DeclParam
	DeclCatch
	DeclImport
)

func (k DeclKind) String() string {
	switch k {
	case DeclVar:
		return "var"
	case DeclLet:
		return "let"
	case DeclConst:
		return "const"
	case DeclFunction:
		return "function"
	case DeclClass:
		return "class"
	case DeclParam:
		return "parameter"
	case DeclCatch:
		return "catch parameter"
	case DeclImport:
		return "import"
	}
	return "unknown"
}

// Mutable reports whether the binding may be reassigned by design.
func (k DeclKind) Mutable() bool {
	return k == DeclVar || k == DeclLet
}

type Scope struct {
	Kind     Kind
	Node     *sitter.Node
	Parent   *Scope
	Children []*Scope

	bindings map[string]*Binding
	order    []*Binding
}

func newScope(kind Kind, node *sitter.Node, parent *Scope) *Scope {
	s := &Scope{Kind: kind, Node: node, Parent: parent, bindings: map[string]*Binding{}}
	if parent != nil {
		parent.Children = append(parent.Children, s)
	}
	return s
}

// Bindings returns the scope's declarations in source order.
func (s *Scope) Bindings() []*Binding {
	return append([]*Binding(nil), s.order...)
}

// Lookup resolves name from s outwards.
func (s *Scope) Lookup(name string) *Binding {
	for cur := s; cur != nil; cur = cur.Parent {
		if b, ok := cur.bindings[name]; ok {
			return b
		}
	}
	return nil
}

// Function returns the nearest enclosing function scope, or nil at module level.
func (s *Scope) Function() *Scope {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.Kind == KindFunction {
			return cur
		}
	}
	return nil
}

// hoistTarget is where var and function declarations land.
func (s *Scope) hoistTarget() *Scope {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.Kind != KindBlock {
			return cur
		}
	}
	return s
}

type Binding struct {
	Name     string
	Kind     DeclKind
	Ident    *sitter.Node // declared name
	Scope    *Scope
	Exported bool
	// Initialized is true when the declaration assigns a value.
	Initialized bool
	Refs        []*Reference
}

// Reads counts references that read the binding.
func (b *Binding) Reads() int {
	n := 0
	for _, r := range b.Refs {
		if r.Read {
			n++
		}
	}
	return n
}

type Reference struct {
	Name  string
	Node  *sitter.Node
	Scope *Scope
	Read  bool
	Write bool
	// Typeof is set when the reference is the operand of typeof.
	Typeof bool
}

// Function returns the function scope the reference occurs in, or nil at module level.
func (r *Reference) Function() *Scope {
	return r.Scope.Function()
}

// Model is the scope analysis result for one tree.
type Model struct {
	Module *Scope
	// Bindings lists every declaration in source order.
	Bindings []*Binding
	// Unresolved lists references with no declaration in any enclosing scope.
	Unresolved []*Reference
}
