// Package symbols builds per-file symbol tables from ASTs and merges them
// into a project-level index keyed by qualified name.
package symbols

import (
	"fmt"

	"github.com/dusk-indust/codemap/internal/ast"
	"github.com/dusk-indust/codemap/internal/syntax"
)

// Kind classifies a declared symbol.
type Kind string

const (
	KindFunction  Kind = "function"
	KindClass     Kind = "class"
	KindVariable  Kind = "variable"
	KindModule    Kind = "module"
	KindType      Kind = "type"
	KindMacro     Kind = "macro"
	KindParameter Kind = "parameter"
)

// Symbol is one declaration. The back-reference to the declaring AST node is
// a flat-index ID, never a pointer: the table does not own AST lifetime.
type Symbol struct {
	Name          string `json:"name"`
	QualifiedName string `json:"qualified_name"`
	Kind          Kind   `json:"kind"`
	Path          string `json:"path"`
	NodeID        int    `json:"node_id"`
	ScopeID       int    `json:"scope_id"`
}

// Scope is one lexical scope. ParentID is -1 for the file scope.
type Scope struct {
	ID       int
	ParentID int
}

type scopeKey struct {
	scope int
	name  string
}

// Table is the per-file symbol table: a scope tree plus a mapping from
// (scope, name) to the declared symbol. Inner declarations shadow outer
// ones; redeclaration in the same scope overwrites (last writer wins) and
// records a non-fatal diagnostic.
type Table struct {
	Path        string
	Scopes      []Scope
	Diagnostics []syntax.Diagnostic

	byKey map[scopeKey]Symbol
	// nodeScope maps an AST node ID to the scope that node introduces, or
	// to the scope it was declared in for non-scope-opening nodes.
	nodeScope map[int]int
}

// BuildTable walks the AST top-down and inserts one symbol per
// declaration-producing node.
func BuildTable(root *ast.Node, facts *ast.FileFacts, path string) *Table {
	t := &Table{
		Path:        path,
		Scopes:      []Scope{{ID: 0, ParentID: -1}},
		Diagnostics: []syntax.Diagnostic{},
		byKey:       make(map[scopeKey]Symbol),
		nodeScope:   make(map[int]int),
	}
	t.nodeScope[root.ID] = 0
	for _, c := range root.Children {
		t.walk(c, 0, facts)
	}
	return t
}

func (t *Table) walk(n *ast.Node, scope int, facts *ast.FileFacts) {
	kind, declares := symbolKind(n.Kind)
	if declares && n.Name != "" {
		t.insert(Symbol{
			Name:          n.Name,
			QualifiedName: n.QualifiedName,
			Kind:          kind,
			Path:          t.Path,
			NodeID:        n.ID,
			ScopeID:       scope,
		}, n.Range)
	}

	childScope := scope
	if opensScope(n.Kind) {
		childScope = len(t.Scopes)
		t.Scopes = append(t.Scopes, Scope{ID: childScope, ParentID: scope})
		t.nodeScope[n.ID] = childScope

		for _, p := range n.Parameters {
			if p.Name == "" {
				continue
			}
			t.insert(Symbol{
				Name:          p.Name,
				QualifiedName: "",
				Kind:          KindParameter,
				Path:          t.Path,
				NodeID:        n.ID,
				ScopeID:       childScope,
			}, n.Range)
		}
	} else {
		t.nodeScope[n.ID] = scope
	}

	for _, c := range n.Children {
		t.walk(c, childScope, facts)
	}
}

// insert applies the last-writer-wins redeclaration policy.
func (t *Table) insert(sym Symbol, at syntax.SourceRange) {
	key := scopeKey{scope: sym.ScopeID, name: sym.Name}
	if prev, ok := t.byKey[key]; ok && prev.Kind != KindParameter {
		t.Diagnostics = append(t.Diagnostics, syntax.Diagnostic{
			Severity: syntax.SeverityWarning,
			Message:  fmt.Sprintf("redeclaration of %q shadows earlier declaration in the same scope", sym.Name),
			Range:    at,
		})
	}
	t.byKey[key] = sym
}

// Lookup resolves a name by walking the scope chain outward from scopeID.
// The second result is false when no declaration is visible.
func (t *Table) Lookup(scopeID int, name string) (Symbol, bool) {
	for scopeID >= 0 && scopeID < len(t.Scopes) {
		if sym, ok := t.byKey[scopeKey{scope: scopeID, name: name}]; ok {
			return sym, true
		}
		scopeID = t.Scopes[scopeID].ParentID
	}
	return Symbol{}, false
}

// ScopeOf returns the scope associated with an AST node: the scope the node
// introduces if it opens one, otherwise the scope it was declared in.
func (t *Table) ScopeOf(nodeID int) int {
	if s, ok := t.nodeScope[nodeID]; ok {
		return s
	}
	return 0
}

// Symbols returns all symbols in the table, in unspecified order.
func (t *Table) Symbols() []Symbol {
	out := make([]Symbol, 0, len(t.byKey))
	for _, s := range t.byKey {
		out = append(out, s)
	}
	return out
}

// symbolKind maps an AST kind to a symbol kind; the second result is false
// for kinds that do not declare anything (includes, root).
func symbolKind(k ast.Kind) (Kind, bool) {
	switch k {
	case ast.KindFunction, ast.KindMethod:
		return KindFunction, true
	case ast.KindMacro:
		return KindMacro, true
	case ast.KindClass, ast.KindStruct, ast.KindUnion, ast.KindInterface:
		return KindClass, true
	case ast.KindEnum, ast.KindTypedef:
		return KindType, true
	case ast.KindNamespace, ast.KindModule:
		return KindModule, true
	case ast.KindVariable:
		return KindVariable, true
	}
	return "", false
}

// opensScope reports whether declarations inside the node live in a nested
// scope.
func opensScope(k ast.Kind) bool {
	switch k {
	case ast.KindFunction, ast.KindMethod, ast.KindClass, ast.KindStruct,
		ast.KindUnion, ast.KindInterface, ast.KindNamespace, ast.KindModule:
		return true
	}
	return false
}
