// Package ast derives the semantic abstract syntax tree from the canonical
// concrete syntax tree using per-language compliance rule tables.
package ast

import (
	"github.com/dusk-indust/codemap/internal/syntax"
)

// Kind classifies semantic AST nodes. The set is closed; every per-language
// rule maps into it.
type Kind string

const (
	KindRoot      Kind = "ROOT"
	KindFunction  Kind = "FUNCTION"
	KindMethod    Kind = "METHOD"
	KindClass     Kind = "CLASS"
	KindStruct    Kind = "STRUCT"
	KindEnum      Kind = "ENUM"
	KindInterface Kind = "INTERFACE"
	KindNamespace Kind = "NAMESPACE"
	KindModule    Kind = "MODULE"
	KindUnion     Kind = "UNION"
	KindTypedef   Kind = "TYPEDEF"
	KindInclude   Kind = "INCLUDE"
	KindMacro     Kind = "MACRO"
	KindVariable  Kind = "VARIABLE"
	KindUnknown   Kind = "UNKNOWN"
)

// Parameter is one declared parameter of a function or method. All fields
// are plain strings; missing data is the empty string, never absent.
type Parameter struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Default string `json:"default"`
}

// Node is one semantic entity in the AST. String fields are never absent:
// missing data is the empty string. Children and Parameters are never nil.
// This is a hard schema contract consumed by external tooling.
type Node struct {
	// ID is the node's position in the file's pre-order flat index. It is
	// stable for the lifetime of the ParseResult and keys compression plans
	// and symbol back-references.
	ID int `json:"id"`

	Kind          Kind               `json:"type"`
	Name          string             `json:"name"`
	QualifiedName string             `json:"qualified_name"`
	Docstring     string             `json:"docstring"`
	Signature     string             `json:"signature"`
	ReturnType    string             `json:"return_type"`
	Parameters    []Parameter        `json:"parameters"`
	Path          string             `json:"path"`
	IsSystem      bool               `json:"is_system"`
	Range         syntax.SourceRange `json:"range"`
	RawContent    string             `json:"raw_content"`
	Children      []*Node            `json:"children"`

	// ParentID is -1 for the root. Kept as an index rather than a pointer
	// so symbol tables can hold non-owning back-references.
	ParentID int `json:"-"`
}

// newNode returns a Node with all sequence fields initialized so that no
// accessor can ever observe nil.
func newNode(kind Kind, path string) *Node {
	return &Node{
		Kind:       kind,
		Path:       path,
		Parameters: []Parameter{},
		Children:   []*Node{},
		ParentID:   -1,
	}
}

// Walk visits the node and its descendants in pre-order.
func (n *Node) Walk(visit func(*Node) bool) {
	if !visit(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// Reference is one identifier-use site. Unresolved references are retained,
// not discarded; unresolved is a normal terminal state.
type Reference struct {
	Name        string             `json:"name"`
	Site        syntax.SourceRange `json:"site"`
	EnclosingID int                `json:"enclosing_id"` // AST node ID of the enclosing declaration
}

// Import is one import/include edge discovered during AST building.
type Import struct {
	Target   string             `json:"target"`
	IsSystem bool               `json:"is_system"`
	Range    syntax.SourceRange `json:"range"`
}

// FileFacts carries per-file side products of AST building: the flat node
// index, reference sites, import edges, and diagnostics.
type FileFacts struct {
	Nodes       []*Node
	References  []Reference
	Imports     []Import
	Diagnostics []syntax.Diagnostic

	// Usings lists C++ using-directive targets (namespaces or qualified
	// names) observed in the file, in document order.
	Usings []string
}

// NodeByID returns the node with the given flat-index ID, or nil.
func (f *FileFacts) NodeByID(id int) *Node {
	if id < 0 || id >= len(f.Nodes) {
		return nil
	}
	return f.Nodes[id]
}

// NodeByQualifiedName returns the first node (in pre-order) with the given
// qualified name, or nil.
func (f *FileFacts) NodeByQualifiedName(qname string) *Node {
	for _, n := range f.Nodes {
		if n.QualifiedName == qname {
			return n
		}
	}
	return nil
}

// NodesByKind returns all nodes of the given kind in pre-order.
func (f *FileFacts) NodesByKind(kind Kind) []*Node {
	var out []*Node
	for _, n := range f.Nodes {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}
