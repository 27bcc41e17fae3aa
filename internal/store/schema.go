// Package store persists the project graph: files, their declared symbols,
// and the edges between them. Backends: KuzuStore (embedded graph database,
// CGO) and MemStore (pure Go, used in tests and as a fallback).
package store

import "github.com/dusk-indust/codemap/internal/lang"

// EdgeKind classifies relationships between graph nodes.
type EdgeKind string

const (
	// EdgeKindDeclares links a file to a symbol it declares.
	EdgeKindDeclares EdgeKind = "DECLARES"
	// EdgeKindImports links an importing file to the imported file.
	EdgeKindImports EdgeKind = "IMPORTS"
	// EdgeKindReferences links a referencing symbol to the symbol it
	// resolves to, possibly across files.
	EdgeKindReferences EdgeKind = "REFERENCES"
)

// FileNode represents a parsed source file.
type FileNode struct {
	Path     string        `json:"path"`
	Language lang.Language `json:"language"`
	LOC      int           `json:"loc"`
}

// SymbolNode represents a declared symbol. ID is the composite
// "filePath#qualifiedName"; NodeID points back into the file's flat AST
// node index.
type SymbolNode struct {
	Name          string `json:"name"`
	QualifiedName string `json:"qualifiedName"`
	Kind          string `json:"kind"`
	FilePath      string `json:"filePath"`
	NodeID        int    `json:"nodeId"`
	StartLine     int    `json:"startLine"`
	EndLine       int    `json:"endLine"`
}

// ID returns the symbol's graph identifier.
func (s SymbolNode) ID() string {
	return SymbolID(s.FilePath, s.QualifiedName)
}

// SymbolID produces a deterministic identifier for a symbol.
func SymbolID(filePath, qualifiedName string) string {
	return filePath + "#" + qualifiedName
}

// Edge represents a relationship between two nodes. Source and target IDs
// are file paths for file nodes and SymbolID values for symbol nodes.
type Edge struct {
	SourceID string   `json:"sourceId"`
	TargetID string   `json:"targetId"`
	Kind     EdgeKind `json:"kind"`
}

// Stats summarizes a stored project graph.
type Stats struct {
	FileCount   int `json:"fileCount"`
	SymbolCount int `json:"symbolCount"`
	EdgeCount   int `json:"edgeCount"`
}

// DependencyChain is an ordered path of file nodes reached by a traversal.
type DependencyChain struct {
	Nodes []string `json:"nodes"`
	Depth int      `json:"depth"`
}
