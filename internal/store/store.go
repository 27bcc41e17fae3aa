package store

import (
	"context"
	"io"
)

// Store is the interface for the project graph backend. Implementations:
// KuzuStore (persistent), MemStore (in-memory).
type Store interface {
	io.Closer

	// Schema setup, called once before any data is inserted.
	InitSchema(ctx context.Context) error

	// Write operations.
	AddFile(ctx context.Context, node FileNode) error
	AddSymbol(ctx context.Context, node SymbolNode) error
	AddEdge(ctx context.Context, edge Edge) error

	// Read operations.
	GetFile(ctx context.Context, path string) (*FileNode, error)
	GetSymbol(ctx context.Context, filePath, qualifiedName string) (*SymbolNode, error)
	QuerySymbols(ctx context.Context, query string, limit int) ([]SymbolNode, error)

	// Graph traversal over IMPORTS edges.
	GetDependencies(ctx context.Context, path string, direction Direction, maxDepth int) ([]DependencyChain, error)
	GetAllEdges(ctx context.Context) ([]Edge, error)

	Stats(ctx context.Context) (*Stats, error)
}

// Direction controls dependency traversal direction.
type Direction string

const (
	// DirectionUpstream follows edges toward what a file depends on.
	DirectionUpstream Direction = "upstream"
	// DirectionDownstream follows edges toward what depends on a file.
	DirectionDownstream Direction = "downstream"
)
