package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/dusk-indust/codemap/internal/project"
	"github.com/dusk-indust/codemap/internal/symbols"
)

// IndexSnapshot writes one project snapshot into a store: file nodes,
// declared symbols with DECLARES edges, IMPORTS edges from the dependency
// graph, and REFERENCES edges from resolved cross-references. Insertion
// order is deterministic (sorted paths, sorted symbols) so repeated runs
// against identical snapshots produce identical stores.
func IndexSnapshot(ctx context.Context, s Store, snap project.Snapshot) error {
	if err := s.InitSchema(ctx); err != nil {
		return err
	}

	paths := snap.Files()

	for _, path := range paths {
		r := snap.File(path)
		loc := 0
		if root := r.ASTRoot(); root != nil {
			loc = int(root.Range.EndLine) + 1
		}
		if err := s.AddFile(ctx, FileNode{Path: path, Language: r.Language, LOC: loc}); err != nil {
			return fmt.Errorf("index %s: %w", path, err)
		}

		for _, sym := range sortedSymbols(r.Table()) {
			node := symbolNode(sym, r)
			if err := s.AddSymbol(ctx, node); err != nil {
				return fmt.Errorf("index %s: %w", path, err)
			}
			if err := s.AddEdge(ctx, Edge{SourceID: path, TargetID: node.ID(), Kind: EdgeKindDeclares}); err != nil {
				return fmt.Errorf("index %s: %w", path, err)
			}
		}
	}

	// Edges go in after all nodes so MATCH-CREATE statements find both ends.
	for _, path := range paths {
		for _, dep := range snap.Dependencies(path) {
			if err := s.AddEdge(ctx, Edge{SourceID: path, TargetID: dep, Kind: EdgeKindImports}); err != nil {
				return fmt.Errorf("index %s: %w", path, err)
			}
		}

		resolutions, err := snap.ResolveFile(path)
		if err != nil {
			return fmt.Errorf("index %s: %w", path, err)
		}
		r := snap.File(path)
		for _, res := range resolutions {
			if res.Resolved == nil {
				continue
			}
			src := enclosingSymbolID(path, res.Ref.EnclosingID, r)
			if src == "" {
				continue
			}
			dst := SymbolID(res.Resolved.Path, res.Resolved.QualifiedName)
			if err := s.AddEdge(ctx, Edge{SourceID: src, TargetID: dst, Kind: EdgeKindReferences}); err != nil {
				return fmt.Errorf("index %s: %w", path, err)
			}
		}
	}
	return nil
}

// sortedSymbols returns a file's non-parameter symbols ordered by node ID.
func sortedSymbols(t *symbols.Table) []symbols.Symbol {
	all := t.Symbols()
	out := make([]symbols.Symbol, 0, len(all))
	for _, s := range all {
		if s.Kind == symbols.KindParameter || s.QualifiedName == "" {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NodeID < out[j].NodeID })
	return out
}

func symbolNode(sym symbols.Symbol, r *project.ParseResult) SymbolNode {
	node := SymbolNode{
		Name:          sym.Name,
		QualifiedName: sym.QualifiedName,
		Kind:          string(sym.Kind),
		FilePath:      sym.Path,
		NodeID:        sym.NodeID,
	}
	if n := r.Facts().NodeByID(sym.NodeID); n != nil {
		node.StartLine = int(n.Range.StartLine)
		node.EndLine = int(n.Range.EndLine)
	}
	return node
}

// enclosingSymbolID maps a reference's enclosing AST node to its symbol ID.
// References at file scope attach to no symbol and produce no edge.
func enclosingSymbolID(path string, nodeID int, r *project.ParseResult) string {
	n := r.Facts().NodeByID(nodeID)
	if n == nil || n.QualifiedName == "" {
		return ""
	}
	return SymbolID(path, n.QualifiedName)
}
