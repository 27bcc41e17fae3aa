package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/codemap/internal/lang"
)

func TestMemStore_Files(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	require.NoError(t, s.InitSchema(ctx))

	require.NoError(t, s.AddFile(ctx, FileNode{Path: "src/main.c", Language: lang.LangC, LOC: 42}))

	f, err := s.GetFile(ctx, "src/main.c")
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, lang.LangC, f.Language)
	assert.Equal(t, 42, f.LOC)

	missing, err := s.GetFile(ctx, "absent.c")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemStore_Symbols(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	require.NoError(t, s.AddSymbol(ctx, SymbolNode{
		Name: "draw", QualifiedName: "Widget::draw", Kind: "function",
		FilePath: "widget.cpp", NodeID: 3, StartLine: 10, EndLine: 14,
	}))
	require.NoError(t, s.AddSymbol(ctx, SymbolNode{
		Name: "Widget", QualifiedName: "Widget", Kind: "class", FilePath: "widget.cpp", NodeID: 1,
	}))

	sym, err := s.GetSymbol(ctx, "widget.cpp", "Widget::draw")
	require.NoError(t, err)
	require.NotNil(t, sym)
	assert.Equal(t, "widget.cpp#Widget::draw", sym.ID())
	assert.Equal(t, 10, sym.StartLine)

	missing, err := s.GetSymbol(ctx, "widget.cpp", "Widget::erase")
	require.NoError(t, err)
	assert.Nil(t, missing)

	t.Run("query matches name and qualified name, case-insensitive", func(t *testing.T) {
		found, err := s.QuerySymbols(ctx, "DRAW", 0)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "draw", found[0].Name)

		found, err = s.QuerySymbols(ctx, "widget", 0)
		require.NoError(t, err)
		assert.Len(t, found, 2, "qualified name matches count too")
	})

	t.Run("limit caps results", func(t *testing.T) {
		found, err := s.QuerySymbols(ctx, "widget", 1)
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})
}

func TestMemStore_GetDependencies(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	// a -> b -> c, plus d -> a.
	for _, e := range []Edge{
		{SourceID: "a.c", TargetID: "b.c", Kind: EdgeKindImports},
		{SourceID: "b.c", TargetID: "c.c", Kind: EdgeKindImports},
		{SourceID: "d.c", TargetID: "a.c", Kind: EdgeKindImports},
	} {
		require.NoError(t, s.AddEdge(ctx, e))
	}

	t.Run("upstream follows what the file depends on", func(t *testing.T) {
		chains, err := s.GetDependencies(ctx, "a.c", DirectionUpstream, 5)
		require.NoError(t, err)
		require.Len(t, chains, 2)
		assert.Equal(t, []string{"a.c", "b.c"}, chains[0].Nodes)
		assert.Equal(t, 1, chains[0].Depth)
		assert.Equal(t, []string{"a.c", "b.c", "c.c"}, chains[1].Nodes)
		assert.Equal(t, 2, chains[1].Depth)
	})

	t.Run("downstream follows dependents", func(t *testing.T) {
		chains, err := s.GetDependencies(ctx, "a.c", DirectionDownstream, 5)
		require.NoError(t, err)
		require.Len(t, chains, 1)
		assert.Equal(t, []string{"a.c", "d.c"}, chains[0].Nodes)
	})

	t.Run("depth limit", func(t *testing.T) {
		chains, err := s.GetDependencies(ctx, "a.c", DirectionUpstream, 1)
		require.NoError(t, err)
		require.Len(t, chains, 1)
		assert.Equal(t, []string{"a.c", "b.c"}, chains[0].Nodes)

		chains, err = s.GetDependencies(ctx, "a.c", DirectionUpstream, 0)
		require.NoError(t, err)
		assert.Empty(t, chains)
	})
}

func TestMemStore_Stats(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	require.NoError(t, s.AddFile(ctx, FileNode{Path: "a.py", Language: lang.LangPython}))
	require.NoError(t, s.AddSymbol(ctx, SymbolNode{Name: "f", QualifiedName: "f", FilePath: "a.py"}))
	require.NoError(t, s.AddEdge(ctx, Edge{SourceID: "a.py", TargetID: "a.py#f", Kind: EdgeKindDeclares}))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Stats{FileCount: 1, SymbolCount: 1, EdgeCount: 1}, stats)

	require.NoError(t, s.Close())
}
