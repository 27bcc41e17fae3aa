package export

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/codemap/internal/store"
)

func TestGenerateMermaid(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()

	require.NoError(t, s.AddEdge(ctx, store.Edge{SourceID: "src/main.c", TargetID: "src/util.h", Kind: store.EdgeKindImports}))
	require.NoError(t, s.AddEdge(ctx, store.Edge{SourceID: "tools/gen.py", TargetID: "src/util.h", Kind: store.EdgeKindImports}))
	// Non-import edges never appear in the diagram.
	require.NoError(t, s.AddEdge(ctx, store.Edge{SourceID: "src/main.c", TargetID: "src/main.c#main", Kind: store.EdgeKindDeclares}))

	out, err := GenerateMermaid(ctx, s)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, `subgraph`)
	assert.Contains(t, out, `["src"]`)
	assert.Contains(t, out, `["tools"]`)
	assert.Contains(t, out, `["src/util.h"]`)
	assert.Equal(t, 2, strings.Count(out, "-->"))
	assert.NotContains(t, out, "#main")
}

func TestGenerateMermaid_Empty(t *testing.T) {
	out, err := GenerateMermaid(context.Background(), store.NewMemStore())
	require.NoError(t, err)
	assert.Equal(t, "graph TD\n", out)
}
