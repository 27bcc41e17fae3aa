package mcptools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/codemap/internal/store"
	"github.com/dusk-indust/codemap/internal/syntax"
)

// newTestService builds a service over an in-memory store with an indexed
// fixture repository.
func newTestService(t *testing.T) *CodeContextService {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"util.py":                "def helper():\n    pass\n",
		"app.py":                 "import util\n\ndef run():\n    util.helper()\n",
		"big.py":                 "def alpha():\n    \"\"\"First.\"\"\"\n    return 1\n\n\ndef beta():\n    return 2\n\n\nx = 1\n",
		"README.md":              "not source\n",
		"node_modules/vendor.js": "const skipped = 1;\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	svc := NewCodeContextService(syntax.NewAdapterRegistry(), store.NewMemStore(), nil)
	_, out, err := svc.IndexProject(context.Background(), nil, IndexProjectInput{RepoPath: dir})
	require.NoError(t, err)
	require.Empty(t, out.Warnings)
	return svc
}

func TestIndexProject(t *testing.T) {
	svc := newTestService(t)

	stats, err := svc.store.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.FileCount, "markdown and excluded dirs never index")
	assert.Equal(t, 5, stats.SymbolCount)

	t.Run("input validation", func(t *testing.T) {
		_, _, err := svc.IndexProject(context.Background(), nil, IndexProjectInput{})
		assert.ErrorContains(t, err, "repoPath is required")

		_, _, err = svc.IndexProject(context.Background(), nil, IndexProjectInput{RepoPath: "/no/such/dir"})
		assert.ErrorContains(t, err, "cannot access repoPath")
	})

	t.Run("language filter", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.py"), []byte("def f():\n    pass\n"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "b.js"), []byte("function g() { }\n"), 0o644))

		filtered := NewCodeContextService(syntax.NewAdapterRegistry(), store.NewMemStore(), nil)
		_, _, err := filtered.IndexProject(context.Background(), nil,
			IndexProjectInput{RepoPath: dir, Languages: []string{"javascript"}})
		require.NoError(t, err)

		stats, err := filtered.store.Stats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, stats.FileCount)
	})

	t.Run("broken files index with warnings", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.c"), []byte("int main( {\n"), 0o644))

		svc := NewCodeContextService(syntax.NewAdapterRegistry(), store.NewMemStore(), nil)
		_, out, err := svc.IndexProject(context.Background(), nil, IndexProjectInput{RepoPath: dir})
		require.NoError(t, err)
		assert.NotEmpty(t, out.Warnings)
	})
}

func TestQuerySymbols(t *testing.T) {
	svc := newTestService(t)

	_, out, err := svc.QuerySymbols(context.Background(), nil, QuerySymbolsInput{Query: "helper"})
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "util.py", out.Symbols[0].FilePath)

	t.Run("kind filter", func(t *testing.T) {
		_, out, err := svc.QuerySymbols(context.Background(), nil, QuerySymbolsInput{Query: "x", Kind: "variable"})
		require.NoError(t, err)
		for _, sym := range out.Symbols {
			assert.Equal(t, "variable", sym.Kind)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		_, out, err := svc.QuerySymbols(context.Background(), nil, QuerySymbolsInput{Query: "zzz_nothing"})
		require.NoError(t, err)
		assert.Zero(t, out.Total)
	})
}

func TestGetContext(t *testing.T) {
	svc := newTestService(t)

	t.Run("whole file within budget", func(t *testing.T) {
		_, out, err := svc.GetContext(context.Background(), nil, GetContextInput{Path: "big.py"})
		require.NoError(t, err)
		assert.False(t, out.Infeasible)
		assert.LessOrEqual(t, out.TokensUsed, out.TokenBudget)
		assert.Contains(t, out.Context, "def alpha():")
	})

	t.Run("tight budget degrades to summaries", func(t *testing.T) {
		_, out, err := svc.GetContext(context.Background(), nil, GetContextInput{Path: "big.py", TokenBudget: 28})
		require.NoError(t, err)
		assert.False(t, out.Infeasible)
		assert.LessOrEqual(t, out.TokensUsed, 28)
		assert.True(t, strings.HasPrefix(out.Context, "// big.py\n"))
		assert.NotContains(t, out.Context, "x = 1")
	})

	t.Run("single declaration focus", func(t *testing.T) {
		_, out, err := svc.GetContext(context.Background(), nil,
			GetContextInput{Path: "util.py", Symbol: "helper", TokenBudget: 500})
		require.NoError(t, err)
		assert.Contains(t, out.Context, "def helper():")
	})

	t.Run("infeasible budget is reported, not fatal", func(t *testing.T) {
		_, out, err := svc.GetContext(context.Background(), nil, GetContextInput{Path: "big.py", TokenBudget: 2})
		require.NoError(t, err)
		assert.True(t, out.Infeasible)
		assert.NotEmpty(t, out.Warnings)
	})

	t.Run("unknown file and symbol", func(t *testing.T) {
		_, _, err := svc.GetContext(context.Background(), nil, GetContextInput{Path: "absent.py"})
		assert.ErrorContains(t, err, "not indexed")

		_, _, err = svc.GetContext(context.Background(), nil, GetContextInput{Path: "util.py", Symbol: "nope"})
		assert.ErrorContains(t, err, "no declaration")
	})
}

func TestExpandNode(t *testing.T) {
	svc := newTestService(t)

	t.Run("requires a prior get_context", func(t *testing.T) {
		_, _, err := svc.ExpandNode(context.Background(), nil, ExpandNodeInput{Path: "big.py", NodeID: 1})
		assert.ErrorContains(t, err, "no prior get_context")
	})

	// Budget 28 keeps the two functions and elides the variable (node 3).
	_, compressed, err := svc.GetContext(context.Background(), nil, GetContextInput{Path: "big.py", TokenBudget: 28})
	require.NoError(t, err)
	require.NotContains(t, compressed.Context, "x = 1")

	_, expanded, err := svc.ExpandNode(context.Background(), nil, ExpandNodeInput{Path: "big.py", NodeID: 3})
	require.NoError(t, err)
	assert.Contains(t, expanded.Context, "x = 1")
	assert.Greater(t, expanded.TokensUsed, compressed.TokensUsed)
	assert.NotEmpty(t, expanded.Warnings, "exceeding the budget is recorded")

	t.Run("idempotent", func(t *testing.T) {
		_, again, err := svc.ExpandNode(context.Background(), nil, ExpandNodeInput{Path: "big.py", NodeID: 3})
		require.NoError(t, err)
		assert.Equal(t, expanded.TokensUsed, again.TokensUsed)
		assert.Equal(t, expanded.Context, again.Context)
	})
}

func TestGetDependencies(t *testing.T) {
	svc := newTestService(t)

	t.Run("upstream default", func(t *testing.T) {
		_, out, err := svc.GetDependencies(context.Background(), nil, GetDependenciesInput{Path: "app.py"})
		require.NoError(t, err)
		require.Len(t, out.Chains, 1)
		assert.Equal(t, []string{"app.py", "util.py"}, out.Chains[0].Nodes)
	})

	t.Run("downstream", func(t *testing.T) {
		_, out, err := svc.GetDependencies(context.Background(), nil,
			GetDependenciesInput{Path: "util.py", Direction: "downstream"})
		require.NoError(t, err)
		require.Len(t, out.Chains, 1)
		assert.Equal(t, []string{"util.py", "app.py"}, out.Chains[0].Nodes)
	})

	t.Run("path required", func(t *testing.T) {
		_, _, err := svc.GetDependencies(context.Background(), nil, GetDependenciesInput{})
		assert.ErrorContains(t, err, "path is required")
	})
}
