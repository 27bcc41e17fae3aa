package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/codemap/internal/ast"
	"github.com/dusk-indust/codemap/internal/lang"
	"github.com/dusk-indust/codemap/internal/symbols"
	"github.com/dusk-indust/codemap/internal/syntax"
)

// parsedFile is the per-file resolution material derived from one source.
type parsedFile struct {
	table *symbols.Table
	facts *ast.FileFacts
}

func parseFile(t *testing.T, source, path string, language lang.Language) parsedFile {
	t.Helper()
	cst, _, err := syntax.ParseCST(syntax.NewAdapterRegistry(), []byte(source), language)
	require.NoError(t, err)
	root, facts := ast.Build(cst, path, language)
	return parsedFile{table: symbols.BuildTable(root, facts, path), facts: facts}
}

// byName indexes resolutions by reference name for order-independent asserts.
func byName(resolutions []Resolution) map[string]Resolution {
	out := make(map[string]Resolution, len(resolutions))
	for _, r := range resolutions {
		out[r.Ref.Name] = r
	}
	return out
}

func TestResolve_LocalScope(t *testing.T) {
	f := parseFile(t, "void helper(void) { }\nvoid work(void) { helper(); missing(); }\n", "work.c", lang.LangC)

	resolutions := Resolve(Input{Language: lang.LangC, Facts: f.facts, Table: f.table})
	require.Len(t, resolutions, 2)

	// Output order matches the reference sites in the file.
	assert.Equal(t, "helper", resolutions[0].Ref.Name)
	assert.Equal(t, "missing", resolutions[1].Ref.Name)

	helper := resolutions[0]
	require.NotNil(t, helper.Resolved)
	assert.Equal(t, "work.c", helper.Resolved.Path)
	assert.Equal(t, symbols.KindFunction, helper.Resolved.Kind)

	// Unresolved is a normal terminal state, not an error.
	assert.Nil(t, resolutions[1].Resolved)
}

func TestResolve_CIncludeVisibility(t *testing.T) {
	dep := parseFile(t, "void foo(void) { }\n", "a.c", lang.LangC)
	caller := parseFile(t, "void bar(void) { foo(); }\n", "b.c", lang.LangC)
	merged := symbols.Merge([]*symbols.Table{dep.table, caller.table})

	t.Run("visible through the include closure", func(t *testing.T) {
		resolutions := Resolve(Input{
			Language:   lang.LangC,
			Facts:      caller.facts,
			Table:      caller.table,
			Merged:     merged,
			DepClosure: map[string]bool{"a.c": true},
		})
		require.Len(t, resolutions, 1)
		require.NotNil(t, resolutions[0].Resolved)
		assert.Equal(t, "a.c", resolutions[0].Resolved.Path)
	})

	t.Run("not visible without an include edge", func(t *testing.T) {
		resolutions := Resolve(Input{
			Language: lang.LangC,
			Facts:    caller.facts,
			Table:    caller.table,
			Merged:   merged,
		})
		require.Len(t, resolutions, 1)
		assert.Nil(t, resolutions[0].Resolved, "foo is declared in the project but not reachable from b.c")
	})
}

func TestResolve_DeterministicPick(t *testing.T) {
	// The same name declared in two visible files resolves to the
	// lexicographically smallest path.
	first := parseFile(t, "void dup(void) { }\n", "a.c", lang.LangC)
	second := parseFile(t, "void dup(void) { }\n", "b.c", lang.LangC)
	caller := parseFile(t, "void run(void) { dup(); }\n", "c.c", lang.LangC)
	merged := symbols.Merge([]*symbols.Table{first.table, second.table, caller.table})

	resolutions := Resolve(Input{
		Language:   lang.LangC,
		Facts:      caller.facts,
		Table:      caller.table,
		Merged:     merged,
		DepClosure: map[string]bool{"a.c": true, "b.c": true},
	})
	require.Len(t, resolutions, 1)
	require.NotNil(t, resolutions[0].Resolved)
	assert.Equal(t, "a.c", resolutions[0].Resolved.Path)
}

func TestResolve_CppUsingDirective(t *testing.T) {
	ns := parseFile(t, "namespace math {\nint abs(int v) { return v; }\n}\n", "math.cpp", lang.LangCPP)
	caller := parseFile(t, "using namespace math;\nvoid run() { abs(1); math::abs(2); }\n", "main.cpp", lang.LangCPP)
	merged := symbols.Merge([]*symbols.Table{ns.table, caller.table})

	resolutions := Resolve(Input{
		Language:   lang.LangCPP,
		Facts:      caller.facts,
		Table:      caller.table,
		Merged:     merged,
		DepClosure: map[string]bool{"math.cpp": true},
	})
	got := byName(resolutions)

	bare, ok := got["abs"]
	require.True(t, ok)
	require.NotNil(t, bare.Resolved, "bare name resolves through the using directive")
	assert.Equal(t, "math::abs", bare.Resolved.QualifiedName)

	qualified, ok := got["math::abs"]
	require.True(t, ok)
	require.NotNil(t, qualified.Resolved)
	assert.Equal(t, "math.cpp", qualified.Resolved.Path)
}

func TestResolve_PythonImports(t *testing.T) {
	util := parseFile(t, "def helper():\n    pass\n", "util.py", lang.LangPython)
	merged := symbols.Merge([]*symbols.Table{util.table})

	t.Run("module attribute", func(t *testing.T) {
		app := parseFile(t, "import util\n\ndef run():\n    util.helper()\n", "app.py", lang.LangPython)
		resolutions := Resolve(Input{
			Language: lang.LangPython,
			Facts:    app.facts,
			Table:    app.table,
			Merged:   merged,
			Deps:     map[string]string{"util": "util.py"},
		})
		require.Len(t, resolutions, 1)
		assert.Equal(t, "util.helper", resolutions[0].Ref.Name)
		require.NotNil(t, resolutions[0].Resolved)
		assert.Equal(t, "util.py", resolutions[0].Resolved.Path)
		assert.Equal(t, "helper", resolutions[0].Resolved.Name)
	})

	t.Run("from-import bare name", func(t *testing.T) {
		app := parseFile(t, "from util import helper\n\ndef run():\n    helper()\n", "app.py", lang.LangPython)
		resolutions := Resolve(Input{
			Language: lang.LangPython,
			Facts:    app.facts,
			Table:    app.table,
			Merged:   merged,
			Deps:     map[string]string{"util": "util.py"},
		})
		require.Len(t, resolutions, 1)
		require.NotNil(t, resolutions[0].Resolved)
		assert.Equal(t, "util.py", resolutions[0].Resolved.Path)
	})

	t.Run("no import edge, no resolution", func(t *testing.T) {
		app := parseFile(t, "def run():\n    helper()\n", "app.py", lang.LangPython)
		resolutions := Resolve(Input{
			Language: lang.LangPython,
			Facts:    app.facts,
			Table:    app.table,
			Merged:   merged,
		})
		require.Len(t, resolutions, 1)
		assert.Nil(t, resolutions[0].Resolved)
	})
}

func TestResolve_JSModuleImports(t *testing.T) {
	util := parseFile(t, "export function helper() { }\nexport const config = { port: 80 };\n", "util.js", lang.LangJavaScript)
	app := parseFile(t,
		"import { helper } from \"./util.js\";\n\nfunction run() {\n  helper();\n  config.load();\n}\n",
		"app.js", lang.LangJavaScript)
	merged := symbols.Merge([]*symbols.Table{util.table, app.table})

	resolutions := Resolve(Input{
		Language: lang.LangJavaScript,
		Facts:    app.facts,
		Table:    app.table,
		Merged:   merged,
		Deps:     map[string]string{"./util.js": "util.js"},
	})
	got := byName(resolutions)

	helper, ok := got["helper"]
	require.True(t, ok)
	require.NotNil(t, helper.Resolved)
	assert.Equal(t, "util.js", helper.Resolved.Path)

	// Member access resolves to the declaration of its base object.
	load, ok := got["config.load"]
	require.True(t, ok)
	require.NotNil(t, load.Resolved)
	assert.Equal(t, "config", load.Resolved.Name)
}

func TestResolve_PrefersLocalOverImported(t *testing.T) {
	util := parseFile(t, "def helper():\n    pass\n", "util.py", lang.LangPython)
	app := parseFile(t,
		"from util import helper\n\ndef helper():\n    pass\n\ndef run():\n    helper()\n",
		"app.py", lang.LangPython)
	merged := symbols.Merge([]*symbols.Table{util.table, app.table})

	resolutions := Resolve(Input{
		Language: lang.LangPython,
		Facts:    app.facts,
		Table:    app.table,
		Merged:   merged,
		Deps:     map[string]string{"util": "util.py"},
	})
	require.Len(t, resolutions, 1)
	require.NotNil(t, resolutions[0].Resolved)
	assert.Equal(t, "app.py", resolutions[0].Resolved.Path, "the local declaration shadows the import")
}
