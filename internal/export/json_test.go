package export

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/codemap/internal/ast"
	"github.com/dusk-indust/codemap/internal/lang"
	"github.com/dusk-indust/codemap/internal/project"
	"github.com/dusk-indust/codemap/internal/syntax"
)

const pyFixture = "def helper(x):\n    \"\"\"Doubles x.\"\"\"\n    return x * 2\n"

func parseFixture(t *testing.T) *project.ParseResult {
	t.Helper()
	r, err := project.ParseFile(syntax.NewAdapterRegistry(), "util.py", []byte(pyFixture), lang.LangUnknown)
	require.NoError(t, err)
	return r
}

func TestMarshalFile_ASTOnly(t *testing.T) {
	data, err := MarshalFile(parseFixture(t), false)
	require.NoError(t, err)

	// AST ranges use the flat encoding; the CST is omitted entirely.
	assert.Contains(t, string(data), `"start_line"`)
	assert.NotContains(t, string(data), `"cst"`)

	doc, err := UnmarshalFile(data)
	require.NoError(t, err)
	assert.Equal(t, "util.py", doc.Path)
	assert.Equal(t, lang.LangPython, doc.Language)
	require.NotNil(t, doc.AST)
	assert.Equal(t, ast.KindRoot, doc.AST.Kind)
	require.Len(t, doc.AST.Children, 1)
	assert.Equal(t, "helper", doc.AST.Children[0].Name)
	assert.Equal(t, "Doubles x.", doc.AST.Children[0].Docstring)
	assert.Nil(t, doc.CST)
}

func TestMarshalFile_WithCST(t *testing.T) {
	data, err := MarshalFile(parseFixture(t), true)
	require.NoError(t, err)

	doc, err := UnmarshalFile(data)
	require.NoError(t, err)
	require.NotNil(t, doc.CST)
	assert.Equal(t, "module", doc.CST.Type)
	assert.Empty(t, doc.CST.Content, "interior content is recoverable from leaves")

	// The round-tripped CST is still byte-complete.
	assert.Equal(t, pyFixture, doc.CST.ToCST().LeafText())
}

func TestMarshalFile_CSTRangeEncoding(t *testing.T) {
	data, err := MarshalFile(parseFixture(t), true)
	require.NoError(t, err)

	// CST ranges use the nested encoding.
	var probe struct {
		CST struct {
			Range struct {
				Start *struct {
					Line uint32 `json:"line"`
				} `json:"start"`
			} `json:"range"`
		} `json:"cst"`
	}
	require.NoError(t, json.Unmarshal(data, &probe))
	require.NotNil(t, probe.CST.Range.Start)
}

func TestUnmarshalFile_Invalid(t *testing.T) {
	_, err := UnmarshalFile([]byte("{not json"))
	assert.Error(t, err)
}
