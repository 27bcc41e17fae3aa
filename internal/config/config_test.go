package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("reads codemap.yml", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "codemap.yml"), []byte(
			"languages: [python, c]\nexcludeDirs: [vendor]\ntokenBudget: 1200\nincludeCST: true\n"), 0o644))

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"python", "c"}, cfg.Languages)
		assert.Equal(t, []string{"vendor"}, cfg.ExcludeDirs)
		assert.Equal(t, 1200, cfg.Budget())
		assert.True(t, cfg.IncludeCST)
	})

	t.Run("missing file yields zero-value config", func(t *testing.T) {
		cfg, err := Load(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, &ProjectConfig{}, cfg)
		assert.Equal(t, DefaultTokenBudget, cfg.Budget())
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "codemap.yaml"), []byte("languages: [unclosed"), 0o644))
		_, err := Load(dir)
		assert.Error(t, err)
	})
}

func TestExcluded(t *testing.T) {
	cfg := &ProjectConfig{ExcludeDirs: []string{"build"}}

	assert.True(t, cfg.Excluded(".git"))
	assert.True(t, cfg.Excluded("node_modules"))
	assert.True(t, cfg.Excluded("__pycache__"))
	assert.True(t, cfg.Excluded("build"))
	assert.False(t, cfg.Excluded("src"))
}

func TestLanguageEnabled(t *testing.T) {
	all := &ProjectConfig{}
	assert.True(t, all.LanguageEnabled("python"))
	assert.True(t, all.LanguageEnabled("typescript"))

	some := &ProjectConfig{Languages: []string{"c", "cpp"}}
	assert.True(t, some.LanguageEnabled("c"))
	assert.False(t, some.LanguageEnabled("python"))
}
