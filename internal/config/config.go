// Package config loads project-level settings from codemap.yml.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultTokenBudget is used when the config file sets no budget.
const DefaultTokenBudget = 4000

// ProjectConfig holds project-level settings loaded from codemap.yml.
type ProjectConfig struct {
	Languages   []string `yaml:"languages,omitempty"`   // restrict to these language names
	ExcludeDirs []string `yaml:"excludeDirs,omitempty"` // directory names skipped during scans
	TokenBudget int      `yaml:"tokenBudget,omitempty"` // default context budget
	IncludeCST  bool     `yaml:"includeCST,omitempty"`  // include CSTs in JSON exports
	DBPath      string   `yaml:"dbPath,omitempty"`      // graph database directory
	Verbose     bool     `yaml:"verbose,omitempty"`
}

// Load attempts to read codemap.yml or codemap.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"codemap.yml", "codemap.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}

// Budget returns the configured token budget, or the default.
func (c *ProjectConfig) Budget() int {
	if c.TokenBudget > 0 {
		return c.TokenBudget
	}
	return DefaultTokenBudget
}

// Excluded reports whether a directory name is excluded. The usual
// dependency and VCS directories are always skipped.
func (c *ProjectConfig) Excluded(name string) bool {
	switch name {
	case ".git", "node_modules", "__pycache__", ".venv", "venv":
		return true
	}
	for _, d := range c.ExcludeDirs {
		if d == name {
			return true
		}
	}
	return false
}

// LanguageEnabled reports whether a detected language passes the config
// filter. An empty filter enables every supported language.
func (c *ProjectConfig) LanguageEnabled(name string) bool {
	if len(c.Languages) == 0 {
		return true
	}
	for _, l := range c.Languages {
		if l == name {
			return true
		}
	}
	return false
}
