package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dusk-indust/codemap/internal/config"
	"github.com/dusk-indust/codemap/internal/lang"
	"github.com/dusk-indust/codemap/internal/project"
	"github.com/dusk-indust/codemap/internal/syntax"
)

// scanSources walks the project tree and collects the source text of every
// supported file, keyed by project-relative slash path.
func scanSources(projectRoot string, cfg *config.ProjectConfig) (map[string][]byte, error) {
	sources := make(map[string][]byte)
	err := filepath.WalkDir(projectRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible paths
		}
		if d.IsDir() {
			if cfg.Excluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		source, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(projectRoot, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)
		l := lang.Detect(rel, source)
		if l == lang.LangUnknown || !cfg.LanguageEnabled(string(l)) {
			return nil
		}
		sources[rel] = source
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", projectRoot, err)
	}
	return sources, nil
}

// parseProject scans and parses the whole project. Per-file failures are
// reported on stderr when verbose and never abort the run.
func parseProject(ctx context.Context, projectRoot string, cfg *config.ProjectConfig) (*project.Context, error) {
	sources, err := scanSources(projectRoot, cfg)
	if err != nil {
		return nil, err
	}

	proj := project.New(syntax.NewAdapterRegistry())
	if err := proj.ParseAll(ctx, sources); err != nil {
		return nil, err
	}

	if cfg.Verbose {
		for path, diags := range proj.Diagnostics() {
			for _, d := range diags {
				fmt.Fprintf(os.Stderr, "%s: %s: %s\n", path, d.Severity, d.Message)
			}
		}
	}
	return proj, nil
}
