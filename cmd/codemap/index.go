//go:build cgo

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dusk-indust/codemap/internal/config"
	"github.com/dusk-indust/codemap/internal/store"
)

// graphDir returns the persistent graph database path for a project.
func graphDir(projectRoot string, cfg *config.ProjectConfig) string {
	if cfg.DBPath != "" {
		return cfg.DBPath
	}
	return filepath.Join(projectRoot, ".codemap", "graph")
}

// runIndex parses the whole project and writes the graph to a file-based
// KuzuDB so later commands can query it without re-parsing.
func runIndex(projectRoot string, cfg *config.ProjectConfig) error {
	ctx := context.Background()

	proj, err := parseProject(ctx, projectRoot, cfg)
	if err != nil {
		return err
	}

	dbPath := graphDir(projectRoot, cfg)
	// Remove old graph to avoid stale data.
	os.RemoveAll(dbPath)

	s, err := store.NewKuzuFileStore(dbPath)
	if err != nil {
		return fmt.Errorf("open graph: %w", err)
	}
	defer s.Close()

	if err := store.IndexSnapshot(ctx, s, proj.Snapshot()); err != nil {
		return fmt.Errorf("index: %w", err)
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	fmt.Printf("indexed %d files, %d symbols, %d edges -> %s\n",
		stats.FileCount, stats.SymbolCount, stats.EdgeCount, dbPath)
	return nil
}

// openGraph opens the persistent graph written by a previous `index` run.
func openGraph(projectRoot string, cfg *config.ProjectConfig) (store.Store, error) {
	dbPath := graphDir(projectRoot, cfg)
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("no graph found at %s\nRun 'codemap index' first", dbPath)
	}
	return store.NewKuzuFileStore(dbPath)
}
