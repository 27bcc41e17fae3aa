package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dusk-indust/codemap/internal/config"
	"github.com/dusk-indust/codemap/internal/export"
)

// runExportJSON prints the JSON document for one file, or for every parsed
// file when no argument is given.
func runExportJSON(projectRoot string, cfg *config.ProjectConfig, args []string) error {
	proj, err := parseProject(context.Background(), projectRoot, cfg)
	if err != nil {
		return err
	}
	snap := proj.Snapshot()

	paths := args
	if len(paths) == 0 {
		paths = snap.Files()
	}

	for _, path := range paths {
		r := snap.File(path)
		if r == nil {
			return fmt.Errorf("not a supported source file: %s", path)
		}
		out, err := export.MarshalFile(r, cfg.IncludeCST)
		if err != nil {
			return err
		}
		if _, err := os.Stdout.Write(append(out, '\n')); err != nil {
			return err
		}
	}
	return nil
}
