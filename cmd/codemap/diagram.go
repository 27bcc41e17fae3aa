//go:build cgo

package main

import (
	"context"
	"fmt"

	"github.com/dusk-indust/codemap/internal/config"
	"github.com/dusk-indust/codemap/internal/export"
)

func runDiagram(projectRoot string, cfg *config.ProjectConfig) error {
	s, err := openGraph(projectRoot, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	mermaid, err := export.GenerateMermaid(context.Background(), s)
	if err != nil {
		return err
	}

	fmt.Print(mermaid)
	return nil
}
