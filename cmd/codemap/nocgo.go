//go:build !cgo

package main

import (
	"fmt"

	"github.com/dusk-indust/codemap/internal/config"
)

// The persistent graph commands require the embedded graph database, which
// needs CGO. Builds without it keep the parse-only commands.

func runIndex(string, *config.ProjectConfig) error {
	return fmt.Errorf("the index command requires a CGO-enabled build")
}

func runDiagram(string, *config.ProjectConfig) error {
	return fmt.Errorf("the diagram command requires a CGO-enabled build")
}

func runQuery(string, *config.ProjectConfig, []string) error {
	return fmt.Errorf("the query command requires a CGO-enabled build")
}
