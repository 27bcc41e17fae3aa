package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dusk-indust/codemap/internal/config"
	"github.com/dusk-indust/codemap/internal/contextengine"
)

// runContext renders a budget-constrained view of one file, or of one
// declaration when a qualified name is given as a second argument.
func runContext(projectRoot string, cfg *config.ProjectConfig, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: codemap context <file> [qualified-name]")
	}
	path := args[0]

	proj, err := parseProject(context.Background(), projectRoot, cfg)
	if err != nil {
		return err
	}

	r := proj.Snapshot().File(path)
	if r == nil {
		return fmt.Errorf("not a supported source file: %s", path)
	}

	root := r.ASTRoot()
	if len(args) > 1 {
		node := r.Facts().NodeByQualifiedName(args[1])
		if node == nil {
			return fmt.Errorf("no declaration %q in %s", args[1], path)
		}
		root = node
	}

	plan, err := contextengine.Compress(root, cfg.Budget(), nil)
	if err != nil {
		return err
	}
	for _, w := range plan.Diagnostics {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	fmt.Print(contextengine.Render(root, plan))
	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "tokens: %d of %d\n", plan.Total, plan.Budget)
	}
	return nil
}
