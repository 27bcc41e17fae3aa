//go:build cgo

package main

import (
	"context"
	"fmt"

	"github.com/dusk-indust/codemap/internal/config"
)

// runQuery searches the persistent graph for symbols by name substring.
func runQuery(projectRoot string, cfg *config.ProjectConfig, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: codemap query <pattern>")
	}

	s, err := openGraph(projectRoot, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	found, err := s.QuerySymbols(context.Background(), args[0], 50)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if len(found) == 0 {
		fmt.Println("no symbols found")
		return nil
	}
	for _, sym := range found {
		fmt.Printf("%-10s %-40s %s:%d\n", sym.Kind, sym.QualifiedName, sym.FilePath, sym.StartLine+1)
	}
	return nil
}
