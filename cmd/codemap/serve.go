package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dusk-indust/codemap/internal/config"
	"github.com/dusk-indust/codemap/internal/mcptools"
	"github.com/dusk-indust/codemap/internal/store"
	"github.com/dusk-indust/codemap/internal/syntax"
)

// runServe starts the MCP server. The graph lives in an in-memory store;
// clients rebuild it with the index_project tool.
func runServe(projectRoot, addr string, cfg *config.ProjectConfig) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := mcptools.NewCodeContextService(syntax.NewAdapterRegistry(), store.NewMemStore(), cfg)
	fmt.Fprintf(os.Stderr, "codemap MCP server listening on %s (project root %s)\n", addr, projectRoot)
	return mcptools.RunMCPServer(ctx, svc, addr)
}
