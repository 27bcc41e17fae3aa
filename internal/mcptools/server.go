// Package mcptools exposes the code map over the Model Context Protocol.
package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewCodeContextMCPServer creates an MCP server with all 5 code context
// tools registered.
func NewCodeContextMCPServer(svc *CodeContextService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "codemap",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "index_project",
		Description: "Index a repository. Walks the file tree, parses every supported source file, builds symbol tables and the file dependency graph, and stores the result for querying.",
	}, svc.IndexProject)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_symbols",
		Description: "Search for declared symbols (functions, classes, types, etc.) by name substring match. Optionally filter by symbol kind and limit results.",
	}, svc.QuerySymbols)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_context",
		Description: "Render a token-budget-constrained view of one file or one declaration. High-priority declarations appear in full, the rest as signatures or elision markers.",
	}, svc.GetContext)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "expand_node",
		Description: "Expand one summarized or elided node from a previous get_context call to its full text and re-render. Expanding the same node twice is a no-op.",
	}, svc.ExpandNode)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_dependencies",
		Description: "Traverse the file dependency graph upstream or downstream from a file. Returns dependency chains up to the specified depth.",
	}, svc.GetDependencies)

	return server
}

// RunMCPServer starts an HTTP server exposing the code context MCP tools.
func RunMCPServer(ctx context.Context, svc *CodeContextService, addr string) error {
	server := NewCodeContextMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
