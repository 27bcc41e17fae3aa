package mcptools

import "github.com/dusk-indust/codemap/internal/store"

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// IndexProjectInput is the input for the index_project MCP tool.
type IndexProjectInput struct {
	RepoPath    string   `json:"repoPath" jsonschema:"the absolute path to the repository to index"`
	Languages   []string `json:"languages,omitempty" jsonschema:"languages to index (default: all). Values: c, cpp, python, javascript, typescript"`
	ExcludeDirs []string `json:"excludeDirs,omitempty" jsonschema:"directories to exclude from indexing (e.g. vendor, node_modules)"`
}

// IndexProjectOutput is the result of the index_project MCP tool.
type IndexProjectOutput struct {
	Stats    store.Stats `json:"stats"`
	Warnings []string    `json:"warnings,omitempty"`
}

// QuerySymbolsInput is the input for the query_symbols MCP tool.
type QuerySymbolsInput struct {
	Query string `json:"query" jsonschema:"search query for symbol names (substring match)"`
	Kind  string `json:"kind,omitempty" jsonschema:"filter by symbol kind: function, class, type, variable, module, macro"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results (default: 20)"`
}

// QuerySymbolsOutput is the result of the query_symbols MCP tool.
type QuerySymbolsOutput struct {
	Symbols []store.SymbolNode `json:"symbols"`
	Total   int                `json:"total"`
}

// GetContextInput is the input for the get_context MCP tool.
type GetContextInput struct {
	Path        string `json:"path" jsonschema:"project-relative path of the file to render"`
	Symbol      string `json:"symbol,omitempty" jsonschema:"qualified name of a declaration to focus on; default is the whole file"`
	TokenBudget int    `json:"tokenBudget,omitempty" jsonschema:"maximum tokens for the rendered context (default from project config)"`
}

// GetContextOutput is the result of the get_context MCP tool.
type GetContextOutput struct {
	Context     string   `json:"context"`
	TokensUsed  int      `json:"tokensUsed"`
	TokenBudget int      `json:"tokenBudget"`
	Infeasible  bool     `json:"infeasible,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
}

// ExpandNodeInput is the input for the expand_node MCP tool.
type ExpandNodeInput struct {
	Path   string `json:"path" jsonschema:"project-relative path of a file previously rendered with get_context"`
	NodeID int    `json:"nodeId" jsonschema:"AST node id to expand to full text"`
}

// ExpandNodeOutput is the result of the expand_node MCP tool.
type ExpandNodeOutput struct {
	Context    string   `json:"context"`
	TokensUsed int      `json:"tokensUsed"`
	Warnings   []string `json:"warnings,omitempty"`
}

// GetDependenciesInput is the input for the get_dependencies MCP tool.
type GetDependenciesInput struct {
	Path      string `json:"path" jsonschema:"project-relative file path"`
	Direction string `json:"direction,omitempty" jsonschema:"upstream (what it depends on) or downstream (what depends on it). Default: upstream"`
	MaxDepth  int    `json:"maxDepth,omitempty" jsonschema:"maximum traversal depth (default: 5)"`
}

// GetDependenciesOutput is the result of the get_dependencies MCP tool.
type GetDependenciesOutput struct {
	Chains []store.DependencyChain `json:"chains"`
}
