package mcptools

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dusk-indust/codemap/internal/ast"
	"github.com/dusk-indust/codemap/internal/config"
	"github.com/dusk-indust/codemap/internal/contextengine"
	"github.com/dusk-indust/codemap/internal/lang"
	"github.com/dusk-indust/codemap/internal/project"
	"github.com/dusk-indust/codemap/internal/store"
	"github.com/dusk-indust/codemap/internal/syntax"
)

// CodeContextService holds the project context, graph store, and per-file
// compression plans used by MCP tool handlers.
type CodeContextService struct {
	registry *syntax.AdapterRegistry
	store    store.Store
	cfg      *config.ProjectConfig

	mu      sync.Mutex
	project *project.Context
	plans   map[string]*contextengine.Plan // path -> plan from the last get_context
}

// NewCodeContextService creates a service backed by the given store.
func NewCodeContextService(reg *syntax.AdapterRegistry, s store.Store, cfg *config.ProjectConfig) *CodeContextService {
	if cfg == nil {
		cfg = &config.ProjectConfig{}
	}
	return &CodeContextService{
		registry: reg,
		store:    s,
		cfg:      cfg,
		project:  project.New(reg),
		plans:    make(map[string]*contextengine.Plan),
	}
}

// IndexProject walks a repository, parses every supported source file into
// the project context, and populates the graph store. Per-file parse
// failures become warnings, not errors.
func (s *CodeContextService) IndexProject(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IndexProjectInput,
) (*mcp.CallToolResult, IndexProjectOutput, error) {
	if input.RepoPath == "" {
		return nil, IndexProjectOutput{}, fmt.Errorf("repoPath is required")
	}
	info, err := os.Stat(input.RepoPath)
	if err != nil {
		return nil, IndexProjectOutput{}, fmt.Errorf("cannot access repoPath: %w", err)
	}
	if !info.IsDir() {
		return nil, IndexProjectOutput{}, fmt.Errorf("repoPath is not a directory: %s", input.RepoPath)
	}

	allowed := func(l lang.Language) bool {
		if len(input.Languages) > 0 {
			for _, name := range input.Languages {
				if strings.EqualFold(name, string(l)) {
					return true
				}
			}
			return false
		}
		return s.cfg.LanguageEnabled(string(l))
	}
	excludeSet := make(map[string]bool, len(input.ExcludeDirs))
	for _, d := range input.ExcludeDirs {
		excludeSet[d] = true
	}

	sources := make(map[string][]byte)
	walkErr := filepath.WalkDir(input.RepoPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible paths
		}
		if d.IsDir() {
			if s.cfg.Excluded(d.Name()) || excludeSet[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		source, err := os.ReadFile(path)
		if err != nil {
			return nil // skip unreadable files
		}
		relPath, err := filepath.Rel(input.RepoPath, path)
		if err != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)
		if l := lang.Detect(relPath, source); l == lang.LangUnknown || !allowed(l) {
			return nil
		}
		sources[relPath] = source
		return nil
	})
	if walkErr != nil {
		return nil, IndexProjectOutput{}, fmt.Errorf("walk: %w", walkErr)
	}

	s.mu.Lock()
	s.project = project.New(s.registry)
	s.plans = make(map[string]*contextengine.Plan)
	proj := s.project
	s.mu.Unlock()

	if err := proj.ParseAll(ctx, sources); err != nil {
		return nil, IndexProjectOutput{}, fmt.Errorf("parse: %w", err)
	}

	var warnings []string
	for path, diags := range proj.Diagnostics() {
		for _, d := range diags {
			if d.Severity == syntax.SeverityError {
				warnings = append(warnings, fmt.Sprintf("%s: %s", path, d.Message))
			}
		}
	}

	if err := store.IndexSnapshot(ctx, s.store, proj.Snapshot()); err != nil {
		return nil, IndexProjectOutput{}, fmt.Errorf("index graph: %w", err)
	}

	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, IndexProjectOutput{}, fmt.Errorf("stats: %w", err)
	}
	return nil, IndexProjectOutput{Stats: *stats, Warnings: warnings}, nil
}

// QuerySymbols searches for symbols by name substring match.
func (s *CodeContextService) QuerySymbols(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QuerySymbolsInput,
) (*mcp.CallToolResult, QuerySymbolsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	found, err := s.store.QuerySymbols(ctx, input.Query, limit)
	if err != nil {
		return nil, QuerySymbolsOutput{}, fmt.Errorf("query symbols: %w", err)
	}

	if input.Kind != "" {
		kind := strings.ToLower(input.Kind)
		filtered := found[:0]
		for _, sym := range found {
			if sym.Kind == kind {
				filtered = append(filtered, sym)
			}
		}
		found = filtered
	}

	return nil, QuerySymbolsOutput{Symbols: found, Total: len(found)}, nil
}

// GetContext renders a budget-constrained view of one file (or of one
// declaration within it). The resulting plan is retained so expand_node can
// grow it later.
func (s *CodeContextService) GetContext(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input GetContextInput,
) (*mcp.CallToolResult, GetContextOutput, error) {
	if input.Path == "" {
		return nil, GetContextOutput{}, fmt.Errorf("path is required")
	}
	budget := input.TokenBudget
	if budget <= 0 {
		budget = s.cfg.Budget()
	}

	s.mu.Lock()
	proj := s.project
	s.mu.Unlock()

	snap := proj.Snapshot()
	r := snap.File(input.Path)
	if r == nil {
		return nil, GetContextOutput{}, fmt.Errorf("file not indexed: %s", input.Path)
	}

	root := r.ASTRoot()
	if input.Symbol != "" {
		node := r.Facts().NodeByQualifiedName(input.Symbol)
		if node == nil {
			return nil, GetContextOutput{}, fmt.Errorf("no declaration %q in %s", input.Symbol, input.Path)
		}
		root = node
	}

	plan, err := contextengine.Compress(root, budget, nil)
	if err != nil {
		return nil, GetContextOutput{}, fmt.Errorf("compress: %w", err)
	}

	s.mu.Lock()
	s.plans[input.Path] = plan
	s.mu.Unlock()

	return nil, GetContextOutput{
		Context:     contextengine.Render(root, plan),
		TokensUsed:  plan.Total,
		TokenBudget: budget,
		Infeasible:  plan.Infeasible,
		Warnings:    plan.Diagnostics,
	}, nil
}

// ExpandNode promotes one node of a previously rendered plan to full text
// and re-renders. Expanding the same node twice is a no-op.
func (s *CodeContextService) ExpandNode(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ExpandNodeInput,
) (*mcp.CallToolResult, ExpandNodeOutput, error) {
	if input.Path == "" {
		return nil, ExpandNodeOutput{}, fmt.Errorf("path is required")
	}

	s.mu.Lock()
	plan := s.plans[input.Path]
	proj := s.project
	s.mu.Unlock()

	if plan == nil {
		return nil, ExpandNodeOutput{}, fmt.Errorf("no prior get_context for %s", input.Path)
	}
	r := proj.Snapshot().File(input.Path)
	if r == nil {
		return nil, ExpandNodeOutput{}, fmt.Errorf("file not indexed: %s", input.Path)
	}

	plan, err := contextengine.Expand(plan, input.NodeID)
	if err != nil {
		return nil, ExpandNodeOutput{}, fmt.Errorf("expand: %w", err)
	}

	s.mu.Lock()
	s.plans[input.Path] = plan
	s.mu.Unlock()

	return nil, ExpandNodeOutput{
		Context:    contextengine.Render(planRoot(r, plan), plan),
		TokensUsed: plan.Total,
		Warnings:   plan.Diagnostics,
	}, nil
}

// planRoot returns the subtree a plan was built over: the plan's smallest
// decided node ID anchors it, which is the file root for whole-file plans.
func planRoot(r *project.ParseResult, plan *contextengine.Plan) *ast.Node {
	rootID := -1
	for id := range plan.Decisions {
		if rootID < 0 || id < rootID {
			rootID = id
		}
	}
	if n := r.Facts().NodeByID(rootID); n != nil {
		return n
	}
	return r.ASTRoot()
}

// GetDependencies traverses the file dependency graph from a given file.
func (s *CodeContextService) GetDependencies(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetDependenciesInput,
) (*mcp.CallToolResult, GetDependenciesOutput, error) {
	if input.Path == "" {
		return nil, GetDependenciesOutput{}, fmt.Errorf("path is required")
	}

	direction := store.DirectionUpstream
	if strings.EqualFold(input.Direction, "downstream") {
		direction = store.DirectionDownstream
	}
	maxDepth := input.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 5
	}

	chains, err := s.store.GetDependencies(ctx, input.Path, direction, maxDepth)
	if err != nil {
		return nil, GetDependenciesOutput{}, fmt.Errorf("get dependencies: %w", err)
	}
	return nil, GetDependenciesOutput{Chains: chains}, nil
}
