// Package project aggregates per-file parse results into a project-wide
// view: a dependency graph, a merged symbol table, and incremental
// re-parsing with snapshot-based invalidation.
package project

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dusk-indust/codemap/internal/ast"
	"github.com/dusk-indust/codemap/internal/lang"
	"github.com/dusk-indust/codemap/internal/resolve"
	"github.com/dusk-indust/codemap/internal/symbols"
	"github.com/dusk-indust/codemap/internal/syntax"
)

// Context owns all ParseResults for a project. Files parse independently
// and in parallel; the merged symbol table is the only cross-file shared
// resource and is updated under a single-writer discipline, with immutable
// snapshots handed to readers.
type Context struct {
	registry *syntax.AdapterRegistry

	mu       sync.RWMutex
	version  uint64
	files    map[string]*ParseResult
	failures map[string][]syntax.Diagnostic
	merged   *symbols.ProjectTable
	deps     map[string]map[string]string // path -> import target -> resolved path
	stale    map[string]bool              // dependents with potentially stale resolutions
}

// New creates an empty project context using the given adapter registry.
func New(registry *syntax.AdapterRegistry) *Context {
	return &Context{
		registry: registry,
		files:    make(map[string]*ParseResult),
		failures: make(map[string][]syntax.Diagnostic),
		deps:     make(map[string]map[string]string),
		stale:    make(map[string]bool),
	}
}

// AddFile parses one file and integrates it. Re-adding a path replaces the
// previous ParseResult: only that file's results and symbols are
// invalidated; dependents keep their ParseResults but are marked stale
// until the next resolution pass.
func (c *Context) AddFile(path string, source []byte) error {
	result, err := ParseFile(c.registry, path, source, lang.LangUnknown)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		// Per-file failure: record a diagnostic, never abort the project.
		c.failures[path] = append(c.failures[path], syntax.Diagnostic{
			Severity: syntax.SeverityError,
			Message:  err.Error(),
		})
		return err
	}
	delete(c.failures, path)
	c.integrate(result)
	return nil
}

// ParseAll parses many files in parallel. Each file runs its own pipeline
// (no shared mutable state between them); merge operations are serialized
// by the context's lock. Per-file failures are collected, not fatal.
func (c *Context) ParseAll(ctx context.Context, sources map[string][]byte) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for path, source := range sources {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			result, err := ParseFile(c.registry, path, source, lang.LangUnknown)

			c.mu.Lock()
			defer c.mu.Unlock()
			if err != nil {
				c.failures[path] = append(c.failures[path], syntax.Diagnostic{
					Severity: syntax.SeverityError,
					Message:  err.Error(),
				})
				return nil
			}
			delete(c.failures, path)
			c.integrate(result)
			return nil
		})
	}
	return g.Wait()
}

// RemoveFile drops a file's ParseResult and the symbols it contributed.
func (c *Context) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.files[path]; !ok {
		return
	}
	delete(c.files, path)
	delete(c.deps, path)
	delete(c.failures, path)
	c.markDependentsStale(path)
	c.rebuildLocked()
}

// integrate installs a ParseResult and rebuilds derived state. Caller holds
// the write lock.
func (c *Context) integrate(result *ParseResult) {
	c.version++
	result.Version = c.version
	c.files[result.Path] = result
	c.markDependentsStale(result.Path)
	delete(c.stale, result.Path)
	c.rebuildLocked()
}

// rebuildLocked recomputes the merged table and the dependency graph from
// the current file set. The merged table is built fresh, never mutated in
// place, so concurrent readers of the previous snapshot are unaffected.
func (c *Context) rebuildLocked() {
	paths := make([]string, 0, len(c.files))
	tables := make([]*symbols.Table, 0, len(c.files))
	for p, r := range c.files {
		paths = append(paths, p)
		tables = append(tables, r.Table())
	}
	sort.Strings(paths)
	c.merged = symbols.Merge(tables)

	resolver := newPathResolver(paths)
	c.deps = make(map[string]map[string]string, len(c.files))
	for p, r := range c.files {
		edges := make(map[string]string)
		for _, imp := range r.Facts().Imports {
			if target, ok := resolver.resolve(imp, r.Language, p); ok {
				edges[imp.Target] = target
			}
		}
		c.deps[p] = edges
	}
}

func (c *Context) markDependentsStale(path string) {
	for p, edges := range c.deps {
		if p == path {
			continue
		}
		for _, target := range edges {
			if target == path {
				c.stale[p] = true
				break
			}
		}
	}
}

// Snapshot is a read-only view of the project at one version. Resolution
// reads a snapshot and may run concurrently across files; a re-parse after
// the snapshot was taken never corrupts it.
type Snapshot struct {
	Version uint64
	Merged  *symbols.ProjectTable
	files   map[string]*ParseResult
	deps    map[string]map[string]string
}

// Snapshot captures the current merged table, file set, and dependency
// graph.
func (c *Context) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	files := make(map[string]*ParseResult, len(c.files))
	for p, r := range c.files {
		files[p] = r
	}
	deps := make(map[string]map[string]string, len(c.deps))
	for p, e := range c.deps {
		deps[p] = e
	}
	return Snapshot{Version: c.version, Merged: c.merged, files: files, deps: deps}
}

// File returns the ParseResult for a path, or nil.
func (s Snapshot) File(path string) *ParseResult { return s.files[path] }

// Files returns all file paths in sorted order.
func (s Snapshot) Files() []string {
	out := make([]string, 0, len(s.files))
	for p := range s.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Dependencies returns the resolved dependency paths of a file, sorted.
func (s Snapshot) Dependencies(path string) []string {
	seen := make(map[string]bool)
	for _, target := range s.deps[path] {
		seen[target] = true
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// DepClosure returns every file transitively reachable from path through
// dependency edges.
func (s Snapshot) DepClosure(path string) map[string]bool {
	closure := make(map[string]bool)
	frontier := []string{path}
	for len(frontier) > 0 {
		next := frontier[0]
		frontier = frontier[1:]
		for _, target := range s.deps[next] {
			if !closure[target] {
				closure[target] = true
				frontier = append(frontier, target)
			}
		}
	}
	return closure
}

// ResolveFile links every reference in one file against this snapshot.
// Resolution is deterministic for a given snapshot and mutates nothing.
func (s Snapshot) ResolveFile(path string) ([]resolve.Resolution, error) {
	r := s.files[path]
	if r == nil {
		return nil, fmt.Errorf("no parse result for %s", path)
	}
	return resolve.Resolve(resolve.Input{
		Language:   r.Language,
		Facts:      r.Facts(),
		Table:      r.Table(),
		Merged:     s.Merged,
		Deps:       s.deps[path],
		DepClosure: s.DepClosure(path),
	}), nil
}

// Stale reports whether a file's previously computed resolutions may be
// stale because a dependency was re-parsed.
func (c *Context) Stale(path string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stale[path]
}

// MarkResolved clears the staleness flag after a resolution pass.
func (c *Context) MarkResolved(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.stale, path)
}

// Diagnostics returns all per-file diagnostics, including parse failures,
// keyed by path.
func (c *Context) Diagnostics() map[string][]syntax.Diagnostic {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string][]syntax.Diagnostic)
	for p, r := range c.files {
		if len(r.Diagnostics) > 0 {
			out[p] = append([]syntax.Diagnostic(nil), r.Diagnostics...)
		}
	}
	for p, d := range c.failures {
		out[p] = append(out[p], d...)
	}
	return out
}

// ImportsOf exposes the raw import edges of a file for export tooling.
func (c *Context) ImportsOf(path string) []ast.Import {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if r, ok := c.files[path]; ok {
		return r.Facts().Imports
	}
	return nil
}
