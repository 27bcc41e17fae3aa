// Package resolve links identifier-use sites to declaring symbols. Local
// resolution walks the scope chain outward; cross-file resolution consults
// the project-level merged table through a per-language strategy. An
// unresolved reference is not an error: it is the expected steady state for
// out-of-project and dynamically constructed names.
package resolve

import (
	"strings"

	"github.com/dusk-indust/codemap/internal/ast"
	"github.com/dusk-indust/codemap/internal/lang"
	"github.com/dusk-indust/codemap/internal/symbols"
)

// Resolution pairs a reference with its resolved symbol, if any. Resolved is
// nil when the reference could not be linked.
type Resolution struct {
	Ref      ast.Reference
	Resolved *symbols.Symbol
}

// Input is everything resolution for one file reads. All fields are
// snapshots; Resolve never mutates shared state and may run concurrently
// across files.
type Input struct {
	Language lang.Language
	Facts    *ast.FileFacts
	Table    *symbols.Table
	Merged   *symbols.ProjectTable

	// Deps maps import targets (as written in source) to resolved project
	// file paths. Unresolvable targets are absent.
	Deps map[string]string

	// DepClosure is the set of project files transitively reachable through
	// this file's imports. C-family headers pull in their own includes, so
	// textual visibility is transitive.
	DepClosure map[string]bool
}

// Resolve links every reference site in the file. Output order matches
// Facts.References, making resolution deterministic for a given snapshot.
func Resolve(in Input) []Resolution {
	strat := strategyFor(in.Language)
	out := make([]Resolution, 0, len(in.Facts.References))
	for _, ref := range in.Facts.References {
		out = append(out, Resolution{Ref: ref, Resolved: resolveOne(in, strat, ref)})
	}
	return out
}

func resolveOne(in Input, strat strategy, ref ast.Reference) *symbols.Symbol {
	scope := in.Table.ScopeOf(ref.EnclosingID)

	// Local scope chain first: try the full name, then its base segment
	// ("obj.method" resolves to the declaration of "obj").
	for _, name := range localNames(ref.Name, strat.separator()) {
		if sym, ok := in.Table.Lookup(scope, name); ok {
			return &sym
		}
	}

	if in.Merged == nil {
		return nil
	}
	return strat.crossFile(in, ref)
}

// localNames yields the candidate names for local lookup: the name as
// written, then its leading segment when it is a member access.
func localNames(name, sep string) []string {
	names := []string{name}
	if i := strings.Index(name, sep); i > 0 {
		names = append(names, name[:i])
	}
	// Member access via "." is common to every supported language even when
	// the qualified-name separator differs.
	if sep != "." {
		if i := strings.IndexByte(name, '.'); i > 0 {
			names = append(names, name[:i])
		}
		if i := strings.Index(name, "->"); i > 0 {
			names = append(names, name[:i])
		}
	}
	return names
}

// pickDeterministic chooses one symbol from candidates: same-file
// declarations win, then the lexicographically smallest path. Candidates
// are pre-sorted by the merged table, so the first match is stable.
func pickDeterministic(candidates []symbols.Symbol, selfPath string) *symbols.Symbol {
	if len(candidates) == 0 {
		return nil
	}
	for i := range candidates {
		if candidates[i].Path == selfPath {
			return &candidates[i]
		}
	}
	return &candidates[0]
}

// filterByFiles keeps only candidates declared in visible files.
func filterByFiles(candidates []symbols.Symbol, visible map[string]bool) []symbols.Symbol {
	var out []symbols.Symbol
	for _, c := range candidates {
		if visible[c.Path] {
			out = append(out, c)
		}
	}
	return out
}
