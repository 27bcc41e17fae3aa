package resolve

import (
	"sort"
	"strings"

	"github.com/dusk-indust/codemap/internal/ast"
	"github.com/dusk-indust/codemap/internal/lang"
	"github.com/dusk-indust/codemap/internal/symbols"
)

// strategy is the per-language cross-file resolution policy.
type strategy interface {
	separator() string
	crossFile(in Input, ref ast.Reference) *symbols.Symbol
}

func strategyFor(l lang.Language) strategy {
	switch l {
	case lang.LangC:
		return cStrategy{}
	case lang.LangCPP:
		return cppStrategy{}
	case lang.LangPython:
		return pyStrategy{}
	case lang.LangJavaScript, lang.LangTypeScript:
		return jsStrategy{}
	}
	return nullStrategy{}
}

// nullStrategy never resolves across files (Unknown language).
type nullStrategy struct{}

func (nullStrategy) separator() string                             { return "." }
func (nullStrategy) crossFile(Input, ast.Reference) *symbols.Symbol { return nil }

// --- C ---

// cStrategy approximates the textual include model: symbols declared in any
// transitively included project file are visible by bare name.
type cStrategy struct{}

func (cStrategy) separator() string { return "." }

func (cStrategy) crossFile(in Input, ref ast.Reference) *symbols.Symbol {
	candidates := filterByFiles(in.Merged.Lookup(ref.Name), in.DepClosure)
	return pickDeterministic(candidates, in.Table.Path)
}

// --- C++ ---

// cppStrategy extends the C model with namespace qualification and using
// directives: "ns::f" matches directly, a bare "f" also matches "ns::f"
// for every "using namespace ns" in the file.
type cppStrategy struct{}

func (cppStrategy) separator() string { return "::" }

func (cppStrategy) crossFile(in Input, ref ast.Reference) *symbols.Symbol {
	names := []string{ref.Name}
	if !strings.Contains(ref.Name, "::") {
		for _, u := range in.Facts.Usings {
			names = append(names, u+"::"+ref.Name)
		}
	}
	for _, name := range names {
		candidates := filterByFiles(in.Merged.Lookup(name), in.DepClosure)
		if sym := pickDeterministic(candidates, in.Table.Path); sym != nil {
			return sym
		}
	}
	return nil
}

// --- Python ---

// pyStrategy is module/import aware: only names reachable through this
// file's imports resolve. "mod.attr" resolves through "import mod";
// a bare name resolves when "from mod import name" brought it in.
type pyStrategy struct{}

func (pyStrategy) separator() string { return "." }

func (pyStrategy) crossFile(in Input, ref ast.Reference) *symbols.Symbol {
	// Attribute access on an imported module: mod.attr, pkg.mod.attr.
	if i := strings.LastIndexByte(ref.Name, '.'); i > 0 {
		module, attr := ref.Name[:i], ref.Name[i+1:]
		if path, ok := in.Deps[module]; ok {
			if sym, ok := in.Merged.LookupInFile(path, attr); ok {
				return &sym
			}
		}
	}
	// Bare name through a from-import: visible in any directly imported
	// module's top level.
	for _, path := range sortedDepPaths(in.Deps) {
		if sym, ok := in.Merged.LookupInFile(path, ref.Name); ok {
			return &sym
		}
	}
	return nil
}

// --- JavaScript / TypeScript ---

// jsStrategy is module aware: names resolve only through the file's import
// edges. Hoisting needs no special handling here because the per-file scope
// table is not order-sensitive.
type jsStrategy struct{}

func (jsStrategy) separator() string { return "." }

func (jsStrategy) crossFile(in Input, ref ast.Reference) *symbols.Symbol {
	name := ref.Name
	if i := strings.IndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	for _, path := range sortedDepPaths(in.Deps) {
		if sym, ok := in.Merged.LookupInFile(path, name); ok {
			return &sym
		}
	}
	return nil
}

// sortedDepPaths returns the resolved dependency paths in deterministic
// order.
func sortedDepPaths(deps map[string]string) []string {
	paths := make([]string, 0, len(deps))
	for _, p := range deps {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
