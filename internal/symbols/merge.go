package symbols

import "sort"

// ProjectTable is the project-level symbol index, merged from per-file
// tables and keyed by qualified name. Conflicting definitions across files
// are kept as a list, not collapsed, so the resolver can pick based on
// file-specific context. A ProjectTable is an immutable snapshot: it is
// rebuilt, never mutated, when files change.
type ProjectTable struct {
	byQualified map[string][]Symbol
	byFile      map[string]map[string]Symbol // path -> top-level name -> symbol
}

// Merge builds a ProjectTable from per-file tables. Input order does not
// matter: symbols are sorted by path for deterministic conflict lists.
func Merge(tables []*Table) *ProjectTable {
	p := &ProjectTable{
		byQualified: make(map[string][]Symbol),
		byFile:      make(map[string]map[string]Symbol),
	}
	for _, t := range tables {
		if t == nil {
			continue
		}
		topLevel := make(map[string]Symbol)
		for _, sym := range t.Symbols() {
			if sym.Kind == KindParameter || sym.QualifiedName == "" {
				continue
			}
			p.byQualified[sym.QualifiedName] = append(p.byQualified[sym.QualifiedName], sym)
			if sym.ScopeID == 0 {
				topLevel[sym.Name] = sym
			}
		}
		p.byFile[t.Path] = topLevel
	}
	for _, syms := range p.byQualified {
		sort.Slice(syms, func(i, j int) bool {
			if syms[i].Path != syms[j].Path {
				return syms[i].Path < syms[j].Path
			}
			return syms[i].NodeID < syms[j].NodeID
		})
	}
	return p
}

// Lookup returns all symbols with the given qualified name, ordered by path.
func (p *ProjectTable) Lookup(qualifiedName string) []Symbol {
	return p.byQualified[qualifiedName]
}

// LookupInFile returns the top-level symbol with the given name declared in
// a specific file.
func (p *ProjectTable) LookupInFile(path, name string) (Symbol, bool) {
	if top, ok := p.byFile[path]; ok {
		if sym, ok := top[name]; ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

// Len returns the number of distinct qualified names in the table.
func (p *ProjectTable) Len() int {
	return len(p.byQualified)
}
