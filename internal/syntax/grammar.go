package syntax

import (
	"errors"
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/dusk-indust/codemap/internal/lang"
)

// ErrGrammarUnavailable is returned when no grammar is registered for a
// language. It is fatal for that file only; project operations continue.
var ErrGrammarUnavailable = errors.New("no grammar registered for language")

// AdapterRegistry maps languages to their tree-sitter grammars. It is an
// explicit value constructed at startup and passed into the pipeline, so
// tests get deterministic behavior without global mutable state.
type AdapterRegistry struct {
	grammars map[lang.Language]*tree_sitter.Language
}

// NewAdapterRegistry creates a registry with all supported grammars
// registered: C, C++, Python, JavaScript, and TypeScript.
func NewAdapterRegistry() *AdapterRegistry {
	return &AdapterRegistry{
		grammars: map[lang.Language]*tree_sitter.Language{
			lang.LangC:          tree_sitter.NewLanguage(tree_sitter_c.Language()),
			lang.LangCPP:        tree_sitter.NewLanguage(tree_sitter_cpp.Language()),
			lang.LangPython:     tree_sitter.NewLanguage(tree_sitter_python.Language()),
			lang.LangJavaScript: tree_sitter.NewLanguage(tree_sitter_javascript.Language()),
			lang.LangTypeScript: tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
		},
	}
}

// Grammar returns the tree-sitter grammar for a language, or
// ErrGrammarUnavailable if none is registered.
func (r *AdapterRegistry) Grammar(l lang.Language) (*tree_sitter.Language, error) {
	g, ok := r.grammars[l]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGrammarUnavailable, l)
	}
	return g, nil
}

// Languages returns the registered languages.
func (r *AdapterRegistry) Languages() []lang.Language {
	out := make([]lang.Language, 0, len(r.grammars))
	for _, l := range lang.Supported {
		if _, ok := r.grammars[l]; ok {
			out = append(out, l)
		}
	}
	return out
}
