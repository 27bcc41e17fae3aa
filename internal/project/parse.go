package project

import (
	"fmt"

	"github.com/dusk-indust/codemap/internal/ast"
	"github.com/dusk-indust/codemap/internal/lang"
	"github.com/dusk-indust/codemap/internal/symbols"
	"github.com/dusk-indust/codemap/internal/syntax"
)

// ParseResult owns everything produced by parsing one file: the canonical
// CST, the semantic AST with its flat index, and the per-file symbol table.
// A ParseResult is immutable after construction; re-parsing a file replaces
// the whole value.
type ParseResult struct {
	Path     string
	Language lang.Language
	Version  uint64

	cstRoot *syntax.CSTNode
	astRoot *ast.Node
	facts   *ast.FileFacts
	table   *symbols.Table

	Diagnostics []syntax.Diagnostic
}

// ASTRoot returns the root of the abstract syntax tree.
func (r *ParseResult) ASTRoot() *ast.Node { return r.astRoot }

// CSTRoot returns the root of the concrete syntax tree.
func (r *ParseResult) CSTRoot() *syntax.CSTNode { return r.cstRoot }

// Facts returns the file's flat node index, references, and import edges.
func (r *ParseResult) Facts() *ast.FileFacts { return r.facts }

// Table returns the per-file symbol table.
func (r *ParseResult) Table() *symbols.Table { return r.table }

// ParseFile runs the per-file pipeline: grammar adapter, CST builder, AST
// builder, symbol table. The pipeline is synchronous within one file; the
// grammar engine's parse state is not assumed safe for concurrent mutation.
//
// Syntax errors are recoverable: the result carries a partial tree plus
// diagnostics. A missing grammar is fatal for the file only.
func ParseFile(reg *syntax.AdapterRegistry, path string, source []byte, language lang.Language) (*ParseResult, error) {
	if language == lang.LangUnknown {
		language = lang.Detect(path, source)
	}

	cstRoot, cstDiags, err := syntax.ParseCST(reg, source, language)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	astRoot, facts := ast.Build(cstRoot, path, language)
	table := symbols.BuildTable(astRoot, facts, path)

	diags := make([]syntax.Diagnostic, 0, len(cstDiags)+len(facts.Diagnostics)+len(table.Diagnostics))
	diags = append(diags, cstDiags...)
	diags = append(diags, facts.Diagnostics...)
	diags = append(diags, table.Diagnostics...)

	return &ParseResult{
		Path:        path,
		Language:    language,
		cstRoot:     cstRoot,
		astRoot:     astRoot,
		facts:       facts,
		table:       table,
		Diagnostics: diags,
	}, nil
}
