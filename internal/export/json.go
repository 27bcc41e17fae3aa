// Package export serializes parse results for downstream tooling: a JSON
// document per file and a Mermaid diagram for the project dependency graph.
package export

import (
	"encoding/json"
	"fmt"

	"github.com/dusk-indust/codemap/internal/ast"
	"github.com/dusk-indust/codemap/internal/lang"
	"github.com/dusk-indust/codemap/internal/project"
	"github.com/dusk-indust/codemap/internal/syntax"
)

// FileExport is the top-level JSON document for one parsed file. AST nodes
// carry flat ranges (start_line, start_column, ...); CST nodes carry the
// nested encoding (start: {line, column}, ...). Readers accept both forms
// for ranges, so documents from either tree can be re-ingested.
type FileExport struct {
	Path     string        `json:"path"`
	Language lang.Language `json:"language"`
	AST      *ast.Node     `json:"ast"`
	CST      *CSTExport    `json:"cst,omitempty"`
}

// CSTExport mirrors a concrete syntax tree node with the nested range
// encoding.
type CSTExport struct {
	Type     string       `json:"type"`
	Content  string       `json:"content,omitempty"`
	Range    NestedRange  `json:"range"`
	Children []*CSTExport `json:"children,omitempty"`
}

// Position is one endpoint of a nested range.
type Position struct {
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"`
}

// NestedRange is the nested {start, end} range encoding.
type NestedRange struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// MarshalFile serializes one parse result. The CST is included only when
// includeCST is set; it is byte-complete and therefore roughly doubles the
// document size.
func MarshalFile(r *project.ParseResult, includeCST bool) ([]byte, error) {
	doc := &FileExport{
		Path:     r.Path,
		Language: r.Language,
		AST:      r.ASTRoot(),
	}
	if includeCST {
		doc.CST = fromCST(r.CSTRoot())
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", r.Path, err)
	}
	return out, nil
}

// UnmarshalFile reads a document produced by MarshalFile.
func UnmarshalFile(data []byte) (*FileExport, error) {
	var doc FileExport
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	return &doc, nil
}

// ToCST converts an imported document back into a concrete syntax tree.
func (e *CSTExport) ToCST() *syntax.CSTNode {
	if e == nil {
		return nil
	}
	n := &syntax.CSTNode{
		Type:    e.Type,
		Content: e.Content,
		Range: syntax.SourceRange{
			StartLine:   e.Range.Start.Line,
			StartColumn: e.Range.Start.Column,
			EndLine:     e.Range.End.Line,
			EndColumn:   e.Range.End.Column,
		},
	}
	for _, c := range e.Children {
		n.Children = append(n.Children, c.ToCST())
	}
	return n
}

func fromCST(n *syntax.CSTNode) *CSTExport {
	if n == nil {
		return nil
	}
	e := &CSTExport{
		Type:    n.Type,
		Content: n.Content,
		Range: NestedRange{
			Start: Position{Line: n.Range.StartLine, Column: n.Range.StartColumn},
			End:   Position{Line: n.Range.EndLine, Column: n.Range.EndColumn},
		},
	}
	// Interior node content is recoverable from the leaves; dropping it
	// keeps the document near-linear in source size.
	if len(n.Children) > 0 {
		e.Content = ""
	}
	for _, c := range n.Children {
		e.Children = append(e.Children, fromCST(c))
	}
	return e
}
