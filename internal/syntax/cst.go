package syntax

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/dusk-indust/codemap/internal/lang"
)

// Severity classifies a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic reports a recoverable problem found while processing a file.
type Diagnostic struct {
	Severity Severity    `json:"severity"`
	Message  string      `json:"message"`
	Range    SourceRange `json:"range"`
}

// ParseCST parses source text into a canonical concrete syntax tree.
//
// On syntax errors the best-effort partial tree is returned together with
// one diagnostic per ERROR or MISSING region; downstream stages must
// tolerate partial trees. The raw tree-sitter tree is owned only for the
// duration of this call and is closed before it returns.
func ParseCST(reg *AdapterRegistry, source []byte, language lang.Language) (*CSTNode, []Diagnostic, error) {
	grammar, err := reg.Grammar(language)
	if err != nil {
		return nil, nil, err
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(grammar); err != nil {
		return nil, nil, fmt.Errorf("set language %s: %w", language, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, nil, fmt.Errorf("grammar engine returned no tree for %s", language)
	}
	defer tree.Close()

	b := &cstBuilder{source: source}
	root := b.convert(tree.RootNode())
	return root, b.diagnostics, nil
}

// cstBuilder copies a raw tree into canonical CSTNodes. Each raw node
// becomes exactly one CSTNode; byte gaps between sibling tokens become
// synthetic gap leaves so that leaf content concatenates back to the source.
type cstBuilder struct {
	source      []byte
	diagnostics []Diagnostic
}

// convert translates one raw node and its subtree. A nil raw node yields
// the UNKNOWN placeholder so the canonical tree never has holes.
func (b *cstBuilder) convert(raw *tree_sitter.Node) *CSTNode {
	if raw == nil {
		return &CSTNode{Type: NodeTypeUnknown, Children: []*CSTNode{}}
	}

	node := &CSTNode{
		Type:     rawType(raw),
		Content:  string(b.source[raw.StartByte():raw.EndByte()]),
		Range:    rawRange(raw),
		Children: []*CSTNode{},
	}

	switch {
	case raw.IsMissing():
		b.diagnostics = append(b.diagnostics, Diagnostic{
			Severity: SeverityError,
			Message:  fmt.Sprintf("missing %s inserted by error recovery", raw.Kind()),
			Range:    node.Range,
		})
	case raw.IsError():
		b.diagnostics = append(b.diagnostics, Diagnostic{
			Severity: SeverityError,
			Message:  "syntax error",
			Range:    node.Range,
		})
	}

	count := raw.ChildCount()
	if count == 0 {
		return node
	}

	// Fill byte gaps between consecutive children (and before the first /
	// after the last) with synthetic leaves so no source byte is lost.
	cursor := raw.StartByte()
	cursorPos := raw.StartPosition()
	for i := uint(0); i < count; i++ {
		child := raw.Child(i)
		if child == nil {
			node.Children = append(node.Children, b.convert(nil))
			continue
		}
		if child.StartByte() > cursor {
			node.Children = append(node.Children, b.gapLeaf(cursor, child.StartByte(), cursorPos, child.StartPosition()))
		}
		node.Children = append(node.Children, b.convert(child))
		cursor = child.EndByte()
		cursorPos = child.EndPosition()
	}
	if cursor < raw.EndByte() {
		node.Children = append(node.Children, b.gapLeaf(cursor, raw.EndByte(), cursorPos, raw.EndPosition()))
	}

	return node
}

func (b *cstBuilder) gapLeaf(start, end uint, startPos, endPos tree_sitter.Point) *CSTNode {
	return &CSTNode{
		Type:    NodeTypeGap,
		Content: string(b.source[start:end]),
		Range: SourceRange{
			StartLine:   uint32(startPos.Row),
			StartColumn: uint32(startPos.Column),
			EndLine:     uint32(endPos.Row),
			EndColumn:   uint32(endPos.Column),
		},
		Children: []*CSTNode{},
	}
}

func rawType(raw *tree_sitter.Node) string {
	if raw.IsMissing() {
		return "MISSING"
	}
	return raw.Kind()
}

func rawRange(raw *tree_sitter.Node) SourceRange {
	start := raw.StartPosition()
	end := raw.EndPosition()
	return SourceRange{
		StartLine:   uint32(start.Row),
		StartColumn: uint32(start.Column),
		EndLine:     uint32(end.Row),
		EndColumn:   uint32(end.Column),
	}
}
