package ast

import (
	"path/filepath"
	"strings"

	"github.com/dusk-indust/codemap/internal/lang"
	"github.com/dusk-indust/codemap/internal/syntax"
)

// Build derives the semantic AST for one file from its canonical CST.
//
// The returned root is always non-nil: for a language without rules the AST
// is a bare root covering the whole file. FileFacts carries the pre-order
// flat node index, reference sites, import edges, and diagnostics.
func Build(cstRoot *syntax.CSTNode, path string, language lang.Language) (*Node, *FileFacts) {
	facts := &FileFacts{
		Nodes:       []*Node{},
		References:  []Reference{},
		Imports:     []Import{},
		Diagnostics: []syntax.Diagnostic{},
		Usings:      []string{},
	}

	root := newNode(KindRoot, path)
	root.Name = filepath.Base(path)
	if cstRoot != nil {
		root.Range = cstRoot.Range
		root.RawContent = cstRoot.Content
	}
	root.ID = 0
	facts.Nodes = append(facts.Nodes, root)

	table := tableFor(language)
	if table == nil || cstRoot == nil {
		return root, facts
	}

	b := &builder{path: path, table: table, facts: facts}
	b.walkChildren(cstRoot, root, "")
	return root, facts
}

// builder threads shared state through the CST walk.
type builder struct {
	path  string
	table *ruleTable
	facts *FileFacts
}

// walkChildren scans the children of cst, emitting AST nodes for rule
// matches, collecting reference sites, and descending transparently
// everywhere else. inheritedDoc is a documentation comment found just
// before a transparent wrapper, handed down to the declaration inside it.
func (b *builder) walkChildren(cst *syntax.CSTNode, parent *Node, inheritedDoc string) {
	for i, child := range cst.Children {
		switch child.Type {
		case syntax.NodeTypeGap, "comment":
			continue
		}

		doc := precedingComment(cst.Children, i)
		if doc == "" {
			doc = inheritedDoc
		}
		inheritedDoc = ""

		if b.table.transparent[child.Type] {
			b.walkChildren(child, parent, doc)
			continue
		}

		if r, ok := b.table.rules[child.Type]; ok && (r.when == nil || r.when(child, parent)) {
			b.emit(child, parent, r, doc)
			continue
		}

		if fn, ok := b.table.observe[child.Type]; ok {
			fn(child, b)
		}

		if b.table.callTypes[child.Type] {
			if name, site, ok := b.table.callee(child); ok {
				b.facts.References = append(b.facts.References, Reference{
					Name:        name,
					Site:        site,
					EnclosingID: parent.ID,
				})
			}
		}

		b.walkChildren(child, parent, "")
	}
}

// emit creates one AST node for a matched CST node, runs the rule's
// extraction, and recurses for nested declarations.
func (b *builder) emit(cst *syntax.CSTNode, parent *Node, r rule, doc string) {
	n := newNode(r.kind, b.path)
	n.Range = cst.Range
	n.RawContent = cst.Content
	n.ParentID = parent.ID

	if r.extract != nil {
		r.extract(cst, n, b)
	}

	// A function declared directly inside a class-like container is a
	// method. This is a general structural rule, not a per-language one.
	if n.Kind == KindFunction && isTypeLike(parent.Kind) {
		n.Kind = KindMethod
	}

	if n.Docstring == "" && doc != "" {
		n.Docstring = doc
	}

	// Extraction may set the qualified name itself (C++ out-of-line
	// definitions carry their own scope).
	if n.QualifiedName == "" {
		n.QualifiedName = b.qualify(parent, n.Name)
	}

	n.ID = len(b.facts.Nodes)
	b.facts.Nodes = append(b.facts.Nodes, n)
	parent.Children = append(parent.Children, n)

	b.walkChildren(cst, n, "")
}

// qualify derives the qualified name from the parent chain. The root has an
// empty qualified name so top-level entities are unprefixed.
func (b *builder) qualify(parent *Node, name string) string {
	if name == "" {
		return ""
	}
	if parent.QualifiedName == "" {
		return name
	}
	return parent.QualifiedName + b.table.separator + name
}

// addImport records an import/include edge.
func (b *builder) addImport(target string, isSystem bool, r syntax.SourceRange) {
	if target == "" {
		return
	}
	b.facts.Imports = append(b.facts.Imports, Import{
		Target:   target,
		IsSystem: isSystem,
		Range:    r,
	})
}

// precedingComment collects the chain of comment siblings directly above
// children[i], separated from it by at most one blank line. Returns the
// cleaned text, or "".
func precedingComment(children []*syntax.CSTNode, i int) string {
	var parts []string
	j := i - 1
	for j >= 0 {
		c := children[j]
		if c.Type == syntax.NodeTypeGap {
			// Two or more newlines in the gap means a blank line separates
			// the comment from the declaration; adjacency is broken.
			if strings.Count(c.Content, "\n") > 1 {
				break
			}
			j--
			continue
		}
		if c.Type != "comment" {
			break
		}
		parts = append([]string{cleanComment(c.Content)}, parts...)
		j--
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
