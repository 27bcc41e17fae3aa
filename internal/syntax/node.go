// Package syntax wraps the tree-sitter grammar engine and builds the
// canonical concrete syntax tree. Raw tree-sitter trees never leave this
// package: they are fully copied into CSTNode values and closed before any
// result is returned.
package syntax

// NodeTypeUnknown is the type assigned to CST nodes standing in for missing
// or null raw grammar nodes. The tree schema is total: a hole in the raw
// tree becomes an UNKNOWN node, never an absent one.
const NodeTypeUnknown = "UNKNOWN"

// NodeTypeGap is the type of synthetic leaves carrying inter-token text
// (whitespace, mostly) that the grammar engine does not attribute to any
// token. Gap leaves keep the structural-completeness invariant: the
// concatenated content of all leaves reproduces the source bytes exactly.
const NodeTypeGap = "gap"

// CSTNode is one node of the canonical concrete syntax tree. A node owns its
// children; the root is owned by the ParseResult that produced it.
type CSTNode struct {
	Type     string
	Content  string
	Range    SourceRange
	Children []*CSTNode
}

// IsLeaf reports whether the node has no children.
func (n *CSTNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// HasError reports whether the node or any descendant is an ERROR or
// MISSING node produced by error recovery.
func (n *CSTNode) HasError() bool {
	if n.Type == "ERROR" || n.Type == "MISSING" {
		return true
	}
	for _, c := range n.Children {
		if c.HasError() {
			return true
		}
	}
	return false
}

// LeafText concatenates the content of all leaf nodes in document order.
// For a well-formed tree this reproduces the original source text.
func (n *CSTNode) LeafText() string {
	var sb []byte
	n.appendLeaves(&sb)
	return string(sb)
}

func (n *CSTNode) appendLeaves(out *[]byte) {
	if n.IsLeaf() {
		*out = append(*out, n.Content...)
		return
	}
	for _, c := range n.Children {
		c.appendLeaves(out)
	}
}

// Find returns the first node in pre-order whose type matches, or nil.
func (n *CSTNode) Find(nodeType string) *CSTNode {
	if n.Type == nodeType {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(nodeType); found != nil {
			return found
		}
	}
	return nil
}

// FindChild returns the first direct child with any of the given types.
func (n *CSTNode) FindChild(types ...string) *CSTNode {
	for _, c := range n.Children {
		for _, t := range types {
			if c.Type == t {
				return c
			}
		}
	}
	return nil
}

// FindChildren returns all direct children with the given type.
func (n *CSTNode) FindChildren(nodeType string) []*CSTNode {
	var out []*CSTNode
	for _, c := range n.Children {
		if c.Type == nodeType {
			out = append(out, c)
		}
	}
	return out
}
