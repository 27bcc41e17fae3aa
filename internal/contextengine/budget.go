// Package contextengine selects a token-budget-constrained view of an AST.
// A compression plan is a pure annotation layer over an existing tree: the
// engine never copies or mutates the AST, so any number of concurrent
// requests against the same tree need no locking.
package contextengine

import (
	"github.com/dusk-indust/codemap/internal/ast"
)

// SummaryCost is the fixed token cost of a node rendered as signature only.
const SummaryCost = 8

// EstimateTokens approximates the token count of a text span. The heuristic
// (one token per ~4 bytes, minimum 1 for non-empty text) is deterministic
// and needs no external tokenizer.
func EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	n := (len(text) + 3) / 4
	if n < 1 {
		n = 1
	}
	return n
}

// costModel holds the per-node cost table for one AST snapshot, computed
// bottom-up once per compression request.
type costModel struct {
	nodes    []*ast.Node // indexed by node ID (pre-order)
	parent   []int       // node ID -> parent ID, -1 for root
	fullCost []int       // node ID -> cost of keeping the node FULL
}

// newCostModel walks the tree and computes FULL costs bottom-up. A node's
// FULL cost is at least the sum of its children's minimal (summary) costs,
// so costs are monotonically non-decreasing toward the root.
func newCostModel(root *ast.Node) *costModel {
	m := &costModel{}
	m.index(root, -1)
	// Children always have larger IDs than their parent in pre-order, so a
	// reverse sweep computes costs bottom-up.
	for i := len(m.nodes) - 1; i >= 0; i-- {
		n := m.nodes[i]
		if n == nil {
			// Slots below a subtree root are padding when compressing a
			// non-root node; only IDs inside the subtree are populated.
			continue
		}
		cost := EstimateTokens(n.RawContent)
		if floor := SummaryCost * (1 + len(n.Children)); cost < floor {
			cost = floor
		}
		m.fullCost[i] = cost
	}
	return m
}

func (m *costModel) index(n *ast.Node, parent int) {
	// Node IDs are assigned in pre-order by the AST builder; the flat
	// index mirrors that ordering.
	for len(m.nodes) <= n.ID {
		m.nodes = append(m.nodes, nil)
		m.parent = append(m.parent, -1)
		m.fullCost = append(m.fullCost, 0)
	}
	m.nodes[n.ID] = n
	m.parent[n.ID] = parent
	for _, c := range n.Children {
		m.index(c, n.ID)
	}
}

// valid reports whether an ID maps to an indexed node.
func (m *costModel) valid(id int) bool {
	return id >= 0 && id < len(m.nodes) && m.nodes[id] != nil
}

// descendants calls fn for every node strictly below id.
func (m *costModel) descendants(id int, fn func(int)) {
	for _, c := range m.nodes[id].Children {
		fn(c.ID)
		m.descendants(c.ID, fn)
	}
}
