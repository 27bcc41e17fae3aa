package contextengine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dusk-indust/codemap/internal/ast"
)

// Decision is the per-node outcome of a compression plan.
type Decision int8

const (
	// DecisionElided drops the node entirely; rendering replaces it with a
	// placeholder marker.
	DecisionElided Decision = iota
	// DecisionSummary keeps only the node's signature form.
	DecisionSummary
	// DecisionFull keeps the node's raw content.
	DecisionFull
)

func (d Decision) String() string {
	switch d {
	case DecisionFull:
		return "FULL"
	case DecisionSummary:
		return "SUMMARY"
	}
	return "ELIDED"
}

// ErrBudgetInfeasible reports that even the minimal required structure
// exceeds the budget. The call still returns the smallest feasible plan.
var ErrBudgetInfeasible = errors.New("token budget below minimal feasible plan")

// ImportanceFunc scores a node's priority for inclusion. Higher keeps the
// node longer. Ties are broken by pre-order position for determinism.
type ImportanceFunc func(*ast.Node) float64

// Plan is a compression plan: one decision per node, plus the cost charged
// for that decision. Nodes absent from Decisions are ELIDED. A plan never
// contains a kept node whose parent chain is missing: ancestors of any kept
// node are at least SUMMARY.
type Plan struct {
	Budget      int
	Decisions   map[int]Decision
	Costs       map[int]int
	Total       int
	Infeasible  bool
	Diagnostics []string

	model *costModel
}

// DecisionFor returns the decision for a node ID (ELIDED when absent).
func (p *Plan) DecisionFor(id int) Decision {
	return p.Decisions[id]
}

// Compress produces a plan for the subtree rooted at root that fits within
// budget tokens. Nodes are visited in priority order and kept FULL while
// the running total allows; after that they degrade to SUMMARY, then to
// ELIDED. When even the root's summary exceeds the budget the smallest
// feasible plan (root at SUMMARY) is returned together with a
// coverage-shortfall diagnostic; the call itself does not fail.
func Compress(root *ast.Node, budget int, importance ImportanceFunc) (*Plan, error) {
	if root == nil {
		return nil, errors.New("compress: nil root")
	}
	if importance == nil {
		importance = DefaultImportance
	}

	m := newCostModel(root)
	p := &Plan{
		Budget:    budget,
		Decisions: make(map[int]Decision),
		Costs:     make(map[int]int),
		model:     m,
	}

	// The root at SUMMARY is the minimal required structure.
	p.Decisions[root.ID] = DecisionSummary
	p.Costs[root.ID] = SummaryCost
	p.Total = SummaryCost
	if p.Total > budget {
		p.Infeasible = true
		p.Diagnostics = append(p.Diagnostics,
			fmt.Sprintf("budget %d below minimal plan cost %d; returning smallest feasible plan", budget, p.Total))
		return p, nil
	}

	order := priorityOrder(m, importance)
	for _, id := range order {
		if p.Decisions[id] == DecisionFull {
			continue // covered by an already-kept ancestor
		}
		if !p.tryKeep(id, DecisionFull) {
			p.tryKeep(id, DecisionSummary)
		}
	}
	return p, nil
}

// priorityOrder sorts node IDs by importance descending, pre-order
// ascending on ties.
func priorityOrder(m *costModel, importance ImportanceFunc) []int {
	ids := make([]int, 0, len(m.nodes))
	scores := make([]float64, len(m.nodes))
	for id, n := range m.nodes {
		if n == nil {
			continue
		}
		ids = append(ids, id)
		scores[id] = importance(n)
	}
	sort.SliceStable(ids, func(a, b int) bool {
		if scores[ids[a]] != scores[ids[b]] {
			return scores[ids[a]] > scores[ids[b]]
		}
		return ids[a] < ids[b]
	})
	return ids
}

// tryKeep attempts to set a node to the given decision, charging the node
// and any not-yet-kept ancestors (which become SUMMARY). Returns false
// without modifying the plan when the budget would be exceeded.
func (p *Plan) tryKeep(id int, d Decision) bool {
	delta := p.upgradeDelta(id, d)
	if p.Total+delta > p.Budget {
		return false
	}
	p.apply(id, d)
	return true
}

// upgradeDelta computes the additional cost of moving a node to decision d,
// including SUMMARY charges for every currently-elided ancestor.
func (p *Plan) upgradeDelta(id int, d Decision) int {
	cost := SummaryCost
	if d == DecisionFull {
		cost = p.model.fullCost[id]
	}
	delta := cost - p.Costs[id]

	for a := p.model.parent[id]; a >= 0; a = p.model.parent[a] {
		if p.Decisions[a] == DecisionElided {
			delta += SummaryCost
		}
	}

	if d == DecisionFull {
		// Descendants are covered by the node's raw content: any charge
		// they carried is refunded.
		p.model.descendants(id, func(c int) {
			delta -= p.Costs[c]
		})
	}
	return delta
}

// apply installs a decision, promotes elided ancestors to SUMMARY, and for
// FULL nodes marks the whole subtree FULL at zero extra charge.
func (p *Plan) apply(id int, d Decision) {
	cost := SummaryCost
	if d == DecisionFull {
		cost = p.model.fullCost[id]
	}
	p.Total += cost - p.Costs[id]
	p.Decisions[id] = d
	p.Costs[id] = cost

	for a := p.model.parent[id]; a >= 0; a = p.model.parent[a] {
		if p.Decisions[a] == DecisionElided {
			p.Decisions[a] = DecisionSummary
			p.Costs[a] = SummaryCost
			p.Total += SummaryCost
		}
	}

	if d == DecisionFull {
		p.model.descendants(id, func(c int) {
			p.Total -= p.Costs[c]
			p.Decisions[c] = DecisionFull
			p.Costs[c] = 0
		})
	}
}

// DefaultImportance favors documented callable and type declarations over
// variables and includes, and everything over the synthetic root.
func DefaultImportance(n *ast.Node) float64 {
	var score float64
	switch n.Kind {
	case ast.KindFunction, ast.KindMethod:
		score = 10
	case ast.KindClass, ast.KindStruct, ast.KindInterface:
		score = 9
	case ast.KindEnum, ast.KindUnion, ast.KindTypedef, ast.KindNamespace, ast.KindModule:
		score = 7
	case ast.KindMacro:
		score = 5
	case ast.KindVariable:
		score = 4
	case ast.KindInclude:
		score = 2
	case ast.KindRoot:
		score = 1
	default:
		score = 1
	}
	if n.Docstring != "" {
		score += 0.5
	}
	return score
}
