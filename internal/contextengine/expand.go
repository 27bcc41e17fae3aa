package contextengine

import "fmt"

// Expand promotes one node (and its subtree) to FULL, together with its
// ancestor chain at SUMMARY or better. Expansion is an explicit user
// override, so the plan's total may exceed the original budget; the
// overage is recorded as a diagnostic. Expanding an already-FULL node is a
// no-op, which makes Expand idempotent.
func Expand(p *Plan, nodeID int) (*Plan, error) {
	if p == nil || p.model == nil {
		return nil, fmt.Errorf("expand: plan has no cost model")
	}
	if !p.model.valid(nodeID) {
		return nil, fmt.Errorf("expand: unknown node id %d", nodeID)
	}
	if p.Decisions[nodeID] == DecisionFull {
		return p, nil
	}

	p.apply(nodeID, DecisionFull)
	if p.Total > p.Budget {
		p.Diagnostics = append(p.Diagnostics,
			fmt.Sprintf("expanded node %d: plan total %d exceeds budget %d", nodeID, p.Total, p.Budget))
	}
	return p, nil
}
