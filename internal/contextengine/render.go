package contextengine

import (
	"strings"

	"github.com/dusk-indust/codemap/internal/ast"
)

// ElisionMarker replaces dropped subtrees in rendered output.
const ElisionMarker = "..."

// Render materializes a plan as text. FULL nodes contribute their raw
// content verbatim; SUMMARY nodes contribute a signature line and recurse
// into kept children; elided children collapse into a single marker per
// run. Rendering reads the tree and the plan only, so concurrent renders
// of the same tree are safe.
func Render(root *ast.Node, p *Plan) string {
	var sb strings.Builder
	renderNode(&sb, root, p, 0)
	return sb.String()
}

func renderNode(sb *strings.Builder, n *ast.Node, p *Plan, depth int) {
	switch p.DecisionFor(n.ID) {
	case DecisionFull:
		writeIndented(sb, n.RawContent, depth)
	case DecisionSummary:
		writeIndented(sb, summaryLine(n), depth)
		childDepth := depth
		if n.Kind != ast.KindRoot {
			childDepth++
		}
		elided := false
		for _, c := range n.Children {
			if p.DecisionFor(c.ID) == DecisionElided {
				elided = true
				continue
			}
			if elided {
				writeIndented(sb, ElisionMarker, childDepth)
				elided = false
			}
			renderNode(sb, c, p, childDepth)
		}
		if elided {
			writeIndented(sb, ElisionMarker, childDepth)
		}
	case DecisionElided:
		writeIndented(sb, ElisionMarker, depth)
	}
}

// summaryLine is the one-line signature form of a node.
func summaryLine(n *ast.Node) string {
	switch {
	case n.Kind == ast.KindRoot:
		return "// " + n.Path
	case n.Signature != "":
		return n.Signature + " " + ElisionMarker
	case n.Name != "":
		return strings.ToLower(string(n.Kind)) + " " + n.Name + " " + ElisionMarker
	default:
		return ElisionMarker
	}
}

func writeIndented(sb *strings.Builder, text string, depth int) {
	prefix := strings.Repeat("  ", depth)
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if line != "" {
			sb.WriteString(prefix)
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
}
