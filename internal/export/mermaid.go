package export

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dusk-indust/codemap/internal/store"
)

// GenerateMermaid produces a Mermaid graph TD diagram from a project graph
// store. Files are grouped by their top-level directory; IMPORTS edges
// become arrows.
func GenerateMermaid(ctx context.Context, s store.Store) (string, error) {
	edges, err := s.GetAllEdges(ctx)
	if err != nil {
		return "", fmt.Errorf("get edges: %w", err)
	}

	// Collect every file appearing in an IMPORTS edge, grouped by directory.
	groups := make(map[string][]string)
	seen := make(map[string]bool)
	for _, e := range edges {
		if e.Kind != store.EdgeKindImports {
			continue
		}
		for _, path := range []string{e.SourceID, e.TargetID} {
			if seen[path] {
				continue
			}
			seen[path] = true
			g := topDir(path)
			groups[g] = append(groups[g], path)
		}
	}

	// Node -> ID mapping for Mermaid (alphanumeric only).
	nodeIDs := make(map[string]string)
	nextID := 0
	getID := func(path string) string {
		if id, ok := nodeIDs[path]; ok {
			return id
		}
		id := fmt.Sprintf("N%d", nextID)
		nextID++
		nodeIDs[path] = id
		return id
	}

	groupNames := make([]string, 0, len(groups))
	for g := range groups {
		groupNames = append(groupNames, g)
	}
	sort.Strings(groupNames)

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, g := range groupNames {
		members := groups[g]
		sort.Strings(members)
		sb.WriteString(fmt.Sprintf("  subgraph %s[\"%.40s\"]\n", getID(g+"_group"), g))
		for _, member := range members {
			sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", getID(member), shortPath(member)))
		}
		sb.WriteString("  end\n")
	}

	for _, e := range edges {
		if e.Kind != store.EdgeKindImports {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %s --> %s\n", getID(e.SourceID), getID(e.TargetID)))
	}

	return sb.String(), nil
}

// topDir returns the first path segment, or "." for root-level files.
func topDir(path string) string {
	parts := strings.SplitN(filepath.ToSlash(path), "/", 2)
	if len(parts) < 2 {
		return "."
	}
	return parts[0]
}

// shortPath returns the last 2 path segments for readability.
func shortPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) <= 2 {
		return path
	}
	return strings.Join(parts[len(parts)-2:], "/")
}
