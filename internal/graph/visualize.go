package graph

import (
	"fmt"
	"strings"
)

// Visualize renders the graph as an indented text report: node summary,
// dependency list and the parallel execution groups. Node statuses come
// from the caller since the graph itself holds no execution state; nodes
// absent from the map show as pending.
func (g *Graph) Visualize(status map[string]string) string {
	lines := []string{
		"Request Execution Graph:",
		fmt.Sprintf("Nodes: %d", len(g.ids)),
		fmt.Sprintf("Edges: %d", len(g.edges)),
	}

	lines = append(lines, "", "Nodes:")
	for _, id := range g.ids {
		kind := "unknown"
		if v, ok := g.nodes[id].Metadata["step_type"].(string); ok && v != "" {
			kind = v
		}
		st, ok := status[id]
		if !ok {
			st = "pending"
		}
		lines = append(lines, fmt.Sprintf("  %s: %s (status: %s)", id, kind, st))
	}

	lines = append(lines, "", "Dependencies:")
	for _, edge := range g.edges {
		lines = append(lines, fmt.Sprintf("  %s -> %s (%s)", edge.From, edge.To, edge.Type))
	}

	groups, err := g.ParallelGroups()
	if err != nil {
		lines = append(lines, "", fmt.Sprintf("Error: %s", err))
	} else {
		lines = append(lines, "", "Parallel Execution Groups:")
		for i, group := range groups {
			lines = append(lines, fmt.Sprintf("  Group %d: %s", i+1, strings.Join(group, ", ")))
		}
	}

	return strings.Join(lines, "\n")
}
