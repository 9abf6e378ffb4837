package graph

import (
	"fmt"
	"strings"
)

// CycleAnalysis describes one detected cycle: the distinct nodes on it,
// the printable chain and every edge whose endpoints both sit on the
// cycle.
type CycleAnalysis struct {
	Nodes  []string
	Length int
	Chain  string
	Edges  []*Edge
}

// AnalyzeCycles resolves each raw cycle path into a CycleAnalysis. The
// closing repetition of the first node is dropped from Nodes but kept in
// Chain so the printed form reads back to its start.
func AnalyzeCycles(cycles [][]string, edges []*Edge) []CycleAnalysis {
	analyses := make([]CycleAnalysis, 0, len(cycles))
	for _, cycle := range cycles {
		nodes := cycle[:len(cycle)-1]
		member := make(map[string]struct{}, len(nodes))
		for _, id := range nodes {
			member[id] = struct{}{}
		}
		var involved []*Edge
		for _, edge := range edges {
			if _, ok := member[edge.From]; !ok {
				continue
			}
			if _, ok := member[edge.To]; !ok {
				continue
			}
			involved = append(involved, edge)
		}
		analyses = append(analyses, CycleAnalysis{
			Nodes:  nodes,
			Length: len(nodes),
			Chain:  strings.Join(cycle, " -> "),
			Edges:  involved,
		})
	}
	return analyses
}

// FormatCycleError renders detected cycles as a multi-line report meant
// for end users: each chain, the edges that close it, and generic advice
// for breaking it.
func FormatCycleError(cycles [][]string, edges []*Edge) string {
	lines := []string{
		"Circular dependency detected in the workflow graph!",
		"",
		fmt.Sprintf("Found %d circular dependency chain(s):", len(cycles)),
	}
	for i, analysis := range AnalyzeCycles(cycles, edges) {
		lines = append(lines,
			"",
			fmt.Sprintf("Cycle %d (%d nodes):", i+1, analysis.Length),
			"  "+analysis.Chain,
		)
		if len(analysis.Edges) > 0 {
			lines = append(lines, "  Dependencies in this cycle:")
			for _, edge := range analysis.Edges {
				lines = append(lines, fmt.Sprintf("    %s -> %s: %s", edge.From, edge.To, edge.Description))
			}
		}
	}
	lines = append(lines,
		"",
		"Resolution suggestions:",
		"  1. Review the resource dependencies between these nodes",
		"  2. Consider breaking the cycle by removing unnecessary file dependencies",
		"  3. Restructure the workflow to eliminate circular references",
		"  4. Use intermediate files or directories to break direct dependencies",
	)
	return strings.Join(lines, "\n")
}

// AnalyzeCycles analyzes the graph's own cycles.
func (g *Graph) AnalyzeCycles() []CycleAnalysis {
	return AnalyzeCycles(g.DetectCycles(), g.edges)
}

// FormatCycleError renders the graph's cycles, or "" when there are none.
func (g *Graph) FormatCycleError() string {
	cycles := g.DetectCycles()
	if len(cycles) == 0 {
		return ""
	}
	return FormatCycleError(cycles, g.edges)
}
