package validate

import (
	"fmt"
	"strings"

	"github.com/sugipamo/project-cph-sub010/internal/graph"
)

// Structural limits before the validator suggests consolidating entry and
// exit points of the workflow.
const (
	maxSinkNodes   = 3
	maxSourceNodes = 5
)

// Structure checks the raw shape of the graph: at least one node, unique
// node ids, no self-loops, and every edge endpoint resolving to a known
// node. Duplicate edges, unknown dependency types and degenerate
// topologies (isolated nodes, too many sources or sinks) are reported as
// warnings.
func Structure(nodes []*graph.Node, edges []*graph.Edge) *Result {
	res := newResult()
	res.Statistics["total_nodes"] = len(nodes)
	res.Statistics["total_edges"] = len(edges)

	if len(nodes) == 0 {
		res.addError("graph has no nodes")
		return res
	}

	ids := make([]string, 0, len(nodes))
	known := make(map[string]struct{}, len(nodes))
	for _, node := range nodes {
		if _, dup := known[node.ID]; dup {
			res.addError(fmt.Sprintf("duplicate node id '%s'", node.ID))
			continue
		}
		known[node.ID] = struct{}{}
		ids = append(ids, node.ID)
	}

	type edgeKey struct {
		from string
		to   string
		typ  graph.DependencyType
	}
	seen := make(map[edgeKey]struct{}, len(edges))
	typeCounts := make(map[string]int)
	for i, edge := range edges {
		if edge.From == edge.To {
			res.addError(fmt.Sprintf("edge %d is a self-loop on node '%s'", i, edge.From))
		}
		if _, ok := known[edge.From]; !ok {
			res.addError(fmt.Sprintf("edge %d references unknown node '%s'", i, edge.From))
		}
		if _, ok := known[edge.To]; !ok {
			res.addError(fmt.Sprintf("edge %d references unknown node '%s'", i, edge.To))
		}
		if !graph.KnownDependencyType(edge.Type) {
			res.addWarning(fmt.Sprintf("edge %d has unknown dependency type '%s'", i, edge.Type))
		}
		key := edgeKey{from: edge.From, to: edge.To, typ: edge.Type}
		if _, dup := seen[key]; dup {
			res.addWarning(fmt.Sprintf("duplicate edge %s -> %s (%s)", edge.From, edge.To, edge.Type))
		}
		seen[key] = struct{}{}
		typeCounts[string(edge.Type)]++
	}
	res.Statistics["edge_types"] = typeCounts

	forward, reverse := graph.BuildAdjacency(ids, edges)
	var isolated []string
	sinks, sources := 0, 0
	for _, id := range ids {
		out := len(forward[id])
		in := len(reverse[id])
		if out == 0 && in == 0 {
			isolated = append(isolated, id)
		}
		if out == 0 {
			sinks++
		}
		if in == 0 {
			sources++
		}
	}
	res.Statistics["isolated_nodes"] = len(isolated)
	res.Statistics["sink_nodes"] = sinks
	res.Statistics["source_nodes"] = sources

	if len(isolated) > 0 {
		res.addWarning(fmt.Sprintf("%d isolated node(s) with no dependencies: %s", len(isolated), strings.Join(isolated, ", ")))
		res.addSuggestion("Connect isolated nodes to the workflow or remove them")
	}
	if sinks > maxSinkNodes {
		res.addWarning(fmt.Sprintf("graph has %d sink nodes without outgoing edges", sinks))
		res.addSuggestion("Consider consolidating terminal nodes into a single finishing step")
	}
	if sources > maxSourceNodes {
		res.addWarning(fmt.Sprintf("graph has %d source nodes without incoming edges", sources))
		res.addSuggestion("Consider consolidating entry nodes into a single starting step")
	}

	return res
}
