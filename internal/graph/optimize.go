package graph

// DedupeEdges removes redundant edges. Two edges are redundant when they
// share origin, target and type; the first occurrence wins so the
// surviving resource and description are stable across runs.
func DedupeEdges(edges []*Edge) []*Edge {
	type key struct {
		from string
		to   string
		typ  DependencyType
	}
	seen := make(map[key]struct{}, len(edges))
	kept := make([]*Edge, 0, len(edges))
	for _, edge := range edges {
		k := key{from: edge.From, to: edge.To, typ: edge.Type}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, edge)
	}
	return kept
}

// Optimize returns a copy of the graph with duplicate edges removed. The
// receiver is left untouched.
func (g *Graph) Optimize() *Graph {
	kept := DedupeEdges(g.edges)

	nodes := make(map[string]*Node, len(g.nodes))
	for id, node := range g.nodes {
		nodes[id] = node
	}
	ids := make([]string, len(g.ids))
	copy(ids, g.ids)

	forward, reverse := BuildAdjacency(ids, kept)
	return &Graph{
		nodes:   nodes,
		ids:     ids,
		edges:   kept,
		forward: forward,
		reverse: reverse,
	}
}
