package graph

// Metrics summarizes the shape of a graph.
type Metrics struct {
	NodeCount          int  `json:"node_count"`
	EdgeCount          int  `json:"edge_count"`
	MaxInDegree        int  `json:"max_in_degree"`
	MaxOutDegree       int  `json:"max_out_degree"`
	ParallelGroupCount int  `json:"parallel_group_count"`
	HasCycles          bool `json:"has_cycles"`
}

// Metrics computes degree extremes and the number of parallel execution
// groups. A cyclic graph reports zero groups and HasCycles set.
func (g *Graph) Metrics() Metrics {
	m := Metrics{
		NodeCount: len(g.ids),
		EdgeCount: len(g.edges),
	}
	for _, id := range g.ids {
		if in := len(g.reverse[id]); in > m.MaxInDegree {
			m.MaxInDegree = in
		}
		if out := len(g.forward[id]); out > m.MaxOutDegree {
			m.MaxOutDegree = out
		}
	}
	groups, err := ParallelGroups(g.ids, g.edges)
	if err != nil {
		m.HasCycles = true
		return m
	}
	m.ParallelGroupCount = len(groups)
	return m
}
