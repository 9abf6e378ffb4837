package validate

import (
	"fmt"
	"sort"

	"github.com/sugipamo/project-cph-sub010/internal/graph"
)

// Connectivity finds weakly connected components by walking an undirected
// view of the edges: a dependency in either direction joins its two
// nodes. More than one component means parts of the workflow cannot
// influence each other, which is usually an authoring mistake, so it is
// warned about but never fatal. Edges touching unknown node ids are
// ignored here; Structure reports those.
func Connectivity(nodes []*graph.Node, edges []*graph.Edge) *Result {
	res := newResult()

	ids := make([]string, 0, len(nodes))
	undirected := make(map[string]map[string]struct{}, len(nodes))
	for _, node := range nodes {
		if _, ok := undirected[node.ID]; ok {
			continue
		}
		ids = append(ids, node.ID)
		undirected[node.ID] = make(map[string]struct{})
	}
	for _, edge := range edges {
		if _, ok := undirected[edge.From]; !ok {
			continue
		}
		if _, ok := undirected[edge.To]; !ok {
			continue
		}
		undirected[edge.From][edge.To] = struct{}{}
		undirected[edge.To][edge.From] = struct{}{}
	}

	if len(ids) == 0 {
		res.Statistics["connected_components"] = 0
		res.Statistics["largest_component_size"] = 0
		res.Statistics["smallest_component_size"] = 0
		res.Statistics["isolated_count"] = 0
		res.Statistics["connectivity_ratio"] = 0.0
		return res
	}

	visited := make(map[string]struct{}, len(ids))
	var components [][]string
	for _, id := range ids {
		if _, ok := visited[id]; ok {
			continue
		}
		component := collectComponent(id, undirected, visited)
		components = append(components, component)
	}

	largest, smallest := len(components[0]), len(components[0])
	isolated := 0
	for _, component := range components {
		if len(component) > largest {
			largest = len(component)
		}
		if len(component) < smallest {
			smallest = len(component)
		}
		if len(component) == 1 {
			isolated++
		}
	}

	res.Statistics["connected_components"] = len(components)
	res.Statistics["largest_component_size"] = largest
	res.Statistics["smallest_component_size"] = smallest
	res.Statistics["isolated_count"] = isolated
	res.Statistics["connectivity_ratio"] = float64(largest) / float64(len(ids))

	if len(components) > 1 {
		res.addWarning(fmt.Sprintf("graph is split into %d disconnected components", len(components)))
		res.addSuggestion("Link the components with explicit dependencies if their order matters")
	}
	if isolated > 0 {
		res.addWarning(fmt.Sprintf("%d component(s) contain only a single node", isolated))
	}

	return res
}

// collectComponent walks the undirected adjacency from start, marking
// everything reached. Neighbors are taken in sorted order so the
// component listing is stable.
func collectComponent(start string, undirected map[string]map[string]struct{}, visited map[string]struct{}) []string {
	var component []string
	stack := []string{start}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := visited[current]; ok {
			continue
		}
		visited[current] = struct{}{}
		component = append(component, current)

		neighbors := make([]string, 0, len(undirected[current]))
		for n := range undirected[current] {
			neighbors = append(neighbors, n)
		}
		sort.Strings(neighbors)
		for i := len(neighbors) - 1; i >= 0; i-- {
			if _, ok := visited[neighbors[i]]; !ok {
				stack = append(stack, neighbors[i])
			}
		}
	}
	return component
}
