package graph

import "sort"

// Three-color DFS marking.
const (
	white = iota
	gray
	black
)

// DetectCycles finds every dependency cycle reachable in the forward
// adjacency. When the walk hits a node already on the current path (gray),
// it emits the path from that node's first occurrence back to itself,
// inclusive of the repeated id. Fully processed nodes (black) are never
// re-explored, so the walk is O(V+E).
//
// Roots are visited in ids order, then any adjacency-only keys in sorted
// order, which keeps the result deterministic for identical input.
func DetectCycles(ids []string, forward map[string]map[string]struct{}) [][]string {
	color := make(map[string]int, len(forward))

	roots := make([]string, 0, len(forward))
	known := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		roots = append(roots, id)
		known[id] = struct{}{}
	}
	var extras []string
	for id := range forward {
		if _, ok := known[id]; !ok {
			extras = append(extras, id)
		}
	}
	sort.Strings(extras)
	roots = append(roots, extras...)

	var cycles [][]string
	var visit func(id string, path []string)
	visit = func(id string, path []string) {
		switch color[id] {
		case gray:
			start := 0
			for i, p := range path {
				if p == id {
					start = i
					break
				}
			}
			cycle := make([]string, 0, len(path)-start+1)
			cycle = append(cycle, path[start:]...)
			cycle = append(cycle, id)
			cycles = append(cycles, cycle)
			return
		case black:
			return
		}
		color[id] = gray
		branch := make([]string, len(path)+1)
		copy(branch, path)
		branch[len(path)] = id
		for _, next := range sortedKeys(forward[id]) {
			visit(next, branch)
		}
		color[id] = black
	}

	for _, id := range roots {
		if color[id] == white {
			visit(id, nil)
		}
	}
	return cycles
}
