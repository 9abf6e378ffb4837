package graph

import (
	"errors"
	"sort"
)

// ErrCyclicGraph is returned by ParallelGroups when the graph cannot be
// leveled because it contains at least one cycle.
var ErrCyclicGraph = errors.New("cannot calculate parallel groups: graph contains cycles")

// ParallelGroups partitions ids into execution levels. Every node lands on
// the level one past its deepest predecessor, so all members of a group
// depend only on earlier groups and can run concurrently. Nodes without
// predecessors form group zero. Within a group, nodes keep their
// topological order.
func ParallelGroups(ids []string, edges []*Edge) ([][]string, error) {
	sorted, valid, _ := TopologicalSort(ids, edges)
	if !valid {
		return nil, ErrCyclicGraph
	}

	_, reverse := BuildAdjacency(ids, edges)

	levels := make(map[string]int, len(sorted))
	for _, id := range sorted {
		maxDepLevel := -1
		for dep := range reverse[id] {
			if lvl, ok := levels[dep]; ok && lvl > maxDepLevel {
				maxDepLevel = lvl
			}
		}
		levels[id] = maxDepLevel + 1
	}

	byLevel := make(map[int][]string)
	for _, id := range sorted {
		lvl := levels[id]
		byLevel[lvl] = append(byLevel[lvl], id)
	}

	order := make([]int, 0, len(byLevel))
	for lvl := range byLevel {
		order = append(order, lvl)
	}
	sort.Ints(order)

	groups := make([][]string, 0, len(order))
	for _, lvl := range order {
		groups = append(groups, byLevel[lvl])
	}
	return groups, nil
}
