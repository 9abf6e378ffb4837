package graph

// TopologicalSort orders ids so that every edge points forward in the
// result. It reports false with the offending cycles when the graph is
// cyclic, in which case the order is nil.
//
// Kahn's algorithm with a FIFO queue seeded in ids order: nodes whose
// predecessors are exhausted surface in insertion order, so repeated runs
// over the same input produce the same order.
func TopologicalSort(ids []string, edges []*Edge) ([]string, bool, [][]string) {
	forward, reverse := BuildAdjacency(ids, edges)

	cycles := DetectCycles(ids, forward)
	if len(cycles) > 0 {
		return nil, false, cycles
	}

	inDegree := make(map[string]int, len(ids))
	for _, id := range ids {
		inDegree[id] = len(reverse[id])
	}

	queue := make([]string, 0, len(ids))
	for _, id := range ids {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	sorted := make([]string, 0, len(ids))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		sorted = append(sorted, current)
		for _, next := range sortedKeys(forward[current]) {
			if _, ok := inDegree[next]; !ok {
				continue
			}
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(sorted) != len(ids) {
		return nil, false, nil
	}
	return sorted, true, nil
}
