package validate

import (
	"fmt"
	"strings"

	"github.com/sugipamo/project-cph-sub010/internal/graph"
)

// Feasibility decides whether the graph can actually run: it must be
// acyclic and orderable. Each detected cycle becomes its own error. An
// acyclic graph additionally gets its parallelism measured; a fully
// serial plan over more than one node is flagged since it usually means
// over-constrained dependencies.
func Feasibility(nodes []*graph.Node, edges []*graph.Edge) *Result {
	res := newResult()

	ids := make([]string, 0, len(nodes))
	seen := make(map[string]struct{}, len(nodes))
	for _, node := range nodes {
		if _, ok := seen[node.ID]; ok {
			continue
		}
		seen[node.ID] = struct{}{}
		ids = append(ids, node.ID)
	}

	forward, _ := graph.BuildAdjacency(ids, edges)
	cycles := graph.DetectCycles(ids, forward)
	res.Statistics["cycle_count"] = len(cycles)

	if len(cycles) > 0 {
		for _, cycle := range cycles {
			res.addError(fmt.Sprintf("circular dependency: %s", strings.Join(cycle, " -> ")))
		}
		res.addSuggestion("Break the cycle by removing or restructuring one of its dependencies")
		res.Statistics["max_parallelism"] = 0
		res.Statistics["group_count"] = 0
		res.Statistics["is_executable"] = false
		return res
	}

	if _, valid, _ := graph.TopologicalSort(ids, edges); !valid {
		res.addError("topological sort failed: graph is not orderable")
	}

	groups, err := graph.ParallelGroups(ids, edges)
	if err != nil {
		res.addError(fmt.Sprintf("parallel group computation failed: %s", err))
		res.Statistics["max_parallelism"] = 0
		res.Statistics["group_count"] = 0
		res.Statistics["is_executable"] = false
		return res
	}

	maxParallelism := 0
	for _, group := range groups {
		if len(group) > maxParallelism {
			maxParallelism = len(group)
		}
	}
	res.Statistics["max_parallelism"] = maxParallelism
	res.Statistics["group_count"] = len(groups)
	res.Statistics["is_executable"] = res.IsValid

	if maxParallelism == 1 && len(ids) > 1 {
		res.addWarning("workflow is fully serial: no two nodes can run in parallel")
		res.addSuggestion("Reduce dependencies between nodes to unlock parallel execution")
	}

	return res
}
