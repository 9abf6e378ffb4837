// Package builder turns a declarative step list into an executable
// request graph: preparation steps are inserted, duplicates dropped,
// each step becomes a node with its resource footprint and a request,
// and explicit plus inferred dependencies become edges.
package builder

import (
	"fmt"

	"github.com/sugipamo/project-cph-sub010/internal/graph"
	"github.com/sugipamo/project-cph-sub010/internal/request"
)

// Build runs the whole pipeline over parsed steps and returns the
// optimized graph together with the per-node requests. Node ids are
// positional (step_0, step_1, ...) after preparation insertion; step
// names exist for depends_on resolution and logs.
func Build(steps []Step) (*graph.Graph, map[string]*request.Request, error) {
	if len(steps) == 0 {
		return nil, nil, fmt.Errorf("workflow has no steps to execute")
	}

	prepared := DedupeSteps(ResolvePreparation(steps))

	nodes := make([]*graph.Node, 0, len(prepared))
	requests := make(map[string]*request.Request, len(prepared))
	nameToID := make(map[string]string, len(prepared))

	for i, s := range prepared {
		id := nodeID(i)
		req, err := buildRequest(s)
		if err != nil {
			return nil, nil, fmt.Errorf("step %d: %w", i, err)
		}

		metadata := map[string]any{
			"step_type":      string(s.Type),
			"step_cmd":       s.Cmd,
			"original_index": i,
		}
		if s.Name != "" {
			if _, dup := nameToID[s.Name]; dup {
				return nil, nil, fmt.Errorf("duplicate step name '%s'", s.Name)
			}
			nameToID[s.Name] = id
			metadata["step_name"] = s.Name
		}

		res := StepResources(s)
		nodes = append(nodes, &graph.Node{
			ID:           id,
			CreatesFiles: res.CreatesFiles,
			CreatesDirs:  res.CreatesDirs,
			ReadsFiles:   res.ReadsFiles,
			RequiresDirs: res.RequiresDirs,
			Metadata:     metadata,
		})
		requests[id] = req
	}

	var edges []*graph.Edge
	for i, s := range prepared {
		for _, dep := range s.DependsOn {
			from, ok := nameToID[dep]
			if !ok {
				return nil, nil, fmt.Errorf("step %d: depends_on references unknown step '%s'", i, dep)
			}
			edges = append(edges, &graph.Edge{
				From:        from,
				To:          nodeID(i),
				Type:        graph.ExecOrder,
				Description: fmt.Sprintf("Declared execution order after '%s'", dep),
			})
		}
	}
	edges = append(edges, graph.InferResourceEdges(nodes)...)

	// Plans reference other steps by name; results are recorded under
	// node ids. Map the names now so substitution works at run time.
	if len(nameToID) > 0 {
		for id, req := range requests {
			requests[id] = req.RenamedReferences(nameToID)
		}
	}

	g, err := graph.New(nodes, edges)
	if err != nil {
		return nil, nil, err
	}
	return g.Optimize(), requests, nil
}

func nodeID(index int) string {
	return fmt.Sprintf("step_%d", index)
}
