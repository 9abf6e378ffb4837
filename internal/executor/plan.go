package executor

import (
	"fmt"
	"strings"
	"time"
)

// groupTimeEstimate is the rough per-group duration used for plan
// estimates before any real timing exists.
const groupTimeEstimate = 30 * time.Second

// GroupPlan describes one parallel group in an execution plan.
type GroupPlan struct {
	Index     int      `json:"group_index"`
	NodeCount int      `json:"node_count"`
	Nodes     []string `json:"nodes"`
}

// Plan summarizes how a run would unfold without executing anything.
type Plan struct {
	TotalNodes        int           `json:"total_nodes"`
	TotalDependencies int           `json:"total_dependencies"`
	MaxWorkers        int           `json:"max_workers"`
	Timeout           time.Duration `json:"timeout"`
	GroupCount        int           `json:"execution_groups"`
	MaxParallelism    int           `json:"max_parallelism"`
	EstimatedTime     time.Duration `json:"estimated_execution_time"`
	Groups            []GroupPlan   `json:"groups"`
}

// PlanSummary builds the dry-run plan for a context and its parallel
// groups.
func PlanSummary(runCtx *Context, groups [][]string) Plan {
	p := Plan{
		TotalNodes:        runCtx.NodeCount(),
		TotalDependencies: runCtx.DependencyCount(),
		MaxWorkers:        runCtx.MaxWorkers,
		Timeout:           runCtx.Timeout,
		GroupCount:        len(groups),
		EstimatedTime:     time.Duration(len(groups)) * groupTimeEstimate,
		Groups:            make([]GroupPlan, 0, len(groups)),
	}
	for i, group := range groups {
		if len(group) > p.MaxParallelism {
			p.MaxParallelism = len(group)
		}
		p.Groups = append(p.Groups, GroupPlan{
			Index:     i,
			NodeCount: len(group),
			Nodes:     group,
		})
	}
	return p
}

// Format renders the plan for terminal output.
func (p Plan) Format() string {
	var b strings.Builder
	b.WriteString("Execution Plan:\n")
	fmt.Fprintf(&b, "  Nodes:        %d\n", p.TotalNodes)
	fmt.Fprintf(&b, "  Dependencies: %d\n", p.TotalDependencies)
	fmt.Fprintf(&b, "  Max workers:  %d\n", p.MaxWorkers)
	fmt.Fprintf(&b, "  Timeout:      %s\n", p.Timeout)
	fmt.Fprintf(&b, "  Groups:       %d (max parallelism %d, estimated %s)\n",
		p.GroupCount, p.MaxParallelism, p.EstimatedTime)
	for _, g := range p.Groups {
		fmt.Fprintf(&b, "  Group %d: %s\n", g.Index+1, strings.Join(g.Nodes, ", "))
	}
	return b.String()
}
