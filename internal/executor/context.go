package executor

import (
	"fmt"
	"sort"
	"time"

	"github.com/sugipamo/project-cph-sub010/internal/graph"
)

// DefaultTimeout bounds one batch collection when the caller does not
// choose a timeout.
const DefaultTimeout = 300 * time.Second

// Context is the immutable snapshot of one execution run: the node ids,
// each node's direct predecessors, and the run configuration. It is
// built once from a validated graph and never mutated afterwards.
type Context struct {
	ids          []string
	dependencies map[string]map[string]struct{}

	MaxWorkers int
	Timeout    time.Duration
	Sequential bool
}

// NewContext snapshots the graph for a run. A non-positive timeout
// falls back to DefaultTimeout; MaxWorkers is validated later by the
// readiness check so the configuration error is reported, not patched.
func NewContext(g *graph.Graph, maxWorkers int, timeout time.Duration, sequential bool) *Context {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Context{
		ids:          g.NodeIDs(),
		dependencies: g.Reverse(),
		MaxWorkers:   maxWorkers,
		Timeout:      timeout,
		Sequential:   sequential,
	}
}

// NodeCount returns the number of nodes in the snapshot.
func (c *Context) NodeCount() int {
	return len(c.ids)
}

// DependencyCount returns the total number of direct dependency pairs.
func (c *Context) DependencyCount() int {
	total := 0
	for _, deps := range c.dependencies {
		total += len(deps)
	}
	return total
}

// validateReadiness collects every configuration problem that must stop
// the run before the first group is dispatched.
func (c *Context) validateReadiness() []string {
	var errs []string

	if len(c.ids) == 0 {
		errs = append(errs, "No nodes to execute")
	}
	if c.MaxWorkers <= 0 {
		errs = append(errs, fmt.Sprintf("Invalid max_workers: %d", c.MaxWorkers))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Sprintf("Invalid timeout: %s", c.Timeout))
	}

	known := make(map[string]struct{}, len(c.ids))
	for _, id := range c.ids {
		known[id] = struct{}{}
	}
	for _, id := range c.ids {
		for _, dep := range sortedKeys(c.dependencies[id]) {
			if _, ok := known[dep]; !ok {
				errs = append(errs, fmt.Sprintf("Dependency %s for node %s doesn't exist", dep, id))
			}
		}
	}
	var extras []string
	for id := range c.dependencies {
		if _, ok := known[id]; !ok {
			extras = append(extras, id)
		}
	}
	sort.Strings(extras)
	for _, id := range extras {
		errs = append(errs, fmt.Sprintf("Node %s has dependencies but doesn't exist in nodes", id))
	}

	return errs
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
