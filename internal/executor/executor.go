package executor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/sugipamo/project-cph-sub010/internal/ctxlog"
	"github.com/sugipamo/project-cph-sub010/internal/graph"
	"github.com/sugipamo/project-cph-sub010/internal/state"
)

// skippedMessage is the synthesized error for nodes pruned by a failed
// ancestor.
const skippedMessage = "Skipped due to dependency failure"

// Executor orchestrates one run over a validated graph. It owns the
// state set for the duration of the run; callers must not mutate it
// concurrently.
type Executor struct {
	graph   *graph.Graph
	states  *state.Set
	runCtx  *Context
	runner  Runner
	results map[string]BatchResult
}

// New assembles an executor for one run.
func New(g *graph.Graph, states *state.Set, runCtx *Context, runner Runner) *Executor {
	return &Executor{
		graph:   g,
		states:  states,
		runCtx:  runCtx,
		runner:  runner,
		results: make(map[string]BatchResult),
	}
}

// Run executes the graph and returns the final per-node report: every
// executed node's BatchResult plus a synthesized failure entry for each
// skipped node. Nodes never reached (sequential mode stops early) are
// absent. The returned error covers only fatal pre-dispatch conditions;
// individual node failures live in the report.
func (e *Executor) Run(ctx context.Context) (map[string]BatchResult, error) {
	logger := ctxlog.FromContext(ctx)

	if errs := e.runCtx.validateReadiness(); len(errs) > 0 {
		return nil, fmt.Errorf("execution not ready: %s", strings.Join(errs, "; "))
	}
	if errs := e.states.Validate(e.graph.NodeIDs()); len(errs) > 0 {
		return nil, fmt.Errorf("node states inconsistent with graph: %v", errs[0])
	}

	if e.runCtx.Sequential {
		return e.runSequential(ctx)
	}

	groups, err := e.graph.ParallelGroups()
	if err != nil {
		return nil, err
	}

	forward := e.graph.Forward()
	reverse := e.graph.Reverse()
	failed := make(map[string]struct{})

	for i, group := range groups {
		executable := e.executableInGroup(ctx, group, failed, reverse)
		if len(executable) == 0 {
			continue
		}

		b := prepareBatch(executable, e.runCtx)
		logger.Debug("Dispatching execution group.",
			"batch", b.ID, "group", i+1, "groups", len(groups),
			"nodes", len(b.Nodes), "workers", b.Workers)

		for _, id := range b.Nodes {
			if err := e.states.Transition(id, state.StatusRunning); err != nil {
				return nil, fmt.Errorf("cannot dispatch node '%s': %w", id, err)
			}
		}

		outcomes := e.runBatch(ctx, b)

		for _, id := range b.Nodes {
			res := outcomes[id]
			if err := e.recordOutcome(id, res); err != nil {
				return nil, err
			}
			if res.Success {
				continue
			}
			st, _ := e.states.Get(id)
			if st.AllowFailure {
				logger.Warn("Node failed but failure is allowed; dependents continue.",
					"nodeID", id, "error", res.ErrorMessage)
				continue
			}
			logger.Warn("Node failed.", "nodeID", id, "error", res.ErrorMessage)
			failed[id] = struct{}{}
			if skipped := e.states.MarkDependentsSkipped(forward, id); len(skipped) > 0 {
				logger.Info("Skipped dependents of failed node.", "nodeID", id, "skipped", skipped)
			}
		}
	}

	return e.report(), nil
}

// executableInGroup filters a parallel group down to the nodes that can
// actually run. Anything still pending but blocked by the failure set is
// skipped on the spot; transitive descendants were already handled when
// the failure was recorded.
func (e *Executor) executableInGroup(ctx context.Context, group []string, failed map[string]struct{}, reverse map[string]map[string]struct{}) []string {
	logger := ctxlog.FromContext(ctx)

	var executable []string
	for _, id := range group {
		st, ok := e.states.Get(id)
		if !ok || st.Status != state.StatusPending {
			continue
		}
		if state.IsExecutable(st, failed, sortedKeys(reverse[id])) {
			executable = append(executable, id)
			continue
		}
		if err := e.states.Transition(id, state.StatusSkipped); err == nil {
			logger.Debug("Skipping blocked node.", "nodeID", id)
		}
	}
	return executable
}

// runBatch dispatches one batch onto a worker pool and collects exactly
// one result per node, synthesizing timeout failures for stragglers. The
// result channel is buffered to the batch size so a late worker can
// always deliver and exit.
func (e *Executor) runBatch(ctx context.Context, b *batch) map[string]BatchResult {
	completed := e.snapshotResults()
	resultCh := make(chan BatchResult, len(b.Nodes))

	pool, err := ants.NewPool(b.Workers)
	if err != nil {
		outcomes := make(map[string]BatchResult, len(b.Nodes))
		for _, id := range b.Nodes {
			outcomes[id] = errorResult(id, fmt.Sprintf("worker pool unavailable: %v", err), 0)
		}
		return outcomes
	}
	defer pool.Release()

	for _, id := range b.Nodes {
		node, ok := e.graph.Node(id)
		if !ok {
			resultCh <- errorResult(id, fmt.Sprintf("node '%s' missing from graph", id), 0)
			continue
		}
		n := node
		nodeCtx := ctxlog.With(ctx, "batch", b.ID, "nodeID", n.ID)
		if err := pool.Submit(func() {
			resultCh <- safeExecute(nodeCtx, e.runner, n, completed, b.Timeout)
		}); err != nil {
			resultCh <- errorResult(id, fmt.Sprintf("failed to submit to worker pool: %v", err), 0)
		}
	}

	return collectResults(b, resultCh)
}

// collectResults blocks until every node in the batch has reported or
// the batch timeout expires; missing nodes get a synthesized timeout
// failure so the run can keep moving.
func collectResults(b *batch, resultCh <-chan BatchResult) map[string]BatchResult {
	outcomes := make(map[string]BatchResult, len(b.Nodes))
	timer := time.NewTimer(b.Timeout)
	defer timer.Stop()

	for range b.Nodes {
		select {
		case res := <-resultCh:
			outcomes[res.NodeID] = res
		case <-timer.C:
			for _, id := range b.Nodes {
				if _, ok := outcomes[id]; !ok {
					outcomes[id] = errorResult(id, fmt.Sprintf("execution timeout after %s", b.Timeout), b.Timeout)
				}
			}
			return outcomes
		}
	}
	return outcomes
}

// recordOutcome advances a node to its terminal status and stores the
// result.
func (e *Executor) recordOutcome(id string, res BatchResult) error {
	status := state.StatusCompleted
	if !res.Success {
		status = state.StatusFailed
	}
	if err := e.states.Transition(id, status); err != nil {
		return fmt.Errorf("cannot record outcome for node '%s': %w", id, err)
	}
	e.states.SetResult(id, res.Result)
	e.results[id] = res
	return nil
}

// snapshotResults copies the accumulated results for concurrent read by
// workers; the live map stays owned by the control loop.
func (e *Executor) snapshotResults() map[string]BatchResult {
	out := make(map[string]BatchResult, len(e.results))
	for id, res := range e.results {
		out[id] = res
	}
	return out
}

// report assembles the final per-node result map, synthesizing entries
// for skipped nodes.
func (e *Executor) report() map[string]BatchResult {
	out := make(map[string]BatchResult, len(e.results))
	for id, res := range e.results {
		out[id] = res
	}
	for _, id := range e.states.IDs() {
		if e.states.Status(id) != state.StatusSkipped {
			continue
		}
		if _, ok := out[id]; !ok {
			out[id] = BatchResult{NodeID: id, Success: false, ErrorMessage: skippedMessage}
		}
	}
	return out
}
