package executor

import (
	"context"
	"fmt"

	"github.com/sugipamo/project-cph-sub010/internal/ctxlog"
	"github.com/sugipamo/project-cph-sub010/internal/state"
)

// runSequential walks the topological order one node at a time. The
// first blocking failure skips its dependents and stops the run;
// untouched nodes stay pending and never enter the report.
func (e *Executor) runSequential(ctx context.Context) (map[string]BatchResult, error) {
	logger := ctxlog.FromContext(ctx)

	order, ok, _ := e.graph.TopologicalSort()
	if !ok {
		return nil, fmt.Errorf("cannot execute sequentially: graph contains cycles")
	}

	forward := e.graph.Forward()

	for _, id := range order {
		st, found := e.states.Get(id)
		if !found || st.Status != state.StatusPending {
			continue
		}
		node, exists := e.graph.Node(id)
		if !exists {
			continue
		}
		if err := e.states.Transition(id, state.StatusRunning); err != nil {
			return nil, fmt.Errorf("cannot dispatch node '%s': %w", id, err)
		}
		logger.Debug("Executing node.", "nodeID", id, "mode", "sequential")

		res := safeExecute(ctx, e.runner, node, e.snapshotResults(), e.runCtx.Timeout)
		if err := e.recordOutcome(id, res); err != nil {
			return nil, err
		}
		if res.Success {
			continue
		}
		if st.AllowFailure {
			logger.Warn("Node failed but failure is allowed; continuing.",
				"nodeID", id, "error", res.ErrorMessage)
			continue
		}
		logger.Warn("Node failed; stopping sequential run.",
			"nodeID", id, "error", res.ErrorMessage)
		if skipped := e.states.MarkDependentsSkipped(forward, id); len(skipped) > 0 {
			logger.Info("Skipped dependents of failed node.", "nodeID", id, "skipped", skipped)
		}
		break
	}

	return e.report(), nil
}
