package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sugipamo/project-cph-sub010/internal/ctxlog"
	"github.com/sugipamo/project-cph-sub010/internal/executor"
	"github.com/sugipamo/project-cph-sub010/internal/graph"
	"github.com/sugipamo/project-cph-sub010/internal/request"
	"github.com/sugipamo/project-cph-sub010/internal/state"
	"github.com/sugipamo/project-cph-sub010/internal/validate"
)

// Run executes the main application logic based on the provided
// configuration: validate the graph, then either print the plan (dry run)
// or execute it and report per-node results.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if err := a.validateGraph(); err != nil {
		return err
	}

	runCtx := executor.NewContext(a.graph, cfg.Workers, cfg.Timeout, cfg.Sequential)

	if cfg.DryRun {
		a.logger.Info("Dry run requested; printing the plan instead of executing.")
		return a.dryRun(runCtx)
	}

	states := state.NewSet(a.graph.NodeIDs())
	for id, req := range a.requests {
		if req.AllowFailure {
			states.SetAllowFailure(id, true)
		}
	}

	exec := executor.New(a.graph, states, runCtx, a.runner())
	a.logger.Info("🚀 Starting plan execution.",
		"plan", a.plan.Name,
		"nodes", a.graph.Len(),
		"workers", runCtx.MaxWorkers,
		"sequential", runCtx.Sequential,
	)
	start := time.Now()
	results, err := exec.Run(ctx)
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	a.logger.Info("🏁 Execution finished.", "elapsed", time.Since(start).Round(time.Millisecond))

	return a.report(states, results)
}

// validateGraph runs every validation pass and gates execution on the
// combined result. Warnings and suggestions are logged, never fatal.
func (a *App) validateGraph() error {
	nodes, edges := a.graph.Nodes(), a.graph.Edges()
	result := validate.Combine(
		validate.Structure(nodes, edges),
		validate.Connectivity(nodes, edges),
		validate.Feasibility(nodes, edges),
	)

	for _, w := range result.Warnings {
		a.logger.Warn("Graph validation warning.", "warning", w)
	}
	for _, s := range result.Suggestions {
		a.logger.Debug("Graph validation suggestion.", "suggestion", s)
	}
	if !result.IsValid {
		// Cycles get the full human-readable report; other structural
		// errors are already self-explanatory.
		if msg := a.graph.FormatCycleError(); msg != "" {
			fmt.Fprintln(a.outW, msg)
		}
		return fmt.Errorf("plan validation failed:\n- %s", strings.Join(result.Errors, "\n- "))
	}
	a.logger.Debug("Graph validation passed.")
	return nil
}

// dryRun prints the execution plan and the graph without running anything.
func (a *App) dryRun(runCtx *executor.Context) error {
	groups, err := a.graph.ParallelGroups()
	if err != nil {
		return err
	}
	summary := executor.PlanSummary(runCtx, groups)
	fmt.Fprint(a.outW, summary.Format())
	fmt.Fprintln(a.outW)
	fmt.Fprintln(a.outW, a.graph.Visualize(nil))
	return nil
}

// runner adapts the registry into the executor's Runner: substitute
// placeholders with the outcomes of finished dependencies, dispatch to
// the driver, and turn a failed outcome into an error so skip
// propagation sees the failure.
func (a *App) runner() executor.RunnerFunc {
	return func(ctx context.Context, node *graph.Node, completed map[string]executor.BatchResult) (any, error) {
		req, ok := a.requests[node.ID]
		if !ok {
			return nil, fmt.Errorf("no request for node '%s'", node.ID)
		}

		outcomes := make(map[string]*request.Outcome, len(completed))
		for id, br := range completed {
			if out, ok := br.Result.(*request.Outcome); ok {
				outcomes[id] = out
			}
		}

		out, err := a.registry.Dispatch(ctx, req.Substituted(outcomes))
		if err != nil {
			return nil, err
		}
		if req.ShowOutput {
			a.printOutput(out)
		}
		if !out.Success {
			msg := out.ErrorMessage
			if msg == "" {
				msg = fmt.Sprintf("exited with code %d", out.ExitCode)
			}
			return out, errors.New(msg)
		}
		return out, nil
	}
}

func (a *App) printOutput(out *request.Outcome) {
	for _, text := range []string{out.Stdout, out.Stderr} {
		if text == "" {
			continue
		}
		fmt.Fprint(a.outW, text)
		if !strings.HasSuffix(text, "\n") {
			fmt.Fprintln(a.outW)
		}
	}
}

// report logs every node's result in plan order and summarizes the run.
// Failures on nodes without allow_failure make the whole run fail.
func (a *App) report(states *state.Set, results map[string]executor.BatchResult) error {
	var failed []string
	for _, id := range a.graph.NodeIDs() {
		res, ok := results[id]
		if !ok {
			// Unreached in a sequential run that stopped early.
			continue
		}
		name := a.nodeName(id)
		switch states.Status(id) {
		case state.StatusCompleted:
			a.logger.Info("Node succeeded.", "node", id, "step", name, "elapsed", res.ExecutionTime.Round(time.Millisecond))
		case state.StatusSkipped:
			a.logger.Warn("Node skipped.", "node", id, "step", name, "reason", res.ErrorMessage)
		case state.StatusFailed:
			a.logger.Warn("Node failed.", "node", id, "step", name, "error", res.ErrorMessage)
			if req, ok := a.requests[id]; ok && !req.AllowFailure {
				failed = append(failed, id)
			}
		}
	}

	stats := states.CompletionStats()
	progress := executor.CalculateProgress(stats.Completed, stats.Failed, stats.Skipped, stats.Total)
	a.logger.Info("Plan finished.",
		"plan", a.plan.Name,
		"completed", progress.Completed,
		"failed", progress.Failed,
		"skipped", progress.Skipped,
		"success_rate", fmt.Sprintf("%.1f%%", progress.SuccessRate),
	)

	if len(failed) > 0 {
		return fmt.Errorf("plan '%s' finished with %d failed node(s): %s",
			a.plan.Name, len(failed), strings.Join(failed, ", "))
	}
	return nil
}

func (a *App) nodeName(id string) string {
	if n, ok := a.graph.Node(id); ok {
		if name, ok := n.Metadata["step_name"].(string); ok {
			return name
		}
	}
	return ""
}
