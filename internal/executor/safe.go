package executor

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/sugipamo/project-cph-sub010/internal/graph"
)

// Runner executes one node's operation. Earlier outcomes of the run are
// handed in so implementations can substitute result placeholders before
// dispatching. A non-nil error marks the node failed; the returned value
// is kept either way.
type Runner interface {
	Run(ctx context.Context, node *graph.Node, completed map[string]BatchResult) (any, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, node *graph.Node, completed map[string]BatchResult) (any, error)

// Run implements Runner.
func (f RunnerFunc) Run(ctx context.Context, node *graph.Node, completed map[string]BatchResult) (any, error) {
	return f(ctx, node, completed)
}

// safeExecute is the single choke point between workers and the
// orchestrator: every panic is converted into a failure result carrying
// the stack trace, so nothing escapes a worker as a raw panic. The node
// gets its own deadline-bounded context; drivers are expected to honor
// the cancellation.
func safeExecute(ctx context.Context, runner Runner, node *graph.Node, completed map[string]BatchResult, timeout time.Duration) (res BatchResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res = errorResult(node.ID, fmt.Sprintf("%v\n%s", r, debug.Stack()), time.Since(start))
		}
	}()

	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := runner.Run(execCtx, node, completed)
	if err != nil {
		failure := errorResult(node.ID, err.Error(), time.Since(start))
		failure.Result = result
		return failure
	}
	return successResult(node.ID, result, time.Since(start))
}
