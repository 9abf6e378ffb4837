package executor

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BatchResult is the recorded outcome of one node's execution attempt.
// Result carries the driver outcome (also on failure, so later nodes can
// still reference its fields); ErrorMessage is set only on failure.
type BatchResult struct {
	NodeID        string
	Success       bool
	Result        any
	ExecutionTime time.Duration
	ErrorMessage  string
}

func successResult(nodeID string, result any, elapsed time.Duration) BatchResult {
	return BatchResult{
		NodeID:        nodeID,
		Success:       true,
		Result:        result,
		ExecutionTime: elapsed,
	}
}

func errorResult(nodeID, message string, elapsed time.Duration) BatchResult {
	return BatchResult{
		NodeID:        nodeID,
		Success:       false,
		ExecutionTime: elapsed,
		ErrorMessage:  message,
	}
}

// batch is the dispatch metadata for one group of executable nodes.
type batch struct {
	ID      string
	Nodes   []string
	Workers int
	Timeout time.Duration
}

// prepareBatch sizes the worker pool for one group and stamps the batch
// with a fresh id for log correlation.
func prepareBatch(executable []string, runCtx *Context) *batch {
	workers := runCtx.MaxWorkers
	if len(executable) < workers {
		workers = len(executable)
	}
	nodes := make([]string, len(executable))
	copy(nodes, executable)
	return &batch{
		ID:      fmt.Sprintf("batch_%s", uuid.NewString()),
		Nodes:   nodes,
		Workers: workers,
		Timeout: runCtx.Timeout,
	}
}
