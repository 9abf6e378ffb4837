package executor

import (
	"sort"
	"time"
)

// Progress is a point-in-time completion snapshot of a run.
type Progress struct {
	Total           int     `json:"total_nodes"`
	Completed       int     `json:"completed"`
	Failed          int     `json:"failed"`
	Skipped         int     `json:"skipped"`
	Remaining       int     `json:"remaining"`
	PercentComplete float64 `json:"progress_percentage"`
	SuccessRate     float64 `json:"success_rate"`
}

// CalculateProgress derives progress figures from terminal-node counts.
// Percentages are 0 when their denominator is 0.
func CalculateProgress(completed, failed, skipped, total int) Progress {
	processed := completed + failed + skipped
	p := Progress{
		Total:     total,
		Completed: completed,
		Failed:    failed,
		Skipped:   skipped,
		Remaining: total - processed,
	}
	if total > 0 {
		p.PercentComplete = float64(processed) / float64(total) * 100
	}
	if processed > 0 {
		p.SuccessRate = float64(completed) / float64(processed) * 100
	}
	return p
}

// ResourceUsage reports worker occupancy for a running batch.
type ResourceUsage struct {
	TotalNodes        int      `json:"total_nodes"`
	MaxWorkers        int      `json:"max_workers"`
	CurrentRunning    int      `json:"current_running"`
	WorkerUtilization float64  `json:"worker_utilization"`
	AvailableWorkers  int      `json:"available_workers"`
	RunningNodes      []string `json:"running_nodes"`
}

// CalculateResourceUsage reports how much of the worker budget the
// currently running nodes occupy.
func CalculateResourceUsage(runCtx *Context, running []string) ResourceUsage {
	nodes := make([]string, len(running))
	copy(nodes, running)
	sort.Strings(nodes)

	u := ResourceUsage{
		TotalNodes:     runCtx.NodeCount(),
		MaxWorkers:     runCtx.MaxWorkers,
		CurrentRunning: len(nodes),
		RunningNodes:   nodes,
	}
	if runCtx.MaxWorkers > 0 {
		u.WorkerUtilization = float64(len(nodes)) / float64(runCtx.MaxWorkers) * 100
	}
	if avail := runCtx.MaxWorkers - len(nodes); avail > 0 {
		u.AvailableWorkers = avail
	}
	return u
}

// OptimizeWorkerAllocation picks a worker count per parallel group: the
// group size, capped at the worker budget.
func OptimizeWorkerAllocation(groups [][]string, maxWorkers int) []int {
	if len(groups) == 0 {
		return nil
	}
	allocations := make([]int, len(groups))
	for i, group := range groups {
		workers := len(group)
		if workers > maxWorkers {
			workers = maxWorkers
		}
		allocations[i] = workers
	}
	return allocations
}

// EstimateRemainingTime projects the remaining run time from the average
// duration of the groups finished so far. Returns 0 until at least one
// group completes or once nothing remains.
func EstimateRemainingTime(completedGroups, totalGroups int, elapsed time.Duration) time.Duration {
	if completedGroups == 0 || totalGroups <= completedGroups {
		return 0
	}
	avgPerGroup := elapsed / time.Duration(completedGroups)
	return avgPerGroup * time.Duration(totalGroups-completedGroups)
}
