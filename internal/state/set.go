package state

import (
	"fmt"
	"sort"
)

// Set owns the NodeState records for one execution run. Node order is
// retained from construction so every listing operation is
// deterministic. Not safe for concurrent mutation; the orchestrator is
// the single writer.
type Set struct {
	states map[string]*NodeState
	ids    []string
}

// NewSet creates a state per node id, all pending.
func NewSet(ids []string) *Set {
	s := &Set{
		states: make(map[string]*NodeState, len(ids)),
		ids:    make([]string, 0, len(ids)),
	}
	for _, id := range ids {
		if _, ok := s.states[id]; ok {
			continue
		}
		s.states[id] = &NodeState{NodeID: id, Status: StatusPending}
		s.ids = append(s.ids, id)
	}
	return s
}

// Get looks up a node's state.
func (s *Set) Get(id string) (*NodeState, bool) {
	st, ok := s.states[id]
	return st, ok
}

// Status returns a node's current status, or empty string for unknown ids.
func (s *Set) Status(id string) Status {
	if st, ok := s.states[id]; ok {
		return st.Status
	}
	return ""
}

// Len returns the number of tracked nodes.
func (s *Set) Len() int {
	return len(s.ids)
}

// IDs returns the node ids in construction order.
func (s *Set) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Transition moves a node to a new status, enforcing the lifecycle.
func (s *Set) Transition(id string, to Status) error {
	st, ok := s.states[id]
	if !ok {
		return fmt.Errorf("unknown node '%s'", id)
	}
	return st.transition(to)
}

// SetAllowFailure flags a node whose failure should not block dependents.
func (s *Set) SetAllowFailure(id string, allow bool) {
	if st, ok := s.states[id]; ok {
		st.AllowFailure = allow
	}
}

// SetResult attaches an execution outcome to a node.
func (s *Set) SetResult(id string, result any) {
	if st, ok := s.states[id]; ok {
		st.Result = result
	}
}

// Snapshot returns id -> status as plain strings, for reporting.
func (s *Set) Snapshot() map[string]string {
	out := make(map[string]string, len(s.ids))
	for _, id := range s.ids {
		out[id] = string(s.states[id].Status)
	}
	return out
}

// MarkDependentsSkipped walks the forward adjacency from a failed node
// and skips every reachable node that is still pending. The walk is an
// iterative worklist with a visited set, so it handles deep chains
// without recursion and keeps going through already-terminal nodes:
// reachability decides what gets skipped, not the intermediate statuses.
// Returns the ids that were newly skipped, in visit order.
func (s *Set) MarkDependentsSkipped(forward map[string]map[string]struct{}, failedID string) []string {
	var skipped []string
	visited := map[string]struct{}{failedID: {}}
	stack := []string{failedID}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range sortedKeys(forward[current]) {
			if _, ok := visited[next]; ok {
				continue
			}
			visited[next] = struct{}{}
			if st, ok := s.states[next]; ok && st.Status == StatusPending {
				st.Status = StatusSkipped
				skipped = append(skipped, next)
			}
			stack = append(stack, next)
		}
	}
	return skipped
}

// FilterExecutable returns, in construction order, every node that is
// pending and whose direct predecessors (from the reverse adjacency)
// avoid the blocking failure set.
func (s *Set) FilterExecutable(failed map[string]struct{}, reverse map[string]map[string]struct{}) []string {
	var out []string
	for _, id := range s.ids {
		deps := sortedKeys(reverse[id])
		if IsExecutable(s.states[id], failed, deps) {
			out = append(out, id)
		}
	}
	return out
}

// GroupByStatus buckets node ids by their current status, construction
// order within each bucket.
func (s *Set) GroupByStatus() map[Status][]string {
	out := make(map[Status][]string)
	for _, id := range s.ids {
		st := s.states[id].Status
		out[st] = append(out[st], id)
	}
	return out
}

// CompletionStats counts nodes per status. Processed covers every
// terminal status.
type CompletionStats struct {
	Total     int
	Pending   int
	Running   int
	Completed int
	Failed    int
	Skipped   int
	Processed int
}

// CompletionStats aggregates the current lifecycle counts.
func (s *Set) CompletionStats() CompletionStats {
	stats := CompletionStats{Total: len(s.ids)}
	for _, id := range s.ids {
		switch s.states[id].Status {
		case StatusPending:
			stats.Pending++
		case StatusRunning:
			stats.Running++
		case StatusCompleted:
			stats.Completed++
		case StatusFailed:
			stats.Failed++
		case StatusSkipped:
			stats.Skipped++
		}
	}
	stats.Processed = stats.Completed + stats.Failed + stats.Skipped
	return stats
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Validate checks the set against the owning graph's node ids: every id
// must have exactly one state, no extras may exist, and every status
// must be a known lifecycle value.
func (s *Set) Validate(allIDs []string) []error {
	var errs []error
	known := make(map[string]struct{}, len(allIDs))
	for _, id := range allIDs {
		known[id] = struct{}{}
		if _, ok := s.states[id]; !ok {
			errs = append(errs, fmt.Errorf("missing state for node '%s'", id))
		}
	}
	for _, id := range s.ids {
		if _, ok := known[id]; !ok {
			errs = append(errs, fmt.Errorf("state for unknown node '%s'", id))
		}
		if st := s.states[id]; !KnownStatus(st.Status) {
			errs = append(errs, fmt.Errorf("invalid status '%s' for node '%s'", st.Status, id))
		}
	}
	return errs
}
