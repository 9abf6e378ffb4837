package state

import "fmt"

// Status is a node's position in the execution lifecycle.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// validTransitions encodes the lifecycle: pending nodes get scheduled or
// skipped, running nodes finish or fail. completed, failed and skipped
// are terminal.
var validTransitions = map[Status]map[Status]struct{}{
	StatusPending: {
		StatusRunning: {},
		StatusSkipped: {},
	},
	StatusRunning: {
		StatusCompleted: {},
		StatusFailed:    {},
	},
}

// KnownStatus reports whether s is one of the five lifecycle values.
func KnownStatus(s Status) bool {
	switch s {
	case StatusPending, StatusRunning, StatusCompleted, StatusFailed, StatusSkipped:
		return true
	}
	return false
}

// Terminal reports whether a node in this status will never change again.
func Terminal(s Status) bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusSkipped:
		return true
	}
	return false
}

// NodeState is the mutable execution record of one node.
type NodeState struct {
	NodeID       string
	Status       Status
	AllowFailure bool
	Result       any
}

// transition validates and applies a status change.
func (n *NodeState) transition(to Status) error {
	allowed, ok := validTransitions[n.Status]
	if ok {
		_, ok = allowed[to]
	}
	if !ok {
		return fmt.Errorf("invalid transition %s -> %s for node '%s'", n.Status, to, n.NodeID)
	}
	n.Status = to
	return nil
}

// IsExecutable reports whether a node can be dispatched now: it must
// still be pending and none of its direct dependencies may be in the
// blocking failure set.
func IsExecutable(st *NodeState, failed map[string]struct{}, directDeps []string) bool {
	if st == nil || st.Status != StatusPending {
		return false
	}
	for _, dep := range directDeps {
		if _, ok := failed[dep]; ok {
			return false
		}
	}
	return true
}
