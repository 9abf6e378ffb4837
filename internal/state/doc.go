// Package state tracks per-node execution lifecycle for one run of a
// request graph. A Set holds every node's state and is mutated only by
// the orchestrator's control loop between group boundaries; workers
// report outcomes back to that loop instead of touching the Set, which
// keeps the mutation path single-threaded without locks.
package state
