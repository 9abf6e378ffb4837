// Package executor runs a validated request graph. Parallel groups are
// executed strictly in sequence; within one group, nodes run
// concurrently on a bounded worker pool sized min(group, MaxWorkers).
//
// Failure never aborts the run. A failing node is recorded, its
// transitive dependents are skipped, and the remaining groups proceed.
// Worker panics and timeouts become synthesized failure results at a
// single choke point, so no error ever crosses the worker boundary as a
// raw panic. All node-state mutation happens in the orchestrator's
// control loop between group boundaries; workers only produce results.
package executor
