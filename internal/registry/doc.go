// Package registry is the central "glue" between request types and the
// driver implementations compiled into the binary.
//
// Driver packages implement the Module interface and register themselves
// during application startup; the executor then routes every request
// through Dispatch without knowing any concrete driver. Validate runs
// after registration and before the first dispatch, so a plan that
// references a missing driver fails the run up front instead of halfway
// through execution.
package registry
