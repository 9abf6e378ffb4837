// Package request defines the unit of executable work handed to a
// driver, the outcome it reports back, and placeholder substitution of
// earlier outcomes into later requests. The engine core never inspects
// type-specific fields; drivers own their interpretation.
package request

import (
	"context"
	"strconv"
)

// Known request types. Each maps to one registered driver.
const (
	TypeShell  = "shell"
	TypeFile   = "file"
	TypePython = "python"
	TypeDocker = "docker"
	TypeOJ     = "oj"
)

// Request describes one operation to execute. Only the fields relevant
// to the request's type are set; the rest stay zero.
type Request struct {
	// Type selects the driver: shell, file, python, docker or oj.
	Type string
	// Op narrows file and docker requests (mkdir, touch, copy, move,
	// remove, rmtree, run, exec, cp).
	Op string
	// Cmd is the argument vector. Its meaning depends on Type and Op.
	Cmd []string
	// Cwd is the working directory for process-spawning drivers.
	Cwd string
	// Image is the container image for docker run requests.
	Image string
	// Container is the target container for docker exec and cp requests.
	Container string
	// Env adds to the spawned process environment.
	Env map[string]string

	AllowFailure bool
	ShowOutput   bool
}

// Outcome is what a driver reports for one executed request.
type Outcome struct {
	Success      bool
	Stdout       string
	Stderr       string
	ExitCode     int
	ErrorMessage string
}

// Fields exposes the outcome values addressable from placeholders, keyed
// by the names plans use: stdout, stderr, returncode, success, error.
func (o *Outcome) Fields() map[string]string {
	if o == nil {
		return map[string]string{}
	}
	return map[string]string{
		"stdout":     o.Stdout,
		"stderr":     o.Stderr,
		"returncode": strconv.Itoa(o.ExitCode),
		"success":    strconv.FormatBool(o.Success),
		"error":      o.ErrorMessage,
	}
}

// Driver executes requests of a single type. Implementations must honor
// context cancellation and report failures through the Outcome rather
// than panicking.
type Driver interface {
	Type() string
	Execute(ctx context.Context, req *Request) (*Outcome, error)
}
