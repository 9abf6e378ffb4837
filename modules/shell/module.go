// Package shell executes shell requests as local processes.
package shell

import (
	"context"
	"fmt"

	"github.com/sugipamo/project-cph-sub010/internal/registry"
	"github.com/sugipamo/project-cph-sub010/internal/request"
	"github.com/sugipamo/project-cph-sub010/internal/spawn"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

type driver struct{}

func (d *driver) Type() string { return request.TypeShell }

func (d *driver) Execute(ctx context.Context, req *request.Request) (*request.Outcome, error) {
	if len(req.Cmd) == 0 {
		return nil, fmt.Errorf("shell request requires a command")
	}
	return spawn.Capture(ctx, req.Cmd, req.Cwd, req.Env), nil
}

// Register registers the shell driver.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&driver{})
}
