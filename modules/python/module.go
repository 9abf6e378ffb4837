// Package python executes python requests by handing the argument vector
// to the python3 interpreter. Everything else is shell semantics.
package python

import (
	"context"
	"fmt"

	"github.com/sugipamo/project-cph-sub010/internal/registry"
	"github.com/sugipamo/project-cph-sub010/internal/request"
	"github.com/sugipamo/project-cph-sub010/internal/spawn"
)

const interpreter = "python3"

// Module implements the registry.Module interface for this package.
type Module struct{}

type driver struct{}

func (d *driver) Type() string { return request.TypePython }

func (d *driver) Execute(ctx context.Context, req *request.Request) (*request.Outcome, error) {
	if len(req.Cmd) == 0 {
		return nil, fmt.Errorf("python request requires a script or arguments")
	}
	argv := append([]string{interpreter}, req.Cmd...)
	return spawn.Capture(ctx, argv, req.Cwd, req.Env), nil
}

// Register registers the python driver.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&driver{})
}
