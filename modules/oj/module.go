// Package oj wraps the online-judge-tools CLI. The request carries the
// subcommand and its arguments; the binary prefix is added here.
package oj

import (
	"context"
	"fmt"

	"github.com/sugipamo/project-cph-sub010/internal/registry"
	"github.com/sugipamo/project-cph-sub010/internal/request"
	"github.com/sugipamo/project-cph-sub010/internal/spawn"
)

const binary = "oj"

// Module implements the registry.Module interface for this package.
type Module struct{}

type driver struct{}

func (d *driver) Type() string { return request.TypeOJ }

func (d *driver) Execute(ctx context.Context, req *request.Request) (*request.Outcome, error) {
	if len(req.Cmd) == 0 {
		return nil, fmt.Errorf("oj request requires a subcommand")
	}
	argv := append([]string{binary}, req.Cmd...)
	return spawn.Capture(ctx, argv, req.Cwd, req.Env), nil
}

// Register registers the oj driver.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&driver{})
}
