// Package docker serves docker requests through the docker CLI. Run
// requests get a disposable container with the working directory mounted
// at /workspace and networking disabled; exec and cp target containers
// that are already running.
package docker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"

	"github.com/sugipamo/project-cph-sub010/internal/ctxlog"
	"github.com/sugipamo/project-cph-sub010/internal/registry"
	"github.com/sugipamo/project-cph-sub010/internal/request"
	"github.com/sugipamo/project-cph-sub010/internal/spawn"
)

const (
	binary        = "docker"
	workspacePath = "/workspace"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

type driver struct{}

func (d *driver) Type() string { return request.TypeDocker }

func (d *driver) Execute(ctx context.Context, req *request.Request) (*request.Outcome, error) {
	logger := ctxlog.FromContext(ctx)

	switch req.Op {
	case "run":
		if req.Image == "" {
			return nil, fmt.Errorf("docker run requires an image")
		}
		mount, err := mountDir(req.Cwd)
		if err != nil {
			return &request.Outcome{ExitCode: 1, ErrorMessage: err.Error()}, nil
		}
		name := containerName()
		logger.Debug("Running container.", "image", req.Image, "name", name)
		return spawn.Capture(ctx, runArgs(req, mount, name), "", nil), nil
	case "exec":
		if req.Container == "" {
			return nil, fmt.Errorf("docker exec requires a container")
		}
		if len(req.Cmd) == 0 {
			return nil, fmt.Errorf("docker exec requires a command")
		}
		logger.Debug("Executing in container.", "container", req.Container)
		return spawn.Capture(ctx, execArgs(req), "", nil), nil
	case "cp":
		if len(req.Cmd) < 2 {
			return nil, fmt.Errorf("docker cp requires a source and a destination")
		}
		logger.Debug("Copying via container.", "source", req.Cmd[0], "destination", req.Cmd[1])
		return spawn.Capture(ctx, cpArgs(req), "", nil), nil
	default:
		return nil, fmt.Errorf("unsupported docker operation: %s", req.Op)
	}
}

// Register registers the docker driver.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&driver{})
}

func containerName() string {
	return "cph-run-" + uuid.NewString()[:8]
}

// mountDir resolves the host directory mounted into run containers.
func mountDir(cwd string) (string, error) {
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("cannot resolve working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return "", fmt.Errorf("cannot resolve working directory: %w", err)
	}
	return abs, nil
}

func runArgs(req *request.Request, mount, name string) []string {
	argv := []string{
		binary, "run", "--rm",
		"-v", mount + ":" + workspacePath,
		"-w", workspacePath,
		"--network", "none",
		"--name", name,
	}
	argv = append(argv, envFlags(req.Env)...)
	argv = append(argv, req.Image)
	return append(argv, req.Cmd...)
}

func execArgs(req *request.Request) []string {
	argv := []string{binary, "exec"}
	argv = append(argv, envFlags(req.Env)...)
	argv = append(argv, req.Container)
	return append(argv, req.Cmd...)
}

func cpArgs(req *request.Request) []string {
	return []string{binary, "cp", req.Cmd[0], req.Cmd[1]}
}

func envFlags(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	flags := make([]string, 0, 2*len(env))
	for _, k := range keys {
		flags = append(flags, "-e", k+"="+env[k])
	}
	return flags
}
