package builder

import (
	"fmt"

	"github.com/sugipamo/project-cph-sub010/internal/request"
)

// RequestType returns the driver request type a step resolves to.
func RequestType(t StepType) string {
	switch t {
	case TypeMkdir, TypeTouch, TypeCopy, TypeMove, TypeRemove, TypeRmtree:
		return request.TypeFile
	case TypeDockerRun, TypeDockerExec, TypeDockerCp:
		return request.TypeDocker
	default:
		return string(t)
	}
}

// buildRequest maps one step onto the request a driver can execute.
// File operations carry the step type as the request op; docker steps
// split their first argument off as the image or container.
func buildRequest(s Step) (*request.Request, error) {
	req := &request.Request{
		Cmd:          s.Cmd,
		Cwd:          s.Cwd,
		AllowFailure: s.AllowFailure,
		ShowOutput:   s.ShowOutput,
	}

	switch s.Type {
	case TypeShell:
		req.Type = request.TypeShell
	case TypePython:
		req.Type = request.TypePython
	case TypeOJ:
		req.Type = request.TypeOJ
	case TypeMkdir, TypeTouch, TypeCopy, TypeMove, TypeRemove, TypeRmtree:
		req.Type = request.TypeFile
		req.Op = string(s.Type)
	case TypeDockerRun:
		if len(s.Cmd) == 0 {
			return nil, fmt.Errorf("docker_run requires an image argument")
		}
		req.Type = request.TypeDocker
		req.Op = "run"
		req.Image = s.Cmd[0]
		req.Cmd = s.Cmd[1:]
	case TypeDockerExec:
		if len(s.Cmd) < 2 {
			return nil, fmt.Errorf("docker_exec requires a container and a command")
		}
		req.Type = request.TypeDocker
		req.Op = "exec"
		req.Container = s.Cmd[0]
		req.Cmd = s.Cmd[1:]
	case TypeDockerCp:
		if len(s.Cmd) < 2 {
			return nil, fmt.Errorf("docker_cp requires a source and a destination")
		}
		req.Type = request.TypeDocker
		req.Op = "cp"
	default:
		return nil, fmt.Errorf("no request mapping for step type '%s'", s.Type)
	}

	return req, nil
}
