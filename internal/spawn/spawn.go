// Package spawn runs external commands and reports what happened as a
// request outcome. Every process-spawning driver funnels through here so
// cancellation, output capture and exit codes behave the same everywhere.
package spawn

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"

	"github.com/sugipamo/project-cph-sub010/internal/ctxlog"
	"github.com/sugipamo/project-cph-sub010/internal/request"
)

// Capture runs argv in cwd and returns the captured outcome. The command
// inherits the process environment plus the given extra variables. A
// context cancellation kills the process and is reported as a failed
// outcome, never as a panic or a hung call.
func Capture(ctx context.Context, argv []string, cwd string, env map[string]string) *request.Outcome {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Spawning command.", "argv", argv, "cwd", cwd)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = cwd
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), envList(env)...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := &request.Outcome{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	switch {
	case err == nil:
		out.Success = true
	case ctx.Err() != nil:
		out.ExitCode = -1
		out.ErrorMessage = fmt.Sprintf("command cancelled: %v", ctx.Err())
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
		} else {
			// The process never started, usually a missing binary.
			out.ExitCode = 1
			out.ErrorMessage = err.Error()
			if out.Stderr == "" {
				out.Stderr = err.Error()
			}
		}
	}
	return out
}

func envList(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(env))
	for _, k := range keys {
		out = append(out, k+"="+env[k])
	}
	return out
}
