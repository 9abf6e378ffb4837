// Package fileop implements file and directory requests on the local
// filesystem: mkdir, touch, copy, move, remove and rmtree.
//
// Operational failures (a missing source, a permission error) are
// reported through the outcome so allow_failure and skip propagation can
// do their job; only malformed requests return an error.
package fileop

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/sugipamo/project-cph-sub010/internal/ctxlog"
	"github.com/sugipamo/project-cph-sub010/internal/registry"
	"github.com/sugipamo/project-cph-sub010/internal/request"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

type driver struct{}

func (d *driver) Type() string { return request.TypeFile }

func (d *driver) Execute(ctx context.Context, req *request.Request) (*request.Outcome, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Applying file operation.", "op", req.Op, "args", req.Cmd)

	var err error
	switch req.Op {
	case "mkdir":
		if len(req.Cmd) < 1 {
			return nil, fmt.Errorf("mkdir requires a directory argument")
		}
		err = os.MkdirAll(d.resolve(req, req.Cmd[0]), 0o755)
	case "touch":
		if len(req.Cmd) < 1 {
			return nil, fmt.Errorf("touch requires a file argument")
		}
		err = touchFile(d.resolve(req, req.Cmd[0]))
	case "copy":
		if len(req.Cmd) < 2 {
			return nil, fmt.Errorf("copy requires a source and a destination")
		}
		err = copyPath(d.resolve(req, req.Cmd[0]), d.resolve(req, req.Cmd[1]))
	case "move":
		if len(req.Cmd) < 2 {
			return nil, fmt.Errorf("move requires a source and a destination")
		}
		err = movePath(d.resolve(req, req.Cmd[0]), d.resolve(req, req.Cmd[1]))
	case "remove":
		if len(req.Cmd) < 1 {
			return nil, fmt.Errorf("remove requires a path argument")
		}
		// Removing something that is already gone is fine.
		err = os.RemoveAll(d.resolve(req, req.Cmd[0]))
	case "rmtree":
		if len(req.Cmd) < 1 {
			return nil, fmt.Errorf("rmtree requires a directory argument")
		}
		err = rmtree(d.resolve(req, req.Cmd[0]))
	default:
		return nil, fmt.Errorf("unsupported file operation: %s", req.Op)
	}

	if err != nil {
		return &request.Outcome{ExitCode: 1, ErrorMessage: err.Error()}, nil
	}
	return &request.Outcome{Success: true}, nil
}

// resolve anchors relative paths at the request's working directory.
func (d *driver) resolve(req *request.Request, path string) string {
	if req.Cwd == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(req.Cwd, path)
}

// Register registers the file operation driver.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&driver{})
}

// touchFile creates the file if needed, parents included, and bumps its
// timestamps if it already exists.
func touchFile(path string) error {
	if err := ensureParent(path); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	now := time.Now()
	return os.Chtimes(path, now, now)
}

func copyPath(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return copyTree(src, dst)
	}
	return copyFile(src, dst, info.Mode())
}

func copyFile(src, dst string, mode fs.FileMode) error {
	if err := ensureParent(dst); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if entry.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		return copyFile(path, target, info.Mode())
	})
}

// movePath renames when it can and falls back to copy-then-delete when
// the rename crosses filesystems.
func movePath(src, dst string) error {
	if err := ensureParent(dst); err != nil {
		return err
	}
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyPath(src, dst); err != nil {
		return err
	}
	return os.RemoveAll(src)
}

// rmtree removes a directory tree. Unlike remove it insists the target
// exists and is a directory.
func rmtree(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", path)
	}
	return os.RemoveAll(path)
}

func ensureParent(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == string(filepath.Separator) {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
