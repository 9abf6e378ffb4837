package app

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sugipamo/project-cph-sub010/internal/testutil"
	"github.com/sugipamo/project-cph-sub010/modules/shell"
)

// setupApp writes planHCL into a fresh temp dir and builds an App around
// it. The returned dir is also handy as an absolute prefix inside plans.
func setupApp(t *testing.T, planHCL string) (*App, *Config, *testutil.SafeBuffer) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "plan.hcl")
	require.NoError(t, os.WriteFile(path, []byte(planHCL), 0o644))

	cfg, err := NewConfig(Config{
		PlanPath:  path,
		Workers:   2,
		Timeout:   30 * time.Second,
		LogFormat: "text",
		LogLevel:  "debug",
	})
	require.NoError(t, err)

	buf := &testutil.SafeBuffer{}
	return NewApp(buf, cfg), cfg, buf
}

func TestNewApp(t *testing.T) {
	t.Run("registers the core drivers", func(t *testing.T) {
		a, _, _ := setupApp(t, `
plan "empty_enough" {
  step "noop" {
    type = "shell"
    cmd  = ["sh", "-c", "exit 0"]
  }
}
`)
		assert.Equal(t, []string{"docker", "file", "oj", "python", "shell"}, a.Registry().Types())
		assert.Equal(t, 1, a.Graph().Len())
	})

	t.Run("panics when the plan cannot be loaded", func(t *testing.T) {
		cfg, err := NewConfig(Config{PlanPath: filepath.Join(t.TempDir(), "missing.hcl")})
		require.NoError(t, err)
		assert.Panics(t, func() {
			NewApp(&testutil.SafeBuffer{}, cfg)
		})
	})

	t.Run("panics when a plan type has no driver", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "plan.hcl")
		require.NoError(t, os.WriteFile(path, []byte(`
plan "needs_python" {
  step "solve" {
    type = "python"
    cmd  = ["main.py"]
  }
}
`), 0o644))
		cfg, err := NewConfig(Config{PlanPath: path})
		require.NoError(t, err)

		defer func() {
			r := recover()
			require.NotNil(t, r)
			recErr, ok := r.(error)
			require.True(t, ok)
			assert.Contains(t, recErr.Error(), "no driver registered for request type 'python'")
		}()
		NewApp(&testutil.SafeBuffer{}, cfg, &shell.Module{})
	})
}

func TestAppRun(t *testing.T) {
	ctx := testutil.Context()

	t.Run("runs a plan end to end with placeholder substitution", func(t *testing.T) {
		dir := t.TempDir()
		a, cfg, _ := setupApp(t, fmt.Sprintf(`
plan "subst" {
  step "compile" {
    type = "shell"
    cmd  = ["sh", "-c", "printf ok"]
  }
  step "record" {
    type = "shell"
    cmd  = ["sh", "-c", "printf '{{compile.result.stdout}}' > %s/status.txt"]
  }
}
`, dir))

		require.NoError(t, a.Run(ctx, cfg))

		content, err := os.ReadFile(filepath.Join(dir, "status.txt"))
		require.NoError(t, err)
		assert.Equal(t, "ok", string(content))
	})

	t.Run("prepares directories for file handoffs", func(t *testing.T) {
		dir := t.TempDir()
		a, cfg, _ := setupApp(t, fmt.Sprintf(`
plan "pipeline" {
  step "make_answer" {
    type = "shell"
    cmd  = ["sh", "-c", "printf 42 > %s/answer.txt"]
  }
  step "publish" {
    type       = "copy"
    cmd        = ["%s/answer.txt", "%s/out/answer.txt"]
    depends_on = ["make_answer"]
  }
}
`, dir, dir, dir))

		require.NoError(t, a.Run(ctx, cfg))

		content, err := os.ReadFile(filepath.Join(dir, "out", "answer.txt"))
		require.NoError(t, err)
		assert.Equal(t, "42", string(content))
	})

	t.Run("a blocking failure fails the run and skips dependents", func(t *testing.T) {
		dir := t.TempDir()
		a, cfg, buf := setupApp(t, fmt.Sprintf(`
plan "doomed" {
  step "boom" {
    type = "shell"
    cmd  = ["sh", "-c", "exit 9"]
  }
  step "after" {
    type       = "shell"
    cmd        = ["sh", "-c", "printf reached > %s/reached.txt"]
    depends_on = ["boom"]
  }
}
`, dir))

		err := a.Run(ctx, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed node(s)")
		assert.Contains(t, err.Error(), "step_0")
		assert.NoFileExists(t, filepath.Join(dir, "reached.txt"))
		assert.Contains(t, buf.String(), "Node skipped.")
	})

	t.Run("allowed failures do not fail the run", func(t *testing.T) {
		dir := t.TempDir()
		a, cfg, _ := setupApp(t, fmt.Sprintf(`
plan "tolerant" {
  step "boom" {
    type          = "shell"
    cmd           = ["sh", "-c", "exit 9"]
    allow_failure = true
  }
  step "after" {
    type       = "shell"
    cmd        = ["sh", "-c", "printf done > %s/done.txt"]
    depends_on = ["boom"]
  }
}
`, dir))

		require.NoError(t, a.Run(ctx, cfg))
		assert.FileExists(t, filepath.Join(dir, "done.txt"))
	})

	t.Run("dry run prints the plan without executing", func(t *testing.T) {
		dir := t.TempDir()
		a, cfg, buf := setupApp(t, fmt.Sprintf(`
plan "preview" {
  step "touchstone" {
    type = "shell"
    cmd  = ["sh", "-c", "printf x > %s/executed.txt"]
  }
}
`, dir))
		cfg.DryRun = true

		require.NoError(t, a.Run(ctx, cfg))
		assert.NoFileExists(t, filepath.Join(dir, "executed.txt"))
		assert.Contains(t, buf.String(), "Execution Plan:")
		assert.Contains(t, buf.String(), "Request Execution Graph:")
	})

	t.Run("a cyclic plan is rejected with the full cycle report", func(t *testing.T) {
		a, cfg, buf := setupApp(t, `
plan "loop" {
  step "a" {
    type       = "shell"
    cmd        = ["sh", "-c", "exit 0"]
    depends_on = ["b"]
  }
  step "b" {
    type       = "shell"
    cmd        = ["sh", "-c", "exit 0"]
    depends_on = ["a"]
  }
}
`)

		err := a.Run(ctx, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "plan validation failed")
		assert.Contains(t, err.Error(), "circular dependency")
		assert.Contains(t, buf.String(), "Circular dependency detected in the workflow graph!")
		assert.Contains(t, buf.String(), "Resolution suggestions:")
	})

	t.Run("sequential mode runs the same plan", func(t *testing.T) {
		dir := t.TempDir()
		a, cfg, _ := setupApp(t, fmt.Sprintf(`
plan "serial" {
  step "first" {
    type = "shell"
    cmd  = ["sh", "-c", "printf 1 >> %s/order.txt"]
  }
  step "second" {
    type       = "shell"
    cmd        = ["sh", "-c", "printf 2 >> %s/order.txt"]
    depends_on = ["first"]
  }
}
`, dir, dir))
		cfg.Sequential = true

		require.NoError(t, a.Run(ctx, cfg))

		content, err := os.ReadFile(filepath.Join(dir, "order.txt"))
		require.NoError(t, err)
		assert.Equal(t, "12", string(content))
	})
}
