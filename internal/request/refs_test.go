package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferences(t *testing.T) {
	t.Run("finds both placeholder forms", func(t *testing.T) {
		text := "run {{compile.result.stdout}} with {{setup.status}}"
		assert.Equal(t, []string{"compile", "setup"}, References(text))
	})

	t.Run("deduplicates repeated names", func(t *testing.T) {
		text := "{{a.result.stdout}} {{a.result.stderr}} {{a.exitcode}}"
		assert.Equal(t, []string{"a"}, References(text))
	})

	t.Run("plain text has none", func(t *testing.T) {
		assert.Empty(t, References("g++ -O2 main.cpp"))
	})
}

func TestRenameReferences(t *testing.T) {
	rename := map[string]string{"compile": "step_0"}

	t.Run("rewrites known names in both forms", func(t *testing.T) {
		assert.Equal(t, "{{step_0.result.stdout}}",
			RenameReferences("{{compile.result.stdout}}", rename))
		assert.Equal(t, "{{step_0.stdout}}",
			RenameReferences("{{compile.stdout}}", rename))
	})

	t.Run("unknown names stay verbatim", func(t *testing.T) {
		assert.Equal(t, "{{ghost.result.stdout}}",
			RenameReferences("{{ghost.result.stdout}}", rename))
	})

	t.Run("surrounding text is preserved", func(t *testing.T) {
		got := RenameReferences("echo {{compile.result.stdout}} > log", rename)
		assert.Equal(t, "echo {{step_0.result.stdout}} > log", got)
	})
}

func TestRenamedReferences(t *testing.T) {
	rename := map[string]string{"compile": "step_0"}
	req := &Request{
		Type: TypeShell,
		Cmd:  []string{"echo", "{{compile.result.stdout}}"},
		Cwd:  "{{compile.result.stdout}}",
		Env:  map[string]string{"PREV": "{{compile.returncode}}"},
	}

	out := req.RenamedReferences(rename)
	assert.Equal(t, []string{"echo", "{{step_0.result.stdout}}"}, out.Cmd)
	assert.Equal(t, "{{step_0.result.stdout}}", out.Cwd)
	assert.Equal(t, "{{step_0.returncode}}", out.Env["PREV"])

	// The receiver is untouched.
	assert.Equal(t, "{{compile.result.stdout}}", req.Cmd[1])
	assert.Equal(t, "{{compile.returncode}}", req.Env["PREV"])
}
