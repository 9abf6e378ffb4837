package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sugipamo/project-cph-sub010/internal/registry"
	"github.com/sugipamo/project-cph-sub010/internal/request"
	"github.com/sugipamo/project-cph-sub010/internal/testutil"
)

func TestDriver(t *testing.T) {
	ctx := testutil.Context()
	d := &driver{}

	t.Run("type", func(t *testing.T) {
		assert.Equal(t, request.TypeShell, d.Type())
	})

	t.Run("runs a command and captures output", func(t *testing.T) {
		out, err := d.Execute(ctx, &request.Request{
			Type: request.TypeShell,
			Cmd:  []string{"sh", "-c", "printf compiled"},
		})
		require.NoError(t, err)
		assert.True(t, out.Success)
		assert.Equal(t, "compiled", out.Stdout)
	})

	t.Run("non-zero exit is a failed outcome, not an error", func(t *testing.T) {
		out, err := d.Execute(ctx, &request.Request{
			Type: request.TypeShell,
			Cmd:  []string{"sh", "-c", "exit 7"},
		})
		require.NoError(t, err)
		assert.False(t, out.Success)
		assert.Equal(t, 7, out.ExitCode)
	})

	t.Run("empty command is rejected", func(t *testing.T) {
		_, err := d.Execute(ctx, &request.Request{Type: request.TypeShell})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "requires a command")
	})
}

func TestRegister(t *testing.T) {
	r := registry.New()
	(&Module{}).Register(r)
	_, ok := r.Driver(request.TypeShell)
	assert.True(t, ok)
}
