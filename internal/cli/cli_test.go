package cli

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("defaults with a positional plan path", func(t *testing.T) {
		out := &bytes.Buffer{}
		cfg, shouldExit, err := Parse([]string{"plans/abc300_a.hcl"}, out)
		require.NoError(t, err)
		require.False(t, shouldExit)

		assert.Equal(t, "plans/abc300_a.hcl", cfg.PlanPath)
		assert.Equal(t, 4, cfg.Workers)
		assert.Equal(t, 300*time.Second, cfg.Timeout)
		assert.False(t, cfg.Sequential)
		assert.False(t, cfg.DryRun)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("plan flag wins over the positional argument", func(t *testing.T) {
		cfg, _, err := Parse([]string{"-plan", "a.hcl", "b.hcl"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "a.hcl", cfg.PlanPath)
	})

	t.Run("shorthand flag", func(t *testing.T) {
		cfg, _, err := Parse([]string{"-p", "short.hcl"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "short.hcl", cfg.PlanPath)
	})

	t.Run("all execution flags", func(t *testing.T) {
		cfg, _, err := Parse([]string{
			"-workers", "8",
			"-timeout", "60",
			"-sequential",
			"-dry-run",
			"-log-format", "text",
			"-log-level", "debug",
			"plan.hcl",
		}, &bytes.Buffer{})
		require.NoError(t, err)

		assert.Equal(t, 8, cfg.Workers)
		assert.Equal(t, 60*time.Second, cfg.Timeout)
		assert.True(t, cfg.Sequential)
		assert.True(t, cfg.DryRun)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("no plan path prints usage and exits cleanly", func(t *testing.T) {
		out := &bytes.Buffer{}
		cfg, shouldExit, err := Parse(nil, out)
		require.NoError(t, err)
		assert.True(t, shouldExit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("help flag exits cleanly", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, shouldExit, err := Parse([]string{"-h"}, out)
		require.NoError(t, err)
		assert.True(t, shouldExit)
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("invalid log format", func(t *testing.T) {
		_, _, err := Parse([]string{"-log-format", "yaml", "plan.hcl"}, &bytes.Buffer{})
		require.Error(t, err)

		var exitErr *ExitError
		require.True(t, errors.As(err, &exitErr))
		assert.Equal(t, 2, exitErr.Code)
		assert.Contains(t, exitErr.Message, "invalid log-format")
	})

	t.Run("invalid log level", func(t *testing.T) {
		_, _, err := Parse([]string{"-log-level", "verbose", "plan.hcl"}, &bytes.Buffer{})
		require.Error(t, err)

		var exitErr *ExitError
		require.True(t, errors.As(err, &exitErr))
		assert.Equal(t, 2, exitErr.Code)
		assert.Contains(t, exitErr.Message, "invalid log-level")
	})

	t.Run("unknown flag is an exit error", func(t *testing.T) {
		_, _, err := Parse([]string{"-bogus"}, &bytes.Buffer{})
		require.Error(t, err)

		var exitErr *ExitError
		require.True(t, errors.As(err, &exitErr))
		assert.Equal(t, 2, exitErr.Code)
	})

	t.Run("log format and level are case insensitive", func(t *testing.T) {
		cfg, _, err := Parse([]string{"-log-format", "TEXT", "-log-level", "WARN", "plan.hcl"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "warn", cfg.LogLevel)
	})
}
