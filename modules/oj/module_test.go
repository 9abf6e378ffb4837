package oj

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sugipamo/project-cph-sub010/internal/registry"
	"github.com/sugipamo/project-cph-sub010/internal/request"
	"github.com/sugipamo/project-cph-sub010/internal/testutil"
)

func TestDriver(t *testing.T) {
	d := &driver{}

	t.Run("type", func(t *testing.T) {
		assert.Equal(t, request.TypeOJ, d.Type())
	})

	t.Run("empty command is rejected", func(t *testing.T) {
		_, err := d.Execute(testutil.Context(), &request.Request{Type: request.TypeOJ})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "requires a subcommand")
	})
}

func TestRegister(t *testing.T) {
	r := registry.New()
	(&Module{}).Register(r)
	_, ok := r.Driver(request.TypeOJ)
	assert.True(t, ok)
}
