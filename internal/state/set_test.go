package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chain builds the forward adjacency for a -> b -> c ... in order.
func chain(ids ...string) map[string]map[string]struct{} {
	forward := make(map[string]map[string]struct{}, len(ids))
	for _, id := range ids {
		forward[id] = make(map[string]struct{})
	}
	for i := 0; i+1 < len(ids); i++ {
		forward[ids[i]][ids[i+1]] = struct{}{}
	}
	return forward
}

func TestTransitions(t *testing.T) {
	t.Run("full lifecycle to completed", func(t *testing.T) {
		s := NewSet([]string{"a"})
		require.NoError(t, s.Transition("a", StatusRunning))
		require.NoError(t, s.Transition("a", StatusCompleted))
		assert.Equal(t, StatusCompleted, s.Status("a"))
	})

	t.Run("pending can be skipped directly", func(t *testing.T) {
		s := NewSet([]string{"a"})
		require.NoError(t, s.Transition("a", StatusSkipped))
	})

	t.Run("pending cannot jump to completed", func(t *testing.T) {
		s := NewSet([]string{"a"})
		err := s.Transition("a", StatusCompleted)
		assert.ErrorContains(t, err, "invalid transition pending -> completed for node 'a'")
	})

	t.Run("terminal states reject further transitions", func(t *testing.T) {
		s := NewSet([]string{"a"})
		require.NoError(t, s.Transition("a", StatusRunning))
		require.NoError(t, s.Transition("a", StatusFailed))
		err := s.Transition("a", StatusRunning)
		assert.ErrorContains(t, err, "invalid transition failed -> running for node 'a'")
	})

	t.Run("unknown node is an error", func(t *testing.T) {
		s := NewSet(nil)
		assert.ErrorContains(t, s.Transition("ghost", StatusRunning), "unknown node 'ghost'")
	})
}

func TestIsExecutable(t *testing.T) {
	failed := map[string]struct{}{"bad": {}}

	t.Run("pending with clean deps", func(t *testing.T) {
		st := &NodeState{NodeID: "a", Status: StatusPending}
		assert.True(t, IsExecutable(st, failed, []string{"ok"}))
	})

	t.Run("failed dependency blocks", func(t *testing.T) {
		st := &NodeState{NodeID: "a", Status: StatusPending}
		assert.False(t, IsExecutable(st, failed, []string{"ok", "bad"}))
	})

	t.Run("non-pending never executes", func(t *testing.T) {
		st := &NodeState{NodeID: "a", Status: StatusRunning}
		assert.False(t, IsExecutable(st, nil, nil))
	})
}

func TestMarkDependentsSkipped(t *testing.T) {
	t.Run("skip propagates through the whole chain", func(t *testing.T) {
		s := NewSet([]string{"a", "b", "c", "d", "e"})
		require.NoError(t, s.Transition("a", StatusRunning))
		require.NoError(t, s.Transition("a", StatusFailed))

		forward := chain("a", "b", "c", "d")
		forward["e"] = map[string]struct{}{} // unrelated node

		skipped := s.MarkDependentsSkipped(forward, "a")
		assert.Equal(t, []string{"b", "c", "d"}, skipped)
		assert.Equal(t, StatusSkipped, s.Status("b"))
		assert.Equal(t, StatusSkipped, s.Status("c"))
		assert.Equal(t, StatusSkipped, s.Status("d"))
		assert.Equal(t, StatusPending, s.Status("e"))
	})

	t.Run("terminal nodes are passed through untouched", func(t *testing.T) {
		s := NewSet([]string{"a", "b", "c"})
		require.NoError(t, s.Transition("b", StatusRunning))
		require.NoError(t, s.Transition("b", StatusCompleted))

		skipped := s.MarkDependentsSkipped(chain("a", "b", "c"), "a")
		assert.Equal(t, []string{"c"}, skipped)
		assert.Equal(t, StatusCompleted, s.Status("b"))
	})

	t.Run("diamond skips each node once", func(t *testing.T) {
		s := NewSet([]string{"a", "b", "c", "d"})
		forward := map[string]map[string]struct{}{
			"a": {"b": {}, "c": {}},
			"b": {"d": {}},
			"c": {"d": {}},
			"d": {},
		}

		skipped := s.MarkDependentsSkipped(forward, "a")
		assert.Len(t, skipped, 3)
		assert.Equal(t, StatusSkipped, s.Status("d"))
	})
}

func TestFilterExecutable(t *testing.T) {
	s := NewSet([]string{"a", "b", "c", "d"})
	require.NoError(t, s.Transition("a", StatusRunning))
	require.NoError(t, s.Transition("a", StatusFailed))

	reverse := map[string]map[string]struct{}{
		"a": {},
		"b": {"a": {}}, // blocked by failed a
		"c": {},
		"d": {"c": {}},
	}
	failed := map[string]struct{}{"a": {}}

	got := s.FilterExecutable(failed, reverse)
	assert.Equal(t, []string{"c", "d"}, got)
}

func TestGroupByStatus(t *testing.T) {
	s := NewSet([]string{"a", "b", "c"})
	require.NoError(t, s.Transition("a", StatusRunning))
	require.NoError(t, s.Transition("a", StatusCompleted))
	require.NoError(t, s.Transition("b", StatusSkipped))

	groups := s.GroupByStatus()
	assert.Equal(t, []string{"a"}, groups[StatusCompleted])
	assert.Equal(t, []string{"b"}, groups[StatusSkipped])
	assert.Equal(t, []string{"c"}, groups[StatusPending])
}

func TestCompletionStats(t *testing.T) {
	s := NewSet([]string{"a", "b", "c", "d"})
	require.NoError(t, s.Transition("a", StatusRunning))
	require.NoError(t, s.Transition("a", StatusCompleted))
	require.NoError(t, s.Transition("b", StatusRunning))
	require.NoError(t, s.Transition("b", StatusFailed))
	require.NoError(t, s.Transition("c", StatusSkipped))

	stats := s.CompletionStats()
	assert.Equal(t, CompletionStats{
		Total:     4,
		Pending:   1,
		Completed: 1,
		Failed:    1,
		Skipped:   1,
		Processed: 3,
	}, stats)
}

func TestValidate(t *testing.T) {
	t.Run("matching ids pass", func(t *testing.T) {
		s := NewSet([]string{"a", "b"})
		assert.Empty(t, s.Validate([]string{"a", "b"}))
	})

	t.Run("missing state is reported", func(t *testing.T) {
		s := NewSet([]string{"a"})
		errs := s.Validate([]string{"a", "b"})
		require.Len(t, errs, 1)
		assert.ErrorContains(t, errs[0], "missing state for node 'b'")
	})

	t.Run("extra state is reported", func(t *testing.T) {
		s := NewSet([]string{"a", "extra"})
		errs := s.Validate([]string{"a"})
		require.Len(t, errs, 1)
		assert.ErrorContains(t, errs[0], "state for unknown node 'extra'")
	})

	t.Run("corrupted status is reported", func(t *testing.T) {
		s := NewSet([]string{"a"})
		st, ok := s.Get("a")
		require.True(t, ok)
		st.Status = Status("limbo")

		errs := s.Validate([]string{"a"})
		require.Len(t, errs, 1)
		assert.ErrorContains(t, errs[0], "invalid status 'limbo' for node 'a'")
	})
}
