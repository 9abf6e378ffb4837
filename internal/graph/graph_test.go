package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execEdge(from, to string) *Edge {
	return &Edge{From: from, To: to, Type: ExecOrder}
}

func TestNew(t *testing.T) {
	t.Run("builds graph with adjacency", func(t *testing.T) {
		g, err := New([]*Node{{ID: "a"}, {ID: "b"}, {ID: "c"}}, []*Edge{
			execEdge("a", "b"),
			execEdge("b", "c"),
		})
		require.NoError(t, err)
		assert.Equal(t, 3, g.Len())
		assert.Equal(t, []string{"a", "b", "c"}, g.NodeIDs())
		assert.Equal(t, []string{"b"}, g.Successors("a"))
		assert.Equal(t, []string{"b"}, g.Predecessors("c"))
	})

	t.Run("rejects empty node id", func(t *testing.T) {
		_, err := New([]*Node{{ID: ""}}, nil)
		assert.ErrorContains(t, err, "node with empty id")
	})

	t.Run("rejects duplicate node id", func(t *testing.T) {
		_, err := New([]*Node{{ID: "a"}, {ID: "a"}}, nil)
		assert.ErrorContains(t, err, `duplicate node id "a"`)
	})

	t.Run("node lookup", func(t *testing.T) {
		g, err := New([]*Node{{ID: "a", Metadata: map[string]any{"step_type": "shell"}}}, nil)
		require.NoError(t, err)

		n, ok := g.Node("a")
		require.True(t, ok)
		assert.Equal(t, "shell", n.Metadata["step_type"])

		_, ok = g.Node("missing")
		assert.False(t, ok)
	})
}

func TestBuildAdjacency(t *testing.T) {
	t.Run("every id gets a slot", func(t *testing.T) {
		forward, reverse := BuildAdjacency([]string{"a", "b"}, nil)
		assert.Len(t, forward, 2)
		assert.Len(t, reverse, 2)
		assert.Empty(t, forward["a"])
		assert.Empty(t, reverse["b"])
	})

	t.Run("edges populate both directions", func(t *testing.T) {
		forward, reverse := BuildAdjacency([]string{"a", "b"}, []*Edge{execEdge("a", "b")})
		assert.Contains(t, forward["a"], "b")
		assert.Contains(t, reverse["b"], "a")
	})

	t.Run("unknown endpoints still get slots", func(t *testing.T) {
		forward, reverse := BuildAdjacency([]string{"a"}, []*Edge{execEdge("a", "ghost")})
		assert.Contains(t, forward["a"], "ghost")
		assert.Contains(t, reverse["ghost"], "a")
	})

	t.Run("duplicate edges collapse into one entry", func(t *testing.T) {
		forward, _ := BuildAdjacency([]string{"a", "b"}, []*Edge{
			execEdge("a", "b"),
			execEdge("a", "b"),
		})
		assert.Len(t, forward["a"], 1)
	})
}

func TestOptimize(t *testing.T) {
	t.Run("removes duplicate edges keeping the first", func(t *testing.T) {
		first := &Edge{From: "a", To: "b", Type: FileCreation, Resource: "out.txt", Description: "first"}
		dup := &Edge{From: "a", To: "b", Type: FileCreation, Resource: "out.txt", Description: "second"}
		g, err := New([]*Node{{ID: "a"}, {ID: "b"}}, []*Edge{first, dup, execEdge("a", "b")})
		require.NoError(t, err)

		opt := g.Optimize()
		require.Len(t, opt.Edges(), 2) // same type deduped, different type kept
		assert.Equal(t, "first", opt.Edges()[0].Description)
	})

	t.Run("leaves the receiver untouched", func(t *testing.T) {
		g, err := New([]*Node{{ID: "a"}, {ID: "b"}}, []*Edge{
			execEdge("a", "b"),
			execEdge("a", "b"),
		})
		require.NoError(t, err)

		_ = g.Optimize()
		assert.Len(t, g.Edges(), 2)
	})
}

func TestMetrics(t *testing.T) {
	t.Run("counts degrees and groups", func(t *testing.T) {
		g, err := New([]*Node{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}, []*Edge{
			execEdge("a", "b"),
			execEdge("a", "c"),
			execEdge("b", "d"),
			execEdge("c", "d"),
		})
		require.NoError(t, err)

		m := g.Metrics()
		assert.Equal(t, 4, m.NodeCount)
		assert.Equal(t, 4, m.EdgeCount)
		assert.Equal(t, 2, m.MaxInDegree)
		assert.Equal(t, 2, m.MaxOutDegree)
		assert.Equal(t, 3, m.ParallelGroupCount)
		assert.False(t, m.HasCycles)
	})

	t.Run("cyclic graph reports zero groups", func(t *testing.T) {
		g, err := New([]*Node{{ID: "a"}, {ID: "b"}}, []*Edge{
			execEdge("a", "b"),
			execEdge("b", "a"),
		})
		require.NoError(t, err)

		m := g.Metrics()
		assert.True(t, m.HasCycles)
		assert.Zero(t, m.ParallelGroupCount)
	})
}
