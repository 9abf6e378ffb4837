package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sugipamo/project-cph-sub010/internal/graph"
)

func node(id string) *graph.Node {
	return &graph.Node{ID: id}
}

func edge(from, to string, typ graph.DependencyType) *graph.Edge {
	return &graph.Edge{From: from, To: to, Type: typ}
}

func TestStructure(t *testing.T) {
	t.Run("valid graph passes", func(t *testing.T) {
		res := Structure(
			[]*graph.Node{node("a"), node("b")},
			[]*graph.Edge{edge("a", "b", graph.ExecOrder)},
		)
		assert.True(t, res.IsValid)
		assert.Empty(t, res.Errors)
		assert.Equal(t, 2, res.Statistics["total_nodes"])
		assert.Equal(t, 1, res.Statistics["total_edges"])
	})

	t.Run("empty graph is an error", func(t *testing.T) {
		res := Structure(nil, nil)
		assert.False(t, res.IsValid)
		assert.Contains(t, res.Errors, "graph has no nodes")
	})

	t.Run("duplicate node id is an error", func(t *testing.T) {
		res := Structure([]*graph.Node{node("a"), node("a")}, nil)
		assert.False(t, res.IsValid)
		assert.Contains(t, res.Errors, "duplicate node id 'a'")
	})

	t.Run("self loop is an error", func(t *testing.T) {
		res := Structure(
			[]*graph.Node{node("a")},
			[]*graph.Edge{edge("a", "a", graph.ExecOrder)},
		)
		assert.False(t, res.IsValid)
		assert.Contains(t, res.Errors, "edge 0 is a self-loop on node 'a'")
	})

	t.Run("unknown endpoint is an error", func(t *testing.T) {
		res := Structure(
			[]*graph.Node{node("a")},
			[]*graph.Edge{edge("a", "ghost", graph.ExecOrder)},
		)
		assert.False(t, res.IsValid)
		assert.Contains(t, res.Errors, "edge 0 references unknown node 'ghost'")
	})

	t.Run("duplicate edge warns but stays valid", func(t *testing.T) {
		res := Structure(
			[]*graph.Node{node("a"), node("b")},
			[]*graph.Edge{
				edge("a", "b", graph.FileCreation),
				edge("a", "b", graph.FileCreation),
			},
		)
		assert.True(t, res.IsValid)
		assert.Contains(t, res.Warnings, "duplicate edge a -> b (file_creation)")
	})

	t.Run("unknown dependency type warns", func(t *testing.T) {
		res := Structure(
			[]*graph.Node{node("a"), node("b")},
			[]*graph.Edge{edge("a", "b", graph.DependencyType("telepathy"))},
		)
		assert.True(t, res.IsValid)
		assert.Contains(t, res.Warnings, "edge 0 has unknown dependency type 'telepathy'")
	})

	t.Run("isolated node warns with a suggestion", func(t *testing.T) {
		res := Structure(
			[]*graph.Node{node("a"), node("b"), node("lost")},
			[]*graph.Edge{edge("a", "b", graph.ExecOrder)},
		)
		assert.True(t, res.IsValid)
		assert.Contains(t, res.Warnings, "1 isolated node(s) with no dependencies: lost")
		assert.Contains(t, res.Suggestions, "Connect isolated nodes to the workflow or remove them")
		assert.Equal(t, 1, res.Statistics["isolated_nodes"])
	})

	t.Run("too many sinks warns", func(t *testing.T) {
		nodes := []*graph.Node{node("root"), node("s1"), node("s2"), node("s3"), node("s4")}
		edges := []*graph.Edge{
			edge("root", "s1", graph.ExecOrder),
			edge("root", "s2", graph.ExecOrder),
			edge("root", "s3", graph.ExecOrder),
			edge("root", "s4", graph.ExecOrder),
		}
		res := Structure(nodes, edges)
		require.True(t, res.IsValid)
		assert.Contains(t, res.Warnings, "graph has 4 sink nodes without outgoing edges")
		assert.Equal(t, 4, res.Statistics["sink_nodes"])
	})

	t.Run("edge type breakdown is counted", func(t *testing.T) {
		res := Structure(
			[]*graph.Node{node("a"), node("b"), node("c")},
			[]*graph.Edge{
				edge("a", "b", graph.FileCreation),
				edge("a", "c", graph.FileCreation),
				edge("b", "c", graph.DirCreation),
			},
		)
		require.True(t, res.IsValid)
		assert.Equal(t, map[string]int{"file_creation": 2, "dir_creation": 1}, res.Statistics["edge_types"])
	})
}
