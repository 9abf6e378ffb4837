package graph

import (
	"fmt"
	"sort"
)

// DependencyType classifies why an edge exists between two nodes.
type DependencyType string

const (
	// FileCreation orders a node that creates a file before one that reads it.
	FileCreation DependencyType = "file_creation"
	// DirCreation orders a node that creates a directory before one that
	// needs it to exist.
	DirCreation DependencyType = "dir_creation"
	// ResourceAccess orders two nodes that touch the same resource.
	ResourceAccess DependencyType = "resource_access"
	// ExecOrder is an explicit ordering constraint with no resource attached.
	ExecOrder DependencyType = "exec_order"
)

// knownDependencyTypes is the closed set accepted by the validator.
var knownDependencyTypes = map[DependencyType]struct{}{
	FileCreation:   {},
	DirCreation:    {},
	ResourceAccess: {},
	ExecOrder:      {},
}

// KnownDependencyType reports whether t is one of the defined edge types.
func KnownDependencyType(t DependencyType) bool {
	_, ok := knownDependencyTypes[t]
	return ok
}

// Node is a unit of schedulable work together with its declared resource
// effects. Nodes are immutable once handed to a Graph; the resource slices
// are treated as sets.
type Node struct {
	ID           string
	CreatesFiles []string
	CreatesDirs  []string
	ReadsFiles   []string
	RequiresDirs []string
	Metadata     map[string]any
}

// Edge is a directed ordering constraint: From must finish before To starts.
// A self-referencing edge is never valid.
type Edge struct {
	From        string
	To          string
	Type        DependencyType
	Resource    string
	Description string
}

// Graph owns a set of nodes, an ordered edge list, and the forward/reverse
// adjacency derived from them. The adjacency is recomputed whenever a graph
// is built; a Graph is never patched in place.
//
// Node insertion order is retained so that every algorithm in this package
// produces the same output for the same input, independent of Go's map
// iteration order.
type Graph struct {
	nodes   map[string]*Node
	ids     []string
	edges   []*Edge
	forward map[string]map[string]struct{}
	reverse map[string]map[string]struct{}
}

// New builds a graph from nodes and edges and derives its adjacency.
// Duplicate node ids are rejected; edge endpoints are not checked here, the
// structural validator owns that rule.
func New(nodes []*Node, edges []*Edge) (*Graph, error) {
	g := &Graph{
		nodes: make(map[string]*Node, len(nodes)),
		ids:   make([]string, 0, len(nodes)),
		edges: make([]*Edge, 0, len(edges)),
	}
	for _, n := range nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("node with empty id")
		}
		if _, exists := g.nodes[n.ID]; exists {
			return nil, fmt.Errorf("duplicate node id %q", n.ID)
		}
		g.nodes[n.ID] = n
		g.ids = append(g.ids, n.ID)
	}
	g.edges = append(g.edges, edges...)
	g.forward, g.reverse = BuildAdjacency(g.ids, g.edges)
	return g, nil
}

// NodeIDs returns the node ids in insertion order. The slice is a copy.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.ids))
	copy(ids, g.ids)
	return ids
}

// Node looks up a node by id.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.ids))
	for _, id := range g.ids {
		out = append(out, g.nodes[id])
	}
	return out
}

// Edges returns a copy of the ordered edge list.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Len returns the node count.
func (g *Graph) Len() int {
	return len(g.ids)
}

// Successors returns the ids this node points at, sorted.
func (g *Graph) Successors(id string) []string {
	return sortedKeys(g.forward[id])
}

// Predecessors returns the ids pointing at this node, sorted.
func (g *Graph) Predecessors(id string) []string {
	return sortedKeys(g.reverse[id])
}

// Forward returns a deep copy of the forward adjacency map.
func (g *Graph) Forward() map[string]map[string]struct{} {
	return copyAdjacency(g.forward)
}

// Reverse returns a deep copy of the reverse adjacency map.
func (g *Graph) Reverse() map[string]map[string]struct{} {
	return copyAdjacency(g.reverse)
}

// DetectCycles runs cycle detection over this graph's adjacency.
func (g *Graph) DetectCycles() [][]string {
	return DetectCycles(g.ids, g.forward)
}

// TopologicalSort orders this graph's nodes; see the package function.
func (g *Graph) TopologicalSort() ([]string, bool, [][]string) {
	return TopologicalSort(g.ids, g.edges)
}

// ParallelGroups computes the level groups for this graph; see the package
// function.
func (g *Graph) ParallelGroups() ([][]string, error) {
	return ParallelGroups(g.ids, g.edges)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func copyAdjacency(adj map[string]map[string]struct{}) map[string]map[string]struct{} {
	out := make(map[string]map[string]struct{}, len(adj))
	for id, set := range adj {
		cp := make(map[string]struct{}, len(set))
		for k := range set {
			cp[k] = struct{}{}
		}
		out[id] = cp
	}
	return out
}
