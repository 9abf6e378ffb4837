package graph

// BuildAdjacency derives the forward and reverse adjacency maps for a node
// id list and an edge list. Every id is present as a key in both maps, with
// an empty set when it has no edges. Each edge contributes exactly one
// forward and one reverse entry; endpoints that are not in ids still get a
// slot so that the structural validator can see them.
func BuildAdjacency(ids []string, edges []*Edge) (forward, reverse map[string]map[string]struct{}) {
	forward = make(map[string]map[string]struct{}, len(ids))
	reverse = make(map[string]map[string]struct{}, len(ids))
	for _, id := range ids {
		forward[id] = make(map[string]struct{})
		reverse[id] = make(map[string]struct{})
	}
	for _, e := range edges {
		if forward[e.From] == nil {
			forward[e.From] = make(map[string]struct{})
		}
		if reverse[e.From] == nil {
			reverse[e.From] = make(map[string]struct{})
		}
		if forward[e.To] == nil {
			forward[e.To] = make(map[string]struct{})
		}
		if reverse[e.To] == nil {
			reverse[e.To] = make(map[string]struct{})
		}
		forward[e.From][e.To] = struct{}{}
		reverse[e.To][e.From] = struct{}{}
	}
	return forward, reverse
}
