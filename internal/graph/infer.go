package graph

import "fmt"

// InferResourceEdges derives dependency edges from declared resource
// usage. Every node that reads a file depends on every node that creates
// it, and every node that requires a directory depends on every node that
// creates it. A node never depends on itself, even when it both creates
// and reads the same path.
//
// Edge order follows the nodes slice and each node's declared path order,
// so inference over the same input always yields the same edge list.
func InferResourceEdges(nodes []*Node) []*Edge {
	fileCreators := make(map[string][]string)
	dirCreators := make(map[string][]string)
	for _, node := range nodes {
		for _, path := range node.CreatesFiles {
			fileCreators[path] = append(fileCreators[path], node.ID)
		}
		for _, path := range node.CreatesDirs {
			dirCreators[path] = append(dirCreators[path], node.ID)
		}
	}

	var edges []*Edge
	for _, node := range nodes {
		for _, path := range node.ReadsFiles {
			for _, creator := range fileCreators[path] {
				if creator == node.ID {
					continue
				}
				edges = append(edges, &Edge{
					From:        creator,
					To:          node.ID,
					Type:        FileCreation,
					Resource:    path,
					Description: fmt.Sprintf("File %s must be created before being read", path),
				})
			}
		}
		for _, path := range node.RequiresDirs {
			for _, creator := range dirCreators[path] {
				if creator == node.ID {
					continue
				}
				edges = append(edges, &Edge{
					From:        creator,
					To:          node.ID,
					Type:        DirCreation,
					Resource:    path,
					Description: fmt.Sprintf("Directory %s must be created before being used", path),
				})
			}
		}
	}
	return edges
}
