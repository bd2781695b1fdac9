package algorithms

import "github.com/dd0wney/cluso-codegraph/pkg/codegraph"

// Identity places every node in its own community
func Identity(g *codegraph.Graph) codegraph.Partition {
	return codegraph.Singletons(g)
}
