package algorithms

import (
	"container/list"

	"github.com/dd0wney/cluso-codegraph/pkg/codegraph"
)

// ConnectedComponents labels the connected components of g, ignoring edge
// direction. Components are numbered in order of their first node.
func ConnectedComponents(g *codegraph.Graph) codegraph.Partition {
	labels, _ := components(linkAdjacency(g))
	return codegraph.Normalize(g, labels)
}

// components runs a BFS from every unvisited node in index order
func components(adj [][]int) ([]int, int) {
	labels := make([]int, len(adj))
	for i := range labels {
		labels[i] = -1
	}

	count := 0
	for start := range adj {
		if labels[start] >= 0 {
			continue
		}

		queue := list.New()
		queue.PushBack(start)
		labels[start] = count

		for queue.Len() > 0 {
			v, ok := queue.Remove(queue.Front()).(int)
			if !ok {
				continue
			}
			for _, w := range adj[v] {
				if labels[w] < 0 {
					labels[w] = count
					queue.PushBack(w)
				}
			}
		}
		count++
	}

	return labels, count
}
