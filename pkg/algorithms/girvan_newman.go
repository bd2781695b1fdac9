package algorithms

import (
	"slices"

	"github.com/dd0wney/cluso-codegraph/pkg/codegraph"
)

// betweennessTolerance groups links whose betweenness differs only by rounding
const betweennessTolerance = 1e-9

// GirvanNewman builds the divisive hierarchy obtained by repeatedly removing
// the link with the highest betweenness (the first in (u, v) index order on
// ties). Level 0 is the connected components of g; every removal that splits
// a component yields the next level.
//
// With k > 0 the first level with exactly k communities is returned, or an
// empty partition when no level has k communities. With k == 0 the level with
// the greatest modularity is returned, considering levels until the community
// count exceeds half the node count.
func GirvanNewman(g *codegraph.Graph, k int) codegraph.Partition {
	n := g.NodeCount()
	adj := linkAdjacency(g)
	links := sortedLinks(adj)

	labels, count := components(adj)
	if k > 0 && count == k {
		return codegraph.Normalize(g, labels)
	}

	net := fromGraph(g)
	best := labels
	bestQ := net.modularity(labels, 1.0)

	for len(links) > 0 {
		scores := brandesEdgeBetweenness(adj)
		highest := scores[links[0]]
		for _, key := range links[1:] {
			if s := scores[key]; s > highest {
				highest = s
			}
		}
		pick := 0
		for i, key := range links {
			if scores[key] >= highest-betweennessTolerance {
				pick = i
				break
			}
		}

		removed := links[pick]
		links = slices.Delete(links, pick, pick+1)
		adj[removed[0]] = removeNeighbor(adj[removed[0]], removed[1])
		adj[removed[1]] = removeNeighbor(adj[removed[1]], removed[0])

		next, c := components(adj)
		if c <= count {
			continue
		}
		count = c

		if k > 0 {
			if c == k {
				return codegraph.Normalize(g, next)
			}
			continue
		}
		if 2*c > n {
			break
		}
		if q := net.modularity(next, 1.0); q > bestQ+epsilon {
			best = next
			bestQ = q
		}
	}

	if k > 0 {
		return codegraph.Partition{}
	}
	return codegraph.Normalize(g, best)
}

func removeNeighbor(neighbors []int, v int) []int {
	if i := slices.Index(neighbors, v); i >= 0 {
		return slices.Delete(neighbors, i, i+1)
	}
	return neighbors
}
