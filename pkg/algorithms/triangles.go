package algorithms

import "github.com/dd0wney/cluso-codegraph/pkg/codegraph"

// TriangleCountResult holds triangle counting results including per-node
// counts, the global count and clustering coefficients.
type TriangleCountResult struct {
	PerNode                map[string]int
	GlobalCount            int
	ClusteringCoefficients map[string]float64
}

// CountTriangles counts triangles over the undirected link view.
// For each node u, it checks every pair (v,w) of u's neighbors; if v and w are
// also linked, that's a triangle. Each triangle is counted once per
// participating node, so GlobalCount = sum(PerNode) / 3.
func CountTriangles(g *codegraph.Graph) *TriangleCountResult {
	perIndex := trianglesPerNode(g)
	coefficients := clusteringFromTriangles(g, perIndex)

	result := &TriangleCountResult{
		PerNode:                make(map[string]int, len(perIndex)),
		ClusteringCoefficients: make(map[string]float64, len(perIndex)),
	}
	total := 0
	for i, c := range perIndex {
		id := g.NodeAt(i).ID()
		result.PerNode[id] = c
		result.ClusteringCoefficients[id] = coefficients[i]
		total += c
	}
	result.GlobalCount = total / 3
	return result
}

// trianglesPerNode returns the number of triangles through each node, indexed
// by insertion order
func trianglesPerNode(g *codegraph.Graph) []int {
	n := g.NodeCount()
	neighborSets := make([]map[int]bool, n)
	for i := 0; i < n; i++ {
		set := make(map[int]bool, len(g.Links(i)))
		for _, l := range g.Links(i) {
			set[l.To] = true
		}
		neighborSets[i] = set
	}

	counts := make([]int, n)
	for u := 0; u < n; u++ {
		links := g.Links(u)
		for i := 0; i < len(links); i++ {
			v := links[i].To
			for j := i + 1; j < len(links); j++ {
				if neighborSets[v][links[j].To] {
					counts[u]++
				}
			}
		}
	}
	return counts
}
