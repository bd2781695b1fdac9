package algorithms

import "github.com/dd0wney/cluso-codegraph/pkg/codegraph"

// Modularity computes weighted Newman modularity of p over the graph's
// undirected links:
//
//	Q = Σ_c [ W_in(c)/m − (S(c)/2m)² ]
//
// where m is the total link weight, W_in(c) the link weight inside c and S(c)
// the summed strength of c's members. A graph without weight scores 0. Nodes
// missing from p are treated as one extra community.
func Modularity(g *codegraph.Graph, p codegraph.Partition) float64 {
	return fromGraph(g).modularity(p.Labels(g), 1.0)
}

func (net *network) modularity(labels []int, gamma float64) float64 {
	if net.m2 <= 0 {
		return 0
	}
	labels, nc := renumber(labels)
	inside := make([]float64, nc)
	tot := make([]float64, nc)
	for i, c := range labels {
		tot[c] += net.strength[i]
		inside[c] += 2 * net.self[i]
		for _, a := range net.adj[i] {
			if labels[a.to] == c {
				inside[c] += a.weight
			}
		}
	}

	q := 0.0
	for c := range tot {
		share := tot[c] / net.m2
		q += inside[c]/net.m2 - gamma*share*share
	}
	return q
}
