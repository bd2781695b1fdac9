package algorithms

import "github.com/dd0wney/cluso-codegraph/pkg/codegraph"

// ClusteringCoefficient computes the local clustering coefficient of every
// node: the fraction of pairs of its distinct neighbors that are themselves
// linked. Nodes with fewer than two neighbors score 0.
func ClusteringCoefficient(g *codegraph.Graph) map[string]float64 {
	coefficients := LocalClustering(g)
	out := make(map[string]float64, len(coefficients))
	for i, c := range coefficients {
		out[g.NodeAt(i).ID()] = c
	}
	return out
}

// LocalClustering returns clustering coefficients indexed by insertion order
func LocalClustering(g *codegraph.Graph) []float64 {
	return clusteringFromTriangles(g, trianglesPerNode(g))
}

// AverageClusteringCoefficient computes the mean clustering coefficient over
// all nodes
func AverageClusteringCoefficient(g *codegraph.Graph) float64 {
	coefficients := LocalClustering(g)
	if len(coefficients) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, coef := range coefficients {
		sum += coef
	}

	return sum / float64(len(coefficients))
}

func clusteringFromTriangles(g *codegraph.Graph, triangles []int) []float64 {
	coefficients := make([]float64, len(triangles))
	for i, t := range triangles {
		k := len(g.Links(i))
		if k < 2 {
			continue
		}
		// Clustering coefficient = actual triangles / possible triangles
		possible := k * (k - 1) / 2
		coefficients[i] = float64(t) / float64(possible)
	}
	return coefficients
}
