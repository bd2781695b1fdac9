package algorithms

import (
	"container/list"
	"sort"

	"github.com/dd0wney/cluso-codegraph/pkg/codegraph"
)

// linkKey identifies an undirected link by its endpoint indices, smaller first
type linkKey [2]int

func newLinkKey(u, v int) linkKey {
	if u > v {
		u, v = v, u
	}
	return linkKey{u, v}
}

// brandesEdgeBetweenness runs one unweighted Brandes pass per source over the
// adjacency lists and returns raw edge betweenness. Every unordered pair is
// counted from both of its endpoints.
func brandesEdgeBetweenness(adj [][]int) map[linkKey]float64 {
	n := len(adj)
	betweenness := make(map[linkKey]float64)

	stack := make([]int, 0, n)
	predecessors := make([][]int, n)
	sigma := make([]float64, n)
	distance := make([]int, n)
	delta := make([]float64, n)

	for source := 0; source < n; source++ {
		stack = stack[:0]
		for i := 0; i < n; i++ {
			predecessors[i] = predecessors[i][:0]
			sigma[i] = 0
			distance[i] = -1
			delta[i] = 0
		}
		sigma[source] = 1
		distance[source] = 0

		queue := list.New()
		queue.PushBack(source)

		for queue.Len() > 0 {
			v, ok := queue.Remove(queue.Front()).(int)
			if !ok {
				continue
			}
			stack = append(stack, v)

			for _, w := range adj[v] {
				if distance[w] < 0 {
					queue.PushBack(w)
					distance[w] = distance[v] + 1
				}
				if distance[w] == distance[v]+1 {
					sigma[w] += sigma[v]
					predecessors[w] = append(predecessors[w], v)
				}
			}
		}

		// Back-propagation
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range predecessors[w] {
				contribution := sigma[v] / sigma[w] * (1 + delta[w])
				betweenness[newLinkKey(v, w)] += contribution
				delta[v] += contribution
			}
		}
	}

	return betweenness
}

// RankedLink is a link with its betweenness score
type RankedLink struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Score  float64 `json:"score"`
}

// EdgeBetweenness computes unweighted shortest-path betweenness for every
// undirected link, keyed by the endpoint ids with the earlier inserted node
// first. Scores are raw: each pair of nodes contributes from both ends.
func EdgeBetweenness(g *codegraph.Graph) map[[2]string]float64 {
	scores := brandesEdgeBetweenness(linkAdjacency(g))
	out := make(map[[2]string]float64, len(scores))
	for key, score := range scores {
		out[[2]string{g.NodeAt(key[0]).ID(), g.NodeAt(key[1]).ID()}] = score
	}
	return out
}

// TopLinks returns the n links with the highest betweenness, highest first.
// Ties keep link order.
func TopLinks(g *codegraph.Graph, n int) []RankedLink {
	if n <= 0 {
		return nil
	}
	adj := linkAdjacency(g)
	scores := brandesEdgeBetweenness(adj)
	links := sortedLinks(adj)

	ranked := make([]RankedLink, len(links))
	for i, key := range links {
		ranked[i] = RankedLink{
			Source: g.NodeAt(key[0]).ID(),
			Target: g.NodeAt(key[1]).ID(),
			Score:  scores[key],
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// linkAdjacency returns neighbor indices per node in link order
func linkAdjacency(g *codegraph.Graph) [][]int {
	adj := make([][]int, g.NodeCount())
	for i := range adj {
		links := g.Links(i)
		adj[i] = make([]int, len(links))
		for j, l := range links {
			adj[i][j] = l.To
		}
	}
	return adj
}

// sortedLinks lists every undirected link once, ordered by (u, v)
func sortedLinks(adj [][]int) []linkKey {
	var links []linkKey
	for u := range adj {
		for _, v := range adj[u] {
			if u < v {
				links = append(links, linkKey{u, v})
			}
		}
	}
	sort.Slice(links, func(i, j int) bool {
		if links[i][0] != links[j][0] {
			return links[i][0] < links[j][0]
		}
		return links[i][1] < links[j][1]
	})
	return links
}
