package algorithms

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/dd0wney/cluso-codegraph/pkg/codegraph"
)

// buildGraph creates one function node per id and one call edge per pair
func buildGraph(t testing.TB, ids string, edges ...string) *codegraph.Graph {
	t.Helper()

	g := codegraph.NewGraph()
	for _, id := range strings.Split(ids, "") {
		if _, err := g.AddNode(id, codegraph.KindFunction, nil); err != nil {
			t.Fatalf("AddNode(%s) failed: %v", id, err)
		}
	}
	for _, e := range edges {
		if _, err := g.AddEdge(e[:1], e[1:], codegraph.RelCall); err != nil {
			t.Fatalf("AddEdge(%s) failed: %v", e, err)
		}
	}
	return g
}

// clique returns every pair of the given ids as two-letter edges
func clique(ids string) []string {
	var edges []string
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			edges = append(edges, ids[i:i+1]+ids[j:j+1])
		}
	}
	return edges
}

func pathGraph(t testing.TB) *codegraph.Graph {
	return buildGraph(t, "ABCDEFGH", "AB", "BC", "CD", "DE", "EF", "FG", "GH")
}

func twoCliquesGraph(t testing.TB) *codegraph.Graph {
	edges := append(clique("ABCD"), clique("EFGH")...)
	return buildGraph(t, "ABCDEFGH", append(edges, "DE")...)
}

func completeGraph(t testing.TB) *codegraph.Graph {
	return buildGraph(t, "ABCDE", clique("ABCDE")...)
}

func trianglesGraph(t testing.TB) *codegraph.Graph {
	return buildGraph(t, "ABCDEFGHI",
		"AB", "BC", "AC", "DE", "EF", "DF", "GH", "HI", "GI", "CD", "FG")
}

// randomGraph builds a reproducible random graph with n nodes
func randomGraph(n int, seed int64, density float64) *codegraph.Graph {
	rng := rand.New(rand.NewSource(seed))
	g := codegraph.NewGraph()
	for i := 0; i < n; i++ {
		g.AddNode(fmt.Sprintf("n%d", i), codegraph.KindFunction, nil)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < density {
				g.AddWeightedEdge(fmt.Sprintf("n%d", i), fmt.Sprintf("n%d", j), codegraph.RelCall, 0.5+rng.Float64())
			}
		}
	}
	return g
}

// groups renders a partition as member strings per community, e.g. [ABCD EFGH]
func groups(g *codegraph.Graph, p codegraph.Partition) []string {
	var out []string
	for _, members := range p.Groups(g) {
		out = append(out, strings.Join(members, ""))
	}
	return out
}

func assertGroups(t *testing.T, g *codegraph.Graph, p codegraph.Partition, want ...string) {
	t.Helper()

	if err := p.Validate(g); err != nil {
		t.Fatalf("invalid partition: %v", err)
	}
	got := groups(g, p)
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("Expected communities %v, got %v", want, got)
	}
}
