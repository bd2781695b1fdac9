package community

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dd0wney/cluso-codegraph/pkg/codegraph"
)

func buildGraph(t *testing.T, ids string, pairs ...string) *codegraph.Graph {
	t.Helper()

	g := codegraph.NewGraph()
	for _, r := range ids {
		if _, err := g.AddNode(string(r), codegraph.KindFunction, nil); err != nil {
			t.Fatalf("AddNode(%c) failed: %v", r, err)
		}
	}
	for _, pair := range pairs {
		if _, err := g.AddEdge(pair[:1], pair[1:], codegraph.RelCall); err != nil {
			t.Fatalf("AddEdge(%s) failed: %v", pair, err)
		}
	}
	return g
}

// pathGraph is A-B-C-D-E-F-G-H
func pathGraph(t *testing.T) *codegraph.Graph {
	return buildGraph(t, "ABCDEFGH", "AB", "BC", "CD", "EF", "FG", "GH", "DE")
}

func completeGraph(t *testing.T) *codegraph.Graph {
	return buildGraph(t, "ABCDE", "AB", "AC", "AD", "AE", "BC", "BD", "BE", "CD", "CE", "DE")
}

// weightedPair is two heavy pairs joined by a light link; splitting it into
// {A,B} and {C,D} scores modularity 0.4.
func weightedPair(t *testing.T) (*codegraph.Graph, codegraph.Partition) {
	t.Helper()

	g := buildGraph(t, "ABCD")
	for _, e := range []struct {
		u, v string
		w    float64
	}{{"A", "B", 9}, {"C", "D", 9}, {"B", "C", 2}} {
		if _, err := g.AddWeightedEdge(e.u, e.v, codegraph.RelImport, e.w); err != nil {
			t.Fatalf("AddWeightedEdge failed: %v", err)
		}
	}
	return g, codegraph.Partition{"A": 0, "B": 0, "C": 1, "D": 1}
}

var errBoom = errors.New("boom")

func failing() Detector {
	return DetectorFunc(func(*codegraph.Graph, Parameters) (codegraph.Partition, error) {
		return nil, errBoom
	})
}

func fixed(p codegraph.Partition) Detector {
	return DetectorFunc(func(*codegraph.Graph, Parameters) (codegraph.Partition, error) {
		return p, nil
	})
}

type countingDetector struct {
	mu    sync.Mutex
	calls int
}

func (c *countingDetector) Detect(g *codegraph.Graph, _ Parameters) (codegraph.Partition, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return codegraph.Singletons(g), nil
}

type unavailableDetector struct{ countingDetector }

func (*unavailableDetector) Available() bool { return false }

type fakeRecorder struct {
	mu          sync.Mutex
	detections  []string
	fallbacks   []string
	comparisons int
	failures    int
}

func (r *fakeRecorder) RecordDetection(requested, algorithm string, err error, _ time.Duration, _ int, _ float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.detections = append(r.detections, requested+"/"+algorithm+"/"+status)
}

func (r *fakeRecorder) RecordFallback(algorithm, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallbacks = append(r.fallbacks, algorithm+"/"+reason)
}

func (r *fakeRecorder) RecordComparison(_ time.Duration, failures int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comparisons++
	r.failures += failures
}

func sizes(g *codegraph.Graph, p codegraph.Partition) []int {
	var out []int
	for _, members := range p.Groups(g) {
		out = append(out, len(members))
	}
	return out
}
