package community

import (
	"maps"

	"github.com/dd0wney/cluso-codegraph/pkg/algorithms"
	"github.com/dd0wney/cluso-codegraph/pkg/codegraph"
)

// Detector partitions a graph. Implementations must not mutate g.
type Detector interface {
	Detect(g *codegraph.Graph, params Parameters) (codegraph.Partition, error)
}

// DetectorFunc adapts a function to the Detector interface
type DetectorFunc func(g *codegraph.Graph, params Parameters) (codegraph.Partition, error)

// Detect calls f
func (f DetectorFunc) Detect(g *codegraph.Graph, params Parameters) (codegraph.Partition, error) {
	return f(g, params)
}

// AvailabilityChecker is implemented by detectors whose backing
// implementation may be missing from the environment.
type AvailabilityChecker interface {
	Available() bool
}

// Registry maps each algorithm to its handler
type Registry map[Algorithm]Detector

// DefaultRegistry returns the built-in handler for every algorithm
func DefaultRegistry() Registry {
	return Registry{
		Leiden: DetectorFunc(func(g *codegraph.Graph, p Parameters) (codegraph.Partition, error) {
			return algorithms.Leiden(g, p.ResolutionOrDefault()), nil
		}),
		Louvain: DetectorFunc(func(g *codegraph.Graph, p Parameters) (codegraph.Partition, error) {
			return algorithms.Louvain(g, p.ResolutionOrDefault()), nil
		}),
		GirvanNewman: DetectorFunc(func(g *codegraph.Graph, p Parameters) (codegraph.Partition, error) {
			return algorithms.GirvanNewman(g, p.K), nil
		}),
		LabelPropagation: DetectorFunc(func(g *codegraph.Graph, p Parameters) (codegraph.Partition, error) {
			return algorithms.LabelPropagation(g, p.MaxIterationsOrDefault()), nil
		}),
		Identity: DetectorFunc(func(g *codegraph.Graph, _ Parameters) (codegraph.Partition, error) {
			return algorithms.Identity(g), nil
		}),
	}
}

// Clone returns a shallow copy of r
func (r Registry) Clone() Registry {
	return maps.Clone(r)
}

func (r Registry) available(a Algorithm) bool {
	d, ok := r[a]
	if !ok || d == nil {
		return false
	}
	if checker, ok := d.(AvailabilityChecker); ok {
		return checker.Available()
	}
	return true
}
