package community

import (
	"time"

	"github.com/dd0wney/cluso-codegraph/pkg/codegraph"
	"github.com/dd0wney/cluso-codegraph/pkg/logging"
	"github.com/dd0wney/cluso-codegraph/pkg/parallel"
)

// ComparisonEntry is the outcome of one requested algorithm. Exactly one of
// Result and Error is set.
type ComparisonEntry struct {
	Requested Algorithm        `json:"requested"`
	Result    *DetectionResult `json:"result,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// Comparison collects independent detection runs over one graph
type Comparison struct {
	Entries        []ComparisonEntry `json:"results"`
	BestAlgorithm  string            `json:"best_algorithm"`
	BestModularity float64           `json:"best_modularity"`
}

// Best returns the result with the greatest modularity
func (c *Comparison) Best() (*DetectionResult, bool) {
	if c.BestAlgorithm == "" {
		return nil, false
	}
	for _, entry := range c.Entries {
		if entry.Result != nil && entry.Result.Modularity == c.BestModularity {
			return entry.Result, true
		}
	}
	return nil, false
}

// Failures counts entries that produced no result
func (c *Comparison) Failures() int {
	n := 0
	for _, entry := range c.Entries {
		if entry.Result == nil {
			n++
		}
	}
	return n
}

// Compare runs Detect once per algorithm in parallel. A nil list compares
// DefaultComparison; repeated algorithms run once, at their first position.
// Entries keep request order. BestAlgorithm names the algorithm that
// produced the highest modularity, the earliest entry on ties, and is empty
// with BestModularity -1 when every entry failed.
func (e *Engine) Compare(g *codegraph.Graph, algs []Algorithm, params Parameters) (*Comparison, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if g == nil || g.NodeCount() == 0 {
		return nil, NewError("Compare").Cause(ErrEmptyGraph).Err()
	}
	if algs == nil {
		algs = DefaultComparison
	}

	seen := make(map[Algorithm]bool, len(algs))
	unique := make([]Algorithm, 0, len(algs))
	for _, a := range algs {
		if !a.Valid() {
			return nil, NewError("Compare").Algorithm(string(a)).Cause(ErrInvalidParameter).Err()
		}
		if seen[a] {
			continue
		}
		seen[a] = true
		unique = append(unique, a)
	}

	logger := e.logger.With(logging.Component("community"))
	logger.Debug("comparison started", logging.Count(len(unique)), logging.Nodes(g.NodeCount()))
	start := time.Now()

	runs, err := parallel.Map(e.workers, unique, func(_ int, a Algorithm) (*DetectionResult, error) {
		return e.Detect(g, a, params)
	}, parallel.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	cmp := &Comparison{
		Entries:        make([]ComparisonEntry, len(unique)),
		BestModularity: -1,
	}
	found := false
	for i, run := range runs {
		entry := ComparisonEntry{Requested: unique[i]}
		if run.Err != nil {
			entry.Error = run.Err.Error()
		} else {
			entry.Result = run.Value
			if !found || run.Value.Modularity > cmp.BestModularity {
				found = true
				cmp.BestAlgorithm = string(run.Value.Algorithm)
				cmp.BestModularity = run.Value.Modularity
			}
		}
		cmp.Entries[i] = entry
	}

	failures := cmp.Failures()
	e.recorder.RecordComparison(time.Since(start), failures)
	logger.Info("comparison completed",
		logging.Count(len(unique)),
		logging.Int("failures", failures),
		logging.String("best_algorithm", cmp.BestAlgorithm),
		logging.Modularity(cmp.BestModularity),
		logging.Latency(time.Since(start)))
	return cmp, nil
}
