package community

import (
	"fmt"
	"runtime"

	"github.com/dd0wney/cluso-codegraph/pkg/algorithms"
	"github.com/dd0wney/cluso-codegraph/pkg/analysis"
	"github.com/dd0wney/cluso-codegraph/pkg/codegraph"
	"github.com/dd0wney/cluso-codegraph/pkg/logging"
)

// Engine runs community detection with fallback. Availability of every
// algorithm is fixed when the engine is built; an Engine is safe for
// concurrent use.
type Engine struct {
	registry  Registry
	disabled  map[Algorithm]bool
	available map[Algorithm]bool
	logger    logging.Logger
	recorder  Recorder
	workers   int
}

// Option configures an Engine
type Option func(*Engine)

// WithRegistry replaces the built-in handlers
func WithRegistry(r Registry) Option {
	return func(e *Engine) {
		e.registry = r.Clone()
	}
}

// WithDetector replaces the handler of a single algorithm
func WithDetector(a Algorithm, d Detector) Option {
	return func(e *Engine) {
		e.registry[a] = d
	}
}

// WithLogger sets the engine logger
func WithLogger(logger logging.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRecorder sets the telemetry sink
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.recorder = r
		}
	}
}

// WithDisabled marks algorithms unavailable. Identity is the last resort of
// every chain and cannot be disabled.
func WithDisabled(algs ...Algorithm) Option {
	return func(e *Engine) {
		for _, a := range algs {
			if a == Identity {
				continue
			}
			e.disabled[a] = true
		}
	}
}

// WithWorkers bounds the comparator's parallelism. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// NewEngine creates an engine with the built-in algorithms
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		registry: DefaultRegistry(),
		disabled: make(map[Algorithm]bool),
		logger:   logging.NewNopLogger(),
		recorder: nopRecorder{},
		workers:  runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.available = make(map[Algorithm]bool, len(FallbackOrder))
	for _, a := range FallbackOrder {
		e.available[a] = !e.disabled[a] && e.registry.available(a)
	}
	return e
}

// Available reports whether a can run on this engine
func (e *Engine) Available(a Algorithm) bool {
	return e.available[a]
}

// Chain returns the algorithms tried for a request, in order
func (e *Engine) Chain(a Algorithm) []Algorithm {
	pos := a.position()
	if pos < 0 {
		return nil
	}
	chain := make([]Algorithm, len(FallbackOrder)-pos)
	copy(chain, FallbackOrder[pos:])
	return chain
}

// Detect partitions g with the requested algorithm, falling back down the
// chain on failure. An empty graph and invalid parameters fail immediately.
func (e *Engine) Detect(g *codegraph.Graph, algorithm Algorithm, params Parameters) (*DetectionResult, error) {
	if !algorithm.Valid() {
		return nil, NewError("Detect").Algorithm(string(algorithm)).Cause(ErrInvalidParameter).Err()
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if g == nil || g.NodeCount() == 0 {
		return nil, NewError("Detect").Algorithm(string(algorithm)).Cause(ErrEmptyGraph).Err()
	}

	logger := e.logger.With(logging.Component("community"), logging.Requested(string(algorithm)))
	logger.Debug("detection started", logging.Nodes(g.NodeCount()), logging.Edges(g.EdgeCount()))
	timer := logging.StartTimer(logger, "detection completed")

	var fallbacks []FallbackAttempt
	var failures []error
	for _, alg := range e.Chain(algorithm) {
		p, reason, err := e.attempt(g, alg, params)
		if err != nil {
			fallbacks = append(fallbacks, FallbackAttempt{Algorithm: alg, Reason: reason, Error: err.Error()})
			failures = append(failures, err)
			logger.Warn("algorithm failed, falling back",
				logging.Algorithm(string(alg)),
				logging.String("reason", reason),
				logging.Error(err))
			e.recorder.RecordFallback(string(alg), reason)
			continue
		}

		result, err := e.result(g, algorithm, alg, p, params)
		if err != nil {
			return nil, err
		}
		result.Fallbacks = fallbacks

		timer.End(logging.Algorithm(string(alg)),
			logging.Bool("fell_back", result.FellBack()),
			logging.Communities(result.NumCommunities),
			logging.Modularity(result.Modularity))
		e.recorder.RecordDetection(string(algorithm), string(alg), nil, timer.Elapsed(), result.NumCommunities, result.Modularity)
		return result, nil
	}

	err := NewError("Detect").Algorithm(string(algorithm)).Cause(ErrImplementationInvariant).Wrap(failures...).Err()
	timer.EndError(err)
	e.recorder.RecordDetection(string(algorithm), "", err, timer.Elapsed(), 0, 0)
	return nil, err
}

// attempt runs a single algorithm, turning unavailability, errors, panics
// and malformed partitions into a fallback reason.
func (e *Engine) attempt(g *codegraph.Graph, alg Algorithm, params Parameters) (p codegraph.Partition, reason string, err error) {
	if !e.available[alg] {
		return nil, ReasonUnavailable, NewError("Detect").Algorithm(string(alg)).Cause(ErrAlgorithmUnavailable).Err()
	}

	defer func() {
		if r := recover(); r != nil {
			p = nil
			reason = ReasonPanicked
			err = NewError("Detect").Algorithm(string(alg)).
				Context(fmt.Sprintf("panic: %v", r)).Cause(ErrAlgorithmRuntime).Err()
		}
	}()

	p, err = e.registry[alg].Detect(g, params)
	if err != nil {
		return nil, ReasonFailed, NewError("Detect").Algorithm(string(alg)).Cause(ErrAlgorithmRuntime).Wrap(err).Err()
	}
	// Girvan-Newman reports an unreachable target count as an empty partition
	if alg == GirvanNewman && params.K > 0 && len(p) == 0 {
		return codegraph.Partition{}, "", nil
	}
	if err := p.Validate(g); err != nil {
		return nil, ReasonInvalidPartition, NewError("Detect").Algorithm(string(alg)).Cause(ErrAlgorithmRuntime).Wrap(err).Err()
	}
	return p, "", nil
}

func (e *Engine) result(g *codegraph.Graph, requested, alg Algorithm, p codegraph.Partition, params Parameters) (*DetectionResult, error) {
	stats, err := analysis.Analyze(g, p)
	if err != nil {
		return nil, NewError("Detect").Algorithm(string(alg)).Cause(ErrImplementationInvariant).Wrap(err).Err()
	}

	q := 0.0
	if alg != Identity && len(p) > 0 {
		q = algorithms.Modularity(g, p)
	}

	return &DetectionResult{
		Algorithm:      alg,
		Requested:      requested,
		Partition:      p,
		Modularity:     q,
		NumCommunities: stats.NumCommunities,
		Statistics:     stats,
		Parameters:     params.Consumed(alg),
	}, nil
}
