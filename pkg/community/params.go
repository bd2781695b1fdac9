package community

import (
	"math"

	"github.com/dd0wney/cluso-codegraph/pkg/algorithms"
	"github.com/dd0wney/cluso-codegraph/pkg/validation"
)

// Parameters tunes a detection run. Zero values select defaults: resolution
// 1.0, no target community count, and 100 label propagation rounds.
type Parameters struct {
	Resolution    float64 `json:"resolution,omitempty" yaml:"resolution" validate:"gte=0"`
	K             int     `json:"k,omitempty" yaml:"k" validate:"gte=0"`
	MaxIterations int     `json:"max_iterations,omitempty" yaml:"max_iterations" validate:"gte=0,lte=100000"`
}

// Validate rejects negative or non-finite values
func (p Parameters) Validate() error {
	if math.IsNaN(p.Resolution) || math.IsInf(p.Resolution, 0) {
		return NewError("Validate").Param("resolution").Context("must be finite").Cause(ErrInvalidParameter).Err()
	}
	if err := validation.ValidateStruct(&p); err != nil {
		return NewError("Validate").Context(err.Error()).Cause(ErrInvalidParameter).Err()
	}
	return nil
}

// ResolutionOrDefault returns the resolution modularity optimizers use
func (p Parameters) ResolutionOrDefault() float64 {
	if p.Resolution == 0 {
		return algorithms.DefaultResolution
	}
	return p.Resolution
}

// MaxIterationsOrDefault returns the label propagation round limit
func (p Parameters) MaxIterationsOrDefault() int {
	if p.MaxIterations == 0 {
		return algorithms.DefaultMaxIterations
	}
	return p.MaxIterations
}

// Consumed returns the parameters a actually reads, with defaults applied.
// Everything else is zeroed.
func (p Parameters) Consumed(a Algorithm) Parameters {
	switch a {
	case Leiden, Louvain:
		return Parameters{Resolution: p.ResolutionOrDefault()}
	case GirvanNewman:
		return Parameters{K: p.K}
	case LabelPropagation:
		return Parameters{MaxIterations: p.MaxIterationsOrDefault()}
	default:
		return Parameters{}
	}
}
