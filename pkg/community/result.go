package community

import (
	"github.com/dd0wney/cluso-codegraph/pkg/analysis"
	"github.com/dd0wney/cluso-codegraph/pkg/codegraph"
)

// Fallback reasons
const (
	ReasonUnavailable      = "unavailable"
	ReasonFailed           = "failed"
	ReasonPanicked         = "panicked"
	ReasonInvalidPartition = "invalid_partition"
)

// FallbackAttempt records an algorithm that was skipped on the way to the result
type FallbackAttempt struct {
	Algorithm Algorithm `json:"algorithm"`
	Reason    string    `json:"reason"`
	Error     string    `json:"error"`
}

// DetectionResult is the outcome of one detection request. Algorithm is the
// variant that produced the partition, which differs from Requested when
// the engine fell back.
type DetectionResult struct {
	Algorithm      Algorithm            `json:"algorithm"`
	Requested      Algorithm            `json:"requested"`
	Partition      codegraph.Partition  `json:"partition"`
	Modularity     float64              `json:"modularity"`
	NumCommunities int                  `json:"num_communities"`
	Statistics     *analysis.Statistics `json:"statistics"`
	Parameters     Parameters           `json:"parameters"`
	Fallbacks      []FallbackAttempt    `json:"fallbacks,omitempty"`
}

// FellBack reports whether an algorithm other than the requested one ran
func (r *DetectionResult) FellBack() bool {
	return r.Algorithm != r.Requested
}
