// Package recommend derives refactoring suggestions from community statistics.
package recommend

import (
	"fmt"

	"github.com/dd0wney/cluso-codegraph/pkg/analysis"
	"github.com/dd0wney/cluso-codegraph/pkg/validation"
)

// Kind classifies a recommendation
type Kind string

const (
	KindSplit    Kind = "split"
	KindMerge    Kind = "merge"
	KindCohesion Kind = "cohesion"
	KindCoupling Kind = "coupling"
)

// Thresholds control when a recommendation is emitted
type Thresholds struct {
	SplitSize   int     `json:"split_size" yaml:"split_size"`
	MergeSize   int     `json:"merge_size" yaml:"merge_size"`
	MinCohesion float64 `json:"min_cohesion" yaml:"min_cohesion"`
	MaxCoupling float64 `json:"max_coupling" yaml:"max_coupling"`
}

// DefaultThresholds returns the standard thresholds
func DefaultThresholds() Thresholds {
	return Thresholds{
		SplitSize:   20,
		MergeSize:   3,
		MinCohesion: 0.3,
		MaxCoupling: 0.7,
	}
}

// Validate checks the thresholds are in range
func (t Thresholds) Validate() error {
	return validation.NewConfigValidator("Thresholds").
		MinInt("split_size", t.SplitSize, 1).
		NonNegative("merge_size", t.MergeSize).
		RangeFloat("min_cohesion", t.MinCohesion, 0, 1).
		RangeFloat("max_coupling", t.MaxCoupling, 0, 1).
		Validate()
}

// Recommendation is one suggestion. CommunityID is the community it concerns.
type Recommendation struct {
	Kind        Kind   `json:"kind"`
	CommunityID int    `json:"community_id"`
	Message     string `json:"message"`
}

// Engine evaluates statistics against thresholds
type Engine struct {
	thresholds Thresholds
}

// NewEngine creates an engine with the given thresholds
func NewEngine(t Thresholds) *Engine {
	return &Engine{thresholds: t}
}

// Thresholds returns the engine thresholds
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

// Advise returns recommendations in a fixed order: the split suggestion for
// the largest community, the merge suggestion for the smallest, then the
// cohesion and coupling suggestions of each community by ascending id.
// stats is not modified.
func (e *Engine) Advise(stats *analysis.Statistics) []Recommendation {
	if stats == nil || len(stats.Communities) == 0 {
		return []Recommendation{}
	}
	t := e.thresholds
	out := []Recommendation{}

	if largest, ok := stats.Largest(); ok && largest.Size > t.SplitSize {
		out = append(out, Recommendation{
			Kind:        KindSplit,
			CommunityID: largest.ID,
			Message: fmt.Sprintf("largest community %d has %d nodes; consider splitting it",
				largest.ID, largest.Size),
		})
	}

	if smallest, ok := stats.Smallest(); ok && smallest.Size < t.MergeSize && stats.NumCommunities > 1 {
		out = append(out, Recommendation{
			Kind:        KindMerge,
			CommunityID: smallest.ID,
			Message: fmt.Sprintf("community %d has only %d nodes; consider merging it into a neighbor",
				smallest.ID, smallest.Size),
		})
	}

	for _, c := range stats.Communities {
		if c.Cohesion < t.MinCohesion {
			out = append(out, Recommendation{
				Kind:        KindCohesion,
				CommunityID: c.ID,
				Message: fmt.Sprintf("community %d has low cohesion (%.2f); restructure it to improve modularity",
					c.ID, c.Cohesion),
			})
		}
		if c.Coupling > t.MaxCoupling {
			out = append(out, Recommendation{
				Kind:        KindCoupling,
				CommunityID: c.ID,
				Message: fmt.Sprintf("community %d is highly coupled (%.2f); decouple it to reduce dependencies",
					c.ID, c.Coupling),
			})
		}
	}

	return out
}

// Recommend returns the messages of Advise
func (e *Engine) Recommend(stats *analysis.Statistics) []string {
	advice := e.Advise(stats)
	msgs := make([]string, len(advice))
	for i, r := range advice {
		msgs[i] = r.Message
	}
	return msgs
}
