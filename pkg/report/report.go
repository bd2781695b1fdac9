// Package report assembles serializable views of detection results.
package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-codegraph/pkg/analysis"
	"github.com/dd0wney/cluso-codegraph/pkg/codegraph"
	"github.com/dd0wney/cluso-codegraph/pkg/community"
	"github.com/dd0wney/cluso-codegraph/pkg/recommend"
)

// Report is the serialized outcome of one detection run
type Report struct {
	RunID           string                      `json:"run_id"`
	CreatedAt       time.Time                   `json:"created_at"`
	Algorithm       string                      `json:"algorithm"`
	Requested       string                      `json:"requested"`
	Partition       map[string]int              `json:"partition"`
	Modularity      float64                     `json:"modularity"`
	NumCommunities  int                         `json:"num_communities"`
	Statistics      *analysis.Statistics        `json:"statistics"`
	Recommendations []string                    `json:"recommendations"`
	Advice          []recommend.Recommendation  `json:"advice"`
	Parameters      community.Parameters        `json:"parameters"`
	Fallbacks       []community.FallbackAttempt `json:"fallbacks"`
	Graph           codegraph.Summary           `json:"graph"`
}

// Build assembles a report for result. advisor may be nil, in which case the
// default thresholds apply.
func Build(g *codegraph.Graph, result *community.DetectionResult, advisor *recommend.Engine) *Report {
	if advisor == nil {
		advisor = recommend.NewEngine(recommend.DefaultThresholds())
	}

	advice := advisor.Advise(result.Statistics)
	messages := make([]string, len(advice))
	for i, a := range advice {
		messages[i] = a.Message
	}

	fallbacks := result.Fallbacks
	if fallbacks == nil {
		fallbacks = []community.FallbackAttempt{}
	}

	return &Report{
		RunID:           uuid.New().String(),
		CreatedAt:       time.Now().UTC(),
		Algorithm:       string(result.Algorithm),
		Requested:       string(result.Requested),
		Partition:       map[string]int(result.Partition),
		Modularity:      result.Modularity,
		NumCommunities:  result.NumCommunities,
		Statistics:      result.Statistics,
		Recommendations: messages,
		Advice:          advice,
		Parameters:      result.Parameters,
		Fallbacks:       fallbacks,
		Graph:           g.Summarize(),
	}
}

// ComparisonEntry is one algorithm of a comparison report
type ComparisonEntry struct {
	Requested string  `json:"requested"`
	Report    *Report `json:"report,omitempty"`
	Error     string  `json:"error,omitempty"`
}

// ComparisonReport is the serialized outcome of a comparison
type ComparisonReport struct {
	RunID          string            `json:"run_id"`
	CreatedAt      time.Time         `json:"created_at"`
	Entries        []ComparisonEntry `json:"results"`
	BestAlgorithm  string            `json:"best_algorithm"`
	BestModularity float64           `json:"best_modularity"`
	Graph          codegraph.Summary `json:"graph"`
}

// BuildComparison assembles a report per successful entry of cmp
func BuildComparison(g *codegraph.Graph, cmp *community.Comparison, advisor *recommend.Engine) *ComparisonReport {
	out := &ComparisonReport{
		RunID:          uuid.New().String(),
		CreatedAt:      time.Now().UTC(),
		Entries:        make([]ComparisonEntry, len(cmp.Entries)),
		BestAlgorithm:  cmp.BestAlgorithm,
		BestModularity: cmp.BestModularity,
		Graph:          g.Summarize(),
	}
	for i, entry := range cmp.Entries {
		out.Entries[i] = ComparisonEntry{Requested: string(entry.Requested), Error: entry.Error}
		if entry.Result != nil {
			out.Entries[i].Report = Build(g, entry.Result, advisor)
		}
	}
	return out
}

// WriteJSON writes v as indented JSON
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
