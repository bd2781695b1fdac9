// Package analysis computes structural statistics of a partitioned code graph.
package analysis

import (
	"github.com/dd0wney/cluso-codegraph/pkg/algorithms"
	"github.com/dd0wney/cluso-codegraph/pkg/codegraph"
)

// CommunityStats describes one community. Edge counts are over the graph's
// undirected links, so parallel edges and opposite directions count once.
type CommunityStats struct {
	ID            int                        `json:"id"`
	Size          int                        `json:"size"`
	Members       []string                   `json:"members"`
	InternalEdges int                        `json:"internal_edges"`
	ExternalEdges int                        `json:"external_edges"`
	TotalEdges    int                        `json:"total_edges"` // summed member degree: 2*internal + external
	Cohesion      float64                    `json:"cohesion"`
	Coupling      float64                    `json:"coupling"`
	Clustering    float64                    `json:"clustering"`
	Kinds         map[codegraph.NodeKind]int `json:"kinds"`
}

// Statistics aggregates the per-community figures of a partition
type Statistics struct {
	NumCommunities int              `json:"num_communities"`
	Sizes          []int            `json:"sizes"`
	AvgSize        float64          `json:"avg_size"`
	MinSize        int              `json:"min_size"`
	MaxSize        int              `json:"max_size"`
	Communities    []CommunityStats `json:"communities"`
}

// Largest returns the community with the most members, the lowest id on ties
func (s *Statistics) Largest() (CommunityStats, bool) {
	if len(s.Communities) == 0 {
		return CommunityStats{}, false
	}
	best := s.Communities[0]
	for _, c := range s.Communities[1:] {
		if c.Size > best.Size {
			best = c
		}
	}
	return best, true
}

// Smallest returns the community with the fewest members, the lowest id on ties
func (s *Statistics) Smallest() (CommunityStats, bool) {
	if len(s.Communities) == 0 {
		return CommunityStats{}, false
	}
	best := s.Communities[0]
	for _, c := range s.Communities[1:] {
		if c.Size < best.Size {
			best = c
		}
	}
	return best, true
}

// Analyze computes statistics for partition p of g. Communities are reported
// in ascending id order. An empty partition yields zeroed statistics; any
// other partition must be valid for g.
func Analyze(g *codegraph.Graph, p codegraph.Partition) (*Statistics, error) {
	stats := &Statistics{
		Sizes:       []int{},
		Communities: []CommunityStats{},
	}
	if len(p) == 0 {
		return stats, nil
	}
	if err := p.Validate(g); err != nil {
		return nil, err
	}

	groups := p.Groups(g)
	labels := p.Labels(g)
	clustering := algorithms.LocalClustering(g)

	internal := make([]int, len(groups))
	external := make([]int, len(groups))
	for i := 0; i < g.NodeCount(); i++ {
		for _, l := range g.Links(i) {
			if l.To < i {
				continue
			}
			ci, cj := labels[i], labels[l.To]
			if ci == cj {
				internal[ci]++
			} else {
				external[ci]++
				external[cj]++
			}
		}
	}

	stats.NumCommunities = len(groups)
	stats.Sizes = make([]int, len(groups))
	stats.Communities = make([]CommunityStats, len(groups))

	total := 0
	for c, members := range groups {
		n := len(members)
		cs := CommunityStats{
			ID:            c,
			Size:          n,
			Members:       members,
			InternalEdges: internal[c],
			ExternalEdges: external[c],
			TotalEdges:    2*internal[c] + external[c],
			Kinds:         make(map[codegraph.NodeKind]int),
		}
		if n > 1 {
			cs.Cohesion = float64(internal[c]) / (float64(n) * float64(n-1) / 2)
		}
		if cs.TotalEdges > 0 {
			cs.Coupling = float64(cs.ExternalEdges) / float64(cs.TotalEdges)
		}

		sum := 0.0
		for _, id := range members {
			i, _ := g.IndexOf(id)
			sum += clustering[i]
			cs.Kinds[g.NodeAt(i).Kind()]++
		}
		cs.Clustering = sum / float64(n)

		stats.Communities[c] = cs
		stats.Sizes[c] = n
		total += n
		if c == 0 || n < stats.MinSize {
			stats.MinSize = n
		}
		if n > stats.MaxSize {
			stats.MaxSize = n
		}
	}
	stats.AvgSize = float64(total) / float64(len(groups))

	return stats, nil
}
