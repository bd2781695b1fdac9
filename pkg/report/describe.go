package report

import (
	"github.com/dd0wney/cluso-codegraph/pkg/codegraph"
	"github.com/dd0wney/cluso-codegraph/pkg/community"
)

// DefaultMinDescriptionSize is the smallest community handed to describers
const DefaultMinDescriptionSize = 5

// MemberView is the reduced view of a community member
type MemberView struct {
	ID         string             `json:"id"`
	Kind       codegraph.NodeKind `json:"kind"`
	Name       string             `json:"name"`
	Attributes map[string]any     `json:"attributes"`
}

// Digest is what a description generator receives for one community
type Digest struct {
	CommunityID int          `json:"community_id"`
	Size        int          `json:"size"`
	Cohesion    float64      `json:"cohesion"`
	Coupling    float64      `json:"coupling"`
	Members     []string     `json:"members"`
	MemberViews []MemberView `json:"member_views"`
}

// Describe returns a digest for every community of result with at least
// minSize members, by ascending community id. minSize <= 0 selects
// DefaultMinDescriptionSize.
func Describe(g *codegraph.Graph, result *community.DetectionResult, minSize int) []Digest {
	if minSize <= 0 {
		minSize = DefaultMinDescriptionSize
	}
	digests := []Digest{}
	if result == nil || result.Statistics == nil {
		return digests
	}

	for _, c := range result.Statistics.Communities {
		if c.Size < minSize {
			continue
		}
		d := Digest{
			CommunityID: c.ID,
			Size:        c.Size,
			Cohesion:    c.Cohesion,
			Coupling:    c.Coupling,
			Members:     append([]string(nil), c.Members...),
			MemberViews: make([]MemberView, 0, len(c.Members)),
		}
		for _, id := range c.Members {
			node, ok := g.Node(id)
			if !ok {
				continue
			}
			d.MemberViews = append(d.MemberViews, memberView(node))
		}
		digests = append(digests, d)
	}
	return digests
}

func memberView(n *codegraph.Node) MemberView {
	return MemberView{
		ID:         n.ID(),
		Kind:       n.Kind(),
		Name:       n.Name(),
		Attributes: n.Attributes(),
	}
}
