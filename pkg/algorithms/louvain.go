package algorithms

import (
	"math"
	"slices"

	"github.com/dd0wney/cluso-codegraph/pkg/codegraph"
)

// DefaultResolution is the resolution used when the caller passes zero
const DefaultResolution = 1.0

// Louvain partitions g by greedy modularity optimization: nodes repeatedly
// move to the neighboring community with the largest gain, then communities
// are collapsed into super nodes and the process repeats until no node moves.
// Larger resolutions favor smaller communities.
func Louvain(g *codegraph.Graph, resolution float64) codegraph.Partition {
	if resolution <= 0 {
		resolution = DefaultResolution
	}

	net := fromGraph(g)
	member := identityLabels(net.size())

	for level := 0; level < maxLevels; level++ {
		comm, moved := net.localMoving(identityLabels(net.size()), resolution)
		if !moved {
			break
		}
		var coarse []int
		net, coarse = net.aggregate(comm)
		for i, c := range member {
			member[i] = coarse[c]
		}
	}

	return codegraph.Normalize(g, member)
}

// localMoving sweeps nodes in index order, moving each to the community with
// the best resolution-weighted gain. A node only leaves its community for a
// strictly better one; among equal alternatives the smaller id wins. It
// reports whether any node moved.
func (net *network) localMoving(start []int, gamma float64) ([]int, bool) {
	n := net.size()
	comm := slices.Clone(start)
	tot := make([]float64, n)
	for i, c := range comm {
		tot[c] += net.strength[i]
	}

	nw := newNeighborWeights(n)
	movedAny := false

	for sweep := 0; sweep < maxSweeps; sweep++ {
		moved := false
		for i := 0; i < n; i++ {
			ki := net.strength[i]
			if ki == 0 {
				continue
			}

			current := comm[i]
			for _, a := range net.adj[i] {
				nw.add(comm[a.to], a.weight)
			}

			tot[current] -= ki
			best := current
			bestGain := nw.weight[current] - gamma*ki*tot[current]/net.m2
			for _, c := range nw.order {
				if c == current {
					continue
				}
				gain := nw.weight[c] - gamma*ki*tot[c]/net.m2
				if gain > bestGain+epsilon ||
					(math.Abs(gain-bestGain) <= epsilon && best != current && c < best) {
					best = c
					bestGain = gain
				}
			}
			tot[best] += ki
			nw.reset()

			if best != current {
				comm[i] = best
				moved = true
				movedAny = true
			}
		}
		if !moved {
			break
		}
	}

	return comm, movedAny
}
