package algorithms

import (
	"math"
	"slices"

	"github.com/dd0wney/cluso-codegraph/pkg/codegraph"
)

// Leiden partitions g with the Leiden scheme: local moving, then a refinement
// that splits every community into well-connected sub-communities, then
// aggregation of the refined partition. The unrefined partition seeds the
// next level, which guarantees communities stay connected by positive-weight
// links. Zero-weight links are not part of the searched network.
//
// Refinement is deterministic: only nodes still alone in their sub-community
// move, and each joins the well-connected sub-community of its own community
// with the largest positive gain (smaller id on ties).
func Leiden(g *codegraph.Graph, resolution float64) codegraph.Partition {
	if resolution <= 0 {
		resolution = DefaultResolution
	}

	net := fromGraph(g)
	member := identityLabels(net.size())
	seed := identityLabels(net.size())

	for level := 0; level < maxLevels; level++ {
		comm, _ := net.localMoving(seed, resolution)
		comm, nc := renumber(comm)
		if nc == net.size() {
			relabel(member, comm)
			break
		}

		refined, nr := renumber(net.refine(comm, resolution))
		if nr == net.size() {
			relabel(member, comm)
			break
		}

		coarse, refinedIDs := net.aggregate(refined)
		seed = make([]int, nr)
		for i, r := range refinedIDs {
			seed[r] = comm[i]
		}
		seed, _ = renumber(seed)
		relabel(member, refinedIDs)
		net = coarse
	}

	return codegraph.Normalize(g, member)
}

func relabel(member, mapping []int) {
	for i, c := range member {
		member[i] = mapping[c]
	}
}

// refine splits each community of comm into sub-communities. comm must be
// dense.
func (net *network) refine(comm []int, gamma float64) []int {
	n := net.size()
	refined := identityLabels(n)
	size := make([]int, n)
	for i := range size {
		size[i] = 1
	}
	subTotal := slices.Clone(net.strength)

	communityTotal := make([]float64, n)
	for i, c := range comm {
		communityTotal[c] += net.strength[i]
	}

	// weight from each node into its own community, and from each
	// sub-community to the rest of its community
	inner := make([]float64, n)
	for i := range net.adj {
		for _, a := range net.adj[i] {
			if comm[a.to] == comm[i] {
				inner[i] += a.weight
			}
		}
	}
	external := slices.Clone(inner)

	nw := newNeighborWeights(n)
	for v := 0; v < n; v++ {
		if size[refined[v]] != 1 {
			continue
		}
		kv := net.strength[v]
		s := comm[v]
		if kv == 0 {
			continue
		}
		if inner[v] < gamma*kv*(communityTotal[s]-kv)/net.m2-epsilon {
			continue
		}

		for _, a := range net.adj[v] {
			if comm[a.to] == s {
				nw.add(refined[a.to], a.weight)
			}
		}

		best := -1
		bestGain := 0.0
		for _, t := range nw.order {
			if external[t] < gamma*subTotal[t]*(communityTotal[s]-subTotal[t])/net.m2-epsilon {
				continue
			}
			gain := nw.weight[t] - gamma*kv*subTotal[t]/net.m2
			if gain > bestGain+epsilon ||
				(best >= 0 && math.Abs(gain-bestGain) <= epsilon && t < best) {
				best = t
				bestGain = gain
			}
		}

		if best >= 0 {
			own := refined[v]
			external[best] = external[best] + inner[v] - 2*nw.weight[best]
			subTotal[best] += kv
			subTotal[own] -= kv
			size[own] = 0
			size[best]++
			refined[v] = best
		}
		nw.reset()
	}

	return refined
}
