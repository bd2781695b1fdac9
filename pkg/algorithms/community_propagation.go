package algorithms

import (
	"sort"

	"github.com/dd0wney/cluso-codegraph/pkg/codegraph"
)

// DefaultMaxIterations bounds label propagation sweeps when the caller passes zero
const DefaultMaxIterations = 100

// LabelPropagation performs modularity-guided label propagation.
// Every node starts with its own label. Sweeps in insertion order let each
// node adopt the label with the highest vote, where a vote is the link weight
// to the label minus what a random graph with the same strengths would give
// (k_i·S(l)/2m). The current label is kept whenever it is among the best;
// otherwise the smallest best label wins. Every change raises modularity, so
// sweeps settle; maxIterations caps them anyway.
//
// Propagation alone stalls in small local groups, so a consolidation pass
// then merges adjacent label groups, best modularity gain first, while a merge
// still raises modularity.
func LabelPropagation(g *codegraph.Graph, maxIterations int) codegraph.Partition {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	net := fromGraph(g)
	n := net.size()
	labels := identityLabels(n)
	tot := make([]float64, n)
	copy(tot, net.strength)

	propagate(net, labels, tot, maxIterations)
	consolidate(net, labels, tot)

	return codegraph.Normalize(g, labels)
}

func propagate(net *network, labels []int, tot []float64, maxIterations int) {
	nw := newNeighborWeights(net.size())

	for iter := 0; iter < maxIterations; iter++ {
		changed := false

		for i := range net.adj {
			ki := net.strength[i]
			if ki == 0 {
				continue
			}

			current := labels[i]
			for _, a := range net.adj[i] {
				nw.add(labels[a.to], a.weight)
			}
			tot[current] -= ki

			vote := func(l int) float64 {
				return nw.weight[l] - ki*tot[l]/net.m2
			}
			highest := vote(current)
			for _, l := range nw.order {
				if v := vote(l); v > highest {
					highest = v
				}
			}

			next := current
			if vote(current) < highest-epsilon {
				next = -1
				for _, l := range nw.order {
					if vote(l) >= highest-epsilon && (next < 0 || l < next) {
						next = l
					}
				}
			}

			tot[next] += ki
			nw.reset()

			if next != current {
				labels[i] = next
				changed = true
			}
		}

		if !changed {
			break // Converged
		}
	}
}

// consolidate merges the pair of adjacent label groups with the largest
// modularity gain until no merge gains anything
func consolidate(net *network, labels []int, tot []float64) {
	if net.m2 <= 0 {
		return
	}
	m := net.m2 / 2

	for {
		between := make(map[linkKey]float64)
		for i := range net.adj {
			for _, a := range net.adj[i] {
				if x, y := labels[i], labels[a.to]; x < y {
					between[linkKey{x, y}] += a.weight
				}
			}
		}

		pairs := make([]linkKey, 0, len(between))
		for key := range between {
			pairs = append(pairs, key)
		}
		sort.Slice(pairs, func(i, j int) bool {
			if pairs[i][0] != pairs[j][0] {
				return pairs[i][0] < pairs[j][0]
			}
			return pairs[i][1] < pairs[j][1]
		})

		best := -1
		bestGain := epsilon
		for i, key := range pairs {
			gain := between[key]/m - 2*tot[key[0]]*tot[key[1]]/(net.m2*net.m2)
			if gain > bestGain {
				best = i
				bestGain = gain
			}
		}
		if best < 0 {
			return
		}

		keep, drop := pairs[best][0], pairs[best][1]
		for i, l := range labels {
			if l == drop {
				labels[i] = keep
			}
		}
		tot[keep] += tot[drop]
		tot[drop] = 0
	}
}
