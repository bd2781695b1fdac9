package algorithms

import "github.com/dd0wney/cluso-codegraph/pkg/codegraph"

// epsilon is the tolerance used when comparing modularity gains
const epsilon = 1e-10

// maxSweeps bounds local moving on pathological inputs
const maxSweeps = 10000

// maxLevels bounds the number of aggregation levels
const maxLevels = 1000

type arc struct {
	to     int
	weight float64
}

// network is the weighted undirected view searched by the modularity based
// algorithms. Level 0 mirrors the graph's links; aggregated levels carry the
// weight inside a community as a self-loop on its super node.
type network struct {
	adj      [][]arc
	self     []float64
	strength []float64
	m2       float64 // twice the total link weight
}

func newNetwork(adj [][]arc, self []float64) *network {
	net := &network{
		adj:      adj,
		self:     self,
		strength: make([]float64, len(adj)),
	}
	for i := range adj {
		k := 0.0
		for _, a := range adj[i] {
			k += a.weight
		}
		k += 2 * self[i]
		net.strength[i] = k
		net.m2 += k
	}
	return net
}

// fromGraph builds the level 0 network. Node indices follow insertion order.
func fromGraph(g *codegraph.Graph) *network {
	adj := make([][]arc, g.NodeCount())
	for i := range adj {
		links := g.Links(i)
		adj[i] = make([]arc, 0, len(links))
		for _, l := range links {
			// A zero-weight link carries no affinity and never joins communities
			if l.Weight > 0 {
				adj[i] = append(adj[i], arc{to: l.To, weight: l.Weight})
			}
		}
	}
	return newNetwork(adj, make([]float64, len(adj)))
}

func (net *network) size() int { return len(net.adj) }

// aggregate collapses every community of comm into a single node. It returns
// the coarse network and the dense community id of every fine node.
func (net *network) aggregate(comm []int) (*network, []int) {
	comm, nc := renumber(comm)
	self := make([]float64, nc)
	adj := make([][]arc, nc)
	pos := make([]map[int]int, nc)
	for i := range pos {
		pos[i] = make(map[int]int)
	}

	for i := range net.adj {
		a := comm[i]
		self[a] += net.self[i]
		for _, e := range net.adj[i] {
			b := comm[e.to]
			if a == b {
				self[a] += e.weight / 2
				continue
			}
			if p, ok := pos[a][b]; ok {
				adj[a][p].weight += e.weight
			} else {
				pos[a][b] = len(adj[a])
				adj[a] = append(adj[a], arc{to: b, weight: e.weight})
			}
		}
	}
	return newNetwork(adj, self), comm
}

// renumber maps labels to 0..k-1 in order of first appearance
func renumber(labels []int) ([]int, int) {
	remap := make(map[int]int)
	out := make([]int, len(labels))
	for i, l := range labels {
		id, ok := remap[l]
		if !ok {
			id = len(remap)
			remap[l] = id
		}
		out[i] = id
	}
	return out, len(remap)
}

func identityLabels(n int) []int {
	labels := make([]int, n)
	for i := range labels {
		labels[i] = i
	}
	return labels
}

// neighborWeights accumulates the weight from one node to each label it
// touches, remembering labels in encounter order so iteration is deterministic.
// Labels must lie in [0, n).
type neighborWeights struct {
	weight  []float64
	touched []bool
	order   []int
}

func newNeighborWeights(n int) *neighborWeights {
	return &neighborWeights{
		weight:  make([]float64, n),
		touched: make([]bool, n),
	}
}

func (nw *neighborWeights) add(label int, w float64) {
	if !nw.touched[label] {
		nw.touched[label] = true
		nw.order = append(nw.order, label)
	}
	nw.weight[label] += w
}

func (nw *neighborWeights) reset() {
	for _, l := range nw.order {
		nw.weight[l] = 0
		nw.touched[l] = false
	}
	nw.order = nw.order[:0]
}
