package codegraph

import (
	"maps"
	"math"
)

// Graph holds code elements and their relationships. Nodes and edges keep
// insertion order. For partitioning the graph is viewed as undirected: every
// unordered pair of nodes joined by at least one edge forms a single link whose
// weight is the sum of all edge weights between the pair, in either direction
// and of any kind.
//
// A Graph is built once and then treated as read-only; concurrent readers are
// safe, concurrent mutation is not.
type Graph struct {
	nodes []*Node
	index map[string]int

	edges     []Edge
	edgeIndex map[edgeKey]int

	links     [][]Link
	linkIndex []map[int]int // node index -> neighbor index -> position in links
	linkCount int
	total     float64
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{
		index:     make(map[string]int),
		edgeIndex: make(map[edgeKey]int),
	}
}

// AddNode adds a code element. The attribute map is copied.
func (g *Graph) AddNode(id string, kind NodeKind, attrs map[string]any) (*Node, error) {
	if id == "" {
		return nil, NewError("AddNode").Node(id).Context("empty id").Cause(ErrInvalidNode).Err()
	}
	if _, err := ParseNodeKind(string(kind)); err != nil {
		return nil, NewError("AddNode").Node(id).Context(string(kind)).Cause(ErrInvalidKind).Err()
	}
	if _, exists := g.index[id]; exists {
		return nil, NewError("AddNode").Node(id).Cause(ErrDuplicateNode).Err()
	}

	node := &Node{id: id, kind: kind, attrs: maps.Clone(attrs)}
	if node.attrs == nil {
		node.attrs = make(map[string]any)
	}

	g.index[id] = len(g.nodes)
	g.nodes = append(g.nodes, node)
	g.links = append(g.links, nil)
	g.linkIndex = append(g.linkIndex, make(map[int]int))
	return node, nil
}

// AddEdge adds a relationship with the default weight
func (g *Graph) AddEdge(source, target string, kind RelationKind) (Edge, error) {
	return g.AddWeightedEdge(source, target, kind, DefaultWeight)
}

// AddWeightedEdge adds a relationship. Repeating a (source, target, kind) triple
// accumulates weight onto the existing edge instead of creating a parallel one.
func (g *Graph) AddWeightedEdge(source, target string, kind RelationKind, weight float64) (Edge, error) {
	if _, err := ParseRelationKind(string(kind)); err != nil {
		return Edge{}, NewError("AddEdge").Edge(source, target).Context(string(kind)).Cause(ErrInvalidKind).Err()
	}
	if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return Edge{}, NewError("AddEdge").Edge(source, target).Cause(ErrInvalidWeight).Err()
	}
	u, ok := g.index[source]
	if !ok {
		return Edge{}, NewError("AddEdge").Edge(source, target).Context("source").Cause(ErrDanglingEdge).Err()
	}
	v, ok := g.index[target]
	if !ok {
		return Edge{}, NewError("AddEdge").Edge(source, target).Context("target").Cause(ErrDanglingEdge).Err()
	}
	if u == v {
		return Edge{}, NewError("AddEdge").Edge(source, target).Cause(ErrSelfLoop).Err()
	}

	key := edgeKey{source: source, target: target, kind: kind}
	var edge Edge
	if pos, exists := g.edgeIndex[key]; exists {
		g.edges[pos].Weight += weight
		edge = g.edges[pos]
	} else {
		edge = Edge{Source: source, Target: target, Kind: kind, Weight: weight}
		g.edgeIndex[key] = len(g.edges)
		g.edges = append(g.edges, edge)
	}

	g.link(u, v, weight)
	g.total += weight
	return edge, nil
}

// link records weight on the undirected pair (u, v)
func (g *Graph) link(u, v int, weight float64) {
	if pos, exists := g.linkIndex[u][v]; exists {
		g.links[u][pos].Weight += weight
		g.links[v][g.linkIndex[v][u]].Weight += weight
		return
	}
	g.linkIndex[u][v] = len(g.links[u])
	g.links[u] = append(g.links[u], Link{To: v, Weight: weight})
	g.linkIndex[v][u] = len(g.links[v])
	g.links[v] = append(g.links[v], Link{To: u, Weight: weight})
	g.linkCount++
}

// Node looks up a node by id
func (g *Graph) Node(id string) (*Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.nodes[i], true
}

// Nodes returns all nodes in insertion order
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// NodeIDs returns all node ids in insertion order
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		ids[i] = n.id
	}
	return ids
}

// Edges returns a copy of all edges in insertion order
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of distinct (source, target, kind) edges
func (g *Graph) EdgeCount() int { return len(g.edges) }

// LinkCount returns the number of undirected node pairs joined by an edge
func (g *Graph) LinkCount() int { return g.linkCount }

// TotalWeight returns the summed weight of all edges
func (g *Graph) TotalWeight() float64 { return g.total }

// IndexOf returns the insertion index of a node
func (g *Graph) IndexOf(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// NodeAt returns the node at insertion index i
func (g *Graph) NodeAt(i int) *Node { return g.nodes[i] }

// Links returns the undirected adjacency of the node at index i. The slice is
// shared with the graph and must not be modified.
func (g *Graph) Links(i int) []Link { return g.links[i] }

// Neighbors returns the ids adjacent to id, ignoring direction, in the order
// the links were first created.
func (g *Graph) Neighbors(id string) []string {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	out := make([]string, len(g.links[i]))
	for k, l := range g.links[i] {
		out[k] = g.nodes[l.To].id
	}
	return out
}

// HasEdge reports whether any edge joins u and v, in either direction
func (g *Graph) HasEdge(u, v string) bool {
	i, ok := g.index[u]
	if !ok {
		return false
	}
	j, ok := g.index[v]
	if !ok {
		return false
	}
	_, linked := g.linkIndex[i][j]
	return linked
}

// Degree returns the number of distinct neighbors of id
func (g *Graph) Degree(id string) int {
	i, ok := g.index[id]
	if !ok {
		return 0
	}
	return len(g.links[i])
}

// Strength returns the summed link weight incident to id
func (g *Graph) Strength(id string) float64 {
	i, ok := g.index[id]
	if !ok {
		return 0
	}
	s := 0.0
	for _, l := range g.links[i] {
		s += l.Weight
	}
	return s
}

// LinkWeight returns the summed weight of all edges between u and v
func (g *Graph) LinkWeight(u, v string) float64 {
	i, ok := g.index[u]
	if !ok {
		return 0
	}
	j, ok := g.index[v]
	if !ok {
		return 0
	}
	pos, linked := g.linkIndex[i][j]
	if !linked {
		return 0
	}
	return g.links[i][pos].Weight
}

// Summary counts nodes per kind and edges per relationship kind
type Summary struct {
	Nodes       int                  `json:"nodes"`
	Edges       int                  `json:"edges"`
	Links       int                  `json:"links"`
	NodeKinds   map[NodeKind]int     `json:"node_kinds"`
	RelationMix map[RelationKind]int `json:"relation_kinds"`
}

// Summarize returns node and edge counts for the graph
func (g *Graph) Summarize() Summary {
	s := Summary{
		Nodes:       len(g.nodes),
		Edges:       len(g.edges),
		Links:       g.linkCount,
		NodeKinds:   make(map[NodeKind]int),
		RelationMix: make(map[RelationKind]int),
	}
	for _, n := range g.nodes {
		s.NodeKinds[n.kind]++
	}
	for _, e := range g.edges {
		s.RelationMix[e.Kind]++
	}
	return s
}
