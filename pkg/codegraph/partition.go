package codegraph

import "fmt"

// Partition assigns every node id to a community id. Partitions produced by
// Normalize number communities 0..k-1 in order of first appearance over the
// graph's insertion order, so equal groupings always compare equal.
type Partition map[string]int

// Normalize builds a canonical partition from per-node labels indexed by
// graph insertion order.
func Normalize(g *Graph, labels []int) Partition {
	p := make(Partition, len(labels))
	remap := make(map[int]int)
	for i, label := range labels {
		id, seen := remap[label]
		if !seen {
			id = len(remap)
			remap[label] = id
		}
		p[g.nodes[i].id] = id
	}
	return p
}

// Singletons places every node of g in its own community
func Singletons(g *Graph) Partition {
	p := make(Partition, len(g.nodes))
	for i, n := range g.nodes {
		p[n.id] = i
	}
	return p
}

// NumCommunities returns the number of distinct community ids
func (p Partition) NumCommunities() int {
	seen := make(map[int]struct{})
	for _, c := range p {
		seen[c] = struct{}{}
	}
	return len(seen)
}

// Labels returns the community id of every node, indexed by insertion order.
// Nodes missing from the partition get -1.
func (p Partition) Labels(g *Graph) []int {
	labels := make([]int, len(g.nodes))
	for i, n := range g.nodes {
		c, ok := p[n.id]
		if !ok {
			c = -1
		}
		labels[i] = c
	}
	return labels
}

// Groups returns the members of each community, indexed by community id, with
// members in graph insertion order. The partition must be valid for g.
func (p Partition) Groups(g *Graph) [][]string {
	groups := make([][]string, p.NumCommunities())
	for _, n := range g.nodes {
		c := p[n.id]
		groups[c] = append(groups[c], n.id)
	}
	return groups
}

// Validate checks that p covers exactly the nodes of g and that community ids
// are dense, starting at zero.
func (p Partition) Validate(g *Graph) error {
	if len(p) != len(g.nodes) {
		return NewError("Validate").Partition().
			Context(fmt.Sprintf("%d assignments for %d nodes", len(p), len(g.nodes))).
			Cause(ErrPartitionMismatch).Err()
	}
	k := p.NumCommunities()
	for id, c := range p {
		if _, ok := g.index[id]; !ok {
			return NewError("Validate").Node(id).Context("not in graph").Cause(ErrPartitionMismatch).Err()
		}
		if c < 0 || c >= k {
			return NewError("Validate").Node(id).
				Context(fmt.Sprintf("community id %d outside [0,%d)", c, k)).
				Cause(ErrPartitionMismatch).Err()
		}
	}
	return nil
}

// Equal reports whether two partitions assign every node to the same id
func (p Partition) Equal(other Partition) bool {
	if len(p) != len(other) {
		return false
	}
	for id, c := range p {
		if oc, ok := other[id]; !ok || oc != c {
			return false
		}
	}
	return true
}
