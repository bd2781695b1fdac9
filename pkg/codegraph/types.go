package codegraph

import (
	"encoding/json"
	"maps"
)

// NodeKind classifies an extracted code element
type NodeKind string

const (
	KindClass    NodeKind = "class"
	KindFunction NodeKind = "function"
	KindModule   NodeKind = "module"
)

// NodeKinds lists every node kind in a stable order
var NodeKinds = []NodeKind{KindClass, KindFunction, KindModule}

// ParseNodeKind converts a string to a NodeKind
func ParseNodeKind(s string) (NodeKind, error) {
	switch NodeKind(s) {
	case KindClass, KindFunction, KindModule:
		return NodeKind(s), nil
	default:
		return "", NewError("parse").Kind(s).Cause(ErrInvalidKind).Err()
	}
}

// RelationKind classifies a relationship between two code elements
type RelationKind string

const (
	RelInherit RelationKind = "inherit"
	RelCall    RelationKind = "call"
	RelImport  RelationKind = "import"
	RelCompose RelationKind = "compose"
)

// RelationKinds lists every relationship kind in a stable order
var RelationKinds = []RelationKind{RelInherit, RelCall, RelImport, RelCompose}

// ParseRelationKind converts a string to a RelationKind
func ParseRelationKind(s string) (RelationKind, error) {
	switch RelationKind(s) {
	case RelInherit, RelCall, RelImport, RelCompose:
		return RelationKind(s), nil
	default:
		return "", NewError("parse").Kind(s).Cause(ErrInvalidKind).Err()
	}
}

// DefaultWeight is the weight of an edge added without an explicit weight
const DefaultWeight = 1.0

// Node is an immutable code element. The attribute bag is copied on the way in
// and on the way out.
type Node struct {
	id    string
	kind  NodeKind
	attrs map[string]any
}

// ID returns the globally unique node identifier
func (n *Node) ID() string { return n.id }

// Kind returns the element kind
func (n *Node) Kind() NodeKind { return n.kind }

// Attribute returns a single attribute value
func (n *Node) Attribute(key string) (any, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// Attributes returns a copy of the attribute bag
func (n *Node) Attributes() map[string]any {
	return maps.Clone(n.attrs)
}

// Name returns the "name" attribute when it is a string, the id otherwise
func (n *Node) Name() string {
	if v, ok := n.attrs["name"].(string); ok && v != "" {
		return v
	}
	return n.id
}

// MarshalJSON encodes the node as plain primitives
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID         string         `json:"id"`
		Kind       NodeKind       `json:"kind"`
		Attributes map[string]any `json:"attributes,omitempty"`
	}{n.id, n.kind, n.attrs})
}

// Edge is a directed, typed relationship between two nodes
type Edge struct {
	Source string       `json:"source"`
	Target string       `json:"target"`
	Kind   RelationKind `json:"kind"`
	Weight float64      `json:"weight"`
}

// Link is one entry of the undirected adjacency view: the neighbor's index and
// the summed weight of every edge between the pair.
type Link struct {
	To     int
	Weight float64
}

type edgeKey struct {
	source string
	target string
	kind   RelationKind
}
