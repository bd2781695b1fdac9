package codegraph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dd0wney/cluso-codegraph/pkg/validation"
)

// Decode reads an upstream graph document:
//
//	{"nodes": [{"id", "kind", "attributes"}], "edges": [{"source", "target", "kind", "weight"}]}
//
// Records are validated before the graph is built; an edge without a weight
// gets DefaultWeight.
func Decode(r io.Reader) (*Graph, error) {
	var req validation.GraphRequest
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}
	for i := range req.Nodes {
		req.Nodes[i].Attributes = normalizeNumbers(req.Nodes[i].Attributes)
	}
	return FromRequest(&req)
}

// LoadFile reads an upstream graph document from disk
func LoadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open graph file: %w", err)
	}
	defer f.Close()

	g, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// FromRequest validates a decoded document and builds the graph
func FromRequest(req *validation.GraphRequest) (*Graph, error) {
	if err := validation.ValidateGraphRequest(req); err != nil {
		return nil, NewError("Load").Document().Context(err.Error()).Cause(ErrInvalidDocument).Err()
	}

	g := NewGraph()
	for _, n := range req.Nodes {
		if _, err := g.AddNode(n.ID, NodeKind(n.Kind), n.Attributes); err != nil {
			return nil, err
		}
	}
	for _, e := range req.Edges {
		weight := DefaultWeight
		if e.Weight != nil {
			weight = *e.Weight
		}
		if _, err := g.AddWeightedEdge(e.Source, e.Target, RelationKind(e.Kind), weight); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// normalizeNumbers turns json.Number attribute values into int64 when they
// are integral and float64 otherwise
func normalizeNumbers(attrs map[string]any) map[string]any {
	for k, v := range attrs {
		num, ok := v.(json.Number)
		if !ok {
			continue
		}
		if i, err := num.Int64(); err == nil {
			attrs[k] = i
		} else if f, err := num.Float64(); err == nil {
			attrs[k] = f
		}
	}
	return attrs
}
