// Package community partitions a code graph into communities. An Engine runs
// one of several interchangeable algorithms and falls back down a fixed chain
// when the requested one is unavailable or fails.
package community

import (
	"strings"
)

// Algorithm names a community detection variant
type Algorithm string

const (
	Leiden           Algorithm = "leiden"
	Louvain          Algorithm = "louvain"
	GirvanNewman     Algorithm = "girvan_newman"
	LabelPropagation Algorithm = "label_propagation"
	Identity         Algorithm = "identity"
)

// DefaultAlias is accepted by ParseAlgorithm as a name for Identity
const DefaultAlias = "default"

// FallbackOrder is the canonical chain. A request for an algorithm tries it
// first, then every algorithm after it in this order.
var FallbackOrder = []Algorithm{Leiden, Louvain, GirvanNewman, LabelPropagation, Identity}

// DefaultComparison lists the algorithms compared when none are named
var DefaultComparison = []Algorithm{Leiden, Louvain, GirvanNewman, LabelPropagation}

// ParseAlgorithm converts a name to an Algorithm. Names are case-insensitive.
func ParseAlgorithm(name string) (Algorithm, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == DefaultAlias {
		return Identity, nil
	}
	a := Algorithm(s)
	if !a.Valid() {
		return "", NewError("ParseAlgorithm").Algorithm(name).Cause(ErrInvalidParameter).Err()
	}
	return a, nil
}

// ParseAlgorithms converts a list of names, failing on the first unknown one
func ParseAlgorithms(names []string) ([]Algorithm, error) {
	if names == nil {
		return nil, nil
	}
	out := make([]Algorithm, 0, len(names))
	for _, name := range names {
		a, err := ParseAlgorithm(name)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// Valid reports whether a is one of the known variants
func (a Algorithm) Valid() bool {
	return a.position() >= 0
}

func (a Algorithm) String() string { return string(a) }

func (a Algorithm) position() int {
	for i, candidate := range FallbackOrder {
		if candidate == a {
			return i
		}
	}
	return -1
}
