package simplify

import (
	"slices"

	"github.com/matzehuels/stitchgraph/pkg/conflict"
	errs "github.com/matzehuels/stitchgraph/pkg/errors"
)

// Graph is the read-only base graph consumed by the simplifier.
//
// Vertices are the integers 0..Order()-1. Neighbors must return every vertex
// joined to v by an edge of either kind, in a stable order, and Weight must
// report the signed weight of each such edge in both directions. The
// simplifier never mutates a Graph.
//
// [conflict.Graph] and [conflict.Gonum] implement Graph.
type Graph interface {
	Order() int
	Neighbors(v int) []int
	Weight(u, v int) (float64, bool)
}

var (
	_ Graph = (*conflict.Graph)(nil)
	_ Graph = (*conflict.Gonum)(nil)
)

// Validate checks the structural assumptions the simplifier relies on and
// returns an INVALID_GRAPH error describing the first violation:
//
//   - every reported neighbor lies in [0, Order())
//   - adjacency is symmetric and every adjacent pair has a weight
//   - both directions of an edge agree on its sign
//   - no vertex is in conflict with itself
//
// [New] calls Validate, so malformed input is rejected before any merge.
func Validate(g Graph) error {
	if g == nil {
		return errs.New(errs.ErrCodeInvalidGraph, "graph is nil")
	}
	n := g.Order()
	for u := 0; u < n; u++ {
		for _, v := range g.Neighbors(u) {
			if v < 0 || v >= n {
				return errs.New(errs.ErrCodeInvalidGraph, "vertex %d has neighbor %d outside [0, %d)", u, v, n)
			}
			w, ok := g.Weight(u, v)
			if !ok {
				return errs.New(errs.ErrCodeInvalidGraph, "vertex %d lists neighbor %d without an edge weight", u, v)
			}
			if u == v {
				if conflict.KindOf(w) == conflict.Conflict {
					return errs.New(errs.ErrCodeInvalidGraph, "vertex %d is in conflict with itself", u)
				}
				continue
			}
			back, ok := g.Weight(v, u)
			if !ok || !slices.Contains(g.Neighbors(v), u) {
				return errs.New(errs.ErrCodeInvalidGraph, "edge (%d, %d) is not symmetric", u, v)
			}
			if conflict.KindOf(w) != conflict.KindOf(back) {
				return errs.New(errs.ErrCodeInvalidGraph, "edge (%d, %d) has weights of different sign", u, v)
			}
		}
	}
	return nil
}
