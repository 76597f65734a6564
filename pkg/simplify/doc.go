// Package simplify contracts conflict graphs ahead of 3-coloring.
//
// # Overview
//
// Layout decomposition assigns each feature of a layer to one of three masks
// so that features closer than the minimum spacing (joined by a conflict
// edge) land on different masks. Stitch edges mark places where a feature may
// be split; they never constrain the coloring.
//
// If four vertices v1..v4 form a 4-clique of conflict edges with only v1-v4
// missing, any 3-coloring must give v4 the same color as v1. The [Simplifier]
// finds such patterns and merges v4 into v1, repeating on the reduced graph
// until none remain. The result is a smaller graph that is 3-colorable if and
// only if the original is.
//
// # Groups
//
// Merging never rewrites the base graph. A [Registry] records which vertices
// were contracted into which root, and [Adjacency] answers group-level
// questions by scanning member pairs:
//
//	g := conflict.New()
//	// add vertices and edges...
//	s, err := simplify.New(g)
//	if err != nil {
//		return err
//	}
//	res, err := s.MergeSubK4()
//	part := s.Partition()
//
// # Determinism
//
// The search visits roots in ascending order and neighbors in the order the
// base graph returns them, so the partition is a pure function of the input
// and its enumeration order.
package simplify
