// Package conflict provides the base graph consumed by the simplifier: an
// undirected graph whose edges are either conflict edges or stitch edges.
//
// # Overview
//
// In multiple patterning layout decomposition every polygon (or polygon
// fragment) is a vertex. Two fragments that are too close to share a mask are
// joined by a conflict edge; two fragments of the same polygon that may be
// split are joined by a stitch edge. The sign of the edge weight carries the
// distinction:
//
//   - weight >= 0: [Conflict], a hard constraint (different colors)
//   - weight < 0:  [Stitch], a soft hint (not a coloring constraint)
//
// Only the sign is meaningful. Magnitudes are preserved for callers that
// attach costs to stitches but are ignored by the simplifier.
//
// # Basic Usage
//
//	g := conflict.New()
//	a, _ := g.AddVertex("a")
//	b, _ := g.AddVertex("b")
//	c, _ := g.AddVertex("c")
//	g.AddConflict(a, b)
//	g.AddStitch(b, c)
//
// # Gonum Graphs
//
// Callers that already hold a gonum graph can wrap it with [FromGonum]
// instead of copying it. [ToGonum] goes the other way, which is handy for
// running gonum algorithms (components, cliques) on a conflict graph.
//
// # Determinism
//
// [Graph] reports neighbors in edge insertion order and [Gonum] in ascending
// node ID order. The simplifier is greedy, so a stable enumeration order is
// what makes its output reproducible.
package conflict
