package simplify

import "github.com/matzehuels/stitchgraph/pkg/conflict"

// Adjacency answers whether two groups are linked in the base graph.
//
// Both queries resolve their arguments to the current roots and scan every
// member pair, returning on the first edge of the requested kind. A call costs
// |group(a)| x |group(b)| weight lookups, so it gets more expensive as
// merging proceeds. Both queries are symmetric in a and b.
type Adjacency struct {
	g   Graph
	reg *Registry
}

// NewAdjacency creates an adjacency view of g under the partition held by reg.
func NewAdjacency(g Graph, reg *Registry) *Adjacency {
	return &Adjacency{g: g, reg: reg}
}

// Conflict reports whether any member of a's group and any member of b's
// group are joined by a conflict edge (weight >= 0).
func (a *Adjacency) Conflict(x, y int) bool { return a.linked(x, y, conflict.Conflict) }

// Stitch reports whether any member of a's group and any member of b's group
// are joined by a stitch edge (weight < 0).
func (a *Adjacency) Stitch(x, y int) bool { return a.linked(x, y, conflict.Stitch) }

func (a *Adjacency) linked(x, y int, kind conflict.Kind) bool {
	gx, gy := a.reg.Members(x), a.reg.Members(y)
	for _, u := range gx {
		for _, v := range gy {
			if w, ok := a.g.Weight(u, v); ok && conflict.KindOf(w) == kind {
				return true
			}
		}
	}
	return false
}
