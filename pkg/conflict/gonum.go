package conflict

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// Gonum adapts a gonum weighted undirected graph to the dense vertex model
// used by the simplifier.
//
// Gonum node IDs are arbitrary int64 values; Gonum maps them to indices
// 0..Order()-1 in ascending ID order and reports neighbors in ascending index
// order. The adjacency is captured when the adapter is built, so later changes
// to the wrapped graph are not observed.
type Gonum struct {
	g     graph.WeightedUndirected
	ids   []int64
	index map[int64]int
	adj   [][]int
}

// FromGonum builds an adapter over g.
func FromGonum(g graph.WeightedUndirected) *Gonum {
	nodes := graph.NodesOf(g.Nodes())
	ids := make([]int64, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID()
	}
	slices.Sort(ids)

	index := make(map[int64]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	adj := make([][]int, len(ids))
	for i, id := range ids {
		for _, n := range graph.NodesOf(g.From(id)) {
			if j, ok := index[n.ID()]; ok {
				adj[i] = append(adj[i], j)
			}
		}
		slices.Sort(adj[i])
	}

	return &Gonum{g: g, ids: ids, index: index, adj: adj}
}

// Order returns the number of nodes in the wrapped graph.
func (a *Gonum) Order() int { return len(a.ids) }

// Neighbors returns the neighbors of v in ascending index order.
func (a *Gonum) Neighbors(v int) []int {
	if v < 0 || v >= len(a.adj) {
		return nil
	}
	return a.adj[v]
}

// Weight returns the weight of the edge between u and v.
// Gonum reports a "self weight" for u == v; that is not an edge, so it is
// reported as missing here.
func (a *Gonum) Weight(u, v int) (float64, bool) {
	if u < 0 || v < 0 || u >= len(a.ids) || v >= len(a.ids) || u == v {
		return 0, false
	}
	e := a.g.WeightedEdgeBetween(a.ids[u], a.ids[v])
	if e == nil {
		return 0, false
	}
	return e.Weight(), true
}

// ID returns the gonum node ID of vertex v.
func (a *Gonum) ID(v int) int64 { return a.ids[v] }

// Index returns the vertex index of a gonum node ID.
func (a *Gonum) Index(id int64) (int, bool) {
	v, ok := a.index[id]
	return v, ok
}

// ToGonum copies g into a gonum weighted undirected graph whose node IDs are
// the vertex indices of g.
func ToGonum(g *Graph) *simple.WeightedUndirectedGraph {
	out := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for v := 0; v < g.Order(); v++ {
		out.AddNode(simple.Node(int64(v)))
	}
	for _, e := range g.edges {
		out.SetWeightedEdge(simple.WeightedEdge{
			F: simple.Node(int64(e.U)),
			T: simple.Node(int64(e.V)),
			W: e.Weight,
		})
	}
	return out
}
