package conflict

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	// ErrInvalidLabel is returned by [Graph.AddVertex] when the label is empty.
	ErrInvalidLabel = errors.New("vertex label must not be empty")

	// ErrDuplicateLabel is returned by [Graph.AddVertex] when a vertex with the
	// same label already exists. Labels must be unique.
	ErrDuplicateLabel = errors.New("duplicate vertex label")

	// ErrVertexOutOfRange is returned by [Graph.AddEdge] when an endpoint is
	// not in [0, Order()).
	ErrVertexOutOfRange = errors.New("vertex out of range")

	// ErrSelfLoop is returned by [Graph.AddEdge] when both endpoints are the
	// same vertex. A vertex cannot conflict with itself.
	ErrSelfLoop = errors.New("self-loop not allowed")

	// ErrDuplicateEdge is returned by [Graph.AddEdge] when the two vertices are
	// already connected. A pair carries at most one edge, conflict or stitch.
	ErrDuplicateEdge = errors.New("duplicate edge")

	// ErrInvalidWeight is returned by [Graph.AddEdge] for NaN or infinite weights.
	ErrInvalidWeight = errors.New("edge weight must be finite")
)

// Kind classifies an edge by the sign of its weight.
type Kind int

const (
	// Conflict marks a hard constraint: the endpoints must receive different
	// colors. Conflict edges carry a nonnegative weight.
	Conflict Kind = iota
	// Stitch marks a soft hint that is not a coloring constraint. Stitch
	// edges carry a negative weight.
	Stitch
)

// String returns "conflict" or "stitch".
func (k Kind) String() string {
	if k == Stitch {
		return "stitch"
	}
	return "conflict"
}

// KindOf classifies a weight. Only the sign matters, never the magnitude.
func KindOf(weight float64) Kind {
	if weight < 0 {
		return Stitch
	}
	return Conflict
}

// Edge is an undirected edge between two vertex indices.
type Edge struct {
	U, V   int
	Weight float64
}

// Kind returns the edge kind derived from the weight sign.
func (e Edge) Kind() Kind { return KindOf(e.Weight) }

// IsConflict reports whether the edge is a conflict edge (weight >= 0).
func (e Edge) IsConflict() bool { return e.Weight >= 0 }

// IsStitch reports whether the edge is a stitch edge (weight < 0).
func (e Edge) IsStitch() bool { return e.Weight < 0 }

type pair struct{ u, v int }

func key(u, v int) pair {
	if u > v {
		u, v = v, u
	}
	return pair{u, v}
}

// Graph is an undirected conflict/stitch graph over dense integer vertices.
//
// Vertices are numbered 0..Order()-1 in insertion order and carry unique
// string labels. Neighbors are reported in edge insertion order, so every
// traversal over a Graph is reproducible.
//
// The zero value is not usable - use New or WithOrder.
// Graph is not safe for concurrent mutation; concurrent readers are fine once
// construction is finished.
type Graph struct {
	labels  []string
	index   map[string]int
	adj     [][]int
	weights map[pair]float64
	edges   []Edge
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		index:   make(map[string]int),
		weights: make(map[pair]float64),
	}
}

// WithOrder creates a graph with n vertices labelled "0".."n-1".
func WithOrder(n int) *Graph {
	g := New()
	for i := 0; i < n; i++ {
		_, _ = g.AddVertex(fmt.Sprint(i))
	}
	return g
}

// AddVertex appends a vertex and returns its index.
func (g *Graph) AddVertex(label string) (int, error) {
	if label == "" {
		return -1, ErrInvalidLabel
	}
	if _, exists := g.index[label]; exists {
		return -1, fmt.Errorf("%w: %q", ErrDuplicateLabel, label)
	}
	v := len(g.labels)
	g.labels = append(g.labels, label)
	g.index[label] = v
	g.adj = append(g.adj, nil)
	return v, nil
}

// AddEdge connects u and v with the given signed weight.
// Nonnegative weights create conflict edges, negative weights stitch edges.
func (g *Graph) AddEdge(u, v int, weight float64) error {
	if !g.valid(u) || !g.valid(v) {
		return fmt.Errorf("%w: (%d, %d) with order %d", ErrVertexOutOfRange, u, v, g.Order())
	}
	if u == v {
		return fmt.Errorf("%w: %d", ErrSelfLoop, u)
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return ErrInvalidWeight
	}
	k := key(u, v)
	if _, exists := g.weights[k]; exists {
		return fmt.Errorf("%w: (%d, %d)", ErrDuplicateEdge, u, v)
	}
	g.weights[k] = weight
	g.edges = append(g.edges, Edge{U: u, V: v, Weight: weight})
	g.adj[u] = append(g.adj[u], v)
	g.adj[v] = append(g.adj[v], u)
	return nil
}

// AddConflict adds a conflict edge with weight 1.
func (g *Graph) AddConflict(u, v int) error { return g.AddEdge(u, v, 1) }

// AddStitch adds a stitch edge with weight -1.
func (g *Graph) AddStitch(u, v int) error { return g.AddEdge(u, v, -1) }

// Order returns the number of vertices.
func (g *Graph) Order() int { return len(g.labels) }

// Size returns the number of edges of either kind.
func (g *Graph) Size() int { return len(g.edges) }

// Counts returns the number of conflict and stitch edges.
func (g *Graph) Counts() (conflicts, stitches int) {
	for _, e := range g.edges {
		if e.IsStitch() {
			stitches++
		} else {
			conflicts++
		}
	}
	return conflicts, stitches
}

// Neighbors returns the vertices adjacent to v through any edge, in edge
// insertion order. The returned slice must not be modified.
// Returns nil when v is out of range.
func (g *Graph) Neighbors(v int) []int {
	if !g.valid(v) {
		return nil
	}
	return g.adj[v]
}

// Weight returns the weight of the edge between u and v and whether it exists.
func (g *Graph) Weight(u, v int) (float64, bool) {
	w, ok := g.weights[key(u, v)]
	return w, ok
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Label returns the label of vertex v, or "" when v is out of range.
func (g *Graph) Label(v int) string {
	if !g.valid(v) {
		return ""
	}
	return g.labels[v]
}

// Labels returns a copy of all labels indexed by vertex.
func (g *Graph) Labels() []string { return slices.Clone(g.labels) }

// Vertex returns the index of the vertex with the given label.
func (g *Graph) Vertex(label string) (int, bool) {
	v, ok := g.index[label]
	return v, ok
}

func (g *Graph) valid(v int) bool { return v >= 0 && v < len(g.labels) }
