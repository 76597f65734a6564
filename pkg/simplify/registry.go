package simplify

import (
	"slices"

	errs "github.com/matzehuels/stitchgraph/pkg/errors"
)

// Registry tracks which vertices have been contracted into which group.
//
// Every vertex is either a root (parent(v) == v, non-empty children list
// starting with v itself) or absorbed (parent(v) != v, empty children list).
// The children lists of all roots partition the vertex set. Merging is
// monotonic: an absorbed vertex never becomes a root again and its parent
// never changes.
//
// Root does not compress paths; chains stay short in practice because only
// roots are ever merged.
type Registry struct {
	parent   []int
	children [][]int
}

// NewRegistry creates a registry with one singleton group per vertex.
func NewRegistry(n int) *Registry {
	r := &Registry{
		parent:   make([]int, n),
		children: make([][]int, n),
	}
	for v := range r.parent {
		r.parent[v] = v
		r.children[v] = []int{v}
	}
	return r
}

// RegistryFrom rebuilds a registry from snapshots produced by
// [Registry.Parents] and [Registry.Children], for example after loading a
// cached partition. The snapshots are copied and checked with [Registry.Check].
func RegistryFrom(parents []int, children [][]int) (*Registry, error) {
	if len(parents) != len(children) {
		return nil, errs.New(errs.ErrCodeInvalidInput, "parents has %d entries but children has %d", len(parents), len(children))
	}
	r := &Registry{
		parent:   slices.Clone(parents),
		children: make([][]int, len(children)),
	}
	for v, c := range children {
		r.children[v] = slices.Clone(c)
	}
	for _, p := range r.parent {
		if p < 0 || p >= len(r.parent) {
			return nil, errs.New(errs.ErrCodeVertexOutOfRange, "parent %d outside [0, %d)", p, len(r.parent))
		}
	}
	if err := r.Check(); err != nil {
		return nil, err
	}
	return r, nil
}

// Len returns the number of vertices tracked by the registry.
func (r *Registry) Len() int { return len(r.parent) }

// Root follows parent links from v until it reaches a root.
// It panics with a VERTEX_OUT_OF_RANGE error if v is not a valid vertex.
func (r *Registry) Root(v int) int {
	r.mustVertex(v)
	for v != r.parent[v] {
		v = r.parent[v]
	}
	return v
}

// IsMerged reports whether v has been absorbed into another group.
// It panics with a VERTEX_OUT_OF_RANGE error if v is not a valid vertex.
func (r *Registry) IsMerged(v int) bool {
	r.mustVertex(v)
	return len(r.children[v]) == 0
}

// Members returns the vertices of the group containing v, root first, in
// merge order. The returned slice is a read-only view and must not be
// modified; it is not updated by later merges.
func (r *Registry) Members(v int) []int {
	return slices.Clip(r.children[r.Root(v)])
}

// Merge contracts the group rooted at absorbed into the group rooted at into.
// Both must be current, distinct roots. The children of absorbed are appended
// to those of into, absorbed's list is emptied and its parent set to into.
func (r *Registry) Merge(absorbed, into int) error {
	if !r.valid(absorbed) || !r.valid(into) {
		return errs.New(errs.ErrCodeVertexOutOfRange, "merge %d into %d: vertex outside [0, %d)", absorbed, into, r.Len())
	}
	if absorbed == into {
		return errs.New(errs.ErrCodeInvalidInput, "cannot merge vertex %d into itself", absorbed)
	}
	if r.IsMerged(absorbed) {
		return errs.New(errs.ErrCodeNotRoot, "merge %d into %d: %d is not a root", absorbed, into, absorbed)
	}
	if r.IsMerged(into) {
		return errs.New(errs.ErrCodeNotRoot, "merge %d into %d: %d is not a root", absorbed, into, into)
	}
	r.children[into] = append(r.children[into], r.children[absorbed]...)
	r.children[absorbed] = nil
	r.parent[absorbed] = into
	return nil
}

// Parents returns a copy of the parent mapping. Entry v is the vertex v was
// merged into, or v itself for roots.
func (r *Registry) Parents() []int { return slices.Clone(r.parent) }

// Children returns a deep copy of the children lists. Absorbed vertices map
// to an empty (non-nil) list.
func (r *Registry) Children() [][]int {
	out := make([][]int, len(r.children))
	for v, c := range r.children {
		out[v] = append([]int{}, c...)
	}
	return out
}

// Roots returns the resolved root of every vertex.
func (r *Registry) Roots() []int {
	out := make([]int, len(r.parent))
	for v := range r.parent {
		out[v] = r.Root(v)
	}
	return out
}

// Groups returns the number of current roots.
func (r *Registry) Groups() int {
	n := 0
	for _, c := range r.children {
		if len(c) > 0 {
			n++
		}
	}
	return n
}

// Check verifies the registry invariants: every vertex is exactly one of root
// or absorbed, and the children lists of the roots partition the vertex set.
func (r *Registry) Check() error {
	seen := make([]bool, len(r.parent))
	for v := range r.parent {
		isRoot := r.parent[v] == v
		if isRoot != (len(r.children[v]) > 0) {
			return errs.New(errs.ErrCodeInternal, "vertex %d: parent %d with %d children", v, r.parent[v], len(r.children[v]))
		}
		if !isRoot {
			continue
		}
		if r.children[v][0] != v {
			return errs.New(errs.ErrCodeInternal, "root %d does not list itself first", v)
		}
		for _, m := range r.children[v] {
			if !r.valid(m) {
				return errs.New(errs.ErrCodeVertexOutOfRange, "root %d lists member %d outside [0, %d)", v, m, r.Len())
			}
			if seen[m] {
				return errs.New(errs.ErrCodeInternal, "vertex %d appears in more than one group", m)
			}
			seen[m] = true
			if r.Root(m) != v {
				return errs.New(errs.ErrCodeInternal, "member %d of root %d resolves to %d", m, v, r.Root(m))
			}
		}
	}
	for v, ok := range seen {
		if !ok {
			return errs.New(errs.ErrCodeInternal, "vertex %d belongs to no group", v)
		}
	}
	return nil
}

func (r *Registry) valid(v int) bool { return v >= 0 && v < len(r.parent) }

func (r *Registry) mustVertex(v int) {
	if !r.valid(v) {
		panic(errs.New(errs.ErrCodeVertexOutOfRange, "vertex %d outside [0, %d)", v, r.Len()))
	}
}
