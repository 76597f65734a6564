package simplify

import "slices"

// Result summarizes a MergeSubK4 run.
type Result struct {
	Vertices int // vertices in the base graph
	Groups   int // groups after the run
	Merges   int // patterns contracted by this run
	Passes   int // full scans, including the final one that found nothing
}

// Reduction returns the fraction of vertices eliminated as separate groups.
func (r Result) Reduction() float64 {
	if r.Vertices == 0 {
		return 0
	}
	return float64(r.Vertices-r.Groups) / float64(r.Vertices)
}

// Partition is an immutable snapshot of a [Registry].
type Partition struct {
	Parents  []int   // vertex each vertex was merged into, itself for roots
	Roots    []int   // resolved root of each vertex
	Children [][]int // members per root, root first; empty for absorbed vertices
}

func newPartition(r *Registry) Partition {
	return Partition{
		Parents:  r.Parents(),
		Roots:    r.Roots(),
		Children: r.Children(),
	}
}

// Len returns the number of vertices.
func (p Partition) Len() int { return len(p.Parents) }

// IsRoot reports whether v heads a group.
func (p Partition) IsRoot(v int) bool { return len(p.Children[v]) > 0 }

// Groups returns the member lists of all groups in ascending root order.
func (p Partition) Groups() [][]int {
	var out [][]int
	for _, c := range p.Children {
		if len(c) > 0 {
			out = append(out, slices.Clone(c))
		}
	}
	return out
}

// Registry rebuilds a registry holding this partition.
func (p Partition) Registry() (*Registry, error) {
	return RegistryFrom(p.Parents, p.Children)
}
