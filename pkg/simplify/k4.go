package simplify

import (
	"io"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/stitchgraph/pkg/errors"
)

// DefaultColors is the only color count the K4 contraction is sound for.
const DefaultColors = 3

// Option configures a [Simplifier].
type Option func(*Simplifier)

// WithColors sets the number of colors the downstream decomposition targets.
// MergeSubK4 refuses to run unless k is 3.
func WithColors(k int) Option {
	return func(s *Simplifier) { s.colors = k }
}

// WithRegistry continues from a partition built by an earlier merge stage
// instead of starting from singleton groups. The registry is mutated in place.
func WithRegistry(r *Registry) Option {
	return func(s *Simplifier) { s.reg = r }
}

// WithLogger sets the logger used for per-merge debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *Simplifier) {
		if l != nil {
			s.logger = l
		}
	}
}

// Simplifier contracts 4-cliques missing one conflict edge in a conflict
// graph. It owns a [Registry] and reads the base graph through [Adjacency].
// A Simplifier is not safe for concurrent use.
type Simplifier struct {
	g      Graph
	reg    *Registry
	adj    *Adjacency
	colors int
	logger *log.Logger
}

// New validates g and prepares a simplifier over it.
func New(g Graph, opts ...Option) (*Simplifier, error) {
	if err := Validate(g); err != nil {
		return nil, err
	}
	s := &Simplifier{
		g:      g,
		colors: DefaultColors,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.reg == nil {
		s.reg = NewRegistry(g.Order())
	} else {
		if s.reg.Len() != g.Order() {
			return nil, errs.New(errs.ErrCodeInvalidInput, "registry tracks %d vertices but graph has %d", s.reg.Len(), g.Order())
		}
		if err := s.reg.Check(); err != nil {
			return nil, err
		}
	}
	s.adj = NewAdjacency(g, s.reg)
	return s, nil
}

// Registry returns the registry the simplifier mutates.
func (s *Simplifier) Registry() *Registry { return s.reg }

// ConnectedConflict reports whether the groups of a and b share a conflict edge.
func (s *Simplifier) ConnectedConflict(a, b int) bool { return s.adj.Conflict(a, b) }

// ConnectedStitch reports whether the groups of a and b share a stitch edge.
func (s *Simplifier) ConnectedStitch(a, b int) bool { return s.adj.Stitch(a, b) }

// Partition returns a snapshot of the current grouping.
func (s *Simplifier) Partition() Partition { return newPartition(s.reg) }

// MergeSubK4 repeatedly finds roots v1, v2, v3, v4 where v1-v2, v2-v3, v1-v3,
// v3-v4 and v2-v4 are in conflict but v1-v4 is not, and merges v4 into v1.
// In any 3-coloring v4 must take v1's color, so the reduced graph is
// 3-colorable iff the input is.
//
// The search restarts from the first vertex after every merge and stops once
// a full scan finds no pattern. Calling MergeSubK4 again is a no-op.
func (s *Simplifier) MergeSubK4() (Result, error) {
	res := Result{Vertices: s.g.Order()}
	if s.colors != DefaultColors {
		return res, errs.New(errs.ErrCodeUnsupported, "K4 merging requires 3 colors, got %d", s.colors)
	}
	for {
		res.Passes++
		p, found, err := s.findSubK4()
		if err != nil {
			res.Groups = s.reg.Groups()
			return res, err
		}
		if !found {
			break
		}
		if err := s.reg.Merge(p.v4, p.v1); err != nil {
			res.Groups = s.reg.Groups()
			return res, errs.Wrap(errs.ErrCodeInternal, err, "merge sub-K4")
		}
		res.Merges++
		s.logger.Debug("merged sub-K4", "into", p.v1, "absorbed", p.v4, "v2", p.v2, "v3", p.v3)
	}
	res.Groups = s.reg.Groups()
	return res, nil
}

type subK4 struct{ v1, v2, v3, v4 int }

func (s *Simplifier) findSubK4() (subK4, bool, error) {
	for v1 := 0; v1 < s.reg.Len(); v1++ {
		if s.reg.IsMerged(v1) {
			continue
		}
		for _, m1 := range s.reg.Members(v1) {
			for _, n := range s.g.Neighbors(m1) {
				ok, err := s.conflictEdge(m1, n)
				if err != nil {
					return subK4{}, false, err
				}
				v2 := s.reg.Root(n)
				if !ok || v2 == v1 {
					continue
				}
				p, found, err := s.findV3(v1, v2)
				if err != nil || found {
					return p, found, err
				}
			}
		}
	}
	return subK4{}, false, nil
}

func (s *Simplifier) findV3(v1, v2 int) (subK4, bool, error) {
	for _, m2 := range s.reg.Members(v2) {
		for _, n := range s.g.Neighbors(m2) {
			ok, err := s.conflictEdge(m2, n)
			if err != nil {
				return subK4{}, false, err
			}
			v3 := s.reg.Root(n)
			if !ok || v3 == v1 || v3 == v2 || !s.adj.Conflict(v1, v3) {
				continue
			}
			v4, found, err := s.findV4(v1, v2, v3)
			if err != nil || found {
				return subK4{v1, v2, v3, v4}, found, err
			}
		}
	}
	return subK4{}, false, nil
}

func (s *Simplifier) findV4(v1, v2, v3 int) (int, bool, error) {
	for _, m3 := range s.reg.Members(v3) {
		for _, n := range s.g.Neighbors(m3) {
			ok, err := s.conflictEdge(m3, n)
			if err != nil {
				return -1, false, err
			}
			v4 := s.reg.Root(n)
			if !ok || v4 == v1 || v4 == v2 || v4 == v3 {
				continue
			}
			if s.adj.Conflict(v2, v4) && !s.adj.Conflict(v1, v4) {
				return v4, true, nil
			}
		}
	}
	return -1, false, nil
}

// conflictEdge reports whether the traversed edge u-v is a conflict edge.
// A neighbor without a weight means the base graph broke its contract.
func (s *Simplifier) conflictEdge(u, v int) (bool, error) {
	if v < 0 || v >= s.reg.Len() {
		return false, errs.New(errs.ErrCodeVertexOutOfRange, "vertex %d has neighbor %d outside [0, %d)", u, v, s.reg.Len())
	}
	w, ok := s.g.Weight(u, v)
	if !ok {
		return false, errs.New(errs.ErrCodeMissingEdge, "vertex %d lists neighbor %d but no edge exists", u, v)
	}
	return w >= 0, nil
}
