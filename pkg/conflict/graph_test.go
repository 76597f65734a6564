package conflict

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestAddVertex(t *testing.T) {
	g := New()

	a, err := g.AddVertex("a")
	if err != nil || a != 0 {
		t.Fatalf("AddVertex(a) = %d, %v; want 0, nil", a, err)
	}
	b, err := g.AddVertex("b")
	if err != nil || b != 1 {
		t.Fatalf("AddVertex(b) = %d, %v; want 1, nil", b, err)
	}

	if _, err := g.AddVertex(""); !errors.Is(err, ErrInvalidLabel) {
		t.Errorf("AddVertex(\"\") error = %v, want ErrInvalidLabel", err)
	}
	if _, err := g.AddVertex("a"); !errors.Is(err, ErrDuplicateLabel) {
		t.Errorf("AddVertex(dup) error = %v, want ErrDuplicateLabel", err)
	}

	if g.Order() != 2 {
		t.Errorf("Order() = %d, want 2", g.Order())
	}
	if v, ok := g.Vertex("b"); !ok || v != 1 {
		t.Errorf("Vertex(b) = %d, %v; want 1, true", v, ok)
	}
	if g.Label(1) != "b" {
		t.Errorf("Label(1) = %q, want b", g.Label(1))
	}
	if g.Label(7) != "" {
		t.Errorf("Label(7) = %q, want empty", g.Label(7))
	}
}

func TestWithOrder(t *testing.T) {
	g := WithOrder(3)
	if g.Order() != 3 {
		t.Fatalf("Order() = %d, want 3", g.Order())
	}
	if got := g.Labels(); !slices.Equal(got, []string{"0", "1", "2"}) {
		t.Errorf("Labels() = %v", got)
	}
}

func TestAddEdge(t *testing.T) {
	tests := []struct {
		name    string
		u, v    int
		weight  float64
		wantErr error
	}{
		{"conflict", 0, 1, 1, nil},
		{"zero weight is conflict", 1, 2, 0, nil},
		{"stitch", 2, 3, -1, nil},
		{"out of range", 0, 9, 1, ErrVertexOutOfRange},
		{"negative index", -1, 0, 1, ErrVertexOutOfRange},
		{"self loop", 2, 2, 1, ErrSelfLoop},
		{"duplicate", 0, 1, 1, ErrDuplicateEdge},
		{"duplicate reversed", 1, 0, -1, ErrDuplicateEdge},
		{"nan", 0, 3, math.NaN(), ErrInvalidWeight},
		{"inf", 0, 3, math.Inf(-1), ErrInvalidWeight},
	}

	g := WithOrder(4)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.AddEdge(tt.u, tt.v, tt.weight)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("AddEdge() error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddEdge() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if g.Size() != 3 {
		t.Errorf("Size() = %d, want 3", g.Size())
	}
	conflicts, stitches := g.Counts()
	if conflicts != 2 || stitches != 1 {
		t.Errorf("Counts() = %d, %d; want 2, 1", conflicts, stitches)
	}
}

func TestWeightIsSymmetric(t *testing.T) {
	g := WithOrder(3)
	_ = g.AddConflict(0, 1)
	_ = g.AddStitch(2, 1)

	for _, p := range [][2]int{{0, 1}, {1, 2}} {
		w1, ok1 := g.Weight(p[0], p[1])
		w2, ok2 := g.Weight(p[1], p[0])
		if !ok1 || !ok2 || w1 != w2 {
			t.Errorf("Weight(%d,%d) = %v,%v but reversed = %v,%v", p[0], p[1], w1, ok1, w2, ok2)
		}
	}
	if _, ok := g.Weight(0, 2); ok {
		t.Error("Weight(0,2) should not exist")
	}
}

func TestNeighborsInsertionOrder(t *testing.T) {
	g := WithOrder(4)
	_ = g.AddConflict(0, 3)
	_ = g.AddStitch(0, 1)
	_ = g.AddConflict(2, 0)

	if got := g.Neighbors(0); !slices.Equal(got, []int{3, 1, 2}) {
		t.Errorf("Neighbors(0) = %v, want [3 1 2]", got)
	}
	if got := g.Neighbors(1); !slices.Equal(got, []int{0}) {
		t.Errorf("Neighbors(1) = %v, want [0]", got)
	}
	if got := g.Neighbors(10); got != nil {
		t.Errorf("Neighbors(10) = %v, want nil", got)
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		weight float64
		want   Kind
	}{
		{1, Conflict},
		{0, Conflict},
		{12.5, Conflict},
		{-0.001, Stitch},
		{-1, Stitch},
	}

	for _, tt := range tests {
		e := Edge{U: 0, V: 1, Weight: tt.weight}
		if got := e.Kind(); got != tt.want {
			t.Errorf("Edge{Weight: %v}.Kind() = %v, want %v", tt.weight, got, tt.want)
		}
		if e.IsConflict() == e.IsStitch() {
			t.Errorf("Edge{Weight: %v} is both or neither conflict and stitch", tt.weight)
		}
	}

	if Conflict.String() != "conflict" || Stitch.String() != "stitch" {
		t.Errorf("Kind.String() = %q, %q", Conflict.String(), Stitch.String())
	}
}

func TestEdgesIsCopy(t *testing.T) {
	g := WithOrder(2)
	_ = g.AddConflict(0, 1)

	edges := g.Edges()
	edges[0].Weight = -5

	if w, _ := g.Weight(0, 1); w != 1 {
		t.Errorf("modifying Edges() result changed the graph: weight = %v", w)
	}
}
