package simplify

import (
	"slices"
	"testing"

	errs "github.com/matzehuels/stitchgraph/pkg/errors"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry(4)
	if r.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", r.Len())
	}
	for v := 0; v < 4; v++ {
		if r.Root(v) != v {
			t.Errorf("Root(%d) = %d, want %d", v, r.Root(v), v)
		}
		if r.IsMerged(v) {
			t.Errorf("IsMerged(%d) = true, want false", v)
		}
		if got := r.Members(v); !slices.Equal(got, []int{v}) {
			t.Errorf("Members(%d) = %v, want [%d]", v, got, v)
		}
	}
	if r.Groups() != 4 {
		t.Errorf("Groups() = %d, want 4", r.Groups())
	}
	if err := r.Check(); err != nil {
		t.Errorf("Check() = %v", err)
	}
}

func TestRegistryMerge(t *testing.T) {
	r := NewRegistry(5)
	if err := r.Merge(3, 1); err != nil {
		t.Fatalf("Merge(3, 1) = %v", err)
	}
	if err := r.Merge(1, 0); err != nil {
		t.Fatalf("Merge(1, 0) = %v", err)
	}

	if got := r.Root(3); got != 0 {
		t.Errorf("Root(3) = %d, want 0 through the chain 3 -> 1 -> 0", got)
	}
	if got := r.Parents(); !slices.Equal(got, []int{0, 0, 2, 1, 4}) {
		t.Errorf("Parents() = %v", got)
	}
	if got := r.Roots(); !slices.Equal(got, []int{0, 0, 2, 0, 4}) {
		t.Errorf("Roots() = %v", got)
	}
	if got := r.Members(3); !slices.Equal(got, []int{0, 1, 3}) {
		t.Errorf("Members(3) = %v, want [0 1 3]", got)
	}
	for _, v := range []int{1, 3} {
		if !r.IsMerged(v) {
			t.Errorf("IsMerged(%d) = false, want true", v)
		}
	}
	if r.Groups() != 3 {
		t.Errorf("Groups() = %d, want 3", r.Groups())
	}
	if err := r.Check(); err != nil {
		t.Errorf("Check() = %v", err)
	}
}

func TestRegistryMergeErrors(t *testing.T) {
	tests := []struct {
		name           string
		absorbed, into int
		code           errs.Code
	}{
		{"self", 2, 2, errs.ErrCodeInvalidInput},
		{"absorbed not root", 1, 2, errs.ErrCodeNotRoot},
		{"into not root", 2, 1, errs.ErrCodeNotRoot},
		{"absorbed out of range", 7, 0, errs.ErrCodeVertexOutOfRange},
		{"into negative", 0, -1, errs.ErrCodeVertexOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry(4)
			if err := r.Merge(1, 0); err != nil {
				t.Fatal(err)
			}
			before := r.Parents()
			err := r.Merge(tt.absorbed, tt.into)
			if !errs.Is(err, tt.code) {
				t.Fatalf("Merge(%d, %d) = %v, want code %s", tt.absorbed, tt.into, err, tt.code)
			}
			if !slices.Equal(r.Parents(), before) {
				t.Error("failed merge modified the registry")
			}
		})
	}
}

func TestRegistryOutOfRangePanics(t *testing.T) {
	calls := map[string]func(r *Registry){
		"Root":     func(r *Registry) { r.Root(3) },
		"IsMerged": func(r *Registry) { r.IsMerged(-1) },
		"Members":  func(r *Registry) { r.Members(10) },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			defer func() {
				err, ok := recover().(error)
				if !ok || !errs.Is(err, errs.ErrCodeVertexOutOfRange) {
					t.Fatalf("recovered %v, want VERTEX_OUT_OF_RANGE error", err)
				}
			}()
			call(NewRegistry(3))
		})
	}
}

func TestRegistrySnapshotsAreCopies(t *testing.T) {
	r := NewRegistry(3)
	parents := r.Parents()
	children := r.Children()
	parents[0] = 2
	children[0][0] = 2
	if r.Root(0) != 0 || r.Members(0)[0] != 0 {
		t.Error("mutating a snapshot changed the registry")
	}

	if err := r.Merge(2, 0); err != nil {
		t.Fatal(err)
	}
	c := r.Children()
	if c[2] == nil || len(c[2]) != 0 {
		t.Errorf("Children()[2] = %#v, want empty non-nil list", c[2])
	}
}

func TestRegistryCheckDetectsCorruption(t *testing.T) {
	r := NewRegistry(3)
	r.children[1] = append(r.children[1], 0)
	if err := r.Check(); err == nil {
		t.Error("Check() = nil for a vertex in two groups")
	}

	r = NewRegistry(3)
	r.parent[2] = 0
	if err := r.Check(); err == nil {
		t.Error("Check() = nil for an absorbed vertex with children")
	}
}

func TestRegistryFrom(t *testing.T) {
	src := NewRegistry(4)
	if err := src.Merge(2, 0); err != nil {
		t.Fatal(err)
	}
	r, err := RegistryFrom(src.Parents(), src.Children())
	if err != nil {
		t.Fatalf("RegistryFrom() = %v", err)
	}
	if !slices.Equal(r.Roots(), src.Roots()) {
		t.Errorf("Roots() = %v, want %v", r.Roots(), src.Roots())
	}

	tests := []struct {
		name     string
		parents  []int
		children [][]int
	}{
		{"length mismatch", []int{0, 1}, [][]int{{0}}},
		{"parent out of range", []int{0, 5}, [][]int{{0}, {}}},
		{"orphan", []int{0, 0}, [][]int{{0}, {}}},
		{"root without children", []int{0, 1}, [][]int{{0, 1}, {}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RegistryFrom(tt.parents, tt.children); err == nil {
				t.Error("RegistryFrom() = nil error")
			}
		})
	}
}
