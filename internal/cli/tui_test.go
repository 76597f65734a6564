package cli

import (
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/stitchgraph/pkg/conflict"
	"github.com/matzehuels/stitchgraph/pkg/simplify"
)

// diamondModel builds the a,b,c,d sub-K4 plus an isolated vertex e that is
// only stitched to b, simplified.
func diamondModel(t *testing.T) GroupListModel {
	t.Helper()
	g := conflict.New()
	for _, l := range []string{"a", "b", "c", "d", "e"} {
		if _, err := g.AddVertex(l); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range [][2]int{{0, 1}, {0, 2}, {1, 2}, {1, 3}, {2, 3}} {
		if err := g.AddConflict(e[0], e[1]); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.AddStitch(1, 4); err != nil {
		t.Fatal(err)
	}

	s, err := simplify.New(g)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.MergeSubK4(); err != nil {
		t.Fatal(err)
	}
	m, err := NewGroupListModel(g, s.Partition())
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestGroupRowsOrder(t *testing.T) {
	m := diamondModel(t)

	var roots []int
	for _, r := range m.Rows {
		roots = append(roots, r.Root)
	}
	if want := []int{0, 1, 2, 4}; !slices.Equal(roots, want) {
		t.Errorf("row roots = %v, want %v (largest group first)", roots, want)
	}
	if !slices.Equal(m.Rows[0].Members, []int{0, 3}) {
		t.Errorf("first row members = %v, want [0 3]", m.Rows[0].Members)
	}
}

func TestGroupLinks(t *testing.T) {
	m := diamondModel(t)

	tests := []struct {
		root      int
		conflicts []int
		stitches  []int
	}{
		{0, []int{1, 2}, nil},
		{1, []int{0, 2}, []int{4}},
		{4, nil, []int{1}},
	}
	for _, tt := range tests {
		l := m.Links(tt.root)
		if !slices.Equal(l.Conflicts, tt.conflicts) || !slices.Equal(l.Stitches, tt.stitches) {
			t.Errorf("Links(%d) = %+v, want conflicts %v stitches %v", tt.root, l, tt.conflicts, tt.stitches)
		}
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestGroupListNavigation(t *testing.T) {
	var model tea.Model = diamondModel(t)

	model, _ = model.Update(keyMsg("up"))
	if c := model.(GroupListModel).Cursor; c != 0 {
		t.Errorf("cursor after up at top = %d, want 0", c)
	}

	for range 10 {
		model, _ = model.Update(keyMsg("j"))
	}
	if c := model.(GroupListModel).Cursor; c != 3 {
		t.Errorf("cursor after moving past the end = %d, want 3", c)
	}

	model, _ = model.Update(keyMsg("k"))
	model, _ = model.Update(keyMsg("enter"))
	m := model.(GroupListModel)
	if !m.Detail {
		t.Fatal("enter should open the detail view")
	}
	view := m.View()
	if !strings.Contains(view, "conflicts") || !strings.Contains(view, "stitches") {
		t.Errorf("detail view missing link sections:\n%s", view)
	}

	if _, cmd := model.Update(keyMsg("q")); cmd == nil {
		t.Error("q should quit")
	}
}

func TestGroupListWindow(t *testing.T) {
	var model tea.Model = diamondModel(t)

	model, _ = model.Update(tea.WindowSizeMsg{Width: 80, Height: 12})
	m := model.(GroupListModel)
	if m.Height != 5 {
		t.Errorf("Height = %d, want minimum 5", m.Height)
	}
	for range 4 {
		model, _ = model.Update(keyMsg("down"))
	}
	if m := model.(GroupListModel); m.Offset != 0 || m.Cursor != 3 {
		t.Errorf("offset = %d cursor = %d, want 0 and 3", m.Offset, m.Cursor)
	}
}

func TestGroupListTable(t *testing.T) {
	m := diamondModel(t)
	out := m.table(0, len(m.Rows), -1)
	for _, want := range []string{"Root", "Members", "a, d", "e"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
