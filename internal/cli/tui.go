package cli

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/stitchgraph/pkg/conflict"
	"github.com/matzehuels/stitchgraph/pkg/simplify"
)

var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// groupRow is one merged group as shown by the inspector.
type groupRow struct {
	Root    int
	Members []int
}

// groupLinks holds the groups a group is connected to.
type groupLinks struct {
	Conflicts []int
	Stitches  []int // stitch-only links
}

// =============================================================================
// GroupListModel - Interactive group browser
// =============================================================================

// GroupListModel is the bubbletea model for browsing the groups of a
// simplified graph. Enter toggles the links of the selected group.
type GroupListModel struct {
	Graph  *conflict.Graph
	Rows   []groupRow
	Cursor int
	Height int
	Offset int
	Detail bool

	adj   *simplify.Adjacency
	links map[int]groupLinks
}

// NewGroupListModel creates a group browser over a partition of g. Groups
// are listed largest first, ties by root.
func NewGroupListModel(g *conflict.Graph, p simplify.Partition) (GroupListModel, error) {
	reg, err := p.Registry()
	if err != nil {
		return GroupListModel{}, err
	}
	return GroupListModel{
		Graph:  g,
		Rows:   groupRows(p),
		Height: 15,
		adj:    simplify.NewAdjacency(g, reg),
		links:  make(map[int]groupLinks),
	}, nil
}

func groupRows(p simplify.Partition) []groupRow {
	var rows []groupRow
	for _, members := range p.Groups() {
		rows = append(rows, groupRow{Root: members[0], Members: members})
	}
	slices.SortStableFunc(rows, func(a, b groupRow) int {
		return len(b.Members) - len(a.Members)
	})
	return rows
}

// Links returns the conflict and stitch-only neighbours of the group headed
// by root, computed on first use.
func (m GroupListModel) Links(root int) groupLinks {
	if l, ok := m.links[root]; ok {
		return l
	}
	var l groupLinks
	for _, other := range m.Rows {
		if other.Root == root {
			continue
		}
		switch {
		case m.adj.Conflict(root, other.Root):
			l.Conflicts = append(l.Conflicts, other.Root)
		case m.adj.Stitch(root, other.Root):
			l.Stitches = append(l.Stitches, other.Root)
		}
	}
	m.links[root] = l
	return l
}

func (m GroupListModel) Init() tea.Cmd {
	return nil
}

func (m GroupListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Detail = !m.Detail
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 5)
	}
	return m, nil
}

func (m GroupListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Groups"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ links  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Rows))
	b.WriteString(m.table(m.Offset, end, m.Cursor))
	b.WriteString("\n")

	if m.Detail && len(m.Rows) > 0 {
		b.WriteString("\n")
		b.WriteString(m.detail(m.Rows[m.Cursor].Root))
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))
	return b.String()
}

// table renders rows [from, to) with the cursor row highlighted. A cursor
// of -1 highlights nothing.
func (m GroupListModel) table(from, to, cursor int) string {
	rows := [][]string{}
	for i := from; i < to; i++ {
		r := m.Rows[i]
		mark := "  "
		if i == cursor {
			mark = "▸ "
		}
		rows = append(rows, []string{mark, m.Graph.Label(r.Root), fmt.Sprint(len(r.Members)), m.labels(r.Members)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Root", "Size", "Members").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			idx := from + row
			if idx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if len(m.Rows[idx].Members) > 1 {
				base = base.Foreground(colorGreen)
			}
			if idx == cursor {
				return base.Bold(true)
			}
			if len(m.Rows[idx].Members) == 1 {
				return base.Foreground(colorDim)
			}
			return base
		})
	return t.Render()
}

func (m GroupListModel) detail(root int) string {
	l := m.Links(root)
	var b strings.Builder
	b.WriteString(StyleHighlight.Render(m.Graph.Label(root)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s\n", StyleDim.Render("conflicts"), StyleValue.Render(orDash(m.labels(l.Conflicts))))
	fmt.Fprintf(&b, "  %s  %s\n", StyleDim.Render("stitches"), StyleWarning.Render(orDash(m.labels(l.Stitches))))
	return b.String()
}

func (m GroupListModel) labels(vs []int) string {
	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = m.Graph.Label(v)
	}
	return strings.Join(names, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
