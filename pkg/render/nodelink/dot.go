package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/stitchgraph/pkg/simplify"
)

// View is the read side of a simplified graph needed to draw it.
// [simplify.Simplifier] implements View.
type View interface {
	Partition() simplify.Partition
	ConnectedConflict(a, b int) bool
	ConnectedStitch(a, b int) bool
}

var _ View = (*simplify.Simplifier)(nil)

// Options configures node-link diagram rendering.
type Options struct {
	// Label names a vertex. When nil, vertices are shown by index.
	Label func(v int) string

	// Detailed lists the members of every group, singletons included.
	// When false, only merged groups show their members.
	Detailed bool
}

func (o Options) label(v int) string {
	if o.Label != nil {
		return o.Label(v)
	}
	return strconv.Itoa(v)
}

// ToDOT converts the current grouping of v to Graphviz DOT.
//
// Each root becomes one circle labelled root:(members). Each pair of roots
// gets at most one edge: solid and heavy when the groups share a conflict
// edge, dashed when they share only stitch edges.
func ToDOT(v View, opts Options) string {
	p := v.Partition()

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	var roots []int
	for r := 0; r < p.Len(); r++ {
		if !p.IsRoot(r) {
			continue
		}
		roots = append(roots, r)
		fmt.Fprintf(&buf, "  %q [label=%q];\n", strconv.Itoa(r), fmtLabel(p.Children[r], opts))
	}

	buf.WriteString("\n")
	for i, a := range roots {
		for _, b := range roots[i+1:] {
			switch {
			case v.ConnectedConflict(a, b):
				fmt.Fprintf(&buf, "  %q -- %q [color=black, style=solid, penwidth=3];\n", strconv.Itoa(a), strconv.Itoa(b))
			case v.ConnectedStitch(a, b):
				fmt.Fprintf(&buf, "  %q -- %q [color=black, style=dashed];\n", strconv.Itoa(a), strconv.Itoa(b))
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(members []int, opts Options) string {
	root := opts.label(members[0])
	if len(members) == 1 && !opts.Detailed {
		return root
	}
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = opts.label(m)
	}
	return root + ":(" + strings.Join(names, ",") + ")"
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := renderDOT(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's svg header with one whose viewBox
// starts at the origin, so the image scales cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
