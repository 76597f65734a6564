// Package nodelink draws simplified conflict graphs as node-link diagrams.
//
// # Overview
//
// Every group left by the simplifier becomes one node labelled with its root
// and members. Groups linked by a conflict edge are joined by a heavy solid
// line; groups linked only by stitch edges are joined by a dashed line.
//
// # Usage
//
//	dot := nodelink.ToDOT(s, nodelink.Options{Label: g.Label})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The DOT source can also be written to disk and processed with the
// external Graphviz tools.
//
// # Dependencies
//
// Rendering uses [github.com/goccy/go-graphviz], which runs Graphviz
// in-process. No dot binary is needed. A rendering failure never affects the
// partition it was drawing.
package nodelink
