// Package pkg provides the libraries behind stitchgraph.
//
// # Overview
//
// Stitchgraph prepares conflict graphs for triple patterning layout
// decomposition. Vertices are layout features, conflict edges join features
// that must not share a mask and stitch edges join the two halves of a
// feature that may be split. Every 4-clique minus one conflict edge forces
// its two unconnected vertices onto the same mask, so they are merged into
// one group. The reduced graph is 3-colorable exactly when the input is.
//
// # Architecture
//
// The typical data flow:
//
//	graph JSON / gonum graph
//	         ↓
//	    [conflict] (signed-weight conflict graph)
//	         ↓
//	    [simplify] (registry, adjacency, sub-K4 merging)
//	         ↓
//	    [io] / [render/nodelink] (partition JSON, DOT, SVG, PNG)
//
// # Quick Start
//
//	g, _ := io.ImportGraph("layer.json")
//	s, err := simplify.New(g)
//	if err != nil {
//	    return err
//	}
//	res, err := s.MergeSubK4()
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d vertices in %d groups\n", res.Vertices, res.Groups)
//	_ = io.WritePartition(s.Partition(), g, os.Stdout)
//
// # Main Packages
//
// [conflict] - Conflict graph with labelled vertices and signed edge weights,
// plus an adapter for gonum weighted undirected graphs.
//
// [simplify] - The merge engine. [simplify.Registry] is the union-find over
// vertices, [simplify.Adjacency] answers group-level conflict and stitch
// queries, and [simplify.Simplifier] runs the sub-K4 search to a fixed point.
//
// [io] - JSON formats for graphs and partitions.
//
// [render/nodelink] - DOT output of the grouped graph and in-process
// Graphviz rendering.
//
// ## Infrastructure
//
// [pipeline] - Load → simplify → render, with content-addressed caching.
// Used by both the CLI and the HTTP API.
//
// [cache] - Cache backends (file, Redis, MongoDB, null) and key derivation.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [errors] - Structured errors with machine-readable codes.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/simplify/...   # The merge engine
//	go test -run Example ./...   # Examples only
//
// [conflict]: https://pkg.go.dev/github.com/matzehuels/stitchgraph/pkg/conflict
// [simplify]: https://pkg.go.dev/github.com/matzehuels/stitchgraph/pkg/simplify
// [io]: https://pkg.go.dev/github.com/matzehuels/stitchgraph/pkg/io
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/stitchgraph/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/stitchgraph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/stitchgraph/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/stitchgraph/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/stitchgraph/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/stitchgraph/pkg/buildinfo
package pkg
