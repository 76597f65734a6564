package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/stitchgraph/pkg/conflict"
	"github.com/matzehuels/stitchgraph/pkg/io"
	"github.com/matzehuels/stitchgraph/pkg/render/nodelink"
	"github.com/matzehuels/stitchgraph/pkg/simplify"
)

// Render generates output artifacts in the requested formats.
// The DOT source is built once and shared by the dot, svg and png outputs.
func Render(ctx context.Context, s *simplify.Simplifier, g *conflict.Graph, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var dot string
	dotSource := func() string {
		if dot == "" {
			dot = nodelink.ToDOT(s, nodelink.Options{Label: g.Label, Detailed: opts.Detailed})
		}
		return dot
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			var buf bytes.Buffer
			err = io.WritePartition(s.Partition(), g, &buf)
			data = buf.Bytes()
		case FormatDOT:
			data = []byte(dotSource())
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dotSource())
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dotSource())
		default:
			err = ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
