package io

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/matzehuels/stitchgraph/pkg/conflict"
	errs "github.com/matzehuels/stitchgraph/pkg/errors"
)

type graphDoc struct {
	Vertices []vertexDoc `json:"vertices"`
	Edges    []edgeDoc   `json:"edges"`
}

type vertexDoc struct {
	ID string `json:"id"`
}

type edgeDoc struct {
	From   string   `json:"from"`
	To     string   `json:"to"`
	Weight *float64 `json:"weight,omitempty"`
	Stitch bool     `json:"stitch,omitempty"`
}

func (e edgeDoc) weight() (float64, error) {
	switch {
	case e.Weight == nil && e.Stitch:
		return -1, nil
	case e.Weight == nil:
		return 1, nil
	case e.Stitch && *e.Weight >= 0:
		return 0, errs.New(errs.ErrCodeInvalidFormat, "edge %s--%s: stitch edge with nonnegative weight %v", e.From, e.To, *e.Weight)
	}
	return *e.Weight, nil
}

// ReadGraph decodes a JSON conflict graph from r.
//
// Vertices are numbered in the order they appear. Edges default to conflict
// edges with weight 1; "stitch": true without a weight means weight -1.
// ReadGraph does not close r.
func ReadGraph(r io.Reader) (*conflict.Graph, error) {
	var doc graphDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode graph")
	}

	g := conflict.New()
	for _, v := range doc.Vertices {
		if err := errs.ValidateLabel(v.ID); err != nil {
			return nil, err
		}
		if _, err := g.AddVertex(v.ID); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidGraph, err, "vertex %s", v.ID)
		}
	}
	for _, e := range doc.Edges {
		u, ok := g.Vertex(e.From)
		if !ok {
			return nil, errs.New(errs.ErrCodeInvalidFormat, "edge %s--%s: unknown vertex %q", e.From, e.To, e.From)
		}
		v, ok := g.Vertex(e.To)
		if !ok {
			return nil, errs.New(errs.ErrCodeInvalidFormat, "edge %s--%s: unknown vertex %q", e.From, e.To, e.To)
		}
		w, err := e.weight()
		if err != nil {
			return nil, err
		}
		if err := g.AddEdge(u, v, w); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidGraph, err, "edge %s--%s", e.From, e.To)
		}
	}
	return g, nil
}

// ImportGraph reads a JSON conflict graph from the file at path.
func ImportGraph(path string) (*conflict.Graph, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadGraph(f)
}

// WriteGraph encodes g as indented JSON. Every edge is written with its
// weight, so the output can be read back with [ReadGraph] unchanged.
func WriteGraph(g *conflict.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toDoc(g)); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "encode graph")
	}
	return nil
}

// ExportGraph writes g to a JSON file at path.
func ExportGraph(g *conflict.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return WriteGraph(g, f)
}

// MarshalGraph returns the compact JSON encoding of g. Equal graphs built in
// the same order marshal to equal bytes, so the output is usable as a cache
// key source.
func MarshalGraph(g *conflict.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(toDoc(g)); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "encode graph")
	}
	return buf.Bytes(), nil
}

func toDoc(g *conflict.Graph) graphDoc {
	doc := graphDoc{
		Vertices: make([]vertexDoc, g.Order()),
		Edges:    make([]edgeDoc, 0, g.Size()),
	}
	for v, l := range g.Labels() {
		doc.Vertices[v] = vertexDoc{ID: l}
	}
	for _, e := range g.Edges() {
		w := e.Weight
		doc.Edges = append(doc.Edges, edgeDoc{From: g.Label(e.U), To: g.Label(e.V), Weight: &w})
	}
	return doc
}
