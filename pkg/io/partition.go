package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/stitchgraph/pkg/conflict"
	errs "github.com/matzehuels/stitchgraph/pkg/errors"
	"github.com/matzehuels/stitchgraph/pkg/simplify"
)

type partitionDoc struct {
	Vertices int        `json:"vertices"`
	Groups   []groupDoc `json:"groups"`
	Parents  []string   `json:"parents"`
}

type groupDoc struct {
	Root    string   `json:"root"`
	Members []string `json:"members"`
}

// WritePartition encodes p as indented JSON, naming vertices by their labels
// in g. Groups appear in ascending root order with members in merge order.
func WritePartition(p simplify.Partition, g *conflict.Graph, w io.Writer) error {
	if p.Len() != g.Order() {
		return errs.New(errs.ErrCodeInvalidInput, "partition has %d vertices but graph has %d", p.Len(), g.Order())
	}
	doc := partitionDoc{
		Vertices: p.Len(),
		Groups:   []groupDoc{},
		Parents:  make([]string, p.Len()),
	}
	for v, parent := range p.Parents {
		doc.Parents[v] = g.Label(parent)
	}
	for _, members := range p.Groups() {
		gd := groupDoc{Root: g.Label(members[0]), Members: make([]string, len(members))}
		for i, m := range members {
			gd.Members[i] = g.Label(m)
		}
		doc.Groups = append(doc.Groups, gd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "encode partition")
	}
	return nil
}

// ExportPartition writes p to a JSON file at path.
func ExportPartition(p simplify.Partition, g *conflict.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return WritePartition(p, g, f)
}

// ReadPartition decodes a partition written by [WritePartition] for graph g.
// The result is checked against the registry invariants, so a partition
// that does not match g is rejected.
func ReadPartition(r io.Reader, g *conflict.Graph) (simplify.Partition, error) {
	var doc partitionDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return simplify.Partition{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode partition")
	}
	if doc.Vertices != g.Order() || len(doc.Parents) != g.Order() {
		return simplify.Partition{}, errs.New(errs.ErrCodeInvalidFormat,
			"partition has %d vertices and %d parents but graph has %d", doc.Vertices, len(doc.Parents), g.Order())
	}

	lookup := func(label string) (int, error) {
		v, ok := g.Vertex(label)
		if !ok {
			return -1, errs.New(errs.ErrCodeInvalidFormat, "partition names unknown vertex %q", label)
		}
		return v, nil
	}

	parents := make([]int, len(doc.Parents))
	for v, label := range doc.Parents {
		p, err := lookup(label)
		if err != nil {
			return simplify.Partition{}, err
		}
		parents[v] = p
	}
	children := make([][]int, g.Order())
	for v := range children {
		children[v] = []int{}
	}
	for _, gd := range doc.Groups {
		root, err := lookup(gd.Root)
		if err != nil {
			return simplify.Partition{}, err
		}
		for _, label := range gd.Members {
			m, err := lookup(label)
			if err != nil {
				return simplify.Partition{}, err
			}
			children[root] = append(children[root], m)
		}
	}

	reg, err := simplify.RegistryFrom(parents, children)
	if err != nil {
		return simplify.Partition{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "partition does not match graph")
	}
	return simplify.Partition{
		Parents:  reg.Parents(),
		Roots:    reg.Roots(),
		Children: reg.Children(),
	}, nil
}
