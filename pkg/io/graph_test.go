package io

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/stitchgraph/pkg/conflict"
	errs "github.com/matzehuels/stitchgraph/pkg/errors"
)

const sample = `{
  "vertices": [{"id": "a"}, {"id": "b"}, {"id": "c"}],
  "edges": [
    {"from": "a", "to": "b"},
    {"from": "b", "to": "c", "stitch": true},
    {"from": "a", "to": "c", "weight": 0}
  ]
}`

func TestReadGraph(t *testing.T) {
	g, err := ReadGraph(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("ReadGraph() = %v", err)
	}
	if !slices.Equal(g.Labels(), []string{"a", "b", "c"}) {
		t.Errorf("Labels() = %v", g.Labels())
	}
	want := []conflict.Edge{{U: 0, V: 1, Weight: 1}, {U: 1, V: 2, Weight: -1}, {U: 0, V: 2, Weight: 0}}
	if got := g.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
}

func TestReadGraphErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errs.Code
	}{
		{"malformed", `{"vertices": [`, errs.ErrCodeInvalidFormat},
		{"empty label", `{"vertices": [{"id": ""}]}`, errs.ErrCodeInvalidLabel},
		{"duplicate vertex", `{"vertices": [{"id": "a"}, {"id": "a"}]}`, errs.ErrCodeInvalidGraph},
		{"unknown vertex", `{"vertices": [{"id": "a"}], "edges": [{"from": "a", "to": "z"}]}`, errs.ErrCodeInvalidFormat},
		{"self loop", `{"vertices": [{"id": "a"}], "edges": [{"from": "a", "to": "a"}]}`, errs.ErrCodeInvalidGraph},
		{
			"duplicate edge",
			`{"vertices": [{"id": "a"}, {"id": "b"}], "edges": [{"from": "a", "to": "b"}, {"from": "b", "to": "a", "stitch": true}]}`,
			errs.ErrCodeInvalidGraph,
		},
		{
			"stitch with positive weight",
			`{"vertices": [{"id": "a"}, {"id": "b"}], "edges": [{"from": "a", "to": "b", "stitch": true, "weight": 2}]}`,
			errs.ErrCodeInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadGraph(strings.NewReader(tt.input))
			if !errs.Is(err, tt.code) {
				t.Errorf("ReadGraph() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestWriteGraphRoundTrip(t *testing.T) {
	g, err := ReadGraph(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		t.Fatalf("WriteGraph() = %v", err)
	}
	back, err := ReadGraph(&buf)
	if err != nil {
		t.Fatalf("ReadGraph() = %v", err)
	}
	if !slices.Equal(back.Labels(), g.Labels()) || !slices.Equal(back.Edges(), g.Edges()) {
		t.Errorf("round trip changed the graph: %v %v", back.Labels(), back.Edges())
	}

	a, _ := MarshalGraph(g)
	b, _ := MarshalGraph(back)
	if !bytes.Equal(a, b) {
		t.Error("MarshalGraph() differs after round trip")
	}
}

func TestImportExportGraph(t *testing.T) {
	g, err := ReadGraph(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := ExportGraph(g, path); err != nil {
		t.Fatalf("ExportGraph() = %v", err)
	}
	back, err := ImportGraph(path)
	if err != nil {
		t.Fatalf("ImportGraph() = %v", err)
	}
	if back.Size() != 3 {
		t.Errorf("Size() = %d, want 3", back.Size())
	}

	_, err = ImportGraph(filepath.Join(t.TempDir(), "missing.json"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("ImportGraph(missing) = %v, want FILE_NOT_FOUND", err)
	}
}
