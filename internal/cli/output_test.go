package cli

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "layer.json", "layer"},
		{"", "dir/layer.json", "dir/layer"},
		{"out.svg", "layer.json", "out"},
		{"out.json", "layer.json", "out"},
		{"out", "layer.json", "out"},
		{"out.v2", "layer.json", "out.v2"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		name   string
		params artifactWriteParams
		format string
		want   string
	}{
		{"derived from input", artifactWriteParams{formats: []string{"json"}, input: "layer.json", suffix: "groups"}, "json", "layer.groups.json"},
		{"exact single output", artifactWriteParams{formats: []string{"svg"}, input: "layer.json", output: "x/out.svg", suffix: "groups"}, "svg", "x/out.svg"},
		{"base path for many", artifactWriteParams{formats: []string{"json", "svg"}, input: "layer.json", output: "out", suffix: "groups"}, "svg", "out.svg"},
		{"extension stripped for many", artifactWriteParams{formats: []string{"json", "svg"}, input: "layer.json", output: "out.json", suffix: "groups"}, "svg", "out.svg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := artifactPath(tt.params, tt.format); got != tt.want {
				t.Errorf("artifactPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "layer.json")

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"json": []byte("{}"), "dot": []byte("graph G {}")},
		formats:   []string{"json", "dot"},
		input:     input,
		suffix:    "groups",
	})
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}

	want := []string{filepath.Join(dir, "layer.groups.json"), filepath.Join(dir, "layer.groups.dot")}
	if !slices.Equal(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
	data, err := os.ReadFile(want[1])
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "graph G {}" {
		t.Errorf("dot artifact = %q", data)
	}
}

func TestWriteArtifactsErrors(t *testing.T) {
	if _, err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"json": nil, "dot": nil},
		formats:   []string{"json", "dot"},
		output:    stdoutPath,
	}); err == nil {
		t.Error("stdout with two formats should fail")
	}

	if _, err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{},
		formats:   []string{"svg"},
		input:     filepath.Join(t.TempDir(), "g.json"),
	}); err == nil {
		t.Error("missing artifact should fail")
	}
}
