package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/stitchgraph/pkg/pipeline"
)

// stdoutPath as the output path writes a single artifact to stdout.
const stdoutPath = "-"

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string // input graph path, used to derive output names
	output    string // -o value: exact file, base path, or "-"
	suffix    string // inserted before the extension, e.g. "groups"
}

// writeArtifacts writes each requested format to disk and returns the paths
// written. A single format with an exact -o path is written there unchanged.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	if p.output == stdoutPath {
		if len(p.formats) != 1 {
			return nil, fmt.Errorf("-o - needs exactly one format, got %d", len(p.formats))
		}
		return nil, writeOutput("", p.artifacts[p.formats[0]])
	}

	var paths []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			return paths, fmt.Errorf("missing %s artifact", format)
		}
		path := artifactPath(p, format)
		if err := writeOutput(path, data); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// artifactPath derives the output file for one format.
func artifactPath(p artifactWriteParams, format string) string {
	if len(p.formats) == 1 && p.output != "" && hasFormatExt(p.output) {
		return p.output
	}
	base := basePath(p.output, p.input)
	if p.output == "" && p.suffix != "" {
		base += "." + p.suffix
	}
	return base + "." + format
}

// basePath derives the base output path from the output and input file paths.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	if hasFormatExt(output) {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	return output
}

func hasFormatExt(path string) bool {
	return pipeline.ValidFormats[strings.TrimPrefix(filepath.Ext(path), ".")]
}

func writeOutput(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path, or stdout when the
// path is empty. Existing files are overwritten.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
