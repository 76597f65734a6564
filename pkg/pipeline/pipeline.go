// Package pipeline provides the load → simplify → render pipeline shared by
// the CLI and the HTTP API.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a conflict graph from a JSON file or take a prebuilt one
//  2. Simplify: Contract sub-K4 patterns into groups
//  3. Render: Produce the partition as JSON, DOT, SVG or PNG
//
// Simplification results and artifacts are cached by content hash, so a
// repeated run over the same graph skips straight to the cached output.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "layer.json",
//	    Formats: []string{"json", "svg"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stitchgraph/pkg/cache"
	"github.com/matzehuels/stitchgraph/pkg/conflict"
	errs "github.com/matzehuels/stitchgraph/pkg/errors"
	"github.com/matzehuels/stitchgraph/pkg/simplify"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultColors is the color count the pipeline simplifies for.
const DefaultColors = simplify.DefaultColors

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// DefaultFormats is used when no format is requested.
var DefaultFormats = []string{FormatJSON}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input: exactly one of Path or Graph.
	Path  string          `json:"-"`
	Graph *conflict.Graph `json:"-"`

	// Simplify options
	Colors       int  `json:"colors,omitempty"`
	SkipSimplify bool `json:"skip_simplify,omitempty"` // Render the input grouping as-is
	Refresh      bool `json:"refresh,omitempty"`       // Ignore cached partitions

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the loaded conflict graph.
	Graph *conflict.Graph

	// GraphHash is the content hash of the graph.
	GraphHash string

	// Partition is the grouping after simplification.
	Partition simplify.Partition

	// Simplify holds the merge statistics. Passes is zero on a cache hit.
	Simplify simplify.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Vertices     int
	Conflicts    int
	Stitches     int
	Groups       int
	LoadTime     time.Duration
	SimplifyTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PartitionHit bool // Whether the partition came from cache
	RenderHit    bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, dot, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates, and validates each entry.
func ParseFormats(s string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForSimplify(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that exactly one input is set.
func (o *Options) ValidateForLoad() error {
	switch {
	case o.Path == "" && o.Graph == nil:
		return errs.New(errs.ErrCodeInvalidInput, "path or graph is required")
	case o.Path != "" && o.Graph != nil:
		return errs.New(errs.ErrCodeInvalidInput, "path and graph are mutually exclusive")
	}
	o.setLogger()
	return nil
}

// ValidateForSimplify sets the color default and rejects unsupported counts.
func (o *Options) ValidateForSimplify() error {
	if o.Colors == 0 {
		o.Colors = DefaultColors
	}
	if o.Colors != DefaultColors {
		return errs.New(errs.ErrCodeUnsupported, "sub-K4 simplification supports %d colors, got %d", DefaultColors, o.Colors)
	}
	o.setLogger()
	return nil
}

// ValidateForRender sets the format default and validates the formats.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = DefaultFormats
	}
	o.setLogger()
	return ValidateFormats(o.Formats)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// PartitionKeyOpts returns cache key options for the simplification stage.
func (o *Options) PartitionKeyOpts() cache.PartitionKeyOpts {
	return cache.PartitionKeyOpts{Colors: o.Colors}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format, Detailed: o.Detailed}
}
