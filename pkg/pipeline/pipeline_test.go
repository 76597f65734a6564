package pipeline

import (
	"slices"
	"testing"

	"github.com/matzehuels/stitchgraph/pkg/conflict"
	errs "github.com/matzehuels/stitchgraph/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errs.Is(err, errs.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errs.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{"json", []string{"json"}, false},
		{"json, SVG,dot", []string{"json", "svg", "dot"}, false},
		{"svg,svg,,png", []string{"svg", "png"}, false},
		{"", nil, false},
		{"json,pdf", nil, true},
	}

	for _, tt := range tests {
		got, err := ParseFormats(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormats(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	g := conflict.WithOrder(2)
	tests := []struct {
		name string
		opts Options
		code errs.Code
	}{
		{"no input", Options{}, errs.ErrCodeInvalidInput},
		{"both inputs", Options{Path: "g.json", Graph: g}, errs.ErrCodeInvalidInput},
		{"four colors", Options{Graph: g, Colors: 4}, errs.ErrCodeUnsupported},
		{"bad format", Options{Graph: g, Formats: []string{"gif"}}, errs.ErrCodeInvalidFormat},
		{"graph", Options{Graph: g}, ""},
		{"path", Options{Path: "layers/m1.json", Formats: []string{"svg"}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("ValidateAndSetDefaults() = %v", err)
				}
				return
			}
			if !errs.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Graph: conflict.WithOrder(1)}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Colors != DefaultColors {
		t.Errorf("Colors should be %d, got %d", DefaultColors, opts.Colors)
	}
	if !slices.Equal(opts.Formats, DefaultFormats) {
		t.Errorf("Formats should be %v, got %v", DefaultFormats, opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Graph: conflict.WithOrder(1), Formats: []string{"dot"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	logger := opts.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if opts.Logger != logger || !slices.Equal(opts.Formats, []string{"dot"}) {
		t.Error("second call changed the options")
	}
}

func TestKeyOpts(t *testing.T) {
	opts := Options{Colors: 3, Detailed: true}
	if got := opts.PartitionKeyOpts(); got.Colors != 3 {
		t.Errorf("PartitionKeyOpts() = %+v", got)
	}
	if got := opts.ArtifactKeyOpts("svg"); got.Format != "svg" || !got.Detailed {
		t.Errorf("ArtifactKeyOpts() = %+v", got)
	}
}
