package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/matzehuels/stitchgraph/pkg/cache"
	errs "github.com/matzehuels/stitchgraph/pkg/errors"
)

const diamondJSON = `{
  "vertices": [{"id": "a"}, {"id": "b"}, {"id": "c"}, {"id": "d"}],
  "edges": [
    {"from": "a", "to": "b"}, {"from": "a", "to": "c"}, {"from": "b", "to": "c"},
    {"from": "b", "to": "d"}, {"from": "c", "to": "d"}, {"from": "a", "to": "d", "stitch": true}
  ]
}`

// isolate points config and cache lookups at temp dirs and returns a graph
// file inside a fresh work dir.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "layer.json")
	if err := os.WriteFile(path, []byte(diamondJSON), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestSimplifyCommand(t *testing.T) {
	input := isolate(t)

	if err := runCLI(t, "simplify", input, "--no-cache"); err != nil {
		t.Fatalf("simplify error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(filepath.Dir(input), "layer.groups.json"))
	if err != nil {
		t.Fatalf("partition not written: %v", err)
	}
	var doc struct {
		Groups []struct {
			Root    string   `json:"root"`
			Members []string `json:"members"`
		} `json:"groups"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Groups) != 3 {
		t.Fatalf("got %d groups, want 3: %s", len(doc.Groups), data)
	}
	if g := doc.Groups[0]; g.Root != "a" || strings.Join(g.Members, ",") != "a,d" {
		t.Errorf("first group = %+v, want a:[a,d]", g)
	}
}

func TestSimplifyCommandOutputFlag(t *testing.T) {
	input := isolate(t)
	out := filepath.Join(t.TempDir(), "result")

	if err := runCLI(t, "simplify", input, "-f", "json,dot", "-o", out, "--detailed"); err != nil {
		t.Fatalf("simplify error: %v", err)
	}
	dot, err := os.ReadFile(out + ".dot")
	if err != nil {
		t.Fatalf("dot not written: %v", err)
	}
	if !strings.Contains(string(dot), `label="a:(a,d)"`) {
		t.Errorf("dot output missing merged label:\n%s", dot)
	}
	if _, err := os.Stat(out + ".json"); err != nil {
		t.Errorf("json not written: %v", err)
	}
}

func TestSimplifyCommandErrors(t *testing.T) {
	input := isolate(t)

	tests := []struct {
		name string
		args []string
		code errs.Code
	}{
		{"four colors", []string{"simplify", input, "--colors", "4", "--no-cache"}, errs.ErrCodeUnsupported},
		{"bad format", []string{"simplify", input, "-f", "pdf"}, errs.ErrCodeInvalidFormat},
		{"missing file", []string{"simplify", input + ".missing", "--no-cache"}, errs.ErrCodeFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runCLI(t, tt.args...)
			if !errs.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestRenderCommand(t *testing.T) {
	input := isolate(t)

	if err := runCLI(t, "render", input, "-f", "dot", "--no-cache"); err != nil {
		t.Fatalf("render error: %v", err)
	}
	dot, err := os.ReadFile(filepath.Join(filepath.Dir(input), "layer.graph.dot"))
	if err != nil {
		t.Fatalf("dot not written: %v", err)
	}
	if !strings.Contains(string(dot), `"0" -- "3" [color=black, style=dashed]`) {
		t.Errorf("unmerged drawing should show the a-d stitch as dashed:\n%s", dot)
	}
}

func TestCacheClearCommand(t *testing.T) {
	input := isolate(t)
	dir := t.TempDir()
	cfg := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfg, []byte("[cache]\ndir = "+strconv.Quote(dir)+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := runCLI(t, "--config", cfg, "simplify", input); err != nil {
		t.Fatalf("simplify error: %v", err)
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := fc.Clear(context.Background()); n == 0 {
		t.Fatal("simplify should have populated the configured cache dir")
	}

	if err := runCLI(t, "--config", cfg, "simplify", input); err != nil {
		t.Fatalf("simplify error: %v", err)
	}
	if err := runCLI(t, "--config", cfg, "cache", "clear"); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if n, _ := fc.Clear(context.Background()); n != 0 {
		t.Errorf("%d entries left after cache clear", n)
	}
}

func TestNewCache(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     CacheConfig
		noCache bool
		check   func(cache.Cache) bool
	}{
		{"no-cache flag", CacheConfig{Backend: backendFile}, true, isNull},
		{"none backend", CacheConfig{Backend: backendNone}, false, isNull},
		{"file backend", CacheConfig{Backend: backendFile, Dir: t.TempDir()}, false, func(c cache.Cache) bool {
			_, ok := c.(*cache.FileCache)
			return ok
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := newCache(ctx, tt.cfg, tt.noCache)
			if err != nil {
				t.Fatalf("newCache() error: %v", err)
			}
			defer c.Close()
			if !tt.check(c) {
				t.Errorf("newCache() = %T", c)
			}
		})
	}

	if _, err := newCache(ctx, CacheConfig{Backend: "memcached"}, false); !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("unknown backend error = %v, want INVALID_CONFIG", err)
	}
}

func isNull(c cache.Cache) bool {
	_, ok := c.(*cache.NullCache)
	return ok
}

func TestNewKeyer(t *testing.T) {
	opts := cache.PartitionKeyOpts{Colors: 3}
	plain := newKeyer(CacheConfig{}).PartitionKey("h", opts)
	scoped := newKeyer(CacheConfig{Namespace: "ci"}).PartitionKey("h", opts)

	if scoped != "ci:"+plain {
		t.Errorf("scoped key = %q, want %q", scoped, "ci:"+plain)
	}
}
