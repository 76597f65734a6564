package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stitchgraph/pkg/cache"
	"github.com/matzehuels/stitchgraph/pkg/conflict"
	"github.com/matzehuels/stitchgraph/pkg/io"
	"github.com/matzehuels/stitchgraph/pkg/observability"
	"github.com/matzehuels/stitchgraph/pkg/simplify"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so caching behaves the same everywhere.
//
// The Runner holds no per-run state. Multiple goroutines can safely use
// the same Runner with different options; each run owns its registry.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → simplify → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	g, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Vertices = g.Order()
	result.Stats.Conflicts, result.Stats.Stitches = g.Counts()

	graphData, err := io.MarshalGraph(g)
	if err != nil {
		return nil, err
	}
	result.GraphHash = cache.Hash(graphData)

	r.Logger.Info("loaded graph",
		"vertices", g.Order(),
		"conflicts", result.Stats.Conflicts,
		"stitches", result.Stats.Stitches,
		"duration", result.Stats.LoadTime)

	// Stage 2: Simplify
	simplifyStart := time.Now()
	s, res, hit, err := r.SimplifyWithCacheInfo(ctx, g, result.GraphHash, opts)
	if err != nil {
		return nil, fmt.Errorf("simplify: %w", err)
	}
	result.Partition = s.Partition()
	result.Simplify = res
	result.Stats.Groups = res.Groups
	result.Stats.SimplifyTime = time.Since(simplifyStart)
	result.CacheInfo.PartitionHit = hit

	r.Logger.Info("simplified graph",
		"groups", res.Groups,
		"merges", res.Merges,
		"cached", hit,
		"duration", result.Stats.SimplifyTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, s, g, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load returns opts.Graph or reads the graph at opts.Path.
func (r *Runner) Load(ctx context.Context, opts Options) (*conflict.Graph, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	if opts.Graph != nil {
		return opts.Graph, nil
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Path)
	start := time.Now()
	g, err := io.ImportGraph(opts.Path)
	if err != nil {
		hooks.OnLoadComplete(ctx, opts.Path, 0, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnLoadComplete(ctx, opts.Path, g.Order(), g.Size(), time.Since(start), nil)
	return g, nil
}

// SimplifyWithCacheInfo contracts g, reusing a cached partition when one
// exists for graphHash. It returns a simplifier positioned on the final
// partition, the merge statistics and whether the cache was hit.
func (r *Runner) SimplifyWithCacheInfo(ctx context.Context, g *conflict.Graph, graphHash string, opts Options) (*simplify.Simplifier, simplify.Result, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForSimplify(); err != nil {
		return nil, simplify.Result{}, false, err
	}

	simplifyOpts := []simplify.Option{
		simplify.WithColors(opts.Colors),
		simplify.WithLogger(opts.Logger),
	}

	if opts.SkipSimplify {
		s, err := simplify.New(g, simplifyOpts...)
		if err != nil {
			return nil, simplify.Result{}, false, err
		}
		return s, simplify.Result{Vertices: g.Order(), Groups: g.Order()}, false, nil
	}

	cacheKey := r.Keyer.PartitionKey(graphHash, opts.PartitionKeyOpts())
	if !opts.Refresh {
		if s, res, ok := r.cachedPartition(ctx, g, cacheKey, simplifyOpts); ok {
			observability.Cache().OnCacheHit(ctx, "partition")
			return s, res, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "partition")
	}

	hooks := observability.Pipeline()
	hooks.OnSimplifyStart(ctx, g.Order())
	start := time.Now()

	s, err := simplify.New(g, simplifyOpts...)
	if err != nil {
		hooks.OnSimplifyComplete(ctx, 0, g.Order(), time.Since(start), err)
		return nil, simplify.Result{}, false, err
	}
	res, err := s.MergeSubK4()
	hooks.OnSimplifyComplete(ctx, res.Merges, res.Groups, time.Since(start), err)
	if err != nil {
		return nil, res, false, err
	}

	var buf bytes.Buffer
	if err := io.WritePartition(s.Partition(), g, &buf); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, buf.Bytes(), cache.TTLPartition); err != nil {
			r.Logger.Warn("cache write failed", "key", cacheKey, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "partition", buf.Len())
		}
	}
	return s, res, false, nil
}

// cachedPartition restores a simplifier from a cached partition. Entries
// that fail to decode or no longer match g are treated as misses.
func (r *Runner) cachedPartition(ctx context.Context, g *conflict.Graph, key string, opts []simplify.Option) (*simplify.Simplifier, simplify.Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		return nil, simplify.Result{}, false
	}
	p, err := io.ReadPartition(bytes.NewReader(data), g)
	if err != nil {
		r.Logger.Debug("discarding cached partition", "key", key, "error", err)
		return nil, simplify.Result{}, false
	}
	reg, err := p.Registry()
	if err != nil {
		return nil, simplify.Result{}, false
	}
	s, err := simplify.New(g, append(opts, simplify.WithRegistry(reg))...)
	if err != nil {
		return nil, simplify.Result{}, false
	}
	groups := reg.Groups()
	return s, simplify.Result{Vertices: g.Order(), Groups: groups, Merges: g.Order() - groups}, true
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s *simplify.Simplifier, g *conflict.Graph, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	var partData bytes.Buffer
	if err := io.WritePartition(s.Partition(), g, &partData); err != nil {
		return nil, false, fmt.Errorf("serialize partition for cache key: %w", err)
	}
	graphData, err := io.MarshalGraph(g)
	if err != nil {
		return nil, false, err
	}
	// Labels and edges both show up in the drawing, so the key covers both.
	keyHash := cache.Hash(append(graphData, partData.Bytes()...))

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(keyHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, s, g, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(keyHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
