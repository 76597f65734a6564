package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stitchgraph/pkg/observability"
)

// logHooks reports pipeline and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.PipelineHooks = logHooks{}
	_ observability.CacheHooks    = logHooks{}
)

func (h logHooks) OnLoadStart(_ context.Context, source string) {
	h.logger.Debug("loading graph", "source", source)
}

func (h logHooks) OnLoadComplete(_ context.Context, source string, vertices, edges int, dur time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "source", source, "error", err)
		return
	}
	h.logger.Debug("loaded", "source", source, "vertices", vertices, "edges", edges, "duration", dur)
}

func (h logHooks) OnSimplifyStart(_ context.Context, vertices int) {
	h.logger.Debug("searching sub-K4 patterns", "vertices", vertices)
}

func (h logHooks) OnSimplifyComplete(_ context.Context, merges, groups int, dur time.Duration, err error) {
	if err != nil {
		h.logger.Debug("simplify failed", "error", err)
		return
	}
	h.logger.Debug("search finished", "merges", merges, "groups", groups, "duration", dur)
}

func (h logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("rendering", "formats", formats)
}

func (h logHooks) OnRenderComplete(_ context.Context, formats []string, dur time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "error", err)
		return
	}
	h.logger.Debug("rendered", "formats", formats, "duration", dur)
}

func (h logHooks) OnCacheHit(_ context.Context, kind string) {
	h.logger.Debug("cache hit", "kind", kind)
}

func (h logHooks) OnCacheMiss(_ context.Context, kind string) {
	h.logger.Debug("cache miss", "kind", kind)
}

func (h logHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.logger.Debug("cache set", "kind", kind, "bytes", size)
}
