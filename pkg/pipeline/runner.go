package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/plotline/pkg/cache"
	"github.com/matzehuels/plotline/pkg/chart"
	"github.com/matzehuels/plotline/pkg/chart/meta"
	"github.com/matzehuels/plotline/pkg/render/svg"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
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

// Execute runs the complete decode → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		PassID:    uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}
	logger := r.Logger.With("pass", result.PassID)

	// Stage 1: Decode
	decodeStart := time.Now()
	def, err := r.Decode(opts)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	result.Definition = def
	result.Stats.DecodeTime = time.Since(decodeStart)

	series := def.PlottedSeries()
	result.Stats.SeriesCount = len(series)
	for _, s := range series {
		result.Stats.PointCount += len(s.Points)
	}

	// Compute chart hash for cache keys and responses
	if data, err := chart.Marshal(def); err == nil {
		result.ChartHash = cache.Hash(data)
	}

	logger.Info("decoded chart",
		"series", result.Stats.SeriesCount,
		"points", result.Stats.PointCount,
		"duration", result.Stats.DecodeTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	snapshot, m, layoutHit, err := r.layoutWithCacheInfo(ctx, def, result.ChartHash, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Snapshot = snapshot
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	logger.Info("computed layout",
		"ticks", len(snapshot.Ticks),
		"piles", len(snapshot.Piles),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.renderWithCacheInfo(ctx, def, m, snapshot, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Decode reads and validates the chart definition, applying the
// configured plot dimensions to unset scale lengths.
func (r *Runner) Decode(opts Options) (*chart.Definition, error) {
	if err := opts.ValidateForDecode(); err != nil {
		return nil, err
	}
	opts.SetLayoutDefaults()

	def := opts.Definition
	if def == nil {
		var err error
		def, err = chart.ReadFile(opts.Input)
		if err != nil {
			return nil, err
		}
	}

	def.ApplyDefaults(opts.Width, opts.Height)
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

// Layout computes the layout for a decoded definition, bypassing the
// cache. Assembly is pure and synchronous; it never fails.
func (r *Runner) Layout(def *chart.Definition) *meta.Meta {
	return meta.Assemble(def)
}

// layoutWithCacheInfo resolves the layout snapshot with caching. The
// returned Meta is nil on a cache hit; the render stage reassembles it
// only when a format actually needs the live transforms.
func (r *Runner) layoutWithCacheInfo(ctx context.Context, def *chart.Definition, chartHash string, opts Options) (meta.Snapshot, *meta.Meta, bool, error) {
	cacheKey := r.Keyer.LayoutKey(chartHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached meta.Snapshot
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
	}

	m := meta.Assemble(def)
	snapshot := m.Snapshot()

	if data, err := meta.MarshalSnapshot(snapshot); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
	}

	return snapshot, m, false, nil // Cache miss
}

// renderWithCacheInfo generates artifacts with caching and returns
// cache hit info.
func (r *Runner) renderWithCacheInfo(ctx context.Context, def *chart.Definition, m *meta.Meta, snapshot meta.Snapshot, opts Options) (map[string][]byte, bool, error) {
	layoutData, err := meta.MarshalSnapshot(snapshot)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil // All artifacts from cache
		}
	}

	// Render all formats
	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			rendered[format] = layoutData
		case FormatSVG:
			if m == nil {
				m = meta.Assemble(def)
			}
			rendered[format] = svg.Render(def, m, svgOptions(opts)...)
		}
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil // Cache miss
}

// Render generates artifacts from a decoded definition without touching
// the cache.
func (r *Runner) Render(def *chart.Definition, m *meta.Meta, opts Options) map[string][]byte {
	opts.SetRenderDefaults()

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			if data, err := meta.MarshalSnapshot(m.Snapshot()); err == nil {
				artifacts[format] = data
			}
		case FormatSVG:
			artifacts[format] = svg.Render(def, m, svgOptions(opts)...)
		}
	}
	return artifacts
}

func svgOptions(opts Options) []svg.Option {
	var out []svg.Option
	if opts.Hover {
		out = append(out, svg.WithHover())
	}
	if opts.Background != "" {
		out = append(out, svg.WithBackground(opts.Background))
	}
	return out
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
