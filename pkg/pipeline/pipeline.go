// Package pipeline provides the core chart rendering pipeline for Plotline.
//
// This package implements the complete decode → layout → render pipeline
// that can be used by CLI and server components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decode: Read and validate the chart definition (TOML or JSON)
//  2. Layout: Resolve scales, ticks, stacks, and crossings into a snapshot
//  3. Render: Generate output in various formats (SVG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "chart.toml",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Decode only
//	def, err := runner.Decode(opts)
//
//	// Layout with an existing definition
//	m := runner.Layout(def)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/plotline/pkg/cache"
	"github.com/matzehuels/plotline/pkg/chart"
	"github.com/matzehuels/plotline/pkg/chart/meta"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default plot width in pixels, used when the
	// chart document leaves the x scale length unset.
	DefaultWidth = 800.0

	// DefaultHeight is the default plot height in pixels.
	DefaultHeight = 600.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the rendering pipeline.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Decode options. Exactly one of Input or Definition is required;
	// a non-nil Definition takes precedence.
	Input      string            `json:"input,omitempty"`
	Definition *chart.Definition `json:"definition,omitempty"`

	// Layout options
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Hover      bool     `json:"hover,omitempty"`
	Background string   `json:"background,omitempty"`

	// Refresh bypasses the cache for this run.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// PassID uniquely identifies this render pass, for log correlation.
	PassID string

	// Definition is the decoded chart document with defaults applied.
	Definition *chart.Definition

	// ChartHash is the content hash of the definition.
	ChartHash string

	// Snapshot is the serializable layout.
	Snapshot meta.Snapshot

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SeriesCount int
	PointCount  int
	DecodeTime  time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout snapshot came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, json)", format)
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

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent - calling it multiple
// times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForDecode(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForDecode checks required fields for decoding.
func (o *Options) ValidateForDecode() error {
	if o.Input == "" && o.Definition == nil {
		return fmt.Errorf("input path or definition is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutKeyOpts returns cache key options for the layout stage.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:  o.Width,
		Height: o.Height,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Hover:      o.Hover,
		Background: o.Background,
	}
}
