// Package cache provides content-addressed caching for layout and
// render artifacts.
//
// Recomputing a layout snapshot is the dominant per-pass cost for
// charts with many points, and it is pure: identical chart definitions
// and options always yield identical output. The pipeline therefore
// skips whole passes by keying cache entries on a hash of the inputs.
//
// Three backends implement the Cache interface:
//   - FileCache: per-user cache directory for CLI usage
//   - RedisCache: shared cache for the preview server
//   - NullCache: caching disabled (tests, --refresh)
package cache

import (
	"context"
	"time"
)

// Entry lifetimes per stage. Layout snapshots are pure functions of the
// chart document so they keep longer than rendered artifacts, whose
// formats evolve with the renderer.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is the storage interface for memoized pipeline stages.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was found; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. A zero ttl means no
	// expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// =============================================================================
// Keyer - Cache Key Construction
// =============================================================================

// LayoutKeyOpts are the options that change a layout result.
type LayoutKeyOpts struct {
	Width  float64
	Height float64
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string
	Hover      bool
	Background string
}

// Keyer generates cache keys for the pipeline stages. Keys must be
// deterministic: equal inputs produce equal keys.
type Keyer interface {
	// LayoutKey keys a layout snapshot by chart content hash and the
	// layout-affecting options.
	LayoutKey(chartHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by layout hash and the
	// render-affecting options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (k *DefaultKeyer) LayoutKey(chartHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", chartHash, opts.Width, opts.Height)
}

// ArtifactKey implements Keyer.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts.Format, opts.Hover, opts.Background)
}
