package pipeline

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/plotline/pkg/cache"
	"github.com/matzehuels/plotline/pkg/chart"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "json"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsValidateForDecode(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateForDecode(); err == nil {
		t.Error("Missing input and definition should fail")
	}

	opts = Options{Input: "chart.toml"}
	if err := opts.ValidateForDecode(); err != nil {
		t.Errorf("Input path should pass: %v", err)
	}

	opts = Options{Definition: &chart.Definition{}}
	if err := opts.ValidateForDecode(); err != nil {
		t.Errorf("Inline definition should pass: %v", err)
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.Width != DefaultWidth {
		t.Errorf("Width should be %f, got %f", DefaultWidth, opts.Width)
	}
	if opts.Height != DefaultHeight {
		t.Errorf("Height should be %f, got %f", DefaultHeight, opts.Height)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Definition: &chart.Definition{}}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalWidth := opts.Width
	originalFormats := len(opts.Formats)

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.Width != originalWidth {
		t.Error("Width changed on second call")
	}
	if len(opts.Formats) != originalFormats {
		t.Error("Formats changed on second call")
	}
}

func TestOptionsValidateAndSetDefaultsBadFormat(t *testing.T) {
	opts := Options{
		Definition: &chart.Definition{},
		Formats:    []string{"png"},
	}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("Unsupported format should fail")
	}
}

// =============================================================================
// Runner Tests
// =============================================================================

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func testDefinition() *chart.Definition {
	return &chart.Definition{
		Series: []chart.Series{
			{Name: "s", Points: []chart.Point{{X: 0, Y: 0}, {X: 1, Y: 10}}},
		},
		Axes: []chart.Axis{
			{Orientation: chart.OrientationX},
			{Orientation: chart.OrientationY},
		},
	}
}

func TestRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, testLogger())
	defer r.Close()

	if r.Cache == nil {
		t.Error("nil cache should default to NullCache")
	}
	if r.Keyer == nil {
		t.Error("nil keyer should default to DefaultKeyer")
	}
}

func TestRunnerExecute(t *testing.T) {
	r := NewRunner(nil, nil, testLogger())
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Definition: testDefinition(),
		Formats:    []string{FormatSVG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.PassID == "" {
		t.Error("result should carry a pass ID")
	}
	if result.ChartHash == "" {
		t.Error("result should carry a chart hash")
	}
	if result.Stats.SeriesCount != 1 {
		t.Errorf("SeriesCount = %d, want 1", result.Stats.SeriesCount)
	}
	if result.Stats.PointCount != 2 {
		t.Errorf("PointCount = %d, want 2", result.Stats.PointCount)
	}

	svgOut, ok := result.Artifacts[FormatSVG]
	if !ok || !strings.HasPrefix(string(svgOut), "<svg") {
		t.Error("svg artifact missing or malformed")
	}
	jsonOut, ok := result.Artifacts[FormatJSON]
	if !ok || !strings.Contains(string(jsonOut), `"scale"`) {
		t.Error("json artifact missing or malformed")
	}

	// Defaults flowed into the definition.
	if result.Definition.X.Length != DefaultWidth {
		t.Errorf("X.Length = %v, want %v", result.Definition.X.Length, DefaultWidth)
	}
}

func TestRunnerExecuteCaching(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}
	r := NewRunner(c, nil, testLogger())
	defer r.Close()

	opts := Options{Definition: testDefinition(), Formats: []string{FormatSVG}}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute() error: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should not hit the cache")
	}

	second, err := r.Execute(context.Background(), Options{
		Definition: testDefinition(),
		Formats:    []string{FormatSVG},
	})
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run should hit the layout cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached artifact should match the rendered one")
	}

	// Refresh bypasses the cache.
	third, err := r.Execute(context.Background(), Options{
		Definition: testDefinition(),
		Formats:    []string{FormatSVG},
		Refresh:    true,
	})
	if err != nil {
		t.Fatalf("third Execute() error: %v", err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Error("refresh run should not hit the cache")
	}
}

func TestRunnerExecuteInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, testLogger())
	defer r.Close()

	if _, err := r.Execute(context.Background(), Options{}); err == nil {
		t.Error("empty options should fail")
	}
}

func TestRunnerDecodeValidates(t *testing.T) {
	r := NewRunner(nil, nil, testLogger())
	defer r.Close()

	def := testDefinition()
	def.Series[0].Kind = "pie"
	if _, err := r.Decode(Options{Definition: def}); err == nil {
		t.Error("unknown series kind should fail validation")
	}
}

func TestRunnerRender(t *testing.T) {
	r := NewRunner(nil, nil, testLogger())
	defer r.Close()

	def, err := r.Decode(Options{Definition: testDefinition()})
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	m := r.Layout(def)

	artifacts := r.Render(def, m, Options{Formats: []string{FormatSVG}, Hover: true})
	out := string(artifacts[FormatSVG])
	if !strings.Contains(out, "hint-data") {
		t.Error("hover option should reach the renderer")
	}
}
