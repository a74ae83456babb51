package chart

import (
	"strings"
	"testing"

	"github.com/matzehuels/plotline/pkg/errors"
)

const sampleTOML = `
title = "Latency"

[x]
length = 800
margin = { lower = 40, upper = 10 }

[y]
length = 600
padding = { lower = 10, upper = 10 }
floor = 0.0

[[series]]
name = "p50"
kind = "line"
points = [[0, 12], [1, 14], [2, 11]]

[[series]]
name = "p99"
points = [{ x = 0, y = 40 }, { x = 1, y = 55 }]

[[stack]]
name = "traffic"

[[stack.layers]]
name = "read"
points = [[0, 2], [1, 3]]

[[stack.layers]]
name = "write"
points = [[0, 1], [1, 4]]

[[axis]]
orientation = "x"

[[axis]]
orientation = "y"
ticks = { delta = 10.0 }
cross = 0.0

[[grid]]
orientation = "y"
`

func TestDecodeTOML(t *testing.T) {
	d, err := DecodeTOML(strings.NewReader(sampleTOML))
	if err != nil {
		t.Fatalf("DecodeTOML: %v", err)
	}

	if d.Title != "Latency" {
		t.Errorf("Title = %q", d.Title)
	}
	if d.X.Length != 800 || d.Y.Length != 600 {
		t.Errorf("lengths = %v, %v", d.X.Length, d.Y.Length)
	}
	if d.X.Margin.Lower != 40 {
		t.Errorf("x margin lower = %v, want 40", d.X.Margin.Lower)
	}
	if d.Y.Floor == nil || *d.Y.Floor != 0 {
		t.Error("y floor should decode to 0")
	}

	if len(d.Series) != 2 {
		t.Fatalf("series count = %d, want 2", len(d.Series))
	}
	// Array point form.
	if p := d.Series[0].Points[1]; p.X != 1 || p.Y != 14 {
		t.Errorf("series[0].points[1] = %+v", p)
	}
	// Table point form.
	if p := d.Series[1].Points[1]; p.X != 1 || p.Y != 55 {
		t.Errorf("series[1].points[1] = %+v", p)
	}

	if len(d.Stacks) != 1 || len(d.Stacks[0].Layers) != 2 {
		t.Fatalf("stacks = %+v", d.Stacks)
	}
	if len(d.Axes) != 2 {
		t.Fatalf("axes count = %d, want 2", len(d.Axes))
	}
	if d.Axes[1].Ticks.Delta != 10 {
		t.Errorf("y axis delta = %v, want 10", d.Axes[1].Ticks.Delta)
	}
	if d.Axes[1].Cross == nil || *d.Axes[1].Cross != 0 {
		t.Error("y axis cross should decode to 0")
	}
}

func TestDecodeJSON(t *testing.T) {
	doc := `{
		"x": {"length": 100},
		"y": {"length": 100},
		"series": [{"name": "a", "points": [{"x": 0, "y": 1}]}]
	}`
	d, err := DecodeJSON(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if len(d.Series) != 1 || d.Series[0].Points[0].Y != 1 {
		t.Errorf("unexpected decode result: %+v", d)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Definition)
		code errors.Code
	}{
		{"zero x length", func(d *Definition) { d.X.Length = 0 }, errors.ErrCodeInvalidScale},
		{"negative y length", func(d *Definition) { d.Y.Length = -5 }, errors.ErrCodeInvalidScale},
		{"bad kind", func(d *Definition) { d.Series = []Series{{Kind: "pie"}} }, errors.ErrCodeInvalidChart},
		{"empty stack", func(d *Definition) { d.Stacks = []Stack{{Name: "s"}} }, errors.ErrCodeInvalidChart},
		{"bad orientation", func(d *Definition) { d.Axes = []Axis{{Orientation: "z"}} }, errors.ErrCodeInvalidOrientation},
		{"negative delta", func(d *Definition) {
			d.Axes = []Axis{{Orientation: OrientationX}}
			d.Axes[0].Ticks.Delta = -1
		}, errors.ErrCodeInvalidTicks},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Definition{}
			d.X.Length = 100
			d.Y.Length = 100
			tt.mut(d)
			err := d.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %q, want %q", errors.GetCode(err), tt.code)
			}
		})
	}

	good := &Definition{}
	good.X.Length = 100
	good.Y.Length = 100
	if err := good.Validate(); err != nil {
		t.Errorf("valid definition rejected: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	d := &Definition{
		Series: []Series{{Name: "a"}},
		Stacks: []Stack{{Layers: []Series{{Name: "l"}}}},
	}
	d.ApplyDefaults(800, 600)

	if d.X.Length != 800 || d.Y.Length != 600 {
		t.Errorf("lengths = %v, %v", d.X.Length, d.Y.Length)
	}
	if d.Series[0].Kind != KindLine {
		t.Errorf("series kind = %q, want line", d.Series[0].Kind)
	}
	if d.Stacks[0].Layers[0].Kind != KindArea {
		t.Errorf("layer kind = %q, want area", d.Stacks[0].Layers[0].Kind)
	}

	// Explicit lengths survive.
	d2 := &Definition{}
	d2.X.Length = 200
	d2.ApplyDefaults(800, 600)
	if d2.X.Length != 200 {
		t.Errorf("explicit length overwritten: %v", d2.X.Length)
	}
}

func TestPlottedSeriesOrder(t *testing.T) {
	d := &Definition{
		Series: []Series{{Name: "a"}, {Name: "b"}},
		Stacks: []Stack{{Layers: []Series{{Name: "c"}, {Name: "d"}}}},
	}
	got := d.PlottedSeries()
	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("count = %d, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("series %d = %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestAxisFor(t *testing.T) {
	d := &Definition{Axes: []Axis{{Orientation: OrientationY}}}
	if a := d.AxisFor(OrientationY); a.Orientation != OrientationY {
		t.Error("declared axis not found")
	}
	// Missing axis falls back to a default with automatic ticks.
	a := d.AxisFor(OrientationX)
	if a.Orientation != OrientationX || a.Cross != nil {
		t.Errorf("default axis = %+v", a)
	}
}

func TestSeriesYAt(t *testing.T) {
	s := Series{Points: []Point{{X: 1, Y: 10}, {X: 3, Y: 7}}}
	if y, ok := s.YAt(3); !ok || y != 7 {
		t.Errorf("YAt(3) = %v, %v", y, ok)
	}
	// Exact match only; no interpolation at x=2.
	if _, ok := s.YAt(2); ok {
		t.Error("YAt(2) should report no data")
	}
}

func TestOrientationOpposite(t *testing.T) {
	if OrientationX.Opposite() != OrientationY || OrientationY.Opposite() != OrientationX {
		t.Error("Opposite is not an involution")
	}
}
