package meta

import (
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/plotline/pkg/chart"
	"github.com/matzehuels/plotline/pkg/chart/ticks"
)

func lineDef() *chart.Definition {
	d := &chart.Definition{
		Series: []chart.Series{
			{Name: "a", Kind: chart.KindLine, Points: []chart.Point{{X: 0, Y: 0}, {X: 1, Y: 10}}},
		},
	}
	d.X.Length = 100
	d.Y.Length = 100
	return d
}

func TestAssembleEndToEnd(t *testing.T) {
	m := Assemble(lineDef())

	if m.Y.Lowest != 0 || m.Y.Highest != 10 || m.Y.Range != 10 {
		t.Errorf("y scale = %+v, want [0, 10] range 10", m.Y)
	}
	if m.X.Lowest != 0 || m.X.Highest != 1 {
		t.Errorf("x scale = %+v, want [0, 1]", m.X)
	}

	// Top-right of a bottom-left-origin plot.
	px := m.ToCanvas(chart.Point{X: 1, Y: 10})
	if px.X != 100 || px.Y != 0 {
		t.Errorf("ToCanvas(1, 10) = %+v, want (100, 0)", px)
	}
}

func TestAssembleStackWidensYScale(t *testing.T) {
	d := &chart.Definition{
		Series: []chart.Series{
			{Points: []chart.Point{{X: 0, Y: 1}}},
		},
		Stacks: []chart.Stack{
			{Layers: []chart.Series{
				{Points: []chart.Point{{X: 0, Y: 2}, {X: 1, Y: 3}}},
				{Points: []chart.Point{{X: 0, Y: 1}, {X: 1, Y: 4}}},
			}},
		},
	}
	d.X.Length = 100
	d.Y.Length = 100

	m := Assemble(d)

	// The stacked total at x=1 is 7, beyond any single layer value.
	if m.Y.Highest != 7 {
		t.Errorf("y highest = %v, want 7 (stacked total visible)", m.Y.Highest)
	}
	if len(m.Piles) != 1 {
		t.Fatalf("pile count = %d", len(m.Piles))
	}
}

func TestAssembleTicksPerOrientation(t *testing.T) {
	d := lineDef()
	d.Axes = []chart.Axis{
		{Orientation: chart.OrientationX},
		{Orientation: chart.OrientationY, Ticks: ticksDelta(2)},
	}
	m := Assemble(d)

	if len(m.Ticks) == 0 {
		t.Fatal("x ticks missing")
	}
	// y: delta 2 over [0, 10] gives 0 2 4 6 8 10.
	if len(m.OppositeTicks) != 6 {
		t.Errorf("y tick count = %d, want 6", len(m.OppositeTicks))
	}
}

func TestAssembleCrossings(t *testing.T) {
	five := 5.0
	d := lineDef()
	d.Axes = []chart.Axis{
		{Orientation: chart.OrientationX},             // default: crosses y=0
		{Orientation: chart.OrientationY, Cross: &five}, // crosses x=5... but x domain is [0,1]
	}
	m := Assemble(d)

	if len(m.AxisCrossings) != 1 || len(m.OppositeAxisCrossings) != 1 {
		t.Fatalf("crossings = %v / %v", m.AxisCrossings, m.OppositeAxisCrossings)
	}
	// X axis at y=0 sits at the bottom edge of a 100px plot.
	if m.AxisCrossings[0] != 100 {
		t.Errorf("x axis crossing = %v, want 100", m.AxisCrossings[0])
	}
	// Y axis at x=5 on the [0,1] scale: 5*100 = 500px, unclamped.
	if m.OppositeAxisCrossings[0] != 500 {
		t.Errorf("y axis crossing = %v, want 500", m.OppositeAxisCrossings[0])
	}
}

func TestHintAtPixel(t *testing.T) {
	d := &chart.Definition{
		Series: []chart.Series{
			{Name: "a", Points: []chart.Point{{X: 0, Y: 1}, {X: 5, Y: 2}, {X: 10, Y: 3}}},
			{Name: "b", Points: []chart.Point{{X: 0, Y: 9}}},
		},
	}
	d.X.Length = 100
	d.Y.Length = 100
	m := Assemble(d)

	// Pixel 55 is data x=5.5, nearest plotted x is 5.
	info := m.HintAtPixel(55)
	if info.XValue != 5 {
		t.Errorf("XValue = %v, want 5", info.XValue)
	}
	if !info.YValues[0].Present || info.YValues[0].Value != 2 {
		t.Errorf("series a hint = %+v", info.YValues[0])
	}
	if info.YValues[1].Present {
		t.Error("series b has no point at x=5")
	}
}

func TestFlipInvolution(t *testing.T) {
	d := lineDef()
	d.Axes = []chart.Axis{
		{Orientation: chart.OrientationX},
		{Orientation: chart.OrientationY},
	}
	m := Assemble(d)
	f := m.Flip()

	if f.X != m.Y || f.Y != m.X {
		t.Error("Flip must swap the scales")
	}
	if !reflect.DeepEqual(f.Ticks, m.OppositeTicks) {
		t.Error("Flip must swap the tick lists")
	}
	if !reflect.DeepEqual(f.AxisCrossings, m.OppositeAxisCrossings) {
		t.Error("Flip must swap the crossing lists")
	}

	back := f.Flip()
	if !reflect.DeepEqual(back, m) {
		t.Error("Flip(Flip(m)) must equal m")
	}
}

func TestFlippedTransformSymmetry(t *testing.T) {
	m := Assemble(lineDef())
	f := m.Flip()

	p := chart.Point{X: 0.5, Y: 5}
	got := f.ToCanvas(p)
	want := m.ToCanvasOpposite(p)
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Errorf("flipped ToCanvas = %+v, want %+v", got, want)
	}
}

func TestSnapshot(t *testing.T) {
	m := Assemble(lineDef())
	s := m.Snapshot()

	if s.Scale.X != m.X || s.Scale.Y != m.Y {
		t.Error("snapshot scales differ")
	}
	if len(s.Hints) != len(m.XValues()) {
		t.Errorf("hint table has %d entries, want %d", len(s.Hints), len(m.XValues()))
	}

	data, err := MarshalSnapshot(s)
	if err != nil {
		t.Fatalf("MarshalSnapshot: %v", err)
	}
	if len(data) == 0 {
		t.Error("empty snapshot JSON")
	}
}

func TestAssembleEmptyDefinition(t *testing.T) {
	d := &chart.Definition{}
	d.X.Length = 100
	d.Y.Length = 100

	m := Assemble(d)

	// Empty data defaults to a [0, 1] extent by policy; everything
	// stays finite.
	if m.X.Range <= 0 || m.Y.Range <= 0 {
		t.Errorf("degenerate ranges: %+v / %+v", m.X, m.Y)
	}
	p := m.ToCanvas(chart.Point{X: 0, Y: 0})
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		t.Error("empty chart produced NaN pixels")
	}
}

// ticksDelta builds a delta strategy inline.
func ticksDelta(d float64) ticks.Strategy {
	return ticks.Strategy{Delta: d}
}
