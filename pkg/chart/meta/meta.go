// Package meta assembles the per-render layout snapshot of a chart.
//
// Meta packages the resolved scales, coordinate transforms, tick lists,
// axis crossings, stack layouts, and hover lookup into one immutable
// value. It is rebuilt from scratch on every layout pass, owns no
// reference back to the chart definition's element list, and is cheap
// to discard; the pipeline memoizes whole passes by input hash instead
// of mutating a previous Meta.
//
// Y-oriented axes and grids reuse the x algorithms through Flip, which
// swaps the roles of the two scales, the two transform directions, and
// the two tick and crossing lists. Flip is an involution:
// m.Flip().Flip() equals m.
package meta

import (
	"encoding/json"

	"github.com/matzehuels/plotline/pkg/chart"
	"github.com/matzehuels/plotline/pkg/chart/pile"
	"github.com/matzehuels/plotline/pkg/chart/scale"
	"github.com/matzehuels/plotline/pkg/chart/ticks"
)

// Meta is the single per-render-pass layout snapshot.
type Meta struct {
	X scale.Scale
	Y scale.Scale

	Ticks                 []ticks.Tick // x axis
	OppositeTicks         []ticks.Tick // y axis
	AxisCrossings         []float64    // pixel offsets, one per x-oriented axis
	OppositeAxisCrossings []float64    // pixel offsets, one per y-oriented axis

	Piles []pile.Pile

	series  []chart.Series
	xValues []float64
}

// Assemble computes a fresh Meta from the definition. It never fails:
// degenerate inputs are resolved by the documented scale and tick
// policies.
func Assemble(def *chart.Definition) *Meta {
	piles := pile.Aggregate(def.Stacks)
	series := def.PlottedSeries()

	var xvals, yvals []float64
	for _, s := range series {
		xvals = append(xvals, s.XValues()...)
		yvals = append(yvals, s.YValues()...)
	}

	// Stack bounds widen the y extent only; x positions of stack layers
	// are already part of the plain value list.
	xs := scale.Compute(def.X.Config(), xvals, nil)
	ys := scale.Compute(def.Y.Config(), yvals, pile.CombinedBounds(piles))

	m := &Meta{
		X:             xs,
		Y:             ys,
		Ticks:         ticks.Generate(def.AxisFor(chart.OrientationX).Ticks, xs),
		OppositeTicks: ticks.Generate(def.AxisFor(chart.OrientationY).Ticks, ys),
		Piles:         piles,
		series:        series,
		xValues:       collectXValues(series),
	}

	for _, a := range def.Axes {
		cross := Crossing(a.Orientation, xs, ys, a.Cross)
		if a.Orientation == chart.OrientationY {
			m.OppositeAxisCrossings = append(m.OppositeAxisCrossings, cross)
		} else {
			m.AxisCrossings = append(m.AxisCrossings, cross)
		}
	}

	return m
}

// ToCanvas maps a data-space point to pixel space.
func (m *Meta) ToCanvas(p chart.Point) chart.Point {
	return ToCanvas(m.X, m.Y, p)
}

// ToCanvasOpposite maps with the scale roles swapped, for
// orientation-flipped elements.
func (m *Meta) ToCanvasOpposite(p chart.Point) chart.Point {
	return ToCanvasOpposite(m.X, m.Y, p)
}

// FromCanvas maps a pixel-space point back to data space.
func (m *Meta) FromCanvas(p chart.Point) chart.Point {
	return FromCanvas(m.X, m.Y, p)
}

// NearestX snaps a data-space x to the nearest plotted x value.
func (m *Meta) NearestX(x float64) float64 {
	return NearestX(m.xValues, x)
}

// HintAt returns the per-series hint at exactly the data x value.
func (m *Meta) HintAt(x float64) HintInfo {
	return HintAt(m.series, x)
}

// HintAtPixel resolves a hover pixel x position to a hint: the pixel is
// converted to data space, snapped to the nearest plotted x, and every
// series is probed at exactly that x.
func (m *Meta) HintAtPixel(px float64) HintInfo {
	data := m.FromCanvas(chart.Point{X: px})
	return m.HintAt(m.NearestX(data.X))
}

// XValues returns the distinct plotted x values in first-appearance
// order, the order NearestX breaks ties in.
func (m *Meta) XValues() []float64 {
	return m.xValues
}

// Flip returns the orientation-flipped view of m: scales, tick lists,
// and crossing lists swap roles. Hover lookup state is unchanged since
// hints are defined along the data x dimension.
func (m *Meta) Flip() *Meta {
	return &Meta{
		X:                     m.Y,
		Y:                     m.X,
		Ticks:                 m.OppositeTicks,
		OppositeTicks:         m.Ticks,
		AxisCrossings:         m.OppositeAxisCrossings,
		OppositeAxisCrossings: m.AxisCrossings,
		Piles:                 m.Piles,
		series:                m.series,
		xValues:               m.xValues,
	}
}

// =============================================================================
// Snapshot - Serializable Layout
// =============================================================================

// ScalePair holds the two resolved scales of a snapshot.
type ScalePair struct {
	X scale.Scale `json:"x" bson:"x"`
	Y scale.Scale `json:"y" bson:"y"`
}

// Snapshot is the serializable form of a Meta, used for the JSON output
// format and for cache memoization. The hint table carries the full
// hover lookup for every plotted x so external overlays can answer
// hover queries without the engine.
type Snapshot struct {
	Scale                 ScalePair    `json:"scale" bson:"scale"`
	Ticks                 []ticks.Tick `json:"ticks" bson:"ticks"`
	OppositeTicks         []ticks.Tick `json:"opposite_ticks" bson:"opposite_ticks"`
	AxisCrossings         []float64    `json:"axis_crossings,omitempty" bson:"axis_crossings,omitempty"`
	OppositeAxisCrossings []float64    `json:"opposite_axis_crossings,omitempty" bson:"opposite_axis_crossings,omitempty"`
	Piles                 []pile.Pile  `json:"piles,omitempty" bson:"piles,omitempty"`
	XValues               []float64    `json:"x_values,omitempty" bson:"x_values,omitempty"`
	Hints                 []HintInfo   `json:"hints,omitempty" bson:"hints,omitempty"`
}

// Snapshot materializes the serializable layout, including the hint
// table for every distinct plotted x value.
func (m *Meta) Snapshot() Snapshot {
	s := Snapshot{
		Scale:                 ScalePair{X: m.X, Y: m.Y},
		Ticks:                 m.Ticks,
		OppositeTicks:         m.OppositeTicks,
		AxisCrossings:         m.AxisCrossings,
		OppositeAxisCrossings: m.OppositeAxisCrossings,
		Piles:                 m.Piles,
		XValues:               m.xValues,
	}
	for _, x := range m.xValues {
		s.Hints = append(s.Hints, m.HintAt(x))
	}
	return s
}

// MarshalSnapshot serializes a snapshot to pretty-printed JSON.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
