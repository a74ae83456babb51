// Package chart defines the declarative chart model.
//
// A Definition is the canonical serialization format for a chart: an
// ordered list of plotted elements (series, stacks, axes, grids) plus
// one scale configuration per orientation. Definitions are decoded from
// TOML or JSON documents and validated at the boundary; the geometry
// core in the subpackages consumes them without further error paths.
package chart

import (
	"slices"

	"github.com/matzehuels/plotline/pkg/chart/scale"
	"github.com/matzehuels/plotline/pkg/chart/ticks"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Orientation tags every axis-like entity as horizontal or vertical.
type Orientation string

// Orientations.
const (
	OrientationX Orientation = "x"
	OrientationY Orientation = "y"
)

// Opposite returns the other orientation.
func (o Orientation) Opposite() Orientation {
	if o == OrientationY {
		return OrientationX
	}
	return OrientationY
}

// Series kinds.
const (
	KindLine    = "line"
	KindArea    = "area"
	KindScatter = "scatter"
	KindBar     = "bar" // stacking role for stack layers
)

// ValidKinds is the set of recognized series kinds.
var ValidKinds = map[string]bool{
	KindLine:    true,
	KindArea:    true,
	KindScatter: true,
	KindBar:     true,
}

// =============================================================================
// Data Model
// =============================================================================

// Point is an ordered (x, y) pair in data space.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Series is one plotted line, area, or scatter element.
type Series struct {
	Name   string  `toml:"name" json:"name,omitempty" bson:"name,omitempty"`
	Kind   string  `toml:"kind" json:"kind,omitempty" bson:"kind,omitempty"` // defaults to "line"
	Color  string  `toml:"color" json:"color,omitempty" bson:"color,omitempty"`
	Points []Point `toml:"points" json:"points" bson:"points"`
}

// XValues returns the x coordinates of the series points.
func (s Series) XValues() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.X
	}
	return out
}

// YValues returns the y coordinates of the series points.
func (s Series) YValues() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Y
	}
	return out
}

// YAt returns the y value of the point whose x equals x exactly.
// No interpolation is performed; absence is a valid outcome.
func (s Series) YAt(x float64) (float64, bool) {
	for _, p := range s.Points {
		if p.X == x {
			return p.Y, true
		}
	}
	return 0, false
}

// Stack is a group of layers rendered cumulatively atop one another at
// shared x positions.
type Stack struct {
	Name   string   `toml:"name" json:"name,omitempty" bson:"name,omitempty"`
	Layers []Series `toml:"layers" json:"layers" bson:"layers"`
}

// Axis describes one axis line: its orientation, tick strategy, and the
// crossing rule in the opposite axis's data space. A nil Cross defaults
// to data value 0.
type Axis struct {
	Orientation Orientation    `toml:"orientation" json:"orientation" bson:"orientation"`
	Ticks       ticks.Strategy `toml:"ticks" json:"ticks,omitempty" bson:"ticks,omitempty"`
	Cross       *float64       `toml:"cross" json:"cross,omitempty" bson:"cross,omitempty"`
}

// Grid describes mirrored guide lines across the plot. With no explicit
// Values the grid mirrors the tick values of its orientation.
type Grid struct {
	Orientation Orientation `toml:"orientation" json:"orientation" bson:"orientation"`
	Values      []float64   `toml:"values" json:"values,omitempty" bson:"values,omitempty"`
}

// =============================================================================
// Element - Closed Sum of Plotted Kinds
// =============================================================================

// Element is the closed sum of plottable kinds. Renderers and the meta
// assembler switch exhaustively over the concrete types Series, Stack,
// Axis, and Grid.
type Element interface {
	element()
}

func (Series) element() {}
func (Stack) element()  {}
func (Axis) element()   {}
func (Grid) element()   {}

// =============================================================================
// Definition - Declarative Chart Document
// =============================================================================

// Definition is the canonical chart document.
//
// Element order is declaration order within each kind; Elements()
// flattens them into the single ordered list the layout pass consumes.
// Series order (standalone series first, then stack layers, each in
// declaration order) is the order hover hints report y values in.
type Definition struct {
	Title string `toml:"title" json:"title,omitempty" bson:"title,omitempty"`

	X ScaleSpec `toml:"x" json:"x" bson:"x"`
	Y ScaleSpec `toml:"y" json:"y" bson:"y"`

	Series []Series `toml:"series" json:"series,omitempty" bson:"series,omitempty"`
	Stacks []Stack  `toml:"stack" json:"stacks,omitempty" bson:"stacks,omitempty"`
	Axes   []Axis   `toml:"axis" json:"axes,omitempty" bson:"axes,omitempty"`
	Grids  []Grid   `toml:"grid" json:"grids,omitempty" bson:"grids,omitempty"`
}

// Elements returns the ordered element list: series, stacks, axes, grids.
func (d *Definition) Elements() []Element {
	out := make([]Element, 0, len(d.Series)+len(d.Stacks)+len(d.Axes)+len(d.Grids))
	for _, s := range d.Series {
		out = append(out, s)
	}
	for _, s := range d.Stacks {
		out = append(out, s)
	}
	for _, a := range d.Axes {
		out = append(out, a)
	}
	for _, g := range d.Grids {
		out = append(out, g)
	}
	return out
}

// PlottedSeries returns all data-bearing series in hint order:
// standalone series first, then stack layers, each in declaration order.
func (d *Definition) PlottedSeries() []Series {
	out := slices.Clone(d.Series)
	for _, st := range d.Stacks {
		out = append(out, st.Layers...)
	}
	return out
}

// AxisFor returns the first axis with the given orientation, or a
// default axis (automatic ticks, crossing at zero) if none is declared.
func (d *Definition) AxisFor(o Orientation) Axis {
	for _, a := range d.Axes {
		if a.Orientation == o {
			return a
		}
	}
	return Axis{Orientation: o}
}

// =============================================================================
// ScaleSpec - Serializable Scale Configuration
// =============================================================================

// EdgesSpec is the serializable form of a lower/upper pixel pair.
type EdgesSpec struct {
	Lower float64 `toml:"lower" json:"lower" bson:"lower"`
	Upper float64 `toml:"upper" json:"upper" bson:"upper"`
}

// ScaleSpec is the serializable per-axis scale configuration.
// Floor and Ceil translate to range restriction clamps: a Floor of 0
// keeps the computed lowest value from going below zero.
type ScaleSpec struct {
	Length  float64   `toml:"length" json:"length" bson:"length"`
	Padding EdgesSpec `toml:"padding" json:"padding" bson:"padding"`
	Margin  EdgesSpec `toml:"margin" json:"margin" bson:"margin"`
	Floor   *float64  `toml:"floor" json:"floor,omitempty" bson:"floor,omitempty"`
	Ceil    *float64  `toml:"ceil" json:"ceil,omitempty" bson:"ceil,omitempty"`
}

// Config resolves the spec into the scale configuration consumed by the
// geometry core.
func (s ScaleSpec) Config() scale.Config {
	cfg := scale.Config{
		Length:  s.Length,
		Padding: scale.Edges{Lower: s.Padding.Lower, Upper: s.Padding.Upper},
		Margin:  scale.Edges{Lower: s.Margin.Lower, Upper: s.Margin.Upper},
	}
	if s.Floor != nil {
		cfg.Restrict.Lower = scale.AtLeast(*s.Floor)
	}
	if s.Ceil != nil {
		cfg.Restrict.Upper = scale.AtMost(*s.Ceil)
	}
	return cfg
}
