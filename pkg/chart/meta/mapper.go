package meta

import (
	"github.com/matzehuels/plotline/pkg/chart"
	"github.com/matzehuels/plotline/pkg/chart/scale"
)

// The coordinate transforms are pure functions of the two resolved
// scales alone, so they are exposed as free functions rather than
// closures captured in Meta. Pixel y grows downward while data y grows
// upward; ToCanvas applies that flip and FromCanvas undoes it.
//
// Round-trip invariant: FromCanvas(xs, ys, ToCanvas(xs, ys, p)) == p
// within floating-point tolerance for any p inside the scale domains.

// ToCanvas maps a data-space point to pixel space.
func ToCanvas(xs, ys scale.Scale, p chart.Point) chart.Point {
	return chart.Point{
		X: project(xs, p.X-xs.Lowest),
		Y: project(ys, ys.Highest-p.Y),
	}
}

// ToCanvasOpposite is ToCanvas with the roles of the two scales
// swapped. Orientation-flipped elements reuse the x algorithms through
// it instead of a separate y implementation.
func ToCanvasOpposite(xs, ys scale.Scale, p chart.Point) chart.Point {
	return ToCanvas(ys, xs, p)
}

// FromCanvas maps a pixel-space point back to data space. It is the
// exact inverse of ToCanvas.
func FromCanvas(xs, ys scale.Scale, p chart.Point) chart.Point {
	return chart.Point{
		X: xs.Lowest + unproject(xs, p.X),
		Y: ys.Highest - unproject(ys, p.Y),
	}
}

// project converts a distance in data space to pixels. A zero range is
// treated as a one-point scale of range 1 so degenerate scales never
// divide by zero.
func project(s scale.Scale, v float64) float64 {
	rng := s.Range
	if rng == 0 {
		rng = 1
	}
	return v*s.Length/rng + s.Offset
}

// unproject converts a pixel position back to a data-space distance.
func unproject(s scale.Scale, v float64) float64 {
	length := s.Length
	if length == 0 {
		length = 1
	}
	rng := s.Range
	if rng == 0 {
		rng = 1
	}
	return (v - s.Offset) * rng / length
}
