package meta

import (
	"github.com/matzehuels/plotline/pkg/chart"
	"github.com/matzehuels/plotline/pkg/chart/scale"
)

// Crossing resolves the pixel offset at which an axis line is drawn.
// The crossing rule is expressed in the opposite axis's data space and
// defaults to data value 0 when unconfigured.
//
// An x-oriented axis is a horizontal line, so its crossing is a
// vertical pixel position on the y scale; a y-oriented axis is the
// mirror case. Both go through the shared coordinate transform so the
// orientation symmetry has a single source of truth.
func Crossing(o chart.Orientation, xs, ys scale.Scale, cross *float64) float64 {
	value := 0.0
	if cross != nil {
		value = *cross
	}
	if o == chart.OrientationY {
		return ToCanvas(xs, ys, chart.Point{X: value}).X
	}
	return ToCanvas(xs, ys, chart.Point{Y: value}).Y
}
