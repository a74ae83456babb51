package meta

import (
	"math"

	"github.com/matzehuels/plotline/pkg/chart"
)

// HintInfo is the hover tooltip lookup result at one data x value: one
// y value (or "no data") per plotted series, in series order.
type HintInfo struct {
	XValue  float64  `json:"x_value" bson:"x_value"`
	YValues []YValue `json:"y_values" bson:"y_values"`
}

// YValue is one series' contribution to a hint. Present is false when
// the series has no point at the queried x.
type YValue struct {
	Series  string  `json:"series,omitempty" bson:"series,omitempty"`
	Value   float64 `json:"value" bson:"value"`
	Present bool    `json:"present" bson:"present"`
}

// NearestX returns the element of xValues closest to x by absolute
// distance. Ties are broken by first occurrence in iteration order.
// An empty slice returns x unchanged.
func NearestX(xValues []float64, x float64) float64 {
	if len(xValues) == 0 {
		return x
	}
	best := xValues[0]
	bestDist := math.Abs(x - best)
	for _, v := range xValues[1:] {
		if d := math.Abs(x - v); d < bestDist {
			best, bestDist = v, d
		}
	}
	return best
}

// HintAt probes every series for a point at exactly x, no
// interpolation, and assembles the results in series order. Callers
// convert a hover position to the nearest actual data x with NearestX
// first; probing an interpolated x would find nothing.
func HintAt(series []chart.Series, x float64) HintInfo {
	info := HintInfo{
		XValue:  x,
		YValues: make([]YValue, len(series)),
	}
	for i, s := range series {
		y, ok := s.YAt(x)
		info.YValues[i] = YValue{Series: s.Name, Value: y, Present: ok}
	}
	return info
}

// collectXValues gathers the distinct x values of all plotted points in
// first-appearance order, which fixes the NearestX tie-break order.
func collectXValues(series []chart.Series) []float64 {
	seen := map[float64]bool{}
	var out []float64
	for _, s := range series {
		for _, p := range s.Points {
			if !seen[p.X] {
				seen[p.X] = true
				out = append(out, p.X)
			}
		}
	}
	return out
}
