// Package ticks generates axis tick values for a resolved scale.
//
// Three strategies are supported, selected per axis:
//   - an explicit list of values, used verbatim
//   - an explicit delta between consecutive ticks
//   - automatic spacing toward a target count, snapping the step to a
//     human-friendly 1/2/5 × power-of-ten value
//
// Every generated tick carries its signed distance, in tick steps, from
// the tick nearest to zero. Axis renderers use it to vary style by
// parity and position instead of recomputing it ad hoc.
package ticks

import (
	"math"

	"github.com/matzehuels/plotline/pkg/chart/scale"
)

// DefaultCount is the target tick count for the automatic strategy.
const DefaultCount = 10

// Strategy selects how ticks are generated for one axis.
// The first populated field wins: Values, then Delta, then Count
// (zero Count falls back to DefaultCount).
type Strategy struct {
	Values []float64 `toml:"values" json:"values,omitempty" bson:"values,omitempty"`
	Delta  float64   `toml:"delta" json:"delta,omitempty" bson:"delta,omitempty"`
	Count  int       `toml:"count" json:"count,omitempty" bson:"count,omitempty"`
}

// Tick is one labeled axis position.
type Tick struct {
	Value float64 `json:"value" bson:"value"`
	// Index is the signed distance in tick steps from the tick nearest
	// to zero. A tick at exactly zero has index 0.
	Index int `json:"index" bson:"index"`
}

// Generate produces the tick list for s according to the strategy.
//
// Degenerate policy: a zero scale range or a non-positive delta yields a
// single tick at s.Lowest instead of dividing by zero or looping.
func Generate(st Strategy, s scale.Scale) []Tick {
	if len(st.Values) > 0 {
		return annotate(st.Values)
	}
	if st.Delta > 0 {
		return generateDelta(st.Delta, s)
	}
	count := st.Count
	if count <= 0 {
		count = DefaultCount
	}
	if s.Range <= 0 {
		return annotate([]float64{s.Lowest})
	}
	return generateDelta(niceDelta(s.Range, count), s)
}

// generateDelta emits ticks at every multiple of d covered by the scale.
func generateDelta(d float64, s scale.Scale) []Tick {
	if d <= 0 || s.Range <= 0 {
		return annotate([]float64{s.Lowest})
	}

	first := math.Ceil(s.Lowest/d) * d
	// The epsilon keeps a tick that lands exactly on the upper bound from
	// being lost to floating-point rounding in the division.
	count := int(math.Floor((s.Lowest + s.Range - first + d*1e-9) / d))
	if count < 0 {
		return annotate([]float64{s.Lowest})
	}

	values := make([]float64, 0, count+1)
	for i := 0; i <= count; i++ {
		values = append(values, roundToStep(first+float64(i)*d, d))
	}
	return annotate(values)
}

// niceDelta picks a human-friendly step for the given range and target
// count: the smallest of 1, 2, 5, 10 times a power of ten that is at
// least range/target.
func niceDelta(rng float64, target int) float64 {
	raw := rng / float64(target)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	norm := raw / mag

	var nice float64
	switch {
	case norm <= 1:
		nice = 1
	case norm <= 2:
		nice = 2
	case norm <= 5:
		nice = 5
	default:
		nice = 10
	}
	return nice * mag
}

// roundToStep rounds v to the decimal precision implied by the step, so
// a delta of 0.1 yields 0.3 rather than 0.30000000000000004 in labels.
func roundToStep(v, step float64) float64 {
	exp := math.Floor(math.Log10(step))
	if exp >= 0 {
		return v
	}
	pow := math.Pow(10, -exp)
	return math.Round(v*pow) / pow
}

// annotate attaches the distance-from-zero index to each value.
//
// With k ticks strictly below zero: a zero tick has index 0, a positive
// tick at position i has index i-k (i-k+1 when no tick is exactly zero),
// and a negative tick at position i has index k-i.
func annotate(values []float64) []Tick {
	k := 0
	hasZero := false
	for _, v := range values {
		if v < 0 {
			k++
		}
		if v == 0 {
			hasZero = true
		}
	}

	out := make([]Tick, len(values))
	for i, v := range values {
		var idx int
		switch {
		case v == 0:
			idx = 0
		case v > 0:
			idx = i - k
			if !hasZero {
				idx++
			}
		default:
			idx = k - i
		}
		out[i] = Tick{Value: v, Index: idx}
	}
	return out
}
