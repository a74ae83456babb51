// Package scale derives one-dimensional data-to-pixel mappings.
//
// A Scale holds the resolved parameters of one axis: the lowest and
// highest visible data values, their span, the pixel length available
// for plotting, and the pixel offset reserved by margins. Scales are
// computed from raw data values, per-axis configuration, and optional
// stack bounds, and are consumed by the coordinate transforms in
// package meta.
//
// Compute is pure and deterministic: identical inputs yield bit-identical
// output, which the pipeline relies on for memoization.
package scale

// Edges is a closed interval with a lower and an upper bound.
// Depending on context the bounds are pixels (padding, margin) or
// data values (stack bounds).
type Edges struct {
	Lower float64 `json:"lower" bson:"lower"`
	Upper float64 `json:"upper" bson:"upper"`
}

// Normalized returns e with the bounds swapped if they are out of order.
func (e Edges) Normalized() Edges {
	if e.Lower > e.Upper {
		return Edges{Lower: e.Upper, Upper: e.Lower}
	}
	return e
}

// Span returns the width of the interval.
func (e Edges) Span() float64 {
	return e.Upper - e.Lower
}

// RestrictRange is a pair of clamp functions applied to the automatically
// computed lowest and highest values. The zero value leaves both
// untouched (nil functions are treated as identity).
type RestrictRange struct {
	Lower func(float64) float64
	Upper func(float64) float64
}

// AtLeast returns a clamp that never lets a bound fall below limit.
// Assigning it to RestrictRange.Lower enforces "never show below limit"
// even when the data extends further down.
func AtLeast(limit float64) func(float64) float64 {
	return func(v float64) float64 {
		if v < limit {
			return limit
		}
		return v
	}
}

// AtMost returns a clamp that never lets a bound rise above limit.
func AtMost(limit float64) func(float64) float64 {
	return func(v float64) float64 {
		if v > limit {
			return limit
		}
		return v
	}
}

// Config is the per-axis scale configuration, supplied once per axis
// per render pass.
type Config struct {
	Length   float64 // plot size in pixels along this axis
	Padding  Edges   // pixels added beyond the data extent
	Margin   Edges   // pixels reserved outside the scale, e.g. for labels
	Restrict RestrictRange
}

// Scale is the resolved, padded, margin-adjusted mapping for one axis.
//
// Invariants: Range == Highest - Lowest and Range > 0; Length > 0.
// Compute maintains these even for degenerate inputs (see below).
type Scale struct {
	Lowest  float64 `json:"lowest" bson:"lowest"`
	Highest float64 `json:"highest" bson:"highest"`
	Range   float64 `json:"range" bson:"range"`
	Length  float64 `json:"length" bson:"length"` // pixels available after margins
	Offset  float64 `json:"offset" bson:"offset"` // pixel offset of the lower margin
}

// Compute derives a Scale from raw data values, the axis configuration,
// and optional stack bounds. Stack bounds extend the data extent so
// stacked totals, not just individual layer values, stay visible.
//
// Degenerate input policies:
//   - No values and no stack bounds: the extent defaults to [0, 0]
//     before the zero-range substitution below.
//   - Zero range (all data equal): the highest bound is raised so that
//     Range == 1, keeping the Range == Highest - Lowest invariant and
//     protecting the coordinate transforms from division by zero.
//   - Non-positive inner length (margins consume the whole axis): the
//     inner length is clamped to 1 pixel. Configurations with a
//     non-positive Length are rejected earlier, at the decode boundary.
func Compute(cfg Config, values []float64, stack *Edges) Scale {
	lowest, highest := extent(values, stack)

	if cfg.Restrict.Lower != nil {
		lowest = cfg.Restrict.Lower(lowest)
	}
	if cfg.Restrict.Upper != nil {
		highest = cfg.Restrict.Upper(highest)
	}
	if highest <= lowest {
		highest = lowest + 1
	}
	rng := highest - lowest

	margin := cfg.Margin.Normalized()
	length := cfg.Length - margin.Lower - margin.Upper
	if length <= 0 {
		length = 1
	}

	// Padding is configured in pixels but applied in data space, so it
	// stays visually constant regardless of the data range.
	padding := cfg.Padding.Normalized()
	padLower := padding.Lower * rng / length
	padUpper := padding.Upper * rng / length

	return Scale{
		Lowest:  lowest - padLower,
		Highest: highest + padUpper,
		Range:   rng + padLower + padUpper,
		Length:  length,
		Offset:  margin.Lower,
	}
}

// extent returns the raw [min, max] of values, widened by stack bounds
// when they reach further. With no inputs at all it returns [0, 0].
func extent(values []float64, stack *Edges) (lowest, highest float64) {
	if len(values) == 0 && stack == nil {
		return 0, 0
	}

	if len(values) > 0 {
		lowest, highest = values[0], values[0]
		for _, v := range values[1:] {
			if v < lowest {
				lowest = v
			}
			if v > highest {
				highest = v
			}
		}
		if stack != nil {
			s := stack.Normalized()
			if s.Lower < lowest {
				lowest = s.Lower
			}
			if s.Upper > highest {
				highest = s.Upper
			}
		}
		return lowest, highest
	}

	s := stack.Normalized()
	return s.Lower, s.Upper
}
