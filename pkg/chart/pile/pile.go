// Package pile resolves the layout of stacked series groups.
//
// For each stack group it sums layer contributions per x position into
// cumulative intervals: positive values accumulate upward from zero,
// negative values accumulate downward, independently. The resulting
// group bounds feed the scale computation so stacked totals, not just
// individual layer values, stay visible; the per-layer spans let the
// renderer place every layer at its cumulative offset without redoing
// the aggregation.
package pile

import (
	"github.com/matzehuels/plotline/pkg/chart"
	"github.com/matzehuels/plotline/pkg/chart/scale"
)

// Span is one layer's cumulative interval at a single x position.
type Span struct {
	X     float64 `json:"x" bson:"x"`
	Lower float64 `json:"lower" bson:"lower"`
	Upper float64 `json:"upper" bson:"upper"`
}

// Layer holds the resolved spans of one stack layer, in the x order the
// layer's points were declared.
type Layer struct {
	Name  string `json:"name,omitempty" bson:"name,omitempty"`
	Kind  string `json:"kind,omitempty" bson:"kind,omitempty"`
	Color string `json:"color,omitempty" bson:"color,omitempty"`
	Spans []Span `json:"spans" bson:"spans"`
}

// Pile is the resolved layout of one stack group.
type Pile struct {
	Name   string      `json:"name,omitempty" bson:"name,omitempty"`
	Bounds scale.Edges `json:"bounds" bson:"bounds"`
	Layers []Layer     `json:"layers" bson:"layers"`
}

// Aggregate computes one Pile per stack group.
//
// A group with no points yields bounds of [0, 0]. Groups without
// negative values keep a lower bound of 0, the stacking baseline.
func Aggregate(groups []chart.Stack) []Pile {
	out := make([]Pile, len(groups))
	for i, g := range groups {
		out[i] = aggregateGroup(g)
	}
	return out
}

func aggregateGroup(g chart.Stack) Pile {
	p := Pile{
		Name:   g.Name,
		Layers: make([]Layer, len(g.Layers)),
	}

	// Running cumulative sums per x position: positive contributions
	// grow uppers, negative contributions grow lowers.
	uppers := map[float64]float64{}
	lowers := map[float64]float64{}

	for li, layer := range g.Layers {
		spans := make([]Span, len(layer.Points))
		for pi, pt := range layer.Points {
			if pt.Y >= 0 {
				base := uppers[pt.X]
				spans[pi] = Span{X: pt.X, Lower: base, Upper: base + pt.Y}
				uppers[pt.X] = base + pt.Y
			} else {
				base := lowers[pt.X]
				spans[pi] = Span{X: pt.X, Lower: base + pt.Y, Upper: base}
				lowers[pt.X] = base + pt.Y
			}
		}
		p.Layers[li] = Layer{
			Name:  layer.Name,
			Kind:  layer.Kind,
			Color: layer.Color,
			Spans: spans,
		}
	}

	for _, v := range uppers {
		if v > p.Bounds.Upper {
			p.Bounds.Upper = v
		}
	}
	for _, v := range lowers {
		if v < p.Bounds.Lower {
			p.Bounds.Lower = v
		}
	}
	return p
}

// CombinedBounds unions the bounds of all piles into one interval for
// the scale computation. It returns nil when there are no piles.
func CombinedBounds(piles []Pile) *scale.Edges {
	if len(piles) == 0 {
		return nil
	}
	combined := piles[0].Bounds
	for _, p := range piles[1:] {
		if p.Bounds.Lower < combined.Lower {
			combined.Lower = p.Bounds.Lower
		}
		if p.Bounds.Upper > combined.Upper {
			combined.Upper = p.Bounds.Upper
		}
	}
	return &combined
}
