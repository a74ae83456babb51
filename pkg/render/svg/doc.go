// Package svg renders a laid-out chart as an SVG document.
//
// # Overview
//
// The renderer consumes a [chart.Definition] together with the computed
// [meta.Meta] layout and writes SVG directly. Elements draw back to
// front: background, grids, stacked areas, series, then axes with their
// tick marks, so data never obscures the axis lines.
//
// Basic usage:
//
//	m := meta.Assemble(def)
//	out := svg.Render(def, m, svg.WithHover())
//
// # Options
//
//   - [WithHover]: embed the hint table and a script that shows a
//     guideline and tooltip following the pointer
//   - [WithBackground]: fill the frame with a solid color
//
// Hover interactivity is self-contained: the hint table for every
// plotted x value is serialized into the document, so the SVG answers
// hover queries without the engine.
//
// [chart.Definition]: github.com/matzehuels/plotline/pkg/chart.Definition
// [meta.Meta]: github.com/matzehuels/plotline/pkg/chart/meta.Meta
package svg
