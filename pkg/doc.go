// Package pkg provides the core libraries for Plotline chart rendering.
//
// # Overview
//
// Plotline turns declarative chart documents into resolved layouts and
// rendered output. The pkg directory is organized into five main areas:
//
//  1. [chart] - Domain logic (chart model, scales, ticks, stacks, layout)
//  2. [render] - Output sinks (SVG)
//  3. [pipeline] - Orchestration (decode → layout → render)
//  4. [cache] - Memoization backends (file, redis, null)
//  5. [errors] - Structured error codes
//
// # Architecture
//
// The typical data flow through Plotline:
//
//	Chart Document (TOML/JSON)
//	         ↓
//	    [chart] package (decode + validate the definition)
//	         ↓
//	    [chart/scale], [chart/ticks], [chart/pile] (resolve geometry)
//	         ↓
//	    [chart/meta] package (assemble the layout snapshot)
//	         ↓
//	    [render/svg] package (draw) / JSON snapshot export
//
// # Quick Start
//
// Decode a chart and render it to SVG:
//
//	import (
//	    "github.com/matzehuels/plotline/pkg/chart"
//	    "github.com/matzehuels/plotline/pkg/chart/meta"
//	    "github.com/matzehuels/plotline/pkg/render/svg"
//	)
//
//	// 1. Decode the document
//	def, _ := chart.ReadFile("chart.toml")
//	def.ApplyDefaults(800, 600)
//
//	// 2. Assemble the layout
//	m := meta.Assemble(def)
//
//	// 3. Render to SVG
//	out := svg.Render(def, m, svg.WithHover())
//
// Or run the whole pipeline with caching:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{Input: "chart.toml"})
//
// # Main Packages
//
// [chart] - The declarative chart model: series, stacks, axes, grids,
// and per-axis scale specs, decoded from TOML or JSON and validated at
// the boundary.
//
// [chart/scale] - Scale resolution: data extent, pixel padding, margin,
// and range restriction clamps.
//
// [chart/ticks] - Tick generation: explicit lists, fixed deltas, and
// automatic nice-step selection, each tick annotated with its distance
// from zero.
//
// [chart/pile] - Stack aggregation: cumulative spans per x position
// with positives accumulating upward and negatives downward.
//
// [chart/meta] - The per-render layout snapshot: resolved scales,
// coordinate transforms, tick lists, axis crossings, and hover hints.
//
// [render/svg] - SVG output with optional self-contained hover
// tooltips.
//
// [pipeline] - Stage orchestration with content-hash memoization of
// layouts and artifacts.
//
// [cache] - Cache backends: per-user file cache for the CLI, Redis for
// the preview server, and a null cache for tests.
//
// [chart]: github.com/matzehuels/plotline/pkg/chart
// [chart/scale]: github.com/matzehuels/plotline/pkg/chart/scale
// [chart/ticks]: github.com/matzehuels/plotline/pkg/chart/ticks
// [chart/pile]: github.com/matzehuels/plotline/pkg/chart/pile
// [chart/meta]: github.com/matzehuels/plotline/pkg/chart/meta
// [render/svg]: github.com/matzehuels/plotline/pkg/render/svg
// [pipeline]: github.com/matzehuels/plotline/pkg/pipeline
// [cache]: github.com/matzehuels/plotline/pkg/cache
// [errors]: github.com/matzehuels/plotline/pkg/errors
package pkg
