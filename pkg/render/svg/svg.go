package svg

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/plotline/pkg/chart"
	"github.com/matzehuels/plotline/pkg/chart/meta"
	"github.com/matzehuels/plotline/pkg/chart/ticks"
)

const hoverCSS = `
    .hover-line { stroke: #999; stroke-width: 1; stroke-dasharray: 4 3; visibility: hidden; }
    .hover-tip { visibility: hidden; font: 12px sans-serif; }
    .hover-tip rect { fill: #fff; stroke: #999; rx: 3; }
    .hover-overlay { fill: transparent; cursor: crosshair; }`

const hoverJS = `
    const hints = JSON.parse(document.getElementById('hint-data').textContent);
    const line = document.querySelector('.hover-line');
    const tip = document.querySelector('.hover-tip');
    const tipText = tip.querySelector('text');
    const tipRect = tip.querySelector('rect');
    const overlay = document.querySelector('.hover-overlay');
    overlay.addEventListener('mousemove', ev => {
      const pt = overlay.ownerSVGElement.createSVGPoint();
      pt.x = ev.clientX; pt.y = ev.clientY;
      const loc = pt.matrixTransform(overlay.getScreenCTM().inverse());
      let best = null;
      for (const h of hints) {
        if (best === null || Math.abs(h.px - loc.x) < Math.abs(best.px - loc.x)) best = h;
      }
      if (!best) return;
      line.setAttribute('x1', best.px); line.setAttribute('x2', best.px);
      line.style.visibility = 'visible';
      while (tipText.firstChild) tipText.removeChild(tipText.firstChild);
      const lines = ['x: ' + best.x].concat(best.values.map(v =>
        v.series + ': ' + (v.present ? v.value : 'no data')));
      lines.forEach((s, i) => {
        const span = document.createElementNS('http://www.w3.org/2000/svg', 'tspan');
        span.setAttribute('x', best.px + 12); span.setAttribute('dy', i === 0 ? 0 : 14);
        span.textContent = s;
        tipText.appendChild(span);
      });
      tipText.setAttribute('y', loc.y);
      const box = tipText.getBBox();
      tipRect.setAttribute('x', box.x - 6); tipRect.setAttribute('y', box.y - 4);
      tipRect.setAttribute('width', box.width + 12); tipRect.setAttribute('height', box.height + 8);
      tip.style.visibility = 'visible';
    });
    overlay.addEventListener('mouseleave', () => {
      line.style.visibility = 'hidden';
      tip.style.visibility = 'hidden';
    });`

// palette cycles through default series colors when none is declared.
var palette = []string{"#4c78a8", "#f58518", "#54a24b", "#e45756", "#72b7b2", "#b279a2"}

// Option configures SVG rendering via [Render].
type Option func(*renderer)

type renderer struct {
	hover      bool
	background string
}

// WithHover embeds the hint table and the pointer-following tooltip
// script into the document.
func WithHover() Option { return func(r *renderer) { r.hover = true } }

// WithBackground fills the frame with a solid color.
func WithBackground(color string) Option { return func(r *renderer) { r.background = color } }

// Render writes the chart as a standalone SVG document.
func Render(def *chart.Definition, m *meta.Meta, opts ...Option) []byte {
	r := renderer{}
	for _, opt := range opts {
		opt(&r)
	}

	width, height := def.X.Length, def.Y.Length

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="%.1f" height="%.1f" fill="%s"/>`+"\n", width, height, r.background)
	}
	if def.Title != "" {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="16" text-anchor="middle" font-family="sans-serif" font-size="14">%s</text>`+"\n",
			width/2, escape(def.Title))
	}

	renderGrids(&buf, def, m, width, height)
	renderPiles(&buf, m)
	renderSeries(&buf, def.Series, m)
	renderAxes(&buf, def, m, width, height)

	if r.hover {
		renderHover(&buf, m, height)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderGrids(buf *bytes.Buffer, def *chart.Definition, m *meta.Meta, width, height float64) {
	for _, g := range def.Grids {
		ts := m.Ticks
		if g.Orientation == chart.OrientationY {
			ts = m.OppositeTicks
		}
		values := g.Values
		if len(values) == 0 {
			values = tickValues(ts)
		}
		for _, v := range values {
			if g.Orientation == chart.OrientationY {
				py := m.ToCanvas(chart.Point{Y: v}).Y
				fmt.Fprintf(buf, `  <line x1="0" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#ddd"/>`+"\n", py, width, py)
			} else {
				px := m.ToCanvas(chart.Point{X: v}).X
				fmt.Fprintf(buf, `  <line x1="%.1f" y1="0" x2="%.1f" y2="%.1f" stroke="#ddd"/>`+"\n", px, px, height)
			}
		}
	}
}

func renderPiles(buf *bytes.Buffer, m *meta.Meta) {
	colorIdx := 0
	for _, p := range m.Piles {
		for _, layer := range p.Layers {
			color := layer.Color
			if color == "" {
				color = palette[colorIdx%len(palette)]
			}
			colorIdx++
			for _, span := range layer.Spans {
				top := m.ToCanvas(chart.Point{X: span.X, Y: span.Upper})
				bottom := m.ToCanvas(chart.Point{X: span.X, Y: span.Lower})
				fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="12" height="%.1f" fill="%s"><title>%s</title></rect>`+"\n",
					top.X-6, top.Y, bottom.Y-top.Y, color, escape(layer.Name))
			}
		}
	}
}

func renderSeries(buf *bytes.Buffer, series []chart.Series, m *meta.Meta) {
	for i, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		color := s.Color
		if color == "" {
			color = palette[i%len(palette)]
		}
		switch s.Kind {
		case chart.KindScatter:
			for _, p := range s.Points {
				c := m.ToCanvas(p)
				fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>`+"\n", c.X, c.Y, color)
			}
		case chart.KindArea:
			fmt.Fprintf(buf, `  <path d="%s" fill="%s" fill-opacity="0.35" stroke="%s" stroke-width="2"/>`+"\n",
				areaPath(s.Points, m), color, color)
		default:
			fmt.Fprintf(buf, `  <path d="%s" fill="none" stroke="%s" stroke-width="2"/>`+"\n",
				linePath(s.Points, m), color)
		}
	}
}

func renderAxes(buf *bytes.Buffer, def *chart.Definition, m *meta.Meta, width, height float64) {
	xi, yi := 0, 0
	for _, a := range def.Axes {
		if a.Orientation == chart.OrientationY {
			cross := m.OppositeAxisCrossings[yi]
			yi++
			fmt.Fprintf(buf, `  <line x1="%.1f" y1="0" x2="%.1f" y2="%.1f" stroke="#333"/>`+"\n", cross, cross, height)
			for _, t := range m.OppositeTicks {
				py := m.ToCanvas(chart.Point{Y: t.Value}).Y
				fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#333"/>`+"\n",
					cross-markLength(t), py, cross, py)
				fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="end" dominant-baseline="middle" font-family="sans-serif" font-size="11">%s</text>`+"\n",
					cross-8, py, formatValue(t.Value))
			}
		} else {
			cross := m.AxisCrossings[xi]
			xi++
			fmt.Fprintf(buf, `  <line x1="0" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#333"/>`+"\n", cross, width, cross)
			for _, t := range m.Ticks {
				px := m.ToCanvas(chart.Point{X: t.Value}).X
				fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#333"/>`+"\n",
					px, cross, px, cross+markLength(t))
				fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="11">%s</text>`+"\n",
					px, cross+16, formatValue(t.Value))
			}
		}
	}
}

// hoverHint is the per-x record serialized into the document for the
// tooltip script.
type hoverHint struct {
	Px     float64      `json:"px"`
	X      float64      `json:"x"`
	Values []hoverValue `json:"values"`
}

type hoverValue struct {
	Series  string  `json:"series"`
	Value   float64 `json:"value"`
	Present bool    `json:"present"`
}

func renderHover(buf *bytes.Buffer, m *meta.Meta, height float64) {
	hints := make([]hoverHint, 0, len(m.XValues()))
	for _, x := range m.XValues() {
		info := m.HintAt(x)
		h := hoverHint{Px: m.ToCanvas(chart.Point{X: x}).X, X: x}
		for _, v := range info.YValues {
			h.Values = append(h.Values, hoverValue{Series: v.Series, Value: v.Value, Present: v.Present})
		}
		hints = append(hints, h)
	}
	data, _ := json.Marshal(hints)

	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", hoverCSS)
	fmt.Fprintf(buf, `  <line class="hover-line" y1="0" y2="%.1f"/>`+"\n", height)
	buf.WriteString("  <g class=\"hover-tip\"><rect/><text/></g>\n")
	fmt.Fprintf(buf, `  <rect class="hover-overlay" width="100%%" height="100%%"/>`+"\n")
	fmt.Fprintf(buf, `  <script type="application/json" id="hint-data">%s</script>`+"\n", data)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", hoverJS)
}

func linePath(points []chart.Point, m *meta.Meta) string {
	var b bytes.Buffer
	for i, p := range points {
		c := m.ToCanvas(p)
		if i == 0 {
			fmt.Fprintf(&b, "M %.1f %.1f", c.X, c.Y)
		} else {
			fmt.Fprintf(&b, " L %.1f %.1f", c.X, c.Y)
		}
	}
	return b.String()
}

func areaPath(points []chart.Point, m *meta.Meta) string {
	base := m.ToCanvas(chart.Point{Y: 0}).Y
	first := m.ToCanvas(points[0])
	last := m.ToCanvas(points[len(points)-1])

	var b bytes.Buffer
	fmt.Fprintf(&b, "M %.1f %.1f", first.X, base)
	for _, p := range points {
		c := m.ToCanvas(p)
		fmt.Fprintf(&b, " L %.1f %.1f", c.X, c.Y)
	}
	fmt.Fprintf(&b, " L %.1f %.1f Z", last.X, base)
	return b.String()
}

// markLength varies tick mark size by the distance-from-zero index:
// every other tick gets a longer mark, and so does the zero tick.
func markLength(t ticks.Tick) float64 {
	if t.Index%2 == 0 {
		return 6
	}
	return 4
}

func tickValues(ts []ticks.Tick) []float64 {
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = t.Value
	}
	return out
}

func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

func escape(s string) string {
	var b bytes.Buffer
	for _, r := range s {
		switch r {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '&':
			b.WriteString("&amp;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
