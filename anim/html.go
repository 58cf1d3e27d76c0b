// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anim

import (
	"fmt"
	"html/template"
	"image/color"
	"io"
	"math"
	"sort"

	"github.com/aclements/tourplot/proto"
)

// HTML renders a plot as an interactive plotly.js page with a frame
// slider and a play button. Hovering over a mark with a tooltip shows
// its label.
type HTML struct {
	// FPS is the playback rate in frames per second. It defaults
	// to 8.
	FPS float64

	// Title is the page title. It defaults to the plot's title.
	Title string
}

// Render writes the page for p to w.
func (h HTML) Render(w io.Writer, p *proto.Plot) error {
	frames, err := prepare(p)
	if err != nil {
		return err
	}
	fps := h.FPS
	if fps <= 0 {
		fps = 8
	}
	title := h.Title
	if title == "" {
		title = p.Title
	}
	if title == "" {
		title = "tour"
	}

	fig := newFigure(p.Layers(), frames, fps)
	fig.Layout.Title = p.Title
	return htmlTmpl.Execute(w, struct {
		Title  string
		Figure *figure
	}{title, fig})
}

// The types below mirror the plotly.js figure schema.

type figure struct {
	Data   []trace       `json:"data"`
	Layout layout        `json:"layout"`
	Frames []figureFrame `json:"frames,omitempty"`
}

type figureFrame struct {
	Name string  `json:"name"`
	Data []trace `json:"data"`
}

type trace struct {
	Type       string        `json:"type"`
	Mode       string        `json:"mode"`
	Name       string        `json:"name"`
	X          []interface{} `json:"x"`
	Y          []interface{} `json:"y"`
	Text       []string      `json:"text,omitempty"`
	HoverInfo  string        `json:"hoverinfo"`
	Fill       string        `json:"fill,omitempty"`
	FillColor  string        `json:"fillcolor,omitempty"`
	Line       *traceLine    `json:"line,omitempty"`
	Marker     *traceMarker  `json:"marker,omitempty"`
	TextFont   *traceFont    `json:"textfont,omitempty"`
	ShowLegend bool          `json:"showlegend"`
}

type traceLine struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

type traceMarker struct {
	Color  []string `json:"color"`
	Size   float64  `json:"size"`
	Symbol []string `json:"symbol,omitempty"`
}

type traceFont struct {
	Color []string `json:"color"`
	Size  float64  `json:"size,omitempty"`
}

type layout struct {
	Title       string       `json:"title,omitempty"`
	XAxis       axis         `json:"xaxis"`
	YAxis       axis         `json:"yaxis"`
	HoverMode   string       `json:"hovermode"`
	Sliders     []slider     `json:"sliders,omitempty"`
	UpdateMenus []updateMenu `json:"updatemenus,omitempty"`
}

type axis struct {
	Range       [2]float64 `json:"range"`
	ScaleAnchor string     `json:"scaleanchor,omitempty"`
	Visible     bool       `json:"visible"`
}

type slider struct {
	CurrentValue map[string]string `json:"currentvalue"`
	Steps        []sliderStep      `json:"steps"`
}

type sliderStep struct {
	Label  string        `json:"label"`
	Method string        `json:"method"`
	Args   []interface{} `json:"args"`
}

type updateMenu struct {
	Type       string   `json:"type"`
	ShowActive bool     `json:"showactive"`
	Buttons    []button `json:"buttons"`
}

type button struct {
	Label  string        `json:"label"`
	Method string        `json:"method"`
	Args   []interface{} `json:"args"`
}

// animateOpts returns plotly animation options for discrete frames
// shown for the given duration.
func animateOpts(ms float64) map[string]interface{} {
	return map[string]interface{}{
		"mode":        "immediate",
		"fromcurrent": true,
		"frame":       map[string]interface{}{"duration": ms, "redraw": true},
		"transition":  map[string]interface{}{"duration": 0},
	}
}

func newFigure(layers []*proto.Layer, frames int, fps float64) *figure {
	keys := make([][]string, len(layers))
	for i, l := range layers {
		keys[i] = traceKeys(l)
	}
	tracesOf := func(f int) []trace {
		var ts []trace
		for i, l := range layers {
			for _, key := range keys[i] {
				ts = append(ts, newTrace(l, f, key))
			}
		}
		return ts
	}

	r := bounds(layers)
	fig := &figure{
		Data: tracesOf(1),
		Layout: layout{
			XAxis:     axis{Range: [2]float64{r.XMin, r.XMax}},
			YAxis:     axis{Range: [2]float64{r.YMin, r.YMax}, ScaleAnchor: "x"},
			HoverMode: "closest",
		},
	}
	if frames == 1 {
		return fig
	}

	ms := 1000 / fps
	var steps []sliderStep
	for f := 1; f <= frames; f++ {
		name := fmt.Sprint(f)
		fig.Frames = append(fig.Frames, figureFrame{Name: name, Data: tracesOf(f)})
		steps = append(steps, sliderStep{
			Label:  name,
			Method: "animate",
			Args:   []interface{}{[]string{name}, animateOpts(ms)},
		})
	}
	fig.Layout.Sliders = []slider{{
		CurrentValue: map[string]string{"prefix": "frame "},
		Steps:        steps,
	}}
	fig.Layout.UpdateMenus = []updateMenu{{
		Type: "buttons",
		Buttons: []button{
			{Label: "Play", Method: "animate", Args: []interface{}{nil, animateOpts(ms)}},
			{Label: "Pause", Method: "animate", Args: []interface{}{[]interface{}{nil}, animateOpts(0)}},
		},
	}}
	return fig
}

// lineMark reports whether m is drawn with plotly lines, which take a
// single color per trace.
func lineMark(m proto.Mark) bool {
	return m == proto.Paths || m == proto.Lines || m == proto.Polygons || m == proto.Segments
}

// traceKeys returns the colors l is split into, one trace each. Every
// frame has the same traces so plotly can animate between them.
func traceKeys(l *proto.Layer) []string {
	if !lineMark(l.Mark) {
		return []string{""}
	}
	seen := make(map[string]bool)
	for _, c := range rowColors(l, l.Data.Len(), l.Data.Column("color")) {
		seen[css(c)] = true
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func newTrace(l *proto.Layer, frame int, key string) trace {
	t := l.Frame(frame)
	n := t.Len()
	colors := rowColors(l, n, t.Column("color"))
	xs, ys := t.MustColumn("x").([]float64), t.MustColumn("y").([]float64)
	var labels []string
	if c := t.Column("label"); c != nil {
		labels = c.([]string)
	}

	tr := trace{Type: "scatter", Name: l.Name, X: []interface{}{}, Y: []interface{}{}, HoverInfo: "skip"}
	if l.Tooltip && labels != nil {
		tr.HoverInfo = "text"
	}
	addPoint := func(x, y float64) {
		tr.X = append(tr.X, finite(x))
		tr.Y = append(tr.Y, finite(y))
	}
	gap := func() {
		tr.X = append(tr.X, nil)
		tr.Y = append(tr.Y, nil)
	}

	switch {
	case l.Mark == proto.Points || l.Mark == proto.Labels:
		var cs []string
		for i := range xs {
			addPoint(xs[i], ys[i])
			cs = append(cs, css(colors[i]))
		}
		tr.Text = labels
		if l.Mark == proto.Labels {
			tr.Mode = "text"
			tr.TextFont = &traceFont{Color: cs, Size: l.Style.Size}
			break
		}
		tr.Mode = "markers"
		size := l.Style.Size
		if size <= 0 {
			size = 2.5
		}
		tr.Marker = &traceMarker{Color: cs, Size: 2 * size}
		if s := t.Column("shape"); s != nil {
			for _, shape := range s.([]string) {
				tr.Marker.Symbol = append(tr.Marker.Symbol, plotlySymbol(shape))
			}
		}

	case l.Mark == proto.Segments:
		tr.Mode = "lines"
		xend, yend := t.MustColumn("xend").([]float64), t.MustColumn("yend").([]float64)
		for i := range xs {
			if css(colors[i]) != key {
				continue
			}
			addPoint(xs[i], ys[i])
			addPoint(xend[i], yend[i])
			gap()
		}

	default:
		tr.Mode = "lines"
		if l.Mark == proto.Polygons {
			tr.Fill = "toself"
			tr.FillColor = key
			tr.Mode = "none"
		}
		for _, g := range groups(t.Column("group"), n) {
			if css(colors[g[0]]) != key {
				continue
			}
			if l.Mark == proto.Lines {
				sort.Slice(g, func(i, j int) bool { return xs[g[i]] < xs[g[j]] })
			}
			for _, i := range g {
				addPoint(xs[i], ys[i])
			}
			if l.Mark == proto.Polygons {
				addPoint(xs[g[0]], ys[g[0]])
			}
			gap()
		}
		if tr.HoverInfo == "text" {
			// Hover labels apply per vertex, which isn't
			// meaningful for grouped marks.
			tr.HoverInfo = "skip"
		}
	}
	if lineMark(l.Mark) {
		width := l.Style.LineWidth
		if width <= 0 {
			width = 1
		}
		tr.Line = &traceLine{Color: key, Width: width}
	}
	return tr
}

// finite returns x, or nil if x can't be represented in JSON.
func finite(x float64) interface{} {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil
	}
	return x
}

func css(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("rgba(%d,%d,%d,%.3g)", n.R, n.G, n.B, float64(n.A)/255)
}

func plotlySymbol(shape string) string {
	switch shape {
	case "square", "cross":
		return shape
	case "triangle":
		return "triangle-up"
	}
	return "circle"
}

var htmlTmpl = template.Must(template.New("tour").Parse(`<!DOCTYPE html>
<html>
    <head>
        <meta charset="utf-8">
        <title>{{.Title}}</title>
        <script type="text/javascript" src="https://cdn.plot.ly/plotly-2.27.0.min.js"></script>
    </head>
    <body>
        <div id="tour" style="width: 90vmin; height: 90vmin"></div>
        <script type="text/javascript">
         var fig = {{.Figure}};
         Plotly.newPlot("tour", fig.data, fig.layout).then(function() {
             if (fig.frames)
                 Plotly.addFrames("tour", fig.frames);
         });
        </script>
    </body>
</html>
`))
