// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anim

import (
	"fmt"
	"image/color"
	"io"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/tourplot/coord"
	"github.com/aclements/tourplot/proto"
	"github.com/aclements/tourplot/tour"
)

// SVG renders one frame of a plot as an SVG image.
type SVG struct {
	// Width and Height are the image size in pixels. They
	// default to 500.
	Width, Height int

	// Frame is the frame to render, numbered from 1. It defaults
	// to the first frame.
	Frame int
}

func (r SVG) size() (int, int) {
	w, h := r.Width, r.Height
	if w <= 0 {
		w = 500
	}
	if h <= 0 {
		h = 500
	}
	return w, h
}

// Render writes frame r.Frame of p to w. It does not close p's
// Session.
func (r SVG) Render(w io.Writer, p *proto.Plot) error {
	if len(p.Layers()) == 0 {
		return ErrNoLayers
	}
	if !p.Session().Active() {
		return tour.ErrNoSession
	}
	frame := r.Frame
	if frame <= 0 {
		frame = 1
	}
	width, height := r.size()
	region := fitAspect(bounds(p.Layers()), width, height)
	return r.frame(w, p, frame, region)
}

// RenderFrames writes every frame of p as a separate SVG image to the
// writer returned by create for that frame, then closes p's Session.
func (r SVG) RenderFrames(p *proto.Plot, create func(frame int) (io.WriteCloser, error)) error {
	frames, err := prepare(p)
	if err != nil {
		return err
	}
	width, height := r.size()
	region := fitAspect(bounds(p.Layers()), width, height)
	for f := 1; f <= frames; f++ {
		w, err := create(f)
		if err != nil {
			return err
		}
		err = r.frame(w, p, f, region)
		if cerr := w.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("frame %d: %w", f, err)
		}
	}
	return nil
}

func (r SVG) frame(w io.Writer, p *proto.Plot, frame int, region coord.Region) error {
	layers := p.Layers()
	plot := gg.NewPlot(layers[0].Data)
	plot.SetScale("x", gg.NewLinearScaler().SetMin(region.XMin).SetMax(region.XMax))
	plot.SetScale("y", gg.NewLinearScaler().SetMin(region.YMin).SetMax(region.YMax))
	for _, l := range layers {
		t := ggTable(l, frame)
		if t.Len() == 0 {
			continue
		}
		plot.Save()
		plot.SetData(t)
		addLayer(plot, l, t)
		plot.Restore()
	}
	if p.Title != "" {
		plot.Add(gg.Title(p.Title))
	}
	plot.Add(gg.AxisLabel("x", ""), gg.AxisLabel("y", ""))
	width, height := r.size()
	return plot.WriteSVG(w, width, height)
}

// ggTable returns the rows of l in frame with a resolved "color"
// column. Segments are converted to two-point paths.
func ggTable(l *proto.Layer, frame int) *table.Table {
	t := l.Frame(frame)
	colors := rowColors(l, t.Len(), t.Column("color"))
	if l.Mark != proto.Segments {
		return table.NewBuilder(t).Add("color", colors).Done()
	}

	xs, ys := t.MustColumn("x").([]float64), t.MustColumn("y").([]float64)
	xend, yend := t.MustColumn("xend").([]float64), t.MustColumn("yend").([]float64)
	var px, py []float64
	var group []string
	var pc []color.Color
	for i := range xs {
		g := fmt.Sprint(i)
		px = append(px, xs[i], xend[i])
		py = append(py, ys[i], yend[i])
		group = append(group, g, g)
		pc = append(pc, colors[i], colors[i])
	}
	return new(table.Builder).Add("x", px).Add("y", py).Add("group", group).Add("color", pc).Done()
}

func addLayer(plot *gg.Plot, l *proto.Layer, t *table.Table) {
	if t.Column("group") != nil {
		plot.GroupBy("group")
	}
	switch l.Mark {
	case proto.Points:
		plot.Add(gg.LayerPoints{X: "x", Y: "y", Color: "color"})
	case proto.Paths, proto.Segments:
		plot.Add(gg.LayerPaths{X: "x", Y: "y", Color: "color"})
	case proto.Lines:
		plot.Add(gg.LayerLines{X: "x", Y: "y", Color: "color"})
	case proto.Polygons:
		plot.Add(gg.LayerPaths{X: "x", Y: "y", Fill: "color"})
	case proto.Labels:
		plot.Add(gg.LayerTags{X: "x", Y: "y", Label: "label"})
	}
	if l.Tooltip {
		plot.Add(gg.LayerTooltips{X: "x", Y: "y", Label: "label"})
	}
}
