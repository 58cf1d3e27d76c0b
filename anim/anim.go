// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package anim renders tour plots as animations.
//
// GIF rasterizes every frame into an animated GIF. HTML writes an
// interactive page with a frame slider and hover labels. SVG renders
// a single frame, or each frame to its own file.
//
// Animating renderers read the frame count from the plot's Session
// and then close it, so a Session can be rendered only once. A tour
// with a single frame is rendered as a static image with a warning.
package anim

import (
	"errors"
	"image/color"
	"io"
	"log"
	"math"
	"os"

	"github.com/aclements/tourplot/coord"
	"github.com/aclements/tourplot/proto"
	"github.com/aclements/tourplot/tour"
)

// Warning is a logger for conditions that don't prevent rendering,
// but may lead to unexpected results.
var Warning = log.New(os.Stderr, "[anim] ", log.Lshortfile)

// ErrNoLayers is returned when rendering a plot with no layers.
var ErrNoLayers = errors.New("plot has no layers; did you forget to attach a layer?")

// A Renderer writes a plot to w.
type Renderer interface {
	Render(w io.Writer, p *proto.Plot) error
}

// prepare checks that p can be rendered and returns its frame count.
// If the tour has more than one frame, prepare closes p's Session, so
// an animated plot can be rendered only once.
func prepare(p *proto.Plot) (frames int, err error) {
	if len(p.Layers()) == 0 {
		return 0, ErrNoLayers
	}
	s := p.Session()
	if !s.Active() {
		return 0, tour.ErrNoSession
	}
	frames = s.Frames
	if frames <= 1 {
		Warning.Printf("tour has only one frame; rendering a static plot")
		return 1, nil
	}
	s.Close()
	return frames, nil
}

// bounds returns the region covered by every mark of layers, padded
// by 5% on each side.
func bounds(layers []*proto.Layer) coord.Region {
	var xs, ys []float64
	for _, l := range layers {
		for _, col := range []string{"x", "xend"} {
			if c := l.Data.Column(col); c != nil {
				xs = append(xs, c.([]float64)...)
			}
		}
		for _, col := range []string{"y", "yend"} {
			if c := l.Data.Column(col); c != nil {
				ys = append(ys, c.([]float64)...)
			}
		}
	}
	r := coord.RegionOf(xs, ys)
	if math.IsNaN(r.XMin) {
		return coord.UnitBox
	}
	dx, dy, _, _ := r.Extent()
	if dx == 0 {
		dx = 1
	}
	if dy == 0 {
		dy = 1
	}
	r.XMin, r.XMax = r.XMin-0.05*dx, r.XMax+0.05*dx
	r.YMin, r.YMax = r.YMin-0.05*dy, r.YMax+0.05*dy
	return r
}

// fitAspect grows r in one direction so its aspect ratio matches a
// width×height image and data units are square.
func fitAspect(r coord.Region, width, height int) coord.Region {
	dx, dy, xc, yc := r.Extent()
	want := float64(width) / float64(height)
	if dx/dy < want {
		dx = dy * want
	} else {
		dy = dx / want
	}
	return coord.Region{XMin: xc - dx/2, XMax: xc + dx/2, YMin: yc - dy/2, YMax: yc + dy/2}
}

// rowColors returns the color of each row of a layer's frame table,
// with the layer's opacity applied.
func rowColors(l *proto.Layer, n int, col interface{}) []color.Color {
	out := make([]color.Color, n)
	var cs []color.Color
	if col != nil {
		cs = col.([]color.Color)
	}
	def := l.Style.Color
	if def == nil {
		def = color.Black
	}
	for i := range out {
		c := def
		if cs != nil {
			c = cs[i]
		}
		out[i] = withAlpha(c, l.Style.Opacity())
	}
	return out
}

// withAlpha scales the alpha of c by a.
func withAlpha(c color.Color, a float64) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(math.Round(float64(n.A) * a))
	return n
}
