// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anim

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/tourplot/coord"
	"github.com/aclements/tourplot/proto"
	"github.com/setanarut/vec"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// supersample is the factor marks are oversampled by before being
// scaled down to the output size.
const supersample = 2

// A raster draws the marks of one frame into an image.
type raster struct {
	width, height int
	hi            *image.RGBA // supersampled canvas
	xs, ys        scale.Linear
	margin        float64 // in output pixels
	text          []textMark
}

type textMark struct {
	x, y  float64 // in output pixels
	label string
	color color.Color
}

func newRaster(width, height int, r coord.Region) *raster {
	c := &raster{
		width:  width,
		height: height,
		hi:     image.NewRGBA(image.Rect(0, 0, width*supersample, height*supersample)),
		xs:     scale.Linear{Min: r.XMin, Max: r.XMax},
		ys:     scale.Linear{Min: r.YMin, Max: r.YMax},
		margin: 0.05 * math.Min(float64(width), float64(height)),
	}
	draw.Draw(c.hi, c.hi.Bounds(), image.White, image.Point{}, draw.Src)
	return c
}

// pos maps a data point to output pixel coordinates.
func (c *raster) pos(x, y float64) vec.Vec2 {
	w, h := float64(c.width)-2*c.margin, float64(c.height)-2*c.margin
	return vec.Vec2{
		c.margin + c.xs.Map(x)*w,
		float64(c.height) - c.margin - c.ys.Map(y)*h,
	}
}

// fill fills the polygon pts, given in output pixels.
func (c *raster) fill(col color.Color, pts []vec.Vec2) {
	if len(pts) < 3 {
		return
	}
	b := c.hi.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	z.MoveTo(float32(pts[0].X*supersample), float32(pts[0].Y*supersample))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X*supersample), float32(p.Y*supersample))
	}
	z.ClosePath()
	z.Draw(c.hi, b, image.NewUniform(col), image.Point{})
}

// line strokes the segment from a to b with the given width.
func (c *raster) line(col color.Color, a, b vec.Vec2, width float64) {
	d := b.Sub(a)
	n := d.Mag()
	if n == 0 {
		return
	}
	off := vec.Vec2{-d.Y, d.X}.Scale(width / 2 / n)
	c.fill(col, []vec.Vec2{a.Add(off), b.Add(off), b.Sub(off), a.Sub(off)})
}

func (c *raster) point(col color.Color, at vec.Vec2, radius float64, shape string) {
	switch shape {
	case "square":
		c.fill(col, []vec.Vec2{
			at.Add(vec.Vec2{-radius, -radius}), at.Add(vec.Vec2{radius, -radius}),
			at.Add(vec.Vec2{radius, radius}), at.Add(vec.Vec2{-radius, radius}),
		})
	case "triangle":
		var pts []vec.Vec2
		for k := 0; k < 3; k++ {
			th := -math.Pi/2 + 2*math.Pi*float64(k)/3
			pts = append(pts, at.Add(vec.Vec2{math.Cos(th), math.Sin(th)}.Scale(radius*1.2)))
		}
		c.fill(col, pts)
	case "cross":
		c.line(col, at.Add(vec.Vec2{-radius, -radius}), at.Add(vec.Vec2{radius, radius}), radius/2)
		c.line(col, at.Add(vec.Vec2{-radius, radius}), at.Add(vec.Vec2{radius, -radius}), radius/2)
	default:
		const sides = 16
		pts := make([]vec.Vec2, sides)
		for k := range pts {
			th := 2 * math.Pi * float64(k) / sides
			pts[k] = at.Add(vec.Vec2{math.Cos(th), math.Sin(th)}.Scale(radius))
		}
		c.fill(col, pts)
	}
}

// layer draws the rows of l in one frame.
func (c *raster) layer(l *proto.Layer, frame int) {
	t := l.Frame(frame)
	n := t.Len()
	if n == 0 {
		return
	}
	colors := rowColors(l, n, t.Column("color"))
	xs, ys := t.MustColumn("x").([]float64), t.MustColumn("y").([]float64)
	lineWidth := l.Style.LineWidth
	if lineWidth <= 0 {
		lineWidth = 1
	}

	switch l.Mark {
	case proto.Points:
		radius := l.Style.Size
		if radius <= 0 {
			radius = 2.5
		}
		var shapes []string
		if s := t.Column("shape"); s != nil {
			shapes = s.([]string)
		}
		for i := range xs {
			shape := ""
			if shapes != nil {
				shape = shapes[i]
			}
			c.point(colors[i], c.pos(xs[i], ys[i]), radius, shape)
		}

	case proto.Segments:
		xend, yend := t.MustColumn("xend").([]float64), t.MustColumn("yend").([]float64)
		for i := range xs {
			c.line(colors[i], c.pos(xs[i], ys[i]), c.pos(xend[i], yend[i]), lineWidth)
		}

	case proto.Paths, proto.Lines, proto.Polygons:
		for _, g := range groups(t.Column("group"), n) {
			if l.Mark == proto.Lines {
				sort.Slice(g, func(i, j int) bool { return xs[g[i]] < xs[g[j]] })
			}
			pts := make([]vec.Vec2, len(g))
			for k, i := range g {
				pts[k] = c.pos(xs[i], ys[i])
			}
			if l.Mark == proto.Polygons {
				c.fill(colors[g[0]], pts)
				continue
			}
			for k := 1; k < len(pts); k++ {
				c.line(colors[g[k]], pts[k-1], pts[k], lineWidth)
			}
		}

	case proto.Labels:
		labels := t.MustColumn("label").([]string)
		for i := range xs {
			p := c.pos(xs[i], ys[i])
			c.text = append(c.text, textMark{p.X, p.Y, labels[i], colors[i]})
		}
	}
}

// groups splits rows 0..n-1 into runs with the same group value. If
// group is nil, all rows form one run.
func groups(group interface{}, n int) [][]int {
	var gs []string
	if group != nil {
		gs = group.([]string)
	}
	var out [][]int
	for i := 0; i < n; i++ {
		if i == 0 || (gs != nil && gs[i] != gs[i-1]) {
			out = append(out, nil)
		}
		out[len(out)-1] = append(out[len(out)-1], i)
	}
	return out
}

// render scales the canvas down to the output size and draws text and
// the title over it.
func (c *raster) render(title string) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	draw.BiLinear.Scale(out, out.Bounds(), c.hi, c.hi.Bounds(), draw.Src, nil)

	face := basicfont.Face7x13
	drawText := func(s string, x, y float64, col color.Color) {
		d := font.Drawer{Dst: out, Src: image.NewUniform(col), Face: face}
		w := d.MeasureString(s)
		d.Dot = fixed.Point26_6{
			X: fixed.I(int(math.Round(x))) - w/2,
			Y: fixed.I(int(math.Round(y)) + face.Ascent/2),
		}
		d.DrawString(s)
	}
	for _, t := range c.text {
		drawText(t.label, t.x, t.y, t.color)
	}
	if title != "" {
		drawText(title, float64(c.width)/2, float64(face.Height), color.Black)
	}
	return out
}
