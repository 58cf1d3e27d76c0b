// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto

import (
	"fmt"
	"image/color"
	"math"

	"github.com/aclements/tourplot/coord"
	"github.com/aclements/tourplot/tour"
	"github.com/setanarut/vec"
)

var (
	defaultAxisColor  = color.Gray{0x40}
	defaultManipColor = color.RGBA{0x1f, 0x3f, 0xd0, 0xff}
	defaultGuideColor = color.Gray{0xa0}
)

// circleSegments is the number of segments in the unit circle.
const circleSegments = 72

// labelOffset is how far past the end of each axis its label is drawn.
const labelOffset = 1.1

// Basis draws the basis of a 2-D tour as axes from the origin inside
// a unit circle, with the manipulated variable highlighted.
type Basis struct {
	// Position places the glyph. It defaults to coord.Left.
	Position coord.Position

	// Color and ManipColor color the axes and the manipulated
	// variable's axis, respectively.
	Color, ManipColor color.Color

	LineWidth float64
	TextSize  float64
}

func (b Basis) Build(s *tour.Session) ([]*Layer, error) {
	if err := s.Check(2); err != nil {
		return nil, err
	}
	axisColor, manipColor := orColor(b.Color, defaultAxisColor), orColor(b.ManipColor, defaultManipColor)

	var circle layerBuilder
	for i := 0; i <= circleSegments; i++ {
		th := 2 * math.Pi * float64(i) / circleSegments
		circle.point(math.Cos(th), math.Sin(th), 0)
		circle.group = append(circle.group, "circle")
	}

	var axes, labels layerBuilder
	xs := s.Basis.MustColumn("x").([]float64)
	ys := s.Basis.MustColumn("y").([]float64)
	frames := s.Basis.MustColumn("frame").([]int)
	names := s.Basis.MustColumn("label").([]string)
	for i := range xs {
		c := color.Color(axisColor)
		if i%s.Variables == s.ManipVar {
			c = manipColor
		}
		axes.point(0, 0, frames[i])
		axes.xend = append(axes.xend, xs[i])
		axes.yend = append(axes.yend, ys[i])
		axes.color = append(axes.color, c)

		labels.point(xs[i]*labelOffset, ys[i]*labelOffset, frames[i])
		labels.label = append(labels.label, names[i])
		labels.color = append(labels.color, c)
	}
	if ok, err := placeAll(b.Position.Or(coord.Left), &s.Region, &circle, &axes, &labels); !ok {
		return nil, err
	}

	guide := Style{Color: defaultGuideColor, LineWidth: b.LineWidth}
	return []*Layer{
		circle.done("basis circle", Paths, guide),
		axes.done("basis axes", Segments, Style{LineWidth: b.LineWidth}),
		labels.done("basis labels", Labels, Style{Size: b.TextSize}),
	}, nil
}

// Basis1D draws the basis of a 1-D tour as one horizontal bar per
// variable, with the manipulated variable highlighted.
type Basis1D struct {
	// Position places the glyph. It defaults to coord.Center.
	Position coord.Position

	Color, ManipColor color.Color
	TextSize          float64
}

func (b Basis1D) Build(s *tour.Session) ([]*Layer, error) {
	if err := s.Check(1); err != nil {
		return nil, err
	}
	barColor, manipColor := orColor(b.Color, defaultAxisColor), orColor(b.ManipColor, defaultManipColor)

	// Unit box outline and the zero line.
	var guides layerBuilder
	box := []vec.Vec2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}, {-1, -1}}
	for _, c := range box {
		guides.point(c.X, c.Y, 0)
		guides.group = append(guides.group, "box")
	}
	guides.point(0, -1, 0)
	guides.point(0, 1, 0)
	guides.group = append(guides.group, "zero", "zero")

	p := s.Variables
	height := 0.8 * 2 / float64(p)
	xs := s.Basis.MustColumn("x").([]float64)
	frames := s.Basis.MustColumn("frame").([]int)
	names := s.Basis.MustColumn("label").([]string)
	var bars, labels layerBuilder
	for i := range xs {
		v := i % p
		yc := 1 - 2*(float64(v)+0.5)/float64(p)
		c := color.Color(barColor)
		if v == s.ManipVar {
			c = manipColor
		}
		group := fmt.Sprintf("%d/%d", frames[i], v)
		for _, corner := range []vec.Vec2{
			{0, yc - height/2}, {xs[i], yc - height/2},
			{xs[i], yc + height/2}, {0, yc + height/2},
		} {
			bars.point(corner.X, corner.Y, frames[i])
			bars.group = append(bars.group, group)
			bars.color = append(bars.color, c)
		}

		// Variable labels don't move, so draw them once.
		if frames[i] == 1 {
			labels.point(-1.2, yc, 0)
			labels.label = append(labels.label, names[i])
			labels.color = append(labels.color, c)
		}
	}
	if ok, err := placeAll(b.Position.Or(coord.Center), &s.Region, &guides, &bars, &labels); !ok {
		return nil, err
	}

	return []*Layer{
		guides.done("basis guides", Paths, Style{Color: defaultGuideColor}),
		bars.done("basis bars", Polygons, Style{}),
		labels.done("basis labels", Labels, Style{Size: b.TextSize}),
	}, nil
}

func orColor(c, def color.Color) color.Color {
	if c == nil {
		return def
	}
	return c
}
