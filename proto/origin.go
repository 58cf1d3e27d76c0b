// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto

import (
	"fmt"

	"github.com/aclements/tourplot/coord"
	"github.com/aclements/tourplot/tour"
	"github.com/gonum/floats"
	"github.com/setanarut/vec"
)

// originArm is the half-length of the origin cross in unit
// coordinates.
const originArm = 0.1

// Origin draws a cross at the origin of a 2-D tour.
type Origin struct {
	// Position places the cross. It defaults to coord.Center.
	Position coord.Position
	Style    Style
}

func (o Origin) Build(s *tour.Session) ([]*Layer, error) {
	if err := s.Check(2); err != nil {
		return nil, err
	}
	style := o.Style
	if style.Color == nil {
		style.Color = defaultGuideColor
	}

	var lb layerBuilder
	for _, arm := range [][2]vec.Vec2{
		{{-originArm, 0}, {originArm, 0}},
		{{0, -originArm}, {0, originArm}},
	} {
		lb.point(arm[0].X, arm[0].Y, 0)
		lb.xend = append(lb.xend, arm[1].X)
		lb.yend = append(lb.yend, arm[1].Y)
	}
	if ok, err := placeAll(o.Position.Or(coord.Center), &s.Region, &lb); !ok {
		return nil, err
	}
	return []*Layer{lb.done("origin", Segments, style)}, nil
}

// Origin1D draws a vertical line at the origin of a 1-D tour, spanning
// the data region.
type Origin1D struct {
	Style Style
}

func (o Origin1D) Build(s *tour.Session) ([]*Layer, error) {
	if err := s.Check(1); err != nil {
		return nil, err
	}
	style := o.Style
	if style.Color == nil {
		style.Color = defaultGuideColor
	}
	var lb layerBuilder
	lb.point(0, s.Region.YMin, 0)
	lb.xend = append(lb.xend, 0)
	lb.yend = append(lb.yend, s.Region.YMax)
	return []*Layer{lb.done("origin", Segments, style)}, nil
}

// FrameCor labels each frame of a 2-D tour with the correlation of
// the projected x and y.
type FrameCor struct {
	// Position places the label. It defaults to coord.TopRight.
	Position coord.Position
	TextSize float64
}

func (fc FrameCor) Build(s *tour.Session) ([]*Layer, error) {
	if err := s.Check(2); err != nil {
		return nil, err
	}
	if !s.HasData() {
		return nil, ErrNoData
	}

	var lb layerBuilder
	for f := 1; f <= s.Frames; f++ {
		ft := tour.FrameTable(s.Data, f)
		xs, ys := ft.MustColumn("x").([]float64), ft.MustColumn("y").([]float64)
		lb.point(0, 0, f)
		lb.label = append(lb.label, fmt.Sprintf("r = %.2f", correlation(xs, ys)))
	}
	if ok, err := placeAll(fc.Position.Or(coord.TopRight), &s.Region, &lb); !ok {
		return nil, err
	}
	return []*Layer{lb.done("frame correlation", Labels, Style{Size: fc.TextSize})}, nil
}

// correlation returns the Pearson correlation of xs and ys, which must
// already be centered on 0.
func correlation(xs, ys []float64) float64 {
	return floats.Dot(xs, ys) / (floats.Norm(xs, 2) * floats.Norm(ys, 2))
}

// Default returns the standard layers for s: the basis, the data, and
// the origin, in the form that matches s's dimensionality. Data
// layers are omitted if s has no data.
func Default(s *tour.Session) []Builder {
	if s.Dims == 1 {
		bs := []Builder{Basis1D{}}
		if s.HasData() {
			bs = append(bs, Density{})
		}
		return append(bs, Origin1D{})
	}
	bs := []Builder{Basis{}}
	if s.HasData() {
		bs = append(bs, Point{})
	}
	return append(bs, Origin{})
}
