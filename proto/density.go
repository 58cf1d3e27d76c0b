// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto

import (
	"fmt"
	"image/color"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/tourplot/tour"
)

// densityPoints is the number of points each density curve is
// sampled at.
const densityPoints = 128

// Density draws a kernel density estimate of the projected data of a
// 1-D tour in each frame, with a rug of the observations beneath it.
//
// Aes.Fill splits the estimate into one curve per category. Each curve
// is filled and outlined. Aes.Color colors the rug.
type Density struct {
	Aes   Aes
	Style Style
}

func (d Density) Build(s *tour.Session) ([]*Layer, error) {
	if err := s.Check(1); err != nil {
		return nil, err
	}
	sel, err := selectRows(s, nil)
	if err != nil {
		return nil, err
	}
	if err := d.Aes.validate(s.Observations); err != nil {
		return nil, err
	}

	fill := d.Aes.Fill
	if fill == nil {
		fill = []string{""}
	}
	fills, err := replicateArg("fill", fill, s.Observations, s.Frames)
	if err != nil {
		return nil, err
	}
	var fillColors []color.Color
	if d.Aes.Fill != nil {
		fillColors = Categorical(fills)
	}

	style := d.Style
	if style.Alpha == 0 {
		style.Alpha = 0.5
	}

	xs := s.Data.MustColumn("x").([]float64)
	var curves, outlines layerBuilder
	for f := 0; f < s.Frames; f++ {
		// Split this frame's observations by fill category, in
		// order of first appearance.
		lo, hi := f*s.Observations, (f+1)*s.Observations
		var cats []string
		samples := make(map[string][]float64)
		first := make(map[string]int)
		for i := lo; i < hi; i++ {
			c := fills[i]
			if _, ok := samples[c]; !ok {
				cats = append(cats, c)
				first[c] = i
			}
			samples[c] = append(samples[c], xs[i])
		}

		for _, c := range cats {
			dxs, dys, ok := estimate(samples[c])
			if !ok {
				Warning.Printf("frame %d: no spread in %q; skipping density", f+1, c)
				continue
			}
			group := fmt.Sprintf("%d/%s", f+1, c)
			add := func(x, y float64) {
				curves.point(x, y, f+1)
				curves.group = append(curves.group, group)
				if fillColors != nil {
					curves.color = append(curves.color, fillColors[first[c]])
				}
			}
			add(dxs[0], 0)
			for k := range dxs {
				add(dxs[k], dys[k])
				outlines.point(dxs[k], dys[k], f+1)
				outlines.group = append(outlines.group, group)
				if fillColors != nil {
					outlines.color = append(outlines.color, fillColors[first[c]])
				}
			}
			add(dxs[len(dxs)-1], 0)
		}
	}

	var rugs layerBuilder
	if err := scatter(s, Aes{Color: d.Aes.Color}, sel, &rugs); err != nil {
		return nil, err
	}
	rug(&rugs, rugHeight(s))

	line := Style{Color: d.Style.Color, LineWidth: d.Style.LineWidth}
	return []*Layer{
		curves.done("density", Polygons, style),
		rugs.done("rug", Segments, line),
		outlines.done("density outline", Lines, line),
	}, nil
}

// estimate returns a kernel density estimate of xs. It returns false
// if xs has no spread to estimate from.
func estimate(xs []float64) (dxs, dys []float64, ok bool) {
	if len(xs) < 2 || stats.BandwidthScott(stats.Sample{Xs: xs}) == 0 {
		return nil, nil, false
	}
	dens := table.Flatten(ggstat.Density{X: "x", N: densityPoints}.F(new(table.Builder).Add("x", xs).Done()))
	slice.Convert(&dxs, dens.MustColumn("x"))
	slice.Convert(&dys, dens.MustColumn("probability density"))
	return dxs, dys, len(dxs) > 0
}

// rugHeight returns the length of rug marks for s.
func rugHeight(s *tour.Session) float64 {
	h := 0.04 * (s.Region.YMax - s.Region.YMin)
	if h <= 0 {
		h = 0.04
	}
	return h
}

// rug turns the points of lb into vertical marks of the given height
// hanging below y=0.
func rug(lb *layerBuilder, height float64) {
	for i := range lb.x {
		lb.y[i] = -height
		lb.xend = append(lb.xend, lb.x[i])
		lb.yend = append(lb.yend, 0)
	}
}
