// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto

import (
	"fmt"
	"image/color"
	"math"

	"github.com/aclements/go-gg/palette"
	"github.com/aclements/tourplot/coord"
	"github.com/aclements/tourplot/tour"
)

// Hex bins the projected observations of each frame into a hexagonal
// grid and colors each hexagon by its count.
type Hex struct {
	// Bins is the number of hexagons across the data region. It
	// defaults to 20.
	Bins int

	Style Style
}

// hexRadius is the circumradius of a hexagon in grid units, where
// neighboring hexagons in a row are 1 apart.
var hexRadius = 1 / math.Sqrt(3)

// hexRow is the distance between hexagon rows in grid units.
var hexRow = 1.5 * hexRadius

type hexCell struct {
	frame, i, j int
}

// hexBin returns the hexagon containing the grid point (u, v). Odd
// rows are offset by half a hexagon.
func hexBin(u, v float64) (i, j int) {
	py := v / hexRow
	pj := math.Round(py)
	px := u - float64(int(pj)&1)/2
	pi := math.Round(px)
	py1 := py - pj
	if math.Abs(py1)*3 > 1 {
		// Near a row boundary, so the nearest hexagon may be in
		// the neighboring row.
		px1 := px - pi
		pi2 := pi + math.Copysign(0.5, px-pi)
		pj2 := pj + math.Copysign(1, py-pj)
		px2, py2 := px-pi2, py-pj2
		if px1*px1+py1*py1 > px2*px2+py2*py2 {
			if int(pj)&1 != 0 {
				pi = pi2 + 0.5
			} else {
				pi = pi2 - 0.5
			}
			pj = pj2
		}
	}
	return int(pi), int(pj)
}

// hexCenter returns the grid coordinates of the center of hexagon
// (i, j).
func hexCenter(i, j int) (u, v float64) {
	return float64(i) + float64(j&1)/2, float64(j) * hexRow
}

func (h Hex) Build(s *tour.Session) ([]*Layer, error) {
	if err := s.Check(2); err != nil {
		return nil, err
	}
	if !s.HasData() {
		return nil, ErrNoData
	}
	bins := h.Bins
	if bins == 0 {
		bins = 20
	} else if bins < 0 {
		return nil, &coord.ConfigError{What: "bin count", Value: fmt.Sprint(bins)}
	}

	r := s.Region
	dx, dy := r.XMax-r.XMin, r.YMax-r.YMin
	if dx == 0 {
		dx = 1
	}
	if dy == 0 {
		dy = 1
	}
	toGrid := func(x, y float64) (float64, float64) {
		return (x - r.XMin) / dx * float64(bins), (y - r.YMin) / dy * float64(bins)
	}
	fromGrid := func(u, v float64) (float64, float64) {
		return r.XMin + u/float64(bins)*dx, r.YMin + v/float64(bins)*dy
	}

	xs := s.Data.MustColumn("x").([]float64)
	ys := s.Data.MustColumn("y").([]float64)
	frames := s.Data.MustColumn("frame").([]int)
	counts := make(map[hexCell]int)
	var order []hexCell
	maxCount := 0
	for k := range xs {
		i, j := hexBin(toGrid(xs[k], ys[k]))
		c := hexCell{frames[k], i, j}
		if counts[c] == 0 {
			order = append(order, c)
		}
		counts[c]++
		if counts[c] > maxCount {
			maxCount = counts[c]
		}
	}

	var lb layerBuilder
	for _, c := range order {
		fill := palette.Viridis.Map(float64(counts[c]) / float64(maxCount))
		group := fmt.Sprintf("%d/%d,%d", c.frame, c.i, c.j)
		cu, cv := hexCenter(c.i, c.j)
		for k := 0; k < 6; k++ {
			a := float64(k) * math.Pi / 3
			x, y := fromGrid(cu+hexRadius*math.Sin(a), cv-hexRadius*math.Cos(a))
			lb.point(x, y, c.frame)
			lb.group = append(lb.group, group)
			lb.color = append(lb.color, color.Color(fill))
			lb.label = append(lb.label, fmt.Sprint(counts[c]))
		}
	}
	l := lb.done("hexagons", Polygons, h.Style)
	l.Tooltip = true
	return []*Layer{l}, nil
}
