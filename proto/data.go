// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/aclements/tourplot/tour"
)

// ErrNoData is returned by builders that draw observations when the
// tour has no data.
var ErrNoData = errors.New("tour has no data")

var defaultHighlightColor = color.RGBA{0xe0, 0x30, 0x30, 0xff}

// selection resolves an optional list of observations against s.
type selection struct {
	rows []int // observations, or nil for all
	n    int   // observations per frame after selection
}

func selectRows(s *tour.Session, rows []int) (selection, error) {
	if !s.HasData() {
		return selection{}, ErrNoData
	}
	if rows == nil {
		return selection{n: s.Observations}, nil
	}
	for _, r := range rows {
		if r < 0 || r >= s.Observations {
			return selection{}, fmt.Errorf("row %d out of range [0,%d)", r, s.Observations)
		}
	}
	return selection{rows: rows, n: len(rows)}, nil
}

// index returns the data table rows of the selection, frame by frame.
func (sel selection) index(s *tour.Session) []int {
	out := make([]int, 0, sel.n*s.Frames)
	for f := 0; f < s.Frames; f++ {
		base := f * s.Observations
		if sel.rows == nil {
			for r := 0; r < s.Observations; r++ {
				out = append(out, base+r)
			}
			continue
		}
		for _, r := range sel.rows {
			out = append(out, base+r)
		}
	}
	return out
}

// aesColors returns one color per selected row per frame for cats,
// or nil if cats is nil. Categories are assigned colors over all
// observations so subsets agree with the full plot.
func aesColors(cats []string, sel selection, frames int) ([]color.Color, error) {
	if cats == nil {
		return nil, nil
	}
	return Replicate(subset(Categorical(cats), sel.rows), sel.n, frames)
}

// scatter builds a layer with one row per selected observation per
// frame.
func scatter(s *tour.Session, aes Aes, sel selection, lb *layerBuilder) error {
	if err := aes.validate(s.Observations); err != nil {
		return err
	}
	xs := s.Data.MustColumn("x").([]float64)
	var ys []float64
	if s.Dims == 2 {
		ys = s.Data.MustColumn("y").([]float64)
	}
	frames := s.Data.MustColumn("frame").([]int)
	labels := s.Data.MustColumn("label").([]string)
	for _, i := range sel.index(s) {
		y := 0.0
		if ys != nil {
			y = ys[i]
		}
		lb.point(xs[i], y, frames[i])
		lb.label = append(lb.label, labels[i])
	}

	var err error
	if lb.color, err = aesColors(aes.Color, sel, s.Frames); err != nil {
		if rerr, ok := err.(*ReplicationError); ok {
			rerr.Arg = "color"
		}
		return err
	}
	if aes.Shape != nil {
		if lb.shape, err = replicateArg("shape", subset(aes.Shape, sel.rows), sel.n, s.Frames); err != nil {
			return err
		}
	}
	return nil
}

// Point draws the projected observations as points.
type Point struct {
	Aes   Aes
	Style Style

	// Rows limits the layer to the given observations, numbered
	// from 0. Nil means all observations.
	Rows []int
}

func (p Point) Build(s *tour.Session) ([]*Layer, error) {
	if err := s.Check(2); err != nil {
		return nil, err
	}
	sel, err := selectRows(s, p.Rows)
	if err != nil {
		return nil, err
	}
	var lb layerBuilder
	if err := scatter(s, p.Aes, sel, &lb); err != nil {
		return nil, err
	}
	l := lb.done("points", Points, p.Style)
	l.Tooltip = true
	return []*Layer{l}, nil
}

// Text draws the label of each projected observation at its position.
type Text struct {
	Aes   Aes
	Style Style
	Rows  []int
}

func (t Text) Build(s *tour.Session) ([]*Layer, error) {
	if err := s.Check(2); err != nil {
		return nil, err
	}
	sel, err := selectRows(s, t.Rows)
	if err != nil {
		return nil, err
	}
	var lb layerBuilder
	if err := scatter(s, t.Aes, sel, &lb); err != nil {
		return nil, err
	}
	lb.shape = nil
	return []*Layer{lb.done("text", Labels, t.Style)}, nil
}

// Highlight draws selected observations over the other layers.
type Highlight struct {
	Rows []int

	// MarkInitial additionally draws each selected observation's
	// position in the first frame in every frame.
	MarkInitial bool

	Style Style
}

func (h Highlight) Build(s *tour.Session) ([]*Layer, error) {
	if err := s.Check(2); err != nil {
		return nil, err
	}
	if len(h.Rows) == 0 {
		return nil, fmt.Errorf("no rows to highlight")
	}
	sel, err := selectRows(s, h.Rows)
	if err != nil {
		return nil, err
	}
	style := h.Style
	if style.Color == nil {
		style.Color = defaultHighlightColor
	}
	if style.Size == 0 {
		style.Size = 3
	}

	var lb layerBuilder
	if err := scatter(s, Aes{}, sel, &lb); err != nil {
		return nil, err
	}
	cur := lb.done("highlight", Points, style)
	cur.Tooltip = true
	layers := []*Layer{cur}

	if h.MarkInitial {
		var init layerBuilder
		for i := 0; i < sel.n; i++ {
			init.point(lb.x[i], lb.y[i], 0)
			init.label = append(init.label, lb.label[i])
		}
		istyle := style
		istyle.Alpha = 0.4
		layers = append(layers, init.done("highlight initial", Points, istyle))
	}
	return layers, nil
}

// Highlight1D draws selected observations of a 1-D tour as tall rug
// marks.
type Highlight1D struct {
	Rows        []int
	MarkInitial bool
	Style       Style
}

func (h Highlight1D) Build(s *tour.Session) ([]*Layer, error) {
	if err := s.Check(1); err != nil {
		return nil, err
	}
	if len(h.Rows) == 0 {
		return nil, fmt.Errorf("no rows to highlight")
	}
	sel, err := selectRows(s, h.Rows)
	if err != nil {
		return nil, err
	}
	style := h.Style
	if style.Color == nil {
		style.Color = defaultHighlightColor
	}

	var lb layerBuilder
	if err := scatter(s, Aes{}, sel, &lb); err != nil {
		return nil, err
	}
	height := 3 * rugHeight(s)
	rug(&lb, height)
	layers := []*Layer{lb.done("highlight", Segments, style)}

	if h.MarkInitial {
		var init layerBuilder
		for i := 0; i < sel.n; i++ {
			init.point(lb.x[i], 0, 0)
		}
		rug(&init, height)
		istyle := style
		istyle.Alpha = 0.4
		layers = append(layers, init.done("highlight initial", Segments, istyle))
	}
	return layers, nil
}
