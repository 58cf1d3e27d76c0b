// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package proto builds the layers of a tour plot.
//
// A Plot accumulates layers for one tour Session. Each layer is a
// go-gg table of marks with a "frame" column; rows with frame 0 are
// drawn in every frame. Builders such as Basis, Point, and Density
// read the Session and produce layers. They never modify the Session.
//
// Builders come in two families. Basis, Point, Text, Hex, Origin,
// Highlight, and FrameCor require a 2-D tour; Basis1D, Density,
// Origin1D, and Highlight1D require a 1-D tour. Using a builder with
// the wrong kind of tour fails with a *tour.DimensionError.
package proto

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"reflect"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/tourplot/coord"
	"github.com/aclements/tourplot/tour"
)

// Warning is a logger for conditions that don't prevent building a
// layer, but may lead to unexpected results.
var Warning = log.New(os.Stderr, "[proto] ", log.Lshortfile)

// Mark is the kind of visual mark a layer draws.
type Mark int

const (
	// Points draws a point at each (x, y). An optional "shape"
	// column gives the point shape.
	Points Mark = iota

	// Paths connects successive rows with the same "group".
	Paths

	// Polygons fills the polygon traced by rows with the same
	// "group".
	Polygons

	// Labels draws "label" at each (x, y).
	Labels

	// Lines is like Paths, but rows are connected in order of x.
	Lines

	// Segments draws a line from (x, y) to (xend, yend) for each
	// row.
	Segments
)

func (m Mark) String() string {
	switch m {
	case Points:
		return "points"
	case Paths:
		return "paths"
	case Polygons:
		return "polygons"
	case Labels:
		return "labels"
	case Lines:
		return "lines"
	case Segments:
		return "segments"
	}
	return fmt.Sprintf("Mark(%d)", int(m))
}

// Style gives the static appearance of a layer. Zero fields take
// defaults chosen by the renderer.
type Style struct {
	// Color is the color of every mark without a "color" column.
	Color color.Color

	// Size is the point radius or text height, in points.
	Size float64

	// Alpha is the opacity of marks, from 0 to 1. 0 means opaque.
	Alpha float64

	// LineWidth is the stroke width, in points.
	LineWidth float64
}

// Opacity returns s.Alpha, defaulting to 1.
func (s Style) Opacity() float64 {
	if s.Alpha <= 0 || s.Alpha > 1 {
		return 1
	}
	return s.Alpha
}

// A Layer is a table of marks to draw.
//
// Data always has columns "x", "y", and "frame". Depending on Mark it
// may also have "xend", "yend", "group", and "label". An optional
// "color" column of color.Color overrides Style.Color per row.
type Layer struct {
	Name  string
	Mark  Mark
	Data  *table.Table
	Style Style

	// Tooltip indicates interactive renderers should show the
	// "label" column when hovering over marks.
	Tooltip bool
}

// Frame returns the rows of l drawn in frame f: rows of frame f and
// rows of frame 0.
func (l *Layer) Frame(f int) *table.Table {
	return table.Flatten(table.Filter(l.Data, func(frame int) bool {
		return frame == f || frame == 0
	}, "frame"))
}

// Empty reports whether l has no marks.
func (l *Layer) Empty() bool {
	return l.Data == nil || l.Data.Len() == 0
}

// A Builder produces layers from a tour Session.
type Builder interface {
	Build(s *tour.Session) ([]*Layer, error)
}

// Plot is a tour plot under construction.
type Plot struct {
	// Title is an optional title for rendered output.
	Title string

	s      *tour.Session
	layers []*Layer
}

// New returns a Plot of s with no layers.
func New(s *tour.Session) *Plot {
	return &Plot{s: s}
}

// Session returns the tour drawn by p.
func (p *Plot) Session() *tour.Session {
	return p.s
}

// AddLayer appends layers to p. Empty layers are dropped.
func (p *Plot) AddLayer(layers ...*Layer) *Plot {
	for _, l := range layers {
		if l == nil || l.Empty() {
			continue
		}
		p.layers = append(p.layers, l)
	}
	return p
}

// Add runs each builder against p's Session in order and adds the
// resulting layers. It stops at the first builder that fails.
func (p *Plot) Add(builders ...Builder) error {
	for _, b := range builders {
		layers, err := b.Build(p.s)
		if err != nil {
			return fmt.Errorf("%s: %w", builderName(b), err)
		}
		p.AddLayer(layers...)
	}
	return nil
}

// Layers returns the layers of p in drawing order.
func (p *Plot) Layers() []*Layer {
	return p.layers
}

func builderName(b Builder) string {
	t := reflect.TypeOf(b)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// layerBuilder accumulates the columns of a layer.
type layerBuilder struct {
	x, y, xend, yend []float64
	frame            []int
	group, label     []string
	shape            []string
	color            []color.Color
}

func (b *layerBuilder) point(x, y float64, frame int) {
	b.x = append(b.x, x)
	b.y = append(b.y, y)
	b.frame = append(b.frame, frame)
}

// place maps the points of b, given in unit glyph coordinates, to pos
// within r. It returns coord.ErrOff if pos is Off.
func (b *layerBuilder) place(pos coord.Position, r *coord.Region) error {
	for _, xy := range [][2]*[]float64{{&b.x, &b.y}, {&b.xend, &b.yend}} {
		if len(*xy[0]) == 0 {
			continue
		}
		t := new(table.Builder).Add("x", *xy[0]).Add("y", *xy[1]).Done()
		mapped, err := coord.MapRelative(t, pos, r)
		if err != nil {
			return err
		}
		*xy[0] = mapped.MustColumn("x").([]float64)
		*xy[1] = mapped.MustColumn("y").([]float64)
	}
	return nil
}

// placeAll places every builder in lbs. It reports false if pos is
// Off, in which case the glyph should not be drawn.
func placeAll(pos coord.Position, r *coord.Region, lbs ...*layerBuilder) (bool, error) {
	for _, lb := range lbs {
		if err := lb.place(pos, r); err == coord.ErrOff {
			return false, nil
		} else if err != nil {
			return false, err
		}
	}
	return true, nil
}

func (b *layerBuilder) done(name string, mark Mark, style Style) *Layer {
	tb := new(table.Builder).Add("x", b.x).Add("y", b.y)
	if b.xend != nil {
		tb.Add("xend", b.xend).Add("yend", b.yend)
	}
	tb.Add("frame", b.frame)
	if b.group != nil {
		tb.Add("group", b.group)
	}
	if b.label != nil {
		tb.Add("label", b.label)
	}
	if b.shape != nil {
		tb.Add("shape", b.shape)
	}
	if b.color != nil {
		tb.Add("color", b.color)
	}
	return &Layer{Name: name, Mark: mark, Data: tb.Done(), Style: style}
}
