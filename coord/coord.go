// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coord places reference glyphs inside a plot region.
//
// A tour plot shows projected data in the middle of the plot and
// small reference glyphs (the projection basis, the origin) around
// it. The glyphs are computed in unit coordinates and must be scaled
// and translated into the region occupied by the data. Position names
// where a glyph goes and Transform computes the affine map that puts
// it there.
package coord

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
	"github.com/setanarut/vec"
)

// Warning is a logger for conditions that don't prevent mapping, but
// may lead to unexpected results.
var Warning = log.New(os.Stderr, "[coord] ", log.Lshortfile)

var (
	// ErrOff is returned when mapping to position Off. It tells the
	// caller to produce nothing rather than reporting a failure.
	ErrOff = errors.New("position is off")

	// ErrNoRegion is returned when a named position is mapped
	// without a target region.
	ErrNoRegion = errors.New("no target region to map into")
)

// ConfigError reports an invalid configuration value, such as an
// unknown position name or an unsupported number of projection
// dimensions.
type ConfigError struct {
	What  string
	Value string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.What, e.Value)
}

type posKind int

const (
	posUnset posKind = iota
	posCenter
	posLeft
	posRight
	posBottomLeft
	posTopRight
	posOff
	posPanZoom
)

var posNames = []string{
	posUnset:      "unset",
	posCenter:     "center",
	posLeft:       "left",
	posRight:      "right",
	posBottomLeft: "bottomleft",
	posTopRight:   "topright",
	posOff:        "off",
	posPanZoom:    "panzoom",
}

// A Position selects where a glyph is placed relative to a Region.
// The zero Position is unset: Or replaces it with a default, and
// Transform treats it as Center.
type Position struct {
	kind posKind

	// Pan and Zoom are only used by positions constructed with
	// PanZoom.
	Pan, Zoom vec.Vec2
}

var (
	Center     = Position{kind: posCenter}
	Left       = Position{kind: posLeft}
	Right      = Position{kind: posRight}
	BottomLeft = Position{kind: posBottomLeft}
	TopRight   = Position{kind: posTopRight}

	// Off suppresses the glyph entirely.
	Off = Position{kind: posOff}
)

// PanZoom returns a Position that ignores the target region and maps
// each point p to p*zoom + pan, component-wise.
func PanZoom(pan, zoom vec.Vec2) Position {
	return Position{kind: posPanZoom, Pan: pan, Zoom: zoom}
}

// ParsePosition parses one of the named positions "center", "left",
// "right", "bottomleft", "topright", or "off".
func ParsePosition(s string) (Position, error) {
	for k, name := range posNames {
		if name == s && posKind(k) != posPanZoom && posKind(k) != posUnset {
			return Position{kind: posKind(k)}, nil
		}
	}
	return Position{}, &ConfigError{"position", s}
}

func (p Position) String() string {
	if p.kind == posPanZoom {
		return fmt.Sprintf("panzoom(pan=%v, zoom=%v)", p.Pan, p.Zoom)
	}
	return posNames[p.kind]
}

// Or returns def if p is unset, and p otherwise.
func (p Position) Or(def Position) Position {
	if p.kind == posUnset {
		return def
	}
	return p
}

// IsOff reports whether p suppresses output.
func (p Position) IsOff() bool {
	return p.kind == posOff
}

// Region is an axis-aligned rectangle in data coordinates.
type Region struct {
	XMin, XMax float64
	YMin, YMax float64
}

// UnitBox is the region [-1,1]×[-1,1].
var UnitBox = Region{-1, 1, -1, 1}

// RegionOf returns the extent of the points (xs[i], ys[i]). ys may be
// nil, in which case the Y extent is [0,0]. NaNs are ignored.
func RegionOf(xs, ys []float64) Region {
	r := Region{math.NaN(), math.NaN(), 0, 0}
	r.XMin, r.XMax = bounds(xs)
	if ys != nil {
		r.YMin, r.YMax = bounds(ys)
	}
	return r
}

func bounds(xs []float64) (min, max float64) {
	min, max = math.NaN(), math.NaN()
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		if x < min || math.IsNaN(min) {
			min = x
		}
		if x > max || math.IsNaN(max) {
			max = x
		}
	}
	return
}

// Extent returns the width and height of r and the coordinates of its
// center.
func (r Region) Extent() (xRange, yRange, xCenter, yCenter float64) {
	xRange, yRange = r.XMax-r.XMin, r.YMax-r.YMin
	xCenter, yCenter = (r.XMin+r.XMax)/2, (r.YMin+r.YMax)/2
	return
}

func (r Region) String() string {
	return fmt.Sprintf("[%g,%g]×[%g,%g]", r.XMin, r.XMax, r.YMin, r.YMax)
}

// Affine maps p to p*Scale + Offset, component-wise.
type Affine struct {
	Scale, Offset vec.Vec2
}

// Apply returns p mapped by a.
func (a Affine) Apply(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{p.X * a.Scale.X, p.Y * a.Scale.Y}.Add(a.Offset)
}

// ApplyXY maps the points (xs[i], ys[i]) in place. ys may be nil for
// one-dimensional points, in which case only X is mapped.
func (a Affine) ApplyXY(xs, ys []float64) {
	for i := range xs {
		xs[i] = xs[i]*a.Scale.X + a.Offset.X
	}
	for i := range ys {
		ys[i] = ys[i]*a.Scale.Y + a.Offset.Y
	}
}

// Transform returns the affine map that places unit-scale glyphs at
// position p within r. The scale of every named position is relative
// to the height of r so glyphs keep their aspect ratio.
//
// Transform returns ErrOff if p is Off and ErrNoRegion if p is a
// named position and r is nil. PanZoom positions ignore r.
func (p Position) Transform(r *Region) (Affine, error) {
	switch p.kind {
	case posOff:
		return Affine{}, ErrOff
	case posPanZoom:
		return Affine{p.Zoom, p.Pan}, nil
	}
	if r == nil {
		return Affine{}, ErrNoRegion
	}

	dx, dy, xc, yc := r.Extent()
	var scale, xoff, yoff float64
	switch p.kind {
	case posUnset, posCenter:
		scale, xoff, yoff = 0.3*dy, xc, yc
	case posLeft:
		scale, xoff, yoff = 0.3*dy, xc-0.7*dx, yc
	case posRight:
		scale, xoff, yoff = 0.3*dy, xc+0.7*dx, yc
	case posBottomLeft:
		scale, xoff, yoff = 0.25*dy, xc-0.25*dx, yc-0.5*dy
	case posTopRight:
		scale, xoff, yoff = 0.25*dy, xc+0.25*dx, yc+0.5*dy
	default:
		panic("unknown position kind")
	}
	return Affine{vec.Vec2{scale, scale}, vec.Vec2{xoff, yoff}}, nil
}

// MapRelative maps the first two columns of t, taken as X and Y, to
// position pos within r. If t has only one column, it is mapped as X
// alone. Additional columns are dropped with a warning.
//
// If pos is Off, MapRelative returns a nil table and ErrOff.
func MapRelative(t *table.Table, pos Position, r *Region) (*table.Table, error) {
	aff, err := pos.Transform(r)
	if err != nil {
		return nil, err
	}

	cols := t.Columns()
	if len(cols) == 0 {
		return nil, fmt.Errorf("cannot map table with no columns")
	}
	if len(cols) > 2 {
		Warning.Printf("mapping table with %d columns; using only %q and %q", len(cols), cols[0], cols[1])
		cols = cols[:2]
	}

	var xs, ys []float64
	slice.Convert(&xs, t.MustColumn(cols[0]))
	xs = append([]float64(nil), xs...)
	if len(cols) > 1 {
		slice.Convert(&ys, t.MustColumn(cols[1]))
		ys = append([]float64(nil), ys...)
	}
	aff.ApplyXY(xs, ys)

	b := new(table.Builder).Add(cols[0], xs)
	if ys != nil {
		b.Add(cols[1], ys)
	}
	return b.Done(), nil
}
