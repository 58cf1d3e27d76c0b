// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coord

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/setanarut/vec"
)

func init() {
	Warning.SetOutput(io.Discard)
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestParsePosition(t *testing.T) {
	for _, name := range []string{"center", "left", "right", "bottomleft", "topright", "off"} {
		p, err := ParsePosition(name)
		if err != nil {
			t.Errorf("ParsePosition(%q): %v", name, err)
			continue
		}
		if p.String() != name {
			t.Errorf("ParsePosition(%q).String() = %q", name, p.String())
		}
	}

	for _, bad := range []string{"", "unset", "middle", "panzoom", "Center"} {
		_, err := ParsePosition(bad)
		var cerr *ConfigError
		if !errors.As(err, &cerr) {
			t.Errorf("ParsePosition(%q): want ConfigError, got %v", bad, err)
		}
	}
}

func TestTransform(t *testing.T) {
	r := &Region{XMin: 0, XMax: 10, YMin: -2, YMax: 2}
	for _, test := range []struct {
		pos        Position
		scale      float64
		xoff, yoff float64
	}{
		{Center, 1.2, 5, 0},
		{Left, 1.2, 5 - 7, 0},
		{Right, 1.2, 5 + 7, 0},
		{BottomLeft, 1, 5 - 2.5, -2},
		{TopRight, 1, 5 + 2.5, 2},
	} {
		aff, err := test.pos.Transform(r)
		if err != nil {
			t.Errorf("%v: %v", test.pos, err)
			continue
		}
		want := Affine{vec.Vec2{test.scale, test.scale}, vec.Vec2{test.xoff, test.yoff}}
		if !near(aff.Scale.X, want.Scale.X) || !near(aff.Scale.Y, want.Scale.Y) ||
			!near(aff.Offset.X, want.Offset.X) || !near(aff.Offset.Y, want.Offset.Y) {
			t.Errorf("%v: got %+v, want %+v", test.pos, aff, want)
		}
	}
}

func TestPositionOr(t *testing.T) {
	var unset Position
	if got := unset.Or(Left); got != Left {
		t.Errorf("unset.Or(Left) = %v", got)
	}
	if got := Right.Or(Left); got != Right {
		t.Errorf("Right.Or(Left) = %v", got)
	}
	a1, _ := unset.Transform(&UnitBox)
	a2, _ := Center.Transform(&UnitBox)
	if a1 != a2 {
		t.Errorf("unset position does not map like Center")
	}
}

func TestTransformOff(t *testing.T) {
	if _, err := Off.Transform(&UnitBox); err != ErrOff {
		t.Fatalf("Off.Transform: want ErrOff, got %v", err)
	}
	tab := new(table.Builder).Add("x", []float64{1}).Add("y", []float64{2}).Done()
	got, err := MapRelative(tab, Off, &UnitBox)
	if err != ErrOff || got != nil {
		t.Fatalf("MapRelative(Off) = %v, %v; want nil, ErrOff", got, err)
	}
}

func TestTransformNoRegion(t *testing.T) {
	if _, err := Center.Transform(nil); err != ErrNoRegion {
		t.Fatalf("want ErrNoRegion, got %v", err)
	}
	// Pan/zoom does not need a region.
	pz := PanZoom(vec.Vec2{1, 2}, vec.Vec2{3, 4})
	aff, err := pz.Transform(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := aff.Apply(vec.Vec2{1, 1}); got != (vec.Vec2{4, 6}) {
		t.Fatalf("pan/zoom of (1,1) = %v, want (4,6)", got)
	}
}

func TestMapRelativeCenter(t *testing.T) {
	// Points whose extent equals the region's: the centroid lands
	// on the region's centroid.
	xs := []float64{-1, 1, 1, -1}
	ys := []float64{-1, -1, 1, 1}
	tab := new(table.Builder).Add("x", xs).Add("y", ys).Done()
	r := RegionOf(xs, ys)

	got, err := MapRelative(tab, Center, &r)
	if err != nil {
		t.Fatal(err)
	}
	gx := got.MustColumn("x").([]float64)
	gy := got.MustColumn("y").([]float64)
	var cx, cy float64
	for i := range gx {
		cx += gx[i] / float64(len(gx))
		cy += gy[i] / float64(len(gy))
	}
	_, _, rx, ry := r.Extent()
	if !near(cx, rx) || !near(cy, ry) {
		t.Fatalf("centroid (%g,%g), want (%g,%g)", cx, cy, rx, ry)
	}
	// The input must not be modified.
	if xs[0] != -1 {
		t.Fatalf("MapRelative modified its input")
	}
	// Mapping twice is not idempotent: it scales again.
	got2, err := MapRelative(got, Center, &r)
	if err != nil {
		t.Fatal(err)
	}
	if near(got2.MustColumn("x").([]float64)[1], gx[1]) {
		t.Fatalf("second map did not rescale")
	}
}

func TestMapRelativeExtraColumns(t *testing.T) {
	tab := new(table.Builder).
		Add("a", []float64{1}).
		Add("b", []float64{1}).
		Add("c", []string{"x"}).
		Done()
	got, err := MapRelative(tab, Center, &UnitBox)
	if err != nil {
		t.Fatal(err)
	}
	if cols := got.Columns(); len(cols) != 2 || cols[0] != "a" || cols[1] != "b" {
		t.Fatalf("columns %v, want [a b]", cols)
	}
}

func TestMapRelativeOneColumn(t *testing.T) {
	tab := new(table.Builder).Add("x", []float64{0, 1}).Done()
	got, err := MapRelative(tab, Right, &UnitBox)
	if err != nil {
		t.Fatal(err)
	}
	xs := got.MustColumn("x").([]float64)
	if !near(xs[0], 1.4) || !near(xs[1], 1.4+0.6) {
		t.Fatalf("got %v, want [1.4 2]", xs)
	}
}

func TestRegionOf(t *testing.T) {
	r := RegionOf([]float64{3, math.NaN(), -1}, []float64{0, 5, 2})
	if r != (Region{-1, 3, 0, 5}) {
		t.Fatalf("RegionOf = %v", r)
	}
	r = RegionOf([]float64{2}, nil)
	if r.YMin != 0 || r.YMax != 0 {
		t.Fatalf("RegionOf without ys = %v", r)
	}
}
