// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto

import (
	"errors"
	"io"
	"math/rand"
	"reflect"
	"testing"

	"github.com/aclements/tourplot/coord"
	"github.com/aclements/tourplot/tour"
	"github.com/aclements/tourplot/tour/geodesic"
	"github.com/gonum/matrix/mat64"
)

func init() {
	Warning.SetOutput(io.Discard)
	tour.Warning.SetOutput(io.Discard)
}

// passThrough keeps the given bases as the tour path.
type passThrough struct{}

func (passThrough) Interpolate(bases []*mat64.Dense, angle float64) ([]*mat64.Dense, error) {
	return bases, nil
}

// newSession begins a p-variable, d-dimensional tour with f frames and
// n observations (no data if n is 0).
func newSession(t *testing.T, p, d, f, n int) *tour.Session {
	t.Helper()
	rng := rand.New(rand.NewSource(int64(p*100 + d*10 + f)))
	bases := make([]*mat64.Dense, f)
	for i := range bases {
		bases[i] = geodesic.Random(p, d, rng)
	}
	a := tour.NewArray(bases...)
	opts := []tour.Option{tour.WithInterpolator(passThrough{})}
	if n > 0 {
		rows := make([][]float64, n)
		for i := range rows {
			rows[i] = make([]float64, p)
			for j := range rows[i] {
				rows[i][j] = rng.NormFloat64() * float64(j+1)
			}
		}
		data, err := tour.NewData(nil, rows)
		if err != nil {
			t.Fatal(err)
		}
		opts = append(opts, tour.WithData(data))
	}
	s, err := tour.Begin(a, opts...)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Close)
	return s
}

func frames(l *Layer) []int {
	return l.Data.MustColumn("frame").([]int)
}

func TestReplicate(t *testing.T) {
	for _, test := range []struct {
		vals          []string
		count, frames int
		want          []string
	}{
		{[]string{"a"}, 2, 3, []string{"a", "a", "a", "a", "a", "a"}},
		{[]string{"a", "b"}, 2, 2, []string{"a", "b", "a", "b"}},
		{[]string{"a", "b", "c"}, 3, 1, []string{"a", "b", "c"}},
	} {
		got, err := Replicate(test.vals, test.count, test.frames)
		if err != nil {
			t.Errorf("Replicate(%v, %d, %d): %v", test.vals, test.count, test.frames, err)
			continue
		}
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("Replicate(%v, %d, %d) = %v, want %v", test.vals, test.count, test.frames, got, test.want)
		}
	}

	_, err := Replicate([]int{1, 2}, 3, 2)
	var rerr *ReplicationError
	if !errors.As(err, &rerr) || rerr.Len != 2 || rerr.Count != 3 {
		t.Errorf("length 2 of 3: got %v, want ReplicationError", err)
	}
}

func TestAesValidate(t *testing.T) {
	for _, test := range []struct {
		aes Aes
		ok  bool
	}{
		{Aes{}, true},
		{Aes{Color: []string{"a"}}, true},
		{Aes{Color: []string{"a", "b", "a"}, Shape: []string{"square"}}, true},
		{Aes{Color: []string{"a", "b"}}, false},
		{Aes{Fill: []string{"a", "b", "c", "d"}}, false},
		{Aes{Shape: []string{"blob"}}, false},
	} {
		err := test.aes.validate(3)
		if (err == nil) != test.ok {
			t.Errorf("%+v: got error %v, want ok=%v", test.aes, err, test.ok)
		}
	}
}

func TestCategorical(t *testing.T) {
	cs := Categorical([]string{"x", "y", "x", "z"})
	if cs[0] != cs[2] {
		t.Errorf("same category got different colors")
	}
	if cs[0] == cs[1] || cs[1] == cs[3] || cs[0] == cs[3] {
		t.Errorf("different categories share a color")
	}
}

func TestNoSession(t *testing.T) {
	builders := []Builder{Basis{}, Basis1D{}, Point{}, Text{}, Hex{}, Density{},
		Origin{}, Origin1D{}, Highlight{Rows: []int{0}}, Highlight1D{Rows: []int{0}}, FrameCor{}}
	for _, b := range builders {
		if _, err := b.Build(nil); err != tour.ErrNoSession {
			t.Errorf("%s on no session: got %v, want ErrNoSession", builderName(b), err)
		}
	}

	// A closed session is no session.
	s := newSession(t, 4, 2, 2, 0)
	if _, err := (Basis{}).Build(s); err != nil {
		t.Fatalf("Basis on active session: %v", err)
	}
	s.Close()
	if _, err := (Basis{}).Build(s); err != tour.ErrNoSession {
		t.Errorf("Basis on closed session: got %v, want ErrNoSession", err)
	}
}

func TestDimensionMismatch(t *testing.T) {
	check := func(t *testing.T, s *tour.Session, b Builder, want int) {
		t.Helper()
		_, err := b.Build(s)
		var derr *tour.DimensionError
		if !errors.As(err, &derr) || derr.Want != want {
			t.Errorf("%s: got %v, want DimensionError wanting %d", builderName(b), err, want)
		}
	}
	s2 := newSession(t, 4, 2, 2, 5)
	for _, b := range []Builder{Basis1D{}, Density{}, Origin1D{}, Highlight1D{Rows: []int{0}}} {
		check(t, s2, b, 1)
	}
	s1 := newSession(t, 4, 1, 2, 5)
	for _, b := range []Builder{Basis{}, Point{}, Text{}, Hex{}, Origin{}, Highlight{Rows: []int{0}}, FrameCor{}} {
		check(t, s1, b, 2)
	}
}

func TestPlotAdd(t *testing.T) {
	s := newSession(t, 4, 2, 3, 10)
	p := New(s)
	if err := p.Add(Default(s)...); err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, l := range p.Layers() {
		names = append(names, l.Name)
	}
	want := []string{"basis circle", "basis axes", "basis labels", "points", "origin"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("layers %v, want %v", names, want)
	}

	// Errors name the failing builder.
	err := p.Add(Point{Aes: Aes{Color: []string{"a", "b"}}})
	var rerr *ReplicationError
	if !errors.As(err, &rerr) || rerr.Arg != "color" {
		t.Fatalf("got %v, want color ReplicationError", err)
	}
	if got := err.Error(); got != "Point: color has 2 values; want 1 or 10" {
		t.Errorf("error %q", got)
	}
}

func TestPositionOff(t *testing.T) {
	s := newSession(t, 4, 2, 2, 10)
	p := New(s)
	if err := p.Add(Basis{Position: coord.Off}, Origin{Position: coord.Off}, FrameCor{Position: coord.Off}); err != nil {
		t.Fatal(err)
	}
	if n := len(p.Layers()); n != 0 {
		t.Errorf("got %d layers, want 0", n)
	}
}

func TestLayerFrame(t *testing.T) {
	s := newSession(t, 4, 2, 3, 0)
	layers, err := Basis{}.Build(s)
	if err != nil {
		t.Fatal(err)
	}
	circle, axes := layers[0], layers[1]
	if n := circle.Frame(2).Len(); n != circleSegments+1 {
		t.Errorf("circle has %d rows in frame 2, want %d", n, circleSegments+1)
	}
	if n := axes.Frame(2).Len(); n != 4 {
		t.Errorf("axes have %d rows in frame 2, want 4", n)
	}
	for _, f := range frames(&Layer{Data: axes.Frame(3)}) {
		if f != 3 {
			t.Fatalf("frame 3 contains frame %d", f)
		}
	}
}

func TestMarkString(t *testing.T) {
	for _, test := range []struct {
		m    Mark
		want string
	}{
		{Points, "points"},
		{Paths, "paths"},
		{Polygons, "polygons"},
		{Labels, "labels"},
		{Lines, "lines"},
		{Segments, "segments"},
		{Mark(99), "Mark(99)"},
	} {
		if got := test.m.String(); got != test.want {
			t.Errorf("Mark(%d).String() = %q, want %q", int(test.m), got, test.want)
		}
	}
}
