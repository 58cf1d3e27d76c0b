// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tour

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/tourplot/coord"
	"github.com/gonum/matrix/mat64"
)

// noInterp passes bases through unchanged.
type noInterp struct{ calls int }

func (n *noInterp) Interpolate(bases []*mat64.Dense, angle float64) ([]*mat64.Dense, error) {
	n.calls++
	return bases, nil
}

func TestBeginNoData(t *testing.T) {
	a := randomArray(rand.New(rand.NewSource(1)), 6, 2, 3)
	s, err := Begin(a, WithInterpolator(&noInterp{}))
	if err != nil {
		t.Fatal(err)
	}
	if s.Region != coord.UnitBox {
		t.Errorf("region = %v, want unit box", s.Region)
	}
	if s.Basis.Len() != 18 {
		t.Errorf("basis has %d rows, want 18", s.Basis.Len())
	}
	if s.Frames != 3 || s.Variables != 6 || s.Observations != 0 || s.Dims != 2 {
		t.Errorf("got %s", s.Summary())
	}
	if s.Data != nil || s.HasData() {
		t.Errorf("want no data table")
	}
}

func TestBeginData(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	a := randomArray(rng, 6, 2, 3)
	data := randomData(rng, 10, 6)
	s, err := Begin(a, WithData(data), WithInterpolator(&noInterp{}))
	if err != nil {
		t.Fatal(err)
	}
	if s.Data.Len() != 30 {
		t.Errorf("data has %d rows, want 30", s.Data.Len())
	}
	if s.Observations != 10 {
		t.Errorf("Observations = %d, want 10", s.Observations)
	}
	var xs, ys []float64
	slice.Convert(&xs, s.Data.MustColumn("x"))
	slice.Convert(&ys, s.Data.MustColumn("y"))
	if want := coord.RegionOf(xs, ys); s.Region != want {
		t.Errorf("region = %v, want data extent %v", s.Region, want)
	}
}

func TestBeginAttachedData(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a := randomArray(rng, 3, 2, 1)
	a.Data = randomData(rng, 4, 3)
	s, err := Begin(a)
	if err != nil {
		t.Fatal(err)
	}
	if s.Observations != 4 {
		t.Fatalf("attached data not used: %s", s.Summary())
	}

	// Explicit data wins over attached data.
	s, err = Begin(a, WithData(randomData(rng, 7, 3)))
	if err != nil {
		t.Fatal(err)
	}
	if s.Observations != 7 {
		t.Fatalf("explicit data not used: %s", s.Summary())
	}
}

func TestBegin1DRegion(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	a := randomArray(rng, 4, 1, 1)
	s, err := Begin(a, WithData(randomData(rng, 200, 4)))
	if err != nil {
		t.Fatal(err)
	}
	r := s.Region
	if !(r.XMin < 0 && r.XMax > 0) {
		t.Errorf("1-D region X %v does not straddle the centered data", r)
	}
	if !(r.YMax > r.YMin && r.YMin >= 0) {
		t.Errorf("1-D region Y %v is not a density range", r)
	}
	// Percentile bounds lie inside the data extent.
	var xs []float64
	slice.Convert(&xs, s.Data.MustColumn("x"))
	ext := coord.RegionOf(xs, nil)
	if r.XMin < ext.XMin || r.XMax > ext.XMax {
		t.Errorf("region X [%g,%g] outside data [%g,%g]", r.XMin, r.XMax, ext.XMin, ext.XMax)
	}
}

func TestBeginInterpolates(t *testing.T) {
	a := randomArray(rand.New(rand.NewSource(5)), 5, 2, 2)
	interp := &noInterp{}
	if _, err := Begin(a, WithInterpolator(interp)); err != nil {
		t.Fatal(err)
	}
	if interp.calls != 1 {
		t.Errorf("interpolator called %d times, want 1", interp.calls)
	}

	// The default interpolator adds frames.
	s, err := Begin(a, WithAngle(0.1))
	if err != nil {
		t.Fatal(err)
	}
	if s.Frames <= 2 {
		t.Errorf("got %d frames, want more than 2", s.Frames)
	}

	// Manual tours are never interpolated.
	a.ManipVar = 0
	interp.calls = 0
	s, err = Begin(a, WithInterpolator(interp))
	if err != nil {
		t.Fatal(err)
	}
	if interp.calls != 0 || s.Frames != 2 || s.ManipVar != 0 {
		t.Errorf("manual tour was interpolated: calls=%d, %s", interp.calls, s.Summary())
	}
}

func TestBeginSingleFrame(t *testing.T) {
	m := mat64.NewDense(3, 2, []float64{1, 0, 0, 1, 0, 0})
	s, err := Begin(SingleFrame(m))
	if err != nil {
		t.Fatal(err)
	}
	if s.Frames != 1 {
		t.Fatalf("Frames = %d, want 1", s.Frames)
	}
}

func TestBeginBadDims(t *testing.T) {
	_, err := Begin(SingleFrame(mat64.NewDense(4, 3, nil)))
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("want ConfigError, got %v", err)
	}
}

func TestSessionCheck(t *testing.T) {
	var nilSession *Session
	if err := nilSession.Check(2); err != ErrNoSession {
		t.Fatalf("nil session: want ErrNoSession, got %v", err)
	}

	s, err := Begin(randomArray(rand.New(rand.NewSource(6)), 3, 2, 1))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Check(2); err != nil {
		t.Fatalf("Check(2): %v", err)
	}
	var derr *DimensionError
	if err := s.Check(1); !errors.As(err, &derr) || derr.Want != 1 || derr.Have != 2 {
		t.Fatalf("Check(1): want DimensionError{1, 2}, got %v", err)
	}

	if Last() != s {
		t.Fatalf("Last() is not the newest session")
	}
	s.Close()
	if err := s.Check(2); err != ErrNoSession {
		t.Fatalf("closed session: want ErrNoSession, got %v", err)
	}
	if Last() != nil {
		t.Fatalf("Last() returned a closed session")
	}
	s.Close()
}

func TestFrameTable(t *testing.T) {
	a := randomArray(rand.New(rand.NewSource(7)), 4, 2, 3)
	tabs, err := ArrayToTables(a, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	ft := FrameTable(tabs.Basis, 2)
	if ft.Len() != 4 {
		t.Fatalf("frame 2 has %d rows, want 4", ft.Len())
	}
	for _, f := range ft.MustColumn("frame").([]int) {
		if f != 2 {
			t.Fatalf("frame table contains frame %d", f)
		}
	}
	if got, want := ft.MustColumn("x").([]float64)[0], a.Bases[1].At(0, 0); math.Abs(got-want) > 1e-12 {
		t.Fatalf("x = %g, want %g", got, want)
	}
}
