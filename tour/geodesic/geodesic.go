// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geodesic moves between projection bases in small steps.
//
// This is a lightweight stand-in for a full tour library. Path rotates
// each basis column along the great circle toward the matching column
// of the next basis and restores orthonormality after every step. It
// does not compute principal angles between planes, so paths between
// 2-D bases may be longer than the true geodesic.
package geodesic

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

// Path interpolates between consecutive bases.
type Path struct {
	// MaxSteps limits the number of frames inserted between any
	// two bases. If 0, there is no limit.
	MaxSteps int
}

// Interpolate returns a path that starts at bases[0], passes through
// every following basis, and moves at most angle radians per frame.
func (pa Path) Interpolate(bases []*mat64.Dense, angle float64) ([]*mat64.Dense, error) {
	if len(bases) == 0 {
		return nil, errors.New("no bases to interpolate")
	}
	if angle <= 0 || math.IsNaN(angle) {
		return nil, fmt.Errorf("bad interpolation angle %g", angle)
	}
	p, d := bases[0].Dims()

	out := []*mat64.Dense{mat64.DenseCopyOf(bases[0])}
	for k := 1; k < len(bases); k++ {
		a, z := columns(bases[k-1]), columns(bases[k])
		if bp, bd := bases[k].Dims(); bp != p || bd != d {
			return nil, fmt.Errorf("basis %d is %d×%d, want %d×%d", k+1, bp, bd, p, d)
		}

		dist := 0.0
		for j := range a {
			dist = math.Max(dist, between(a[j], z[j]))
		}
		steps := int(math.Ceil(dist / angle))
		if pa.MaxSteps > 0 && steps > pa.MaxSteps {
			steps = pa.MaxSteps
		}

		for s := 1; s < steps; s++ {
			t := float64(s) / float64(steps)
			cols := make([][]float64, d)
			for j := range cols {
				cols[j] = slerp(a[j], z[j], t)
			}
			orthonormalize(cols)
			out = append(out, fromColumns(cols))
		}
		out = append(out, mat64.DenseCopyOf(bases[k]))
	}
	return out, nil
}

// Random returns a random p×d orthonormal basis.
func Random(p, d int, rng *rand.Rand) *mat64.Dense {
	cols := make([][]float64, d)
	for {
		for j := range cols {
			cols[j] = make([]float64, p)
			for i := range cols[j] {
				cols[j][i] = rng.NormFloat64()
			}
		}
		if orthonormalize(cols) {
			return fromColumns(cols)
		}
	}
}

func columns(m *mat64.Dense) [][]float64 {
	p, d := m.Dims()
	cols := make([][]float64, d)
	for j := range cols {
		cols[j] = make([]float64, p)
		for i := range cols[j] {
			cols[j][i] = m.At(i, j)
		}
	}
	return cols
}

func fromColumns(cols [][]float64) *mat64.Dense {
	p, d := len(cols[0]), len(cols)
	m := mat64.NewDense(p, d, nil)
	for j, col := range cols {
		for i, v := range col {
			m.Set(i, j, v)
		}
	}
	return m
}

// between returns the angle between vectors a and b.
func between(a, b []float64) float64 {
	na, nb := floats.Norm(a, 2), floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	c := floats.Dot(a, b) / (na * nb)
	return math.Acos(math.Max(-1, math.Min(1, c)))
}

// slerp rotates a toward b by fraction t of the angle between them.
func slerp(a, b []float64, t float64) []float64 {
	theta := between(a, b)
	out := make([]float64, len(a))
	switch {
	case theta < 1e-9:
		copy(out, a)
	case math.Pi-theta < 1e-9:
		// Antipodal: any great circle works. Rotate through a
		// direction orthogonal to a.
		perp := make([]float64, len(a))
		perp[minIndex(a)] = 1
		floats.AddScaled(perp, -floats.Dot(perp, a)/floats.Dot(a, a), a)
		floats.Scale(floats.Norm(a, 2)/floats.Norm(perp, 2), perp)
		floats.AddScaled(out, math.Cos(math.Pi*t), a)
		floats.AddScaled(out, math.Sin(math.Pi*t), perp)
	default:
		s := math.Sin(theta)
		floats.AddScaled(out, math.Sin((1-t)*theta)/s, a)
		floats.AddScaled(out, math.Sin(t*theta)/s, b)
	}
	return out
}

func minIndex(a []float64) int {
	mi := 0
	for i, v := range a {
		if math.Abs(v) < math.Abs(a[mi]) {
			mi = i
		}
	}
	return mi
}

// orthonormalize applies Gram-Schmidt to cols in place. It returns
// false if the columns are linearly dependent.
func orthonormalize(cols [][]float64) bool {
	for j, col := range cols {
		for _, prev := range cols[:j] {
			floats.AddScaled(col, -floats.Dot(col, prev), prev)
		}
		n := floats.Norm(col, 2)
		if n < 1e-12 {
			return false
		}
		floats.Scale(1/n, col)
	}
	return true
}
