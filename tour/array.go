// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tour turns a sequence of projection bases into the long
// tables consumed by tour plots.
//
// A tour is an animated sequence of linear projections of
// multivariate data onto one or two dimensions. Each frame of the
// tour is described by a basis: a p×d matrix whose columns span the
// projection plane, where p is the number of variables and d is 1 or
// 2. An Array holds the bases of all frames.
//
// ArrayToTables reshapes an Array, and optionally the data being
// projected, into go-gg tables with one row per variable (or
// observation) per frame. Begin builds a Session from an Array: it
// interpolates between bases, reshapes the result, and computes the
// plot region that layer builders map their glyphs into.
package tour

import (
	"fmt"
	"log"
	"math"
	"os"

	"github.com/gonum/matrix/mat64"
)

// Warning is a logger for conditions that don't prevent building a
// tour, but may lead to unexpected results.
var Warning = log.New(os.Stderr, "[tour] ", log.Lshortfile)

// NoManip is the ManipVar of an Array without a manipulated variable.
const NoManip = -1

// An Array is a sequence of projection bases, one per frame.
type Array struct {
	// Bases is the basis of each frame. Every basis must have
	// the same shape, p×d, where d is 1 or 2. Bases are expected
	// to be orthonormal, but this is not required.
	Bases []*mat64.Dense

	// ManipVar is the 0-based index of the variable rotated by a
	// manual tour, or NoManip. An Array with a manipulated
	// variable is taken to be a complete tour path and is never
	// interpolated.
	ManipVar int

	// Data is an optional data set to project through Bases.
	Data *Data
}

// NewArray returns an Array of the given bases with no manipulated
// variable and no data.
func NewArray(bases ...*mat64.Dense) *Array {
	return &Array{Bases: bases, ManipVar: NoManip}
}

// SingleFrame returns an Array with m as its only frame.
func SingleFrame(m *mat64.Dense) *Array {
	return NewArray(m)
}

// Dims returns the number of variables p, the number of projection
// dimensions d, and the number of frames f of a. If a has no frames,
// p and d are 0.
func (a *Array) Dims() (p, d, f int) {
	if len(a.Bases) == 0 {
		return 0, 0, 0
	}
	p, d = a.Bases[0].Dims()
	return p, d, len(a.Bases)
}

// Validate checks that a has at least one frame, that every frame has
// the same shape, and that it projects onto 1 or 2 dimensions.
func (a *Array) Validate() error {
	if len(a.Bases) == 0 {
		return &ConfigError{"basis array", "no frames"}
	}
	p, d, _ := a.Dims()
	if d != 1 && d != 2 {
		return &ConfigError{"projection dimensions", fmt.Sprint(d)}
	}
	for i, b := range a.Bases {
		if bp, bd := b.Dims(); bp != p || bd != d {
			return &ConfigError{"basis shape", fmt.Sprintf("frame %d is %d×%d, want %d×%d", i+1, bp, bd, p, d)}
		}
	}
	if a.ManipVar != NoManip && (a.ManipVar < 0 || a.ManipVar >= p) {
		return &ConfigError{"manipulated variable", fmt.Sprint(a.ManipVar)}
	}
	if a.Data != nil {
		if _, c := a.Data.Dims(); c != p {
			return &ConfigError{"data", fmt.Sprintf("%d columns for %d variables", c, p)}
		}
	}
	return nil
}

// Orthonormal reports whether every basis of a is orthonormal to
// within tol.
func (a *Array) Orthonormal(tol float64) bool {
	for _, b := range a.Bases {
		var btb mat64.Dense
		btb.Mul(b.T(), b)
		r, c := btb.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				want := 0.0
				if i == j {
					want = 1
				}
				if math.Abs(btb.At(i, j)-want) > tol {
					return false
				}
			}
		}
	}
	return true
}

// Data is an n×p numeric data set.
type Data struct {
	M *mat64.Dense

	// Names optionally names each column. If present, it must
	// have one entry per column.
	Names []string

	// RowNames optionally labels each observation. If nil,
	// observations are labeled by their 1-based row number.
	RowNames []string
}

// Dims returns the number of observations and variables in d.
func (d *Data) Dims() (n, p int) {
	return d.M.Dims()
}

// NewData returns a Data of rows, which must all have the same length.
func NewData(names []string, rows [][]float64) (*Data, error) {
	if len(rows) == 0 {
		return nil, &ConfigError{"data", "no rows"}
	}
	p := len(rows[0])
	flat := make([]float64, 0, len(rows)*p)
	for i, row := range rows {
		if len(row) != p {
			return nil, &ConfigError{"data", fmt.Sprintf("row %d has %d columns, want %d", i+1, len(row), p)}
		}
		flat = append(flat, row...)
	}
	if names != nil && len(names) != p {
		return nil, &ConfigError{"data", fmt.Sprintf("%d names for %d columns", len(names), p)}
	}
	return &Data{M: mat64.NewDense(len(rows), p, flat), Names: names}, nil
}
