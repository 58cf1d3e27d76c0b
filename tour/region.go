// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tour

import (
	"math"
	"sort"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/tourplot/coord"
)

// densityScale stretches the density range of a 1-D tour region so
// the density curve doesn't touch the top of the plot.
const densityScale = 1.8

// mapRegion returns the region layer builders map glyphs into.
//
// Without data, this is the unit box. For 2-D tours it is the extent
// of the projected data. For 1-D tours, X spans the 1st to 99th
// percentile of the projected data and Y spans the range of its
// density estimate, stretched by densityScale.
func mapRegion(data *table.Table, d int) coord.Region {
	if data == nil {
		return coord.UnitBox
	}
	var xs, ys []float64
	slice.Convert(&xs, data.MustColumn("x"))
	if d == 2 {
		slice.Convert(&ys, data.MustColumn("y"))
		return coord.RegionOf(xs, ys)
	}
	return densityRegion(xs)
}

func densityRegion(xs []float64) coord.Region {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	sample := stats.Sample{Xs: sorted, Sorted: true}
	r := coord.Region{
		XMin: sample.Quantile(0.01),
		XMax: sample.Quantile(0.99),
	}

	if stats.BandwidthScott(sample) == 0 {
		// Degenerate sample: all points coincide and there
		// is no density to scale by.
		Warning.Printf("projected data has no spread; using unit density range")
		r.YMin, r.YMax = 0, densityScale
		return r
	}

	dens := ggstat.Density{X: "x", N: 512}.F(new(table.Builder).Add("x", xs).Done())
	var ds []float64
	slice.Convert(&ds, table.Flatten(dens).MustColumn("probability density"))
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range ds {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	r.YMin, r.YMax = densityScale*lo, densityScale*hi
	return r
}
