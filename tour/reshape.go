// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tour

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/aclements/go-gg/table"
	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

// Tables is the long-format form of a tour.
//
// Both tables have columns "x", "y" (only for 2-D tours), "frame",
// and "label". Frames are numbered from 1 and the rows of each frame
// are contiguous and in frame order.
type Tables struct {
	// Basis has one row per variable per frame. Its label column
	// names the variable and is the same in every frame.
	Basis *table.Table

	// Data has one row per observation per frame, or is nil if no
	// data was projected. Each frame's x and y are centered on 0.
	Data *table.Table

	// ManipVar is the manipulated variable of the source Array.
	ManipVar int
}

// ArrayToTables reshapes the bases of a into a Tables.
//
// If data is non-nil, it is projected through each frame's basis and
// each projected column is centered on its mean within the frame, so
// translation has no effect on the shape of the projection.
//
// Variables are labeled by labels if non-nil, otherwise by the
// abbreviated column names of data, otherwise "V1" through "Vp".
func ArrayToTables(a *Array, data *Data, labels []string) (*Tables, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	p, d, nframes := a.Dims()

	switch {
	case labels != nil:
		if len(labels) != p {
			return nil, &ConfigError{"labels", fmt.Sprintf("%d labels for %d variables", len(labels), p)}
		}
	case data != nil && data.Names != nil:
		labels = Abbreviate(data.Names, 3)
	default:
		labels = make([]string, p)
		for i := range labels {
			labels[i] = "V" + strconv.Itoa(i+1)
		}
	}

	// Basis table.
	bx, by := make([]float64, 0, p*nframes), []float64(nil)
	if d == 2 {
		by = make([]float64, 0, p*nframes)
	}
	frame := make([]int, 0, p*nframes)
	label := make([]string, 0, p*nframes)
	for f, b := range a.Bases {
		for i := 0; i < p; i++ {
			bx = append(bx, b.At(i, 0))
			if d == 2 {
				by = append(by, b.At(i, 1))
			}
			frame = append(frame, f+1)
			label = append(label, labels[i])
		}
	}
	out := &Tables{
		Basis:    buildTable(bx, by, frame, label),
		ManipVar: a.ManipVar,
	}
	if data == nil {
		return out, nil
	}

	// Data table.
	n, dp := data.Dims()
	if dp != p {
		return nil, &ConfigError{"data", fmt.Sprintf("%d columns for %d variables", dp, p)}
	}
	if data.RowNames != nil && len(data.RowNames) != n {
		return nil, &ConfigError{"data", fmt.Sprintf("%d row names for %d rows", len(data.RowNames), n)}
	}
	rowLabels := data.RowNames
	if rowLabels == nil {
		rowLabels = make([]string, n)
		for i := range rowLabels {
			rowLabels[i] = strconv.Itoa(i + 1)
		}
	}
	dx, dy := make([]float64, 0, n*nframes), []float64(nil)
	if d == 2 {
		dy = make([]float64, 0, n*nframes)
	}
	frame = make([]int, 0, n*nframes)
	label = make([]string, 0, n*nframes)
	for f, b := range a.Bases {
		proj := project(data.M, b)
		dx = append(dx, proj[0]...)
		if d == 2 {
			dy = append(dy, proj[1]...)
		}
		for i := 0; i < n; i++ {
			frame = append(frame, f+1)
		}
		label = append(label, rowLabels...)
	}
	out.Data = buildTable(dx, dy, frame, label)
	return out, nil
}

// project returns the columns of m×b, each centered on its mean.
func project(m, b *mat64.Dense) [][]float64 {
	n, _ := m.Dims()
	_, d := b.Dims()
	prod := mat64.NewDense(n, d, nil)
	prod.Mul(m, b)

	cols := make([][]float64, d)
	for j := range cols {
		col := make([]float64, n)
		for i := range col {
			col[i] = prod.At(i, j)
		}
		if n > 0 {
			floats.AddConst(-floats.Sum(col)/float64(n), col)
		}
		cols[j] = col
	}
	return cols
}

func buildTable(xs, ys []float64, frame []int, label []string) *table.Table {
	b := new(table.Builder).Add("x", xs)
	if ys != nil {
		b.Add("y", ys)
	}
	return b.Add("frame", frame).Add("label", label).Done()
}

// Abbreviate shortens each name to at least minLen characters, first
// by dropping lower case vowels from the end, then other lower case
// letters, then anything else, never dropping the first character.
// If the results are not unique, the colliding names are abbreviated
// again with a longer minimum length until they are.
func Abbreviate(names []string, minLen int) []string {
	out := make([]string, len(names))
	lens := make([]int, len(names))
	for i, name := range names {
		lens[i] = minLen
		out[i] = abbreviate(name, minLen)
	}

	for {
		byAbbrev := make(map[string][]int)
		for i, a := range out {
			byAbbrev[a] = append(byAbbrev[a], i)
		}
		changed := false
		for _, idxs := range byAbbrev {
			if len(idxs) < 2 {
				continue
			}
			for _, i := range idxs {
				if lens[i] >= len([]rune(names[i])) {
					continue
				}
				lens[i]++
				out[i] = abbreviate(names[i], lens[i])
				changed = true
			}
		}
		if !changed {
			return out
		}
	}
}

func abbreviate(name string, minLen int) string {
	rs := []rune(strings.TrimSpace(name))
	drop := func(pred func(rune) bool) {
		for i := len(rs) - 1; i > 0 && len(rs) > minLen; i-- {
			if pred(rs[i]) {
				rs = append(rs[:i], rs[i+1:]...)
			}
		}
	}
	drop(func(r rune) bool { return strings.ContainsRune("aeiou", r) })
	drop(unicode.IsLower)
	drop(unicode.IsSpace)
	if len(rs) > minLen {
		rs = rs[:minLen]
	}
	return string(rs)
}
