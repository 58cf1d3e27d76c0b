// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto

import (
	"fmt"
	"image/color"

	"github.com/aclements/go-gg/palette"
)

// ReplicationError reports a per-observation or per-variable argument
// whose length is neither 1 nor the number of rows per frame.
type ReplicationError struct {
	Arg        string
	Len, Count int
}

func (e *ReplicationError) Error() string {
	return fmt.Sprintf("%s has %d values; want 1 or %d", e.Arg, e.Len, e.Count)
}

// Replicate expands vals, which gives one value per row of a frame,
// to cover frames frames of count rows each. A single value is
// recycled for every row.
//
// If len(vals) is neither 1 nor count, Replicate returns a
// *ReplicationError rather than recycling vals into misaligned rows.
func Replicate[T any](vals []T, count, frames int) ([]T, error) {
	out := make([]T, 0, count*frames)
	switch len(vals) {
	case 1:
		for i := 0; i < count*frames; i++ {
			out = append(out, vals[0])
		}
	case count:
		for f := 0; f < frames; f++ {
			out = append(out, vals...)
		}
	default:
		return nil, &ReplicationError{Len: len(vals), Count: count}
	}
	return out, nil
}

func replicateArg(arg string, vals []string, count, frames int) ([]string, error) {
	out, err := Replicate(vals, count, frames)
	if rerr, ok := err.(*ReplicationError); ok {
		rerr.Arg = arg
	}
	return out, err
}

// Aes binds per-row aesthetics to categorical values. Each field is
// nil, a single value for all rows, or one value per observation.
type Aes struct {
	// Color assigns each row a color by category.
	Color []string

	// Shape names the point shape of each row: "circle" (the
	// default), "square", "triangle", or "cross".
	Shape []string

	// Fill splits area marks, such as densities, by category.
	Fill []string
}

var shapes = map[string]bool{"": true, "circle": true, "square": true, "triangle": true, "cross": true}

// validate checks a against count rows per frame.
func (a Aes) validate(count int) error {
	for _, arg := range []struct {
		name string
		vals []string
	}{{"color", a.Color}, {"shape", a.Shape}, {"fill", a.Fill}} {
		if arg.vals != nil && len(arg.vals) != 1 && len(arg.vals) != count {
			return &ReplicationError{arg.name, len(arg.vals), count}
		}
	}
	for _, s := range a.Shape {
		if !shapes[s] {
			return fmt.Errorf("unknown shape %q", s)
		}
	}
	return nil
}

// subset returns the values of vals at rows, or vals itself if it
// has a single value or rows is nil.
func subset[T any](vals []T, rows []int) []T {
	if len(vals) <= 1 || rows == nil {
		return vals
	}
	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = vals[r]
	}
	return out
}

// Categorical maps each distinct value of cats, in order of first
// appearance, to an evenly spaced color of the Viridis palette.
func Categorical(cats []string) []color.Color {
	levels := make(map[string]int)
	for _, c := range cats {
		if _, ok := levels[c]; !ok {
			levels[c] = len(levels)
		}
	}
	out := make([]color.Color, len(cats))
	for i, c := range cats {
		x := 0.0
		if len(levels) > 1 {
			x = float64(levels[c]) / float64(len(levels)-1)
		}
		out[i] = palette.Viridis.Map(x)
	}
	return out
}
