// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package recipe parses plot recipes.
//
// A recipe lists the layers of a tour plot, one per line. Each line
// names a layer and gives its options as key=value words:
//
//	basis position=left manip_color=#d03030
//	point color=species shape=square alpha=0.7
//	highlight rows=1,5-7 initial=true
//	framecor
//
// Blank lines and lines starting with # are ignored. Lines are split
// into words using shell quoting rules.
//
// The color, shape, and fill options of point, text, and density name
// a categorical data column to map. A color that isn't a column name
// is a constant color, written as #rrggbb or one of a few names.
package recipe

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/aclements/tourplot/coord"
	"github.com/aclements/tourplot/proto"
	"github.com/aclements/tourplot/tour"
	"github.com/kballard/go-shellquote"
	"github.com/setanarut/vec"
)

// Columns maps the names of categorical data columns to their values,
// one per observation.
type Columns map[string][]string

// Parse reads a recipe from r.
func Parse(r io.Reader, cols Columns) ([]proto.Builder, error) {
	var out []proto.Builder
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		b, err := ParseLine(line, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		out = append(out, b)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseLine parses a single recipe line.
func ParseLine(line string, cols Columns) (proto.Builder, error) {
	words, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("empty recipe line")
	}
	mk, ok := layers[words[0]]
	if !ok {
		return nil, fmt.Errorf("unknown layer %q (known layers: %s)", words[0], strings.Join(Layers(), ", "))
	}
	o := &opts{m: make(map[string]string), used: make(map[string]bool), cols: cols}
	for _, w := range words[1:] {
		k, v, ok := strings.Cut(w, "=")
		if !ok {
			return nil, fmt.Errorf("%s: option %q is not key=value", words[0], w)
		}
		o.m[k] = v
	}
	b := mk(o)
	if err := o.done(); err != nil {
		return nil, fmt.Errorf("%s: %w", words[0], err)
	}
	return b, nil
}

// Layers returns the layer names a recipe may use.
func Layers() []string {
	var names []string
	for name := range layers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var layers map[string]func(o *opts) proto.Builder

func init() {
	layers = map[string]func(o *opts) proto.Builder{
		"default": func(o *opts) proto.Builder {
			return defaults{}
		},
		"basis": func(o *opts) proto.Builder {
			var b proto.Basis
			o.position(&b.Position)
			o.colorOpt("color", &b.Color)
			o.colorOpt("manip_color", &b.ManipColor)
			o.floatOpt("line_width", &b.LineWidth)
			o.floatOpt("text_size", &b.TextSize)
			return b
		},
		"basis1d": func(o *opts) proto.Builder {
			var b proto.Basis1D
			o.position(&b.Position)
			o.colorOpt("color", &b.Color)
			o.colorOpt("manip_color", &b.ManipColor)
			o.floatOpt("text_size", &b.TextSize)
			return b
		},
		"point": func(o *opts) proto.Builder {
			var b proto.Point
			o.aesStyle(&b.Aes, &b.Style)
			o.rows(&b.Rows)
			return b
		},
		"text": func(o *opts) proto.Builder {
			var b proto.Text
			o.aesStyle(&b.Aes, &b.Style)
			o.rows(&b.Rows)
			return b
		},
		"hex": func(o *opts) proto.Builder {
			var b proto.Hex
			o.intOpt("bins", &b.Bins)
			o.style(&b.Style)
			return b
		},
		"density": func(o *opts) proto.Builder {
			var b proto.Density
			o.aesStyle(&b.Aes, &b.Style)
			return b
		},
		"origin": func(o *opts) proto.Builder {
			var b proto.Origin
			o.position(&b.Position)
			o.style(&b.Style)
			return b
		},
		"origin1d": func(o *opts) proto.Builder {
			var b proto.Origin1D
			o.style(&b.Style)
			return b
		},
		"highlight": func(o *opts) proto.Builder {
			var b proto.Highlight
			o.rows(&b.Rows)
			o.boolOpt("initial", &b.MarkInitial)
			o.style(&b.Style)
			return b
		},
		"highlight1d": func(o *opts) proto.Builder {
			var b proto.Highlight1D
			o.rows(&b.Rows)
			o.boolOpt("initial", &b.MarkInitial)
			o.style(&b.Style)
			return b
		},
		"framecor": func(o *opts) proto.Builder {
			var b proto.FrameCor
			o.position(&b.Position)
			o.floatOpt("text_size", &b.TextSize)
			return b
		},
	}
}

// defaults builds the standard layers for the session's
// dimensionality.
type defaults struct{}

func (defaults) Build(s *tour.Session) ([]*proto.Layer, error) {
	if !s.Active() {
		return nil, tour.ErrNoSession
	}
	var out []*proto.Layer
	for _, b := range proto.Default(s) {
		ls, err := b.Build(s)
		if err != nil {
			return nil, err
		}
		out = append(out, ls...)
	}
	return out, nil
}

// opts holds the options of one recipe line. Accessors record the
// first error; done reports it along with any unused options.
type opts struct {
	m    map[string]string
	used map[string]bool
	cols Columns
	err  error
}

func (o *opts) get(key string) (string, bool) {
	v, ok := o.m[key]
	if ok {
		o.used[key] = true
	}
	return v, ok
}

func (o *opts) fail(key string, err error) {
	if o.err == nil {
		o.err = fmt.Errorf("option %s: %w", key, err)
	}
}

func (o *opts) done() error {
	if o.err != nil {
		return o.err
	}
	var unknown []string
	for k := range o.m {
		if !o.used[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown options %s", strings.Join(unknown, ", "))
	}
	return nil
}

func (o *opts) floatOpt(key string, dst *float64) {
	if v, ok := o.get(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			o.fail(key, err)
			return
		}
		*dst = f
	}
}

func (o *opts) intOpt(key string, dst *int) {
	if v, ok := o.get(key); ok {
		i, err := strconv.Atoi(v)
		if err != nil {
			o.fail(key, err)
			return
		}
		*dst = i
	}
}

func (o *opts) boolOpt(key string, dst *bool) {
	if v, ok := o.get(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			o.fail(key, err)
			return
		}
		*dst = b
	}
}

func (o *opts) colorOpt(key string, dst *color.Color) {
	if v, ok := o.get(key); ok {
		c, err := ParseColor(v)
		if err != nil {
			o.fail(key, err)
			return
		}
		*dst = c
	}
}

// position reads "position", or "pan" and "zoom" for an explicit
// placement.
func (o *opts) position(dst *coord.Position) {
	if v, ok := o.get("position"); ok {
		p, err := coord.ParsePosition(v)
		if err != nil {
			o.fail("position", err)
			return
		}
		*dst = p
	}
	pan, okPan := o.get("pan")
	zoom, okZoom := o.get("zoom")
	if !okPan && !okZoom {
		return
	}
	pz := [2]vec.Vec2{{0, 0}, {1, 1}}
	for i, s := range []string{pan, zoom} {
		if s == "" {
			continue
		}
		x, y, ok := strings.Cut(s, ",")
		fx, err1 := strconv.ParseFloat(x, 64)
		fy, err2 := strconv.ParseFloat(y, 64)
		if !ok || err1 != nil || err2 != nil {
			o.fail([]string{"pan", "zoom"}[i], fmt.Errorf("want x,y, got %q", s))
			return
		}
		pz[i] = vec.Vec2{fx, fy}
	}
	*dst = coord.PanZoom(pz[0], pz[1])
}

func (o *opts) style(dst *proto.Style) {
	o.colorOpt("color", &dst.Color)
	o.sizes(dst)
}

func (o *opts) sizes(dst *proto.Style) {
	o.floatOpt("size", &dst.Size)
	o.floatOpt("alpha", &dst.Alpha)
	o.floatOpt("line_width", &dst.LineWidth)
}

// aesStyle reads options that may either map a data column or set a
// constant style.
func (o *opts) aesStyle(aes *proto.Aes, style *proto.Style) {
	if v, ok := o.m["color"]; ok {
		if col, ok := o.cols[v]; ok {
			o.used["color"] = true
			aes.Color = col
		}
	}
	if aes.Color == nil {
		o.colorOpt("color", &style.Color)
	}
	if v, ok := o.get("shape"); ok {
		if col, ok := o.cols[v]; ok {
			aes.Shape = col
		} else {
			aes.Shape = []string{v}
		}
	}
	if v, ok := o.get("fill"); ok {
		col, ok := o.cols[v]
		if !ok {
			o.fail("fill", fmt.Errorf("no column %q", v))
		}
		aes.Fill = col
	}
	o.sizes(style)
}

// rows reads a list of 1-based observations and ranges, such as
// "1,4-6", into 0-based rows.
func (o *opts) rows(dst *[]int) {
	v, ok := o.get("rows")
	if !ok {
		return
	}
	var rows []int
	for _, part := range strings.Split(v, ",") {
		lo, hi, isRange := strings.Cut(part, "-")
		a, err := strconv.Atoi(lo)
		if err != nil || a < 1 {
			o.fail("rows", fmt.Errorf("bad row %q", part))
			return
		}
		b := a
		if isRange {
			if b, err = strconv.Atoi(hi); err != nil || b < a {
				o.fail("rows", fmt.Errorf("bad range %q", part))
				return
			}
		}
		for r := a; r <= b; r++ {
			rows = append(rows, r-1)
		}
	}
	*dst = rows
}

var namedColors = map[string]color.Color{
	"black": color.Black,
	"white": color.White,
	"gray":  color.Gray{0x80},
	"red":   color.RGBA{0xd0, 0x30, 0x30, 0xff},
	"green": color.RGBA{0x30, 0xa0, 0x40, 0xff},
	"blue":  color.RGBA{0x1f, 0x3f, 0xd0, 0xff},
}

// ParseColor parses a color written as #rrggbb, #rrggbbaa, or a name.
func ParseColor(s string) (color.Color, error) {
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if hex == s || (len(hex) != 6 && len(hex) != 8) {
		return nil, fmt.Errorf("bad color %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("bad color %q", s)
	}
	return color.NRGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}
