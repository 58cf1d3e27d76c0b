// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recipe

import (
	"image/color"
	"reflect"
	"strings"
	"testing"

	"github.com/aclements/tourplot/coord"
	"github.com/aclements/tourplot/proto"
	"github.com/setanarut/vec"
)

var species = []string{"setosa", "setosa", "virginica"}

func TestParse(t *testing.T) {
	const src = `
# Layers for the iris tour.
basis position=left manip_color=#ff0000
point color=species shape=square alpha=0.5
highlight rows=1,3-4 initial=true
origin pan=1,2 zoom=0.5,0.5
framecor position=off
`
	bs, err := Parse(strings.NewReader(src), Columns{"species": species})
	if err != nil {
		t.Fatal(err)
	}
	want := []proto.Builder{
		proto.Basis{Position: coord.Left, ManipColor: color.NRGBA{0xff, 0, 0, 0xff}},
		proto.Point{Aes: proto.Aes{Color: species, Shape: []string{"square"}}, Style: proto.Style{Alpha: 0.5}},
		proto.Highlight{Rows: []int{0, 2, 3}, MarkInitial: true},
		proto.Origin{Position: coord.PanZoom(vec.Vec2{1, 2}, vec.Vec2{0.5, 0.5})},
		proto.FrameCor{Position: coord.Off},
	}
	if !reflect.DeepEqual(bs, want) {
		t.Errorf("got  %#v\nwant %#v", bs, want)
	}
}

func TestParseLine(t *testing.T) {
	cols := Columns{"species": species}
	for _, test := range []struct {
		line string
		want proto.Builder
	}{
		{"default", defaults{}},
		{"point color=blue", proto.Point{Style: proto.Style{Color: namedColors["blue"]}}},
		{"density fill=species color=species", proto.Density{Aes: proto.Aes{Fill: species, Color: species}}},
		{"hex bins=12", proto.Hex{Bins: 12}},
		{`text color="#00000080"`, proto.Text{Style: proto.Style{Color: color.NRGBA{0, 0, 0, 0x80}}}},
		{"basis1d position=center text_size=9", proto.Basis1D{Position: coord.Center, TextSize: 9}},
		{"highlight1d rows=2", proto.Highlight1D{Rows: []int{1}}},
	} {
		got, err := ParseLine(test.line, cols)
		if err != nil {
			t.Errorf("%s: %v", test.line, err)
			continue
		}
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("%s: got %#v, want %#v", test.line, got, test.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, test := range []struct {
		line, want string
	}{
		{"scatter", `unknown layer "scatter"`},
		{"basis position=middle", `invalid position "middle"`},
		{"basis size=3", "unknown options size"},
		{"point rows=0", `bad row "0"`},
		{"point rows=4-2", `bad range "4-2"`},
		{"point color=teal", `bad color "teal"`},
		{"density fill=petal", `no column "petal"`},
		{"origin pan=1", "want x,y"},
		{"hex bins", "not key=value"},
		{`text "unterminated`, "Unterminated"},
	} {
		_, err := ParseLine(test.line, nil)
		if err == nil || !strings.Contains(err.Error(), test.want) {
			t.Errorf("%s: got %v, want error containing %q", test.line, err, test.want)
		}
	}

	_, err := Parse(strings.NewReader("basis\n\nbogus\n"), nil)
	if err == nil || !strings.HasPrefix(err.Error(), "line 3: ") {
		t.Errorf("got %v, want error on line 3", err)
	}
}

func TestParseColor(t *testing.T) {
	for _, test := range []struct {
		in   string
		want color.Color
	}{
		{"#102030", color.NRGBA{0x10, 0x20, 0x30, 0xff}},
		{"#10203040", color.NRGBA{0x10, 0x20, 0x30, 0x40}},
		{"black", color.Black},
	} {
		got, err := ParseColor(test.in)
		if err != nil || got != test.want {
			t.Errorf("ParseColor(%q) = %v, %v; want %v", test.in, got, err, test.want)
		}
	}
	for _, bad := range []string{"102030", "#12345", "#gggggg"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q): want error", bad)
		}
	}
}
