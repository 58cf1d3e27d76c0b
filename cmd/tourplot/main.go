// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command tourplot animates a grand tour of a data set.
//
// tourplot reads a CSV file with a header row. Numeric columns are
// projected through a sequence of random bases, interpolated along
// geodesics, and the resulting tour is drawn one frame per step.
// Other columns are categorical and may be mapped to color, shape,
// or fill by a recipe (see package internal/recipe).
//
// The output format follows the extension of the -o file: .gif for
// an animated GIF, .html for an interactive plotly.js page, and .svg
// for a single frame. An -o name containing a %d verb writes one SVG
// per frame. Flag defaults can be set with TOURPLOT_* environment
// variables.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/tourplot/anim"
	"github.com/aclements/tourplot/internal/config"
	"github.com/aclements/tourplot/internal/recipe"
	"github.com/aclements/tourplot/internal/status"
	"github.com/aclements/tourplot/proto"
	"github.com/aclements/tourplot/tour"
	"github.com/aclements/tourplot/tour/geodesic"
	"github.com/gonum/matrix/mat64"
)

func main() {
	log.SetPrefix("tourplot: ")
	log.SetFlags(0)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	var (
		flagClass   = flag.String("class", "", "color observations by categorical `column`")
		flagLabel   = flag.String("label", "", "label observations by `column`")
		flagDims    = flag.Int("d", 2, "project to `n` dimensions (1 or 2)")
		flagTargets = flag.Int("targets", 5, "tour through `n` random target bases")
		flagRecipe  = flag.String("recipe", cfg.Recipe, "read plot layers from `file`")
		flagOut     = flag.String("o", "", "write output to `file` (default: GIF to stdout)")
		flagFPS     = flag.Float64("fps", cfg.FPS, "animate at `rate` frames per second")
		flagAngle   = flag.Float64("angle", cfg.Angle, "interpolate in steps of `radians`")
		flagRewind  = flag.Bool("rewind", cfg.Rewind, "play the tour backwards after forwards")
		flagSeed    = flag.Int64("seed", cfg.Seed, "random `seed` for target bases")
		flagWidth   = flag.Int("width", cfg.Width, "image width in pixels")
		flagHeight  = flag.Int("height", cfg.Height, "image height in pixels")
		flagRaw     = flag.Bool("raw", false, "don't rescale columns to [0, 1]")
		flagTable   = flag.Bool("table", false, "output the frame tables instead of a plot")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] data.csv\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if *flagTargets < 1 {
		log.Fatal("-targets must be at least 1")
	}

	// Read data.
	path := flag.Arg(0)
	in := os.Stdin
	if path != "-" {
		in, err = os.Open(path)
		if err != nil {
			log.Fatal(err)
		}
	}
	data, cols, err := readCSV(in, *flagLabel)
	in.Close()
	if err != nil {
		log.Fatalf("%s: %v", path, err)
	}
	if !*flagRaw {
		rescale(data)
	}
	var class []string
	if *flagClass != "" {
		if class = cols[*flagClass]; class == nil {
			log.Fatalf("%s: no categorical column %q", path, *flagClass)
		}
	}

	// Begin the tour.
	_, p := data.Dims()
	rng := rand.New(rand.NewSource(*flagSeed))
	bases := make([]*mat64.Dense, *flagTargets)
	for i := range bases {
		bases[i] = geodesic.Random(p, *flagDims, rng)
	}
	s, err := tour.Begin(tour.NewArray(bases...), tour.WithData(data), tour.WithAngle(*flagAngle))
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	// Build the plot.
	var builders []proto.Builder
	if *flagRecipe != "" {
		builders, err = readRecipe(*flagRecipe, cols)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		builders = defaultBuilders(s, class)
	}
	plot := proto.New(s)
	if path != "-" {
		plot.Title = filepath.Base(path)
	}
	if err := plot.Add(builders...); err != nil {
		log.Fatal(err)
	}

	// Output table.
	if *flagTable {
		f := create(*flagOut)
		table.Fprint(f, s.Basis)
		if s.Data != nil {
			fmt.Fprintln(f)
			table.Fprint(f, s.Data)
		}
		closeOut(f)
		return
	}

	// Render.
	if strings.Contains(*flagOut, "%d") {
		svg := anim.SVG{Width: *flagWidth, Height: *flagHeight}
		err := svg.RenderFrames(plot, func(frame int) (io.WriteCloser, error) {
			return os.Create(fmt.Sprintf(*flagOut, frame))
		})
		if err != nil {
			log.Fatal(err)
		}
		return
	}
	var r anim.Renderer
	switch filepath.Ext(*flagOut) {
	case ".html":
		r = anim.HTML{FPS: *flagFPS}
	case ".svg":
		r = anim.SVG{Width: *flagWidth, Height: *flagHeight}
	case ".gif", "":
		r = anim.GIF{
			FPS:      *flagFPS,
			Rewind:   *flagRewind,
			Width:    *flagWidth,
			Height:   *flagHeight,
			Reporter: status.NewStderr(),
		}
	default:
		log.Fatalf("unknown output format %q", filepath.Ext(*flagOut))
	}
	f := create(*flagOut)
	if err := r.Render(f, plot); err != nil {
		log.Fatal(err)
	}
	closeOut(f)
}

// create opens the output file, or returns stdout if name is empty.
func create(name string) *os.File {
	if name == "" {
		return os.Stdout
	}
	f, err := os.Create(name)
	if err != nil {
		log.Fatal(err)
	}
	return f
}

func closeOut(f *os.File) {
	if f == os.Stdout {
		return
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
}

func readRecipe(path string, cols recipe.Columns) ([]proto.Builder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	bs, err := recipe.Parse(f, cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bs, nil
}

// defaultBuilders returns the default layers for s, with data marks
// colored by class if it is non-nil.
func defaultBuilders(s *tour.Session, class []string) []proto.Builder {
	bs := proto.Default(s)
	if class == nil {
		return bs
	}
	for i, b := range bs {
		switch b := b.(type) {
		case proto.Point:
			b.Aes.Color = class
			bs[i] = b
		case proto.Density:
			b.Aes.Fill = class
			bs[i] = b
		}
	}
	return bs
}
