// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anim

import (
	"image"
	"image/color/palette"
	"image/gif"
	"io"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/aclements/tourplot/internal/status"
	"github.com/aclements/tourplot/proto"
	"golang.org/x/image/draw"
)

// GIF renders a plot as an animated GIF with one image per frame.
type GIF struct {
	// FPS is the number of frames per second. It defaults to 8.
	FPS float64

	// Rewind plays the tour backwards after playing it forwards.
	Rewind bool

	// StartPause and EndPause hold the first and last frames for
	// the given time. Zero means one second; a negative value
	// means no pause.
	StartPause, EndPause time.Duration

	// Width and Height are the image size in pixels. They
	// default to 400.
	Width, Height int

	// Reporter, if non-nil, receives progress updates.
	Reporter status.Reporter

	// Workers is the number of frames rasterized concurrently. It
	// defaults to GOMAXPROCS.
	Workers int
}

// Render rasterizes every frame of p and writes the animation to w.
func (g GIF) Render(w io.Writer, p *proto.Plot) error {
	frames, err := prepare(p)
	if err != nil {
		return err
	}
	width, height := g.Width, g.Height
	if width <= 0 {
		width = 400
	}
	if height <= 0 {
		height = 400
	}
	rep := g.Reporter
	if rep == nil {
		rep = status.Discard
	}

	workers := g.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	region := fitAspect(bounds(p.Layers()), width, height)
	rep.Start()
	images := rasterize(frames, workers, rep, func(f int) *image.Paletted {
		c := newRaster(width, height, region)
		for _, l := range p.Layers() {
			c.layer(l, f)
		}
		return quantize(c.render(p.Title))
	})
	rep.Stop()

	out := &gif.GIF{LoopCount: 0}
	if frames == 1 {
		out.Image = images
		out.Delay = []int{0}
		return gif.EncodeAll(w, out)
	}

	delay := g.delay()
	for _, img := range images {
		out.Image = append(out.Image, img)
		out.Delay = append(out.Delay, delay)
	}
	out.Delay[0] += pause(g.StartPause)
	out.Delay[len(out.Delay)-1] += pause(g.EndPause)
	if g.Rewind {
		// The loop returns to the first frame, so stop short of
		// it.
		for f := frames - 2; f > 0; f-- {
			out.Image = append(out.Image, images[f])
			out.Delay = append(out.Delay, delay)
		}
	}
	return gif.EncodeAll(w, out)
}

// rasterize calls render for frames 1 through n, running at most
// workers calls at once, and returns the images in frame order.
func rasterize(n, workers int, rep status.Reporter, render func(frame int) *image.Paletted) []*image.Paletted {
	out := make([]*image.Paletted, n)
	limit := make(chan struct{}, workers) // One token per frame in flight
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		done int
	)
	for f := 1; f <= n; f++ {
		limit <- struct{}{}
		wg.Add(1)
		go func(f int) {
			defer func() {
				<-limit
				wg.Done()
			}()
			out[f-1] = render(f)

			mu.Lock()
			done++
			rep.Status("rendered frame %d/%d", done, n)
			mu.Unlock()
		}(f)
	}
	wg.Wait()
	return out
}

// delay returns the time between frames in 100ths of a second.
func (g GIF) delay() int {
	fps := g.FPS
	if fps <= 0 {
		fps = 8
	}
	d := int(math.Round(100 / fps))
	if d < 1 {
		d = 1
	}
	return d
}

// pause converts a pause duration to 100ths of a second.
func pause(d time.Duration) int {
	switch {
	case d < 0:
		return 0
	case d == 0:
		d = time.Second
	}
	return int(d / (10 * time.Millisecond))
}

func quantize(img *image.RGBA) *image.Paletted {
	out := image.NewPaletted(img.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(out, out.Bounds(), img, image.Point{})
	return out
}
