// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package status reports the progress of long renders.
//
// On a terminal, progress is shown on a single status line that is
// rewritten in place. Anywhere else, each status is a line of output.
package status

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/crypto/ssh/terminal"
)

// A Reporter shows a changing status line. Writes to a Reporter
// appear above the status line.
type Reporter interface {
	io.Writer
	Start()
	Status(format string, a ...interface{})
	Stop()
}

// NewStderr returns a Reporter that writes to os.Stderr, using a
// live status line if stderr is a capable terminal.
func NewStderr() Reporter {
	return New(os.Stderr, int(os.Stderr.Fd()))
}

// New returns a Reporter that writes to w. fd is the file descriptor
// backing w, or -1 if there is none.
func New(w io.Writer, fd int) Reporter {
	term := os.Getenv("TERM")
	if term == "" || term == "dumb" || fd < 0 || !terminal.IsTerminal(fd) {
		return &Lines{w: w}
	}
	return &Line{w: w}
}

// Discard is a Reporter that drops everything.
var Discard Reporter = &Lines{w: io.Discard}

// Lines is a Reporter that prints each status on its own line.
type Lines struct {
	w io.Writer
}

func (r *Lines) Start() {}
func (r *Lines) Stop()  {}

func (r *Lines) Status(format string, a ...interface{}) {
	fmt.Fprintf(r.w, format, a...)
	r.w.Write([]byte{'\n'})
}

func (r *Lines) Write(data []byte) (int, error) {
	return r.w.Write(data)
}

// Line is a Reporter that keeps the latest status on the last line of
// a VT100 terminal along with the elapsed time and a spinner.
type Line struct {
	w io.Writer

	mu     sync.Mutex // Protects w and the fields below
	status string
	dirty  bool

	stop chan struct{}
	done chan struct{}
}

// VT100 control sequences
const (
	clearLine = "\r\x1b[2K"
	noWrap    = "\x1b[?7l"
	wrap      = "\x1b[?7h"
	toEOL     = "\x1b[999C"
)

// redrawEvery is how often the status line may change on screen.
// Updates in between are coalesced.
const redrawEvery = time.Second / 10

func (r *Line) Start() {
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	go r.run(time.Now())
}

func (r *Line) Stop() {
	close(r.stop)
	<-r.done
}

func (r *Line) Status(format string, a ...interface{}) {
	r.mu.Lock()
	r.status = fmt.Sprintf(format, a...)
	r.dirty = true
	r.mu.Unlock()
}

func (r *Line) Write(data []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// The next tick redraws the status below data.
	r.dirty = true
	fmt.Fprint(r.w, clearLine+wrap)
	return r.w.Write(data)
}

func (r *Line) run(start time.Time) {
	defer close(r.done)
	const spinner = `-\|/`

	tick := time.NewTicker(redrawEvery)
	defer tick.Stop()
	for n := 0; ; n++ {
		select {
		case <-tick.C:
		case <-r.stop:
			r.mu.Lock()
			fmt.Fprintf(r.w, "%s%s%s%s\n", clearLine, noWrap, r.status, wrap)
			r.mu.Unlock()
			return
		}

		// The spinner turns twice a second even without updates.
		spin := n % 5
		r.mu.Lock()
		if r.dirty || spin == 0 {
			elapsed := time.Since(start).Truncate(time.Second / 10)
			fmt.Fprintf(r.w, "%s%s%s [%v]%s%c", clearLine, noWrap, r.status, elapsed, toEOL, spinner[n/5%len(spinner)])
			r.dirty = false
		}
		r.mu.Unlock()
	}
}
