// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tour

import (
	"fmt"
	"sync"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/tourplot/coord"
	"github.com/aclements/tourplot/tour/geodesic"
	"github.com/gonum/matrix/mat64"
)

// DefaultAngle is the default step, in radians, between interpolated
// frames.
const DefaultAngle = 0.05

// An Interpolator expands a sequence of bases into a path that moves
// between consecutive bases in steps of at most angle radians. The
// result must start with the first basis and end with the last.
type Interpolator interface {
	Interpolate(bases []*mat64.Dense, angle float64) ([]*mat64.Dense, error)
}

// A Session is a tour ready to be drawn: the reshaped frame tables
// plus what layer builders need to know about them.
//
// A Session is read-only between Begin and Close. Close releases the
// tables; any later use of the Session fails with ErrNoSession.
type Session struct {
	// Basis and Data are the frame tables. Data is nil if the
	// tour has no data.
	Basis, Data *table.Table

	// Region is the area of the plot occupied by the data.
	Region coord.Region

	// Frames is the number of frames in the tour.
	Frames int

	// Variables and Observations are the number of rows per frame
	// of Basis and Data, respectively. Observations is 0 if the
	// tour has no data.
	Variables, Observations int

	// Dims is the number of projection dimensions, 1 or 2.
	Dims int

	// ManipVar is the manipulated variable, or NoManip.
	ManipVar int

	closed bool
}

type options struct {
	data   *Data
	labels []string
	angle  float64
	interp Interpolator
}

// An Option configures Begin.
type Option func(*options)

// WithData projects data through the tour. It overrides any data
// attached to the Array.
func WithData(d *Data) Option {
	return func(o *options) { o.data = d }
}

// WithLabels labels the tour's variables.
func WithLabels(labels []string) Option {
	return func(o *options) { o.labels = labels }
}

// WithAngle sets the interpolation step in radians.
func WithAngle(angle float64) Option {
	return func(o *options) { o.angle = angle }
}

// WithInterpolator replaces the default geodesic interpolator.
func WithInterpolator(i Interpolator) Option {
	return func(o *options) { o.interp = i }
}

var last struct {
	sync.Mutex
	s *Session
}

// Begin starts a tour of a.
//
// If a has more than one frame and no manipulated variable, Begin
// interpolates between its bases so that consecutive frames differ
// by at most the interpolation angle. Arrays with a manipulated
// variable already describe a full path and are used as is.
//
// The new Session also becomes the one returned by Last.
func Begin(a *Array, opts ...Option) (*Session, error) {
	o := options{angle: DefaultAngle, interp: geodesic.Path{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.data == nil {
		o.data = a.Data
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}
	if !a.Orthonormal(1e-3) {
		Warning.Printf("bases are not orthonormal")
	}

	path := a
	_, d, f := a.Dims()
	if a.ManipVar == NoManip && f > 1 {
		if o.angle <= 0 {
			return nil, &ConfigError{"interpolation angle", fmt.Sprint(o.angle)}
		}
		bases, err := o.interp.Interpolate(a.Bases, o.angle)
		if err != nil {
			return nil, fmt.Errorf("interpolating tour: %w", err)
		}
		path = &Array{Bases: bases, ManipVar: a.ManipVar}
	}

	tabs, err := ArrayToTables(path, o.data, o.labels)
	if err != nil {
		return nil, err
	}

	s := &Session{
		Basis:    tabs.Basis,
		Data:     tabs.Data,
		Region:   mapRegion(tabs.Data, d),
		Frames:   countFrames(tabs.Basis),
		Dims:     d,
		ManipVar: tabs.ManipVar,
	}
	s.Variables = tabs.Basis.Len() / s.Frames
	if tabs.Data != nil {
		s.Observations = tabs.Data.Len() / s.Frames
	}

	last.Lock()
	last.s = s
	last.Unlock()
	return s, nil
}

// Last returns the most recently begun Session that has not been
// closed, or nil.
func Last() *Session {
	last.Lock()
	defer last.Unlock()
	return last.s
}

func countFrames(t *table.Table) int {
	seen := make(map[int]bool)
	for _, f := range t.MustColumn("frame").([]int) {
		seen[f] = true
	}
	return len(seen)
}

// Active reports whether s can still be read.
func (s *Session) Active() bool {
	return s != nil && !s.closed
}

// Close releases s's tables. It is safe to call Close more than once.
func (s *Session) Close() {
	if s == nil {
		return
	}
	s.closed = true
	s.Basis, s.Data = nil, nil

	last.Lock()
	if last.s == s {
		last.s = nil
	}
	last.Unlock()
}

// Check returns an error if s is not active or if its projection
// dimensionality is not dims. Dimensionality is taken from whether the
// basis table has a "y" column.
func (s *Session) Check(dims int) error {
	if !s.Active() {
		return ErrNoSession
	}
	have := 1
	if s.Basis.Column("y") != nil {
		have = 2
	}
	if have != dims {
		return &DimensionError{Want: dims, Have: have}
	}
	return nil
}

// HasData reports whether s projects a data set.
func (s *Session) HasData() bool {
	return s.Active() && s.Data != nil
}

// FrameTable returns the rows of t belonging to frame, which is
// numbered from 1.
func FrameTable(t *table.Table, frame int) *table.Table {
	return table.Flatten(table.Filter(t, func(f int) bool {
		return f == frame
	}, "frame"))
}

// Summary describes s in one line.
func (s *Session) Summary() string {
	if !s.Active() {
		return "no active tour"
	}
	manip := "none"
	if s.ManipVar != NoManip {
		manip = fmt.Sprint(s.ManipVar + 1)
	}
	return fmt.Sprintf("%d-D tour: %d frames, %d variables, %d observations, manip var %s, region %v",
		s.Dims, s.Frames, s.Variables, s.Observations, manip, s.Region)
}
