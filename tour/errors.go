// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tour

import (
	"errors"
	"fmt"

	"github.com/aclements/tourplot/coord"
)

// ErrNoSession is returned when a tour session is used before it was
// begun or after it was closed.
var ErrNoSession = errors.New("no active tour; begin a tour before adding layers")

// ConfigError reports an invalid input to a tour, such as bases that
// project onto neither 1 nor 2 dimensions.
type ConfigError = coord.ConfigError

// DimensionError reports a layer built for one projection
// dimensionality used with a tour of another.
type DimensionError struct {
	Want, Have int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("layer requires a %d-D tour, but the active tour is %d-D", e.Want, e.Have)
}
