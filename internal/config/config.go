// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config reads tourplot defaults from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds defaults for command-line flags. Flags given on the
// command line override these.
type Config struct {
	FPS    float64 `env:"TOURPLOT_FPS" envDefault:"8"`
	Angle  float64 `env:"TOURPLOT_ANGLE" envDefault:"0.05"`
	Width  int     `env:"TOURPLOT_WIDTH" envDefault:"400"`
	Height int     `env:"TOURPLOT_HEIGHT" envDefault:"400"`
	Rewind bool    `env:"TOURPLOT_REWIND"`
	Seed   int64   `env:"TOURPLOT_SEED" envDefault:"1"`

	// Recipe is the path of a recipe file to use when -recipe is
	// not given.
	Recipe string `env:"TOURPLOT_RECIPE"`
}

// Load returns the Config described by the environment.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("reading TOURPLOT_* settings: %w", err)
	}
	switch {
	case cfg.FPS <= 0:
		return Config{}, fmt.Errorf("TOURPLOT_FPS must be positive, got %g", cfg.FPS)
	case cfg.Angle <= 0:
		return Config{}, fmt.Errorf("TOURPLOT_ANGLE must be positive, got %g", cfg.Angle)
	case cfg.Width <= 0 || cfg.Height <= 0:
		return Config{}, fmt.Errorf("image size must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	return cfg, nil
}
