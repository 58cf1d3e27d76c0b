// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	want := Config{FPS: 8, Angle: 0.05, Width: 400, Height: 400, Seed: 1}
	if cfg != want {
		t.Errorf("got %+v, want %+v", cfg, want)
	}
}

func TestLoadOverride(t *testing.T) {
	t.Setenv("TOURPLOT_FPS", "12.5")
	t.Setenv("TOURPLOT_REWIND", "true")
	t.Setenv("TOURPLOT_RECIPE", "plot.recipe")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FPS != 12.5 || !cfg.Rewind || cfg.Recipe != "plot.recipe" {
		t.Errorf("got %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	for _, test := range []struct {
		key, val, want string
	}{
		{"TOURPLOT_WIDTH", "wide", "reading TOURPLOT_* settings:"},
		{"TOURPLOT_FPS", "0", "TOURPLOT_FPS must be positive"},
		{"TOURPLOT_ANGLE", "-0.1", "TOURPLOT_ANGLE must be positive"},
		{"TOURPLOT_HEIGHT", "0", "image size must be positive"},
	} {
		t.Run(test.key, func(t *testing.T) {
			t.Setenv(test.key, test.val)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), test.want) {
				t.Errorf("%s=%s: got %v, want error containing %q", test.key, test.val, err, test.want)
			}
		})
	}
}
