package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded config = %+v\nexpected %+v", cfg, Default())
	}
}

func TestDefaultValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("maze:\n  layout: carved\n  width: 41\nrun:\n  tick_rate: 30\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Maze.Layout != "carved" || cfg.Maze.Width != 41 || cfg.Run.TickRate != 30 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Maze.Home != [2]int{2, 12} || cfg.Palette.Wall != (RGB{0, 0, 1}) || cfg.Run.StepsPerTick != 1 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative width", func(c *Config) { c.Maze.Width = -1 }},
		{"same markers", func(c *Config) { c.Maze.Goal = c.Maze.Home }},
		{"negative home", func(c *Config) { c.Maze.Home = [2]int{-1, 0} }},
		{"density", func(c *Config) { c.Maze.Density = 2 }},
		{"braiding", func(c *Config) { c.Maze.Braiding = -0.5 }},
		{"no layout", func(c *Config) { c.Maze.Layout = "" }},
		{"fade rate", func(c *Config) { c.Canvas.FadeRate = -1 }},
		{"fade curve", func(c *Config) { c.Canvas.FadeCurve = "bounce" }},
		{"color channel", func(c *Config) { c.Palette.Path = RGB{1.5, 0, 0} }},
		{"low factor", func(c *Config) { c.Palette.LowFactor = 2 }},
		{"tick rate", func(c *Config) { c.Run.TickRate = 0 }},
		{"steps", func(c *Config) { c.Run.StepsPerTick = 0 }},
		{"restart delay", func(c *Config) { c.Run.RestartDelayTicks = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() error = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestPaletteResolve(t *testing.T) {
	p, err := Default().Palette.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if p.Home.Hex() != "#ff0000" || p.Searched.Hex() != "#ffffff" || p.LowFactor != 0.9 {
		t.Errorf("Resolve() = %+v", p)
	}
}

func TestApplyDensityPreset(t *testing.T) {
	tests := []struct {
		preset  DensityPreset
		density float64
	}{
		{DensitySparse, 0.15},
		{DensityNormal, 0.3052},
		{DensityDense, 0.5},
	}
	for _, tt := range tests {
		cfg := Default()
		if err := ApplyDensityPreset(&cfg, tt.preset); err != nil {
			t.Fatalf("ApplyDensityPreset(%s) error = %v", tt.preset, err)
		}
		if cfg.Maze.Density != tt.density {
			t.Errorf("ApplyDensityPreset(%s) density = %v, expected %v", tt.preset, cfg.Maze.Density, tt.density)
		}
	}

	cfg := Default()
	if err := ApplyDensityPreset(&cfg, ""); err != nil || cfg != Default() {
		t.Errorf("empty preset should be a no-op, err = %v", err)
	}
	if err := ApplyDensityPreset(&cfg, "extreme"); !errors.Is(err, ErrInvalid) {
		t.Errorf("ApplyDensityPreset(extreme) error = %v, expected ErrInvalid", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("maze:\n  layout: open\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, from, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if from != path || cfg.Maze.Layout != "open" {
		t.Errorf("Load() = %q, layout %q, expected %q, open", from, cfg.Maze.Layout, path)
	}

	if _, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) should fail")
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvConfig, "")
	t.Chdir(t.TempDir())

	_, from, err := Load("")
	if err != nil || from != "embedded" {
		t.Fatalf("Load() = %q, %v, expected embedded", from, err)
	}

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "mazetrace.yaml"), []byte("run:\n  tick_rate: 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _, err := Load("")
	if err != nil || cfg.Run.TickRate != 20 {
		t.Fatalf("Load() tick_rate = %d, %v, expected local file", cfg.Run.TickRate, err)
	}

	userDir := filepath.Join(home, ".mazetrace")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, "config.yaml"), []byte("run:\n  tick_rate: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _, err = Load("")
	if err != nil || cfg.Run.TickRate != 10 {
		t.Fatalf("Load() tick_rate = %d, %v, expected user file", cfg.Run.TickRate, err)
	}

	envPath := filepath.Join(home, "env.yaml")
	if err := os.WriteFile(envPath, []byte("run:\n  tick_rate: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfig, envPath)
	cfg, _, err = Load("")
	if err != nil || cfg.Run.TickRate != 5 {
		t.Fatalf("Load() tick_rate = %d, %v, expected env file", cfg.Run.TickRate, err)
	}
}

func TestMazeSize(t *testing.T) {
	tests := []struct {
		name       string
		m          MazeConfig
		cols, rows int
		w, h       int
	}{
		{"fixed", MazeConfig{Width: 20, Height: 10, Goal: [2]int{1, 1}}, 200, 60, 20, 10},
		{"fit", MazeConfig{Goal: [2]int{1, 1}}, 80, 24, 40, 22},
		{"fit capped", MazeConfig{Goal: [2]int{1, 1}}, 400, 200, 128, 128},
		{"markers win", MazeConfig{Home: [2]int{2, 12}, Goal: [2]int{30, 12}}, 20, 10, 31, 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.m.Size(tt.cols, tt.rows)
			if w != tt.w || h != tt.h {
				t.Errorf("Size(%d, %d) = %dx%d, expected %dx%d", tt.cols, tt.rows, w, h, tt.w, tt.h)
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(Default())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Marshal()) error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("round trip = %+v, expected %+v", cfg, Default())
	}
}
