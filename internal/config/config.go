// Package config provides YAML-based configuration loading and density
// presets for the maze visualizer.
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vovakirdan/mazetrace/internal/core"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the full visualizer configuration.
type Config struct {
	Maze    MazeConfig    `yaml:"maze"`
	Canvas  CanvasConfig  `yaml:"canvas"`
	Palette PaletteConfig `yaml:"palette"`
	Run     RunConfig     `yaml:"run"`
}

// MazeConfig defines how mazes are generated.
type MazeConfig struct {
	Width      int     `yaml:"width"`  // 0 = fit the terminal
	Height     int     `yaml:"height"` // 0 = fit the terminal
	Home       [2]int  `yaml:"home"`
	Goal       [2]int  `yaml:"goal"`
	Density    float64 `yaml:"density"`  // wall attempts per cell, 0.0 to 1.0
	Braiding   float64 `yaml:"braiding"` // carved layout only
	Layout     string  `yaml:"layout"`
	LayoutFile string  `yaml:"layout_file"` // used by the "file" layout
}

// CanvasConfig defines tile fading.
type CanvasConfig struct {
	FadeRate  float32 `yaml:"fade_rate"`  // strength gained per second
	FadeCurve string  `yaml:"fade_curve"` // easing applied when drawing
}

// FadeCurves lists the accepted canvas.fade_curve names. An empty curve
// means linear.
var FadeCurves = []string{"linear", "quad-out", "cubic-out", "sine-in-out", "expo-out"}

// RGB is a color written as [r, g, b] with channels in [0, 1].
type RGB [3]float32

// Color validates the channels and converts them.
func (c RGB) Color() (core.Color, error) {
	return core.ColorFromSlice(c[:])
}

// PaletteConfig defines the colors of each kind of tile.
type PaletteConfig struct {
	Home      RGB     `yaml:"home"`
	Goal      RGB     `yaml:"goal"`
	Wall      RGB     `yaml:"wall"`
	Searched  RGB     `yaml:"searched"`
	Path      RGB     `yaml:"path"`
	EmptyHigh RGB     `yaml:"empty_high"`
	EmptyLow  RGB     `yaml:"empty_low"`
	LowFactor float32 `yaml:"low_factor"` // low = high * low_factor for painted tiles
}

// RunConfig defines frame loop pacing.
type RunConfig struct {
	TickRate          int  `yaml:"tick_rate"`
	StepsPerTick      int  `yaml:"steps_per_tick"`
	RestartDelayTicks int  `yaml:"restart_delay_ticks"`
	AutoRestart       bool `yaml:"auto_restart"`
}

// Validate checks every section.
func (c Config) Validate() error {
	m := c.Maze
	if m.Width < 0 || m.Height < 0 {
		return fmt.Errorf("%w: maze size %dx%d", ErrInvalid, m.Width, m.Height)
	}
	if m.Home[0] < 0 || m.Home[1] < 0 || m.Goal[0] < 0 || m.Goal[1] < 0 {
		return fmt.Errorf("%w: negative home %v or goal %v", ErrInvalid, m.Home, m.Goal)
	}
	if m.Home == m.Goal {
		return fmt.Errorf("%w: home and goal share %v", ErrInvalid, m.Home)
	}
	if m.Density < 0 || m.Density > 1 {
		return fmt.Errorf("%w: density %g not in [0, 1]", ErrInvalid, m.Density)
	}
	if m.Braiding < 0 || m.Braiding > 1 {
		return fmt.Errorf("%w: braiding %g not in [0, 1]", ErrInvalid, m.Braiding)
	}
	if m.Layout == "" {
		return fmt.Errorf("%w: empty layout", ErrInvalid)
	}

	if c.Canvas.FadeRate < 0 {
		return fmt.Errorf("%w: fade_rate %g", ErrInvalid, c.Canvas.FadeRate)
	}
	if c.Canvas.FadeCurve != "" && !slices.Contains(FadeCurves, c.Canvas.FadeCurve) {
		return fmt.Errorf("%w: unknown fade_curve %q", ErrInvalid, c.Canvas.FadeCurve)
	}

	if _, err := c.Palette.Resolve(); err != nil {
		return err
	}

	if c.Run.TickRate <= 0 || c.Run.TickRate > 240 {
		return fmt.Errorf("%w: tick_rate %d not in [1, 240]", ErrInvalid, c.Run.TickRate)
	}
	if c.Run.StepsPerTick < 1 {
		return fmt.Errorf("%w: steps_per_tick %d", ErrInvalid, c.Run.StepsPerTick)
	}
	if c.Run.RestartDelayTicks < 0 {
		return fmt.Errorf("%w: restart_delay_ticks %d", ErrInvalid, c.Run.RestartDelayTicks)
	}
	return nil
}

// Palette is a validated PaletteConfig.
type Palette struct {
	Home, Goal, Wall    core.Color
	Searched, Path      core.Color
	EmptyHigh, EmptyLow core.Color
	LowFactor           float32
}

// Resolve validates every color of the palette.
func (p PaletteConfig) Resolve() (Palette, error) {
	var out Palette
	fields := []struct {
		name string
		in   RGB
		out  *core.Color
	}{
		{"home", p.Home, &out.Home},
		{"goal", p.Goal, &out.Goal},
		{"wall", p.Wall, &out.Wall},
		{"searched", p.Searched, &out.Searched},
		{"path", p.Path, &out.Path},
		{"empty_high", p.EmptyHigh, &out.EmptyHigh},
		{"empty_low", p.EmptyLow, &out.EmptyLow},
	}
	for _, f := range fields {
		c, err := f.in.Color()
		if err != nil {
			return Palette{}, fmt.Errorf("%w: palette.%s: %v", ErrInvalid, f.name, err)
		}
		*f.out = c
	}
	if p.LowFactor < 0 || p.LowFactor > 1 {
		return Palette{}, fmt.Errorf("%w: palette.low_factor %g not in [0, 1]", ErrInvalid, p.LowFactor)
	}
	out.LowFactor = p.LowFactor
	return out, nil
}

// Size returns the maze dimensions. A zero width or height is fitted to a
// terminal of cols x rows, two columns per tile with two rows kept for the
// HUD, capped at 128 and never so small that home or goal fall outside.
func (m MazeConfig) Size(cols, rows int) (w, h int) {
	w, h = m.Width, m.Height
	if w == 0 {
		w = core.Min(cols/2, 128)
	}
	if h == 0 {
		h = core.Min(rows-2, 128)
	}
	w = max(w, m.Home[0]+1, m.Goal[0]+1)
	h = max(h, m.Home[1]+1, m.Goal[1]+1)
	return w, h
}
