package config

import (
	_ "embed"
)

//go:embed defaults/mazetrace.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration, matching the embedded YAML.
func Default() Config {
	return Config{
		Maze: MazeConfig{
			Home:     [2]int{2, 12},
			Goal:     [2]int{10, 12},
			Density:  0.3052,
			Braiding: 0.1,
			Layout:   "scatter",
		},
		Canvas: CanvasConfig{
			FadeRate:  0.6,
			FadeCurve: "linear",
		},
		Palette: PaletteConfig{
			Home:      RGB{1, 0, 0},
			Goal:      RGB{0, 1, 0},
			Wall:      RGB{0, 0, 1},
			Searched:  RGB{1, 1, 1},
			Path:      RGB{1, 1, 0},
			EmptyHigh: RGB{0.9, 0.9, 0.9},
			EmptyLow:  RGB{0.1, 0.1, 0.1},
			LowFactor: 0.9,
		},
		Run: RunConfig{
			TickRate:          60,
			StepsPerTick:      1,
			RestartDelayTicks: 120,
			AutoRestart:       true,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
