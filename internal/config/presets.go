package config

import "fmt"

// DensityPreset represents a named wall density.
type DensityPreset string

const (
	DensitySparse DensityPreset = "sparse"
	DensityNormal DensityPreset = "normal"
	DensityDense  DensityPreset = "dense"
)

// Presets lists the known presets in display order.
var Presets = []DensityPreset{DensitySparse, DensityNormal, DensityDense}

// DensityForPreset returns the scatter density and carved braiding for a preset.
func DensityForPreset(preset DensityPreset) (density, braiding float64, ok bool) {
	switch preset {
	case DensitySparse:
		return 0.15, 0.4, true
	case DensityNormal:
		return 0.3052, 0.1, true
	case DensityDense:
		return 0.5, 0, true
	default:
		return 0, 0, false
	}
}

// ApplyDensityPreset modifies the config based on a density preset.
// An empty preset leaves the config untouched.
func ApplyDensityPreset(cfg *Config, preset DensityPreset) error {
	if preset == "" {
		return nil
	}
	density, braiding, ok := DensityForPreset(preset)
	if !ok {
		return fmt.Errorf("%w: unknown density preset %q (want sparse, normal or dense)", ErrInvalid, preset)
	}
	cfg.Maze.Density = density
	cfg.Maze.Braiding = braiding
	return nil
}
