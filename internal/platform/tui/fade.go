package tui

import (
	"fmt"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/mazetrace/internal/canvas"
	"github.com/vovakirdan/mazetrace/internal/core"
)

// fadeCurves holds an easing for every name in config.FadeCurves.
var fadeCurves = map[string]ease.TweenFunc{
	"linear":      ease.Linear,
	"quad-out":    ease.OutQuad,
	"cubic-out":   ease.OutCubic,
	"sine-in-out": ease.InOutSine,
	"expo-out":    ease.OutExpo,
}

// FadeCurves returns the known curve names, sorted.
func FadeCurves() []string {
	names := make([]string, 0, len(fadeCurves))
	for name := range fadeCurves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fader maps a tile's fade strength to the color shown in the terminal.
// Strength is eased along the configured curve, then high and low are
// mixed in RGB.
type Fader struct {
	tween *gween.Tween
}

// NewFader returns a fader for the named curve. An empty name means linear.
func NewFader(curve string) (*Fader, error) {
	if curve == "" {
		curve = "linear"
	}
	fn, ok := fadeCurves[curve]
	if !ok {
		return nil, fmt.Errorf("tui: unknown fade curve %q", curve)
	}
	return &Fader{tween: gween.New(0, 1, 1, fn)}, nil
}

// Mix returns how far toward the low color a tile of the given strength is.
func (f *Fader) Mix(strength float32) float32 {
	v, _ := f.tween.Set(min(max(strength, 0), 1))
	return v
}

// Color returns the displayed color of a tile.
func (f *Fader) Color(inst canvas.Instance) core.Color {
	t := f.Mix(inst.Strength)
	mixed := rgb(inst.High).BlendRgb(rgb(inst.Low), float64(t)).Clamped()
	c, err := core.NewColor(float32(mixed.R), float32(mixed.G), float32(mixed.B))
	if err != nil {
		return core.Black
	}
	return c
}

func rgb(v [3]float32) colorful.Color {
	return colorful.Color{R: float64(v[0]), G: float64(v[1]), B: float64(v[2])}
}
