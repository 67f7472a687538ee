package core

import (
	"errors"
	"fmt"
)

// ErrColorRange is returned when a color channel lies outside [0, 1].
var ErrColorRange = errors.New("core: color channel out of range")

// Color is an RGBA color with float32 channels in [0, 1].
// Values are only built through the validating constructors, so a Color
// never carries an out-of-range channel. The zero value is fully transparent
// and renderers treat it as "terminal default".
type Color struct {
	r, g, b, a float32
}

// Predefined opaque colors.
var (
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
	White       = Color{1, 1, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Grey        = Color{0.5, 0.5, 0.5, 1}
	Yellow      = Color{1, 1, 0, 1}
	Transparent = Color{}
)

// NewColor creates an opaque color.
func NewColor(r, g, b float32) (Color, error) {
	return NewColorA(r, g, b, 1)
}

// NewColorA creates a color with an explicit alpha channel.
func NewColorA(r, g, b, a float32) (Color, error) {
	for _, v := range [4]float32{r, g, b, a} {
		if !inUnit(v) {
			return Color{}, fmt.Errorf("%w: r: %g, g: %g, b: %g, a: %g", ErrColorRange, r, g, b, a)
		}
	}
	return Color{r: r, g: g, b: b, a: a}, nil
}

// ColorFromSlice builds a color from three (RGB) or four (RGBA) channels.
// This is the shape colors take in YAML config files.
func ColorFromSlice(ch []float32) (Color, error) {
	switch len(ch) {
	case 3:
		return NewColor(ch[0], ch[1], ch[2])
	case 4:
		return NewColorA(ch[0], ch[1], ch[2], ch[3])
	default:
		return Color{}, fmt.Errorf("core: color needs 3 or 4 channels, got %d", len(ch))
	}
}

// inUnit reports whether v is in [0, 1]. NaN is rejected.
func inUnit(v float32) bool {
	return v >= 0 && v <= 1
}

// R returns the red channel.
func (c Color) R() float32 { return c.r }

// G returns the green channel.
func (c Color) G() float32 { return c.g }

// B returns the blue channel.
func (c Color) B() float32 { return c.b }

// A returns the alpha channel.
func (c Color) A() float32 { return c.a }

// RGB returns the color channels without alpha.
func (c Color) RGB() [3]float32 {
	return [3]float32{c.r, c.g, c.b}
}

// IsTransparent reports whether the color has zero alpha.
func (c Color) IsTransparent() bool {
	return c.a == 0
}

// Scale multiplies the RGB channels by f, keeping alpha.
// Fails instead of clamping when the result would leave [0, 1].
func (c Color) Scale(f float32) (Color, error) {
	return NewColorA(c.r*f, c.g*f, c.b*f, c.a)
}

// Hex returns the color as "#rrggbb", ignoring alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", to8(c.r), to8(c.g), to8(c.b))
}

// String returns a readable representation for logs and test output.
func (c Color) String() string {
	return fmt.Sprintf("rgba(%.3g, %.3g, %.3g, %.3g)", c.r, c.g, c.b, c.a)
}

func to8(v float32) uint8 {
	return uint8(v*255 + 0.5)
}
