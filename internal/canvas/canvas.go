// Package canvas holds per-tile visual state for the maze view: two colors
// per tile and a fade strength that moves a freshly painted tile from its
// high color toward its low color over time.
//
// The state is kept as two flat row-major buffers (index = x + y*width),
// the layout a renderer uploads once per frame.
package canvas

import (
	"fmt"
	"math"

	"github.com/vovakirdan/mazetrace/internal/core"
)

// DefaultFadeRate is the strength gained per second: 0.01 per frame at 60 FPS.
const DefaultFadeRate float32 = 0.6

// Untouched tiles fade between 0.9 and 0.1 grey.
var (
	defaultHighRGB = [3]float32{0.9, 0.9, 0.9}
	defaultLowRGB  = [3]float32{0.1, 0.1, 0.1}
)

// ColorRange is the pair of colors a tile fades between.
type ColorRange struct {
	High [3]float32
	Low  [3]float32
}

// Strength is how far a tile has faded, 0 (fresh, high color) to 1 (low color).
type Strength float32

// Instance is one tile's full render record.
type Instance struct {
	High     [3]float32
	Low      [3]float32
	Strength float32
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithColors sets the colors every tile starts with.
func WithColors(high, low core.Color) Option {
	return func(c *Canvas) {
		c.base = ColorRange{High: high.RGB(), Low: low.RGB()}
	}
}

// WithFadeRate sets the strength gained per second of Advance.
func WithFadeRate(rate float32) Option {
	return func(c *Canvas) {
		c.rate = rate
	}
}

// Canvas is a fixed-size grid of tiles. It is not safe for concurrent use.
type Canvas struct {
	w, h      int
	rate      float32
	base      ColorRange
	ranges    []ColorRange
	strengths []Strength
}

// New creates a w x h canvas with every tile at the base colors and
// strength 0.
func New(w, h int, opts ...Option) (*Canvas, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	c := &Canvas{
		w:    w,
		h:    h,
		rate: DefaultFadeRate,
		base: ColorRange{High: defaultHighRGB, Low: defaultLowRGB},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rate < 0 || math.IsNaN(float64(c.rate)) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidRate, c.rate)
	}

	c.ranges = make([]ColorRange, w*h)
	c.strengths = make([]Strength, w*h)
	for i := range c.ranges {
		c.ranges[i] = c.base
	}
	return c, nil
}

// TilesW returns the canvas width in tiles.
func (c *Canvas) TilesW() int { return c.w }

// TilesH returns the canvas height in tiles.
func (c *Canvas) TilesH() int { return c.h }

// Len returns the number of tiles.
func (c *Canvas) Len() int { return c.w * c.h }

// FadeRate returns the strength gained per second.
func (c *Canvas) FadeRate() float32 { return c.rate }

func (c *Canvas) check(x, y int) error {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return &OutOfBoundsError{X: x, Y: y, Width: c.w, Height: c.h}
	}
	return nil
}

// Paint sets the colors of tile (x, y) and resets its strength to 0.
// A coordinate outside the canvas returns an *OutOfBoundsError and leaves
// every tile untouched.
func (c *Canvas) Paint(x, y int, high, low core.Color) error {
	if err := c.check(x, y); err != nil {
		return err
	}
	i := x + y*c.w
	c.ranges[i] = ColorRange{High: high.RGB(), Low: low.RGB()}
	c.strengths[i] = 0
	return nil
}

// Advance fades every tile by rate*dt, saturating at 1.
// A dt of zero or less does nothing.
func (c *Canvas) Advance(dt float32) {
	if !(dt > 0) {
		return
	}
	step := Strength(c.rate * dt)
	if step == 0 {
		return
	}
	for i, s := range c.strengths {
		if s >= 1 {
			continue
		}
		s += step
		if s > 1 {
			s = 1
		}
		c.strengths[i] = s
	}
}

// At returns the render record of tile (x, y).
func (c *Canvas) At(x, y int) (Instance, error) {
	if err := c.check(x, y); err != nil {
		return Instance{}, err
	}
	i := x + y*c.w
	r := c.ranges[i]
	return Instance{High: r.High, Low: r.Low, Strength: float32(c.strengths[i])}, nil
}

// Instances returns a fresh row-major copy of every tile's render record.
func (c *Canvas) Instances() []Instance {
	return c.AppendInstances(make([]Instance, 0, len(c.ranges)))
}

// AppendInstances appends every tile's render record to dst, row-major,
// so a renderer can reuse one slice across frames.
func (c *Canvas) AppendInstances(dst []Instance) []Instance {
	for i, r := range c.ranges {
		dst = append(dst, Instance{High: r.High, Low: r.Low, Strength: float32(c.strengths[i])})
	}
	return dst
}

// ColorRanges returns the live color buffer. Callers must not modify it.
func (c *Canvas) ColorRanges() []ColorRange { return c.ranges }

// Strengths returns the live strength buffer. Callers must not modify it.
func (c *Canvas) Strengths() []Strength { return c.strengths }
